// Package modflow implements the model side of the MODFLOW name-file
// protocol: the Model aggregate, the per-model package registry, the load
// orchestrator, and the name-file writer.
//
// A Model owns a set of named, typed packages (one per physical process),
// a unit table mapping numeric file handles to files, a list of external
// data files, and a strictly increasing external-unit allocator. Loading
// a model from a name file follows a fixed order: the manifest is parsed,
// the discretization package is loaded first (it is the sole source of
// grid shape and its absence or failure is fatal), parameter packages
// (PVAL, ZONE, MULT) are pre-resolved so later packages can reference
// named parameters, and every remaining entry is then loaded best-effort
// in manifest-encounter order. Individual package failures are recorded,
// never propagated.
//
// Package payloads are out of scope here: loaders retain raw file content
// and extract only what the orchestration itself needs (grid shape from
// DIS, parameter names from PVAL/ZONE/MULT, output unit claims from OC).
// Everything else round-trips byte-for-byte through GenericPackage.
package modflow
