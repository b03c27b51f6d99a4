// Package nam implements the read side of the MODFLOW name-file protocol.
//
// A name file is a line-oriented manifest that binds numeric file-handle
// identifiers ("unit numbers") to the input and output files of one
// simulation model. Each non-comment line declares one binding:
//
//	FILETYPE  UNIT  FILENAME  [OPTION]
//
// Lines starting with '#' are heading/comment lines. FILETYPE is matched
// case-insensitively; UNIT is a positive integer; OPTION (e.g. REPLACE)
// accompanies binary data declarations.
//
// The parser produces a UnitTable: an index of entries keyed by unit
// number that preserves manifest-encounter order. Line order carries no
// other meaning, but parse failures always report the offending line.
//
// The write side of the protocol lives in the modflow package, because
// re-emitting a manifest requires the full model state (owned packages,
// external file entries, version-conditional fixed lines).
package nam
