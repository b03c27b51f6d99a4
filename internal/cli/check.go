// Package cli — check.go implements the "mfkit check" command.
//
// The check command lints a name file without reading any of the files it
// references: grammar, unit numbers, and duplicate detection come from the
// manifest parser, and each entry's filetype is classified against the
// built-in registry. It is the cheap pre-flight for manifests whose
// package files may not exist yet.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizusim/mfkit/modflow"
	"github.com/mizusim/mfkit/nam"
)

// NewCheckCommand creates the "check" cobra command. It is called from
// NewRootCommand to register as a subcommand.
func NewCheckCommand() *cobra.Command {
	var registryFile string

	cmd := &cobra.Command{
		Use:   "check <namefile>",
		Short: "Lint a name file without loading the model",
		Long: `Parse a name file and report its entries without reading any package
files. Grammar errors, bad unit numbers, and duplicate units fail the
check; unknown filetype tags are reported but do not.

Examples:
  mfkit check demo.nam
  mfkit check demo.nam --registry site.yaml --json`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], registryFile)
		},
	}

	cmd.Flags().StringVar(&registryFile, "registry", "",
		"YAML registry extension file declaring extra filetype tags")

	return cmd
}

// checkEntry is one classified manifest entry.
type checkEntry struct {
	Filetype string `json:"filetype"`
	Unit     int    `json:"unit"`
	Filename string `json:"filename"`

	// Kind is "package", "data", or "unknown".
	Kind string `json:"kind"`
}

// runCheck is the main logic function for the check command.
func runCheck(namefile, registryFile string) error {
	registry := modflow.DefaultRegistry()
	if registryFile != "" {
		if err := registry.MergeFile(registryFile); err != nil {
			return err
		}
	}

	table, err := nam.Parse(namefile)
	if err != nil {
		return err
	}

	entries := make([]checkEntry, 0, table.Len())
	unknown := 0
	for _, e := range table.Entries() {
		kind := "unknown"
		switch {
		case e.Filetype == "LIST" || e.Filetype == "GLOBAL":
			kind = "package"
		case registry.Resolve(e.Filetype) != nil:
			kind = "package"
		case registry.IsData(e.Filetype):
			kind = "data"
		default:
			unknown++
		}
		entries = append(entries, checkEntry{
			Filetype: e.Filetype,
			Unit:     e.Unit,
			Filename: e.Filename,
			Kind:     kind,
		})
	}

	printCheckResult(namefile, entries, unknown)
	return nil
}

// printCheckResult outputs the lint result in text or JSON format,
// depending on the global --json flag.
func printCheckResult(namefile string, entries []checkEntry, unknown int) {
	if IsJSONOutput() {
		result := struct {
			Namefile string       `json:"namefile"`
			Entries  []checkEntry `json:"entries"`
			Unknown  int          `json:"unknown"`
		}{Namefile: namefile, Entries: entries, Unknown: unknown}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("%s: %d entr%s\n", namefile, len(entries), pluralY(len(entries)))

	fmt.Printf("  %-12s %-6s %-8s %s\n", "FILETYPE", "UNIT", "KIND", "FILE")
	for _, e := range entries {
		fmt.Printf("  %-12s %-6d %-8s %s\n", e.Filetype, e.Unit, e.Kind, e.Filename)
	}
	if unknown > 0 {
		fmt.Printf("%d entr%s with unknown filetype tags\n", unknown, pluralY(unknown))
	}
}

// pluralY returns the "y"/"ies" suffix for a count.
func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
