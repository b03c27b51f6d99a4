// Package cli — info.go implements the "mfkit info" command.
//
// The info command loads a model through its name file and summarizes the
// result: grid shape, loaded packages with their units and files, tracked
// external data files, and entries that were skipped or failed. Output is
// a text report or JSON, depending on the --json flag.
package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mizusim/mfkit/modflow"
)

// NewInfoCommand creates the "info" cobra command. It is called from
// NewRootCommand to register as a subcommand.
func NewInfoCommand() *cobra.Command {
	flags := &loadFlags{}

	cmd := &cobra.Command{
		Use:   "info [namefile]",
		Short: "Load a model and summarize its contents",
		Long: `Load a model through its name file and report what it contains.

The name file argument may be omitted when a project file sets nameFile.

Examples:
  mfkit info demo.nam
  mfkit info demo.nam --workspace model --only WEL,RCH
  mfkit info --project mfkit.jsonc --json`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			namefile := ""
			if len(args) == 1 {
				namefile = args[0]
			}
			return runInfo(namefile, flags)
		},
	}

	registerLoadFlags(cmd, flags)
	return cmd
}

// runInfo is the main logic function for the info command.
func runInfo(namefile string, flags *loadFlags) error {
	namefile, opts, err := buildLoadOptions(namefile, flags)
	if err != nil {
		return err
	}

	m, report, err := modflow.Load(namefile, opts)
	if err != nil {
		return err
	}

	printInfoResult(m, report)
	return nil
}

// printInfoResult outputs the model summary in text or JSON format,
// depending on the global --json flag.
func printInfoResult(m *modflow.Model, report *modflow.LoadReport) {
	if IsJSONOutput() {
		printInfoResultJSON(m, report)
	} else {
		printInfoResultText(m, report)
	}
}

// infoPackageJSON is the JSON output structure for one loaded package.
type infoPackageJSON struct {
	Filetype string `json:"filetype"`
	Unit     int    `json:"unit"`
	Filename string `json:"filename"`
}

// infoExternalJSON is the JSON output structure for one external data file.
type infoExternalJSON struct {
	Unit     int    `json:"unit"`
	Filename string `json:"filename"`
	Binary   bool   `json:"binary"`
}

// infoJSON is the top-level JSON output structure for the info command.
type infoJSON struct {
	Name      string             `json:"name"`
	Version   string             `json:"version"`
	Nlay      int                `json:"nlay"`
	Nrow      int                `json:"nrow"`
	Ncol      int                `json:"ncol"`
	Nper      int                `json:"nper"`
	Packages  []infoPackageJSON  `json:"packages"`
	Externals []infoExternalJSON `json:"externals"`
	NotLoaded []string           `json:"notLoaded"`
}

// printInfoResultJSON outputs the model summary as structured JSON.
func printInfoResultJSON(m *modflow.Model, report *modflow.LoadReport) {
	result := infoJSON{
		Name:    m.Name(),
		Version: m.Version,
		Nlay:    m.Nlay(),
		Nrow:    m.Nrow(),
		Ncol:    m.Ncol(),
		Nper:    m.Nper(),
		// Empty slices instead of nil so JSON output shows [] rather
		// than null.
		Packages:  make([]infoPackageJSON, 0),
		Externals: make([]infoExternalJSON, 0),
		NotLoaded: make([]string, 0, len(report.NotLoaded)),
	}

	for _, p := range m.Packages() {
		for _, ref := range p.Files() {
			result.Packages = append(result.Packages, infoPackageJSON{
				Filetype: p.Filetype(),
				Unit:     ref.Unit,
				Filename: filepath.Base(ref.Filename),
			})
		}
	}
	for _, ext := range m.Externals() {
		result.Externals = append(result.Externals, infoExternalJSON{
			Unit:     ext.Unit,
			Filename: filepath.Base(ext.Filename),
			Binary:   ext.Binary,
		})
	}
	result.NotLoaded = append(result.NotLoaded, report.NotLoaded...)

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printInfoResultText outputs the model summary as a human-readable
// report with aligned columns.
func printInfoResultText(m *modflow.Model, report *modflow.LoadReport) {
	fmt.Printf("Model:   %s (%s)\n", m.Name(), m.Version)
	fmt.Printf("Grid:    %d layer(s), %d row(s), %d column(s), %d stress period(s)\n",
		m.Nlay(), m.Nrow(), m.Ncol(), m.Nper())

	fmt.Println("\nPackages:")
	fmt.Printf("  %-12s %-6s %s\n", "FILETYPE", "UNIT", "FILE")
	for _, p := range m.Packages() {
		for _, ref := range p.Files() {
			fmt.Printf("  %-12s %-6d %s\n", p.Filetype(), ref.Unit, filepath.Base(ref.Filename))
		}
	}

	if exts := m.Externals(); len(exts) > 0 {
		fmt.Println("\nExternal files:")
		fmt.Printf("  %-6s %-8s %s\n", "UNIT", "KIND", "FILE")
		for _, ext := range exts {
			kind := "text"
			if ext.Binary {
				kind = "binary"
			}
			fmt.Printf("  %-6d %-8s %s\n", ext.Unit, kind, filepath.Base(ext.Filename))
		}
	}

	if len(report.NotLoaded) > 0 {
		fmt.Println("\nNot loaded:")
		for _, name := range report.NotLoaded {
			fmt.Printf("  %s\n", filepath.Base(name))
		}
	}
}
