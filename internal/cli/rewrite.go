// Package cli — rewrite.go implements the "mfkit rewrite" command.
//
// The rewrite command loads a model through its name file and re-emits it
// into another workspace: a regenerated name file plus, with --all, every
// loaded package's file. Useful for normalizing hand-edited manifests or
// relocating a model.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizusim/mfkit/modflow"
)

// rewriteFlags holds the flag values specific to the rewrite command.
type rewriteFlags struct {
	loadFlags

	// out is the destination workspace directory.
	out string

	// all also rewrites every loaded package file, not just the manifest.
	all bool
}

// NewRewriteCommand creates the "rewrite" cobra command. It is called
// from NewRootCommand to register as a subcommand.
func NewRewriteCommand() *cobra.Command {
	flags := &rewriteFlags{}

	cmd := &cobra.Command{
		Use:   "rewrite <namefile>",
		Short: "Load a model and re-emit its name file",
		Long: `Load a model and write a regenerated name file into the --out
directory. With --all, every loaded package's file is written too.

External data files are referenced, not copied: the regenerated manifest
points at them relative to the destination workspace.

Examples:
  mfkit rewrite demo.nam --out clean/
  mfkit rewrite demo.nam --out clean/ --all`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(args[0], flags)
		},
	}

	registerLoadFlags(cmd, &flags.loadFlags)
	cmd.Flags().StringVar(&flags.out, "out", "", "Destination workspace directory (required)")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Also rewrite every loaded package file")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// runRewrite is the main logic function for the rewrite command.
func runRewrite(namefile string, flags *rewriteFlags) error {
	namefile, opts, err := buildLoadOptions(namefile, &flags.loadFlags)
	if err != nil {
		return err
	}

	m, report, err := modflow.Load(namefile, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flags.out, 0o755); err != nil {
		return WrapCLIError(ExitWriteError,
			fmt.Sprintf("cannot create output directory %s", flags.out), err)
	}

	// Retarget the loaded model at the destination workspace before
	// writing. The model's package and external filenames stay absolute
	// or workspace-relative as loaded; the writer relativizes them.
	m.Workspace = flags.out

	if flags.all {
		err = m.WriteInput()
	} else {
		err = m.WriteNameFile()
	}
	if err != nil {
		return WrapCLIError(ExitWriteError,
			fmt.Sprintf("cannot write model into %s", flags.out), err)
	}

	printRewriteResult(m, report, flags)
	return nil
}

// printRewriteResult reports what was written, in text or JSON format
// depending on the global --json flag.
func printRewriteResult(m *modflow.Model, report *modflow.LoadReport, flags *rewriteFlags) {
	if IsJSONOutput() {
		result := struct {
			NameFile  string   `json:"nameFile"`
			Out       string   `json:"out"`
			All       bool     `json:"all"`
			Loaded    []string `json:"loaded"`
			NotLoaded []string `json:"notLoaded"`
		}{
			NameFile:  m.NameFile(),
			Out:       flags.out,
			All:       flags.all,
			Loaded:    append([]string{}, report.Loaded...),
			NotLoaded: append([]string{}, report.NotLoaded...),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Wrote %s\n", m.NameFile())
	if flags.all {
		fmt.Printf("Rewrote %d package file(s)\n", len(m.Packages()))
	}
	if len(report.NotLoaded) > 0 {
		fmt.Printf("%d entr%s not loaded (left out of the rewrite)\n",
			len(report.NotLoaded), pluralY(len(report.NotLoaded)))
	}
}
