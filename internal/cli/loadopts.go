package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizusim/mfkit/internal/project"
	"github.com/mizusim/mfkit/modflow"
)

// loadFlags holds the flag values shared by every command that performs a
// full model load (info, rewrite). These are bound to cobra flags by
// registerLoadFlags.
type loadFlags struct {
	// mfVersion is the simulator version tag (mf2k, mf2005, mfnwt, mfusg).
	mfVersion string

	// exeName is the simulator executable name.
	exeName string

	// workspace is the directory containing the model files.
	workspace string

	// only restricts loading to the listed filetype tags.
	only []string

	// registryFile is a YAML registry extension file.
	registryFile string

	// projectFile is an explicit mfkit.jsonc path. When empty, the
	// workspace directory is searched for one.
	projectFile string
}

// registerLoadFlags binds the shared load flags onto a command.
func registerLoadFlags(cmd *cobra.Command, flags *loadFlags) {
	cmd.Flags().StringVar(&flags.mfVersion, "mf-version", "",
		"Simulator version: mf2k, mf2005, mfnwt, mfusg (default: mf2005)")
	cmd.Flags().StringVar(&flags.exeName, "exe", "", "Simulator executable name")
	cmd.Flags().StringVar(&flags.workspace, "workspace", "", "Model workspace directory")
	cmd.Flags().StringSliceVar(&flags.only, "only", nil,
		"Load only the listed filetype tags (discretization is always loaded)")
	cmd.Flags().StringVar(&flags.registryFile, "registry", "",
		"YAML registry extension file declaring extra filetype tags")
	cmd.Flags().StringVar(&flags.projectFile, "project", "",
		"Project file path (default: search the workspace for mfkit.jsonc)")
}

// buildLoadOptions merges the project file (if any) with the command-line
// flags into LoadOptions. Flags win over project settings. It returns the
// possibly project-adjusted name-file path alongside the options.
func buildLoadOptions(namefile string, flags *loadFlags) (string, modflow.LoadOptions, error) {
	opts := modflow.LoadOptions{
		Version:      flags.mfVersion,
		ExeName:      flags.exeName,
		Workspace:    flags.workspace,
		LoadOnly:     flags.only,
		RegistryFile: flags.registryFile,
		Verbose:      verbose,
		Logger:       newLogger(),
	}

	proj, err := resolveProject(flags)
	if err != nil {
		return "", opts, err
	}
	if proj != nil {
		if opts.Version == "" {
			opts.Version = proj.Version
		}
		if opts.ExeName == "" {
			opts.ExeName = proj.ExeName
		}
		if opts.Workspace == "" {
			opts.Workspace = proj.ResolvePath(proj.Workspace)
		}
		if opts.LoadOnly == nil && len(proj.LoadOnly) > 0 {
			opts.LoadOnly = proj.LoadOnly
		}
		if opts.RegistryFile == "" {
			opts.RegistryFile = proj.ResolvePath(proj.Registry)
		}
		if proj.Verbose {
			opts.Verbose = true
		}
		if namefile == "" {
			namefile = proj.ResolvePath(proj.NameFile)
		}
	}

	if namefile == "" {
		return "", opts, NewCLIError(ExitGeneralError,
			"no name file given and the project file does not set one")
	}
	return namefile, opts, nil
}

// resolveProject loads the project file named by --project, or searches
// the workspace directory for one. A missing project file is only an
// error when it was requested explicitly.
func resolveProject(flags *loadFlags) (*project.Project, error) {
	if flags.projectFile != "" {
		proj, err := project.Load(flags.projectFile)
		if err != nil {
			return nil, WrapCLIError(ExitGeneralError,
				fmt.Sprintf("cannot load project file %s", flags.projectFile), err)
		}
		return proj, nil
	}

	dir := flags.workspace
	if dir == "" {
		dir = "."
	}
	proj, err := project.Find(dir)
	if err != nil {
		// No project file is the common case, not a failure. A file that
		// exists but cannot be parsed still surfaces.
		if errors.Is(err, project.ErrNotFound) {
			return nil, nil
		}
		return nil, WrapCLIError(ExitGeneralError, "cannot load project file", err)
	}
	return proj, nil
}
