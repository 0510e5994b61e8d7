package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ldc/internal/diag"
	"ldc/internal/diagfmt"
	"ldc/internal/driver"
	"ldc/internal/project"
	"ldc/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.ld|directory]...",
	Short: "Typecheck ld source files",
	Long: `Check parses and typechecks the given files or directories. With no
arguments it checks the paths listed in the project's ldc.toml.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("json", false, "emit diagnostics as JSON")
	checkCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "skip the on-disk result cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	paths, err := collectCheckPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .ld files to check")
	}

	opts := driver.CheckManyOptions{
		MaxDiagnostics: maxDiagnostics(cmd),
		Jobs:           jobs,
	}
	if !noCache {
		if cache, cacheErr := driver.OpenDiskCache("ldc"); cacheErr == nil {
			opts.Cache = cache
		}
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	if shouldUseTUI(mode) && !jsonOut {
		fileSet, results, err = checkWithUI(cmd.Context(), paths, opts)
	} else {
		fileSet, results, err = driver.CheckMany(cmd.Context(), paths, opts)
	}
	if err != nil {
		return err
	}

	merged := diag.NewBag(opts.MaxDiagnostics * len(results))
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	merged.Sort()

	if jsonOut {
		if err := diagfmt.JSON(os.Stdout, merged, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
		}); err != nil {
			return err
		}
	} else if merged.Len() > 0 {
		diagfmt.Pretty(os.Stderr, merged, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	if merged.HasErrors() {
		return fmt.Errorf("check failed")
	}
	if !jsonOut {
		fmt.Fprintf(os.Stdout, "checked %d file(s)\n", len(results))
	}
	return nil
}

// collectCheckPaths expands arguments into .ld files. Without arguments the
// project manifest decides what to check.
func collectCheckPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		root, ok, err := project.FindProjectRoot(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no %s found; pass files or run `ldc init`", project.ManifestName)
		}
		manifest, err := project.LoadManifest(filepath.Join(root, project.ManifestName))
		if err != nil {
			return nil, err
		}
		args = manifest.SourcePaths(root)
	}

	var paths []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if st.IsDir() {
			found, err := driver.ListSourceFiles(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
		} else {
			paths = append(paths, arg)
		}
	}
	return paths, nil
}
