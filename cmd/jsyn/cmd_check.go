package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/dhamidi/jsyn/diag"
	"github.com/dhamidi/jsyn/java/codebase"
)

func newCheckCmd(a *app) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report syntax errors in .java files",
		Long: `Report syntax errors in .java files.

Each path is a file or a directory that is searched for files matching the
include and exclude patterns of jsyn.yaml. The current directory is checked
when no path is given. The command fails when any file has a syntax error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			out := cmd.OutOrStdout()
			colored := false
			if f, ok := out.(*os.File); ok && !noColor {
				colored = diag.IsTerminal(f)
			}
			r := diag.NewRenderer(out, colored)

			var result *multierror.Error
			var all []diag.Diagnostic
			files := 0
			for _, root := range args {
				cb := codebase.New(a.fs, root, a.cfg)
				if err := cb.ScanAll(cmd.Context()); err != nil {
					result = multierror.Append(result, err)
				}
				diags := cb.Diagnostics()
				lookup := func(path string) []byte {
					if f := cb.GetFile(path); f != nil {
						return f.Content
					}
					return nil
				}
				if err := r.RenderAll(diags, lookup); err != nil {
					return fmt.Errorf("write diagnostics: %w", err)
				}
				files += len(cb.Paths())
				all = append(all, diags...)
			}

			cliLog.Infof("checked %d files, %d syntax errors", files, len(all))
			syntaxErr := diag.Aggregate(all)
			if result == nil {
				return syntaxErr
			}
			if syntaxErr != nil {
				result = multierror.Append(result, syntaxErr)
			}
			return result.ErrorOrNil()
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}
