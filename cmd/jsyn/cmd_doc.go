package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsyn/java/javadoc"
	"github.com/dhamidi/jsyn/java/parser"
)

func newDocCmd(a *app) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "doc <file>",
		Short: "Parse the documentation comments of a .java file",
		Long: `Parse the documentation comments of a .java file.

Every /** */ comment and every run of /// lines is parsed and printed as a
tree of text, inline tags, HTML and block tags. References that do not
parse are marked as unresolved. With --markdown the comments are rendered
as they would appear in an editor hover.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := a.readSource(cmd, filename)
			if err != nil {
				return err
			}

			opts := append([]parser.Option{parser.WithFile(filename)}, a.cfg.ParserOptions()...)
			root := parser.ParseCompilationUnit(bytes.NewReader(data), opts...).Finish()
			if root == nil {
				return fmt.Errorf("parse %s: no syntax tree", filename)
			}

			out := cmd.OutOrStdout()
			for i, c := range javadoc.Collect(root) {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s:%d:%d:\n", filename, c.Span.Start.Line, c.Span.Start.Column)
				doc := c.Parse()
				if render {
					fmt.Fprintln(out, javadoc.Markdown(doc))
				} else {
					fmt.Fprint(out, javadoc.Dump(doc))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&render, "markdown", false, "render comments as Markdown")

	return cmd
}
