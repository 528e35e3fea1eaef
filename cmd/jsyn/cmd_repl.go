package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsyn/diag"
	"github.com/dhamidi/jsyn/java/parser"
)

const (
	prompt             = "jsyn> "
	continuationPrompt = "  ... "
)

func newREPLCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse Java snippets interactively",
		Long: `Parse Java snippets interactively.

Each snippet is read from standard input and printed as a syntax tree. A
snippet that ends inside a construct, like "if (x) {", continues on the
next line. An empty line ends a snippet early.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			in := bufio.NewScanner(cmd.InOrStdin())
			r := diag.NewRenderer(out, false)
			opts := append([]parser.Option{parser.WithFile("<repl>"), parser.WithContext(cmd.Context())}, a.cfg.ParserOptions()...)

			var buf strings.Builder
			ask := func(p string) {
				if !quiet {
					fmt.Fprint(out, p)
				}
			}
			ask(prompt)
			for in.Scan() {
				line := in.Text()
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				buf.WriteString(line)

				src := buf.String()
				if strings.TrimSpace(src) == "" {
					buf.Reset()
					ask(prompt)
					continue
				}
				p := parser.ParseREPL(strings.NewReader(src), opts...)
				if !p.IsComplete() && line != "" {
					ask(continuationPrompt)
					continue
				}

				node := p.Finish()
				fmt.Fprintln(out, node.String())
				if err := r.RenderAll(diag.FromTree("<repl>", node), func(string) []byte { return []byte(src) }); err != nil {
					return err
				}
				buf.Reset()
				ask(prompt)
			}
			if err := in.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print prompts")

	return cmd
}
