package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/jsyn/diag"
	"github.com/dhamidi/jsyn/java/parser"
)

var entryPoints = map[string]func(io.Reader, ...parser.Option) *parser.Parser{
	"file":       parser.ParseCompilationUnit,
	"expression": parser.ParseExpression,
	"statement":  parser.ParseStatement,
	"type":       parser.ParseType,
	"repl":       parser.ParseREPL,
}

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var entry string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java file and dump the syntax tree",
		Long: `Parse a .java file and dump the syntax tree.

Use "-" to read from standard input. Syntax errors are part of the tree
and are also listed on standard error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			parse, ok := entryPoints[entry]
			if !ok {
				return fmt.Errorf("unknown entry point: %s", entry)
			}

			data, err := a.readSource(cmd, filename)
			if err != nil {
				return err
			}

			opts := append([]parser.Option{parser.WithFile(filename), parser.WithContext(cmd.Context())}, a.cfg.ParserOptions()...)
			p := parse(bytes.NewReader(data), opts...)
			node := p.Finish()
			if node == nil {
				return fmt.Errorf("parse %s: %w", filename, p.Err())
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "tree":
				if includePositions {
					fmt.Fprintln(out, node.StringWithPositions())
				} else {
					fmt.Fprintln(out, node.String())
				}
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "text":
				fmt.Fprint(out, node.Text())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			r := diag.NewRenderer(cmd.ErrOrStderr(), false)
			return r.RenderAll(diag.FromTree(filename, node), func(string) []byte { return data })
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, text)")
	cmd.Flags().StringVar(&entry, "as", "file", "entry point (file, expression, statement, type, repl)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include positions in tree output")

	return cmd
}

func (a *app) readSource(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := afero.ReadFile(a.fs, filename)
	if err != nil {
		return nil, fmt.Errorf("read java file: %w", err)
	}
	return data, nil
}
