package main

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
)

type lineRecord struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Offset int64  `json:"offset"`
	Text   string `json:"text"`
}

func linesCommand(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "lines [path ...]",
		Short: "Print every line with its number; \\n, \\r and \\r\\n all end a line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scanPaths(args, cmd.InOrStdin(), cmd.OutOrStdout(), func(path string, sc textScanner, out io.Writer) error {
				return printLines(path, sc, out, jsonOutput)
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output one JSON object per line")
	return cmd
}

func printLines(path string, sc textScanner, out io.Writer, jsonOutput bool) error {
	enc := jsontext.NewEncoder(out)
	for n := 1; ; n++ {
		offset := sc.Offset()
		line, ok, err := sc.NextLine()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if jsonOutput {
			if err := json.MarshalEncode(enc, lineRecord{File: path, Line: n, Offset: offset, Text: line}); err != nil {
				return fmt.Errorf("could not marshal json: %w", err)
			}
			continue
		}
		fmt.Fprintf(out, "%s:%d: %s\n", path, n, line)
	}
}
