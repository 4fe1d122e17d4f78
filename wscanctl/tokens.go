package main

import (
	"fmt"
	"io"

	"github.com/WJQSERVER/wscan"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
)

type tokenRecord struct {
	File   string `json:"file"`
	Offset int64  `json:"offset"`
	Token  string `json:"token"`
	Kind   string `json:"kind"`
}

func tokensCommand(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tokens [path ...]",
		Short: "Print every whitespace-separated token with its byte offset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scanPaths(args, cmd.InOrStdin(), cmd.OutOrStdout(), func(path string, sc textScanner, out io.Writer) error {
				return printTokens(path, sc, out, jsonOutput)
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output one JSON object per token")
	return cmd
}

func printTokens(path string, sc textScanner, out io.Writer, jsonOutput bool) error {
	enc := jsontext.NewEncoder(out)
	for {
		if _, err := sc.SkipWhitespaces(); err != nil {
			return err
		}
		offset := sc.Offset()
		tok, ok, err := sc.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if jsonOutput {
			rec := tokenRecord{File: path, Offset: offset, Token: tok, Kind: tokenKind(tok)}
			if err := json.MarshalEncode(enc, rec); err != nil {
				return fmt.Errorf("could not marshal json: %w", err)
			}
			continue
		}
		fmt.Fprintf(out, "%s:%d\t%s\n", path, offset, tok)
	}
}

// tokenKind classifies a token as "integer" (optional sign, then digits) or
// "word".
func tokenKind(tok string) string {
	digits := tok
	if len(digits) > 1 && (digits[0] == '-' || digits[0] == '+') {
		digits = digits[1:]
	}
	for i := 0; i < len(digits); i++ {
		if !wscan.IsDigit(digits[i]) {
			return "word"
		}
	}
	return "integer"
}
