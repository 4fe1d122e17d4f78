package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/WJQSERVER/wscan"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var badToken = color.New(color.FgRed)

func sumCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sum [path ...]",
		Short: "Add up every numeric token; report tokens that are not numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			stderr := cmd.ErrOrStderr()
			return a.scanPaths(args, cmd.InOrStdin(), cmd.OutOrStdout(), func(path string, sc textScanner, out io.Writer) error {
				total, bad, err := sumTokens(path, sc, stderr)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s", path, strconv.FormatFloat(total, 'g', -1, 64))
				if bad > 0 {
					fmt.Fprintf(out, " (%d skipped)", bad)
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}
	return cmd
}

// sumTokens adds every token that parses as a float64. Tokens that do not,
// and bytes that are not valid in the source encoding, are reported to diag
// and skipped.
func sumTokens(path string, sc textScanner, diag io.Writer) (total float64, bad int, err error) {
	for {
		v, ok, err := sc.NextFloat64()
		if err == nil {
			if !ok {
				return total, bad, nil
			}
			total += v
			continue
		}

		var parseErr *wscan.ParseError
		var decodeErr *wscan.DecodeError
		switch {
		case errors.As(err, &parseErr):
			bad++
			badToken.Fprintf(diag, "%s: not a number: %q\n", path, parseErr.Token)
		case errors.As(err, &decodeErr):
			bad++
			badToken.Fprintf(diag, "%s: %v\n", path, decodeErr)
			if _, _, err := sc.DropNextBytes(1); err != nil {
				return total, bad, err
			}
		default:
			return total, bad, err
		}
	}
}
