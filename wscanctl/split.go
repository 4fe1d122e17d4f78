package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func splitCommand(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "split --out dir path",
		Short: "Split a text file on empty lines into dir/1.txt, dir/2.txt, ...",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(outDir)
			if err != nil {
				return errors.Wrap(err, "output directory")
			}
			if !info.IsDir() {
				return errors.Errorf("%s is not a directory", outDir)
			}
			return a.scanPaths(args, cmd.InOrStdin(), cmd.OutOrStdout(), func(path string, sc textScanner, out io.Writer) error {
				n, err := splitParagraphs(sc, outDir)
				if err != nil {
					return err
				}
				level.Info(a.logger).Log("msg", "split file", "path", path, "files", n)
				fmt.Fprintf(out, "%s: %d files written to %s\n", path, n, outDir)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "Existing directory for the numbered files")
	return cmd
}

// splitParagraphs writes each run of non-empty lines to dir/N.txt, N counting
// from 1. Lines inside a file are joined by "\n" with no trailing newline.
func splitParagraphs(sc textScanner, dir string) (int, error) {
	var (
		count int
		lines []string
	)
	flush := func() error {
		if len(lines) == 0 {
			return nil
		}
		count++
		name := filepath.Join(dir, strconv.Itoa(count)+".txt")
		if err := os.WriteFile(name, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", name)
		}
		lines = lines[:0]
		return nil
	}

	for {
		line, ok, err := sc.NextLine()
		if err != nil {
			return count, err
		}
		if !ok {
			return count, flush()
		}
		if line == "" {
			if err := flush(); err != nil {
				return count, err
			}
			continue
		}
		lines = append(lines, line)
	}
}
