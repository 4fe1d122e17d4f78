package main

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/WJQSERVER/wscan"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// stdinPath names standard input in output.
const stdinPath = "-"

// textScanner is what the subcommands need from a UTF-8 or ASCII scanner.
type textScanner interface {
	Next() (string, bool, error)
	NextLine() (string, bool, error)
	NextFloat64() (float64, bool, error)
	SkipWhitespaces() (bool, error)
	DropNextBytes(n int) (int, bool, error)
	Offset() int64
	Close() error
}

var (
	_ textScanner = (*wscan.UTF8Scanner)(nil)
	_ textScanner = (*wscan.ASCIIScanner)(nil)
)

// open returns a scanner over path, or over stdin for "-".
func (a *app) open(path string, stdin io.Reader) (textScanner, error) {
	opts := a.cfg.options(a.logger)
	if path == stdinPath {
		if a.cfg.ASCII {
			return wscan.NewASCII(stdin, opts...), nil
		}
		return wscan.New(stdin, opts...), nil
	}

	var (
		sc  textScanner
		err error
	)
	if a.cfg.ASCII {
		sc, err = wscan.OpenASCII(path, opts...)
	} else {
		sc, err = wscan.Open(path, opts...)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	return sc, nil
}

// fileFunc scans one path and writes its report to out.
type fileFunc func(path string, sc textScanner, out io.Writer) error

// scanPaths runs fn over every path, one scanner per path. Reports are
// written to w in path order even when paths are scanned concurrently.
func (a *app) scanPaths(paths []string, stdin io.Reader, w io.Writer, fn fileFunc) error {
	if len(paths) == 0 {
		paths = []string{stdinPath}
	}

	outputs := make([]bytes.Buffer, len(paths))
	errs := make([]error, len(paths))
	run := func(i int) {
		errs[i] = a.scanPath(paths[i], stdin, &outputs[i], fn)
	}

	if !a.cfg.Concurrent || len(paths) == 1 {
		// 顺序扫描
		for i := range paths {
			run(i)
		}
	} else {
		// 并发扫描
		numWorkers := min(runtime.NumCPU(), len(paths))
		indexChan := make(chan int, len(paths))
		var wg sync.WaitGroup

		for i := 0; i < numWorkers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexChan {
					run(i)
				}
			}()
		}

		for i := range paths {
			indexChan <- i
		}
		close(indexChan)
		wg.Wait()
	}

	var allErrors []error
	for i := range paths {
		if _, err := outputs[i].WriteTo(w); err != nil {
			return errors.Wrap(err, "could not write output")
		}
		if errs[i] != nil {
			allErrors = append(allErrors, errs[i])
		}
	}
	return stderrors.Join(allErrors...)
}

func (a *app) scanPath(path string, stdin io.Reader, out io.Writer, fn fileFunc) error {
	if path == stdinPath && stdin == nil {
		stdin = os.Stdin
	}
	sc, err := a.open(path, stdin)
	if err != nil {
		return err
	}
	defer sc.Close()

	level.Debug(a.logger).Log("msg", "scanning", "path", path)
	if err := fn(path, sc, out); err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	level.Debug(a.logger).Log("msg", "scanned", "path", path, "bytes", sc.Offset())
	return nil
}
