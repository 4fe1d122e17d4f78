package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/WJQSERVER/wscan"
)

func main() {
	fmt.Print("Please input two integers, a and b: ")

	sc := wscan.NewASCII(os.Stdin)
	defer sc.Close()

	// 输入不是整数时重新读取
	a, ok := readInt(sc, "Re-input a and b: ")
	if !ok {
		return
	}
	b, ok := readInt(sc, "Re-input b: ")
	if !ok {
		return
	}

	fmt.Printf("%d + %d = %d\n", a, b, a+b)
}

// readInt reads the next integer, prompting again after every token that is
// not one. It reports false at end of input or when stdin fails.
func readInt(sc *wscan.ASCIIScanner, prompt string) (int, bool) {
	for {
		v, ok, err := sc.NextInt()
		var parseErr *wscan.ParseError
		switch {
		case errors.As(err, &parseErr):
			fmt.Print(prompt)
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 0, false
		default:
			return v, ok
		}
	}
}
