package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	decodeuc "usi_bridge/internal/usecase/decode"
)

func readLines(r io.Reader) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func writeResults(w io.Writer, results []decodeuc.Result, failedOnly bool) (int, error) {
	out := json.NewEncoder(w)
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		} else if failedOnly {
			continue
		}
		if err := out.Encode(res.View()); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

// Decodes a saved engine transcript, one JSON result per input line.
// Exits with status 1 when any line failed to decode.
func main() {
	workers := pflag.IntP("workers", "w", 8, "decode goroutines")
	failedOnly := pflag.Bool("failed", false, "print only lines that failed to decode")
	pflag.Parse()

	in := io.Reader(os.Stdin)
	if path := pflag.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open transcript:", err)
			os.Exit(2)
		}
		defer f.Close()
		in = f
	}

	lines, err := readLines(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read transcript:", err)
		os.Exit(2)
	}

	results := decodeuc.NewDecodeUseCase(*workers).DecodeBatch(lines)

	out := bufio.NewWriter(os.Stdout)
	failed, err := writeResults(out, results, *failedOnly)
	if err == nil {
		err = out.Flush()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "write results:", err)
		os.Exit(2)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d lines failed to decode\n", failed, len(lines))
		os.Exit(1)
	}
}
