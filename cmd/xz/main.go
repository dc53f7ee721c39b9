// Command xz decompresses a single xz stream to stdout or to a file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MaxWipfli/xz/xz"
)

var (
	outputFile = flag.String("o", "", "output file path (default stdout)")
	version    = flag.Bool("version", false, "print version and exit")
)

const appVersion = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.xz>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Decompresses a single xz stream to stdout.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s archive.tar.xz > archive.tar\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o archive.tar archive.tar.xz\n", os.Args[0])
	}
	flag.Parse()

	if *version {
		fmt.Printf("xz version %s\n", appVersion)
		os.Exit(0)
	}

	var in io.Reader
	switch flag.NArg() {
	case 0:
		in = os.Stdin
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	default:
		fmt.Fprintf(os.Stderr, "Error: at most one input file may be given\n")
		flag.Usage()
		os.Exit(1)
	}

	out := os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outputFile, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := decompress(in, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func decompress(in io.Reader, out io.Writer) error {
	r, err := xz.NewReader(bufio.NewReader(in))
	if err != nil {
		return fmt.Errorf("opening xz stream: %w", err)
	}
	w := bufio.NewWriter(out)
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("decompressing: %w", err)
	}
	return w.Flush()
}
