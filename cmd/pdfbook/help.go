package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprint(w, `pdfbook - assemble Markdown projects into styled HTML and PDF books

Usage:
  pdfbook <command> [flags]

Commands:
  init      Scaffold a new book project
  build     Build the book once
  watch     Rebuild whenever project files change
  version   Print the version
  help      Print this help

Run 'pdfbook <command> --help' for command flags.
`)
}

func printInitUsage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  pdfbook init [flags]

Flags:
      --dir string        directory to initialize (default ".")
      --title string      book title (default "My Book")
      --author string     book author (default "Your Name")
      --language string   language tag (default "en")
`)
}

func printBuildUsage(w io.Writer, name string) {
	fmt.Fprintf(w, `Usage:
  pdfbook %s [flags]

Flags:
      --root string      project root directory (default ".")
  -c, --config string    config file path (default <root>/book.yaml)
  -t, --timeout string   PDF generation timeout (e.g. 30s, 2m)
      --html-only        output HTML only, skip PDF
  -q, --quiet            only show errors
  -v, --verbose          show detailed progress
`, name)
}
