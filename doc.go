// Package pdfbook assembles a multi-file Markdown project into a single
// styled HTML document with a generated table of contents, and prints it to
// PDF through headless Chrome.
//
// A project is a directory containing an entry Markdown file, optional
// chapters pulled in with !include(path) directives, an optional
// themes/<name>/style.css stylesheet, and an optional assets/ directory
// mirrored next to the output. The include preprocessor enforces a
// filesystem sandbox: no directive can pull content from outside the
// project root.
//
// Basic usage:
//
//	b := pdfbook.NewBuilder()
//	defer b.Close()
//	err := b.Build(ctx, pdfbook.Input{
//		RootDir:    ".",
//		Source:     "main.md",
//		Title:      "My Book",
//		OutputName: "my-book",
//	})
package pdfbook
