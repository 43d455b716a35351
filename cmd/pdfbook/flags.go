package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// initFlags holds flags for the init command.
type initFlags struct {
	dir      string
	title    string
	author   string
	language string
}

// buildFlags holds flags for the build and watch commands.
type buildFlags struct {
	common   commonFlags
	root     string
	timeout  string
	htmlOnly bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path (default <root>/book.yaml)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// parseInitFlags parses init command flags.
func parseInitFlags(args []string, usageOut io.Writer) (*initFlags, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	f := &initFlags{}

	fs.StringVar(&f.dir, "dir", ".", "directory to initialize")
	fs.StringVar(&f.title, "title", "", "book title")
	fs.StringVar(&f.author, "author", "", "book author")
	fs.StringVar(&f.language, "language", "", "language tag (e.g. en, fr)")

	fs.Usage = func() { printInitUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseBuildFlags parses flags shared by the build and watch commands.
func parseBuildFlags(name string, args []string, usageOut io.Writer) (*buildFlags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &buildFlags{}

	fs.StringVar(&f.root, "root", ".", "project root directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g. 30s, 2m)")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printBuildUsage(usageOut, name) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
