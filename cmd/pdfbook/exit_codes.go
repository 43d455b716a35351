package main

import (
	"errors"
	"os"

	"github.com/hugobch/pdfbook"
	"github.com/hugobch/pdfbook/internal/config"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess = 0 // completed without error
	ExitGeneral = 1 // unclassified failure
	ExitUsage   = 2 // bad flags, command, or configuration
	ExitIO      = 3 // filesystem problem
	ExitBrowser = 4 // headless browser or PDF failure
)

// exitCodeFor maps an error to a process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUnknownCommand),
		errors.Is(err, ErrInvalidTimeout),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrFieldTooLong),
		errors.Is(err, config.ErrInvalidMargin),
		errors.Is(err, config.ErrMissingSource),
		errors.Is(err, pdfbook.ErrUnknownSyntaxTheme),
		errors.Is(err, pdfbook.ErrProjectExists):
		return ExitUsage

	case errors.Is(err, pdfbook.ErrSourceNotFound),
		errors.Is(err, pdfbook.ErrUnauthorizedAccess),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIO

	case errors.Is(err, pdfbook.ErrBrowserConnect),
		errors.Is(err, pdfbook.ErrPageCreate),
		errors.Is(err, pdfbook.ErrPageLoad),
		errors.Is(err, pdfbook.ErrPDFGeneration):
		return ExitBrowser

	default:
		return ExitGeneral
	}
}
