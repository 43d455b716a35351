package pdfbook

import "errors"

// Sentinel errors for library operations.
var (
	// Include resolution errors. Any of these aborts the build immediately;
	// no partial document is written.
	ErrSourceNotFound     = errors.New("source file not found")
	ErrCircularInclude    = errors.New("circular include detected")
	ErrUnauthorizedAccess = errors.New("include resolves outside the project root")

	// Composition errors.
	ErrUnknownSyntaxTheme = errors.New("unknown syntax theme")
	ErrBuild              = errors.New("build failed")

	// PDF rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Scaffolding errors.
	ErrProjectExists = errors.New("project already initialized")
)
