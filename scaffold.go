package pdfbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hugobch/pdfbook/internal/fileutil"
)

// ConfigFileName is the project configuration file created by InitProject
// and read by the CLI.
const ConfigFileName = "book.yaml"

const configTemplate = `title: "%s"
author: "%s"
language: "%s"
theme: "dark"
syntax_theme: "github"
source: "main.md"
custom_css: ""
output:
  filename: "%s"
# Margins in inches (optional)
# margins:
#   top: 0.5
#   bottom: 0.5
#   left: 0.5
#   right: 0.5
`

const mainTemplate = `# %s

By %s

!toc

!include(chapters/chapter1.md)
`

const chapterTemplate = `## Chapter 1

Content of chapter 1.
`

// InitProject scaffolds a new project in dir: configuration, entry file, a
// starter chapter, and an assets directory. Empty title, author or language
// fall back to placeholder values. Fails with ErrProjectExists when the
// directory already holds a configuration file.
func InitProject(dir, title, author, language string) error {
	title = stringOr(title, "My Book")
	author = stringOr(author, "Your Name")
	language = stringOr(language, defaultLanguage)

	configPath := filepath.Join(dir, ConfigFileName)
	if fileutil.FileExists(configPath) {
		return fmt.Errorf("%w: %s", ErrProjectExists, configPath)
	}

	stem := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	config := fmt.Sprintf(configTemplate, title, author, language, stem)
	if err := os.WriteFile(configPath, []byte(config), filePermissions); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrBuild, configPath, err)
	}

	mainPath := filepath.Join(dir, "main.md")
	if err := os.WriteFile(mainPath, fmt.Appendf(nil, mainTemplate, title, author), filePermissions); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrBuild, mainPath, err)
	}

	chaptersDir := filepath.Join(dir, "chapters")
	if err := os.MkdirAll(chaptersDir, dirPermissions); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrBuild, chaptersDir, err)
	}
	chapterPath := filepath.Join(chaptersDir, "chapter1.md")
	if err := os.WriteFile(chapterPath, []byte(chapterTemplate), filePermissions); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrBuild, chapterPath, err)
	}

	assetsDir := filepath.Join(dir, "assets")
	if err := os.MkdirAll(assetsDir, dirPermissions); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrBuild, assetsDir, err)
	}

	return nil
}
