package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// packageSources lists the hand-written Go files of dir in name order. Tests
// and *.gen.go outputs are left out.
func packageSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() ||
			filepath.Ext(name) != ".go" ||
			strings.HasSuffix(name, "_test.go") ||
			strings.HasSuffix(name, ".gen.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

var (
	generateDirective = []byte("//go:generate ")
	iocgenCommand     = []byte("cmd/iocgen")
)

// ownerFile returns the first of files carrying a go:generate line that runs
// iocgen. Unreadable files are skipped.
func ownerFile(files []string) (string, bool) {
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		for line := range bytes.Lines(src) {
			line = bytes.TrimSpace(line)
			if bytes.HasPrefix(line, generateDirective) && bytes.Contains(line, iocgenCommand) {
				return file, true
			}
		}
	}
	return "", false
}

// importName returns the explicit name file gives importPath. It returns ""
// when the import is unnamed or missing. Blank and dot imports give no usable
// name and are passed over.
func importName(file, importPath string) (string, error) {
	parsed, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ImportsOnly)
	if err != nil {
		return "", err
	}

	for _, imp := range parsed.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != importPath || imp.Name == nil {
			continue
		}
		if name := imp.Name.Name; name != "_" && name != "." {
			return name, nil
		}
	}
	return "", nil
}
