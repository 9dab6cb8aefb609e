package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// constructorsSource declares the constructors referenced by minimalSpecYAML.
const constructorsSource = `package svc

//go:generate go run github.com/sghaida/ioc/cmd/iocgen generate --spec ioc.yaml --out ioc.gen.go

type Store struct{}
type Service struct{ store *Store }

func NewStore() *Store { return &Store{} }

func NewService(store *Store, name string) *Service { return &Service{store: store} }
`

// minimalSpecYAML passes validateSpec and matches constructorsSource.
func minimalSpecYAML() []byte {
	return []byte(`package: svc
classes:
  - constructor: NewStore
  - constructor: NewService
    deps:
      - class: NewStore
      - abstract: service.name
bindings:
  - abstract: service.name
    to: instance
    target: '"billing"'
  - abstract: service
    to: singletonClass
    target: NewService
`)
}

// newPackageDir lays out a package directory with constructorsSource and the
// minimal spec, returning the directory and the spec path.
func newPackageDir(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	writeTempFile(t, dir, "svc.go", constructorsSource)
	specPath := writeTempFile(t, dir, "ioc.yaml", string(minimalSpecYAML()))
	return dir, specPath
}

//
// -----------------------------------------------------------------------------
// Small helpers
// -----------------------------------------------------------------------------

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

// bufferLogger returns a debug-level logger writing JSON lines into a buffer.
func bufferLogger() (zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return zerolog.New(&buf).Level(zerolog.DebugLevel), &buf
}

//
// -----------------------------------------------------------------------------
// fileOps fakes
// -----------------------------------------------------------------------------

// fakeStagedFile stands in for the staged file and fails on demand.
type fakeStagedFile struct {
	writeErr error
	closeErr error
	closed   bool
}

func (f *fakeStagedFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeStagedFile) Close() error {
	f.closed = true
	return f.closeErr
}
