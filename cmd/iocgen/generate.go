package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// generate runs the whole pipeline: load, validate, check arities against
// the package sources, render and write.
func generate(opts options, log zerolog.Logger) error {
	if strings.TrimSpace(opts.Spec) == "" || strings.TrimSpace(opts.Out) == "" {
		return errors.New("usage: iocgen generate --spec <file.ioc.yaml> --out <file.gen.go>")
	}
	if strings.TrimSpace(opts.IOCImport) == "" {
		opts.IOCImport = defaultIOCImport
	}

	spec, err := loadSpec(opts.Spec)
	if err != nil {
		return fmt.Errorf("loading spec: %w", err)
	}
	if err := validateSpec(&spec); err != nil {
		return fmt.Errorf("invalid spec %s: %w", opts.Spec, err)
	}
	log.Debug().
		Str("spec", opts.Spec).
		Int("classes", len(spec.Classes)).
		Int("bindings", len(spec.Bindings)).
		Msg("spec loaded")

	generatedFilePath := filepath.Clean(opts.Out)
	packageDir := filepath.Dir(generatedFilePath)

	files, err := packageSources(packageDir)
	if err != nil {
		return fmt.Errorf("reading package %s: %w", packageDir, err)
	}
	if err := checkArities(&spec, parseConstructorArities(files), log); err != nil {
		return fmt.Errorf("dependency declarations do not match constructors: %w", err)
	}

	alias := defaultAlias(opts.IOCImport)
	if owner, ok := ownerFile(files); ok {
		if name, err := importName(owner, opts.IOCImport); err == nil && name != "" {
			alias = name
		}
		log.Debug().Str("owner", owner).Str("alias", alias).Msg("using owner file imports")
	} else {
		log.Debug().Str("dir", packageDir).Msg("no owner file; using default import name")
	}

	src, err := render(spec, opts.IOCImport, alias, filepath.Base(opts.Spec))
	if err != nil {
		return err
	}

	if err := osFiles.publish(generatedFilePath, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", generatedFilePath, err)
	}

	log.Info().
		Str("out", generatedFilePath).
		Int("classes", len(spec.Classes)).
		Int("bindings", len(spec.Bindings)).
		Msg("generated")
	return nil
}
