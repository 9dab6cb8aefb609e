package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	"github.com/rs/zerolog"
)

// parseConstructorArities returns the parameter count of every free function
// declared in files. A trailing variadic parameter is not counted, the same
// way the container counts it. Files that do not parse contribute what the
// parser recovered.
func parseConstructorArities(files []string) map[string]int {
	fileSet := token.NewFileSet()
	arities := make(map[string]int)

	for _, filePath := range files {
		parsedFile, _ := parser.ParseFile(fileSet, filePath, nil, parser.AllErrors)
		if parsedFile == nil {
			continue
		}

		for _, declaration := range parsedFile.Decls {
			funcDecl, ok := declaration.(*ast.FuncDecl)
			if !ok || funcDecl.Recv != nil || funcDecl.Name == nil {
				continue
			}
			arities[funcDecl.Name.Name] = paramCount(funcDecl.Type.Params)
		}
	}

	return arities
}

func paramCount(params *ast.FieldList) int {
	if params == nil {
		return 0
	}

	n := 0
	for _, field := range params.List {
		if _, variadic := field.Type.(*ast.Ellipsis); variadic {
			continue
		}
		if len(field.Names) == 0 {
			n++
			continue
		}
		n += len(field.Names)
	}
	return n
}

// checkArities applies the container's declaration rules at generation time:
// a constructor with parameters needs a declaration, and the declared count
// must equal its arity. Constructors missing from arities are skipped with a
// warning since they may live in another file set.
func checkArities(spec *Spec, arities map[string]int, log zerolog.Logger) error {
	var errs []error

	for _, class := range spec.Classes {
		arity, ok := arities[class.Constructor]
		if !ok {
			log.Warn().
				Str("constructor", class.Constructor).
				Msg("constructor not found in package; skipping arity check")
			continue
		}

		declared := len(class.Deps)
		switch {
		case declared == 0 && arity != 0:
			errs = append(errs, fmt.Errorf(
				"%s has %d dependencies, but has declared 0; add them under deps", class.Constructor, arity))
		case declared != arity:
			errs = append(errs, fmt.Errorf(
				"%s has %d dependencies, but has declared %d", class.Constructor, arity, declared))
		default:
			log.Debug().
				Str("constructor", class.Constructor).
				Int("arity", arity).
				Msg("constructor arity ok")
		}
	}

	return errors.Join(errs...)
}
