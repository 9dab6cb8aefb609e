package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dep is one constructor dependency. Exactly one field must be set.
type Dep struct {
	// Class names the constructor of a class listed in the same file.
	Class string `yaml:"class"`

	// Abstract is an ioc.Abstract token name.
	Abstract string `yaml:"abstract"`

	// Type is a fully qualified Go type, emitted as the Abstract that
	// ioc.TypeToken returns for it (for example "*github.com/acme/app.Logger").
	Type string `yaml:"type"`
}

// Class declares a constructor and its dependencies in parameter order.
type Class struct {
	Constructor string `yaml:"constructor"`

	// Name is the generated token variable. Defaults to the constructor name
	// without its "New" prefix, plus "Class".
	Name string `yaml:"name"`

	Deps []Dep `yaml:"deps"`
}

// Binding registers one token in the generated RegisterBindings function.
type Binding struct {
	Abstract string `yaml:"abstract"`

	// To is the Binder method: class, singletonClass, factory,
	// singletonFactory or instance.
	To string `yaml:"to"`

	// Target is a listed constructor for class kinds, and a Go expression
	// in the generated package for the others.
	Target string `yaml:"target"`
}

// Spec is the full declaration file.
type Spec struct {
	Package  string    `yaml:"package"`
	Classes  []Class   `yaml:"classes"`
	Bindings []Binding `yaml:"bindings"`
}

// binderMethods maps a binding kind to the Binder method it generates.
var binderMethods = map[string]string{
	"class":            "ToClass",
	"singletonClass":   "ToSingletonClass",
	"factory":          "ToFactory",
	"singletonFactory": "ToSingletonFactory",
	"instance":         "ToInstance",
}

func (b Binding) targetsClass() bool {
	return b.To == "class" || b.To == "singletonClass"
}

// loadSpec reads and decodes a declaration file. Unknown keys are rejected.
func loadSpec(specPath string) (Spec, error) {
	data, err := os.ReadFile(specPath)
	if err != nil {
		return Spec{}, err
	}

	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return Spec{}, fmt.Errorf("%s is empty", specPath)
		}
		return Spec{}, err
	}

	for i := range spec.Classes {
		if strings.TrimSpace(spec.Classes[i].Name) == "" {
			spec.Classes[i].Name = classVarName(spec.Classes[i].Constructor)
		}
	}
	return spec, nil
}

// classVarName derives the token variable for constructor:
// NewGreetingHandler becomes GreetingHandlerClass.
func classVarName(constructor string) string {
	base := strings.TrimPrefix(constructor, "New")
	if base == "" {
		base = constructor
	}
	return base + "Class"
}

// validateSpec checks the declaration file for semantic errors.
func validateSpec(spec *Spec) error {
	var missingFields []string

	requireNonEmpty := func(fieldName, value string) {
		if strings.TrimSpace(value) == "" {
			missingFields = append(missingFields, fieldName)
		}
	}

	requireNonEmpty("package", spec.Package)
	for i, class := range spec.Classes {
		requireNonEmpty(fmt.Sprintf("classes[%d].constructor", i), class.Constructor)
	}
	for i, binding := range spec.Bindings {
		requireNonEmpty(fmt.Sprintf("bindings[%d].abstract", i), binding.Abstract)
		requireNonEmpty(fmt.Sprintf("bindings[%d].target", i), binding.Target)
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("spec missing required fields: %v", missingFields)
	}

	if !token.IsIdentifier(spec.Package) {
		return fmt.Errorf("package %q is not a valid identifier", spec.Package)
	}

	constructors := make(map[string]struct{}, len(spec.Classes))
	names := make(map[string]struct{}, len(spec.Classes))

	for _, class := range spec.Classes {
		if !token.IsIdentifier(class.Constructor) {
			return fmt.Errorf("constructor %q is not a valid identifier", class.Constructor)
		}
		if !token.IsIdentifier(class.Name) {
			return fmt.Errorf("class name %q is not a valid identifier", class.Name)
		}
		if _, ok := constructors[class.Constructor]; ok {
			return fmt.Errorf("duplicate class constructor: %s", class.Constructor)
		}
		if _, ok := names[class.Name]; ok {
			return fmt.Errorf("duplicate class name: %s", class.Name)
		}
		constructors[class.Constructor] = struct{}{}
		names[class.Name] = struct{}{}
	}

	for _, class := range spec.Classes {
		for i, dep := range class.Deps {
			if err := validateDep(dep, constructors); err != nil {
				return fmt.Errorf("%s dependency #%d: %w", class.Constructor, i, err)
			}
		}
	}

	for i, binding := range spec.Bindings {
		if _, ok := binderMethods[binding.To]; !ok {
			return fmt.Errorf("bindings[%d]: unknown binding kind %q", i, binding.To)
		}
		if binding.targetsClass() {
			if _, ok := constructors[binding.Target]; !ok {
				return fmt.Errorf("bindings[%d]: %s target %s is not a listed class", i, binding.To, binding.Target)
			}
		}
	}

	return nil
}

func validateDep(dep Dep, constructors map[string]struct{}) error {
	set := 0
	for _, v := range []string{dep.Class, dep.Abstract, dep.Type} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of class/abstract/type must be set; got %+v", dep)
	}
	if dep.Class != "" {
		if _, ok := constructors[dep.Class]; !ok {
			return fmt.Errorf("class %s is not a listed class", dep.Class)
		}
	}
	return nil
}
