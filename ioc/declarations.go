package ioc

import (
	"fmt"
	"reflect"
	"sync"
)

// DeclarationSource supplies per-class dependency metadata to a Container.
//
// It is intentionally:
// - read-only from the container's point of view
// - side effect free
// - agnostic to how the metadata was captured (explicit table, reflection,
//   generated code)
//
// A panic inside an implementation is converted into DeclarationSourceError.
type DeclarationSource interface {
	// DeclaredDependencies returns the ordered dependency tokens of class and
	// whether a declaration was recorded. A recorded declaration may be empty.
	DeclaredDependencies(class Class) (deps []Token, declared bool)

	// ConstructorArity returns the number of formal constructor parameters.
	ConstructorArity(class Class) int
}

// Declarations is an in-memory DeclarationSource filled by explicit Declare
// and Autowire calls. It is safe for concurrent use.
type Declarations struct {
	mu    sync.RWMutex
	items map[classKey][]Token
}

// NewDeclarations returns an empty table.
func NewDeclarations() *Declarations {
	return &Declarations{items: map[classKey][]Token{}}
}

// DefaultDeclarations is the table used by containers created without
// WithDeclarations. Generated code fills it from init functions.
var DefaultDeclarations = NewDeclarations()

// Declare records the dependencies of class on DefaultDeclarations.
func Declare(class Class, deps ...Token) { DefaultDeclarations.Declare(class, deps...) }

// Autowire declares the dependencies of class on DefaultDeclarations from its
// parameter types.
func Autowire(class Class) { DefaultDeclarations.Autowire(class) }

// Declare records deps, in constructor order, as the dependencies of class,
// replacing any earlier declaration. It returns the table for chaining.
//
// Declare panics if class is the zero Class: declarations run at
// initialization time, where a nil class is a programming error.
func (d *Declarations) Declare(class Class, deps ...Token) *Declarations {
	if class.IsZero() {
		panic("ioc: cannot declare dependencies of a nil class")
	}

	cp := make([]Token, len(deps))
	copy(cp, deps)

	d.mu.Lock()
	d.items[class.key] = cp
	d.mu.Unlock()
	return d
}

// Autowire declares one TypeToken per constructor parameter of class, so
// NewService(log *Logger, db DB) depends on the abstracts named after *Logger
// and DB. Bind those tokens to satisfy the class.
//
// Autowire panics if class is not a function.
func (d *Declarations) Autowire(class Class) *Declarations {
	if class.IsZero() || class.ctor.Kind() != reflect.Func {
		panic(fmt.Sprintf("ioc: cannot autowire %s: not a constructor", class))
	}

	deps := make([]Token, class.Arity())
	for i := range deps {
		deps[i] = Abstract(typeName(class.paramType(i)))
	}
	return d.Declare(class, deps...)
}

// DeclaredDependencies implements DeclarationSource. The returned slice is a
// copy.
func (d *Declarations) DeclaredDependencies(class Class) ([]Token, bool) {
	d.mu.RLock()
	deps, ok := d.items[class.key]
	d.mu.RUnlock()

	if !ok {
		return nil, false
	}
	cp := make([]Token, len(deps))
	copy(cp, deps)
	return cp, true
}

// ConstructorArity implements DeclarationSource using reflection.
func (d *Declarations) ConstructorArity(class Class) int { return class.Arity() }
