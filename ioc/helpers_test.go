package ioc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sghaida/ioc/ioc"
)

// Shared test types and constructors used across test files.
//
// Every type carries a field: pointers to distinct zero-size values may
// compare equal, which would break identity assertions.

type DB struct{ DSN string }

type Logger struct{ Level string }

type BasketService struct {
	DB     *DB
	Logger *Logger
}

type UserService struct {
	DB     *DB
	Logger *Logger
	Basket *BasketService
}

type Greeter interface{ Greet() string }

type englishGreeter struct{ word string }

func (g *englishGreeter) Greet() string { return g.word }

type GreetingService struct{ Greeter Greeter }

// Tuple records the arguments its constructor received, in order.
type Tuple struct{ Args []any }

func newDB() *DB         { return &DB{DSN: "postgres://localhost"} }
func newLogger() *Logger { return &Logger{Level: "info"} }

func newBasketService(db *DB, log *Logger) *BasketService {
	return &BasketService{DB: db, Logger: log}
}

func newUserService(db *DB, log *Logger, basket *BasketService) *UserService {
	return &UserService{DB: db, Logger: log, Basket: basket}
}

func newEnglishGreeter() *englishGreeter { return &englishGreeter{word: "hello"} }

func newGreetingService(g Greeter) *GreetingService { return &GreetingService{Greeter: g} }

func newTuple0() *Tuple            { return &Tuple{Args: []any{}} }
func newTuple1(a any) *Tuple       { return &Tuple{Args: []any{a}} }
func newTuple2(a, b any) *Tuple    { return &Tuple{Args: []any{a, b}} }
func newTuple3(a, b, c any) *Tuple { return &Tuple{Args: []any{a, b, c}} }

func newTupleVariadic(a any, _ ...int) *Tuple { return &Tuple{Args: []any{a}} }

var errBoom = errors.New("boom")

func newFailing() (*DB, error) { return nil, errBoom }

// tupleClasses indexes the tuple constructors by arity.
var tupleClasses = []ioc.Class{
	ioc.ClassOf(newTuple0),
	ioc.ClassOf(newTuple1),
	ioc.ClassOf(newTuple2),
	ioc.ClassOf(newTuple3),
}

// newContainer returns a container with its own declaration table, so tests
// do not share DefaultDeclarations.
func newContainer(t *testing.T, opts ...ioc.Option) (*ioc.Container, *ioc.Declarations) {
	t.Helper()

	decls := ioc.NewDeclarations()
	c := ioc.New(append([]ioc.Option{ioc.WithDeclarations(decls)}, opts...)...)
	require.NotNil(t, c)
	return c, decls
}

// counter returns a factory that builds a fresh *DB and counts its calls.
func counter(calls *int) ioc.Factory {
	return func(*ioc.Container) (any, error) {
		*calls++
		return &DB{DSN: "counted"}, nil
	}
}

// panickingSource is a DeclarationSource that panics on every query.
type panickingSource struct{}

func (panickingSource) DeclaredDependencies(ioc.Class) ([]ioc.Token, bool) { panic("kaboom") }
func (panickingSource) ConstructorArity(ioc.Class) int                     { panic("kaboom") }

// fixedSource declares the same dependencies and arity for every class.
type fixedSource struct {
	deps  []ioc.Token
	arity int
}

func (s fixedSource) DeclaredDependencies(ioc.Class) ([]ioc.Token, bool) { return s.deps, true }
func (s fixedSource) ConstructorArity(ioc.Class) int                     { return s.arity }
