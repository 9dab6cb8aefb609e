package ioc

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var (
	// ErrInvalidToken is matched by InvalidTokenError.
	ErrInvalidToken = errors.New("ioc: invalid token")

	// ErrNotConstructible is matched by NotConstructibleError.
	ErrNotConstructible = errors.New("ioc: not constructible")

	// ErrMissingDependencyDeclaration is matched by MissingDependencyDeclarationError.
	ErrMissingDependencyDeclaration = errors.New("ioc: missing dependency declaration")

	// ErrDependencyArityMismatch is matched by DependencyArityMismatchError.
	ErrDependencyArityMismatch = errors.New("ioc: dependency arity mismatch")

	// ErrDependencyType is matched by DependencyTypeError.
	ErrDependencyType = errors.New("ioc: dependency has wrong type")

	// ErrNilFactory is matched by NilFactoryError.
	ErrNilFactory = errors.New("ioc: nil factory")

	// ErrWrongType is matched by WrongTypeError.
	ErrWrongType = errors.New("ioc: resolved value has wrong type")

	// ErrDeclarationSourcePanic is wrapped by DeclarationSourceError when a
	// DeclarationSource implementation panics.
	ErrDeclarationSourcePanic = errors.New("ioc: panic in declaration source")
)

// InvalidTokenError is returned when Make is asked for a nil token or the
// zero Class.
type InvalidTokenError struct{}

// Error implements the error interface.
func (InvalidTokenError) Error() string {
	return "ioc: cannot make a nil token; a dependency graph must not reference an absent token"
}

// Is reports whether target is ErrInvalidToken.
func (InvalidTokenError) Is(target error) bool { return target == ErrInvalidToken }

// NotConstructibleError is returned when no binding matches a token and the
// token cannot be auto-constructed: it is an Abstract, or a Class whose
// constructor has the wrong shape.
type NotConstructibleError struct {
	Token Token

	// Reason is set for Class tokens and says what is wrong with the constructor.
	Reason string
}

// Error implements the error interface.
func (e NotConstructibleError) Error() string {
	if a, ok := e.Token.(Abstract); ok {
		// Example: ioc: "greeter" is not a constructor; did you forget to bind it?
		return "ioc: " + a.String() + " is not a constructor; did you forget to bind it?\n\n" +
			"  container.Bind(ioc.Abstract(" + a.String() + ")).ToClass(ioc.ClassOf(NewImpl))"
	}
	msg := "ioc: " + tokenName(e.Token) + " is not constructible"
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg + "; bind it with ToInstance or ToFactory instead"
}

// Is reports whether target is ErrNotConstructible.
func (NotConstructibleError) Is(target error) bool { return target == ErrNotConstructible }

// MissingDependencyDeclarationError is returned when a constructor takes
// parameters but no dependencies were declared for it, which usually means
// the class was never declared at all.
type MissingDependencyDeclarationError struct {
	Class Class
	Arity int
}

// Error implements the error interface.
func (e MissingDependencyDeclarationError) Error() string {
	// Example: ioc: app.NewService has 2 dependencies, but has declared 0. Did you forget ioc.Declare or ioc.Autowire?
	return "ioc: " + e.Class.String() + " has " + strconv.Itoa(e.Arity) +
		" dependencies, but has declared 0. Did you forget ioc.Declare or ioc.Autowire?"
}

// Is reports whether target is ErrMissingDependencyDeclaration.
func (MissingDependencyDeclarationError) Is(target error) bool {
	return target == ErrMissingDependencyDeclaration
}

// DependencyArityMismatchError is returned when the number of declared
// dependencies differs from the constructor's arity.
type DependencyArityMismatchError struct {
	Class    Class
	Arity    int
	Declared int
}

// Error implements the error interface.
func (e DependencyArityMismatchError) Error() string {
	return "ioc: " + e.Class.String() + " has " + strconv.Itoa(e.Arity) +
		" dependencies, but has declared " + strconv.Itoa(e.Declared) +
		". Check its ioc.Declare call."
}

// Is reports whether target is ErrDependencyArityMismatch.
func (DependencyArityMismatchError) Is(target error) bool {
	return target == ErrDependencyArityMismatch
}

// DependencyError records which dependency of a class failed to resolve.
// It unwraps to the underlying failure.
type DependencyError struct {
	Class Class
	Index int
	Token Token
	Err   error
}

// Error implements the error interface.
func (e DependencyError) Error() string {
	return "ioc: resolving dependency #" + strconv.Itoa(e.Index) + " (" + tokenName(e.Token) +
		") of " + e.Class.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying failure.
func (e DependencyError) Unwrap() error { return e.Err }

// DependencyTypeError is returned when a resolved dependency cannot be passed
// to the constructor parameter at its position.
type DependencyTypeError struct {
	Class Class
	Index int
	Token Token
	Want  reflect.Type
	Got   reflect.Type
}

// Error implements the error interface.
func (e DependencyTypeError) Error() string {
	return fmt.Sprintf("ioc: dependency #%d (%s) of %s resolved to %s, not assignable to %s",
		e.Index, tokenName(e.Token), e.Class, e.Got, e.Want)
}

// Is reports whether target is ErrDependencyType.
func (DependencyTypeError) Is(target error) bool { return target == ErrDependencyType }

// ConstructorError wraps an error returned by a class constructor.
type ConstructorError struct {
	Class Class
	Err   error
}

// Error implements the error interface.
func (e ConstructorError) Error() string {
	return "ioc: constructing " + e.Class.String() + ": " + e.Err.Error()
}

// Unwrap returns the constructor's error.
func (e ConstructorError) Unwrap() error { return e.Err }

// NilFactoryError is returned when the matching binding has no factory.
type NilFactoryError struct{ Token Token }

// Error implements the error interface.
func (e NilFactoryError) Error() string {
	return "ioc: binding for " + tokenName(e.Token) + " has a nil factory"
}

// Is reports whether target is ErrNilFactory.
func (NilFactoryError) Is(target error) bool { return target == ErrNilFactory }

// WrongTypeError is returned by Make[T] when the produced value is not a T.
type WrongTypeError struct {
	Token Token
	Want  string
	Got   string
}

// Error implements the error interface.
func (e WrongTypeError) Error() string {
	// Example: ioc: "greeter" resolved to *app.Logger, want app.Greeter
	return "ioc: " + tokenName(e.Token) + " resolved to " + e.Got + ", want " + e.Want
}

// Is reports whether target is ErrWrongType.
func (WrongTypeError) Is(target error) bool { return target == ErrWrongType }

// DeclarationSourceError is returned when a DeclarationSource panics while
// being queried for a class.
type DeclarationSourceError struct {
	Class     Class
	Recovered any
}

// Error implements the error interface.
func (e DeclarationSourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDeclarationSourcePanic, e.Class, e.Recovered)
}

// Unwrap returns ErrDeclarationSourcePanic.
func (DeclarationSourceError) Unwrap() error { return ErrDeclarationSourcePanic }
