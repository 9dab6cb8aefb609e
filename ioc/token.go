package ioc

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// Token identifies what is being requested from a Container.
//
// A Token is either a Class (a constructible type, represented by its
// constructor function) or an Abstract (an opaque name with no canonical
// constructor). Tokens are compared by key, never structurally.
type Token interface {
	// String returns the name used in logs and error messages.
	String() string

	tokenKey() any
}

// Abstract is a token that names an interface or a concept rather than a
// concrete type. It can only be produced through a binding.
//
// Abstract tokens are typically defined as package-level constants:
//
//	const (
//	  GreeterToken ioc.Abstract = "greeter"
//	  ConfigToken  ioc.Abstract = "config"
//	)
type Abstract string

// String implements Token.
func (a Abstract) String() string { return strconv.Quote(string(a)) }

func (a Abstract) tokenKey() any { return a }

// classKey identifies a constructor by code pointer and function type. A
// value that is not a function is keyed by its address, or by the value
// itself when it has no address and is comparable.
type classKey struct {
	code uintptr
	typ  reflect.Type
	val  any
}

// Class is a constructible token. It wraps a constructor function of the
// shape func(deps...) T or func(deps...) (T, error).
//
// Two Class values are equal when they wrap the same top-level function.
// Function literals have no stable identity: the compiler may give each
// inlined copy of a literal its own code, so ClassOf(func...) evaluated at
// two sites can yield two different classes. Store such a Class in a variable
// and reuse that value, as generated code does.
//
// The zero Class is the absent class and is rejected by Container.Make.
type Class struct {
	ctor reflect.Value
	key  classKey
	name string
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ClassOf returns the Class token for ctor.
//
// ClassOf never fails. A ctor of the wrong shape still yields a Class; the
// container reports it as not constructible when it is asked to build it.
// Such a Class is keyed by the value's address for pointer-like kinds and by
// the value for other comparable kinds. Slices and other incomparable values
// share one Class per type.
func ClassOf(ctor any) Class {
	v := reflect.ValueOf(ctor)
	if !v.IsValid() {
		return Class{}
	}

	c := Class{ctor: v, key: classKey{typ: v.Type()}, name: v.Type().String()}
	switch v.Kind() {
	case reflect.Func:
		if !v.IsNil() {
			c.key.code = v.Pointer()
			c.name = funcName(v.Pointer(), c.name)
		}
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		c.key.code = v.Pointer()
	default:
		if v.Comparable() {
			c.key.val = ctor
		}
	}
	return c
}

// String implements Token.
func (c Class) String() string {
	if c.IsZero() {
		return "<nil class>"
	}
	return c.name
}

func (c Class) tokenKey() any { return c.key }

// IsZero reports whether c is the absent class.
func (c Class) IsZero() bool { return !c.ctor.IsValid() }

// Type returns the type the constructor produces, or nil when c is not a
// constructor.
func (c Class) Type() reflect.Type {
	if c.notConstructible() != "" {
		return nil
	}
	return c.ctor.Type().Out(0)
}

// Arity returns the number of formal constructor parameters. A trailing
// variadic parameter is not counted. Non-constructors have arity 0.
func (c Class) Arity() int {
	if c.IsZero() || c.ctor.Kind() != reflect.Func {
		return 0
	}
	ft := c.ctor.Type()
	if ft.IsVariadic() {
		return ft.NumIn() - 1
	}
	return ft.NumIn()
}

// notConstructible returns why c cannot be invoked as a constructor, or ""
// when it can.
func (c Class) notConstructible() string {
	switch {
	case c.IsZero():
		return "class is nil"
	case c.ctor.Kind() != reflect.Func:
		return "value of type " + c.ctor.Type().String() + " is not a function"
	case c.ctor.IsNil():
		return "constructor function is nil"
	}

	ft := c.ctor.Type()
	switch {
	case ft.NumOut() == 0 || ft.NumOut() > 2:
		return "constructor must return (T) or (T, error)"
	case ft.NumOut() == 2 && ft.Out(1) != errorType:
		return "second return value must be error"
	}
	return ""
}

// argument converts a resolved dependency into the value passed at position
// i. A nil dependency becomes the zero value of the parameter type.
func (c Class) argument(i int, v any) (reflect.Value, bool) {
	want := c.ctor.Type().In(i)
	if v == nil {
		return reflect.Zero(want), true
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(want) {
		return reflect.Value{}, false
	}
	return rv, true
}

func (c Class) paramType(i int) reflect.Type { return c.ctor.Type().In(i) }

func (c Class) call(args []reflect.Value) (any, error) {
	out := c.ctor.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, ConstructorError{Class: c, Err: out[1].Interface().(error)}
	}
	return out[0].Interface(), nil
}

// normalize unwraps *Class and reports whether t names something.
func normalize(t Token) (Token, bool) {
	switch v := t.(type) {
	case nil:
		return nil, false
	case *Class:
		if v == nil || v.IsZero() {
			return nil, false
		}
		return *v, true
	case Class:
		return v, !v.IsZero()
	default:
		return t, true
	}
}

func sameToken(a, b Token) bool {
	if a == nil || b == nil {
		return false
	}
	return a.tokenKey() == b.tokenKey()
}

// tokenName is String that tolerates nil.
func tokenName(t Token) string {
	if t, ok := normalize(t); ok {
		return t.String()
	}
	return "<nil>"
}

// TypeToken returns the Abstract token named after T: the package-qualified
// type name, with a leading "*" per pointer level. It is the token
// Declarations.Autowire declares for a constructor parameter of type T.
//
//	ioc.TypeToken[*Logger]() // "*github.com/acme/app.Logger"
func TypeToken[T any]() Abstract {
	return Abstract(typeName(reflect.TypeOf((*T)(nil)).Elem()))
}

func typeName(t reflect.Type) string {
	switch {
	case t.Name() != "" && t.PkgPath() != "":
		return t.PkgPath() + "." + t.Name()
	case t.Kind() == reflect.Pointer:
		return "*" + typeName(t.Elem())
	default:
		return t.String()
	}
}

// funcName returns "pkg.Func" for the function at pc.
func funcName(pc uintptr, fallback string) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return fallback
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
