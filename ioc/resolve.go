package ioc

import "reflect"

// Make is a generic helper that makes token and asserts the result to T. It
// is the recommended way to retrieve values:
//
//	greeter, err := ioc.Make[Greeter](c, ioc.Abstract("greeter"))
//
// A nil value yields the zero T. A value that is not a T fails with
// WrongTypeError.
func Make[T any](c *Container, token Token) (T, error) {
	var zero T

	v, err := c.Make(token)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}

	out, ok := v.(T)
	if !ok {
		return zero, WrongTypeError{
			Token: token,
			Want:  typeName(reflect.TypeOf((*T)(nil)).Elem()),
			Got:   reflect.TypeOf(v).String(),
		}
	}
	return out, nil
}

// MustMake is like Make but panics on error. Use it in bootstrap code and
// tests where a wiring mistake should fail fast.
func MustMake[T any](c *Container, token Token) T {
	v, err := Make[T](c, token)
	if err != nil {
		panic(err)
	}
	return v
}
