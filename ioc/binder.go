package ioc

import "sync/atomic"

// Binder registers exactly one binding for a token. It is returned by
// Container.Bind and becomes inert after its first terminal call; later calls
// are ignored and logged at warn level.
//
//	c.Bind(ioc.Abstract("greeter")).ToSingletonClass(ioc.ClassOf(NewEnglishGreeter))
type Binder struct {
	container *Container
	token     Token
	used      atomic.Bool
}

// ToClass produces the token by making class on every resolution.
func (b *Binder) ToClass(class Class) {
	b.set(false, func(c *Container) (any, error) { return c.Make(class) })
}

// ToFactory produces the token by calling f on every resolution.
func (b *Binder) ToFactory(f Factory) {
	b.set(false, f)
}

// ToSingletonClass makes class on first resolution and caches the result.
func (b *Binder) ToSingletonClass(class Class) {
	b.set(true, func(c *Container) (any, error) { return c.Make(class) })
}

// ToInstance always produces v.
func (b *Binder) ToInstance(v any) {
	b.set(true, func(*Container) (any, error) { return v, nil })
}

// ToSingletonFactory calls f on first resolution and caches the result.
func (b *Binder) ToSingletonFactory(f Factory) {
	b.set(true, f)
}

func (b *Binder) set(singleton bool, f Factory) {
	if !b.used.CompareAndSwap(false, true) {
		b.container.log.Warn().
			Str("token", tokenName(b.token)).
			Msg("binder already registered a binding; ignoring")
		return
	}
	b.container.RegisterBinding(NewBinding(b.token, f, singleton))
}
