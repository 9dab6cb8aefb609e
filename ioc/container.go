package ioc

import (
	"reflect"
	"sync"

	"github.com/rs/zerolog"
)

// Factory produces a value for a binding. It receives the container Make was
// called on, so it can resolve further dependencies through it.
type Factory func(c *Container) (any, error)

// Binding associates a token with a production strategy.
//
// A singleton binding caches its first successfully produced value and
// returns it on every later resolution. A factory error caches nothing.
type Binding struct {
	Token     Token
	Factory   Factory
	Singleton bool

	mu       sync.Mutex
	resolved bool
	instance any
}

// NewBinding returns a binding ready for Container.RegisterBinding.
func NewBinding(token Token, factory Factory, singleton bool) *Binding {
	return &Binding{Token: token, Factory: factory, Singleton: singleton}
}

// Cached returns the cached singleton instance and whether one has been
// produced yet.
func (b *Binding) Cached() (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.instance, b.resolved
}

// produce runs the factory. Singleton bindings hold their lock while the
// factory runs so it is computed at most once.
func (b *Binding) produce(c *Container) (any, error) {
	if b.Factory == nil {
		return nil, NilFactoryError{Token: b.Token}
	}
	if !b.Singleton {
		return b.Factory(c)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.resolved {
		return b.instance, nil
	}
	v, err := b.Factory(c)
	if err != nil {
		return nil, err
	}
	b.instance, b.resolved = v, true
	c.log.Debug().Str("token", tokenName(b.Token)).Msg("singleton cached")
	return v, nil
}

// Container resolves tokens to fully-wired values.
//
// Bindings form an append-only list scanned in registration order; the first
// binding for a token wins and later ones are unreachable. Tokens without a
// binding are auto-constructed when they are a Class whose dependencies are
// declared in the container's DeclarationSource.
//
// Bindings should be registered before the first Make. After that the
// container is safe for concurrent use.
//
// A cyclic dependency graph is a fatal programming error: resolution recurses
// without bound, or deadlocks when the cycle passes through a singleton.
type Container struct {
	mu       sync.RWMutex
	bindings []*Binding

	decls DeclarationSource
	log   zerolog.Logger
}

// New returns an empty container. By default it reads declarations from
// DefaultDeclarations and does not log.
func New(opts ...Option) *Container {
	c := &Container{
		decls: DefaultDeclarations,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bind returns a Binder for token. Nothing is registered until one of the
// Binder's terminal methods is called.
func (c *Container) Bind(token Token) *Binder {
	return &Binder{container: c, token: token}
}

// RegisterBinding appends b to the registry. Duplicate tokens are not
// rejected; the earliest binding for a token shadows the rest.
func (c *Container) RegisterBinding(b *Binding) {
	if t, ok := normalize(b.Token); ok {
		b.Token = t
	}

	c.mu.Lock()
	c.bindings = append(c.bindings, b)
	c.mu.Unlock()

	c.log.Debug().
		Str("token", tokenName(b.Token)).
		Bool("singleton", b.Singleton).
		Msg("binding registered")
}

// Bound reports whether any binding is registered for token.
func (c *Container) Bound(token Token) bool {
	token, ok := normalize(token)
	if !ok {
		return false
	}
	return c.lookup(token) != nil
}

// Make produces a value for token.
//
// A bound token is produced by its first binding. An unbound Class is
// constructed after resolving each declared dependency, in order, through
// Make; the result is never cached. Any other token fails with
// NotConstructibleError.
func (c *Container) Make(token Token) (any, error) {
	token, ok := normalize(token)
	if !ok {
		return nil, InvalidTokenError{}
	}

	if b := c.lookup(token); b != nil {
		c.log.Debug().Str("token", token.String()).Msg("resolving bound token")
		return b.produce(c)
	}

	class, ok := token.(Class)
	if !ok {
		return nil, NotConstructibleError{Token: token}
	}
	return c.construct(class)
}

func (c *Container) lookup(token Token) *Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, b := range c.bindings {
		if sameToken(b.Token, token) {
			return b
		}
	}
	return nil
}

func (c *Container) construct(class Class) (any, error) {
	if reason := class.notConstructible(); reason != "" {
		return nil, NotConstructibleError{Token: class, Reason: reason}
	}

	deps, arity, err := c.declaration(class)
	if err != nil {
		return nil, err
	}

	if len(deps) == 0 && arity != 0 {
		return nil, MissingDependencyDeclarationError{Class: class, Arity: arity}
	}
	if len(deps) != arity {
		return nil, DependencyArityMismatchError{Class: class, Arity: arity, Declared: len(deps)}
	}
	// A custom source may disagree with the constructor itself.
	if actual := class.Arity(); len(deps) != actual {
		return nil, DependencyArityMismatchError{Class: class, Arity: actual, Declared: len(deps)}
	}

	c.log.Debug().
		Str("class", class.String()).
		Int("dependencies", len(deps)).
		Msg("constructing class")

	args := make([]reflect.Value, len(deps))
	for i, dep := range deps {
		v, err := c.Make(dep)
		if err != nil {
			return nil, DependencyError{Class: class, Index: i, Token: dep, Err: err}
		}
		arg, ok := class.argument(i, v)
		if !ok {
			return nil, DependencyTypeError{
				Class: class,
				Index: i,
				Token: dep,
				Want:  class.paramType(i),
				Got:   reflect.TypeOf(v),
			}
		}
		args[i] = arg
	}

	return class.call(args)
}

// declaration queries the DeclarationSource, converting a panic into
// DeclarationSourceError.
func (c *Container) declaration(class Class) (deps []Token, arity int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			deps, arity = nil, 0
			err = DeclarationSourceError{Class: class, Recovered: rec}
		}
	}()

	deps, declared := c.decls.DeclaredDependencies(class)
	if !declared {
		deps = nil
	}
	return deps, c.decls.ConstructorArity(class), nil
}
