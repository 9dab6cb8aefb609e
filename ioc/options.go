package ioc

import "github.com/rs/zerolog"

// Option configures a Container during New.
type Option func(*Container)

// WithDeclarations sets the DeclarationSource consulted when an unbound
// Class is auto-constructed. The default is DefaultDeclarations; a nil src
// keeps it.
func WithDeclarations(src DeclarationSource) Option {
	return func(c *Container) {
		if src != nil {
			c.decls = src
		}
	}
}

// WithLogger sets the logger for registration and resolution events. They
// are logged at debug level, except reuse of a spent Binder (warn).
func WithLogger(l zerolog.Logger) Option {
	return func(c *Container) {
		c.log = l
	}
}
