// Package ioc provides a minimal inversion-of-control container for Go.
//
// Given a token, a Container produces a fully-wired value, resolving
// constructor dependencies recursively. There are two kinds of token:
//
//   - Class: a constructor function, func(deps...) T or func(deps...) (T, error),
//     wrapped with ClassOf. Unbound classes are constructed automatically.
//   - Abstract: a string naming an interface or concept. It can only be
//     produced through a binding.
//
// Bindings
//
// Bind returns a Binder that registers one binding per token:
//
//	c := ioc.New()
//	c.Bind(ioc.Abstract("config")).ToInstance(cfg)
//	c.Bind(ioc.Abstract("greeter")).ToSingletonClass(ioc.ClassOf(NewEnglishGreeter))
//	c.Bind(ioc.Abstract("request-id")).ToFactory(func(*ioc.Container) (any, error) {
//		return uuid.NewString(), nil
//	})
//
// Bindings are scanned in registration order and the first match wins. A token
// bound twice keeps its first binding; the second is unreachable.
//
// Declaring dependencies
//
// A class with constructor parameters must declare, in order, the tokens that
// satisfy them. Declarations are read through a DeclarationSource; the default
// is the package-level table filled by Declare and Autowire:
//
//	var ServiceClass = ioc.ClassOf(NewService) // func NewService(log *Logger, g Greeter) *Service
//
//	func init() {
//		ioc.Declare(ServiceClass, LoggerClass, ioc.Abstract("greeter"))
//	}
//
// Classes are compared by constructor. Pass top-level functions to ClassOf,
// or build a Class from a function literal once and reuse the stored value:
// two evaluations of the same literal are not guaranteed to be one class.
//
// cmd/iocgen generates these declarations from a YAML file and checks each
// dependency count against the constructor at generation time.
//
// Resolving
//
//	svc, err := ioc.Make[*Service](c, ServiceClass)
//
// Make validates declarations before constructing: a constructor with
// parameters but no declaration fails with MissingDependencyDeclarationError,
// and a declaration of the wrong length with DependencyArityMismatchError.
// Every error is returned from the Make call that triggered it.
//
// Cycles
//
// A cyclic dependency graph is not detected. Resolving one recurses until the
// stack is exhausted, or deadlocks when the cycle passes through a singleton
// binding. Break cycles at design time.
package ioc
