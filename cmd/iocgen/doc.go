// Command iocgen generates ioc declarations and bindings from a declaration file.
//
// The container resolves a class by looking up the dependency tokens declared
// for its constructor. Writing those ioc.Declare calls by hand is easy to get
// wrong: a dependency added to a constructor but not to its declaration only
// fails at the first Make. iocgen moves that check to go generate time.
//
//   - You write a small ioc.yaml next to your constructors.
//   - You add a //go:generate directive in the owner Go file.
//   - iocgen parses the package and checks each declared dependency list
//     against the constructor's parameters.
//   - It writes a .gen.go file holding a Class token variable per
//     constructor, an init() with the ioc.Declare calls, and
//     RegisterBindings(c *ioc.Container) as the composition root.
//
// Declaration file (ioc.yaml)
//
//	package: bootstrap
//	classes:
//	  - constructor: NewGreetingHandler   # token var: GreetingHandlerClass
//	    deps:
//	      - abstract: greeter
//	      - class: NewUUIDGenerator
//	      - type: github.com/rs/zerolog.Logger
//	  - constructor: NewUUIDGenerator
//	bindings:
//	  - abstract: handler
//	    to: class               # class | singletonClass | factory | singletonFactory | instance
//	    target: NewGreetingHandler
//
// A type dependency is emitted as the Abstract that ioc.TypeToken returns for
// that type. A class or singletonClass target must be a listed constructor;
// any other target is copied as a Go expression.
//
// Typical go:generate usage
//
//	//go:generate go run github.com/sghaida/ioc/cmd/iocgen generate --spec ioc.yaml --out ioc.gen.go
//
// Configuration
//
// Flags win over IOCGEN_* environment variables (IOCGEN_SPEC, IOCGEN_OUT,
// IOCGEN_IOC_IMPORT, IOCGEN_VERBOSE), which win over a config file given by
// --config or found as .iocgen.yaml in the working directory.
//
// A constructor iocgen cannot find in the output directory is reported as a
// warning and its declaration is emitted unchecked.
package main
