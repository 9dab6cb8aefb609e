// Package ioc is the root of a small inversion-of-control toolkit for Go.
//
// The repository is laid out as:
//
//   - ioc: the container. Bind tokens to factories, classes or instances and
//     Make fully-wired values; unbound classes are constructed from their
//     declared dependencies.
//   - cmd/iocgen: a code generator that turns an ioc.yaml declaration file into
//     class tokens, ioc.Declare calls and a RegisterBindings composition root,
//     checking every declaration against its constructor first.
//   - examples/bootstrap: a runnable HTTP service wired entirely through the
//     container.
//
// Wiring stays in one place (the composition root), constructors stay plain
// functions, and a declaration that does not match its constructor fails
// before anything is built.
package ioc
