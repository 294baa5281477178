package actions

import (
	"fmt"
	"reflect"

	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// Action is one callable operation of a component.
type Action struct {
	Name string
	// ParamTypes are type names understood by the TypeRegistry. They are
	// derived from the Go signature when the action is built with one of the
	// Func/Proc helpers.
	ParamTypes []string
	ReturnType string
	Fn         func(instance any, args []any) (any, error)

	goParams []reflect.Type
	goResult reflect.Type
}

// Func0 builds an action taking no argument.
func Func0[C, R any](name string, fn func(C) (R, error)) Action {
	return Action{
		Name: name,
		Fn: func(instance any, args []any) (any, error) {
			c, err := receiver[C](instance)
			if err != nil {
				return nil, err
			}
			return fn(c)
		},
		goResult: reflect.TypeFor[R](),
	}
}

// Func1 builds an action taking one argument.
func Func1[C, A, R any](name string, fn func(C, A) (R, error)) Action {
	return Action{
		Name: name,
		Fn: func(instance any, args []any) (any, error) {
			c, err := receiver[C](instance)
			if err != nil {
				return nil, err
			}
			a, err := argument[A](args, 0)
			if err != nil {
				return nil, err
			}
			return fn(c, a)
		},
		goParams: []reflect.Type{reflect.TypeFor[A]()},
		goResult: reflect.TypeFor[R](),
	}
}

// Func2 builds an action taking two arguments.
func Func2[C, A, B, R any](name string, fn func(C, A, B) (R, error)) Action {
	return Action{
		Name: name,
		Fn: func(instance any, args []any) (any, error) {
			c, err := receiver[C](instance)
			if err != nil {
				return nil, err
			}
			a, err := argument[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := argument[B](args, 1)
			if err != nil {
				return nil, err
			}
			return fn(c, a, b)
		},
		goParams: []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()},
		goResult: reflect.TypeFor[R](),
	}
}

// Proc1 builds an action taking one argument and returning nothing.
func Proc1[C, A any](name string, fn func(C, A) error) Action {
	a := Func1(name, func(c C, a A) (any, error) {
		return nil, fn(c, a)
	})
	a.goResult = nil
	return a
}

// Proc2 builds an action taking two arguments and returning nothing.
func Proc2[C, A, B any](name string, fn func(C, A, B) error) Action {
	a := Func2(name, func(c C, a A, b B) (any, error) {
		return nil, fn(c, a, b)
	})
	a.goResult = nil
	return a
}

func receiver[C any](instance any) (C, error) {
	c, ok := instance.(C)
	if !ok {
		var zero C
		return zero, fmt.Errorf("resource of type %T cannot serve this action, want %s", instance, reflect.TypeFor[C]())
	}
	return c, nil
}

func argument[A any](args []any, i int) (A, error) {
	var zero A
	if i >= len(args) {
		return zero, srvErrors.NewArgumentCountMismatchError(i+1, len(args))
	}
	a, ok := args[i].(A)
	if !ok {
		return zero, srvErrors.NewArgumentDeserializationError("argument %d is %T, want %s", i, args[i], reflect.TypeFor[A]())
	}
	return a, nil
}
