// Package option provides Option, the optional value type used by generated
// builders.
//
// Generated code refers to option.Option directly. Struct declarations mark a
// field as optional by spelling its type as a bare Option[T], which is usually
// done through a generic alias in the declaring package:
//
//	type Option[T any] = option.Option[T]
//
// The generator matches the name textually, so any other spelling (a
// qualified option.Option[T], or a differently named alias) makes the field
// required.
package option

import "fmt"

// Option holds either a value of type T or nothing.
// The zero value is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr returns None for a nil pointer and Some(*p) otherwise.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}

	return Some(*p)
}

// Get returns the held value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// OrElse returns the held value, or fallback when empty.
func (o Option[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}

	return fallback
}

// MustGet returns the held value and panics when empty.
func (o Option[T]) MustGet() T {
	if !o.ok {
		panic("option: MustGet called on None")
	}

	return o.value
}

// Ptr returns a pointer to a copy of the held value, or nil when empty.
func (o Option[T]) Ptr() *T {
	if !o.ok {
		return nil
	}

	v := o.value

	return &v
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}

	return fmt.Sprintf("Some(%v)", o.value)
}
