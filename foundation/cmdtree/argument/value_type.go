// File: value_type.go
// Title: Value Types
// Description: ValueType identifies the Go type an argument parser produces.
//              Pointer types are the nullable form of their element type and
//              canonicalize to it.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package argument

import (
	"fmt"
	"reflect"
)

// ValueType is a comparable handle for a Go type. The zero value denotes
// "no type" and is used by literal nodes.
type ValueType struct {
	t reflect.Type
}

// TypeOf returns the ValueType of T. Works for interface types as well.
func TypeOf[T any]() ValueType {
	return ValueType{t: reflect.TypeOf((*T)(nil)).Elem()}
}

// Of wraps a reflect.Type
func Of(t reflect.Type) ValueType {
	return ValueType{t: t}
}

// Type returns the underlying reflect.Type, nil for the zero ValueType
func (v ValueType) Type() reflect.Type {
	return v.t
}

// IsZero reports whether v denotes no type
func (v ValueType) IsZero() bool {
	return v.t == nil
}

// Canonical strips pointer indirections so that *int32 and int32 resolve
// to the same registry entry.
func (v ValueType) Canonical() ValueType {
	t := v.t
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return ValueType{t: t}
}

// Kind returns the reflect kind of the canonical type
func (v ValueType) Kind() reflect.Kind {
	c := v.Canonical()
	if c.t == nil {
		return reflect.Invalid
	}
	return c.t.Kind()
}

// IsNumeric reports whether the canonical type is an integer or float kind
func (v ValueType) IsNumeric() bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v.Canonical() != charType
	}
	return false
}

// IsString reports whether the canonical type has string kind and is not an
// enumeration.
func (v ValueType) IsString() bool {
	return v.Kind() == reflect.String && !v.IsEnum()
}

var enumInterface = reflect.TypeOf((*Enum)(nil)).Elem()

// IsEnum reports whether the canonical type implements Enum
func (v ValueType) IsEnum() bool {
	c := v.Canonical()
	return c.t != nil && c.t.Implements(enumInterface)
}

// String returns the Go type name
func (v ValueType) String() string {
	if v.t == nil {
		return "<none>"
	}
	return v.t.String()
}

// Enum is implemented by enumeration types. EnumConstants is called on the
// zero value and must list every constant in declaration order.
type Enum interface {
	EnumConstants() []fmt.Stringer
}

// Constants returns the enumeration constants of v, nil if v is no enum
func (v ValueType) Constants() []fmt.Stringer {
	if !v.IsEnum() {
		return nil
	}
	c := v.Canonical()
	return reflect.Zero(c.t).Interface().(Enum).EnumConstants()
}

// Char is a single character argument. It is a distinct type so that it
// does not collide with int32.
type Char rune

// String returns the character as a string
func (c Char) String() string {
	return string(rune(c))
}

var charType = TypeOf[Char]()
