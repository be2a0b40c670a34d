// File: numeric.go
// Title: Numeric Parsers
// Description: Generic parsers for signed, unsigned and floating point
//              types. Bounds default to the natural limits of the type and
//              values outside them are rejected, never clamped.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package argument

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/msto63/argtree/foundation/cmdtree/params"
)

// Signed is the set of signed integer types
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of floating point types
type Float interface {
	~float32 | ~float64
}

func bitSize[T any]() int {
	var zero T
	return reflect.TypeOf(zero).Bits()
}

// SignedBounds returns the natural limits of T
func SignedBounds[T Signed]() (T, T) {
	bits := uint(bitSize[T]())
	var hi int64 = math.MaxInt64 >> (64 - bits)
	lo := -hi - 1
	return T(lo), T(hi)
}

// UnsignedBounds returns the natural limits of T
func UnsignedBounds[T Unsigned]() (T, T) {
	bits := uint(bitSize[T]())
	var hi uint64 = math.MaxUint64 >> (64 - bits)
	return 0, T(hi)
}

// FloatBounds returns the natural limits of T
func FloatBounds[T Float]() (T, T) {
	hi := math.MaxFloat64
	if bitSize[T]() == 32 {
		hi = math.MaxFloat32
	}
	return T(-hi), T(hi)
}

// IntegerParser parses signed integers within [min, max]
type IntegerParser[T Signed] struct {
	min, max T
}

// NewIntegerParser reads params.RangeMin and params.RangeMax as values of T
func NewIntegerParser[T Signed](p params.Parameters) *IntegerParser[T] {
	lo, hi := SignedBounds[T]()
	return &IntegerParser[T]{
		min: params.Lookup(p, params.RangeMin, lo),
		max: params.Lookup(p, params.RangeMax, hi),
	}
}

func (p *IntegerParser[T]) ValueType() ValueType { return TypeOf[T]() }

func (p *IntegerParser[T]) Range() Range {
	lo, hi := SignedBounds[T]()
	return Range{Min: p.min, Max: p.max, MinSet: p.min != lo, MaxSet: p.max != hi}
}

func (p *IntegerParser[T]) Parse(_ any, input []string) (any, int, error) {
	if len(input) == 0 {
		return nil, 0, &ParseError{Type: p.ValueType(), Reason: ReasonNoInput}
	}
	token := input[0]
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, 0, p.outOfRange(token)
		}
		return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonInvalidNumber, Err: err}
	}
	if n < int64(p.min) || n > int64(p.max) {
		return nil, 0, p.outOfRange(token)
	}
	return T(n), 1, nil
}

func (p *IntegerParser[T]) outOfRange(token string) error {
	return &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonOutOfRange, Min: p.min, Max: p.max}
}

func (p *IntegerParser[T]) Suggestions(_ any, partial string) []string {
	return digitSuggestions(partial, func(candidate string) bool {
		n, err := strconv.ParseInt(candidate, 10, 64)
		return err == nil && n >= int64(p.min) && n <= int64(p.max)
	})
}

// UnsignedParser parses unsigned integers within [min, max]
type UnsignedParser[T Unsigned] struct {
	min, max T
}

// NewUnsignedParser reads params.RangeMin and params.RangeMax as values of T
func NewUnsignedParser[T Unsigned](p params.Parameters) *UnsignedParser[T] {
	lo, hi := UnsignedBounds[T]()
	return &UnsignedParser[T]{
		min: params.Lookup(p, params.RangeMin, lo),
		max: params.Lookup(p, params.RangeMax, hi),
	}
}

func (p *UnsignedParser[T]) ValueType() ValueType { return TypeOf[T]() }

func (p *UnsignedParser[T]) Range() Range {
	lo, hi := UnsignedBounds[T]()
	return Range{Min: p.min, Max: p.max, MinSet: p.min != lo, MaxSet: p.max != hi}
}

func (p *UnsignedParser[T]) Parse(_ any, input []string) (any, int, error) {
	if len(input) == 0 {
		return nil, 0, &ParseError{Type: p.ValueType(), Reason: ReasonNoInput}
	}
	token := input[0]
	if strings.HasPrefix(token, "-") {
		if _, err := strconv.ParseInt(token, 10, 64); err == nil || errors.Is(err, strconv.ErrRange) {
			return nil, 0, p.outOfRange(token)
		}
	}
	n, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, 0, p.outOfRange(token)
		}
		return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonInvalidNumber, Err: err}
	}
	if n < uint64(p.min) || n > uint64(p.max) {
		return nil, 0, p.outOfRange(token)
	}
	return T(n), 1, nil
}

func (p *UnsignedParser[T]) outOfRange(token string) error {
	return &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonOutOfRange, Min: p.min, Max: p.max}
}

func (p *UnsignedParser[T]) Suggestions(_ any, partial string) []string {
	return digitSuggestions(partial, func(candidate string) bool {
		n, err := strconv.ParseUint(candidate, 10, 64)
		return err == nil && n >= uint64(p.min) && n <= uint64(p.max)
	})
}

// FloatParser parses floating point numbers within [min, max]. NaN is
// rejected as an invalid number.
type FloatParser[T Float] struct {
	min, max T
}

// NewFloatParser reads params.RangeMin and params.RangeMax as values of T
func NewFloatParser[T Float](p params.Parameters) *FloatParser[T] {
	lo, hi := FloatBounds[T]()
	return &FloatParser[T]{
		min: params.Lookup(p, params.RangeMin, lo),
		max: params.Lookup(p, params.RangeMax, hi),
	}
}

func (p *FloatParser[T]) ValueType() ValueType { return TypeOf[T]() }

func (p *FloatParser[T]) Range() Range {
	lo, hi := FloatBounds[T]()
	return Range{Min: p.min, Max: p.max, MinSet: p.min != lo, MaxSet: p.max != hi}
}

func (p *FloatParser[T]) Parse(_ any, input []string) (any, int, error) {
	if len(input) == 0 {
		return nil, 0, &ParseError{Type: p.ValueType(), Reason: ReasonNoInput}
	}
	token := input[0]
	f, err := strconv.ParseFloat(token, bitSize[T]())
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonInvalidNumber, Err: err}
	}
	if math.IsNaN(f) {
		return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonInvalidNumber}
	}
	if err != nil || f < float64(p.min) || f > float64(p.max) {
		return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonOutOfRange, Min: p.min, Max: p.max}
	}
	return T(f), 1, nil
}

func (p *FloatParser[T]) Suggestions(any, string) []string {
	return nil
}

// digitSuggestions proposes partial itself and partial followed by each
// digit, keeping the candidates accepted by valid.
func digitSuggestions(partial string, valid func(string) bool) []string {
	var out []string
	if partial != "" && valid(partial) {
		out = append(out, partial)
	}
	for d := '0'; d <= '9'; d++ {
		candidate := partial + string(d)
		if valid(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}
