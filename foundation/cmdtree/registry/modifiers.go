// File: modifiers.go
// Title: Parser Modifiers
// Description: Declarative modifiers attached to arguments and the standard
//              mappers translating them into parser parameters.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package registry

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
	"github.com/msto63/argtree/foundation/cmdtree/params"
	"github.com/msto63/argtree/foundation/core/log"
)

// ModifierKind identifies a family of modifiers
type ModifierKind string

const (
	KindRange       ModifierKind = "range"
	KindCompletions ModifierKind = "completions"
	KindStringMode  ModifierKind = "string_mode"
	KindLiberal     ModifierKind = "liberal"
)

// Modifier is a declarative hint attached to an argument
type Modifier interface {
	Kind() ModifierKind
}

// Range bounds a numeric argument. Bounds are written as strings and parsed
// in the argument's own type; an empty string leaves the bound unset.
type Range struct {
	Min, Max string
}

func (Range) Kind() ModifierKind { return KindRange }

// Completions lists comma separated suggestions for a string argument
type Completions struct {
	Values string
}

func (Completions) Kind() ModifierKind { return KindCompletions }

// StringMode selects how a string argument consumes tokens
type StringMode struct {
	Mode argument.StringMode
}

func (StringMode) Kind() ModifierKind { return KindStringMode }

// Liberal lets a boolean argument accept yes/no/on/off
type Liberal struct{}

func (Liberal) Kind() ModifierKind { return KindLiberal }

func (r *Registry) registerStandardMappers() {
	r.RegisterModifierMapper(KindRange, r.mapRange)
	r.RegisterModifierMapper(KindCompletions, mapCompletions)
	r.RegisterModifierMapper(KindStringMode, mapStringMode)
	r.RegisterModifierMapper(KindLiberal, mapLiberal)
}

func (r *Registry) mapRange(mod Modifier, vt argument.ValueType) params.Parameters {
	rng, ok := mod.(Range)
	if !ok || !vt.IsNumeric() {
		return params.Empty()
	}

	t := vt.Canonical().Type()
	resolved := params.Empty()
	for _, bound := range []struct {
		key   params.Key
		value string
	}{{params.RangeMin, rng.Min}, {params.RangeMax, rng.Max}} {
		if bound.value == "" {
			continue
		}
		v, err := parseBound(bound.value, t)
		if err != nil {
			r.logger.Warn("Ignoring unparsable range bound", log.Fields{
				"type":  vt.String(),
				"bound": string(bound.key),
				"value": bound.value,
				"error": err.Error(),
			})
			continue
		}
		resolved = resolved.With(bound.key, v)
	}
	return resolved
}

// parseBound parses s in the numeric type t and returns a value of type t
func parseBound(s string, t reflect.Type) (any, error) {
	s = strings.TrimSpace(s)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(t).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(t).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(f).Convert(t).Interface(), nil
	}
	return nil, &strconv.NumError{Func: "parseBound", Num: s, Err: strconv.ErrSyntax}
}

func mapCompletions(mod Modifier, vt argument.ValueType) params.Parameters {
	c, ok := mod.(Completions)
	if !ok || !vt.IsString() {
		return params.Empty()
	}
	return params.Single(params.Completions, SplitCompletions(c.Values))
}

// SplitCompletions removes all spaces and splits on commas, dropping empty
// entries.
func SplitCompletions(values string) []string {
	cleaned := strings.ReplaceAll(values, " ", "")
	var out []string
	for _, v := range strings.Split(cleaned, ",") {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func mapStringMode(mod Modifier, vt argument.ValueType) params.Parameters {
	m, ok := mod.(StringMode)
	if !ok || !vt.IsString() {
		return params.Empty()
	}
	return params.Single(params.StringMode, m.Mode)
}

func mapLiberal(mod Modifier, vt argument.ValueType) params.Parameters {
	if _, ok := mod.(Liberal); !ok || vt.Kind() != reflect.Bool {
		return params.Empty()
	}
	return params.Single(params.Liberal, true)
}
