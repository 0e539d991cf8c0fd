// Package query builds predicates over schema-less records.
//
// A Predicate is a small tagged value rather than a closure, so it can be
// logged, compared in tests and extended with new kinds. Match is the
// interpreter that evaluates a Predicate against a single record.
package query

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/google/cel-go/cel"
)

// Kind identifies how a Predicate is evaluated.
type Kind string

const (
	KindEquals Kind = "equals" // record[Field] == Value
	KindExpr   Kind = "expr"   // CEL boolean expression over doc
)

// Predicate selects records for search, update and remove.
// The zero value matches nothing.
type Predicate struct {
	Kind  Kind
	Field string
	Value any

	src     string
	program cel.Program
}

// FieldRef names a single record field.
type FieldRef struct {
	name string
}

// Field returns an accessor for the named record field.
func Field(name string) FieldRef {
	return FieldRef{name: name}
}

// Equals returns a predicate that holds when the field is present and equal to v.
func (f FieldRef) Equals(v any) Predicate {
	return Predicate{Kind: KindEquals, Field: f.name, Value: v}
}

// String renders the predicate for logs.
func (p Predicate) String() string {
	switch p.Kind {
	case KindEquals:
		return fmt.Sprintf("%s == %v", p.Field, p.Value)
	case KindExpr:
		return p.src
	default:
		return "<none>"
	}
}

// Match reports whether record satisfies p.
func Match(p Predicate, record map[string]any) bool {
	switch p.Kind {
	case KindEquals:
		v, ok := record[p.Field]
		if !ok {
			return false
		}
		return Equal(v, p.Value)
	case KindExpr:
		return evalExpr(p.program, record)
	default:
		return false
	}
}

// Equal compares two record values. Numbers compare by value regardless of
// their Go type, so an int id still matches after a JSON round trip turned it
// into a float64.
func Equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	if _, ok := toFloat(b); ok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		if math.IsNaN(n) {
			return 0, false
		}
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
