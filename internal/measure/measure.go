// Package measure carries unit and uncertainty wrappings for numeric values.
// Wrapped values travel through substitution and evaluation as opaque cty
// capsules; the state binder strips them down to plain magnitudes right
// before writing into the state vector.
package measure

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Quantity is a magnitude annotated with a unit string. Units are carried,
// not checked; dimensional analysis belongs to upstream tooling.
type Quantity struct {
	Value float64
	Unit  string
}

// Uncertain is a statistical value: a mean plus the sample draws behind it.
// For state-vector purposes it counts as a single element no matter how many
// samples it carries.
type Uncertain struct {
	Mean    float64
	Samples []float64
}

// QuantityType and UncertainType are the capsule types wrapped values use
// inside cty expressions.
var (
	QuantityType  = cty.Capsule("quantity", reflect.TypeOf(Quantity{}))
	UncertainType = cty.Capsule("uncertain", reflect.TypeOf(Uncertain{}))
)

// QuantityVal wraps a quantity into a cty value.
func QuantityVal(value float64, unit string) cty.Value {
	return cty.CapsuleVal(QuantityType, &Quantity{Value: value, Unit: unit})
}

// UncertainVal wraps a mean and its sample draws into a cty value. The
// samples are copied so the capsule does not alias caller storage.
func UncertainVal(mean float64, samples []float64) cty.Value {
	u := &Uncertain{Mean: mean, Samples: append([]float64(nil), samples...)}
	return cty.CapsuleVal(UncertainType, u)
}

// IsWrapped reports whether v carries a unit or uncertainty wrapping.
func IsWrapped(v cty.Value) bool {
	t := v.Type()
	return t.Equals(QuantityType) || t.Equals(UncertainType)
}

// Unwrap strips any unit or uncertainty wrapping, returning the bare
// magnitude as a cty number. Unwrapped values pass through unchanged.
func Unwrap(v cty.Value) cty.Value {
	switch {
	case v.Type().Equals(QuantityType):
		q := v.EncapsulatedValue().(*Quantity)
		return cty.NumberFloatVal(q.Value)
	case v.Type().Equals(UncertainType):
		u := v.EncapsulatedValue().(*Uncertain)
		return cty.NumberFloatVal(u.Mean)
	default:
		return v
	}
}

// Magnitude extracts the float64 behind a wrapped or plain numeric value.
func Magnitude(v cty.Value) (float64, error) {
	v = Unwrap(v)
	if v.Type() != cty.Number || !v.IsKnown() || v.IsNull() {
		return 0, fmt.Errorf("expected a numeric value, got %s", v.Type().FriendlyName())
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}
