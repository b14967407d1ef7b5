package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/physim/internal/eval"
	"github.com/vk/physim/internal/measure"
	"github.com/zclconf/go-cty/cty"
)

// printResult renders the evaluated tree and the state vector to the app's
// output writer.
func (a *App) printResult(result *eval.Result) {
	fmt.Fprintln(a.outW, "evaluated model:")
	writeValue(a.outW, result.Root, 1)
	if len(result.Vector) > 0 {
		fmt.Fprintf(a.outW, "state vector: %v\n", result.Vector)
	}
}

func writeValue(w io.Writer, v any, depth int) {
	indent := strings.Repeat("  ", depth)
	mapping, ok := v.(*eval.Mapping)
	if !ok {
		fmt.Fprintf(w, "%s%s\n", indent, formatScalar(v))
		return
	}
	for _, key := range mapping.Keys() {
		entry, _ := mapping.Get(key)
		if child, isMapping := entry.(*eval.Mapping); isMapping {
			fmt.Fprintf(w, "%s%s:\n", indent, key)
			writeValue(w, child, depth+1)
			continue
		}
		fmt.Fprintf(w, "%s%s = %s\n", indent, key, formatScalar(entry))
	}
}

// formatScalar renders one evaluated entry for human consumption.
func formatScalar(v any) string {
	switch v := v.(type) {
	case cty.Value:
		switch {
		case v.Type().Equals(measure.QuantityType):
			q := v.EncapsulatedValue().(*measure.Quantity)
			return fmt.Sprintf("%g %s", q.Value, q.Unit)
		case v.Type().Equals(measure.UncertainType):
			u := v.EncapsulatedValue().(*measure.Uncertain)
			return fmt.Sprintf("%g (%d samples)", u.Mean, len(u.Samples))
		case v.Type() == cty.Number:
			f, _ := v.AsBigFloat().Float64()
			return fmt.Sprintf("%g", f)
		case v.Type() == cty.String:
			return fmt.Sprintf("%q", v.AsString())
		default:
			return v.GoString()
		}
	default:
		return fmt.Sprintf("%v", v)
	}
}
