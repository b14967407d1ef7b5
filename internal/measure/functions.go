package measure

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// QuantityFunc builds quantity(value, unit) for use inside model formulas.
var QuantityFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "value", Type: cty.Number},
		{Name: "unit", Type: cty.String},
	},
	Type: function.StaticReturnType(QuantityType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		value, _ := args[0].AsBigFloat().Float64()
		return QuantityVal(value, args[1].AsString()), nil
	},
})

// UncertainFunc builds uncertain(mean, samples...) for use inside model
// formulas.
var UncertainFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "mean", Type: cty.Number},
	},
	VarParam: &function.Parameter{Name: "samples", Type: cty.Number},
	Type:     function.StaticReturnType(UncertainType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		mean, _ := args[0].AsBigFloat().Float64()
		samples := make([]float64, 0, len(args)-1)
		for _, s := range args[1:] {
			f, _ := s.AsBigFloat().Float64()
			samples = append(samples, f)
		}
		return UncertainVal(mean, samples), nil
	},
})
