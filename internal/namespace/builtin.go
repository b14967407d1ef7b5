package namespace

import (
	"math"

	"github.com/vk/physim/internal/measure"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Builtin returns a namespace preloaded with the math-oriented functions and
// constants model formulas conventionally use, plus the measure wrappers.
func Builtin() *Namespace {
	ns := New()

	ns.DefineVar("pi", cty.NumberFloatVal(math.Pi))
	ns.DefineVar("e", cty.NumberFloatVal(math.E))

	ns.DefineFunc("abs", stdlib.AbsoluteFunc)
	ns.DefineFunc("ceil", stdlib.CeilFunc)
	ns.DefineFunc("floor", stdlib.FloorFunc)
	ns.DefineFunc("log", stdlib.LogFunc)
	ns.DefineFunc("pow", stdlib.PowFunc)
	ns.DefineFunc("signum", stdlib.SignumFunc)
	ns.DefineFunc("max", stdlib.MaxFunc)
	ns.DefineFunc("min", stdlib.MinFunc)
	ns.DefineFunc("int", stdlib.IntFunc)

	ns.DefineFunc("sqrt", unaryMathFunc(math.Sqrt))
	ns.DefineFunc("exp", unaryMathFunc(math.Exp))
	ns.DefineFunc("sin", unaryMathFunc(math.Sin))
	ns.DefineFunc("cos", unaryMathFunc(math.Cos))
	ns.DefineFunc("tan", unaryMathFunc(math.Tan))
	ns.DefineFunc("atan2", binaryMathFunc(math.Atan2))

	ns.DefineFunc("quantity", measure.QuantityFunc)
	ns.DefineFunc("uncertain", measure.UncertainFunc)

	return ns
}

// unaryMathFunc lifts a float64 math function into a cty function.
func unaryMathFunc(impl func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "x", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			return cty.NumberFloatVal(impl(x)), nil
		},
	})
}

func binaryMathFunc(impl func(float64, float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "x", Type: cty.Number},
			{Name: "y", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			y, _ := args[1].AsBigFloat().Float64()
			return cty.NumberFloatVal(impl(x, y)), nil
		},
	})
}
