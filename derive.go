/*
Copyright © 2020 the gridprop authors.
This file is part of gridprop.

gridprop is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

gridprop is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with gridprop.  If not, see <http://www.gnu.org/licenses/>.
*/

package gridprop

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/sparse"
)

var outputName = regexp.MustCompile(`^[A-Za-z]\w*$`)

// Deriver calculates new per-cell variables from expressions over grid
// properties, for example
//
//	PORV: "PORO * NTG * DX * DY * DZ"
//
// Expressions may refer to other derived variables as long as the
// references do not form a cycle.
type Deriver struct {
	exprs map[string]*govaluate.EvaluableExpression

	// order lists the derived variables so that each one comes after
	// every derived variable it refers to.
	order []string

	// inputs are the property names the expressions need.
	inputs []string
}

// NewDeriver parses the output expressions. Default functions include:
//
// 'exp(x)' and 'log(x)', the natural exponential and logarithm.
//
// 'min(x, y, ...)' and 'max(x, y, ...)'.
//
// The functions in funcs are added to, and can replace, the defaults.
func NewDeriver(outputs map[string]string, funcs map[string]govaluate.ExpressionFunction) (*Deriver, error) {
	allFuncs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("gridprop: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			return math.Exp(arg[0].(float64)), nil
		},
		"log": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("gridprop: got %d arguments for function 'log', but needs 1", len(arg))
			}
			return math.Log(arg[0].(float64)), nil
		},
		"min": reduceFunc("min", math.Min),
		"max": reduceFunc("max", math.Max),
	}
	for k, f := range funcs {
		allFuncs[k] = f
	}

	d := &Deriver{exprs: make(map[string]*govaluate.EvaluableExpression, len(outputs))}
	for name, expr := range outputs {
		if !outputName.MatchString(name) {
			return nil, fmt.Errorf("gridprop: output variable name '%s' includes unsupported characters", name)
		}
		e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, allFuncs)
		if err != nil {
			return nil, fmt.Errorf("gridprop: output variable %s: %v", name, err)
		}
		d.exprs[name] = e
	}

	// Order the outputs depth-first so references are evaluated first.
	names := make([]string, 0, len(outputs))
	for n := range outputs {
		names = append(names, n)
	}
	sort.Strings(names)
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int)
	inputs := make(map[string]struct{})
	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("gridprop: output variables refer to each other in a cycle: %v", append(path, name))
		}
		state[name] = visiting
		for _, v := range d.exprs[name].Vars() {
			if _, ok := d.exprs[v]; ok {
				if err := visit(v, append(path, name)); err != nil {
					return err
				}
			} else {
				inputs[v] = struct{}{}
			}
		}
		state[name] = done
		d.order = append(d.order, name)
		return nil
	}
	for _, n := range names {
		if err := visit(n, nil); err != nil {
			return nil, err
		}
	}
	for v := range inputs {
		d.inputs = append(d.inputs, v)
	}
	sort.Strings(d.inputs)
	return d, nil
}

func reduceFunc(name string, f func(a, b float64) float64) govaluate.ExpressionFunction {
	return func(arg ...interface{}) (interface{}, error) {
		if len(arg) == 0 {
			return nil, fmt.Errorf("gridprop: function '%s' needs at least 1 argument", name)
		}
		v := arg[0].(float64)
		for _, a := range arg[1:] {
			v = f(v, a.(float64))
		}
		return v, nil
	}
}

// Variables returns the names of the properties the expressions refer to.
func (d *Deriver) Variables() []string { return d.inputs }

// Outputs returns the names of the derived variables in evaluation order.
func (d *Deriver) Outputs() []string { return d.order }

// Derive evaluates every expression in every grid cell. Properties are
// looked up in doubles first and then in ints; neither registry is
// modified. The results are shaped [nz, ny, nx].
func (d *Deriver) Derive(ints *Registry[int], doubles *Registry[float64]) (map[string]*sparse.DenseArray, error) {
	var grid Topology
	if doubles != nil {
		grid = doubles.Grid()
	} else if ints != nil {
		grid = ints.Grid()
	} else {
		return nil, fmt.Errorf("gridprop: deriving outputs: no properties")
	}
	nx, ny, nz := grid.Dims()

	in := make(map[string]*sparse.DenseArray, len(d.inputs))
	for _, name := range d.inputs {
		if doubles != nil {
			if p, ok := doubles.Lookup(name); ok {
				in[name] = p.Array()
				continue
			}
		}
		if ints != nil {
			if p, ok := ints.Lookup(name); ok {
				in[name] = p.Array()
				continue
			}
		}
		return nil, fmt.Errorf("gridprop: deriving outputs: %w: property %s", ErrNotFound, name)
	}

	out := make(map[string]*sparse.DenseArray, len(d.order))
	for _, name := range d.order {
		out[name] = sparse.ZerosDense(nz, ny, nx)
	}
	params := make(map[string]interface{}, len(in)+len(out))
	for g := 0; g < grid.CartesianSize(); g++ {
		for name, a := range in {
			params[name] = a.Elements[g]
		}
		for _, name := range d.order {
			r, err := d.exprs[name].Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("gridprop: evaluating %s in cell %d: %v", name, g, err)
			}
			var v float64
			switch t := r.(type) {
			case float64:
				v = t
			case bool:
				if t {
					v = 1
				}
			default:
				return nil, fmt.Errorf("gridprop: %s evaluated to %T in cell %d, not a number", name, r, g)
			}
			out[name].Elements[g] = v
			params[name] = v
		}
	}
	return out, nil
}
