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
	"errors"
	"fmt"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/kr/pretty"
)

func deriveRegistries(t *testing.T) (*Registry[int], *Registry[float64]) {
	g, err := NewGrid(2, 1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	ints := NewRegistry(g, []KeywordInfo[int]{{Name: "SATNUM", Default: 1}})
	doubles := NewRegistry(g, []KeywordInfo[float64]{
		{Name: "PORO", Default: 0.25},
		{Name: "NTG", Default: 1},
	})
	ntg, err := doubles.GetKeyword("NTG")
	if err != nil {
		t.Fatal(err)
	}
	ntg.AssignData([]float64{0.5, 1})
	satnum, err := ints.GetKeyword("SATNUM")
	if err != nil {
		t.Fatal(err)
	}
	satnum.AssignData([]int{1, 2})
	doubles.AssertKeyword("PORO")
	return ints, doubles
}

func TestDeriver(t *testing.T) {
	ints, doubles := deriveRegistries(t)
	d, err := NewDeriver(map[string]string{
		"NETPORO": "PORO * NTG",
		"SCALED":  "NETPORO * SATNUM",
		"BIGGEST": "max(NETPORO, SCALED, 0.2)",
		"EXPZERO": "exp(PORO - PORO)",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(d.Variables(), []string{"NTG", "PORO", "SATNUM"}); len(diff) != 0 {
		t.Error(diff)
	}
	pos := make(map[string]int)
	for i, n := range d.Outputs() {
		pos[n] = i
	}
	if pos["NETPORO"] > pos["SCALED"] || pos["SCALED"] > pos["BIGGEST"] {
		t.Errorf("outputs out of order: %v", d.Outputs())
	}

	out, err := d.Derive(ints, doubles)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string][]float64{
		"NETPORO": {0.125, 0.25},
		"SCALED":  {0.125, 0.5},
		"BIGGEST": {0.2, 0.5},
		"EXPZERO": {1, 1},
	}
	for name, w := range want {
		if diff := pretty.Diff(out[name].Elements, w); len(diff) != 0 {
			t.Errorf("%s: %v", name, diff)
		}
	}
}

func TestDeriver_customFunction(t *testing.T) {
	ints, doubles := deriveRegistries(t)
	d, err := NewDeriver(map[string]string{"HALF": "half(NTG)"},
		map[string]govaluate.ExpressionFunction{
			"half": func(arg ...interface{}) (interface{}, error) {
				if len(arg) != 1 {
					return nil, fmt.Errorf("half needs 1 argument")
				}
				return arg[0].(float64) / 2, nil
			},
		})
	if err != nil {
		t.Fatal(err)
	}
	out, err := d.Derive(ints, doubles)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(out["HALF"].Elements, []float64{0.25, 0.5}); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestDeriver_errors(t *testing.T) {
	if _, err := NewDeriver(map[string]string{"A": "B + 1", "B": "A * 2"}, nil); err == nil {
		t.Error("cycle should fail")
	}
	if _, err := NewDeriver(map[string]string{"bad name": "1"}, nil); err == nil {
		t.Error("bad name should fail")
	}
	if _, err := NewDeriver(map[string]string{"A": "(1 +"}, nil); err == nil {
		t.Error("bad expression should fail")
	}

	ints, doubles := deriveRegistries(t)
	d, err := NewDeriver(map[string]string{"A": "PERMX * 2"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Derive(ints, doubles); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v", err)
	}
}
