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

package deck

import (
	"math"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestExpand(t *testing.T) {
	vals, dflt, err := expand([]string{"3*0.2", "2*", "'ABC'", "'1*2'", " 5 "})
	if err != nil {
		t.Fatal(err)
	}
	wantVals := []string{"0.2", "0.2", "0.2", "", "", "ABC", "1*2", "5"}
	wantDflt := []bool{false, false, false, true, true, false, false, false}
	if diff := pretty.Diff(vals, wantVals); len(diff) != 0 {
		t.Error(diff)
	}
	if diff := pretty.Diff(dflt, wantDflt); len(diff) != 0 {
		t.Error(diff)
	}

	for _, bad := range []string{"x*2", "0*1", "-1*3"} {
		if _, _, err := expand([]string{bad}); err == nil {
			t.Errorf("%q should fail", bad)
		}
	}
}

func TestItem(t *testing.T) {
	it, err := NewItem("V", "1.5D2", "2", "2.5", "1*")
	if err != nil {
		t.Fatal(err)
	}
	if it.Len() != 4 {
		t.Fatalf("len = %d", it.Len())
	}
	if f, err := it.Float(0); err != nil || f != 150 {
		t.Errorf("Float(0) = %g, %v", f, err)
	}
	if i, err := it.Int(1); err != nil || i != 2 {
		t.Errorf("Int(1) = %d, %v", i, err)
	}
	if _, err := it.Int(2); err == nil {
		t.Error("fractional value should not be an integer")
	}
	if !it.DefaultApplied(3) {
		t.Error("value 4 should be defaulted")
	}
	if f, err := it.Float(3); err == nil || !math.IsNaN(f) {
		t.Errorf("Float of defaulted value = %g, %v", f, err)
	}
	if f, err := it.FloatOr(3, 7); err != nil || f != 7 {
		t.Errorf("FloatOr = %g, %v", f, err)
	}
	if i, err := it.IntOr(3, 9); err != nil || i != 9 {
		t.Errorf("IntOr = %d, %v", i, err)
	}
	if s := it.TextOr(3, "J-"); s != "J-" {
		t.Errorf("TextOr = %q", s)
	}
	if s := it.TextOr(1, "J-"); s != "2" {
		t.Errorf("TextOr = %q", s)
	}
}

func TestNewRecord_layout(t *testing.T) {
	r, err := NewRecord("equals", []string{"PORO", "0.25", "1", "2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Items) != len(operatorItems) {
		t.Fatalf("got %d items", len(r.Items))
	}
	field, err := r.Item("FIELD")
	if err != nil {
		t.Fatal(err)
	}
	if field.Text(0) != "PORO" {
		t.Errorf("FIELD = %q", field.Text(0))
	}
	k2, err := r.Item("K2")
	if err != nil {
		t.Fatal(err)
	}
	if !k2.DefaultApplied(0) {
		t.Error("trailing items should be defaulted")
	}
	if _, err := r.Item("NOPE"); err == nil {
		t.Error("missing item should fail")
	}

	if _, err := NewRecord("BOX", []string{"7*1"}); err == nil {
		t.Error("too many values should fail")
	}
}

func TestNewRecord_data(t *testing.T) {
	r, err := NewRecord("PORO", []string{"2*0.1", "0.3"})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Items) != 1 || r.Items[0].Len() != 3 {
		t.Fatalf("got %# v", pretty.Formatter(r))
	}
}

func TestReadTOML(t *testing.T) {
	const c = `
[[Keyword]]
Name = "dimens"
File = "CASE.DATA"
Line = 2
Records = [["2", "1", "1"]]

[[Keyword]]
Name = "PORO"
File = "CASE.DATA"
Line = 5
Records = [["0.1", "0.2"]]

[[Keyword]]
Name = "PORO"
File = "CASE.DATA"
Line = 8
Records = [["2*0.3"]]
`
	d, err := ReadTOML(strings.NewReader(c))
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Keywords) != 3 {
		t.Fatalf("got %d keywords", len(d.Keywords))
	}
	if !d.HasKeyword("DIMENS") {
		t.Error("keyword names should be upper case")
	}
	if d.Count("PORO") != 2 {
		t.Errorf("PORO count = %d", d.Count("PORO"))
	}
	last := d.Last("PORO")
	if last.Location.Line != 8 || !last.IsDataKeyword() {
		t.Errorf("last PORO: %v", last)
	}
	if last.String() != "PORO in CASE.DATA line 8" {
		t.Errorf("String() = %q", last.String())
	}
	if d.Last("PERMX") != nil {
		t.Error("PERMX should not be present")
	}
	if d.Last("DIMENS").DataItem() != nil {
		t.Error("DIMENS is not a data keyword")
	}
}

func TestReadTOML_errors(t *testing.T) {
	for name, c := range map[string]string{
		"noName":    "[[Keyword]]\nLine = 1\n",
		"badRepeat": "[[Keyword]]\nName = \"PORO\"\nRecords = [[\"x*1\"]]\n",
		"tooMany":   "[[Keyword]]\nName = \"DIMENS\"\nRecords = [[\"1\", \"2\", \"3\", \"4\"]]\n",
		"syntax":    "[[Keyword\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadTOML(strings.NewReader(c)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
