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
	"testing"

	"github.com/kr/pretty"
)

func TestBox(t *testing.T) {
	g, err := NewGrid(4, 4, 2, nil)
	if err != nil {
		t.Fatal(err)
	}

	global := GlobalBox(g)
	if !global.IsGlobal() {
		t.Error("global box should be global")
	}
	if global.Size() != 32 {
		t.Errorf("global size = %d, want 32", global.Size())
	}
	for i, gi := range global.Indices() {
		if i != gi {
			t.Fatalf("global index %d = %d", i, gi)
		}
	}

	b, err := NewBox(g, 1, 2, 0, 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if b.IsGlobal() {
		t.Error("sub box should not be global")
	}
	want := []int{17, 18, 21, 22}
	if diff := pretty.Diff(b.Indices(), want); len(diff) != 0 {
		t.Error(diff)
	}
	var visited []int
	b.ForEachIJK(func(i, j, k, gi int) {
		if g.GlobalIndex(i, j, k) != gi {
			t.Errorf("(%d,%d,%d) has index %d", i, j, k, gi)
		}
		visited = append(visited, gi)
	})
	if diff := pretty.Diff(visited, want); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestNewDeckBox(t *testing.T) {
	g, err := NewGrid(5, 5, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewDeckBox(g, 1, 5, 2, 2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	i1, i2, j1, j2, k1, k2 := b.Bounds()
	if diff := pretty.Diff([]int{i1, i2, j1, j2, k1, k2}, []int{0, 4, 1, 1, 0, 0}); len(diff) != 0 {
		t.Error(diff)
	}
	if diff := pretty.Diff(b.Indices(), []int{5, 6, 7, 8, 9}); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestNewBox_invalid(t *testing.T) {
	g, err := NewGrid(4, 4, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range [][6]int{
		{-1, 0, 0, 0, 0, 0},
		{0, 4, 0, 0, 0, 0},
		{2, 1, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 2},
	} {
		if _, err := NewBox(g, b[0], b[1], b[2], b[3], b[4], b[5]); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%v: got %v", b, err)
		}
	}
}
