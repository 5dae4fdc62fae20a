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

import "fmt"

// Box is a rectangular selection of grid cells with inclusive, 0-based
// bounds. A Box does not look at cell activity.
type Box struct {
	grid                   Topology
	i1, i2, j1, j2, k1, k2 int
	global                 bool

	indices []int // computed on first use
}

// GlobalBox returns a box covering every cell in g.
func GlobalBox(g Topology) *Box {
	nx, ny, nz := g.Dims()
	return &Box{
		grid:   g,
		i2:     nx - 1,
		j2:     ny - 1,
		k2:     nz - 1,
		global: true,
	}
}

// NewBox returns the box [i1,i2]×[j1,j2]×[k1,k2] in g, with 0-based
// inclusive bounds.
func NewBox(g Topology, i1, i2, j1, j2, k1, k2 int) (*Box, error) {
	nx, ny, nz := g.Dims()
	if !validRange(i1, i2, nx) || !validRange(j1, j2, ny) || !validRange(k1, k2, nz) {
		return nil, fmt.Errorf("gridprop: %w: box i=[%d,%d] j=[%d,%d] k=[%d,%d] in a %dx%dx%d grid",
			ErrInvalidRange, i1, i2, j1, j2, k1, k2, nx, ny, nz)
	}
	return &Box{
		grid: g,
		i1:   i1, i2: i2,
		j1: j1, j2: j2,
		k1: k1, k2: k2,
	}, nil
}

// NewDeckBox is NewBox for the 1-based bounds used in deck records.
func NewDeckBox(g Topology, i1, i2, j1, j2, k1, k2 int) (*Box, error) {
	return NewBox(g, i1-1, i2-1, j1-1, j2-1, k1-1, k2-1)
}

func validRange(lo, hi, n int) bool { return 0 <= lo && lo <= hi && hi < n }

// Grid returns the grid the box was made for.
func (b *Box) Grid() Topology { return b.grid }

// IsGlobal reports whether b was created by GlobalBox.
func (b *Box) IsGlobal() bool { return b.global }

// Bounds returns the 0-based inclusive bounds of b.
func (b *Box) Bounds() (i1, i2, j1, j2, k1, k2 int) {
	return b.i1, b.i2, b.j1, b.j2, b.k1, b.k2
}

// Size returns the number of cells in b.
func (b *Box) Size() int {
	return (b.i2 - b.i1 + 1) * (b.j2 - b.j1 + 1) * (b.k2 - b.k1 + 1)
}

// Indices returns the global index of every cell in b, with k varying
// slowest and i fastest. The returned slice is shared and must not be
// modified.
func (b *Box) Indices() []int {
	if b.indices != nil {
		return b.indices
	}
	o := make([]int, 0, b.Size())
	b.ForEachIJK(func(_, _, _, g int) {
		o = append(o, g)
	})
	b.indices = o
	return o
}

// ForEachIJK calls fn for every cell in b in the same order as Indices.
func (b *Box) ForEachIJK(fn func(i, j, k, g int)) {
	for k := b.k1; k <= b.k2; k++ {
		for j := b.j1; j <= b.j2; j++ {
			for i := b.i1; i <= b.i2; i++ {
				fn(i, j, k, b.grid.GlobalIndex(i, j, k))
			}
		}
	}
}

func (b *Box) String() string {
	if b.global {
		return "global box"
	}
	return fmt.Sprintf("box i=[%d,%d] j=[%d,%d] k=[%d,%d]", b.i1, b.i2, b.j1, b.j2, b.k1, b.k2)
}
