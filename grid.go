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

// Package gridprop holds per-cell reservoir grid properties, the boxes used
// to select the cells they are edited in, and the keyword registries that
// own them.
package gridprop

import "fmt"

// Topology is the grid information the property code needs: the cartesian
// dimensions, which cells are active and how global indices map onto
// compressed (active-only) indices.
//
// Global indices run i fastest, then j, then k: g = i + j*nx + k*nx*ny.
type Topology interface {
	Dims() (nx, ny, nz int)
	CartesianSize() int
	NumActive() int

	// CellActive reports whether cell (i,j,k) is active.
	CellActive(i, j, k int) bool

	// GlobalIndex returns the global index of cell (i,j,k).
	GlobalIndex(i, j, k int) int

	// GlobalIndexOf returns the global index of the given compressed index.
	GlobalIndexOf(activeIndex int) int

	// ActiveIndex returns the compressed index of global cell g,
	// or -1 if the cell is inactive.
	ActiveIndex(g int) int
}

// Grid is a regular cartesian grid with an optional activity mask.
// It implements Topology.
type Grid struct {
	nx, ny, nz int

	activeToGlobal []int
	globalToActive []int // -1 for inactive cells
}

// NewGrid returns a grid with the given dimensions. actnum holds one
// entry per global cell, with 0 marking an inactive cell; if it is
// empty all cells are active.
func NewGrid(nx, ny, nz int, actnum []int) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("gridprop: %w: grid dimensions %dx%dx%d must be positive",
			ErrInvalidRange, nx, ny, nz)
	}
	n := nx * ny * nz
	if len(actnum) != 0 && len(actnum) != n {
		return nil, fmt.Errorf("gridprop: %w: ACTNUM has %d values but the grid has %d cells",
			ErrSizeMismatch, len(actnum), n)
	}
	g := &Grid{
		nx:             nx,
		ny:             ny,
		nz:             nz,
		globalToActive: make([]int, n),
	}
	for i := 0; i < n; i++ {
		if len(actnum) != 0 && actnum[i] == 0 {
			g.globalToActive[i] = -1
			continue
		}
		g.globalToActive[i] = len(g.activeToGlobal)
		g.activeToGlobal = append(g.activeToGlobal, i)
	}
	return g, nil
}

// Dims returns the number of cells in each direction.
func (g *Grid) Dims() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// CartesianSize returns nx*ny*nz.
func (g *Grid) CartesianSize() int { return len(g.globalToActive) }

// NumActive returns the number of active cells.
func (g *Grid) NumActive() int { return len(g.activeToGlobal) }

// GlobalIndex returns the global index of cell (i,j,k).
func (g *Grid) GlobalIndex(i, j, k int) int { return i + j*g.nx + k*g.nx*g.ny }

// IJK is the inverse of GlobalIndex.
func (g *Grid) IJK(globalIndex int) (i, j, k int) {
	i = globalIndex % g.nx
	j = (globalIndex / g.nx) % g.ny
	k = globalIndex / (g.nx * g.ny)
	return
}

// CellActive reports whether cell (i,j,k) is active.
func (g *Grid) CellActive(i, j, k int) bool {
	return g.globalToActive[g.GlobalIndex(i, j, k)] >= 0
}

// GlobalIndexOf returns the global index of the given compressed index.
func (g *Grid) GlobalIndexOf(activeIndex int) int { return g.activeToGlobal[activeIndex] }

// ActiveIndex returns the compressed index of global cell globalIndex, or -1.
func (g *Grid) ActiveIndex(globalIndex int) int { return g.globalToActive[globalIndex] }

// ActiveMap returns the global index of every active cell in compressed order.
func (g *Grid) ActiveMap() []int {
	o := make([]int, len(g.activeToGlobal))
	copy(o, g.activeToGlobal)
	return o
}

// sameShape reports whether t has the given dimensions.
func sameShape(t Topology, nx, ny, nz int) bool {
	tx, ty, tz := t.Dims()
	return tx == nx && ty == ny && tz == nz
}
