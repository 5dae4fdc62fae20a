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

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/gridprop/deck"
	"gonum.org/v1/gonum/floats"
)

// Scalar is the set of value types a Property can hold.
type Scalar interface {
	~int | ~float64
}

// KeywordInfo describes a supported keyword: its name, the value cells
// take before anything is assigned to them, and its unit.
type KeywordInfo[T Scalar] struct {
	Name    string
	Default T
	Unit    string
}

// Property holds one value per global grid cell for a single keyword,
// along with a flag per cell recording whether the value is still the
// keyword default.
//
// A Property is not safe for concurrent mutation.
type Property[T Scalar] struct {
	info       KeywordInfo[T]
	nx, ny, nz int

	data      []T
	defaulted []bool

	inactiveLoaded []bool // allocated on first use
}

// NewProperty returns a property for an nx×ny×nz grid with every cell set
// to info.Default and marked as defaulted.
func NewProperty[T Scalar](nx, ny, nz int, info KeywordInfo[T]) *Property[T] {
	n := nx * ny * nz
	p := &Property[T]{
		info:      info,
		nx:        nx,
		ny:        ny,
		nz:        nz,
		data:      make([]T, n),
		defaulted: make([]bool, n),
	}
	for i := range p.data {
		p.data[i] = info.Default
		p.defaulted[i] = true
	}
	return p
}

// Keyword returns the keyword name.
func (p *Property[T]) Keyword() string { return p.info.Name }

// Info returns the keyword description the property was created with.
func (p *Property[T]) Info() KeywordInfo[T] { return p.info }

func (p *Property[T]) NX() int            { return p.nx }
func (p *Property[T]) NY() int            { return p.ny }
func (p *Property[T]) NZ() int            { return p.nz }
func (p *Property[T]) CartesianSize() int { return len(p.data) }

// Data returns the values indexed by global cell index. The slice is
// shared with p.
func (p *Property[T]) Data() []T { return p.data }

// WasDefaulted returns the defaulted flags indexed by global cell index.
// The slice is shared with p.
func (p *Property[T]) WasDefaulted() []bool { return p.defaulted }

// InactiveLoaded returns, in increasing order, the global indices of
// inactive cells whose current value was given explicitly by
// LoadFromKeyword with allowInactive set to false. A later load, set,
// mask or assignment of the cell removes it from the list; CopyFrom takes
// the record of the source.
func (p *Property[T]) InactiveLoaded() []int {
	var o []int
	for g, v := range p.inactiveLoaded {
		if v {
			o = append(o, g)
		}
	}
	return o
}

func (p *Property[T]) errorf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("gridprop: %s: %w: %s", p.info.Name, kind, fmt.Sprintf(format, args...))
}

// indices returns the cells selected by box, where a nil box selects
// every cell.
func (p *Property[T]) indices(box *Box) ([]int, error) {
	if box == nil {
		o := make([]int, len(p.data))
		for i := range o {
			o[i] = i
		}
		return o, nil
	}
	if !sameShape(box.grid, p.nx, p.ny, p.nz) {
		nx, ny, nz := box.grid.Dims()
		return nil, p.errorf(ErrDimensionMismatch, "%s is in a %dx%dx%d grid but the property is %dx%dx%d",
			box, nx, ny, nz, p.nx, p.ny, p.nz)
	}
	return box.Indices(), nil
}

func (p *Property[T]) checkShape(other *Property[T]) error {
	if other.nx != p.nx || other.ny != p.ny || other.nz != p.nz {
		return p.errorf(ErrDimensionMismatch, "%s is %dx%dx%d but %s is %dx%dx%d",
			other.info.Name, other.nx, other.ny, other.nz, p.info.Name, p.nx, p.ny, p.nz)
	}
	return nil
}

// apply sets every selected cell to f(g, value) and updates the defaulted
// flags according to the policy of op.
func (p *Property[T]) apply(op Operation, idx []int, f func(g int, v T) T) {
	policy := op.DefaultPolicy()
	for _, g := range idx {
		old := p.data[g]
		v := f(g, old)
		p.data[g] = v
		switch policy {
		case Clear:
			p.defaulted[g] = false
			p.markInactive(g, false)
		case ClearChanged:
			if !same(v, old) {
				p.defaulted[g] = false
			}
		}
	}
}

// same is equality where NaN equals NaN.
func same[T Scalar](a, b T) bool { return a == b || (a != a && b != b) }

// LoadFromKeyword loads the values of data keyword kw into the cells of box,
// or into every cell if box is nil. The keyword item must hold exactly one
// value per selected cell. Explicit values clear the defaulted flag;
// defaulted values reset the cell to the keyword default and mark it as
// defaulted.
//
// If allowInactive is false, explicit values that land on inactive cells
// are written anyway and recorded so they can be listed with InactiveLoaded.
// Finding inactive cells needs the grid of box, so a nil box can only be
// used with allowInactive set to true; use GlobalBox to load every cell.
// Every cell the load writes has its inactive record replaced.
func (p *Property[T]) LoadFromKeyword(kw *deck.Keyword, box *Box, allowInactive bool) error {
	item := kw.DataItem()
	if item == nil {
		return p.errorf(ErrUnsupportedRecordShape, "%s is not a grid data keyword", kw)
	}
	idx, err := p.indices(box)
	if err != nil {
		return err
	}
	if item.Len() != len(idx) {
		return p.errorf(ErrSizeMismatch, "%s has %d values but %d cells are selected", kw, item.Len(), len(idx))
	}

	vals := make([]T, len(idx))
	dflt := make([]bool, len(idx))
	for i := range idx {
		if item.DefaultApplied(i) {
			vals[i] = p.info.Default
			dflt[i] = true
			continue
		}
		f, err := item.Float(i)
		if err != nil {
			return p.errorf(ErrUnsupportedRecordShape, "%s: %v", kw, err)
		}
		if vals[i], err = FromFloat[T](f); err != nil {
			return p.errorf(ErrOutOfRange, "%s value %d: %v", kw, i+1, err)
		}
	}

	if box == nil && !allowInactive {
		return p.errorf(ErrInvalidRange, "%s: inactive cells can not be found without a box", kw)
	}

	for i, g := range idx {
		p.data[g] = vals[i]
		p.defaulted[g] = dflt[i]
		p.markInactive(g, !allowInactive && !dflt[i] && box.grid.ActiveIndex(g) < 0)
	}
	return nil
}

// markInactive sets the inactive load record of cell g.
func (p *Property[T]) markInactive(g int, loaded bool) {
	if p.inactiveLoaded == nil {
		if !loaded {
			return
		}
		p.inactiveLoaded = make([]bool, len(p.data))
	}
	p.inactiveLoaded[g] = loaded
}

// CountInactiveLoaded returns how many of the cells in box are listed by
// InactiveLoaded.
func (p *Property[T]) CountInactiveLoaded(box *Box) (int, error) {
	idx, err := p.indices(box)
	if err != nil || p.inactiveLoaded == nil {
		return 0, err
	}
	var n int
	for _, g := range idx {
		if p.inactiveLoaded[g] {
			n++
		}
	}
	return n, nil
}

// AssignData replaces all values at once and marks every cell as assigned.
func (p *Property[T]) AssignData(values []T) error {
	if len(values) != len(p.data) {
		return p.errorf(ErrSizeMismatch, "got %d values for %d cells", len(values), len(p.data))
	}
	p.apply(OpAssign, mustIndices(p), func(g int, _ T) T { return values[g] })
	return nil
}

func mustIndices[T Scalar](p *Property[T]) []int {
	idx, _ := p.indices(nil)
	return idx
}

// SetScalar sets every cell in box to value.
func (p *Property[T]) SetScalar(value T, box *Box) error {
	idx, err := p.indices(box)
	if err != nil {
		return err
	}
	p.apply(OpSet, idx, func(int, T) T { return value })
	return nil
}

// Add adds delta to every cell in box.
func (p *Property[T]) Add(delta T, box *Box) error {
	idx, err := p.indices(box)
	if err != nil {
		return err
	}
	p.apply(OpAdd, idx, func(_ int, v T) T { return v + delta })
	return nil
}

// Scale multiplies every cell in box by factor.
func (p *Property[T]) Scale(factor T, box *Box) error {
	idx, err := p.indices(box)
	if err != nil {
		return err
	}
	p.apply(OpScale, idx, func(_ int, v T) T { return v * factor })
	return nil
}

// MultiplyWith multiplies the cells in box, or every cell if box is nil,
// by the matching cells of other.
func (p *Property[T]) MultiplyWith(other *Property[T], box *Box) error {
	if err := p.checkShape(other); err != nil {
		return err
	}
	idx, err := p.indices(box)
	if err != nil {
		return err
	}
	p.apply(OpMultiply, idx, func(g int, v T) T { return v * other.data[g] })
	return nil
}

// CopyFrom copies the values, defaulted flags and inactive load records
// of the cells in box from other.
func (p *Property[T]) CopyFrom(other *Property[T], box *Box) error {
	if err := p.checkShape(other); err != nil {
		return err
	}
	idx, err := p.indices(box)
	if err != nil {
		return err
	}
	for _, g := range idx {
		p.data[g] = other.data[g]
		p.defaulted[g] = other.defaulted[g]
		p.markInactive(g, other.inactiveLoaded != nil && other.inactiveLoaded[g])
	}
	return nil
}

// MinValue raises every cell in box that is below bound to bound.
// Clamped cells are no longer defaulted.
func (p *Property[T]) MinValue(bound T, box *Box) error {
	idx, err := p.indices(box)
	if err != nil {
		return err
	}
	p.apply(OpMinValue, idx, func(_ int, v T) T {
		if v < bound {
			return bound
		}
		return v
	})
	return nil
}

// MaxValue lowers every cell in box that is above bound to bound.
// Clamped cells are no longer defaulted.
func (p *Property[T]) MaxValue(bound T, box *Box) error {
	idx, err := p.indices(box)
	if err != nil {
		return err
	}
	p.apply(OpMaxValue, idx, func(_ int, v T) T {
		if v > bound {
			return bound
		}
		return v
	})
	return nil
}

// CheckLimits returns an error if any value is outside [min, max].
func (p *Property[T]) CheckLimits(min, max T) error {
	for g, v := range p.data {
		if v < min || v > max {
			return p.errorf(ErrOutOfRange, "cell %d has value %v outside [%v, %v]", g, v, min, max)
		}
	}
	return nil
}

// InitMask returns a mask that is true for every cell equal to value.
func (p *Property[T]) InitMask(value T) []bool {
	mask := make([]bool, len(p.data))
	for g, v := range p.data {
		mask[g] = v == value
	}
	return mask
}

// MaskedSet sets every cell where mask is true to value.
func (p *Property[T]) MaskedSet(value T, mask []bool) error {
	if len(mask) != len(p.data) {
		return p.errorf(ErrSizeMismatch, "mask has %d entries for %d cells", len(mask), len(p.data))
	}
	var idx []int
	for g, m := range mask {
		if m {
			idx = append(idx, g)
		}
	}
	p.apply(OpMaskedSet, idx, func(int, T) T { return value })
	return nil
}

// CellsEqual returns the cells whose value equals value. With
// activeIndexing the result holds compressed indices of active cells;
// otherwise it holds the global indices of all matching cells.
func (p *Property[T]) CellsEqual(value T, grid Topology, activeIndexing bool) ([]int, error) {
	if !activeIndexing {
		return p.IndexEqual(value), nil
	}
	if !sameShape(grid, p.nx, p.ny, p.nz) {
		return nil, p.errorf(ErrDimensionMismatch, "grid does not match the property")
	}
	var o []int
	for c := 0; c < grid.NumActive(); c++ {
		if p.data[grid.GlobalIndexOf(c)] == value {
			o = append(o, c)
		}
	}
	return o, nil
}

// IndexEqual returns the global indices of the cells equal to value.
func (p *Property[T]) IndexEqual(value T) []int {
	var o []int
	for g, v := range p.data {
		if v == value {
			o = append(o, g)
		}
	}
	return o
}

// CompressedCopy returns the values of the active cells in compressed
// index order.
func (p *Property[T]) CompressedCopy(grid Topology) ([]T, error) {
	if !sameShape(grid, p.nx, p.ny, p.nz) {
		return nil, p.errorf(ErrDimensionMismatch, "grid does not match the property")
	}
	o := make([]T, grid.NumActive())
	for c := range o {
		o[c] = p.data[grid.GlobalIndexOf(c)]
	}
	return o, nil
}

// Array returns a copy of the values as a [nz, ny, nx] array.
func (p *Property[T]) Array() *sparse.DenseArray {
	a := sparse.ZerosDense(p.nz, p.ny, p.nx)
	for g, v := range p.data {
		a.Elements[g] = float64(v)
	}
	return a
}

// ContainsNaN reports whether any value of p is NaN.
func ContainsNaN(p *Property[float64]) bool {
	return floats.HasNaN(p.data)
}

// FromFloat converts v to T. Values with a fractional part can not be
// converted to an integer type.
func FromFloat[T Scalar](v float64) (T, error) {
	t := T(v)
	half := 0.5
	if T(half) != 0 { // floating point T
		return t, nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || float64(t) != v {
		return t, fmt.Errorf("%g is not an integer", v)
	}
	return t, nil
}
