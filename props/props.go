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

// Package props builds the grid properties of a simulation deck by
// applying its keywords, in deck order, to integer and floating point
// property registries.
package props

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gridprop"
	"github.com/spatialmodel/gridprop/deck"
)

// NewGrid returns the grid described by the DIMENS and ACTNUM keywords
// of d. If there is no ACTNUM every cell is active.
func NewGrid(d *deck.Deck) (*gridprop.Grid, error) {
	dimens := d.Last("DIMENS")
	if dimens == nil {
		return nil, fmt.Errorf("props: %w: the deck has no DIMENS keyword", gridprop.ErrNotFound)
	}
	if len(dimens.Records) != 1 {
		return nil, fmt.Errorf("props: %s: %w: want 1 record", dimens, gridprop.ErrUnsupportedRecordShape)
	}
	var n [3]int
	for i, it := range dimens.Records[0].Items {
		v, err := it.Int(0)
		if err != nil {
			return nil, fmt.Errorf("props: %s: %v", dimens, err)
		}
		n[i] = v
	}

	var actnum []int
	if kw := d.Last("ACTNUM"); kw != nil {
		item := kw.DataItem()
		if item == nil {
			return nil, fmt.Errorf("props: %s: %w", kw, gridprop.ErrUnsupportedRecordShape)
		}
		actnum = make([]int, item.Len())
		for i := range actnum {
			v, err := item.IntOr(i, 1)
			if err != nil {
				return nil, fmt.Errorf("props: %s: %v", kw, err)
			}
			actnum[i] = v
		}
	}
	g, err := gridprop.NewGrid(n[0], n[1], n[2], actnum)
	if err != nil {
		return nil, fmt.Errorf("props: %v", err)
	}
	return g, nil
}

// Manager holds the grid properties of a deck.
type Manager struct {
	// AllowInactive, when false, makes the Manager warn about explicit
	// values given to inactive cells.
	AllowInactive bool

	// Log receives progress messages. It defaults to the logrus standard
	// logger.
	Log logrus.FieldLogger

	grid    *gridprop.Grid
	ints    *gridprop.Registry[int]
	doubles *gridprop.Registry[float64]

	box *gridprop.Box // current BOX, or the global box
}

// NewManager returns a Manager with no properties for grid.
func NewManager(grid *gridprop.Grid) *Manager {
	return &Manager{
		Log:     logrus.StandardLogger(),
		grid:    grid,
		ints:    gridprop.NewRegistry(grid, IntKeywords()),
		doubles: gridprop.NewRegistry(grid, DoubleKeywords()),
		box:     gridprop.GlobalBox(grid),
	}
}

// Load builds the grid of d and processes every keyword in it.
func Load(d *deck.Deck, allowInactive bool) (*Manager, error) {
	g, err := NewGrid(d)
	if err != nil {
		return nil, err
	}
	m := NewManager(g)
	m.AllowInactive = allowInactive
	if err := m.Process(d); err != nil {
		return nil, err
	}
	return m, nil
}

// Grid returns the grid the properties belong to.
func (m *Manager) Grid() *gridprop.Grid { return m.grid }

// Ints returns the integer property registry.
func (m *Manager) Ints() *gridprop.Registry[int] { return m.ints }

// Doubles returns the floating point property registry.
func (m *Manager) Doubles() *gridprop.Registry[float64] { return m.doubles }

// Process applies the keywords of d in order. It stops at the first error.
func (m *Manager) Process(d *deck.Deck) error {
	for _, kw := range d.Keywords {
		if err := m.processKeyword(kw); err != nil {
			return err
		}
	}
	m.box = gridprop.GlobalBox(m.grid)
	return nil
}

func (m *Manager) processKeyword(kw *deck.Keyword) error {
	switch kw.Name {
	case "BOX":
		if len(kw.Records) != 1 {
			return fmt.Errorf("props: %s: %w: want 1 record", kw, gridprop.ErrUnsupportedRecordShape)
		}
		b, err := m.recordBox(kw.Records[0])
		if err != nil {
			return fmt.Errorf("props: %s: %w", kw, err)
		}
		m.box = b
		return nil
	case "ENDBOX":
		m.box = gridprop.GlobalBox(m.grid)
		return nil
	case "EQUALS":
		return m.operate(kw, gridprop.OpSet)
	case "ADD":
		return m.operate(kw, gridprop.OpAdd)
	case "MULTIPLY":
		return m.operate(kw, gridprop.OpScale)
	case "MINVALUE":
		return m.operate(kw, gridprop.OpMinValue)
	case "MAXVALUE":
		return m.operate(kw, gridprop.OpMaxValue)
	case "COPY":
		return m.copy(kw)
	}

	switch {
	case m.ints.SupportsKeyword(kw.Name):
		p, err := m.ints.GetKeyword(kw.Name)
		if err != nil {
			return err
		}
		return m.load(kw, p.LoadFromKeyword, p.CountInactiveLoaded)
	case m.doubles.SupportsKeyword(kw.Name):
		p, err := m.doubles.GetKeyword(kw.Name)
		if err != nil {
			return err
		}
		return m.load(kw, p.LoadFromKeyword, p.CountInactiveLoaded)
	}
	m.Log.WithFields(logrus.Fields{
		"keyword":  kw.Name,
		"location": kw.Location.String(),
	}).Debug("props: skipping keyword")
	return nil
}

// load loads kw into the current box and warns about the inactive cells
// this load gave values to.
func (m *Manager) load(kw *deck.Keyword, load func(*deck.Keyword, *gridprop.Box, bool) error, countInactive func(*gridprop.Box) (int, error)) error {
	if err := load(kw, m.box, m.AllowInactive); err != nil {
		return fmt.Errorf("props: %s: %w", kw, err)
	}
	n, err := countInactive(m.box)
	if err != nil {
		return fmt.Errorf("props: %s: %w", kw, err)
	}
	if n > 0 {
		m.Log.WithFields(logrus.Fields{
			"keyword":  kw.Name,
			"location": kw.Location.String(),
			"cells":    n,
		}).Warn("props: values given for inactive cells")
	}
	return nil
}

// recordBox returns the box given by the I1 through K2 items of r.
// Defaulted bounds are taken from the current box.
func (m *Manager) recordBox(r *deck.Record) (*gridprop.Box, error) {
	var cur [6]int
	cur[0], cur[1], cur[2], cur[3], cur[4], cur[5] = m.box.Bounds()
	var b [6]int
	for i, name := range []string{"I1", "I2", "J1", "J2", "K1", "K2"} {
		it, err := r.Item(name)
		if err != nil {
			return nil, err
		}
		if b[i], err = it.IntOr(0, cur[i]+1); err != nil {
			return nil, err
		}
	}
	if cur == [6]int{b[0] - 1, b[1] - 1, b[2] - 1, b[3] - 1, b[4] - 1, b[5] - 1} {
		return m.box, nil
	}
	return gridprop.NewDeckBox(m.grid, b[0], b[1], b[2], b[3], b[4], b[5])
}

// operate applies every record of an EQUALS, ADD, MULTIPLY, MINVALUE or
// MAXVALUE keyword.
func (m *Manager) operate(kw *deck.Keyword, op gridprop.Operation) error {
	for _, r := range kw.Records {
		if err := m.operateRecord(r, op); err != nil {
			return fmt.Errorf("props: %s: %w", kw, err)
		}
	}
	return nil
}

func (m *Manager) operateRecord(r *deck.Record, op gridprop.Operation) error {
	field, err := r.Item("FIELD")
	if err != nil {
		return err
	}
	name := field.TextOr(0, "")
	value, err := r.Item("VALUE")
	if err != nil {
		return err
	}
	v, err := value.Float(0)
	if err != nil {
		return err
	}
	box, err := m.recordBox(r)
	if err != nil {
		return err
	}

	switch {
	case m.ints.SupportsKeyword(name):
		p, err := m.ints.GetKeyword(name)
		if err != nil {
			return err
		}
		iv, err := gridprop.FromFloat[int](v)
		if err != nil {
			return fmt.Errorf("%s %v: %w: %v", name, op, gridprop.ErrOutOfRange, err)
		}
		return apply(p, op, iv, box)
	case m.doubles.SupportsKeyword(name):
		p, err := m.doubles.GetKeyword(name)
		if err != nil {
			return err
		}
		return apply(p, op, v, box)
	}
	return fmt.Errorf("%w: %s can not be the target of %v", gridprop.ErrUnsupportedKeyword, name, op)
}

func apply[T gridprop.Scalar](p *gridprop.Property[T], op gridprop.Operation, v T, box *gridprop.Box) error {
	switch op {
	case gridprop.OpSet:
		return p.SetScalar(v, box)
	case gridprop.OpAdd:
		return p.Add(v, box)
	case gridprop.OpScale:
		return p.Scale(v, box)
	case gridprop.OpMinValue:
		return p.MinValue(v, box)
	case gridprop.OpMaxValue:
		return p.MaxValue(v, box)
	}
	return fmt.Errorf("props: operation %v is not a scalar operation", op)
}

// copy applies the records of a COPY keyword. Both properties of a record
// must have the same type, and the source must already exist.
func (m *Manager) copy(kw *deck.Keyword) error {
	for _, r := range kw.Records {
		if err := m.copyRecord(r); err != nil {
			return fmt.Errorf("props: %s: %w", kw, err)
		}
	}
	return nil
}

func (m *Manager) copyRecord(r *deck.Record) error {
	srcItem, err := r.Item("SRC")
	if err != nil {
		return err
	}
	dstItem, err := r.Item("DST")
	if err != nil {
		return err
	}
	src, dst := srcItem.TextOr(0, ""), dstItem.TextOr(0, "")
	box, err := m.recordBox(r)
	if err != nil {
		return err
	}
	switch {
	case m.ints.SupportsKeyword(src) && m.ints.SupportsKeyword(dst):
		return copyProperty(m.ints, src, dst, box)
	case m.doubles.SupportsKeyword(src) && m.doubles.SupportsKeyword(dst):
		return copyProperty(m.doubles, src, dst, box)
	}
	return fmt.Errorf("%w: can not copy %s to %s", gridprop.ErrUnsupportedKeyword, src, dst)
}

func copyProperty[T gridprop.Scalar](r *gridprop.Registry[T], src, dst string, box *gridprop.Box) error {
	s, err := r.GetDeckKeyword(src)
	if err != nil {
		return err
	}
	d, err := r.GetKeyword(dst)
	if err != nil {
		return err
	}
	return d.CopyFrom(s, box)
}

// HasDeckIntGridProperty reports whether the integer property name has been
// created. It is an error to ask about a keyword that is not an integer
// keyword.
func (m *Manager) HasDeckIntGridProperty(name string) (bool, error) {
	if !m.ints.SupportsKeyword(name) {
		return false, fmt.Errorf("props: %w: %s is not an integer grid property", gridprop.ErrUnsupportedKeyword, name)
	}
	return m.ints.HasKeyword(name), nil
}

// HasDeckDoubleGridProperty reports whether the floating point property
// name has been created. It is an error to ask about a keyword that is not
// a floating point keyword.
func (m *Manager) HasDeckDoubleGridProperty(name string) (bool, error) {
	if !m.doubles.SupportsKeyword(name) {
		return false, fmt.Errorf("props: %w: %s is not a double grid property", gridprop.ErrUnsupportedKeyword, name)
	}
	return m.doubles.HasKeyword(name), nil
}

// IntProperty returns the integer property name, creating it with default
// values if the deck did not.
func (m *Manager) IntProperty(name string) (*gridprop.Property[int], error) {
	return m.ints.GetKeyword(name)
}

// DoubleProperty returns the floating point property name, creating it
// with default values if the deck did not.
func (m *Manager) DoubleProperty(name string) (*gridprop.Property[float64], error) {
	return m.doubles.GetKeyword(name)
}

// CheckLimits checks the created properties named in limits against their
// [min, max] range, in name order. Properties the deck never created are
// not checked.
func (m *Manager) CheckLimits(limits map[string][2]float64) error {
	names := make([]string, 0, len(limits))
	for name := range limits {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		l := limits[name]
		switch {
		case m.ints.SupportsKeyword(name):
			lo, hi := int(math.Ceil(l[0])), int(math.Floor(l[1]))
			if lo > hi {
				return fmt.Errorf("props: %w: limits [%g, %g] for integer property %s hold no integer",
					gridprop.ErrInvalidRange, l[0], l[1], name)
			}
			if p, ok := m.ints.Lookup(name); ok {
				if err := p.CheckLimits(lo, hi); err != nil {
					return fmt.Errorf("props: %w", err)
				}
			}
		case m.doubles.SupportsKeyword(name):
			if p, ok := m.doubles.Lookup(name); ok {
				if err := p.CheckLimits(l[0], l[1]); err != nil {
					return fmt.Errorf("props: %w", err)
				}
			}
		default:
			return fmt.Errorf("props: %w: no limits can be checked for %s", gridprop.ErrUnsupportedKeyword, name)
		}
	}
	return nil
}
