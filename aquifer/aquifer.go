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

// Package aquifer finds the grid cells that numerical aquifers connect to.
package aquifer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gridprop"
	"github.com/spatialmodel/gridprop/deck"
	"github.com/spf13/cast"
)

// FaceDir is a cell face.
type FaceDir int

// These are the six cell faces.
const (
	IMinus FaceDir = iota
	IPlus
	JMinus
	JPlus
	KMinus
	KPlus
)

var faceNames = map[string]FaceDir{
	"I-": IMinus, "I+": IPlus,
	"J-": JMinus, "J+": JPlus,
	"K-": KMinus, "K+": KPlus,
	"X-": IMinus, "X+": IPlus,
	"Y-": JMinus, "Y+": JPlus,
	"Z-": KMinus, "Z+": KPlus,
}

// ParseFaceDir parses a face name such as "I+" or "Z-".
func ParseFaceDir(s string) (FaceDir, error) {
	f, ok := faceNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("aquifer: unknown face direction %q", s)
	}
	return f, nil
}

func (f FaceDir) String() string {
	return [...]string{"I-", "I+", "J-", "J+", "K-", "K+"}[f]
}

// offset returns the step to the neighbouring cell across f.
func (f FaceDir) offset() (di, dj, dk int) {
	switch f {
	case IMinus:
		return -1, 0, 0
	case IPlus:
		return 1, 0, 0
	case JMinus:
		return 0, -1, 0
	case JPlus:
		return 0, 1, 0
	case KMinus:
		return 0, 0, -1
	default:
		return 0, 0, 1
	}
}

// Connection is one grid cell connected to a numerical aquifer.
type Connection struct {
	AquiferID int

	// I, J and K are 0-based.
	I, J, K     int
	GlobalIndex int

	Face            FaceDir
	TransMultiplier float64
	TransOption     int

	// ConnectActiveCell is true if the aquifer may connect through faces
	// shared with other active cells.
	ConnectActiveCell bool

	VEFracRelPerm  float64
	VEFracCapPress float64
}

// GenerateConnections returns the connections described by one AQUCON
// record. Inactive cells are skipped, as are cells whose neighbour across
// the connection face is an active cell, unless the record allows
// internal cells.
func GenerateConnections(grid gridprop.Topology, r *deck.Record) ([]Connection, error) {
	var err error
	get := func(name string) *deck.Item {
		it, e := r.Item(name)
		if e != nil && err == nil {
			err = e
		}
		return it
	}
	ints := func(name string, def int) int {
		it := get(name)
		if it == nil {
			return 0
		}
		v, e := it.IntOr(0, def)
		if e != nil && err == nil {
			err = e
		}
		return v
	}
	floats := func(name string, def float64) float64 {
		it := get(name)
		if it == nil {
			return 0
		}
		v, e := it.FloatOr(0, def)
		if e != nil && err == nil {
			err = e
		}
		return v
	}
	text := func(name, def string) string {
		it := get(name)
		if it == nil {
			return ""
		}
		return it.TextOr(0, def)
	}

	c := Connection{
		AquiferID:       ints("ID", 0),
		TransMultiplier: floats("TRANS_MULT", 1),
		TransOption:     ints("TRANS_OPTION", 0),
		VEFracRelPerm:   floats("VEFRAC", 1),
		VEFracCapPress:  floats("VEFRACP", 1),
	}
	i1, i2 := ints("I1", 0), ints("I2", 0)
	j1, j2 := ints("J1", 0), ints("J2", 0)
	k1, k2 := ints("K1", 0), ints("K2", 0)
	face := text("CONNECT_FACE", "")
	allow := text("ALLOW_INTERNAL_CELLS", "NO")
	if err != nil {
		return nil, err
	}
	if c.Face, err = ParseFaceDir(face); err != nil {
		return nil, err
	}
	if c.ConnectActiveCell, err = parseBool(allow); err != nil {
		return nil, err
	}
	box, err := gridprop.NewDeckBox(grid, i1, i2, j1, j2, k1, k2)
	if err != nil {
		return nil, err
	}

	var cons []Connection
	box.ForEachIJK(func(i, j, k, g int) {
		if !grid.CellActive(i, j, k) {
			return
		}
		if c.ConnectActiveCell || !neighborActive(grid, i, j, k, c.Face) {
			con := c
			con.I, con.J, con.K, con.GlobalIndex = i, j, k, g
			cons = append(cons, con)
		}
	})
	return cons, nil
}

// neighborActive reports whether the cell across face f of (i,j,k) is
// inside the grid and active.
func neighborActive(grid gridprop.Topology, i, j, k int, f FaceDir) bool {
	nx, ny, nz := grid.Dims()
	di, dj, dk := f.offset()
	i, j, k = i+di, j+dj, k+dk
	if i < 0 || i >= nx || j < 0 || j >= ny || k < 0 || k >= nz {
		return false
	}
	return grid.CellActive(i, j, k)
}

func parseBool(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES", "Y":
		return true, nil
	case "NO", "N":
		return false, nil
	}
	b, err := cast.ToBoolE(s)
	if err != nil {
		return false, fmt.Errorf("aquifer: %q is not a boolean", s)
	}
	return b, nil
}

// Connections holds the connections of every numerical aquifer in a deck.
type Connections struct {
	// Log receives progress messages. It defaults to the logrus standard
	// logger.
	Log logrus.FieldLogger

	cons map[int]map[int]Connection // aquifer id, global index
}

// New returns an empty set of connections.
func New() *Connections {
	return &Connections{
		Log:  logrus.StandardLogger(),
		cons: make(map[int]map[int]Connection),
	}
}

// NewConnections returns the connections declared by the AQUCON keywords
// of d.
func NewConnections(d *deck.Deck, grid gridprop.Topology) (*Connections, error) {
	c := New()
	if err := c.Load(d, grid); err != nil {
		return nil, err
	}
	return c, nil
}

// Load adds the connections declared by the AQUCON keywords of d. A cell
// may only be connected once to each aquifer.
func (c *Connections) Load(d *deck.Deck, grid gridprop.Topology) error {
	for _, kw := range d.KeywordList("AQUCON") {
		c.Log.WithFields(logrus.Fields{
			"keyword":  kw.Name,
			"location": kw.Location.String(),
		}).Info("aquifer: initializing numerical aquifer connections")
		for _, r := range kw.Records {
			cons, err := GenerateConnections(grid, r)
			if err != nil {
				return fmt.Errorf("aquifer: %s: %w", kw, err)
			}
			for _, con := range cons {
				m, ok := c.cons[con.AquiferID]
				if !ok {
					m = make(map[int]Connection)
					c.cons[con.AquiferID] = m
				}
				if _, ok := m[con.GlobalIndex]; ok {
					return fmt.Errorf("aquifer: %s: %w: numerical aquifer cell at (%d, %d, %d) is declared more than once for numerical aquifer %d",
						kw, gridprop.ErrDuplicateDeclaration, con.I+1, con.J+1, con.K+1, con.AquiferID)
				}
				m[con.GlobalIndex] = con
			}
		}
	}
	return nil
}

// Connections returns the connections of aquifer id ordered by global
// cell index.
func (c *Connections) Connections(id int) ([]Connection, error) {
	m, ok := c.cons[id]
	if !ok {
		return nil, fmt.Errorf("aquifer: %w: numerical aquifer %d does not have any connections", gridprop.ErrNotFound, id)
	}
	o := make([]Connection, 0, len(m))
	for _, con := range m {
		o = append(o, con)
	}
	sort.Slice(o, func(i, j int) bool { return o[i].GlobalIndex < o[j].GlobalIndex })
	return o, nil
}

// AquiferIDs returns the ids of the aquifers with connections.
func (c *Connections) AquiferIDs() []int {
	o := make([]int, 0, len(c.cons))
	for id := range c.cons {
		o = append(o, id)
	}
	sort.Ints(o)
	return o
}
