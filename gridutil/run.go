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

package gridutil

import (
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gridprop"
	"github.com/spatialmodel/gridprop/action"
	"github.com/spatialmodel/gridprop/aquifer"
	"github.com/spatialmodel/gridprop/deck"
	"github.com/spatialmodel/gridprop/internal/hash"
	"github.com/spatialmodel/gridprop/props"
	"gonum.org/v1/gonum/floats"
)

// Case is a processed simulation deck.
type Case struct {
	Deck     *deck.Deck
	Props    *props.Manager
	Aquifers *aquifer.Connections
	Actions  *action.Actions
}

// LoadCase reads the case file at path and processes its keywords.
func LoadCase(path string, allowInactive bool, start time.Time, log logrus.FieldLogger) (*Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridprop: opening case file: %v", err)
	}
	defer f.Close()
	d, err := deck.ReadTOML(f)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"file":     path,
		"keywords": len(d.Keywords),
	}).Info("read case file")

	grid, err := props.NewGrid(d)
	if err != nil {
		return nil, err
	}
	c := &Case{Deck: d, Props: props.NewManager(grid)}
	c.Props.AllowInactive = allowInactive
	c.Props.Log = log
	if err := c.Props.Process(d); err != nil {
		return nil, err
	}

	c.Aquifers = aquifer.New()
	c.Aquifers.Log = log
	if err := c.Aquifers.Load(d, grid); err != nil {
		return nil, err
	}

	if c.Actions, err = action.FromDeck(d, start); err != nil {
		return nil, err
	}
	c.Actions.Log = log
	return c, nil
}

// Fingerprint returns a hash of the values of every created property.
func (c *Case) Fingerprint() string {
	state := make(map[string]interface{})
	ints, doubles := c.Props.Ints(), c.Props.Doubles()
	for _, name := range ints.Keywords() {
		p, _ := ints.Lookup(name)
		state[name] = p.Data()
	}
	for _, name := range doubles.Keywords() {
		p, _ := doubles.Lookup(name)
		state[name] = p.Data()
	}
	return hash.Hash(state)
}

// Run processes the case in caseFile, checks the property limits,
// calculates the output variables and writes the results to outputFile.
func Run(caseFile, outputFile string, allowInactive bool, start time.Time, outputVars map[string]string, limits map[string][2]float64, log logrus.FieldLogger) error {
	c, err := LoadCase(caseFile, allowInactive, start, log)
	if err != nil {
		return err
	}
	if err := c.Props.CheckLimits(limits); err != nil {
		return err
	}
	d, err := gridprop.NewDeriver(outputVars, nil)
	if err != nil {
		return err
	}
	derived, err := d.Derive(c.Props.Ints(), c.Props.Doubles())
	if err != nil {
		return err
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("gridprop: creating output file: %v", err)
	}
	if err := gridprop.WriteNetCDF(f, c.Props.Grid(), c.Props.Ints(), c.Props.Doubles(), derived); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("gridprop: closing output file: %v", err)
	}
	log.WithFields(logrus.Fields{
		"file":        outputFile,
		"properties":  len(c.Props.Ints().Keywords()) + len(c.Props.Doubles().Keywords()),
		"derived":     len(derived),
		"fingerprint": c.Fingerprint(),
	}).Info("wrote grid properties")
	return nil
}

// Check processes the case in caseFile, checks the property limits and
// writes a summary to w.
func Check(w io.Writer, caseFile string, allowInactive bool, start time.Time, limits map[string][2]float64, log logrus.FieldLogger) error {
	c, err := LoadCase(caseFile, allowInactive, start, log)
	if err != nil {
		return err
	}
	if err := c.Props.CheckLimits(limits); err != nil {
		return err
	}
	return c.Summarize(w, start)
}

// Summarize writes a table of the properties, aquifers and actions of c.
func (c *Case) Summarize(w io.Writer, t time.Time) error {
	g := c.Props.Grid()
	nx, ny, nz := g.Dims()
	fmt.Fprintf(w, "grid %dx%dx%d, %d active cells\n", nx, ny, nz, g.NumActive())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEYWORD\tMIN\tMAX\tMEAN\tDEFAULTED\tUNSET")
	ints, doubles := c.Props.Ints(), c.Props.Doubles()
	for _, name := range ints.Keywords() {
		p, _ := ints.Lookup(name)
		writeStats(tw, name, p.Array().Elements, p.WasDefaulted())
	}
	for _, name := range doubles.Keywords() {
		p, _ := doubles.Lookup(name)
		writeStats(tw, name, p.Data(), p.WasDefaulted())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, id := range c.Aquifers.AquiferIDs() {
		cons, err := c.Aquifers.Connections(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "aquifer %d: %d connections\n", id, len(cons))
	}
	if !c.Actions.Empty() {
		fmt.Fprintf(w, "actions: %d, ready at %s: %d\n", c.Actions.Len(), t.Format("2006-01-02"), len(c.Actions.Pending(t)))
	}
	fmt.Fprintf(w, "fingerprint %s\n", c.Fingerprint())
	return nil
}

// writeStats writes one summary row. NaN values count as unset and are
// left out of the statistics.
func writeStats(w io.Writer, name string, data []float64, defaulted []bool) {
	set := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			set = append(set, v)
		}
	}
	var nDefault int
	for _, d := range defaulted {
		if d {
			nDefault++
		}
	}
	if len(set) == 0 {
		fmt.Fprintf(w, "%s\t-\t-\t-\t%d\t%d\n", name, nDefault, len(data))
		return
	}
	fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%d\t%d\n", name, floats.Min(set), floats.Max(set),
		floats.Sum(set)/float64(len(set)), nDefault, len(data)-len(set))
}
