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
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// DataVersion is the version of the NetCDF layout written by WriteNetCDF.
const DataVersion = "1.0.0"

// ActnumVariable is the name of the activity mask variable in NetCDF output.
const ActnumVariable = "ACTNUM"

// NetCDFVariable is a variable read back from a property file.
type NetCDFVariable struct {
	Units string

	// Integer is true for variables that were written from integer
	// properties.
	Integer bool

	// Data is shaped [nz, ny, nx].
	Data *sparse.DenseArray
}

type ncfVariable struct {
	integer bool
	units   string
	dflt    float64
	data    *sparse.DenseArray
}

// WriteNetCDF writes the activity mask of grid, every created property in
// ints and doubles, and the derived arrays to w. Either registry may be nil.
func WriteNetCDF(w *os.File, grid Topology, ints *Registry[int], doubles *Registry[float64], derived map[string]*sparse.DenseArray) error {
	nx, ny, nz := grid.Dims()
	vars := make(map[string]ncfVariable)

	actnum := sparse.ZerosDense(nz, ny, nx)
	for g := range actnum.Elements {
		if grid.ActiveIndex(g) >= 0 {
			actnum.Elements[g] = 1
		}
	}
	vars[ActnumVariable] = ncfVariable{integer: true, data: actnum}

	if ints != nil {
		for _, name := range ints.Keywords() {
			p, _ := ints.Lookup(name)
			if _, ok := vars[name]; ok {
				return fmt.Errorf("gridprop: writing netcdf: %w: variable %s", ErrDuplicateDeclaration, name)
			}
			vars[name] = ncfVariable{integer: true, units: p.info.Unit, dflt: float64(p.info.Default), data: p.Array()}
		}
	}
	if doubles != nil {
		for _, name := range doubles.Keywords() {
			p, _ := doubles.Lookup(name)
			if _, ok := vars[name]; ok {
				return fmt.Errorf("gridprop: writing netcdf: %w: variable %s", ErrDuplicateDeclaration, name)
			}
			vars[name] = ncfVariable{units: p.info.Unit, dflt: p.info.Default, data: p.Array()}
		}
	}
	for name, d := range derived {
		if _, ok := vars[name]; ok {
			return fmt.Errorf("gridprop: writing netcdf: %w: derived variable %s", ErrDuplicateDeclaration, name)
		}
		vars[name] = ncfVariable{data: d}
	}

	h := cdf.NewHeader([]string{"x", "y", "z"}, []int{nx, ny, nz})
	h.AddAttribute("", "comment", "gridprop grid property file")
	h.AddAttribute("", "nx", []int32{int32(nx)})
	h.AddAttribute("", "ny", []int32{int32(ny)})
	h.AddAttribute("", "nz", []int32{int32(nz)})
	h.AddAttribute("", "data_version", DataVersion)

	// Sort the names so they write in the same order every time.
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)

	dims := []string{"z", "y", "x"}
	for _, name := range names {
		v := vars[name]
		if v.integer {
			h.AddVariable(name, dims, []int32{0})
			h.AddAttribute(name, "default", []int32{int32(v.dflt)})
		} else {
			h.AddVariable(name, dims, []float64{0})
			h.AddAttribute(name, "default", []float64{v.dflt})
		}
		if v.units != "" {
			h.AddAttribute(name, "units", v.units)
		}
	}
	h.Define()

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("gridprop: creating netcdf file: %v", err)
	}
	for _, name := range names {
		if err := writeNCF(f, name, vars[name]); err != nil {
			return fmt.Errorf("gridprop: writing variable %s to netcdf file: %v", name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}

func writeNCF(f *cdf.File, name string, v ncfVariable) error {
	end := f.Header.Lengths(name)
	n := 1
	for _, l := range end {
		n *= l
	}
	if len(v.data.Elements) != n {
		return fmt.Errorf("%w: dims are %d but array length is %d", ErrDimensionMismatch, n, len(v.data.Elements))
	}
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	var err error
	if v.integer {
		data32 := make([]int32, n)
		for i, e := range v.data.Elements {
			data32[i] = int32(e)
		}
		_, err = w.Write(data32)
	} else {
		_, err = w.Write(v.data.Elements)
	}
	return err
}

// ReadNetCDF reads a file written by WriteNetCDF.
func ReadNetCDF(rw cdf.ReaderWriterAt) (map[string]NetCDFVariable, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("gridprop: opening netcdf file: %v", err)
	}
	version, ok := f.Header.GetAttribute("", "data_version").(string)
	if !ok || version != DataVersion {
		return nil, fmt.Errorf("gridprop: netcdf data version %q is not compatible with the required version %s", version, DataVersion)
	}

	o := make(map[string]NetCDFVariable)
	for _, name := range f.Header.Variables() {
		v := NetCDFVariable{}
		v.Units, _ = f.Header.GetAttribute(name, "units").(string)
		dims := f.Header.Lengths(name)
		v.Data = sparse.ZerosDense(dims...)

		r := f.Reader(name, nil, nil)
		buf := r.Zero(-1)
		if _, err := r.Read(buf); err != nil {
			return nil, fmt.Errorf("gridprop: reading netcdf variable %s: %v", name, err)
		}
		switch d := buf.(type) {
		case []int32:
			v.Integer = true
			for i, e := range d {
				v.Data.Elements[i] = float64(e)
			}
		case []float64:
			copy(v.Data.Elements, d)
		case []float32:
			for i, e := range d {
				v.Data.Elements[i] = float64(e)
			}
		default:
			return nil, fmt.Errorf("gridprop: netcdf variable %s has unsupported type %T", name, buf)
		}
		o[name] = v
	}
	return o, nil
}
