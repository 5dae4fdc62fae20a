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
	"sort"
	"strings"
)

// Registry holds the properties of one value type for a grid. It knows the
// set of keywords it supports up front, but only creates a property the
// first time it is asked for.
type Registry[T Scalar] struct {
	grid   Topology
	schema map[string]KeywordInfo[T]
	props  map[string]*Property[T]
}

// NewRegistry returns an empty registry over grid that supports the
// keywords in infos. Keyword names are case-insensitive.
func NewRegistry[T Scalar](grid Topology, infos []KeywordInfo[T]) *Registry[T] {
	r := &Registry[T]{
		grid:   grid,
		schema: make(map[string]KeywordInfo[T], len(infos)),
		props:  make(map[string]*Property[T]),
	}
	for _, info := range infos {
		info.Name = strings.ToUpper(info.Name)
		r.schema[info.Name] = info
	}
	return r
}

// Grid returns the topology the registry was created for.
func (r *Registry[T]) Grid() Topology { return r.grid }

// SupportsKeyword reports whether name is part of the schema.
func (r *Registry[T]) SupportsKeyword(name string) bool {
	_, ok := r.schema[strings.ToUpper(name)]
	return ok
}

// HasKeyword reports whether the property for name has been created.
func (r *Registry[T]) HasKeyword(name string) bool {
	_, ok := r.props[strings.ToUpper(name)]
	return ok
}

// Info returns the schema entry for name.
func (r *Registry[T]) Info(name string) (KeywordInfo[T], bool) {
	info, ok := r.schema[strings.ToUpper(name)]
	return info, ok
}

// AddKeyword creates the property for name. It returns false if the
// property already existed.
func (r *Registry[T]) AddKeyword(name string) (bool, error) {
	name = strings.ToUpper(name)
	if _, ok := r.props[name]; ok {
		return false, nil
	}
	info, ok := r.schema[name]
	if !ok {
		return false, fmt.Errorf("gridprop: %w: %s", ErrUnsupportedKeyword, name)
	}
	nx, ny, nz := r.grid.Dims()
	r.props[name] = NewProperty(nx, ny, nz, info)
	return true, nil
}

// GetKeyword returns the property for name, creating it if needed.
func (r *Registry[T]) GetKeyword(name string) (*Property[T], error) {
	if _, err := r.AddKeyword(name); err != nil {
		return nil, err
	}
	return r.props[strings.ToUpper(name)], nil
}

// AssertKeyword makes sure the property for name exists.
func (r *Registry[T]) AssertKeyword(name string) error {
	_, err := r.AddKeyword(name)
	return err
}

// GetDeckKeyword returns the property for name without creating it.
func (r *Registry[T]) GetDeckKeyword(name string) (*Property[T], error) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("gridprop: %w: keyword %s has not been created", ErrNotFound, strings.ToUpper(name))
	}
	return p, nil
}

// Lookup returns the property for name and whether it has been created.
func (r *Registry[T]) Lookup(name string) (*Property[T], bool) {
	p, ok := r.props[strings.ToUpper(name)]
	return p, ok
}

// Keywords returns the names of the created properties in sorted order.
func (r *Registry[T]) Keywords() []string {
	o := make([]string, 0, len(r.props))
	for name := range r.props {
		o = append(o, name)
	}
	sort.Strings(o)
	return o
}
