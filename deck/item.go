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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Item is a named list of values in a record. A value can be defaulted,
// which is different from an explicit zero.
type Item struct {
	Name string

	values    []string
	defaulted []bool
}

// NewItem returns an item holding the given tokens after repeat counts
// are expanded.
func NewItem(name string, tokens ...string) (*Item, error) {
	vals, dflt, err := expand(tokens)
	if err != nil {
		return nil, err
	}
	return &Item{Name: name, values: vals, defaulted: dflt}, nil
}

// Len returns the number of values in the item.
func (it *Item) Len() int { return len(it.values) }

// DefaultApplied reports whether value i was defaulted.
func (it *Item) DefaultApplied(i int) bool { return it.defaulted[i] }

// Float returns value i as a float.
func (it *Item) Float(i int) (float64, error) {
	if it.defaulted[i] {
		return math.NaN(), fmt.Errorf("deck: item %s value %d is defaulted", it.Name, i+1)
	}
	v, err := cast.ToFloat64E(fortranFloat(it.values[i]))
	if err != nil {
		return math.NaN(), fmt.Errorf("deck: item %s value %d: %v", it.Name, i+1, err)
	}
	return v, nil
}

// Int returns value i as an integer. Values with a fractional part are
// rejected.
func (it *Item) Int(i int) (int, error) {
	f, err := it.Float(i)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("deck: item %s value %d (%g) is not an integer", it.Name, i+1, f)
	}
	return int(f), nil
}

// Text returns value i as a string with quotes removed.
func (it *Item) Text(i int) string { return it.values[i] }

// FloatOr returns value i, or def if it is defaulted.
func (it *Item) FloatOr(i int, def float64) (float64, error) {
	if it.defaulted[i] {
		return def, nil
	}
	return it.Float(i)
}

// IntOr returns value i, or def if it is defaulted.
func (it *Item) IntOr(i int, def int) (int, error) {
	if it.defaulted[i] {
		return def, nil
	}
	return it.Int(i)
}

// TextOr returns value i, or def if it is defaulted.
func (it *Item) TextOr(i int, def string) string {
	if it.defaulted[i] {
		return def
	}
	return it.values[i]
}

// expand expands repeat counts: "3*0.2" is three values of 0.2 and "4*"
// is four defaulted values.
func expand(tokens []string) (vals []string, dflt []bool, err error) {
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		star := strings.Index(tok, "*")
		if star <= 0 || tok[0] == '\'' {
			vals = append(vals, strings.Trim(tok, "'"))
			dflt = append(dflt, false)
			continue
		}
		n, err := strconv.Atoi(tok[:star])
		if err != nil || n < 1 {
			return nil, nil, fmt.Errorf("deck: invalid repeat count in %q", tok)
		}
		v := strings.Trim(tok[star+1:], "'")
		for i := 0; i < n; i++ {
			vals = append(vals, v)
			dflt = append(dflt, v == "")
		}
	}
	return vals, dflt, nil
}

// fortranFloat converts the Fortran exponent markers that show up in decks
// to the Go ones.
func fortranFloat(s string) string {
	return strings.NewReplacer("D", "E", "d", "e").Replace(s)
}
