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

// Package deck holds simulation deck keywords after they have been
// tokenized: ordered keywords, each made of records of named items.
// Item values keep track of whether they were given explicitly or
// defaulted in the deck.
package deck

import (
	"fmt"
	"strings"
)

// Location is where a keyword was found in the input.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("line %d", l.Line)
	}
	return fmt.Sprintf("%s line %d", l.File, l.Line)
}

// Keyword is a named block of records.
type Keyword struct {
	Name     string
	Location Location
	Records  []*Record
}

// NewKeyword builds a keyword from tokenized records. Each entry of records
// holds the tokens of one record, before repeat counts are expanded.
func NewKeyword(name string, loc Location, records ...[]string) (*Keyword, error) {
	kw := &Keyword{Name: strings.ToUpper(name), Location: loc}
	for i, tokens := range records {
		r, err := NewRecord(kw.Name, tokens)
		if err != nil {
			return nil, fmt.Errorf("deck: %s record %d: %v", kw, i+1, err)
		}
		kw.Records = append(kw.Records, r)
	}
	return kw, nil
}

// IsDataKeyword reports whether kw is a single array of values, i.e.
// one record holding one item.
func (kw *Keyword) IsDataKeyword() bool {
	return len(kw.Records) == 1 && len(kw.Records[0].Items) == 1
}

// DataItem returns the only item of a data keyword, or nil.
func (kw *Keyword) DataItem() *Item {
	if !kw.IsDataKeyword() {
		return nil
	}
	return kw.Records[0].Items[0]
}

func (kw *Keyword) String() string {
	return fmt.Sprintf("%s in %s", kw.Name, kw.Location)
}

// Record is one '/'-terminated record of a keyword.
type Record struct {
	Items []*Item
}

// NewRecord splits the tokens of one record of the named keyword into items.
// Keywords listed in Layouts get one item per layout entry, with items
// missing at the end of the record defaulted. All other keywords are data
// keywords and get a single item holding every value.
func NewRecord(keyword string, tokens []string) (*Record, error) {
	vals, dflt, err := expand(tokens)
	if err != nil {
		return nil, err
	}
	layout, ok := Layouts[strings.ToUpper(keyword)]
	if !ok {
		return &Record{Items: []*Item{{Name: keyword, values: vals, defaulted: dflt}}}, nil
	}
	if len(vals) > len(layout) {
		return nil, fmt.Errorf("got %d values but %s records hold at most %d", len(vals), keyword, len(layout))
	}
	r := &Record{Items: make([]*Item, len(layout))}
	for i, name := range layout {
		it := &Item{Name: name}
		if i < len(vals) {
			it.values = []string{vals[i]}
			it.defaulted = []bool{dflt[i]}
		} else {
			it.values = []string{""}
			it.defaulted = []bool{true}
		}
		r.Items[i] = it
	}
	return r, nil
}

// Item returns the item with the given name.
func (r *Record) Item(name string) (*Item, error) {
	for _, it := range r.Items {
		if it.Name == name {
			return it, nil
		}
	}
	return nil, fmt.Errorf("deck: record has no item %s", name)
}

// Deck is an ordered list of keywords.
type Deck struct {
	Keywords []*Keyword
}

// Add appends kw to the deck.
func (d *Deck) Add(kw *Keyword) { d.Keywords = append(d.Keywords, kw) }

// HasKeyword reports whether the deck holds at least one keyword with the
// given name.
func (d *Deck) HasKeyword(name string) bool { return d.Count(name) > 0 }

// Count returns how many times the named keyword appears.
func (d *Deck) Count(name string) int { return len(d.KeywordList(name)) }

// KeywordList returns every keyword with the given name in deck order.
func (d *Deck) KeywordList(name string) []*Keyword {
	var o []*Keyword
	for _, kw := range d.Keywords {
		if kw.Name == name {
			o = append(o, kw)
		}
	}
	return o
}

// Last returns the last keyword with the given name, or nil.
func (d *Deck) Last(name string) *Keyword {
	l := d.KeywordList(name)
	if len(l) == 0 {
		return nil
	}
	return l[len(l)-1]
}
