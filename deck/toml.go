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
	"io"

	"github.com/BurntSushi/toml"
)

// caseFile is the TOML representation of a tokenized deck.
//
//	[[Keyword]]
//	Name = "PERMX"
//	File = "CASE.DATA"
//	Line = 12
//	Records = [["27*1000"]]
type caseFile struct {
	Keyword []struct {
		Name    string
		File    string
		Line    int
		Records [][]string
	}
}

// ReadTOML reads a deck from a TOML case file.
func ReadTOML(r io.Reader) (*Deck, error) {
	var c caseFile
	if _, err := toml.DecodeReader(r, &c); err != nil {
		return nil, fmt.Errorf("deck: there has been an error parsing the case file: %v", err)
	}
	d := new(Deck)
	for i, k := range c.Keyword {
		if k.Name == "" {
			return nil, fmt.Errorf("deck: keyword %d in the case file has no name", i+1)
		}
		kw, err := NewKeyword(k.Name, Location{File: k.File, Line: k.Line}, k.Records...)
		if err != nil {
			return nil, err
		}
		d.Add(kw)
	}
	return d, nil
}
