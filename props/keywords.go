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

package props

import (
	"math"

	"github.com/spatialmodel/gridprop"
)

// IntKeywords returns the integer region keywords a Manager supports.
func IntKeywords() []gridprop.KeywordInfo[int] {
	return []gridprop.KeywordInfo[int]{
		{Name: "SATNUM", Default: 1, Unit: "1"},
		{Name: "IMBNUM", Default: 1, Unit: "1"},
		{Name: "FIPNUM", Default: 1, Unit: "1"},
		{Name: "PVTNUM", Default: 1, Unit: "1"},
		{Name: "EQLNUM", Default: 1, Unit: "1"},
		{Name: "FLUXNUM", Default: 1, Unit: "1"},
		{Name: "MULTNUM", Default: 1, Unit: "1"},
		{Name: "ROCKNUM", Default: 1, Unit: "1"},
	}
}

// DoubleKeywords returns the floating point keywords a Manager supports.
// Saturation end points default to zero; geometry and rock properties
// without a sensible default are NaN until they are set.
func DoubleKeywords() []gridprop.KeywordInfo[float64] {
	nan := math.NaN()
	return []gridprop.KeywordInfo[float64]{
		{Name: "PORO", Default: nan, Unit: "1"},
		{Name: "PERMX", Default: nan, Unit: "mD"},
		{Name: "PERMY", Default: nan, Unit: "mD"},
		{Name: "PERMZ", Default: nan, Unit: "mD"},
		{Name: "NTG", Default: 1, Unit: "1"},

		{Name: "SWL", Default: 0, Unit: "1"},
		{Name: "SWU", Default: 0, Unit: "1"},
		{Name: "SWCR", Default: 0, Unit: "1"},
		{Name: "SGL", Default: 0, Unit: "1"},
		{Name: "SGU", Default: 0, Unit: "1"},
		{Name: "SGCR", Default: 0, Unit: "1"},
		{Name: "SOWCR", Default: 0, Unit: "1"},
		{Name: "SOGCR", Default: 0, Unit: "1"},
		{Name: "ISWU", Default: 0, Unit: "1"},
		{Name: "ISGU", Default: 0, Unit: "1"},
		{Name: "ISGCR", Default: 0, Unit: "1"},

		{Name: "MULTX", Default: 1, Unit: "1"},
		{Name: "MULTY", Default: 1, Unit: "1"},
		{Name: "MULTZ", Default: 1, Unit: "1"},

		{Name: "DX", Default: nan, Unit: "m"},
		{Name: "DY", Default: nan, Unit: "m"},
		{Name: "DZ", Default: nan, Unit: "m"},
		{Name: "TOPS", Default: nan, Unit: "m"},
	}
}

// DefaultLimits are the value ranges checked when no others are given.
var DefaultLimits = map[string][2]float64{
	"PORO": {0, 1},
	"NTG":  {0, 1},
}
