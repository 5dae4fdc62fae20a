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

var operatorItems = []string{"FIELD", "VALUE", "I1", "I2", "J1", "J2", "K1", "K2"}

// Layouts gives the item names of the record-structured keywords. Keywords
// not listed here are data keywords.
var Layouts = map[string][]string{
	"DIMENS":  {"NX", "NY", "NZ"},
	"TABDIMS": {"NTSFUN", "NTPVT", "NSSFUN", "NPPVT", "NTFIP", "NRPVT"},

	"BOX":    {"I1", "I2", "J1", "J2", "K1", "K2"},
	"ENDBOX": {},

	"EQUALS":   operatorItems,
	"ADD":      operatorItems,
	"MULTIPLY": operatorItems,
	"MINVALUE": operatorItems,
	"MAXVALUE": operatorItems,
	"COPY":     {"SRC", "DST", "I1", "I2", "J1", "J2", "K1", "K2"},

	"AQUCON": {"ID", "I1", "I2", "J1", "J2", "K1", "K2", "CONNECT_FACE",
		"TRANS_MULT", "TRANS_OPTION", "ALLOW_INTERNAL_CELLS", "VEFRAC", "VEFRACP"},

	"ACTIONX": {"NAME", "MAX_RUNS", "MIN_WAIT"},

	"RUNSPEC":  {},
	"GRID":     {},
	"EDIT":     {},
	"PROPS":    {},
	"REGIONS":  {},
	"SOLUTION": {},
	"SUMMARY":  {},
	"SCHEDULE": {},
	"END":      {},
	"OIL":      {},
	"GAS":      {},
	"WATER":    {},
	"METRIC":   {},
	"FIELD":    {},
	"ENDSCALE": {},
}
