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

// Operation is a kind of edit applied to a property.
type Operation int

// These are the operations a Property supports.
const (
	OpLoad Operation = iota
	OpSet
	OpAdd
	OpScale
	OpMultiply
	OpCopy
	OpMinValue
	OpMaxValue
	OpMaskedSet
	OpAssign
)

func (op Operation) String() string {
	switch op {
	case OpLoad:
		return "LOAD"
	case OpSet:
		return "EQUALS"
	case OpAdd:
		return "ADD"
	case OpScale:
		return "MULTIPLY"
	case OpMultiply:
		return "MULTIPLY_PROPERTY"
	case OpCopy:
		return "COPY"
	case OpMinValue:
		return "MINVALUE"
	case OpMaxValue:
		return "MAXVALUE"
	case OpMaskedSet:
		return "MASKED_SET"
	case OpAssign:
		return "ASSIGN"
	default:
		return "UNKNOWN"
	}
}

// DefaultPolicy says what an operation does to the defaulted flag of the
// cells it touches.
type DefaultPolicy int

const (
	// Preserve leaves the flag alone even though the value changes.
	Preserve DefaultPolicy = iota

	// Clear marks every touched cell as explicitly assigned.
	Clear

	// ClearChanged marks a touched cell as assigned only when the
	// operation changed its value.
	ClearChanged

	// FromSource takes the flag from the data source: the deck item for
	// loads and the other property for copies.
	FromSource
)

// defaultPolicies holds the defaulted-flag rule of each operation.
// MINVALUE and MAXVALUE count as assignments for the cells they clamp.
var defaultPolicies = map[Operation]DefaultPolicy{
	OpLoad:      FromSource,
	OpSet:       Clear,
	OpAdd:       Preserve,
	OpScale:     Preserve,
	OpMultiply:  Preserve,
	OpCopy:      FromSource,
	OpMinValue:  ClearChanged,
	OpMaxValue:  ClearChanged,
	OpMaskedSet: Clear,
	OpAssign:    Clear,
}

// DefaultPolicy returns the defaulted-flag rule of op.
func (op Operation) DefaultPolicy() DefaultPolicy { return defaultPolicies[op] }
