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

import "errors"

// These are the kinds of errors returned by the grid property code and the
// deck-level packages built on top of it. Returned errors wrap one of these
// and can be matched with errors.Is.
var (
	// ErrInvalidRange is returned for box bounds outside of the grid.
	ErrInvalidRange = errors.New("invalid range")

	// ErrSizeMismatch is returned when a record or mask does not hold
	// one value per target cell.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrUnsupportedRecordShape is returned when a keyword cannot be
	// used as a grid array.
	ErrUnsupportedRecordShape = errors.New("unsupported record shape")

	// ErrDimensionMismatch is returned when two properties, or a property
	// and a box, do not share the same grid shape.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrOutOfRange is returned by limit checks.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnsupportedKeyword is returned for keywords outside a registry schema.
	ErrUnsupportedKeyword = errors.New("unsupported keyword")

	// ErrNotFound is returned by read-only lookups of things that were
	// never created.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateDeclaration is returned when the same cell is declared
	// more than once where only one declaration is allowed.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
)
