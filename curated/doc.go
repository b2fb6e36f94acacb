// This file is part of Gopherboy.
//
// Gopherboy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherboy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherboy.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values, and returns an error.
//
// The pattern is what distinguishes one curated error from another. The Is()
// function reports whether an error was created with a specific pattern:
//
//	e := curated.Errorf("savestate: version mismatch: %v", v)
//
//	if curated.Is(e, "savestate: version mismatch: %v") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks for the pattern anywhere in the
// error chain, which is useful when a curated error has been wrapped inside
// another curated error.
//
// The IsAny() function reports whether the error is curated at all. We can
// think of the distinction between curated and uncurated errors as the
// distinction between expected and unexpected errors.
//
// The Error() function for curated errors normalises the message chain,
// removing duplicate adjacent parts. This keeps messages tidy when an error
// is wrapped at several levels with the same prefix.
package curated
