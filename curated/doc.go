// This file is part of GopherDIGIC.
//
// GopherDIGIC is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherDIGIC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherDIGIC.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function, which takes a
// formatting pattern and placeholder values, like fmt.Errorf().
//
// The pattern string is also the identity of the error. The Is() function
// checks whether an error was created by Errorf() with a specific pattern
// and the Has() function checks whether a pattern occurs anywhere in the
// error chain.
//
//	err := curated.Errorf("romloader: %v", underlying)
//
//	if curated.Has(err, "romloader: %v") {
//		...
//	}
//
// Sentinel patterns should be stored as const strings, suitably named, in the
// package that creates them.
//
// The Error() function normalises the message chain. Parts of the chain
// separated by ": " that repeat the preceding part are removed, so wrapping
// errors at every call site does not produce stuttering messages.
package curated
