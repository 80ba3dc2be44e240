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

// Package preferences gathers the live options of the machine. Values are
// read on the tick path so they are plain fields, set before the machine
// starts or from inside the machine's critical section.
package preferences

// Preferences for a running machine.
type Preferences struct {
	// log accesses to addresses outside every mapped area
	LogUnknownAccess bool

	// log every register access that reaches the dispatch registry
	TraceIO bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() *Preferences {
	return &Preferences{
		LogUnknownAccess: true,
	}
}
