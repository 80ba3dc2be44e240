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

// Package debug renders views of a machine for offline inspection.
package debug

import (
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/jtallis/gopherdigic/hardware"
)

// DumpMachine writes the object graph of the machine in graphviz dot
// format. The output is large; pipe it through dot for an image:
//
//	gopherdigic dump image.bin | dot -Tsvg -o machine.svg
func DumpMachine(w io.Writer, mac *hardware.Machine) {
	memviz.Map(w, mac)
}
