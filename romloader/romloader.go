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

// Package romloader loads boot images from disk into the machine's address
// space. A missing or unreadable image is an error; there is no degraded
// mode without one.
package romloader

import (
	"bytes"
	"io/ioutil"

	"github.com/jtallis/gopherdigic/curated"
	"github.com/jtallis/gopherdigic/hardware/memory"
	"github.com/jtallis/gopherdigic/logger"
)

// LoadROM reads the ROM image file into the machine's ROM. Dump files that
// contain mirrored copies of a smaller image are detected and reduced to
// the primary copy.
func LoadROM(mem *memory.Memory, filename string) error {
	d, err := ioutil.ReadFile(filename)
	if err != nil {
		return curated.Errorf("romloader: %v", err)
	}
	if len(d) == 0 {
		return curated.Errorf("romloader: %v", "empty ROM image")
	}

	d = unmirror(filename, d)

	if len(d) > len(mem.ROM) {
		return curated.Errorf("romloader: image is larger than the ROM area")
	}

	copy(mem.ROM, d)
	logger.Logf("ROMLOADER", "%s: %d bytes into ROM", filename, len(d))

	return nil
}

// LoadRAM reads an optional RAM image file into the machine's RAM at the
// given offset.
func LoadRAM(mem *memory.Memory, filename string, offset uint32) error {
	d, err := ioutil.ReadFile(filename)
	if err != nil {
		return curated.Errorf("romloader: %v", err)
	}

	if int(offset)+len(d) > len(mem.RAM) {
		return curated.Errorf("romloader: image does not fit in RAM at offset %#08x", offset)
	}

	copy(mem.RAM[offset:], d)
	logger.Logf("ROMLOADER", "%s: %d bytes into RAM at %#08x", filename, len(d), offset)

	return nil
}

// unmirror reduces a dump that is made of identical halves to its primary
// copy. Dumping tools that read through the mirrored address range produce
// such files.
func unmirror(filename string, d []byte) []byte {
	reduced := false
	for len(d) >= 2 && bytes.Equal(d[:len(d)/2], d[len(d)/2:]) {
		d = d[:len(d)/2]
		reduced = true
	}
	if reduced {
		logger.Logf("ROMLOADER", "%s: mirrored dump, using primary %d bytes", filename, len(d))
	}
	return d
}
