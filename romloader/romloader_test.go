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

package romloader_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/jtallis/gopherdigic/hardware/memory"
	"github.com/jtallis/gopherdigic/hardware/memory/memorymap"
	"github.com/jtallis/gopherdigic/hardware/preferences"
	"github.com/jtallis/gopherdigic/romloader"
	"github.com/jtallis/gopherdigic/test"
)

var layout = memorymap.Layout{
	RAMOrigin:  0x00000000,
	RAMSize:    0x00010000,
	ROMOrigin:  0xf0000000,
	ROMSize:    0x00001000,
	ROMLimit:   0xf0003fff,
	MMIOOrigin: 0xc0000000,
	MMIOMemtop: 0xc00fffff,
}

func newMemory() *memory.Memory {
	return memory.NewMemory(layout, preferences.NewPreferences())
}

func writeImage(t *testing.T, d []byte) string {
	t.Helper()

	f, err := ioutil.TempFile("", "romloader_test")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		t.Fatal(err)
	}

	return f.Name()
}

func TestLoadROM(t *testing.T) {
	// the pattern must not repeat with a power of two period or it would
	// look like a mirrored dump
	d := make([]byte, 0x800)
	for i := range d {
		d[i] = byte(i) ^ byte(i>>8)
	}
	fn := writeImage(t, d)
	defer os.Remove(fn)

	mem := newMemory()
	err := romloader.LoadROM(mem, fn)
	test.ExpectedSuccess(t, err)
	last := 0x7ff
	test.Equate(t, mem.ROM[0x7ff], byte(last)^byte(last>>8))
}

func TestLoadROMMirroredDump(t *testing.T) {
	// a 0x400 byte image dumped four times over
	quarter := make([]byte, 0x400)
	for i := range quarter {
		quarter[i] = byte(i) ^ byte(i>>8)
	}
	d := append([]byte{}, quarter...)
	d = append(d, quarter...)
	d = append(d, quarter...)
	d = append(d, quarter...)

	fn := writeImage(t, d)
	defer os.Remove(fn)

	mem := newMemory()
	err := romloader.LoadROM(mem, fn)
	test.ExpectedSuccess(t, err)

	// only the primary copy is loaded
	end := 0x3ff
	test.Equate(t, mem.ROM[0x3ff], byte(end)^byte(end>>8))
	test.Equate(t, mem.ROM[0x400], 0)
}

func TestLoadROMFailures(t *testing.T) {
	mem := newMemory()

	err := romloader.LoadROM(mem, filepath.Join(os.TempDir(), "no-such-rom-image"))
	test.ExpectedFailure(t, err)

	// an image larger than the ROM area
	fn := writeImage(t, make([]byte, 0x1001))
	defer os.Remove(fn)
	err = romloader.LoadROM(mem, fn)
	test.ExpectedFailure(t, err)
}

func TestLoadRAM(t *testing.T) {
	fn := writeImage(t, []byte{0xaa, 0xbb, 0xcc})
	defer os.Remove(fn)

	mem := newMemory()
	err := romloader.LoadRAM(mem, fn, 0x100)
	test.ExpectedSuccess(t, err)
	test.Equate(t, mem.RAM[0x100], 0xaa)
	test.Equate(t, mem.RAM[0x102], 0xcc)

	err = romloader.LoadRAM(mem, fn, uint32(len(mem.RAM)-2))
	test.ExpectedFailure(t, err)
}
