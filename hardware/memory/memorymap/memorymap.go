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

// Package memorymap facilitates the translation of addresses to primary
// address equivalents.
//
// The physical address space of the machine is divided into three areas:
// linear RAM, linear ROM and the MMIO aperture. RAM is visible both at its
// origin and through an uncached alias; ROM is mirrored repeatedly up to the
// configured limit address. The MapAddress() function should be used to
// produce a "mapped address" whenever an address arrives from the CPU
// collaborator:
//
//	ma, area := layout.MapAddress(address)
//
// The returned area says which region the address falls in and the mapped
// address is normalised to the primary copy of that region.
package memorymap

// Area represents the different areas of the address space.
type Area int

func (a Area) String() string {
	switch a {
	case RAM:
		return "RAM"
	case ROM:
		return "ROM"
	case MMIO:
		return "MMIO"
	}

	return "undefined"
}

// The different memory areas in the machine.
const (
	Undefined Area = iota
	RAM
	ROM
	MMIO
)

// UncachedBit selects the uncached alias of RAM. The alias maps to the same
// backing memory so the bit is simply discarded during mapping.
const UncachedBit = uint32(0x40000000)

// Layout describes the geometry of the address space for one machine model.
//
// ROM mirroring: every address in the range [ROMOrigin, ROMLimit] refers to
// the ROM image repeated end to end. Changing the image through one mirror
// changes all of them, because they are aliases, not copies.
type Layout struct {
	RAMOrigin uint32
	RAMSize   uint32

	ROMOrigin uint32
	ROMSize   uint32
	ROMLimit  uint32

	MMIOOrigin uint32
	MMIOMemtop uint32
}

// MapAddress translates the address from the CPU collaborator's point of
// view to the primary address of the area it falls in.
func (l Layout) MapAddress(address uint32) (uint32, Area) {
	if address >= l.MMIOOrigin && address <= l.MMIOMemtop {
		return address, MMIO
	}

	if address >= l.ROMOrigin && address <= l.ROMLimit {
		return (address - l.ROMOrigin) % l.ROMSize, ROM
	}

	// strip the uncached alias bit before checking the RAM range
	address &^= UncachedBit

	if address >= l.RAMOrigin && address < l.RAMOrigin+l.RAMSize {
		return address - l.RAMOrigin, RAM
	}

	return address, Undefined
}
