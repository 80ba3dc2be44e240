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

// Package memory implements the address space of the machine. Addresses are
// mapped with the memorymap package and resolve to backing RAM, the ROM
// image, or a register access dispatched through the mmio registry.
package memory

import (
	"encoding/binary"

	"github.com/jtallis/gopherdigic/hardware/memory/memorymap"
	"github.com/jtallis/gopherdigic/hardware/memory/mmio"
	"github.com/jtallis/gopherdigic/hardware/preferences"
	"github.com/jtallis/gopherdigic/logger"
)

// Memory is the complete address space of the machine.
type Memory struct {
	Layout memorymap.Layout

	RAM []byte
	ROM []byte

	reg   *mmio.Registry
	prefs *preferences.Preferences
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The registry is attached separately, once the peripherals it dispatches
// to have been created.
func NewMemory(layout memorymap.Layout, prefs *preferences.Preferences) *Memory {
	return &Memory{
		Layout: layout,
		RAM:    make([]byte, layout.RAMSize),
		ROM:    make([]byte, layout.ROMSize),
		prefs:  prefs,
	}
}

// Attach the sealed dispatch registry.
func (mem *Memory) Attach(reg *mmio.Registry) {
	mem.reg = reg
}

// Read a value of the given size in bytes. MMIO accesses are always word
// sized regardless of the size argument.
func (mem *Memory) Read(address uint32, size int) uint32 {
	ma, area := mem.Layout.MapAddress(address)

	switch area {
	case memorymap.RAM:
		return readSized(mem.RAM, ma, size)

	case memorymap.ROM:
		return readSized(mem.ROM, ma, size)

	case memorymap.MMIO:
		// sub-word accesses collapse to one word sized access at the
		// word-aligned address
		address &^= 3
		v := mem.reg.Access(address, mmio.Read, 0)
		if mem.prefs.TraceIO {
			mem.traceIO(address, mmio.Read, v)
		}
		return v
	}

	if mem.prefs.LogUnknownAccess {
		logger.Logf("MEM", "read of unmapped address %#08x", address)
	}
	return 0
}

// Write a value of the given size in bytes. Writes to ROM are ignored. MMIO
// accesses are always word sized regardless of the size argument.
func (mem *Memory) Write(address uint32, value uint32, size int) {
	ma, area := mem.Layout.MapAddress(address)

	switch area {
	case memorymap.RAM:
		writeSized(mem.RAM, ma, value, size)
		return

	case memorymap.ROM:
		logger.Logf("MEM", "write to ROM address %#08x ignored", address)
		return

	case memorymap.MMIO:
		address &^= 3
		if mem.prefs.TraceIO {
			mem.traceIO(address, mmio.Write, value)
		}
		mem.reg.Access(address, mmio.Write, value)
		return
	}

	if mem.prefs.LogUnknownAccess {
		logger.Logf("MEM", "write of unmapped address %#08x", address)
	}
}

func (mem *Memory) traceIO(address uint32, mode mmio.Mode, value uint32) {
	label := "???"
	if e, ok := mem.reg.Lookup(address); ok {
		label = e.Label
	}
	logger.Logf("IO", "[%s] %#08x %s %#08x", label, address, mode, value)
}

// ReadWord implements the dma.Bus interface.
func (mem *Memory) ReadWord(address uint32) uint32 {
	return mem.Read(address, 4)
}

// WriteWord implements the dma.Bus interface.
func (mem *Memory) WriteWord(address uint32, value uint32) {
	mem.Write(address, value, 4)
}

// ReadBlock implements the dma.Bus interface. The block must lie wholly
// inside RAM or ROM. Reads from anywhere else return zeroes.
func (mem *Memory) ReadBlock(address uint32, data []byte) {
	ma, area := mem.Layout.MapAddress(address)

	switch area {
	case memorymap.RAM:
		if int(ma)+len(data) <= len(mem.RAM) {
			copy(data, mem.RAM[ma:])
			return
		}
	case memorymap.ROM:
		if int(ma)+len(data) <= len(mem.ROM) {
			copy(data, mem.ROM[ma:])
			return
		}
	}

	logger.Logf("MEM", "block read of %d bytes at %#08x out of range", len(data), address)
	for i := range data {
		data[i] = 0
	}
}

// WriteBlock implements the dma.Bus interface. The block must lie wholly
// inside RAM. Writes to anywhere else are dropped.
func (mem *Memory) WriteBlock(address uint32, data []byte) {
	ma, area := mem.Layout.MapAddress(address)

	if area == memorymap.RAM && int(ma)+len(data) <= len(mem.RAM) {
		copy(mem.RAM[ma:], data)
		return
	}

	logger.Logf("MEM", "block write of %d bytes at %#08x out of range", len(data), address)
}

func readSized(backing []byte, ma uint32, size int) uint32 {
	if int(ma)+size > len(backing) {
		return 0
	}

	switch size {
	case 1:
		return uint32(backing[ma])
	case 2:
		return uint32(binary.LittleEndian.Uint16(backing[ma:]))
	}
	return binary.LittleEndian.Uint32(backing[ma:])
}

func writeSized(backing []byte, ma uint32, value uint32, size int) {
	if int(ma)+size > len(backing) {
		return
	}

	switch size {
	case 1:
		backing[ma] = byte(value)
	case 2:
		binary.LittleEndian.PutUint16(backing[ma:], uint16(value))
	default:
		binary.LittleEndian.PutUint32(backing[ma:], value)
	}
}
