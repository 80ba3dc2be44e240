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

// Package models is the catalog of supported camera models. A Desc gathers
// everything about a model that the rest of the machine treats as data:
// memory geometry, register aperture addresses and interrupt assignments.
package models

import (
	"github.com/jtallis/gopherdigic/hardware/memory/memorymap"
)

// Desc describes one camera model.
type Desc struct {
	Name string

	Mem memorymap.Layout

	// aperture base addresses
	IntcBase      uint32
	TimerBase     uint32
	EekoTimerBase uint32
	ClockBase     uint32
	UnitTimerBase uint32
	HPTimerBase   uint32
	DMABase       uint32
	SDIOBase      uint32
	SDDMABase     uint32
	UARTBase      uint32

	// interrupt assignments
	TimerInterrupt    int
	HPTimerInterrupt  int
	UARTRxInterrupt   int
	UARTTxInterrupt   int
	SDDriverInterrupt int
	SDDMAInterrupt    int

	// which countdown timer slot drives the operating system's periodic
	// interrupt
	DryOSTimerSlot int
}

// GetModel returns the Desc for the named model. The empty string returns
// the default model.
func GetModel(name string) (Desc, bool) {
	if name == "" {
		return Models[0], true
	}
	for _, m := range Models {
		if m.Name == name {
			return m, true
		}
	}
	return Desc{}, false
}

// Models is the catalog. The first entry is the default.
var Models = []Desc{
	{
		Name: "5D3",

		Mem: memorymap.Layout{
			RAMOrigin:  0x00000000,
			RAMSize:    0x10000000,
			ROMOrigin:  0xf8000000,
			ROMSize:    0x01000000,
			ROMLimit:   0xffffffff,
			MMIOOrigin: 0xc0000000,
			MMIOMemtop: 0xdfffffff,
		},

		IntcBase:      0xc0201000,
		TimerBase:     0xc0210000,
		EekoTimerBase: 0xd02c0000,
		ClockBase:     0xc0242014,
		UnitTimerBase: 0xc0220000,
		HPTimerBase:   0xc0243000,
		DMABase:       0xc0a10000,
		SDIOBase:      0xc0c10000,
		SDDMABase:     0xc0510000,
		UARTBase:      0xc0800000,

		TimerInterrupt:    0x0a,
		HPTimerInterrupt:  0x10,
		UARTRxInterrupt:   0x2e,
		UARTTxInterrupt:   0x3a,
		SDDriverInterrupt: 0xb1,
		SDDMAInterrupt:    0xb8,

		DryOSTimerSlot: 2,
	},
	{
		// a deliberately small machine for tests. geometry is tiny and
		// every aperture sits in the first page of the MMIO region
		Name: "testmachine",

		Mem: memorymap.Layout{
			RAMOrigin:  0x00000000,
			RAMSize:    0x00100000,
			ROMOrigin:  0xf0000000,
			ROMSize:    0x00010000,
			ROMLimit:   0xf003ffff,
			MMIOOrigin: 0xc0000000,
			MMIOMemtop: 0xc00fffff,
		},

		IntcBase:      0xc0001000,
		TimerBase:     0xc0002000,
		EekoTimerBase: 0xc0003000,
		ClockBase:     0xc0004014,
		UnitTimerBase: 0xc0005000,
		HPTimerBase:   0xc0006000,
		DMABase:       0xc0007000,
		SDIOBase:      0xc0008000,
		SDDMABase:     0xc0009000,
		UARTBase:      0xc000a000,

		TimerInterrupt:    0x0a,
		HPTimerInterrupt:  0x10,
		UARTRxInterrupt:   0x2e,
		UARTTxInterrupt:   0x3a,
		SDDriverInterrupt: 0xb1,
		SDDMAInterrupt:    0xb8,

		DryOSTimerSlot: 2,
	},
}
