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

package dma

import (
	"github.com/jtallis/gopherdigic/logger"
)

// Device is a word oriented peripheral a polled Transfer moves data to and
// from. ReadWord and WriteWord are only called when DataReady reports true.
type Device interface {
	DataReady() bool
	ReadWord() uint32
	WriteWord(value uint32)
}

// Direction of a polled transfer, relative to system memory.
type Direction int

// List of valid Direction values.
const (
	ToMemory Direction = iota
	FromMemory
)

func (dir Direction) String() string {
	if dir == ToMemory {
		return "read"
	}
	return "write"
}

// Transfer is a polled DMA transfer between system memory and a Device.
// Words move only while the device reports data ready and the transfer is
// held incomplete for a minimum number of service calls proportional to its
// size, so that completion is spread over many machine ticks.
type Transfer struct {
	bus Bus
	dev Device

	Dir   Direction
	Addr  uint32
	Count uint32

	transferred uint32
	wait        int
	active      bool
}

// NewTransfer is the preferred method of initialisation for the Transfer
// type.
func NewTransfer(bus Bus, dev Device) *Transfer {
	return &Transfer{
		bus: bus,
		dev: dev,
	}
}

// Begin arms the transfer. addr and count are in bytes and count is expected
// to be word aligned.
func (tr *Transfer) Begin(dir Direction, addr uint32, count uint32) {
	tr.Dir = dir
	tr.Addr = addr
	tr.Count = count
	tr.transferred = 0
	tr.wait = int(count/512)*2 + 10
	tr.active = true

	logger.Logf("DMA", "polled %s transfer: addr 0x%08x (%d bytes)", dir, addr, count)
}

// Active is true while an armed transfer has not yet completed.
func (tr *Transfer) Active() bool {
	return tr.active
}

// Service moves as many words as the device will supply or accept and
// returns true on the call at which the transfer completes. Call once per
// machine tick.
func (tr *Transfer) Service() bool {
	if !tr.active {
		return false
	}

	for tr.transferred < tr.Count && tr.dev.DataReady() {
		addr := tr.Addr + tr.transferred
		if tr.Dir == ToMemory {
			tr.bus.WriteWord(addr, tr.dev.ReadWord())
		} else {
			tr.dev.WriteWord(tr.bus.ReadWord(addr))
		}
		tr.transferred += 4
	}

	tr.wait--

	if tr.transferred >= tr.Count && tr.wait <= 0 {
		tr.active = false
		logger.Logf("DMA", "polled %s transfer: complete (%d bytes)", tr.Dir, tr.transferred)
		return true
	}

	return false
}
