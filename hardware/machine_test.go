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

package hardware_test

import (
	"testing"

	"github.com/jtallis/gopherdigic/hardware"
	"github.com/jtallis/gopherdigic/hardware/models"
	"github.com/jtallis/gopherdigic/hardware/storage"
	"github.com/jtallis/gopherdigic/test"
)

// irqLine records the state of the interrupt line to the CPU collaborator
type irqLine struct {
	asserted bool
}

func (l *irqLine) Assert()   { l.asserted = true }
func (l *irqLine) Deassert() { l.asserted = false }

func testModel(t *testing.T) models.Desc {
	t.Helper()
	m, ok := models.GetModel("testmachine")
	if !ok {
		t.Fatal("testmachine model missing from catalog")
	}
	return m
}

func TestUnalignedReasonRead(t *testing.T) {
	m := testModel(t)
	line := &irqLine{}
	mac := hardware.NewMachine(m, line, nil, nil)

	mac.Mem.Write(m.IntcBase+0x10, uint32(m.TimerInterrupt), 4)
	mac.INTC.Trigger(m.TimerInterrupt, 1)
	mac.Step(1)
	test.Equate(t, line.asserted, true)

	// a sub-word read inside the reason register lands on the word aligned
	// register and acknowledges like any other read of it
	test.Equate(t, mac.Mem.Read(m.IntcBase+0x02, 2), m.TimerInterrupt)
	test.Equate(t, line.asserted, false)
}

func TestDryOSTimerInterrupt(t *testing.T) {
	m := testModel(t)
	line := &irqLine{}
	mac := hardware.NewMachine(m, line, nil, nil)

	// enable the periodic interrupt, program the DryOS timer slot with a
	// reload of 0x300 and start it. everything through the address space
	mac.Mem.Write(m.IntcBase+0x10, uint32(m.TimerInterrupt), 4)

	slot := uint32(m.DryOSTimerSlot) << 8
	mac.Mem.Write(m.TimerBase+slot+0x08, 0x300, 4)
	mac.Mem.Write(m.TimerBase+slot+0x00, 1, 4)

	mac.Step(2)
	test.Equate(t, line.asserted, false)
	mac.Step(1)
	test.Equate(t, line.asserted, true)

	// the reason register read acknowledges. at the shifted offset the id
	// arrives pre-shifted for use as a handler table index
	test.Equate(t, mac.Mem.Read(m.IntcBase+0x04, 4), m.TimerInterrupt<<2)
	test.Equate(t, line.asserted, false)

	// the interrupt repeats with the same period once re-enabled
	mac.Mem.Write(m.IntcBase+0x10, uint32(m.TimerInterrupt), 4)
	mac.Step(2)
	test.Equate(t, line.asserted, false)
	mac.Step(1)
	test.Equate(t, line.asserted, true)
}

func TestDMACopyThroughRegisters(t *testing.T) {
	m := testModel(t)
	line := &irqLine{}
	mac := hardware.NewMachine(m, line, nil, nil)

	for i := uint32(0); i < 0x40; i++ {
		mac.Mem.Write(0x1000+i, i, 1)
	}

	// channel 1 completion interrupt
	mac.Mem.Write(m.IntcBase+0x10, 0x2f, 4)

	mac.Mem.Write(m.DMABase+0x18, 0x1000, 4)
	mac.Mem.Write(m.DMABase+0x1c, 0x8000, 4)
	mac.Mem.Write(m.DMABase+0x20, 0x40, 4)
	mac.Mem.Write(m.DMABase+0x08, 1, 4)

	for i := uint32(0); i < 0x40; i++ {
		test.Equate(t, mac.Mem.Read(0x8000+i, 1), int(i))
	}

	// a copy this small raises its completion interrupt immediately
	test.Equate(t, line.asserted, true)
	test.Equate(t, mac.Mem.Read(m.IntcBase+0x04, 4), 0x2f<<2)
}

func TestSDBlockReadEndToEnd(t *testing.T) {
	m := testModel(t)
	line := &irqLine{}

	card := storage.NewImage("sd", 4*storage.BlockSize)
	for i := range card.Data {
		card.Data[i] = byte(i ^ 0xa5)
	}

	mac := hardware.NewMachine(m, line, card, nil)

	mac.Mem.Write(m.IntcBase+0x10, uint32(m.SDDriverInterrupt), 4)

	// program the card controller's DMA channel and read block 1
	mac.Mem.Write(m.SDDMABase+0x00, 0x2000, 4)
	mac.Mem.Write(m.SDDMABase+0x04, storage.BlockSize, 4)
	mac.Mem.Write(m.SDIOBase+0x08, 1, 4)
	mac.Mem.Write(m.SDIOBase+0x20, 1, 4)
	mac.Mem.Write(m.SDIOBase+0x0c, 0x14, 4)

	// run the machine until the transfer completes
	for mac.Mem.Read(m.SDDMABase+0x10, 4) == 1 {
		mac.Step(1)
	}

	test.Equate(t, mac.Mem.Read(0x2000, 1), int(storage.BlockSize&0xff)^0xa5)
	test.Equate(t, line.asserted, true)
	test.Equate(t, mac.Mem.Read(m.IntcBase+0x04, 4), m.SDDriverInterrupt<<2)
}

func TestUnknownRegisterReadsZero(t *testing.T) {
	m := testModel(t)
	mac := hardware.NewMachine(m, nil, nil, nil)

	// inside the MMIO region but outside every registered aperture
	test.Equate(t, mac.Mem.Read(m.Mem.MMIOOrigin+0xf0000, 4), 0)
	mac.Mem.Write(m.Mem.MMIOOrigin+0xf0000, 0xffffffff, 4)
	test.Equate(t, mac.Mem.Read(m.Mem.MMIOOrigin+0xf0000, 4), 0)
}
