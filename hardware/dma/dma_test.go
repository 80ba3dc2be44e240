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

package dma_test

import (
	"encoding/binary"
	"testing"

	"github.com/jtallis/gopherdigic/hardware/dma"
	"github.com/jtallis/gopherdigic/hardware/intc"
	"github.com/jtallis/gopherdigic/hardware/memory/mmio"
	"github.com/jtallis/gopherdigic/test"
)

type nullLine struct{}

func (l *nullLine) Assert()   {}
func (l *nullLine) Deassert() {}

// flatBus is a single slab of memory addressed from zero
type flatBus struct {
	mem []byte
}

func newFlatBus(size int) *flatBus {
	return &flatBus{mem: make([]byte, size)}
}

func (b *flatBus) ReadBlock(address uint32, data []byte) {
	copy(data, b.mem[address:])
}

func (b *flatBus) WriteBlock(address uint32, data []byte) {
	copy(b.mem[address:], data)
}

func (b *flatBus) ReadWord(address uint32) uint32 {
	return binary.LittleEndian.Uint32(b.mem[address:])
}

func (b *flatBus) WriteWord(address uint32, value uint32) {
	binary.LittleEndian.PutUint32(b.mem[address:], value)
}

func TestEngineCopy(t *testing.T) {
	ic := intc.NewController(&nullLine{})
	bus := newFlatBus(0x10000)
	eng := dma.NewEngine(ic, bus)

	for i := 0; i < 0x100; i++ {
		bus.mem[0x1000+i] = byte(i)
	}

	ic.Enable(0x2f)
	eng.Access(1, 0x18, mmio.Write, 0x1000)
	eng.Access(1, 0x1c, mmio.Write, 0x8000)
	eng.Access(1, 0x20, mmio.Write, 0x100)
	eng.Access(1, 0x08, mmio.Write, 1)

	for i := 0; i < 0x100; i++ {
		test.Equate(t, bus.mem[0x8000+i], byte(i))
	}

	// a copy this small completes with an immediate interrupt
	test.Equate(t, ic.Active(), 0x2f)
}

func TestEngineChunkedCopy(t *testing.T) {
	ic := intc.NewController(&nullLine{})
	bus := newFlatBus(0x100000)
	eng := dma.NewEngine(ic, bus)

	// larger than one chunk so the copy is split
	const count = 20000
	for i := 0; i < count; i++ {
		bus.mem[i] = byte(i * 7)
	}

	ic.Enable(0x74)
	eng.Access(2, 0x18, mmio.Write, 0)
	eng.Access(2, 0x1c, mmio.Write, 0x80000)
	eng.Access(2, 0x20, mmio.Write, count)
	eng.Access(2, 0x08, mmio.Write, 1)

	for i := 0; i < count; i++ {
		test.Equate(t, bus.mem[0x80000+i], byte(i*7))
	}

	// 20000 bytes means the completion interrupt is held back for two
	// service ticks
	test.Equate(t, ic.Active(), 0)
	ic.ServiceTick()
	test.Equate(t, ic.Active(), 0)
	ic.ServiceTick()
	test.Equate(t, ic.Active(), 0x74)
}

func TestEngineRegisterReadback(t *testing.T) {
	ic := intc.NewController(&nullLine{})
	eng := dma.NewEngine(ic, newFlatBus(0x1000))

	eng.Access(3, 0x18, mmio.Write, 0x1234)
	eng.Access(3, 0x1c, mmio.Write, 0x5678)
	eng.Access(3, 0x20, mmio.Write, 0x9c)

	test.Equate(t, eng.Access(3, 0x18, mmio.Read, 0), 0x1234)
	test.Equate(t, eng.Access(3, 0x1c, mmio.Read, 0), 0x5678)
	test.Equate(t, eng.Access(3, 0x20, mmio.Read, 0), 0x9c)

	// channels are independent
	test.Equate(t, eng.Access(4, 0x18, mmio.Read, 0), 0)
}

// throttledDevice supplies words only when primed, a fixed number per
// service
type throttledDevice struct {
	next     uint32
	budget   int
	received []uint32
}

func (dev *throttledDevice) DataReady() bool {
	return dev.budget > 0
}

func (dev *throttledDevice) ReadWord() uint32 {
	dev.budget--
	dev.next++
	return dev.next - 1
}

func (dev *throttledDevice) WriteWord(value uint32) {
	dev.budget--
	dev.received = append(dev.received, value)
}

func TestPolledTransferToMemory(t *testing.T) {
	bus := newFlatBus(0x1000)
	dev := &throttledDevice{}
	tr := dma.NewTransfer(bus, dev)

	tr.Begin(dma.ToMemory, 0x100, 32)
	test.Equate(t, tr.Active(), true)

	// four words per tick. two ticks of device activity
	dev.budget = 4
	test.Equate(t, tr.Service(), false)
	test.Equate(t, bus.ReadWord(0x100), 0)
	test.Equate(t, bus.ReadWord(0x10c), 3)

	dev.budget = 4
	test.Equate(t, tr.Service(), false)
	test.Equate(t, bus.ReadWord(0x11c), 7)

	// all words have moved but the minimum wait of ten services has not
	// elapsed
	for i := 0; i < 7; i++ {
		test.Equate(t, tr.Service(), false)
	}
	test.Equate(t, tr.Service(), true)
	test.Equate(t, tr.Active(), false)

	// service on an inactive transfer is a no-op
	test.Equate(t, tr.Service(), false)
}

func TestPolledTransferFromMemory(t *testing.T) {
	bus := newFlatBus(0x1000)
	dev := &throttledDevice{}
	tr := dma.NewTransfer(bus, dev)

	bus.WriteWord(0x200, 0xdeadbeef)
	bus.WriteWord(0x204, 0xcafef00d)

	tr.Begin(dma.FromMemory, 0x200, 8)
	dev.budget = 2
	for i := 0; i < 9; i++ {
		test.Equate(t, tr.Service(), false)
	}
	test.Equate(t, tr.Service(), true)

	test.Equate(t, len(dev.received), 2)
	test.Equate(t, dev.received[0], 0xdeadbeef)
	test.Equate(t, dev.received[1], 0xcafef00d)
}

func TestPolledTransferWaitScalesWithSize(t *testing.T) {
	bus := newFlatBus(0x10000)
	dev := &throttledDevice{}
	tr := dma.NewTransfer(bus, dev)

	// 1024 bytes arms a wait of 1024/512*2+10 = 14 services
	tr.Begin(dma.ToMemory, 0, 1024)
	dev.budget = 256
	for i := 0; i < 13; i++ {
		test.Equate(t, tr.Service(), false)
	}
	test.Equate(t, tr.Service(), true)
}
