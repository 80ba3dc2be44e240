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
	"github.com/jtallis/gopherdigic/hardware/intc"
	"github.com/jtallis/gopherdigic/hardware/memory/mmio"
	"github.com/jtallis/gopherdigic/logger"
)

// Bus is the view of system memory the DMA engines move data through.
// Addresses are physical and block accesses never cross out of the mapped
// area they start in.
type Bus interface {
	ReadBlock(address uint32, data []byte)
	WriteBlock(address uint32, data []byte)
	ReadWord(address uint32) uint32
	WriteWord(address uint32, value uint32)
}

// NumChannels is the number of memcpy style DMA channels.
const NumChannels = 8

// channels are identified by parm 1 to 8. each has its own completion
// interrupt
var channelInterrupts = [NumChannels + 1]int{
	0, 0x2f, 0x74, 0x75, 0x76, 0xa0, 0xa1, 0xa8, 0xa9,
}

// copies are performed in chunks of this many bytes
const chunkSize = 8192

// Channel is the programmable state of one memcpy style DMA channel.
type Channel struct {
	Src   uint32
	Dst   uint32
	Count uint32
}

// Engine is the collection of memcpy style DMA channels. Channels are
// selected by the parm value of the register access, numbered from one.
type Engine struct {
	ic  *intc.Controller
	bus Bus

	// index zero is unused
	Channels [NumChannels + 1]Channel
}

// NewEngine is the preferred method of initialisation for the Engine type.
func NewEngine(ic *intc.Controller, bus Bus) *Engine {
	return &Engine{
		ic:  ic,
		bus: bus,
	}
}

// Access handles the register block of a single channel. Registered with
// mmio.HandlerFunc, with parm selecting the channel:
//
//	+0x08  start: writing bit 0 performs the copy
//	+0x18  source address
//	+0x1c  destination address
//	+0x20  byte count
func (eng *Engine) Access(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	if parm < 1 || parm > NumChannels {
		panic("dma: channel access with unknown parm")
	}
	ch := &eng.Channels[parm]

	switch address & 0xff {
	case 0x08:
		if mode == mmio.Write && value&1 == 1 {
			eng.run(parm)
		}
		return 0

	case 0x18:
		if mode == mmio.Write {
			ch.Src = value
			return 0
		}
		return ch.Src

	case 0x1c:
		if mode == mmio.Write {
			ch.Dst = value
			return 0
		}
		return ch.Dst

	case 0x20:
		if mode == mmio.Write {
			ch.Count = value
			return 0
		}
		return ch.Count
	}

	return 0
}

// run performs the copy for the numbered channel and raises its completion
// interrupt. the interrupt delay scales with the number of bytes moved
func (eng *Engine) run(parm int) {
	ch := &eng.Channels[parm]

	logger.Logf("DMA", "channel #%d: copy 0x%08x -> 0x%08x (%d bytes)",
		parm, ch.Src, ch.Dst, ch.Count)

	buf := make([]byte, chunkSize)
	src := ch.Src
	dst := ch.Dst
	remaining := ch.Count
	for remaining > 0 {
		n := remaining
		if n > chunkSize {
			n = chunkSize
		}
		eng.bus.ReadBlock(src, buf[:n])
		eng.bus.WriteBlock(dst, buf[:n])
		src += n
		dst += n
		remaining -= n
	}

	eng.ic.Trigger(channelInterrupts[parm], int(ch.Count/10000))
}
