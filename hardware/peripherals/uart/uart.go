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

// Package uart implements the serial port. Bytes written to the TX register
// go straight out through the attached Transport. Received bytes are picked
// up one at a time during the per-tick service, with a hold-off between
// characters so a fast transport cannot flood the receive register.
package uart

import (
	"github.com/jtallis/gopherdigic/hardware/intc"
	"github.com/jtallis/gopherdigic/hardware/memory/mmio"
	"github.com/jtallis/gopherdigic/logger"
)

// Transport is the byte stream the UART is attached to. CanReceive and
// Receive form a flow control pair: Receive is only called when CanReceive
// reports true.
type Transport interface {
	WriteByte(b byte) error
	CanReceive() bool
	Receive() byte
}

// status register bits
const (
	StatusRXReady = 0x01
	StatusTXReady = 0x02
)

// number of ticks between accepting consecutive characters from the
// transport
const rxHoldoff = 100

// delay of the receive interrupt in ticks
const rxDelay = 10

// UART is the serial port controller.
type UART struct {
	ic        *intc.Controller
	transport Transport

	rxInterrupt int
	txInterrupt int

	rx      byte
	rxReady bool
	holdoff int

	// interrupt control register. zero disables the receive interrupt
	IntControl uint32
	Flags      uint32
}

// NewUART is the preferred method of initialisation for the UART type.
// transport may be nil, in which case transmitted characters are only
// logged and nothing is ever received.
func NewUART(ic *intc.Controller, transport Transport, rxInterrupt int, txInterrupt int) *UART {
	return &UART{
		ic:          ic,
		transport:   transport,
		rxInterrupt: rxInterrupt,
		txInterrupt: txInterrupt,
	}
}

// Service runs the UART's per-tick work. Must be called once per machine
// tick.
func (ua *UART) Service() {
	if ua.holdoff > 0 {
		ua.holdoff--
		return
	}

	if ua.rxReady || ua.transport == nil {
		return
	}

	if ua.transport.CanReceive() {
		ua.rx = ua.transport.Receive()
		ua.rxReady = true
		ua.holdoff = rxHoldoff
		if ua.rxInterrupt != 0 {
			ua.ic.Trigger(ua.rxInterrupt, rxDelay)
		}
	}
}

// transmit one character
func (ua *UART) tx(value uint32) {
	b := byte(value)

	if ua.transport != nil {
		if err := ua.transport.WriteByte(b); err != nil {
			logger.Logf("UART", "transmit: %v", err)
		}
	} else {
		logger.Logf("UART", "transmit: %#02x", b)
	}

	if ua.txInterrupt != 0 {
		ua.ic.Trigger(ua.txInterrupt, 1)
	}
}

// Access handles the UART register aperture. Registered with
// mmio.HandlerFunc:
//
//	+0x00  TX: a write transmits one character
//	+0x04  RX: a read returns the received character and clears RX ready
//	+0x08  flags
//	+0x14  status: bit 0 RX ready, bit 1 TX ready. writing bit 0 resets
//	       the receiver and starts a fresh hold-off
//	+0x18  interrupt control
func (ua *UART) Access(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	switch address & 0xff {
	case 0x00:
		if mode == mmio.Write {
			ua.tx(value)
		}
		return 0

	case 0x04:
		if mode == mmio.Write {
			return 0
		}
		ua.rxReady = false
		return uint32(ua.rx)

	case 0x08:
		if mode == mmio.Write {
			ua.Flags = value
			return 0
		}
		return ua.Flags

	case 0x14:
		if mode == mmio.Write {
			if value&StatusRXReady == StatusRXReady {
				ua.rxReady = false
				ua.holdoff = rxHoldoff
			}
			return 0
		}
		var st uint32 = StatusTXReady
		if ua.rxReady {
			st |= StatusRXReady
		}
		return st

	case 0x18:
		if mode == mmio.Write {
			ua.IntControl = value
			return 0
		}
		return ua.IntControl
	}

	return 0
}
