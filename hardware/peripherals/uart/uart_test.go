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

package uart_test

import (
	"testing"

	"github.com/jtallis/gopherdigic/hardware/intc"
	"github.com/jtallis/gopherdigic/hardware/memory/mmio"
	"github.com/jtallis/gopherdigic/hardware/peripherals/uart"
	"github.com/jtallis/gopherdigic/test"
)

type nullLine struct{}

func (l *nullLine) Assert()   {}
func (l *nullLine) Deassert() {}

// loopback queues received bytes and records transmitted ones
type loopback struct {
	sent []byte
	recv []byte
}

func (lb *loopback) WriteByte(b byte) error {
	lb.sent = append(lb.sent, b)
	return nil
}

func (lb *loopback) CanReceive() bool {
	return len(lb.recv) > 0
}

func (lb *loopback) Receive() byte {
	b := lb.recv[0]
	lb.recv = lb.recv[1:]
	return b
}

const (
	rxInterrupt = 0x2e
	txInterrupt = 0x3a
)

func TestTransmit(t *testing.T) {
	ic := intc.NewController(&nullLine{})
	lb := &loopback{}
	ua := uart.NewUART(ic, lb, rxInterrupt, txInterrupt)

	ic.Enable(txInterrupt)

	ua.Access(0, 0x00, mmio.Write, 'h')
	ua.Access(0, 0x00, mmio.Write, 'i')
	test.Equate(t, string(lb.sent), "hi")

	ic.ServiceTick()
	test.Equate(t, ic.Acknowledge(), txInterrupt)
}

func TestReceive(t *testing.T) {
	ic := intc.NewController(&nullLine{})
	lb := &loopback{recv: []byte{'x'}}
	ua := uart.NewUART(ic, lb, rxInterrupt, txInterrupt)

	ic.Enable(rxInterrupt)

	// the service picks the character up and raises the rx interrupt after
	// ten ticks
	test.Equate(t, ua.Access(0, 0x14, mmio.Read, 0)&uart.StatusRXReady, 0)
	ua.Service()
	test.Equate(t, ua.Access(0, 0x14, mmio.Read, 0)&uart.StatusRXReady, uart.StatusRXReady)

	for i := 0; i < 9; i++ {
		ic.ServiceTick()
		test.Equate(t, ic.Active(), 0)
	}
	ic.ServiceTick()
	test.Equate(t, ic.Active(), rxInterrupt)

	// reading RX returns the character and clears the ready bit
	test.Equate(t, ua.Access(0, 0x04, mmio.Read, 0), int('x'))
	test.Equate(t, ua.Access(0, 0x14, mmio.Read, 0)&uart.StatusRXReady, 0)
}

func TestReceiveHoldoff(t *testing.T) {
	ic := intc.NewController(&nullLine{})
	lb := &loopback{recv: []byte{'a', 'b'}}
	ua := uart.NewUART(ic, lb, rxInterrupt, txInterrupt)

	ua.Service()
	test.Equate(t, ua.Access(0, 0x04, mmio.Read, 0), int('a'))

	// the second character is held back for a hundred ticks even though
	// the receiver is free again
	for i := 0; i < 100; i++ {
		ua.Service()
		test.Equate(t, ua.Access(0, 0x14, mmio.Read, 0)&uart.StatusRXReady, 0)
	}
	ua.Service()
	test.Equate(t, ua.Access(0, 0x04, mmio.Read, 0), int('b'))
}

func TestStatusWriteResetsReceiver(t *testing.T) {
	ic := intc.NewController(&nullLine{})
	lb := &loopback{recv: []byte{'a', 'b'}}
	ua := uart.NewUART(ic, lb, rxInterrupt, txInterrupt)

	ua.Service()
	test.Equate(t, ua.Access(0, 0x14, mmio.Read, 0)&uart.StatusRXReady, uart.StatusRXReady)

	// discard the character without reading it
	ua.Access(0, 0x14, mmio.Write, uart.StatusRXReady)
	test.Equate(t, ua.Access(0, 0x14, mmio.Read, 0)&uart.StatusRXReady, 0)

	// hold-off applies before the next character arrives
	for i := 0; i < 100; i++ {
		ua.Service()
	}
	test.Equate(t, ua.Access(0, 0x14, mmio.Read, 0)&uart.StatusRXReady, 0)
	ua.Service()
	test.Equate(t, ua.Access(0, 0x04, mmio.Read, 0), int('b'))
}

func TestNilTransport(t *testing.T) {
	ic := intc.NewController(&nullLine{})
	ua := uart.NewUART(ic, nil, rxInterrupt, txInterrupt)

	ua.Access(0, 0x00, mmio.Write, 'z')
	ua.Service()
	test.Equate(t, ua.Access(0, 0x14, mmio.Read, 0)&uart.StatusRXReady, 0)
}
