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

// Package terminal attaches the host terminal to the machine's serial port.
// The terminal is placed in raw mode so that individual keystrokes travel
// to the machine without line buffering, the way a serial console behaves.
//
// Wraps "github.com/pkg/term/termios" for the raw mode handling.
package terminal

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/jtallis/gopherdigic/curated"
)

// Host is the host terminal in raw mode. It implements the uart.Transport
// interface.
type Host struct {
	input  *os.File
	output *os.File

	canAttr unix.Termios
	rawAttr unix.Termios

	rx   chan byte
	quit chan struct{}
}

// NewHost is the preferred method of initialisation for the Host type. The
// terminal is in raw mode from this point until Restore() is called.
func NewHost() (*Host, error) {
	h := &Host{
		input:  os.Stdin,
		output: os.Stdout,
		rx:     make(chan byte, 64),
		quit:   make(chan struct{}),
	}

	if err := termios.Tcgetattr(h.input.Fd(), &h.canAttr); err != nil {
		return nil, curated.Errorf("terminal: %v", err)
	}

	h.rawAttr = h.canAttr
	termios.Cfmakeraw(&h.rawAttr)

	if err := termios.Tcsetattr(h.input.Fd(), termios.TCSANOW, &h.rawAttr); err != nil {
		return nil, curated.Errorf("terminal: %v", err)
	}

	go h.read()

	return h, nil
}

// read runs on its own goroutine, feeding keystrokes into the rx channel.
func (h *Host) read() {
	buf := make([]byte, 1)
	for {
		n, err := h.input.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}

		select {
		case h.rx <- buf[0]:
		case <-h.quit:
			return
		}
	}
}

// Restore the terminal to the mode it was in before NewHost().
func (h *Host) Restore() {
	close(h.quit)
	_ = termios.Tcsetattr(h.input.Fd(), termios.TCSANOW, &h.canAttr)
}

// WriteByte implements the uart.Transport interface. A newline from the
// machine is expanded to the carriage-return pair raw mode requires.
func (h *Host) WriteByte(b byte) error {
	var err error
	if b == '\n' {
		_, err = h.output.Write([]byte{'\r', '\n'})
	} else {
		_, err = h.output.Write([]byte{b})
	}
	return err
}

// CanReceive implements the uart.Transport interface.
func (h *Host) CanReceive() bool {
	return len(h.rx) > 0
}

// Receive implements the uart.Transport interface. Only call when
// CanReceive() reports true.
func (h *Host) Receive() byte {
	return <-h.rx
}
