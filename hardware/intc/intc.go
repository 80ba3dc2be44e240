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

package intc

import (
	"fmt"

	"github.com/jtallis/gopherdigic/hardware/memory/mmio"
	"github.com/jtallis/gopherdigic/logger"
)

// Entries is the number of interrupt ids the controller tracks.
const Entries = 0x200

// Line is the single hardware interrupt line into the CPU collaborator. The
// controller asserts and deasserts it; the CPU only observes it.
type Line interface {
	Assert()
	Deassert()
}

// Controller is the single active-interrupt state machine.
type Controller struct {
	line Line

	enabled   [Entries]bool
	scheduled [Entries]int

	// the one currently unacknowledged interrupt id. zero means none
	active int

	// the designated periodic timer interrupt and the source of its period
	// (in ticks). activating periodicID re-arms its schedule from period()
	// rather than clearing it
	periodicID int
	period     func() int
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController(line Line) *Controller {
	return &Controller{line: line}
}

// SetPeriodic designates the auto-repeating timer interrupt. The period
// function returns the current repeat period in ticks.
func (ic *Controller) SetPeriodic(id int, period func() int) {
	ic.periodicID = id
	ic.period = period
}

func (ic *Controller) String() string {
	pending := 0
	for _, s := range ic.scheduled {
		if s > 0 {
			pending++
		}
	}
	return fmt.Sprintf("active=%#02x pending=%d", ic.active, pending)
}

// Enable interrupt id. Out of range ids are logged and ignored; the enable
// register is firmware facing and a bad value must not stop the machine.
func (ic *Controller) Enable(id int) {
	if id < 0 || id >= Entries {
		logger.Logf("INT", "enable of out of range interrupt id %#x ignored", id)
		return
	}
	ic.enabled[id] = true
}

// Disable interrupt id. Out of range ids are logged and ignored.
func (ic *Controller) Disable(id int) {
	if id < 0 || id >= Entries {
		logger.Logf("INT", "disable of out of range interrupt id %#x ignored", id)
		return
	}
	ic.enabled[id] = false
}

// Active returns the currently active interrupt id. Zero means none.
func (ic *Controller) Active() int {
	return ic.active
}

// activate makes id the active interrupt and asserts the CPU line. The
// caller must have checked that the id is deliverable.
func (ic *Controller) activate(id int) {
	if id == ic.periodicID && ic.period != nil {
		// the periodic timer interrupt re-fires by itself
		ic.scheduled[id] = ic.period()
	} else {
		ic.scheduled[id] = 0
	}

	ic.active = id
	ic.enabled[id] = false
	ic.line.Assert()
}

// Trigger requests delivery of interrupt id after delay ticks. A delay of
// zero delivers immediately when the id is enabled and no other interrupt is
// active; in every other circumstance delivery is deferred to the per-tick
// service scan.
//
// Triggering id zero is a modeling bug, not a recoverable condition.
func (ic *Controller) Trigger(id int, delay int) {
	if id == 0 {
		panic("intc: trigger of interrupt 0")
	}

	if delay == 0 && ic.enabled[id] && ic.active == 0 {
		if id != ic.periodicID {
			logger.Logf("INT", "trigger int %#02x", id)
		}
		ic.activate(id)
		return
	}

	// a masked interrupt cannot be delivered but still counts down and is
	// retried every tick
	if !ic.enabled[id] {
		delay = 1
	}
	if delay < 1 {
		delay = 1
	}
	ic.scheduled[id] = delay
}

// Acknowledge is the reason-register read. It returns the active id, resets
// it to zero and deasserts the CPU line. A second call before a new
// activation returns zero.
func (ic *Controller) Acknowledge() int {
	id := ic.active
	ic.active = 0
	ic.line.Deassert()
	return id
}

// ServiceTick advances every scheduled interrupt by one tick.
//
// Ids are scanned from highest to lowest; lower ids are serviced only after
// all higher ids have been resolved in the same tick. This is a hard
// invariant, not an implementation detail.
func (ic *Controller) ServiceTick() {
	for id := Entries - 1; id > 0; id-- {
		if ic.scheduled[id] == 1 {
			if ic.enabled[id] && ic.active == 0 {
				if id != ic.periodicID {
					logger.Logf("INT", "trigger int %#02x (delayed)", id)
				}
				ic.activate(id)
			}
			// not deliverable: leave it pending at 1 and retry next tick.
			// a schedule set during activation is not decremented until
			// the next tick
			continue
		}

		if ic.scheduled[id] > 1 {
			ic.scheduled[id]--
		}
	}
}

// Access implements the mmio.Handler interface. The register block is the
// interrupt engine aperture.
func (ic *Controller) Access(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	switch address & 0xfff {
	case 0x00, 0x04:
		// interrupt reason. the variant at offset 4 reports the id
		// pre-shifted for use as a handler table index
		if mode == mmio.Write {
			return 0
		}

		shift := 0
		if address&0xf != 0 {
			shift = 2
		}
		return uint32(ic.Acknowledge() << shift)

	case 0x10:
		// enable interrupt. the register is write only; reads are seen from
		// some firmware versions immediately after writing and the value is
		// unused
		if mode == mmio.Write {
			ic.Enable(int(value))
		}
		return 0

	case 0x200:
		// force clear. a non-zero write abandons the active interrupt
		if mode == mmio.Write && value != 0 {
			ic.active = 0
			ic.line.Deassert()
		}
		return 0
	}

	return 0
}
