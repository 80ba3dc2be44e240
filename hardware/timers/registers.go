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

package timers

import (
	"github.com/jtallis/gopherdigic/hardware/memory/mmio"
	"github.com/jtallis/gopherdigic/logger"
)

// The countdown slot selected with parm == EekoTimers, regardless of
// address.
const eekoSlot = 11

// Parm values for the countdown register aperture.
const (
	MainTimers = 0
	EekoTimers = 2
)

// CountdownAccess handles the countdown timer register block. Registered
// with mmio.HandlerFunc.
//
// Register layout, repeated per slot at a 0x100 stride:
//
//	+0x00  control: bit 0 starts the timer, clearing it stops and zeroes it
//	+0x08  reload value
//	+0x0c  current value (read only)
//	+0x10  interrupt enable (accepted, ignored)
func (tmr *Timers) CountdownAccess(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	var id int
	switch parm {
	case MainTimers:
		id = int((address & 0xf00) >> 8)
	case EekoTimers:
		id = eekoSlot
	default:
		panic("timers: countdown access with unknown parm")
	}

	if id >= NumCountdown {
		return 0
	}

	cd := &tmr.Countdown[id]

	switch address & 0x1f {
	case 0x00:
		if mode == mmio.Write {
			if value&1 == 1 {
				if tmr.dryosSlot != 0 && id == tmr.dryosSlot {
					// starting the DryOS timer establishes the initial
					// period of the periodic interrupt
					logger.Logf("TIMER", "timer #%d: starting triggering", id)
					tmr.ic.Trigger(tmr.timerInterrupt, int(cd.Reload>>8))
				} else {
					logger.Logf("TIMER", "timer #%d: starting", id)
				}
				cd.Enabled = true
			} else {
				logger.Logf("TIMER", "timer #%d: stopped", id)
				cd.stop()
			}
		}
		return 0

	case 0x08:
		if mode == mmio.Write {
			cd.Reload = value
			return 0
		}
		return cd.Reload

	case 0x0c:
		return cd.Current

	case 0x10:
		// interrupt enable. nothing to do
		return 0
	}

	return 0
}

// ClockAccess handles the free-running clock registers. parm selects the
// domain: 0 for the narrow clock, 1 for the wide clock. Reads record the
// last read value; writes are ignored.
func (tmr *Timers) ClockAccess(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	if mode == mmio.Write {
		return 0
	}

	if parm != 0 {
		tmr.Clk.WideLastRead = tmr.Clk.Wide
		return tmr.Clk.Wide
	}

	tmr.Clk.NarrowLastRead = tmr.Clk.Narrow
	return tmr.Clk.Narrow
}

// UnitAccess handles the unit timer register block. Slot registers repeat at
// a 0x40 stride starting from slot 9 of the aperture:
//
//	+0x00  active
//	+0x08  output compare (write arms the slot)
//	+0x0c  run control (observed but without effect here)
//	+0x10  triggered flag (writing clears it)
func (tmr *Timers) UnitAccess(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	id := int((address&0xfc0)>>6) - 9
	if id < 0 || id >= NumUnit {
		return 0
	}

	slot := &tmr.Unit[id]

	switch address & 0x3f {
	case 0x00:
		if mode == mmio.Write {
			slot.Active = value != 0
			return 0
		}
		if slot.Active {
			return 1
		}
		return 0

	case 0x08:
		if mode == mmio.Write {
			wideDomain.arm(slot, value, tmr.Clk.Wide)
			logger.Logf("TIMER", "unit timer #%d: output compare (delay %d microseconds)",
				id, value-tmr.Clk.WideLastRead)
			return 0
		}
		return slot.Compare

	case 0x0c:
		// start/stop pulse. the active flag at +0x00 is what matters
		return 0

	case 0x10:
		if mode == mmio.Write {
			slot.Triggered = value != 0
			return 0
		}
		if slot.Triggered {
			return 1
		}
		return 0
	}

	return 0
}

// HPAccess handles the high precision timer register block:
//
//	+0x100  enable pulse (observed but without effect here)
//	+0x104  output compare (write arms the slot)
//	+0x200  active
//	+0x204  write clears the triggered flag
//	+0x300  read returns which of the shared-interrupt slots triggered
func (tmr *Timers) HPAccess(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	id := int((address & 0x0f0) >> 4)

	switch address & 0xf0f {
	case 0x100:
		return 0

	case 0x104:
		if id >= NumHP {
			return 0
		}
		slot := &tmr.HP[id]
		if mode == mmio.Write {
			narrowDomain.arm(slot, value, tmr.Clk.Narrow)
			logger.Logf("TIMER", "HP timer #%d: output compare (delay %d microseconds)",
				id, value-tmr.Clk.NarrowLastRead)
			return 0
		}
		return slot.Compare

	case 0x200:
		if id >= NumHP {
			return 0
		}
		slot := &tmr.HP[id]
		if mode == mmio.Write {
			slot.Active = value != 0
			return 0
		}
		if slot.Active {
			return 1
		}
		return 0

	case 0x204:
		if id >= NumHP {
			return 0
		}
		if mode == mmio.Write {
			tmr.HP[id].Triggered = false
		}
		return 0

	case 0x300:
		if mode == mmio.Write {
			return 0
		}
		var ret uint32
		for i := 0; i < 8; i++ {
			if tmr.HP[6+i].Triggered {
				ret |= 1 << (2*i + 4)
			}
		}
		return ret
	}

	return 0
}
