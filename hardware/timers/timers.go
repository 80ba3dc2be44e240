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
	"fmt"

	"github.com/jtallis/gopherdigic/hardware/intc"
	"github.com/jtallis/gopherdigic/logger"
)

// interrupt ids raised by the unit timer slots. one id per slot.
var unitInterrupts = [NumUnit]int{0x0e, 0x1e, 0x2e, 0x3e, 0x4e, 0x5e, 0x6e, 0x7e}

// Timers is the timer engine: free-running clocks, countdown timers and the
// two output-compare families.
type Timers struct {
	ic *intc.Controller

	Clk       Clocks
	Countdown [NumCountdown]Countdown
	Unit      [NumUnit]Compare
	HP        [NumHP]Compare

	// the countdown slot that drives the DryOS scheduler and the interrupt
	// id it repeats on
	dryosSlot      int
	timerInterrupt int

	// interrupt id per HP slot. slots 6 and upward share one id; slots 4
	// and 5 are not wired on any supported model
	hpInterrupts [NumHP]int
}

// NewTimers is the preferred method of initialisation for the Timers type.
func NewTimers(ic *intc.Controller, dryosSlot int, timerInterrupt int, hpInterrupt int) *Timers {
	tmr := &Timers{
		ic:             ic,
		dryosSlot:      dryosSlot,
		timerInterrupt: timerInterrupt,
	}

	tmr.hpInterrupts = [NumHP]int{
		0x18, 0x1a, 0x1c, 0x1e, 0, 0,
		hpInterrupt, hpInterrupt, hpInterrupt, hpInterrupt,
		hpInterrupt, hpInterrupt, hpInterrupt, hpInterrupt,
	}

	return tmr
}

func (tmr *Timers) String() string {
	return fmt.Sprintf("narrow=%#06x wide=%#08x dryos=%s",
		tmr.Clk.Narrow, tmr.Clk.Wide, tmr.Countdown[tmr.dryosSlot].String())
}

// Period returns the current repeat period of the DryOS timer interrupt, in
// ticks. It is derived from the reload value of the designated countdown
// slot.
func (tmr *Timers) Period() int {
	return int(tmr.Countdown[tmr.dryosSlot].Reload >> 8)
}

// Step advances the free-running clocks and every enabled countdown timer by
// one tick. Called from the tick driver before the interrupt service scan.
func (tmr *Timers) Step() {
	tmr.Clk.Advance()

	for i := range tmr.Countdown {
		tmr.Countdown[i].step()
	}
}

// CheckCompares fires every output-compare slot whose compare value equals
// its clock on this tick. Called from the tick driver after the interrupt
// service scan.
func (tmr *Timers) CheckCompares() {
	for id := range tmr.Unit {
		if tmr.Unit[id].check(tmr.Clk.Wide) {
			logger.Logf("TIMER", "firing unit timer #%d", id)
			tmr.Unit[id].Triggered = true
			tmr.ic.Trigger(unitInterrupts[id], 0)
		}
	}

	// several HP slots can share one interrupt id. slots firing on the same
	// tick are gathered first so the shared id is triggered only once
	var fired [64]bool

	for id := range tmr.HP {
		if tmr.HP[id].check(tmr.Clk.Narrow) {
			logger.Logf("TIMER", "firing HP timer #%d", id)
			tmr.HP[id].Triggered = true

			irq := tmr.hpInterrupts[id]
			if irq <= 0 || irq >= len(fired) {
				panic(fmt.Sprintf("timers: HP timer #%d fired with no interrupt id", id))
			}
			fired[irq] = true
		}
	}

	for irq := 1; irq < len(fired); irq++ {
		if fired[irq] {
			tmr.ic.Trigger(irq, 0)
		}
	}
}
