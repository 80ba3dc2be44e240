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

// Package tick drives the machine's time base. A Driver repeatedly
// schedules itself on a Clock and runs the machine's per-tick work each
// time the clock fires. Rescheduling happens after the tick work, as the
// last action, so tick work never observes a pending tick.
//
// Two clocks are provided. WallClock fires at the simulated timer
// resolution in real time and is what the full machine runs on.
// CountedClock fires only when explicitly advanced and is intended for
// tests and deterministic replay.
package tick

// Clock schedules a single future tick. Implementations call f exactly once
// per ScheduleTick call.
type Clock interface {
	ScheduleTick(f func())
}

// Driver runs a machine's per-tick work on every tick of a Clock.
type Driver struct {
	clk    Clock
	onTick func()

	running bool
}

// NewDriver is the preferred method of initialisation for the Driver type.
func NewDriver(clk Clock, onTick func()) *Driver {
	return &Driver{
		clk:    clk,
		onTick: onTick,
	}
}

// Start arms the first tick. Starting an already started driver does
// nothing.
func (drv *Driver) Start() {
	if drv.running {
		return
	}
	drv.running = true
	drv.clk.ScheduleTick(drv.tick)
}

// Stop prevents any further ticks from being scheduled. A tick already
// scheduled with the clock may still fire but will not run the tick work.
func (drv *Driver) Stop() {
	drv.running = false
}

func (drv *Driver) tick() {
	if !drv.running {
		return
	}

	drv.onTick()

	// rescheduling is the very last action of a tick
	drv.clk.ScheduleTick(drv.tick)
}
