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

// Step is the amount added to the free-running clocks, and to every enabled
// countdown timer, on each tick. One tick of virtual time is Step
// microseconds.
const Step = 0x100

// The two clock domains. Both masks also clear the sub-Step bits so a clock
// value is always a whole number of Steps.
const (
	MaskNarrow = uint32(0x000fffff) &^ (Step - 1)
	MaskWide   = uint32(0xffffffff) &^ (Step - 1)
)

// Clocks are the free-running counters the output-compare timers run
// against. The narrow domain wraps every 2^20 microseconds, the wide domain
// every 2^32.
type Clocks struct {
	Narrow uint32
	Wide   uint32

	// value returned by the most recent read of each clock register. the
	// difference between a newly armed compare value and the last read is
	// the delay the firmware asked for
	NarrowLastRead uint32
	WideLastRead   uint32
}

// Advance both clocks by one tick.
func (c *Clocks) Advance() {
	c.Narrow = (c.Narrow + Step) & MaskNarrow
	c.Wide = (c.Wide + Step) & MaskWide
}
