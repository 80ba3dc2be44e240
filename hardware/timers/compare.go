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

// The two output-compare families share one algorithm, parameterised by the
// clock domain they watch.
const (
	// NumUnit is the number of unit timer slots (wide domain).
	NumUnit = 8

	// NumHP is the number of high precision timer slots (narrow domain).
	NumHP = 14
)

// Compare is one output-compare timer slot.
type Compare struct {
	Active  bool
	Compare uint32

	// Triggered latches when the slot fires. it is cleared only by an
	// explicit register write, never automatically
	Triggered bool
}

// domain describes the clock domain an output-compare family runs in.
type domain struct {
	mask uint32

	// number of bits to shift when sign extending a compare-minus-clock
	// difference. zero for the full 32 bit domain
	signShift uint
}

var (
	narrowDomain = domain{mask: MaskNarrow, signShift: 12}
	wideDomain   = domain{mask: MaskWide, signShift: 0}
)

// arm the slot with the requested compare value.
//
// The value is rounded up to the next Step boundary so that the exact
// equality test against the clock can succeed. The firmware sometimes arms a
// value a little behind the clock; waiting for the clock to wrap all the way
// around would stall it for minutes, so a request that is behind (in signed
// arithmetic within the domain width) snaps forward to the very next tick.
func (d domain) arm(slot *Compare, value uint32, clock uint32) {
	rounded := (value + Step) & d.mask
	slot.Compare = rounded

	delay := int32((rounded-clock)<<d.signShift) >> d.signShift
	if delay < 0 {
		slot.Compare = clock + Step
	}
}

// check returns true if the slot fires on this tick.
func (slot *Compare) check(clock uint32) bool {
	return slot.Active && slot.Compare == clock
}
