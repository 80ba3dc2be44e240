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

// Package timers implements the time-based engines of the SoC: the two
// free-running clocks, the countdown timers and the two families of
// output-compare timers.
//
// Everything in this package advances in units of one tick. A tick adds
// Step to both free-running clocks and to every enabled countdown timer.
// Countdown timers wrap to zero when the current value exceeds (strictly)
// the reload value; the one tick late wrap that follows from the strict
// comparison is a behaviour the firmware depends on and is preserved
// deliberately.
//
// The output-compare timers fire when their armed compare value equals the
// free-running clock exactly. Arming rounds the requested value up to the
// next Step boundary; a request that lands behind the clock (in signed
// arithmetic modulo the domain width) snaps forward to the next tick rather
// than waiting out a full wraparound.
package timers
