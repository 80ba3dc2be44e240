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

package tick

import (
	"sync"
	"time"
)

// Period of one tick in real time. One tick represents 256 microseconds of
// machine time.
const Period = 256 * time.Microsecond

// WallClock fires ticks in real time at the machine's tick period.
type WallClock struct {
	// Crit is held for the duration of every fired tick. the machine
	// shares this mutex so that register access from other goroutines is
	// serialised against tick work
	Crit *sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewWallClock is the preferred method of initialisation for the WallClock
// type.
func NewWallClock(crit *sync.Mutex) *WallClock {
	return &WallClock{Crit: crit}
}

// ScheduleTick implements the Clock interface.
func (clk *WallClock) ScheduleTick(f func()) {
	clk.mu.Lock()
	defer clk.mu.Unlock()

	if clk.stopped {
		return
	}

	clk.timer = time.AfterFunc(Period, func() {
		clk.Crit.Lock()
		defer clk.Crit.Unlock()
		f()
	})
}

// Stopped reports whether the clock has been stopped.
func (clk *WallClock) Stopped() bool {
	clk.mu.Lock()
	defer clk.mu.Unlock()
	return clk.stopped
}

// Stop cancels any pending tick and refuses future scheduling.
func (clk *WallClock) Stop() {
	clk.mu.Lock()
	defer clk.mu.Unlock()

	clk.stopped = true
	if clk.timer != nil {
		clk.timer.Stop()
	}
}

// CountedClock fires ticks only when explicitly advanced. It is fully
// deterministic and intended for tests and replay.
type CountedClock struct {
	pending func()

	// Ticks is the number of ticks fired since initialisation
	Ticks int
}

// NewCountedClock is the preferred method of initialisation for the
// CountedClock type.
func NewCountedClock() *CountedClock {
	return &CountedClock{}
}

// ScheduleTick implements the Clock interface.
func (clk *CountedClock) ScheduleTick(f func()) {
	clk.pending = f
}

// Advance fires n pending ticks. Advancing with no tick scheduled does
// nothing.
func (clk *CountedClock) Advance(n int) {
	for i := 0; i < n; i++ {
		f := clk.pending
		if f == nil {
			return
		}
		clk.pending = nil
		clk.Ticks++
		f()
	}
}
