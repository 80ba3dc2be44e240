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

package hardware

import (
	"time"

	"github.com/jtallis/gopherdigic/hardware/tick"
)

// Run drives the machine in real time on a wall clock. It blocks until
// continueCheck returns false.
func (mac *Machine) Run(continueCheck func() bool) {
	clk := tick.NewWallClock(&mac.Crit)
	drv := tick.NewDriver(clk, mac.OnTick)

	mac.Crit.Lock()
	drv.Start()
	mac.Crit.Unlock()

	for continueCheck() {
		time.Sleep(10 * time.Millisecond)
	}

	clk.Stop()
	mac.Crit.Lock()
	drv.Stop()
	mac.Crit.Unlock()
}

// Step runs n ticks of machine time immediately. It is the deterministic
// counterpart to Run, for tests and controlled replay. The caller must hold
// Crit if the machine is shared.
func (mac *Machine) Step(n int) {
	for i := 0; i < n; i++ {
		mac.OnTick()
	}
}
