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

import "fmt"

// NumCountdown is the number of countdown timer slots.
const NumCountdown = 12

// Countdown is one countdown timer slot.
type Countdown struct {
	Enabled bool
	Current uint32
	Reload  uint32
}

func (cd Countdown) String() string {
	return fmt.Sprintf("enabled=%v current=%#08x reload=%#08x", cd.Enabled, cd.Current, cd.Reload)
}

// step advances the timer by one tick.
//
// Note the strict greater-than in the wrap condition: the timer reaches the
// reload value and wraps on the tick after, not on the tick it is reached.
func (cd *Countdown) step() {
	if !cd.Enabled {
		return
	}

	cd.Current += Step
	if cd.Current > cd.Reload {
		cd.Current = 0
	}
}

// stop disables the timer and clears the current value.
func (cd *Countdown) stop() {
	cd.Enabled = false
	cd.Current = 0
}
