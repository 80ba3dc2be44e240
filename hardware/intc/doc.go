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

// Package intc implements the interrupt controller of the SoC.
//
// The controller tracks, for every interrupt id, whether the id is enabled
// and whether a delivery is scheduled. System-wide, at most one id is active
// at any instant; the active id is what the CPU collaborator reads from the
// reason register when it takes the interrupt.
//
// Delivery is a two step affair. Trigger() either activates the id
// immediately (when it is enabled, requested with no delay, and nothing else
// is active) or schedules it as a countdown in ticks. The per-tick service
// scan then walks ids from highest to lowest, activating those whose
// countdown has expired and that have become deliverable. The descending
// scan order is an observable property of the hardware: when two ids expire
// on the same tick, the higher one is taken first and the lower one stays
// pending until the first is acknowledged.
//
// A masked id never disappears. Scheduling it with any delay degrades to a
// one tick countdown that is retried every tick until the id is enabled.
//
// The designated DryOS timer interrupt is special cased: activating it
// re-arms its own schedule from the timer's current period, giving the
// periodic heartbeat the firmware relies on without the timer having to
// re-trigger itself.
package intc
