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

// Package hardware is the container package for the emulated peripherals of
// the camera system-on-chip. The Machine type gathers the address space,
// the interrupt engine, the timer block, the DMA engines and the card and
// serial controllers, and wires their register apertures into a single
// dispatch table.
//
// There is no CPU in this machine. The CPU collaborator drives the machine
// from outside through Memory reads and writes and observes interrupt
// delivery through the line it supplies at creation.
package hardware
