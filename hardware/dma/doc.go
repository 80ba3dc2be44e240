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

// Package dma implements the two styles of DMA the machine performs.
//
// The Engine type is the general purpose memcpy style engine. A write to a
// channel's start register copies the programmed number of bytes from source
// to destination in one go and raises the channel's completion interrupt.
// From the point of view of the emulated program the copy is instantaneous
// but the completion interrupt is delayed in proportion to the number of
// bytes moved, which is what a program that sleeps on the interrupt expects
// to see.
//
// The Transfer type is the polled style used by device controllers. Words
// move between memory and the device only while the device reports data
// ready, one service call per machine tick, so completion is spread over
// many ticks the way a real card transfer would be.
package dma
