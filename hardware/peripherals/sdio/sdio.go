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

// Package sdio implements the SD card controller. The controller fields two
// register apertures, one for the command machinery and one for its private
// DMA channel, and moves card data through a polled DMA transfer against a
// storage image.
package sdio

import (
	"github.com/jtallis/gopherdigic/hardware/dma"
	"github.com/jtallis/gopherdigic/hardware/intc"
	"github.com/jtallis/gopherdigic/hardware/memory/mmio"
	"github.com/jtallis/gopherdigic/hardware/storage"
	"github.com/jtallis/gopherdigic/logger"
)

// status register bits
const (
	StatusComplete = 0x00000001
	StatusError    = 0x00000002
	StatusData     = 0x00200000
)

// command flag values that start a data transfer
const (
	cmdReadBlock  = 0x14
	cmdReadMulti  = 0x04
	cmdWriteBlock = 0x13
)

// Controller is the SD card controller.
type Controller struct {
	ic   *intc.Controller
	card *storage.Image
	xfer *dma.Transfer

	driverInterrupt int
	dmaInterrupt    int

	// command aperture state
	dmaEnabled bool
	Status     uint32
	IRQFlags   uint32
	CmdFlags   uint32
	CmdLo      uint32
	CmdHi      uint32

	// dma aperture state
	dmaAddr  uint32
	dmaCount uint32

	// a write command waits for the irq enable write before it moves data
	writePending bool
}

// NewController is the preferred method of initialisation for the
// Controller type. card may be nil, in which case transfer commands
// complete in error.
func NewController(ic *intc.Controller, bus dma.Bus, card *storage.Image,
	driverInterrupt int, dmaInterrupt int) *Controller {

	ctrl := &Controller{
		ic:              ic,
		card:            card,
		driverInterrupt: driverInterrupt,
		dmaInterrupt:    dmaInterrupt,
	}
	if card != nil {
		ctrl.xfer = dma.NewTransfer(bus, card)
	}
	return ctrl
}

// Service runs the controller's per-tick work. Must be called once per
// machine tick.
func (ctrl *Controller) Service() {
	if ctrl.xfer == nil || !ctrl.xfer.Active() {
		return
	}
	if ctrl.xfer.Service() {
		ctrl.Status |= StatusComplete | StatusData
		ctrl.raise()
		ctrl.ic.Trigger(ctrl.dmaInterrupt, 0)
	}
}

// raise the driver interrupt if the status register warrants it
func (ctrl *Controller) raise() {
	if ctrl.Status&(StatusComplete|StatusError) != 0 {
		ctrl.ic.Trigger(ctrl.driverInterrupt, 0)
	}
}

// command interprets a write to the command flags register.
func (ctrl *Controller) command(value uint32) {
	ctrl.CmdFlags = value
	ctrl.Status = 0
	ctrl.writePending = false

	switch value {
	case cmdReadBlock, cmdReadMulti:
		if ctrl.card == nil {
			ctrl.Status |= StatusError
			ctrl.raise()
			return
		}
		if ctrl.dmaEnabled {
			ctrl.card.Prepare(ctrl.CmdLo*storage.BlockSize, ctrl.dmaCount)
			ctrl.xfer.Begin(dma.ToMemory, ctrl.dmaAddr, ctrl.dmaCount)
			logger.Logf("SDIO", "read block %d (%d bytes)", ctrl.CmdLo, ctrl.dmaCount)
			return
		}
		// without DMA the driver reads the data register directly. data is
		// flagged available immediately
		ctrl.Status |= StatusComplete | StatusData
		ctrl.raise()

	case cmdWriteBlock:
		if ctrl.card == nil {
			ctrl.Status |= StatusError
			ctrl.raise()
			return
		}
		// held back until the driver enables the completion interrupt
		ctrl.writePending = true

	default:
		logger.Logf("SDIO", "command flags %#02x", value)
		ctrl.Status |= StatusComplete
		ctrl.raise()
	}
}

// flushWrite starts a pending write transfer.
func (ctrl *Controller) flushWrite() {
	if !ctrl.writePending {
		return
	}
	ctrl.writePending = false

	if ctrl.dmaEnabled {
		ctrl.card.Prepare(ctrl.CmdLo*storage.BlockSize, ctrl.dmaCount)
		ctrl.xfer.Begin(dma.FromMemory, ctrl.dmaAddr, ctrl.dmaCount)
		logger.Logf("SDIO", "write block %d (%d bytes)", ctrl.CmdLo, ctrl.dmaCount)
		return
	}

	ctrl.Status |= StatusComplete
}

// Access handles the command register aperture. Registered with
// mmio.HandlerFunc:
//
//	+0x08  transfer DMA enable
//	+0x0c  command flags: a write resets status and interprets the command
//	+0x10  status: a write keeps only the bits it names
//	+0x14  interrupt enable: a write flushes a held write command
//	+0x20  command argument, low word
//	+0x24  command argument, high word
func (ctrl *Controller) Access(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	switch address & 0xfff {
	case 0x08:
		if mode == mmio.Write {
			ctrl.dmaEnabled = value&1 == 1
			return 0
		}
		if ctrl.dmaEnabled {
			return 1
		}
		return 0

	case 0x0c:
		if mode == mmio.Write {
			ctrl.command(value)
			return 0
		}
		return ctrl.CmdFlags

	case 0x10:
		if mode == mmio.Write {
			ctrl.Status &= value
			return 0
		}
		return ctrl.Status

	case 0x14:
		if mode == mmio.Write {
			ctrl.IRQFlags = value
			ctrl.flushWrite()
			ctrl.raise()
			return 0
		}
		return ctrl.IRQFlags

	case 0x20:
		if mode == mmio.Write {
			ctrl.CmdLo = value
			return 0
		}
		return ctrl.CmdLo

	case 0x24:
		if mode == mmio.Write {
			ctrl.CmdHi = value
			return 0
		}
		return ctrl.CmdHi
	}

	return 0
}

// DMAAccess handles the controller's private DMA aperture. Registered with
// mmio.HandlerFunc:
//
//	+0x00  memory address
//	+0x04  byte count
//	+0x10  control: reads report transfer busy
func (ctrl *Controller) DMAAccess(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	switch address & 0xff {
	case 0x00:
		if mode == mmio.Write {
			ctrl.dmaAddr = value
			return 0
		}
		return ctrl.dmaAddr

	case 0x04:
		if mode == mmio.Write {
			ctrl.dmaCount = value
			return 0
		}
		return ctrl.dmaCount

	case 0x10:
		if mode == mmio.Write {
			return 0
		}
		if ctrl.xfer != nil && ctrl.xfer.Active() {
			return 1
		}
		return 0
	}

	return 0
}
