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
	"sync"

	"github.com/jtallis/gopherdigic/hardware/dma"
	"github.com/jtallis/gopherdigic/hardware/intc"
	"github.com/jtallis/gopherdigic/hardware/memory"
	"github.com/jtallis/gopherdigic/hardware/memory/mmio"
	"github.com/jtallis/gopherdigic/hardware/models"
	"github.com/jtallis/gopherdigic/hardware/peripherals/sdio"
	"github.com/jtallis/gopherdigic/hardware/peripherals/uart"
	"github.com/jtallis/gopherdigic/hardware/preferences"
	"github.com/jtallis/gopherdigic/hardware/storage"
	"github.com/jtallis/gopherdigic/hardware/timers"
	"github.com/jtallis/gopherdigic/logger"
)

// nullLine is used when no CPU collaborator has been attached.
type nullLine struct{}

func (l *nullLine) Assert()   {}
func (l *nullLine) Deassert() {}

// Machine is the main container for the emulated components of the camera.
type Machine struct {
	Model models.Desc
	Prefs *preferences.Preferences

	Mem  *memory.Memory
	INTC *intc.Controller
	TMR  *timers.Timers
	DMA  *dma.Engine
	SDIO *sdio.Controller
	UART *uart.UART

	// Crit serialises the tick path against register access from other
	// goroutines. the wall clock holds it for the duration of every tick;
	// anything else touching the machine must hold it too
	Crit sync.Mutex
}

// NewMachine creates a new Machine and everything associated with the
// hardware. line is where interrupt delivery meets the CPU collaborator and
// may be nil. card is the media image for the SD controller and may be nil.
// transport is the UART byte stream and may be nil.
func NewMachine(model models.Desc, line intc.Line, card *storage.Image, transport uart.Transport) *Machine {
	if line == nil {
		line = &nullLine{}
	}

	mac := &Machine{
		Model: model,
		Prefs: preferences.NewPreferences(),
	}

	mac.Mem = memory.NewMemory(model.Mem, mac.Prefs)

	mac.INTC = intc.NewController(line)
	mac.TMR = timers.NewTimers(mac.INTC, model.DryOSTimerSlot,
		model.TimerInterrupt, model.HPTimerInterrupt)
	mac.INTC.SetPeriodic(model.TimerInterrupt, mac.TMR.Period)

	mac.DMA = dma.NewEngine(mac.INTC, mac.Mem)
	mac.SDIO = sdio.NewController(mac.INTC, mac.Mem, card,
		model.SDDriverInterrupt, model.SDDMAInterrupt)
	mac.UART = uart.NewUART(mac.INTC, transport,
		model.UARTRxInterrupt, model.UARTTxInterrupt)

	mac.Mem.Attach(mac.buildRegistry())

	logger.Logf("MACHINE", "%s ready", model.Name)

	return mac
}

// buildRegistry lays out the dispatch table for the model. Declaration
// order decides which handler wins when ranges overlap.
func (mac *Machine) buildRegistry() *mmio.Registry {
	m := mac.Model
	reg := mmio.NewRegistry(mmio.HandlerFunc(mac.unknownRegister))

	reg.Register("INT", m.IntcBase, m.IntcBase+0xfff,
		mmio.HandlerFunc(mac.INTC.Access), 0)

	reg.Register("TIMER", m.TimerBase, m.TimerBase+0xfff,
		mmio.HandlerFunc(mac.TMR.CountdownAccess), timers.MainTimers)
	reg.Register("EEKOTIMER", m.EekoTimerBase, m.EekoTimerBase+0xfff,
		mmio.HandlerFunc(mac.TMR.CountdownAccess), timers.EekoTimers)

	reg.Register("CLOCK", m.ClockBase, m.ClockBase+3,
		mmio.HandlerFunc(mac.TMR.ClockAccess), 0)
	reg.Register("CLOCKW", m.ClockBase+4, m.ClockBase+7,
		mmio.HandlerFunc(mac.TMR.ClockAccess), 1)

	reg.Register("UTIMER", m.UnitTimerBase, m.UnitTimerBase+0xfff,
		mmio.HandlerFunc(mac.TMR.UnitAccess), 0)
	reg.Register("HPTIMER", m.HPTimerBase, m.HPTimerBase+0xfff,
		mmio.HandlerFunc(mac.TMR.HPAccess), 0)

	for ch := 1; ch <= dma.NumChannels; ch++ {
		base := m.DMABase + uint32(ch-1)*0x100
		reg.Register("DMA", base, base+0xff,
			mmio.HandlerFunc(mac.DMA.Access), ch)
	}

	reg.Register("SDIO", m.SDIOBase, m.SDIOBase+0xfff,
		mmio.HandlerFunc(mac.SDIO.Access), 0)
	reg.Register("SDDMA", m.SDDMABase, m.SDDMABase+0xff,
		mmio.HandlerFunc(mac.SDIO.DMAAccess), 0)

	reg.Register("UART", m.UARTBase, m.UARTBase+0xff,
		mmio.HandlerFunc(mac.UART.Access), 0)

	reg.Seal()
	return reg
}

// unknownRegister is the registry fallback.
func (mac *Machine) unknownRegister(parm int, address uint32, mode mmio.Mode, value uint32) uint32 {
	if mac.Prefs.LogUnknownAccess {
		logger.Logf("MMIO", "unknown register %#08x %s %#08x", address, mode, value)
	}
	return 0
}

// OnTick runs one tick of machine time. The caller must hold Crit, or
// otherwise guarantee exclusive access to the machine.
func (mac *Machine) OnTick() {
	mac.TMR.Step()
	mac.INTC.ServiceTick()
	mac.TMR.CheckCompares()
	mac.SDIO.Service()
	mac.UART.Service()
}
