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

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/jtallis/gopherdigic/curated"
	"github.com/jtallis/gopherdigic/debug"
	"github.com/jtallis/gopherdigic/hardware"
	"github.com/jtallis/gopherdigic/hardware/models"
	"github.com/jtallis/gopherdigic/hardware/peripherals/uart"
	"github.com/jtallis/gopherdigic/hardware/storage"
	"github.com/jtallis/gopherdigic/logger"
	"github.com/jtallis/gopherdigic/modalflag"
	"github.com/jtallis/gopherdigic/romloader"
	"github.com/jtallis/gopherdigic/statsview"
	"github.com/jtallis/gopherdigic/terminal"
	"github.com/jtallis/gopherdigic/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DUMP", "VERSION")

	r, err := md.Parse()
	switch r {
	case modalflag.ParseHelp:
		return
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = emulate(md)
	case "DUMP":
		err = dump(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}
}

// newMachine builds a machine for the command line mode, loading the ROM
// image named by the first remaining argument.
func newMachine(md *modalflag.Modes, modelName string, sdFile string, transport uart.Transport) (*hardware.Machine, error) {
	romFile := md.GetArg(0)
	if romFile == "" {
		return nil, curated.Errorf("no ROM image specified")
	}

	model, ok := models.GetModel(modelName)
	if !ok {
		return nil, curated.Errorf("unrecognised model (%s)", modelName)
	}

	var card *storage.Image
	var err error
	if sdFile != "" {
		card, err = storage.Load("sd", sdFile)
		if err != nil {
			return nil, err
		}
	} else {
		card = storage.NewImage("sd", 16*1024*1024)
	}

	mac := hardware.NewMachine(model, nil, card, transport)

	if err := romloader.LoadROM(mac.Mem, romFile); err != nil {
		return nil, err
	}

	return mac, nil
}

func emulate(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("model", "", "camera model to emulate")
	sdFile := md.AddString("sd", "", "card image file (blank card if not specified)")
	useTerm := md.AddBool("term", false, "attach the host terminal to the serial port")
	stats := md.AddBool("stats", false, "launch statistics server")
	echoLog := md.AddBool("log", false, "echo the log to stderr")

	r, err := md.Parse()
	if r != modalflag.ParseContinue {
		return err
	}

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	var transport uart.Transport
	if *useTerm {
		host, err := terminal.NewHost()
		if err != nil {
			return err
		}
		defer host.Restore()
		transport = host
	}

	mac, err := newMachine(md, *model, *sdFile, transport)
	if err != nil {
		return err
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* statsview not available. rebuild with statsview build constraint")
		}
	}

	// run until interrupted
	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)

	mac.Run(func() bool {
		select {
		case <-intr:
			return false
		default:
			return true
		}
	})

	return nil
}

func dump(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("model", "", "camera model to emulate")
	ticks := md.AddInt("ticks", 0, "machine ticks to run before dumping")

	r, err := md.Parse()
	if r != modalflag.ParseContinue {
		return err
	}

	mac, err := newMachine(md, *model, "", nil)
	if err != nil {
		return err
	}

	mac.Step(*ticks)
	debug.DumpMachine(os.Stdout, mac)

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	r, err := md.Parse()
	if r != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, ver)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
