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

package modalflag_test

import (
	"testing"

	"github.com/jtallis/gopherdigic/modalflag"
	"github.com/jtallis/gopherdigic/test"
)

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"image.bin"})
	md.AddSubModes("RUN", "DUMP", "VERSION")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(r), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "RUN")

	// the image argument was not consumed as a mode
	test.Equate(t, md.GetArg(0), "image.bin")
}

func TestExplicitSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"dump", "image.bin"})
	md.AddSubModes("RUN", "DUMP", "VERSION")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "DUMP")

	// the next layer of parsing starts past the mode word
	md.NewMode()
	_, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.GetArg(0), "image.bin")
}

func TestModeFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"run", "-model", "5D3", "image.bin"})
	md.AddSubModes("RUN", "DUMP")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "RUN")

	md.NewMode()
	model := md.AddString("model", "", "model to emulate")
	_, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, *model, "5D3")
	test.Equate(t, md.GetArg(0), "image.bin")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-no-such-flag"})

	r, err := md.Parse()
	test.ExpectedFailure(t, err)
	test.Equate(t, int(r), int(modalflag.ParseError))
}
