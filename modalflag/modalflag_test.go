// This file is part of Gopherboy.
//
// Gopherboy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherboy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherboy.  If not, see <https://www.gnu.org/licenses/>.

package modalflag_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopherboy/modalflag"
	"github.com/jetsetilly/gopherboy/test"
)

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"rom.gb"})

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.ExpectEquality(t, r, modalflag.ParseContinue)
	test.ExpectEquality(t, md.GetArg(0), "rom.gb")
	test.ExpectEquality(t, md.Mode(), "")
}

func TestSubModeSelection(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"disasm", "rom.gb"})
	md.AddSubModes("run", "disasm", "version")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.ExpectEquality(t, r, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "DISASM")

	// the sub-mode argument has been consumed
	md.NewMode()
	r, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.ExpectEquality(t, r, modalflag.ParseContinue)
	test.ExpectEquality(t, md.GetArg(0), "rom.gb")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"rom.gb"})
	md.AddSubModes("run", "disasm")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.ExpectEquality(t, r, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "RUN")

	// no sub-mode argument was consumed so the cartridge name is still the
	// first argument
	md.NewMode()
	r, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.ExpectEquality(t, r, modalflag.ParseContinue)
	test.ExpectEquality(t, md.GetArg(0), "rom.gb")
}

func TestModeFlags(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"run", "-scale", "4", "rom.gb"})
	md.AddSubModes("run", "disasm")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.ExpectEquality(t, r, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "RUN")

	md.NewMode()
	scale := md.AddInt("scale", 2, "window scale")
	r, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.ExpectEquality(t, r, modalflag.ParseContinue)
	test.ExpectEquality(t, *scale, 4)
	test.ExpectEquality(t, md.GetArg(0), "rom.gb")
}

func TestHelp(t *testing.T) {
	output := &strings.Builder{}
	md := modalflag.Modes{Output: output}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("run", "disasm")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.ExpectEquality(t, r, modalflag.ParseHelp)
	test.ExpectedSuccess(t, strings.Contains(output.String(), "available sub-modes"))
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"-no-such-flag"})

	r, _ := md.Parse()
	test.ExpectEquality(t, r, modalflag.ParseError)
}

func TestPath(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"run", "rom.gb"})
	md.AddSubModes("run", "disasm")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.ExpectEquality(t, md.Path(), "RUN")
}
