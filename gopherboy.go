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

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jetsetilly/gopherboy/cartridgeloader"
	"github.com/jetsetilly/gopherboy/disassembly"
	"github.com/jetsetilly/gopherboy/hardware"
	"github.com/jetsetilly/gopherboy/hardware/clocks"
	"github.com/jetsetilly/gopherboy/hardware/ppu"
	"github.com/jetsetilly/gopherboy/hardware/preferences"
	"github.com/jetsetilly/gopherboy/logger"
	"github.com/jetsetilly/gopherboy/modalflag"
	"github.com/jetsetilly/gopherboy/performance"
	"github.com/jetsetilly/gopherboy/playmode"
	"github.com/jetsetilly/gopherboy/statsview"
	"github.com/jetsetilly/gopherboy/version"
	"github.com/jetsetilly/gopherboy/wavwriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "PERFORMANCE", "WAV", "DISASM", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = play(md)
	case "PERFORMANCE":
		err = perform(md)
	case "WAV":
		err = wavCapture(md)
	case "DISASM":
		err = disasm(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

// loadCartridge reads the single cartridge file named in the remaining
// arguments.
func loadCartridge(md *modalflag.Modes) (cartridgeloader.Loader, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return cartridgeloader.Loader{}, fmt.Errorf("cartridge required for %s mode", md)
	case 1:
		filename := md.GetArg(0)
		data, err := os.ReadFile(filename)
		if err != nil {
			return cartridgeloader.Loader{}, err
		}
		return cartridgeloader.NewLoader(filepath.Base(filename), data), nil
	default:
		return cartridgeloader.Loader{}, fmt.Errorf("too many arguments for %s mode", md)
	}
}

func setEcho(echo bool) {
	if echo {
		logger.SetEcho(os.Stderr, false)
	} else {
		logger.SetEcho(nil, false)
	}
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	scale := md.AddInt("scale", 3, "window scale")
	fpsCap := md.AddBool("fpscap", true, "cap fps to the hardware rate")
	revFlag := md.AddString("revision", "", "hardware revision: DMG, MGB")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	cartload, err := loadCartridge(md)
	if err != nil {
		return err
	}

	prf, err := preferences.NewPreferences()
	if err != nil {
		return err
	}

	// the command line takes precedence over the prefs file
	revString := prf.Revision.String()
	if *revFlag != "" {
		revString = *revFlag
	}

	model := ppu.Mode3Penalty
	if prf.Mode3Model.String() == "simple" {
		model = ppu.Mode3Simple
	}

	return playmode.Play(cartload, hardware.ParseRevision(revString), playmode.Options{
		Scale:         *scale,
		FPSCap:        *fpsCap,
		SampleRate:    prf.SampleRate.Get().(int),
		Mode3Model:    model,
		BlankDisabled: prf.BlankDisabled.Get().(bool),
	})
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "profile the run: cpu, mem, all")
	stats := md.AddBool("statsview", false, "run stats server")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	cartload, err := loadCartridge(md)
	if err != nil {
		return err
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	return performance.Check(os.Stdout, prof, cartload, *duration)
}

func wavCapture(md *modalflag.Modes) error {
	md.NewMode()

	frames := md.AddInt("frames", 600, "number of frames to capture")
	output := md.AddString("output", "", "wav filename. defaults to the cartridge name")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	cartload, err := loadCartridge(md)
	if err != nil {
		return err
	}

	filename := *output
	if filename == "" {
		filename = fmt.Sprintf("%s.wav", cartload.Name)
	}

	prf, err := preferences.NewPreferences()
	if err != nil {
		return err
	}
	sampleRate := prf.SampleRate.Get().(int)

	aw, err := wavwriter.New(filename, sampleRate)
	if err != nil {
		return err
	}

	gb := hardware.NewGameBoy(hardware.ParseRevision(prf.Revision.String()))
	gb.AddAudioMixer(aw)

	if err := gb.AttachCartridge(cartload); err != nil {
		return err
	}
	gb.APU.SetSampleRate(sampleRate)

	for i := 0; i < *frames; i++ {
		if err := gb.RunForFrame(); err != nil {
			return err
		}
	}

	if err := aw.EndMixing(); err != nil {
		return err
	}

	fmt.Printf("%d frames (%.1fs) of audio written to %s\n",
		*frames, float32(*frames)/clocks.FrameRate, filename)

	return nil
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	bank := md.AddInt("bank", -1, "output only the specified bank")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cartload, err := loadCartridge(md)
	if err != nil {
		return err
	}

	dsm, err := disassembly.FromCartridge(cartload)
	if err != nil {
		return err
	}

	fmt.Println(dsm.Header.String())

	if *bank >= 0 {
		return dsm.WriteBank(os.Stdout, *bank)
	}
	return dsm.Write(os.Stdout)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Printf("%s %s (%s)\n", version.ApplicationName, ver, rev)

	return nil
}
