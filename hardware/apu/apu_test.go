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

package apu_test

import (
	"testing"

	"github.com/jetsetilly/gopherboy/hardware/apu"
	"github.com/jetsetilly/gopherboy/hardware/memory/addresses"
	"github.com/jetsetilly/gopherboy/test"
)

// clocks per 512Hz frame sequencer step
const sequencerStep = apu.MachineClock / 512

func powerOn(ap *apu.APU) {
	ap.WriteRegister(addresses.NR52, 0x80)
	ap.WriteRegister(addresses.NR50, 0x77)
	ap.WriteRegister(addresses.NR51, 0xff)
}

func TestPowerControl(t *testing.T) {
	ap := apu.NewAPU()

	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52), 0x70)

	powerOn(ap)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52), 0xf0)

	// registers are not writable with the unit powered off
	ap.WriteRegister(addresses.NR52, 0x00)
	ap.WriteRegister(addresses.NR50, 0x77)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52), 0x70)

	// powering off clears the registers
	powerOn(ap)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR50), 0x00)
}

func TestWaveRAMAlwaysAccessible(t *testing.T) {
	ap := apu.NewAPU()

	// wave RAM is writable even with the unit powered off and survives a
	// power cycle
	ap.WriteRegister(addresses.WaveRAMStart, 0xa5)
	test.ExpectEquality(t, ap.ReadRegister(addresses.WaveRAMStart), 0xa5)

	powerOn(ap)
	ap.WriteRegister(addresses.NR52, 0x00)
	test.ExpectEquality(t, ap.ReadRegister(addresses.WaveRAMStart), 0xa5)
}

func TestLengthCounter(t *testing.T) {
	ap := apu.NewAPU()
	powerOn(ap)

	// full volume, DAC on. length 63 leaves one tick on the counter
	ap.WriteRegister(addresses.NR12, 0xf0)
	ap.WriteRegister(addresses.NR11, 0x3f)
	ap.WriteRegister(addresses.NR14, 0xc0)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x01, uint8(0x01))

	// the first length tick silences the channel
	event := ap.Step(sequencerStep)
	test.ExpectedSuccess(t, event)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x01, uint8(0x00))
}

func TestLengthCounterDisabled(t *testing.T) {
	ap := apu.NewAPU()
	powerOn(ap)

	// trigger without the length enable bit. the channel plays on
	ap.WriteRegister(addresses.NR12, 0xf0)
	ap.WriteRegister(addresses.NR11, 0x3f)
	ap.WriteRegister(addresses.NR14, 0x80)

	ap.Step(sequencerStep * 16)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x01, uint8(0x01))
}

func TestSweepOverflow(t *testing.T) {
	ap := apu.NewAPU()
	powerOn(ap)

	// a trigger whose very first sweep target is out of range disables the
	// channel immediately
	ap.WriteRegister(addresses.NR10, 0x11)
	ap.WriteRegister(addresses.NR12, 0xf0)
	ap.WriteRegister(addresses.NR13, 0xff)
	ap.WriteRegister(addresses.NR14, 0x87)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x01, uint8(0x00))
}

func TestSweepOverflowDuringPlayback(t *testing.T) {
	ap := apu.NewAPU()
	powerOn(ap)

	// sweep period 1, shift 1, increasing. starting at 0x400 the first
	// sweep step lands on 0x600 and the lookahead to 0x900 overflows
	ap.WriteRegister(addresses.NR10, 0x11)
	ap.WriteRegister(addresses.NR12, 0xf0)
	ap.WriteRegister(addresses.NR13, 0x00)
	ap.WriteRegister(addresses.NR14, 0x84)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x01, uint8(0x01))

	// the sweep ticks on sequencer steps two and six
	event := ap.Step(sequencerStep * 3)
	test.ExpectedSuccess(t, event)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x01, uint8(0x00))
}

func TestDACOff(t *testing.T) {
	ap := apu.NewAPU()
	powerOn(ap)

	// triggering a channel whose DAC has no power does not enable it
	ap.WriteRegister(addresses.NR12, 0x00)
	ap.WriteRegister(addresses.NR14, 0x80)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x01, uint8(0x00))

	// cutting DAC power silences a playing channel
	ap.WriteRegister(addresses.NR22, 0xf0)
	ap.WriteRegister(addresses.NR24, 0x80)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x02, uint8(0x02))
	ap.WriteRegister(addresses.NR22, 0x00)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x02, uint8(0x00))
}

func TestEnvelope(t *testing.T) {
	ap := apu.NewAPU()
	powerOn(ap)

	// volume 15, decreasing, period 1. after eight sequencer steps the
	// envelope has ticked once
	ap.WriteRegister(addresses.NR12, 0xf1)
	ap.WriteRegister(addresses.NR14, 0x80)

	// the envelope itself is not observable through the registers but a
	// fully decayed envelope must not disable the channel
	ap.Step(sequencerStep * 8 * 20)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52)&0x01, uint8(0x01))
}

func TestSampleRate(t *testing.T) {
	ap := apu.NewAPU()
	powerOn(ap)

	// one second of machine time produces one second of stereo samples
	ap.Step(apu.MachineClock)
	samples := ap.ReadAudio()
	test.ExpectEquality(t, len(samples), apu.DefaultSampleRate*2)

	// the buffer is drained by the read
	test.ExpectEquality(t, len(ap.ReadAudio()), 0)

	ap.SetSampleRate(22050)
	ap.Step(apu.MachineClock)
	test.ExpectEquality(t, len(ap.ReadAudio()), 22050*2)
}

func TestSamplesWhilePoweredOff(t *testing.T) {
	ap := apu.NewAPU()

	// a powered down unit still emits a steady stream of silence
	ap.Step(apu.MachineClock / 2)
	samples := ap.ReadAudio()
	test.ExpectEquality(t, len(samples), apu.DefaultSampleRate)
	for _, s := range samples {
		test.ExpectEquality(t, s, int16(0))
	}
}

func TestSnapshot(t *testing.T) {
	ap := apu.NewAPU()
	powerOn(ap)

	// start a channel so the snapshot holds more than the power on state
	ap.WriteRegister(addresses.NR12, 0xf0)
	ap.WriteRegister(addresses.NR14, 0x80)

	snapshot := ap.Snapshot()
	test.ExpectEquality(t, snapshot.ReadRegister(addresses.NR52), ap.ReadRegister(addresses.NR52))

	// the snapshot shares nothing with the live unit
	ap.WriteRegister(addresses.NR52, 0x00)
	test.ExpectEquality(t, ap.ReadRegister(addresses.NR52), uint8(0x70))
	test.ExpectEquality(t, snapshot.ReadRegister(addresses.NR52)&0x80, uint8(0x80))
}
