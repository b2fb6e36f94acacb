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

// Package apu implements the four channel sound unit. Two pulse channels,
// the first with a frequency sweep, a 32 sample wave channel and a noise
// channel. A frame sequencer clocked at 512Hz drives the length counters,
// envelopes and the sweep.
//
// The unit resamples its output to the host sample rate as it runs. Stereo
// samples accumulate in an internal buffer and are handed over through
// ReadAudio(), typically once per video frame.
package apu

import (
	"fmt"

	"github.com/jetsetilly/gopherboy/hardware/memory/addresses"
)

// MachineClock is the rate at which Step() consumes clocks.
const MachineClock = 4194304

// DefaultSampleRate is the output rate used unless SetSampleRate is called.
const DefaultSampleRate = 44100

// the frame sequencer ticks at 512Hz
const clocksPerSequencerStep = MachineClock / 512

// APU is the sound unit. Step() must be called with the clocks consumed by
// every CPU instruction for the waveform timers to stay in phase with the
// rest of the machine.
type APU struct {
	enabled bool

	ch1 pulse
	ch2 pulse
	ch3 wave
	ch4 noise

	// NR50 and NR51
	masterVolume uint8
	routing      uint8

	// frame sequencer state
	sequencerClock int
	sequencerStep  int

	// resampler state. sampleClock accumulates clocks*sampleRate and a
	// sample is emitted every time it exceeds the machine clock rate
	sampleRate  int
	sampleClock int
	samples     []int16
}

// NewAPU is the preferred method of initialisation for the APU type.
func NewAPU() *APU {
	ap := &APU{
		ch1:        newPulse(true),
		ch2:        newPulse(false),
		ch3:        newWave(),
		ch4:        newNoise(),
		sampleRate: DefaultSampleRate,
		samples:    make([]int16, 0, 4096),
	}
	return ap
}

// Snapshot creates a copy of the APU in its current state.
func (ap *APU) Snapshot() *APU {
	n := *ap
	n.samples = make([]int16, len(ap.samples))
	copy(n.samples, ap.samples)
	return &n
}

// Plumb a snapshotted APU back into the machine. The APU holds no
// references into the rest of the machine so there is nothing to reconnect.
func (ap *APU) Plumb() {
}

// SetSampleRate changes the rate at which output samples are produced.
func (ap *APU) SetSampleRate(rate int) {
	if rate > 0 {
		ap.sampleRate = rate
	}
}

func (ap *APU) String() string {
	return fmt.Sprintf("ch1: %v ch2: %v ch3: %v ch4: %v",
		ap.ch1.enabled, ap.ch2.enabled, ap.ch3.enabled, ap.ch4.enabled)
}

// Step runs the APU for the given number of clocks. Returns true if any
// channel was disabled during the period, by a length counter expiring or
// by a sweep overflow.
func (ap *APU) Step(clocks int) bool {
	event := false

	if ap.enabled {
		ap.sequencerClock += clocks
		for ap.sequencerClock >= clocksPerSequencerStep {
			ap.sequencerClock -= clocksPerSequencerStep
			if ap.tickSequencer() {
				event = true
			}
		}

		ap.ch1.tickTimer(clocks)
		ap.ch2.tickTimer(clocks)
		ap.ch3.tickTimer(clocks)
		ap.ch4.tickTimer(clocks)
	}

	// resampling continues even with the unit powered off. the host mixer
	// expects a steady stream of samples regardless
	ap.sampleClock += clocks * ap.sampleRate
	for ap.sampleClock >= MachineClock {
		ap.sampleClock -= MachineClock
		left, right := ap.mix()
		ap.samples = append(ap.samples, left, right)
	}

	return event
}

// tickSequencer runs one 512Hz frame sequencer step. Length counters tick
// on even steps, the sweep on steps two and six, the envelopes on step
// seven.
func (ap *APU) tickSequencer() bool {
	event := false

	switch ap.sequencerStep {
	case 0, 4:
		event = ap.tickLengths()
	case 2, 6:
		event = ap.tickLengths()
		if ap.ch1.tickSweep() {
			event = true
		}
	case 7:
		ap.ch1.env.tick()
		ap.ch2.env.tick()
		ap.ch4.env.tick()
	}

	ap.sequencerStep = (ap.sequencerStep + 1) % 8
	return event
}

func (ap *APU) tickLengths() bool {
	event := false
	if ap.ch1.length.tick() {
		ap.ch1.enabled = false
		event = true
	}
	if ap.ch2.length.tick() {
		ap.ch2.enabled = false
		event = true
	}
	if ap.ch3.length.tick() {
		ap.ch3.enabled = false
		event = true
	}
	if ap.ch4.length.tick() {
		ap.ch4.enabled = false
		event = true
	}
	return event
}

// mix combines the four channel outputs into one stereo sample according to
// the NR51 routing bits and the NR50 master volumes.
func (ap *APU) mix() (int16, int16) {
	if !ap.enabled {
		return 0, 0
	}

	outputs := [4]int{
		ap.ch1.output(),
		ap.ch2.output(),
		ap.ch3.output(),
		ap.ch4.output(),
	}

	var left, right int
	for i, out := range outputs {
		// the DAC maps the 0 to 15 digital value onto a bipolar range
		analogue := out*2 - 15
		if ap.routing&(1<<uint(i+4)) != 0 {
			left += analogue
		}
		if ap.routing&(1<<uint(i)) != 0 {
			right += analogue
		}
	}

	leftVol := int(ap.masterVolume>>4)&0x07 + 1
	rightVol := int(ap.masterVolume)&0x07 + 1

	// four channels at +/-15 each, master volume up to 8. scale to a
	// comfortable fraction of the int16 range
	const scale = 32767 / (15 * 4 * 8) / 2

	return int16(left * leftVol * scale), int16(right * rightVol * scale)
}

// ReadAudio returns the samples accumulated since the last call and resets
// the buffer. Samples are interleaved stereo, left then right.
func (ap *APU) ReadAudio() []int16 {
	s := ap.samples
	ap.samples = make([]int16, 0, cap(ap.samples))
	return s
}

// ReadRegister returns the value of the addressed sound register. Unused
// bits and write only fields read high.
func (ap *APU) ReadRegister(address uint16) uint8 {
	switch address {
	case addresses.NR10:
		return ap.ch1.sweep | 0x80
	case addresses.NR11:
		return ap.ch1.duty<<6 | 0x3f
	case addresses.NR12:
		return ap.ch1.env.register
	case addresses.NR13:
		return 0xff
	case addresses.NR14:
		return ap.lengthEnableBit(ap.ch1.length.enabled)

	case addresses.NR21:
		return ap.ch2.duty<<6 | 0x3f
	case addresses.NR22:
		return ap.ch2.env.register
	case addresses.NR23:
		return 0xff
	case addresses.NR24:
		return ap.lengthEnableBit(ap.ch2.length.enabled)

	case addresses.NR30:
		if ap.ch3.dacPower {
			return 0xff
		}
		return 0x7f
	case addresses.NR31:
		return 0xff
	case addresses.NR32:
		return ap.ch3.volume<<5 | 0x9f
	case addresses.NR33:
		return 0xff
	case addresses.NR34:
		return ap.lengthEnableBit(ap.ch3.length.enabled)

	case addresses.NR41:
		return 0xff
	case addresses.NR42:
		return ap.ch4.env.register
	case addresses.NR43:
		return ap.ch4.poly
	case addresses.NR44:
		return ap.lengthEnableBit(ap.ch4.length.enabled)

	case addresses.NR50:
		return ap.masterVolume
	case addresses.NR51:
		return ap.routing
	case addresses.NR52:
		v := uint8(0x70)
		if ap.enabled {
			v |= 0x80
		}
		if ap.ch1.enabled {
			v |= 0x01
		}
		if ap.ch2.enabled {
			v |= 0x02
		}
		if ap.ch3.enabled {
			v |= 0x04
		}
		if ap.ch4.enabled {
			v |= 0x08
		}
		return v
	}

	if address >= addresses.WaveRAMStart && address <= addresses.WaveRAMEnd {
		return ap.ch3.ram[address-addresses.WaveRAMStart]
	}

	return 0xff
}

func (ap *APU) lengthEnableBit(enabled bool) uint8 {
	if enabled {
		return 0xff
	}
	return 0xbf
}

// WriteRegister writes to the addressed sound register. With the unit
// powered off only NR52 and wave RAM are writable.
func (ap *APU) WriteRegister(address uint16, data uint8) {
	if address >= addresses.WaveRAMStart && address <= addresses.WaveRAMEnd {
		ap.ch3.ram[address-addresses.WaveRAMStart] = data
		return
	}

	if !ap.enabled && address != addresses.NR52 {
		return
	}

	switch address {
	case addresses.NR10:
		ap.ch1.sweep = data
	case addresses.NR11:
		ap.ch1.duty = data >> 6
		ap.ch1.length.load(int(data & 0x3f))
	case addresses.NR12:
		ap.ch1.env.register = data
		if !ap.ch1.env.dacEnabled() {
			ap.ch1.enabled = false
		}
	case addresses.NR13:
		ap.ch1.freq = ap.ch1.freq&0x0700 | uint16(data)
	case addresses.NR14:
		ap.ch1.freq = ap.ch1.freq&0x00ff | uint16(data&0x07)<<8
		ap.ch1.length.enabled = data&0x40 == 0x40
		if data&0x80 == 0x80 {
			ap.ch1.trigger()
		}

	case addresses.NR21:
		ap.ch2.duty = data >> 6
		ap.ch2.length.load(int(data & 0x3f))
	case addresses.NR22:
		ap.ch2.env.register = data
		if !ap.ch2.env.dacEnabled() {
			ap.ch2.enabled = false
		}
	case addresses.NR23:
		ap.ch2.freq = ap.ch2.freq&0x0700 | uint16(data)
	case addresses.NR24:
		ap.ch2.freq = ap.ch2.freq&0x00ff | uint16(data&0x07)<<8
		ap.ch2.length.enabled = data&0x40 == 0x40
		if data&0x80 == 0x80 {
			ap.ch2.trigger()
		}

	case addresses.NR30:
		ap.ch3.dacPower = data&0x80 == 0x80
		if !ap.ch3.dacPower {
			ap.ch3.enabled = false
		}
	case addresses.NR31:
		ap.ch3.length.load(int(data))
	case addresses.NR32:
		ap.ch3.volume = (data >> 5) & 0x03
	case addresses.NR33:
		ap.ch3.freq = ap.ch3.freq&0x0700 | uint16(data)
	case addresses.NR34:
		ap.ch3.freq = ap.ch3.freq&0x00ff | uint16(data&0x07)<<8
		ap.ch3.length.enabled = data&0x40 == 0x40
		if data&0x80 == 0x80 {
			ap.ch3.trigger()
		}

	case addresses.NR41:
		ap.ch4.length.load(int(data & 0x3f))
	case addresses.NR42:
		ap.ch4.env.register = data
		if !ap.ch4.env.dacEnabled() {
			ap.ch4.enabled = false
		}
	case addresses.NR43:
		ap.ch4.poly = data
	case addresses.NR44:
		ap.ch4.length.enabled = data&0x40 == 0x40
		if data&0x80 == 0x80 {
			ap.ch4.trigger()
		}

	case addresses.NR50:
		ap.masterVolume = data
	case addresses.NR51:
		ap.routing = data
	case addresses.NR52:
		power := data&0x80 == 0x80
		if ap.enabled && !power {
			ap.powerOff()
		}
		ap.enabled = power
	}
}

// powerOff clears every register and silences every channel. Wave RAM is
// left untouched.
func (ap *APU) powerOff() {
	ram := ap.ch3.ram
	ap.ch1 = newPulse(true)
	ap.ch2 = newPulse(false)
	ap.ch3 = newWave()
	ap.ch4 = newNoise()
	ap.ch3.ram = ram
	ap.masterVolume = 0
	ap.routing = 0
	ap.sequencerStep = 0
	ap.sequencerClock = 0
}
