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

package apu

// the four duty cycle patterns of the pulse channels. one bit per eighth of
// the waveform period.
var dutyPatterns = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1}, // 12.5%
	{1, 0, 0, 0, 0, 0, 0, 1}, // 25%
	{1, 0, 0, 0, 0, 1, 1, 1}, // 50%
	{0, 1, 1, 1, 1, 1, 1, 0}, // 75%
}

// lengthCounter ticks at 256Hz and silences its channel when it runs out.
// Shared by every channel type; only the counting range differs.
type lengthCounter struct {
	enabled bool
	counter int
	max     int
}

// load the counter from a length register value.
func (lc *lengthCounter) load(value int) {
	lc.counter = lc.max - value
}

// tick the counter. Returns true if the counter ran out on this tick.
func (lc *lengthCounter) tick() bool {
	if !lc.enabled || lc.counter == 0 {
		return false
	}
	lc.counter--
	return lc.counter == 0
}

// trigger reloads an expired counter with the maximum length.
func (lc *lengthCounter) trigger() {
	if lc.counter == 0 {
		lc.counter = lc.max
	}
}

// envelope is the volume envelope shared by the pulse and noise channels.
// It ticks at 64Hz, moving the volume one step up or down per period until
// the volume saturates.
type envelope struct {
	// register value: initial volume, direction, period
	register uint8

	volume int
	timer  int
}

func (env *envelope) initialVolume() int {
	return int(env.register >> 4)
}

func (env *envelope) increase() bool {
	return env.register&0x08 == 0x08
}

func (env *envelope) period() int {
	return int(env.register & 0x07)
}

// dacEnabled returns whether the channel's DAC has power. A channel with a
// powerless DAC is disabled immediately and stays disabled until it is
// retriggered.
func (env *envelope) dacEnabled() bool {
	return env.register&0xf8 != 0x00
}

func (env *envelope) trigger() {
	env.volume = env.initialVolume()
	env.timer = env.period()
}

func (env *envelope) tick() {
	if env.period() == 0 {
		return
	}
	env.timer--
	if env.timer > 0 {
		return
	}
	env.timer = env.period()

	if env.increase() && env.volume < 15 {
		env.volume++
	} else if !env.increase() && env.volume > 0 {
		env.volume--
	}
}

// pulse is a square wave channel. The first pulse channel also carries the
// frequency sweep unit.
type pulse struct {
	enabled bool

	// registers
	sweep uint8
	duty  uint8
	freq  uint16

	length lengthCounter
	env    envelope

	// waveform state
	timer   int
	dutyPos int

	// sweep state. only meaningful on the channel wired to the sweep unit
	hasSweep    bool
	sweepTimer  int
	sweepShadow int
	sweepActive bool
}

func newPulse(hasSweep bool) pulse {
	return pulse{
		hasSweep: hasSweep,
		length:   lengthCounter{max: 64},
	}
}

// the waveform timer period in clocks.
func (ch *pulse) period() int {
	return int(2048-ch.freq) * 4
}

func (ch *pulse) sweepPeriod() int {
	return int(ch.sweep>>4) & 0x07
}

func (ch *pulse) sweepNegate() bool {
	return ch.sweep&0x08 == 0x08
}

func (ch *pulse) sweepShift() int {
	return int(ch.sweep & 0x07)
}

func (ch *pulse) trigger() {
	ch.enabled = ch.env.dacEnabled()
	ch.length.trigger()
	ch.timer = ch.period()
	ch.env.trigger()

	if ch.hasSweep {
		ch.sweepShadow = int(ch.freq)
		ch.sweepTimer = ch.sweepPeriod()
		if ch.sweepTimer == 0 {
			ch.sweepTimer = 8
		}
		ch.sweepActive = ch.sweepPeriod() != 0 || ch.sweepShift() != 0

		// an out of range sweep target disables the channel immediately
		if ch.sweepShift() != 0 && ch.sweepTarget() > 2047 {
			ch.enabled = false
		}
	}
}

// sweepTarget computes the next frequency the sweep unit would set.
func (ch *pulse) sweepTarget() int {
	delta := ch.sweepShadow >> uint(ch.sweepShift())
	if ch.sweepNegate() {
		return ch.sweepShadow - delta
	}
	return ch.sweepShadow + delta
}

// tickSweep runs one 128Hz sweep step. Returns true if the sweep disabled
// the channel.
func (ch *pulse) tickSweep() bool {
	if !ch.hasSweep || !ch.sweepActive || !ch.enabled {
		return false
	}

	ch.sweepTimer--
	if ch.sweepTimer > 0 {
		return false
	}
	ch.sweepTimer = ch.sweepPeriod()
	if ch.sweepTimer == 0 {
		ch.sweepTimer = 8
		return false
	}

	if ch.sweepShift() == 0 {
		return false
	}

	target := ch.sweepTarget()
	if target > 2047 {
		ch.enabled = false
		return true
	}
	if target >= 0 {
		ch.sweepShadow = target
		ch.freq = uint16(target)

		// the overflow check runs again with the new frequency
		if ch.sweepTarget() > 2047 {
			ch.enabled = false
			return true
		}
	}

	return false
}

// tickTimer advances the waveform by the elapsed clocks.
func (ch *pulse) tickTimer(clocks int) {
	if !ch.enabled {
		return
	}
	ch.timer -= clocks
	for ch.timer <= 0 {
		ch.timer += ch.period()
		ch.dutyPos = (ch.dutyPos + 1) % 8
	}
}

// output is the channel's current DAC input, 0 to 15.
func (ch *pulse) output() int {
	if !ch.enabled || !ch.env.dacEnabled() {
		return 0
	}
	return int(dutyPatterns[ch.duty][ch.dutyPos]) * ch.env.volume
}

// wave is the arbitrary waveform channel: 32 four bit samples played in a
// loop from wave RAM.
type wave struct {
	enabled bool

	// registers
	dacPower bool
	volume   uint8
	freq     uint16

	length lengthCounter

	// waveform state
	timer    int
	position int

	ram [16]uint8
}

func newWave() wave {
	return wave{
		length: lengthCounter{max: 256},
	}
}

func (ch *wave) period() int {
	return int(2048-ch.freq) * 2
}

func (ch *wave) trigger() {
	ch.enabled = ch.dacPower
	ch.length.trigger()
	ch.timer = ch.period()
	ch.position = 0
}

func (ch *wave) tickTimer(clocks int) {
	if !ch.enabled {
		return
	}
	ch.timer -= clocks
	for ch.timer <= 0 {
		ch.timer += ch.period()
		ch.position = (ch.position + 1) % 32
	}
}

func (ch *wave) output() int {
	if !ch.enabled || !ch.dacPower {
		return 0
	}

	sample := ch.ram[ch.position/2]
	if ch.position%2 == 0 {
		sample >>= 4
	}
	sample &= 0x0f

	// the volume register shifts the sample: full, half, quarter or mute
	switch ch.volume {
	case 0:
		return 0
	case 1:
		return int(sample)
	case 2:
		return int(sample >> 1)
	}
	return int(sample >> 2)
}

// noise is the pseudo random channel: a 15 bit linear feedback shift
// register clocked at a configurable rate, optionally shortened to 7 bits.
type noise struct {
	enabled bool

	// register value: clock shift, width mode, divisor code
	poly uint8

	length lengthCounter
	env    envelope

	// waveform state
	timer int
	lfsr  uint16
}

func newNoise() noise {
	return noise{
		length: lengthCounter{max: 64},
		lfsr:   0x7fff,
	}
}

func (ch *noise) period() int {
	divisor := int(ch.poly&0x07) * 16
	if divisor == 0 {
		divisor = 8
	}
	return divisor << uint(ch.poly>>4)
}

func (ch *noise) widthMode7() bool {
	return ch.poly&0x08 == 0x08
}

func (ch *noise) trigger() {
	ch.enabled = ch.env.dacEnabled()
	ch.length.trigger()
	ch.timer = ch.period()
	ch.env.trigger()
	ch.lfsr = 0x7fff
}

func (ch *noise) tickTimer(clocks int) {
	if !ch.enabled {
		return
	}
	ch.timer -= clocks
	for ch.timer <= 0 {
		ch.timer += ch.period()

		feedback := (ch.lfsr ^ (ch.lfsr >> 1)) & 0x01
		ch.lfsr >>= 1
		ch.lfsr |= feedback << 14
		if ch.widthMode7() {
			ch.lfsr &^= 1 << 6
			ch.lfsr |= feedback << 6
		}
	}
}

func (ch *noise) output() int {
	if !ch.enabled || !ch.env.dacEnabled() {
		return 0
	}
	if ch.lfsr&0x01 == 0x01 {
		return 0
	}
	return ch.env.volume
}
