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

import (
	"bytes"
	"encoding/gob"
)

// serialisable mirrors of the channel types.

type lengthState struct {
	Enabled bool
	Counter int
}

func (lc *lengthCounter) saveState() lengthState {
	return lengthState{Enabled: lc.enabled, Counter: lc.counter}
}

func (lc *lengthCounter) restoreState(state lengthState) {
	lc.enabled = state.Enabled
	lc.counter = state.Counter
}

type envelopeState struct {
	Register uint8
	Volume   int
	Timer    int
}

func (env *envelope) saveState() envelopeState {
	return envelopeState{Register: env.register, Volume: env.volume, Timer: env.timer}
}

func (env *envelope) restoreState(state envelopeState) {
	env.register = state.Register
	env.volume = state.Volume
	env.timer = state.Timer
}

type pulseState struct {
	Enabled bool
	Sweep   uint8
	Duty    uint8
	Freq    uint16

	Length lengthState
	Env    envelopeState

	Timer   int
	DutyPos int

	SweepTimer  int
	SweepShadow int
	SweepActive bool
}

func (ch *pulse) saveState() pulseState {
	return pulseState{
		Enabled:     ch.enabled,
		Sweep:       ch.sweep,
		Duty:        ch.duty,
		Freq:        ch.freq,
		Length:      ch.length.saveState(),
		Env:         ch.env.saveState(),
		Timer:       ch.timer,
		DutyPos:     ch.dutyPos,
		SweepTimer:  ch.sweepTimer,
		SweepShadow: ch.sweepShadow,
		SweepActive: ch.sweepActive,
	}
}

func (ch *pulse) restoreState(state pulseState) {
	ch.enabled = state.Enabled
	ch.sweep = state.Sweep
	ch.duty = state.Duty
	ch.freq = state.Freq
	ch.length.restoreState(state.Length)
	ch.env.restoreState(state.Env)
	ch.timer = state.Timer
	ch.dutyPos = state.DutyPos
	ch.sweepTimer = state.SweepTimer
	ch.sweepShadow = state.SweepShadow
	ch.sweepActive = state.SweepActive
}

type waveState struct {
	Enabled  bool
	DACPower bool
	Volume   uint8
	Freq     uint16

	Length lengthState

	Timer    int
	Position int

	RAM [16]uint8
}

func (ch *wave) saveState() waveState {
	return waveState{
		Enabled:  ch.enabled,
		DACPower: ch.dacPower,
		Volume:   ch.volume,
		Freq:     ch.freq,
		Length:   ch.length.saveState(),
		Timer:    ch.timer,
		Position: ch.position,
		RAM:      ch.ram,
	}
}

func (ch *wave) restoreState(state waveState) {
	ch.enabled = state.Enabled
	ch.dacPower = state.DACPower
	ch.volume = state.Volume
	ch.freq = state.Freq
	ch.length.restoreState(state.Length)
	ch.timer = state.Timer
	ch.position = state.Position
	ch.ram = state.RAM
}

type noiseState struct {
	Enabled bool
	Poly    uint8

	Length lengthState
	Env    envelopeState

	Timer int
	LFSR  uint16
}

func (ch *noise) saveState() noiseState {
	return noiseState{
		Enabled: ch.enabled,
		Poly:    ch.poly,
		Length:  ch.length.saveState(),
		Env:     ch.env.saveState(),
		Timer:   ch.timer,
		LFSR:    ch.lfsr,
	}
}

func (ch *noise) restoreState(state noiseState) {
	ch.enabled = state.Enabled
	ch.poly = state.Poly
	ch.length.restoreState(state.Length)
	ch.env.restoreState(state.Env)
	ch.timer = state.Timer
	ch.lfsr = state.LFSR
}

// GobEncode implements the gob.GobEncoder interface. The sample buffer is
// not encoded: samples not yet collected at save time belong to the mixer
// of the saving machine.
func (ap *APU) GobEncode() ([]byte, error) {
	var b bytes.Buffer
	enc := gob.NewEncoder(&b)

	for _, v := range []any{ap.enabled,
		ap.ch1.saveState(), ap.ch2.saveState(),
		ap.ch3.saveState(), ap.ch4.saveState(),
		ap.masterVolume, ap.routing,
		ap.sequencerClock, ap.sequencerStep,
		ap.sampleRate, ap.sampleClock} {
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface.
func (ap *APU) GobDecode(data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))

	var ch1, ch2 pulseState
	var ch3 waveState
	var ch4 noiseState

	for _, v := range []any{&ap.enabled, &ch1, &ch2, &ch3, &ch4,
		&ap.masterVolume, &ap.routing,
		&ap.sequencerClock, &ap.sequencerStep,
		&ap.sampleRate, &ap.sampleClock} {
		if err := dec.Decode(v); err != nil {
			return err
		}
	}

	ap.ch1 = newPulse(true)
	ap.ch2 = newPulse(false)
	ap.ch3 = newWave()
	ap.ch4 = newNoise()
	ap.ch1.restoreState(ch1)
	ap.ch2.restoreState(ch2)
	ap.ch3.restoreState(ch3)
	ap.ch4.restoreState(ch4)

	ap.samples = make([]int16, 0, 4096)

	return nil
}
