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

package sdlplay

import (
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/jetsetilly/gopherboy/curated"
)

// sound sends the audio stream to the host sound device through portaudio.
// It implements the display.AudioMixer interface.
type sound struct {
	stream *portaudio.Stream

	// samples queued between the emulation pushing and the device pulling.
	// the portaudio callback runs on its own thread
	crit   sync.Mutex
	buffer []float32

	// one second of stereo audio. beyond this the oldest samples are
	// dropped; an ever-growing queue means ever-growing latency
	maxQueued int
}

func newSound(sampleRate int) (*sound, error) {
	snd := &sound{
		maxQueued: sampleRate * 2,
	}
	snd.buffer = make([]float32, 0, snd.maxQueued)

	if err := portaudio.Initialize(); err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	host, err := portaudio.DefaultHostApi()
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	prm := portaudio.HighLatencyParameters(nil, host.DefaultOutputDevice)
	prm.Output.Channels = 2
	prm.SampleRate = float64(sampleRate)

	snd.stream, err = portaudio.OpenStream(prm, snd.processAudio)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	if err := snd.stream.Start(); err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	return snd, nil
}

// SetAudio implements the display.AudioMixer interface.
func (snd *sound) SetAudio(samples []int16) error {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	for _, s := range samples {
		snd.buffer = append(snd.buffer, float32(s)/32768)
	}

	if len(snd.buffer) > snd.maxQueued {
		over := len(snd.buffer) - snd.maxQueued
		snd.buffer = append(snd.buffer[:0], snd.buffer[over:]...)
	}

	return nil
}

// EndMixing implements the display.AudioMixer interface.
func (snd *sound) EndMixing() error {
	if err := snd.stream.Close(); err != nil {
		return curated.Errorf(SDLError, err)
	}
	if err := portaudio.Terminate(); err != nil {
		return curated.Errorf(SDLError, err)
	}
	return nil
}

// the portaudio callback. missing samples play as silence rather than a
// repeat of old data.
func (snd *sound) processAudio(out []float32) {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	n := copy(out, snd.buffer)
	snd.buffer = append(snd.buffer[:0], snd.buffer[n:]...)

	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}
