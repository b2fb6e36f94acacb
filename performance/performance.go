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

// Package performance contains helper functions relating to performance.
//
// Check() runs the emulation flat out for a fixed duration of time and
// reports the achieved frame rate. It will optionally generate profiling
// information.
//
// RunProfiler() can be used to generate the various profile types on its
// own. It places no limit on how long the program runs for, so it is useful
// in more real-world situations.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopherboy/cartridgeloader"
	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/hardware"
	"github.com/jetsetilly/gopherboy/hardware/clocks"
)

// error pattern for performance checks.
const PerformanceError = "performance: %v"

// Check the performance of the emulation using the supplied cartridge. The
// machine runs uncapped for the specified duration; no video or audio is
// presented anywhere.
func Check(output io.Writer, profile Profile, cartload cartridgeloader.Loader, duration string) error {
	gb := hardware.NewGameBoy(hardware.RevDMG)

	if err := gb.AttachCartridge(cartload); err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	startFrame := gb.PPU.FrameNum()

	// the continue check is called once per completed frame so asking for
	// the time on every call is cheap enough
	runner := func() error {
		endTime := time.Now().Add(dur)
		return gb.Run(func() (bool, error) {
			return time.Now().Before(endTime), nil
		})
	}

	if err := RunProfiler(profile, "performance", runner); err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	numFrames := gb.PPU.FrameNum() - startFrame
	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n",
		fps, numFrames, dur.Seconds(), accuracy)

	return nil
}

// CalcFPS takes a number of frames and a duration in seconds and returns
// the frames-per-second and that value as a percentage of the hardware
// frame rate. Aggregate values: not suitable for live FPS monitoring.
func CalcFPS(numFrames int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / float64(clocks.FrameRate)
	return fps, accuracy
}
