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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/jetsetilly/gopherboy/curated"
)

// Profile is a bit pattern of the profile types to generate.
type Profile int

const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 1 << (iota - 1)
	ProfileMem
	ProfileAll Profile = ProfileCPU | ProfileMem
)

// ParseProfile converts a string in "cpu,mem" form to a Profile value.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "", "none":
		return ProfileNone, nil
	case "cpu":
		return ProfileCPU, nil
	case "mem":
		return ProfileMem, nil
	case "all", "cpu,mem", "mem,cpu":
		return ProfileAll, nil
	}
	return ProfileNone, curated.Errorf(PerformanceError, fmt.Sprintf("unknown profile type (%s)", s))
}

// RunProfiler runs the supplied function, generating the requested profile
// types. Profile files are placed in the working directory and named after
// the supplied tag.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", tag))
		if err != nil {
			return err
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(); err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(fmt.Sprintf("%s_mem.profile", tag))
		if err != nil {
			return err
		}
		defer f.Close()

		// garbage collect before the heap snapshot so the profile shows
		// live allocations rather than collectable ones
		runtime.GC()

		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
	}

	return nil
}
