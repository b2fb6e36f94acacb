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

// Package prefs is a strongly typed preference system. Preference values
// register themselves with a Disk instance and are then saved to and loaded
// from a single file as a group.
//
// The file format is one preference per line: the key, the separator " :: "
// and the value. The first line of the file identifies it as belonging to
// this application.
package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/logger"
)

// error patterns for the prefs system.
const (
	// the prefs file has not been created yet. callers that can live with
	// defaults should test for this and carry on
	NoPrefsFile = "prefs: no prefs file: %v"

	// the prefs file exists but could not be understood
	InvalidPrefsFile = "prefs: invalid prefs file: %v"
)

// the first line of every prefs file.
const fingerprint = "*gopherboy*"

// the separator between key and value on each line.
const separator = " :: "

// DefaultPrefsFile is the name of the preferences file used unless the
// caller asks for something else.
const DefaultPrefsFile = "gopherboy.prefs"

// Disk represents preference values as stored on disk.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// path argument is the path to the preferences file, which does not need to
// exist yet.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add a preference value to the disk group under the given key. Keys are
// conventionally dot delimited, lower case.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if strings.Contains(key, separator) || strings.ContainsAny(key, "\n\r") {
		return curated.Errorf(InvalidPrefsFile, fmt.Sprintf("unusable key %q", key))
	}
	dsk.entries[key] = p
	return nil
}

// Save the current values of every registered preference to disk. Keys not
// registered with this Disk instance are preserved.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	// keep any keys on disk that this instance knows nothing about
	keep, err := dsk.readFile()
	if err != nil && !curated.Is(err, NoPrefsFile) {
		return err
	}

	for key, p := range dsk.entries {
		keep[key] = p.String()
	}

	keys := make([]string, 0, len(keep))
	for key := range keep {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	fmt.Fprintln(f, fingerprint)
	for _, key := range keys {
		fmt.Fprintf(f, "%s%s%s\n", key, separator, keep[key])
	}

	return nil
}

// Load the registered preferences from disk. Values in the file that have
// no registered preference are ignored; registered preferences missing from
// the file keep their current value.
func (dsk *Disk) Load() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	values, err := dsk.readFile()
	if err != nil {
		return err
	}

	for key, value := range values {
		if p, ok := dsk.entries[key]; ok {
			if err := p.Set(value); err != nil {
				logger.Logf("prefs", "%s: %v", key, err)
			}
		}
	}

	return nil
}

// readFile reads the whole prefs file into a map. The caller must hold the
// critical section lock.
func (dsk *Disk) readFile() (map[string]string, error) {
	values := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, curated.Errorf(NoPrefsFile, dsk.path)
		}
		return values, curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() || scanner.Text() != fingerprint {
		return values, curated.Errorf(InvalidPrefsFile, dsk.path)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		key, value, ok := cutLine(line)
		if !ok {
			return values, curated.Errorf(InvalidPrefsFile, fmt.Sprintf("%s: unrecognised line %q", dsk.path, line))
		}
		values[key] = value
	}

	if err := scanner.Err(); err != nil {
		return values, curated.Errorf("prefs: %v", err)
	}

	return values, nil
}

func cutLine(line string) (string, string, bool) {
	i := strings.Index(line, separator)
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+len(separator):], true
}
