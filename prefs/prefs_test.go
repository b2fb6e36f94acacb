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

package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/prefs"
	"github.com/jetsetilly/gopherboy/test"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.prefs")

	var b prefs.Bool
	var i prefs.Int
	var s prefs.String

	dsk, err := prefs.NewDisk(path)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, dsk.Add("test.bool", &b))
	test.ExpectedSuccess(t, dsk.Add("test.int", &i))
	test.ExpectedSuccess(t, dsk.Add("test.string", &s))

	test.ExpectedSuccess(t, b.Set(true))
	test.ExpectedSuccess(t, i.Set(100))
	test.ExpectedSuccess(t, s.Set("hello"))
	test.ExpectedSuccess(t, dsk.Save())

	// load into a fresh set of values
	var b2 prefs.Bool
	var i2 prefs.Int
	var s2 prefs.String

	dsk2, err := prefs.NewDisk(path)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, dsk2.Add("test.bool", &b2))
	test.ExpectedSuccess(t, dsk2.Add("test.int", &i2))
	test.ExpectedSuccess(t, dsk2.Add("test.string", &s2))
	test.ExpectedSuccess(t, dsk2.Load())

	test.ExpectEquality(t, b2.Get().(bool), true)
	test.ExpectEquality(t, i2.Get().(int), 100)
	test.ExpectEquality(t, s2.Get().(string), "hello")
}

func TestMissingFile(t *testing.T) {
	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "missing.prefs"))
	test.ExpectedSuccess(t, err)

	err = dsk.Load()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, prefs.NoPrefsFile))
}

func TestUnknownKeysPreserved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.prefs")

	// save a value under a key this instance will not know about
	var other prefs.Int
	dsk, err := prefs.NewDisk(path)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, dsk.Add("other.key", &other))
	test.ExpectedSuccess(t, other.Set(42))
	test.ExpectedSuccess(t, dsk.Save())

	// a different instance saves its own key. the first key must survive
	var mine prefs.Int
	dsk2, err := prefs.NewDisk(path)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, dsk2.Add("my.key", &mine))
	test.ExpectedSuccess(t, mine.Set(1))
	test.ExpectedSuccess(t, dsk2.Save())

	var check prefs.Int
	dsk3, err := prefs.NewDisk(path)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, dsk3.Add("other.key", &check))
	test.ExpectedSuccess(t, dsk3.Load())
	test.ExpectEquality(t, check.Get().(int), 42)
}

func TestInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.prefs")
	test.ExpectedSuccess(t, os.WriteFile(path, []byte("not a prefs file\n"), 0600))

	dsk, err := prefs.NewDisk(path)
	test.ExpectedSuccess(t, err)

	err = dsk.Load()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, prefs.InvalidPrefsFile))
}

func TestHookPost(t *testing.T) {
	var b prefs.Bool

	var observed bool
	b.SetHookPost(func(v prefs.Value) error {
		observed = v.(bool)
		return nil
	})

	test.ExpectedSuccess(t, b.Set(true))
	test.ExpectedSuccess(t, observed)
}
