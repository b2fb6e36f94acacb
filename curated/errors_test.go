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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/test"
)

const testPattern = "test error: %v"
const wrapPattern = "wrapped: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, testPattern))
	test.ExpectedFailure(t, curated.Is(e, wrapPattern))

	// a plain error is never curated
	p := errors.New("plain error")
	test.ExpectedFailure(t, curated.IsAny(p))
	test.ExpectedFailure(t, curated.Is(p, testPattern))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	f := curated.Errorf(wrapPattern, e)

	// Is() does not look into the chain but Has() does
	test.ExpectedFailure(t, curated.Is(f, testPattern))
	test.ExpectedSuccess(t, curated.Has(f, testPattern))
	test.ExpectedSuccess(t, curated.Has(f, wrapPattern))
}

func TestDeduplication(t *testing.T) {
	// duplicate adjacent message parts are removed when the error message is
	// rendered
	e := curated.Errorf("cartridge: %v", curated.Errorf("cartridge: %v", "bad header"))
	test.ExpectEquality(t, e.Error(), "cartridge: bad header")
}
