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

package timer

import (
	"bytes"
	"encoding/gob"
)

// GobEncode implements the gob.GobEncoder interface.
func (tmr *Timer) GobEncode() ([]byte, error) {
	var b bytes.Buffer
	enc := gob.NewEncoder(&b)

	for _, v := range []any{tmr.Divider, tmr.TIMA, tmr.TMA, tmr.TAC,
		tmr.residual} {
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface.
func (tmr *Timer) GobDecode(data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))

	for _, v := range []any{&tmr.Divider, &tmr.TIMA, &tmr.TMA, &tmr.TAC,
		&tmr.residual} {
		if err := dec.Decode(v); err != nil {
			return err
		}
	}

	return nil
}
