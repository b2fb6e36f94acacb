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

package cpu

import (
	"bytes"
	"encoding/gob"
)

// GobEncode implements the gob.GobEncoder interface. Only machine state is
// encoded; the memory bus and interrupt controller are attached when the
// decoded CPU is plumbed into a machine.
func (mc *CPU) GobEncode() ([]byte, error) {
	var b bytes.Buffer
	enc := gob.NewEncoder(&b)

	for _, v := range []any{mc.Regs, mc.IME, mc.imePending, mc.Halted,
		mc.Stopped, mc.haltBug} {
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface.
func (mc *CPU) GobDecode(data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))

	for _, v := range []any{&mc.Regs, &mc.IME, &mc.imePending, &mc.Halted,
		&mc.Stopped, &mc.haltBug} {
		if err := dec.Decode(v); err != nil {
			return err
		}
	}

	return nil
}
