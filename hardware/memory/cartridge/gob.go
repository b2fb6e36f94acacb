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

package cartridge

import (
	"bytes"
	"encoding/gob"

	"github.com/jetsetilly/gopherboy/curated"
)

// error pattern for rebinding a deserialised cartridge state.
const WrongCartridge = "cartridge: state belongs to a different cartridge: %v"

// mapperState is the serialisable state of a banking controller. One type
// covers every controller; fields a controller does not have are left at
// their zero value. The ROM data is deliberately absent from the state.
type mapperState struct {
	RAM        []byte
	RAMEnabled bool
	BankReg    uint8
	Bank2Reg   uint8
	Mode       uint8
	RAMSelect  uint8
	BankLow    uint8
	BankHigh   uint8
	RAMBankReg uint8
	RTC        rtcState
}

type rtcState struct {
	Seconds      uint8
	Minutes      uint8
	Hours        uint8
	Days         uint16
	Halt         bool
	Carry        bool
	Accumulate   int
	Latched      [5]uint8
	LatchPrepare bool
}

// GobEncode implements the gob.GobEncoder interface. The encoded form
// identifies the ROM by hash and header but does not contain the ROM data
// itself.
func (cart *Cartridge) GobEncode() ([]byte, error) {
	var b bytes.Buffer
	enc := gob.NewEncoder(&b)

	for _, v := range []any{cart.Hash, cart.Header, cart.HasBattery,
		cart.mapper.id(), cart.mapper.saveState()} {
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. The decoded cartridge
// has no ROM data attached and is not usable until Rebind() has bound it to
// the ROM of a live cartridge.
func (cart *Cartridge) GobDecode(data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))

	var id string
	var state mapperState

	for _, v := range []any{&cart.Hash, &cart.Header, &cart.HasBattery,
		&id, &state} {
		if err := dec.Decode(v); err != nil {
			return err
		}
	}

	cart.mapper = newEjected()
	cart.pending = &pendingState{id: id, state: state}

	return nil
}

// the decoded mapper state waiting for a Rebind().
type pendingState struct {
	id    string
	state mapperState
}

// Rebind binds a deserialised cartridge state to the ROM data of the
// attached cartridge. Fails if the state was saved from a different ROM.
func (cart *Cartridge) Rebind(attached *Cartridge) error {
	if cart.pending == nil {
		return nil
	}

	if cart.Hash != attached.Hash || cart.pending.id != attached.mapper.id() {
		return curated.Errorf(WrongCartridge, cart.Header.Title)
	}

	cart.mapper = attached.mapper.snapshot()
	cart.mapper.restoreState(cart.pending.state)
	cart.pending = nil

	return nil
}

func (cart *ejected) saveState() mapperState {
	return mapperState{}
}

func (cart *ejected) restoreState(_ mapperState) {
}

func (cart *mbc0) saveState() mapperState {
	state := mapperState{RAM: make([]byte, len(cart.ramData))}
	copy(state.RAM, cart.ramData)
	return state
}

func (cart *mbc0) restoreState(state mapperState) {
	copy(cart.ramData, state.RAM)
}

func (cart *mbc1) saveState() mapperState {
	state := mapperState{
		RAM:        make([]byte, len(cart.ramData)),
		RAMEnabled: cart.ramEnabled,
		BankReg:    cart.bankReg,
		Bank2Reg:   cart.bank2Reg,
		Mode:       cart.mode,
	}
	copy(state.RAM, cart.ramData)
	return state
}

func (cart *mbc1) restoreState(state mapperState) {
	copy(cart.ramData, state.RAM)
	cart.ramEnabled = state.RAMEnabled
	cart.bankReg = state.BankReg
	cart.bank2Reg = state.Bank2Reg
	cart.mode = state.Mode
}

func (cart *mbc2) saveState() mapperState {
	state := mapperState{
		RAM:        make([]byte, len(cart.ramData)),
		RAMEnabled: cart.ramEnabled,
		BankReg:    cart.bankReg,
	}
	copy(state.RAM, cart.ramData)
	return state
}

func (cart *mbc2) restoreState(state mapperState) {
	copy(cart.ramData, state.RAM)
	cart.ramEnabled = state.RAMEnabled
	cart.bankReg = state.BankReg
}

func (cart *mbc3) saveState() mapperState {
	state := mapperState{
		RAM:        make([]byte, len(cart.ramData)),
		RAMEnabled: cart.ramEnabled,
		BankReg:    cart.bankReg,
		RAMSelect:  cart.ramSelect,
		RTC: rtcState{
			Seconds:      cart.clock.seconds,
			Minutes:      cart.clock.minutes,
			Hours:        cart.clock.hours,
			Days:         cart.clock.days,
			Halt:         cart.clock.halt,
			Carry:        cart.clock.carry,
			Accumulate:   cart.clock.accumulate,
			Latched:      cart.clock.latched,
			LatchPrepare: cart.clock.latchPrepare,
		},
	}
	copy(state.RAM, cart.ramData)
	return state
}

func (cart *mbc3) restoreState(state mapperState) {
	copy(cart.ramData, state.RAM)
	cart.ramEnabled = state.RAMEnabled
	cart.bankReg = state.BankReg
	cart.ramSelect = state.RAMSelect
	cart.clock.seconds = state.RTC.Seconds
	cart.clock.minutes = state.RTC.Minutes
	cart.clock.hours = state.RTC.Hours
	cart.clock.days = state.RTC.Days
	cart.clock.halt = state.RTC.Halt
	cart.clock.carry = state.RTC.Carry
	cart.clock.accumulate = state.RTC.Accumulate
	cart.clock.latched = state.RTC.Latched
	cart.clock.latchPrepare = state.RTC.LatchPrepare
}

func (cart *mbc5) saveState() mapperState {
	state := mapperState{
		RAM:        make([]byte, len(cart.ramData)),
		RAMEnabled: cart.ramEnabled,
		BankLow:    cart.bankLow,
		BankHigh:   cart.bankHigh,
		RAMBankReg: cart.ramBankReg,
	}
	copy(state.RAM, cart.ramData)
	return state
}

func (cart *mbc5) restoreState(state mapperState) {
	copy(cart.ramData, state.RAM)
	cart.ramEnabled = state.RAMEnabled
	cart.bankLow = state.BankLow
	cart.bankHigh = state.BankHigh
	cart.ramBankReg = state.RAMBankReg
}
