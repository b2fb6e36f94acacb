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
	"fmt"

	"github.com/jetsetilly/gopherboy/cartridgeloader"
	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/logger"
)

// error patterns for cartridge loading.
const (
	// the ROM data is inconsistent with its header (checksum, size codes)
	InvalidROM = "cartridge: invalid rom: %v"

	// the header names a banking scheme this emulation does not implement
	UnsupportedMapper = "cartridge: unsupported mapper: %v"
)

// sizes of the switchable ROM and RAM windows.
const (
	bankSize    = 0x4000
	ramBankSize = 0x2000
)

// value driven onto the bus when the cartridge has nothing to say.
const openBus = 0xff

// Cartridge defines the information and operations for a cartridge. The
// mapper in use decides how addresses translate to ROM and RAM offsets.
type Cartridge struct {
	// the hash of the attached ROM data. used to identify save states that
	// belong to a different cartridge
	Hash string

	// the decoded header of the attached ROM
	Header Header

	// whether the cartridge RAM is battery backed and worth persisting
	HasBattery bool

	mapper cartMapper

	// mapper state decoded from a save state, waiting for Rebind()
	pending *pendingState
}

// NewCartridge is the preferred method of initialisation for the Cartridge
// type. The cartridge starts in the ejected state.
func NewCartridge() *Cartridge {
	cart := &Cartridge{}
	cart.Eject()
	return cart
}

func (cart *Cartridge) String() string {
	return fmt.Sprintf("%s [%s] banks=%d", cart.Header.Title, cart.mapper.id(), cart.mapper.numBanks())
}

// ID returns the id of the mapper in use.
func (cart *Cartridge) ID() string {
	return cart.mapper.id()
}

// Snapshot creates a copy of the cartridge in its current state.
func (cart *Cartridge) Snapshot() *Cartridge {
	n := *cart
	n.mapper = cart.mapper.snapshot()
	return &n
}

// Plumb a previously snapshotted cartridge state back into the cartridge.
func (cart *Cartridge) Plumb(snapshot *Cartridge) {
	*cart = *snapshot
}

// Reset returns the banking controller to its power on state. Cartridge
// RAM is not cleared; battery backed content survives a console reset.
func (cart *Cartridge) Reset() {
	cart.mapper.reset()
}

// Eject removes the attached cartridge. The bus sees the open bus value at
// every cartridge address.
func (cart *Cartridge) Eject() {
	cart.Hash = ""
	cart.Header = Header{}
	cart.HasBattery = false
	cart.mapper = newEjected()
}

// Attach the ROM described by the Loader to the cartridge. The header is
// validated before any mapper is constructed: an Attach() that fails leaves
// the previously attached cartridge in place.
func (cart *Cartridge) Attach(cartload cartridgeloader.Loader) error {
	hdr, err := decodeHeader(cartload.Data)
	if err != nil {
		return err
	}
	if err := hdr.validate(cartload.Data); err != nil {
		return err
	}

	mapper, hasBattery, err := fingerprint(hdr, cartload.Data)
	if err != nil {
		return err
	}

	cart.Hash = cartload.Hash
	cart.Header = hdr
	cart.HasBattery = hasBattery
	cart.mapper = mapper

	logger.Logf("cartridge", "attached %s", cart.String())

	return nil
}

// fingerprint decides which mapper implementation the header's mapper code
// asks for.
func fingerprint(hdr Header, data []byte) (cartMapper, bool, error) {
	switch hdr.MapperCode {
	case 0x00:
		return newMBC0(data, 0), false, nil
	case 0x08:
		return newMBC0(data, hdr.RAMSize()), false, nil
	case 0x09:
		return newMBC0(data, hdr.RAMSize()), true, nil

	case 0x01:
		return newMBC1(data, 0), false, nil
	case 0x02:
		return newMBC1(data, hdr.RAMSize()), false, nil
	case 0x03:
		return newMBC1(data, hdr.RAMSize()), true, nil

	case 0x05:
		return newMBC2(data), false, nil
	case 0x06:
		return newMBC2(data), true, nil

	case 0x0f:
		return newMBC3(data, 0, true), true, nil
	case 0x10:
		return newMBC3(data, hdr.RAMSize(), true), true, nil
	case 0x11:
		return newMBC3(data, 0, false), false, nil
	case 0x12:
		return newMBC3(data, hdr.RAMSize(), false), false, nil
	case 0x13:
		return newMBC3(data, hdr.RAMSize(), false), true, nil

	case 0x19, 0x1c:
		return newMBC5(data, 0), false, nil
	case 0x1a, 0x1d:
		return newMBC5(data, hdr.RAMSize()), false, nil
	case 0x1b, 0x1e:
		return newMBC5(data, hdr.RAMSize()), true, nil

	case 0x0b, 0x0c, 0x0d:
		return nil, false, curated.Errorf(UnsupportedMapper, "MMM01")
	case 0x20:
		return nil, false, curated.Errorf(UnsupportedMapper, "MBC6")
	case 0x22:
		return nil, false, curated.Errorf(UnsupportedMapper, "MBC7")
	case 0xfc:
		return nil, false, curated.Errorf(UnsupportedMapper, "POCKET CAMERA")
	case 0xfd:
		return nil, false, curated.Errorf(UnsupportedMapper, "BANDAI TAMA5")
	case 0xfe:
		return nil, false, curated.Errorf(UnsupportedMapper, "HuC3")
	case 0xff:
		return nil, false, curated.Errorf(UnsupportedMapper, "HuC1")
	}

	return nil, false, curated.Errorf(InvalidROM, fmt.Sprintf("unrecognised mapper code %#02x", hdr.MapperCode))
}

// Read the ROM window. The address is in the range 0x0000 to 0x7fff.
func (cart *Cartridge) Read(addr uint16) uint8 {
	return cart.mapper.access(addr)
}

// Write to the ROM window. Interpreted by the mapper as a control register
// write.
func (cart *Cartridge) Write(addr uint16, data uint8) {
	cart.mapper.accessVolatile(addr, data)
}

// ReadRAM reads the cartridge RAM window. The offset is in the range 0x0000
// to 0x1fff.
func (cart *Cartridge) ReadRAM(offset uint16) uint8 {
	return cart.mapper.accessRAM(offset)
}

// WriteRAM writes the cartridge RAM window.
func (cart *Cartridge) WriteRAM(offset uint16, data uint8) {
	cart.mapper.accessRAMVolatile(offset, data)
}

// NumBanks returns the number of ROM banks in the cartridge.
func (cart *Cartridge) NumBanks() int {
	return cart.mapper.numBanks()
}

// CurrentBank returns the bank currently mapped into the switchable ROM
// window.
func (cart *Cartridge) CurrentBank() int {
	return cart.mapper.currentBank()
}

// RAM returns the cartridge RAM content for external persistence. The slice
// is empty when the cartridge declares no RAM. The engine knows nothing
// about where or whether the collaborator stores it.
func (cart *Cartridge) RAM() []byte {
	return cart.mapper.ram()
}

// SetRAM restores previously persisted cartridge RAM content.
func (cart *Cartridge) SetRAM(data []byte) {
	cart.mapper.setRAM(data)
}

// Step the cartridge forward by the number of clocks consumed by the
// previous CPU instruction. Most mappers have no independent clock and do
// nothing.
func (cart *Cartridge) Step(clocks int) {
	cart.mapper.step(clocks)
}
