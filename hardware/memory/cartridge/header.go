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
	"strings"

	"github.com/jetsetilly/gopherboy/curated"
)

// locations of the header fields within the ROM data.
const (
	titleStart      = 0x0134
	titleEnd        = 0x0143
	mapperCodeAddr  = 0x0147
	romSizeCodeAddr = 0x0148
	ramSizeCodeAddr = 0x0149
	checksumAddr    = 0x014d

	// the checksum is computed over the bytes between these addresses
	// inclusive
	checksumStart = 0x0134
	checksumEnd   = 0x014c

	// the smallest data that can contain a header
	minROMSize = 0x0150
)

// Header is the decoded cartridge header. The header describes the hardware
// in the cartridge; the emulation trusts it only after Validate() has
// succeeded.
type Header struct {
	Title       string
	MapperCode  uint8
	ROMSizeCode uint8
	RAMSizeCode uint8
	Checksum    uint8
}

func (hdr Header) String() string {
	return fmt.Sprintf("%s: mapper=%#02x rom=%dk ram=%dk", hdr.Title,
		hdr.MapperCode, hdr.ROMSize()/1024, hdr.RAMSize()/1024)
}

// ROMSize returns the number of ROM bytes the header declares.
func (hdr Header) ROMSize() int {
	return 0x8000 << uint(hdr.ROMSizeCode)
}

// RAMSize returns the number of cartridge RAM bytes the header declares.
func (hdr Header) RAMSize() int {
	switch hdr.RAMSizeCode {
	case 0x01:
		return 0x0800
	case 0x02:
		return 0x2000
	case 0x03:
		return 0x8000
	case 0x04:
		return 0x20000
	case 0x05:
		return 0x10000
	}
	return 0
}

// decodeHeader reads the header fields from the ROM data.
func decodeHeader(data []byte) (Header, error) {
	if len(data) < minROMSize {
		return Header{}, curated.Errorf(InvalidROM, fmt.Sprintf("%d bytes is too small to contain a header", len(data)))
	}

	hdr := Header{
		MapperCode:  data[mapperCodeAddr],
		ROMSizeCode: data[romSizeCodeAddr],
		RAMSizeCode: data[ramSizeCodeAddr],
		Checksum:    data[checksumAddr],
	}

	// title is padded with zero bytes
	title := data[titleStart : titleEnd+1]
	hdr.Title = strings.TrimRight(string(title), "\x00")

	return hdr, nil
}

// validate the header against the ROM data it was read from: the checksum
// byte must match the computed checksum and the declared ROM size must match
// the actual data length.
func (hdr Header) validate(data []byte) error {
	var sum uint8
	for _, b := range data[checksumStart : checksumEnd+1] {
		sum = sum - b - 1
	}
	if sum != hdr.Checksum {
		return curated.Errorf(InvalidROM, fmt.Sprintf("header checksum %#02x does not match computed %#02x", hdr.Checksum, sum))
	}

	if hdr.ROMSizeCode > 0x08 {
		return curated.Errorf(InvalidROM, fmt.Sprintf("unknown rom size code %#02x", hdr.ROMSizeCode))
	}
	if hdr.RAMSizeCode > 0x05 {
		return curated.Errorf(InvalidROM, fmt.Sprintf("unknown ram size code %#02x", hdr.RAMSizeCode))
	}
	if hdr.ROMSize() != len(data) {
		return curated.Errorf(InvalidROM, fmt.Sprintf("declared rom size %d does not match data length %d", hdr.ROMSize(), len(data)))
	}

	return nil
}
