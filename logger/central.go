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

package logger

import "io"

// the maximum number of entries the central logger keeps before culling the
// oldest.
const maxCentral = 256

var central = newLogger(maxCentral)

// Log adds an entry to the central logger.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(tag, detail string, args ...interface{}) {
	central.logf(tag, detail, args...)
}

// Write contents of central logger to output.
func Write(output io.Writer) {
	central.write(output)
}

// Tail writes the last N entries of the central logger to output.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho to an io.Writer. Every new entry will be written to the writer as
// it arrives. If instant is true then the existing contents of the log are
// written immediately.
func SetEcho(output io.Writer, instant bool) {
	central.setEcho(output, instant)
}
