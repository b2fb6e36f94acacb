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

// Package gui defines the events a window implementation sends to the
// controlling play loop. The play loop decides what a key press means; the
// window only reports it.
package gui

// Event represents all the different kinds of event a gui implementation
// can report.
type Event interface{}

// EventQuit is sent when the window is closed.
type EventQuit struct{}

// EventKeyboard is the data from a keyboard event.
type EventKeyboard struct {
	Key  string
	Down bool
}
