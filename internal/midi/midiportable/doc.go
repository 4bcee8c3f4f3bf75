// Package midiportable provides a driver backed by gomidi and RtMidi for
// systems without a native driver in this module. macOS and Windows builds
// get a stub so they never link RtMidi.
package midiportable
