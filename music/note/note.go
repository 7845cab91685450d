// Package note maps frequencies to equal-tempered note names and cent
// deviations.
package note

import (
	"errors"
	"fmt"
	"math"
)

// DefaultReference is the default tuning of A4 in Hz.
const DefaultReference = 444.0

// ErrInvalidFrequency is returned for non-positive or non-finite inputs.
var ErrInvalidFrequency = errors.New("note: frequency must be positive and finite")

// Names lists the pitch classes starting at C, using sharps.
var Names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is the nearest equal-tempered note to a measured frequency.
type Note struct {
	Name      string
	Class     int // pitch class, 0 is C
	Octave    int // scientific pitch notation, A4 is MIDI 69
	MIDI      int
	Cents     int     // deviation of Frequency from Target, rounded
	Frequency float64 // measured
	Target    float64 // exact frequency of the note at the reference
}

// String formats the note as name, octave and signed cents, e.g. "A4 +3".
func (n Note) String() string {
	return fmt.Sprintf("%s%d %+d", n.Name, n.Octave, n.Cents)
}

// FromFrequency returns the note nearest to freq for an A4 tuned to
// reference Hz. A non-positive reference selects DefaultReference.
func FromFrequency(freq, reference float64) (Note, error) {
	if !(freq > 0) || math.IsInf(freq, 0) {
		return Note{}, fmt.Errorf("%w: %v", ErrInvalidFrequency, freq)
	}
	if !(reference > 0) || math.IsInf(reference, 0) {
		reference = DefaultReference
	}

	midi := int(math.Round(12*math.Log2(freq/reference) + 69))
	target := reference * math.Pow(2, float64(midi-69)/12)
	cents := int(math.Round(1200 * math.Log2(freq/target)))

	class := ((midi % 12) + 12) % 12
	octave := floorDiv(midi, 12) - 1

	return Note{
		Name:      Names[class],
		Class:     class,
		Octave:    octave,
		MIDI:      midi,
		Cents:     cents,
		Frequency: freq,
		Target:    target,
	}, nil
}

// Frequency returns the equal-tempered frequency of a MIDI note number.
func Frequency(midi int, reference float64) float64 {
	if !(reference > 0) {
		reference = DefaultReference
	}
	return reference * math.Pow(2, float64(midi-69)/12)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
