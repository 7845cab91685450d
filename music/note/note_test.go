package note

import (
	"errors"
	"math"
	"testing"
)

func TestFromFrequency(t *testing.T) {
	tests := []struct {
		freq      float64
		ref       float64
		wantName  string
		wantOct   int
		wantMIDI  int
		wantCents int
	}{
		{444, 444, "A", 4, 69, 0},
		{440, 440, "A", 4, 69, 0},
		{440, 444, "A", 4, 69, -16},
		{261.626, 440, "C", 4, 60, 0},
		{261.626, 0, "C", 4, 60, -16},
		{82.41, 440, "E", 2, 40, 0},
		{466.16, 440, "A#", 4, 70, 0},
		{8.0, 440, "C", -1, 0, -38},
		{7.0, 440, "A", -2, -3, 31},
	}

	for _, tt := range tests {
		n, err := FromFrequency(tt.freq, tt.ref)
		if err != nil {
			t.Fatalf("FromFrequency(%v, %v): %v", tt.freq, tt.ref, err)
		}
		if n.Name != tt.wantName || n.Octave != tt.wantOct || n.MIDI != tt.wantMIDI || n.Cents != tt.wantCents {
			t.Errorf("FromFrequency(%v, %v) = %s%d midi %d %+d cents, want %s%d midi %d %+d cents",
				tt.freq, tt.ref, n.Name, n.Octave, n.MIDI, n.Cents,
				tt.wantName, tt.wantOct, tt.wantMIDI, tt.wantCents)
		}
	}
}

func TestFromFrequencyTarget(t *testing.T) {
	n, err := FromFrequency(300, 444)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(n.Target-Frequency(n.MIDI, 444)) > 1e-9 {
		t.Fatalf("Target = %v, want %v", n.Target, Frequency(n.MIDI, 444))
	}
	if n.Frequency != 300 {
		t.Fatalf("Frequency = %v, want 300", n.Frequency)
	}
	if n.Cents < -50 || n.Cents > 50 {
		t.Fatalf("Cents = %d outside [-50, 50]", n.Cents)
	}
}

func TestFromFrequencyInvalid(t *testing.T) {
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := FromFrequency(f, 444); !errors.Is(err, ErrInvalidFrequency) {
			t.Errorf("FromFrequency(%v) err = %v, want ErrInvalidFrequency", f, err)
		}
	}
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		cents int
		want  Band
	}{
		{0, InTune},
		{10, InTune},
		{-10, InTune},
		{11, Close},
		{-30, Close},
		{31, Off},
		{-49, Off},
	}
	for _, tt := range tests {
		if got := BandOf(tt.cents); got != tt.want {
			t.Errorf("BandOf(%d) = %v, want %v", tt.cents, got, tt.want)
		}
	}
}

func TestNoteString(t *testing.T) {
	n, err := FromFrequency(440, 444)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.String(); got != "A4 -16" {
		t.Fatalf("String() = %q, want %q", got, "A4 -16")
	}
	if !n.Flat() || n.Band() != Close {
		t.Fatalf("Flat() = %v, Band() = %v", n.Flat(), n.Band())
	}
}
