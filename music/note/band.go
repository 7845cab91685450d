package note

// Band classifies how far a note is from its target.
type Band int

const (
	// InTune is within ten cents.
	InTune Band = iota
	// Close is within thirty cents.
	Close
	// Off is anything further.
	Off
)

// BandOf returns the band for a cent deviation.
func BandOf(cents int) Band {
	if cents < 0 {
		cents = -cents
	}
	switch {
	case cents <= 10:
		return InTune
	case cents <= 30:
		return Close
	default:
		return Off
	}
}

// Band returns the tuning band of n.
func (n Note) Band() Band { return BandOf(n.Cents) }

// Flat reports whether the note is below its target.
func (n Note) Flat() bool { return n.Cents < 0 }

func (b Band) String() string {
	switch b {
	case InTune:
		return "in tune"
	case Close:
		return "close"
	default:
		return "off"
	}
}
