package prg

const (
	// SeedSize is the size of a generator input (one tree node).
	SeedSize = 32
	// OutputSize is the size of a generator output (two tree nodes).
	OutputSize = 2 * SeedSize
)

// PRG expands a 32-byte seed into 64 pseudorandom bytes.
// Implementations must be deterministic and total.
type PRG interface {
	// Name returns the identifier used to select the generator by name.
	Name() string
	// Generate returns the expansion of seed. seed is not modified.
	Generate(seed *[SeedSize]byte) [OutputSize]byte
}

// Left replaces seed with the left half of its expansion.
func Left[P PRG](p P, seed *[SeedSize]byte) {
	out := p.Generate(seed)
	copy(seed[:], out[:SeedSize])
}

// Right replaces seed with the right half of its expansion.
func Right[P PRG](p P, seed *[SeedSize]byte) {
	out := p.Generate(seed)
	copy(seed[:], out[SeedSize:])
}

// Split returns both halves of the expansion of seed.
func Split[P PRG](p P, seed *[SeedSize]byte) (left, right [SeedSize]byte) {
	out := p.Generate(seed)
	copy(left[:], out[:SeedSize])
	copy(right[:], out[SeedSize:])
	return left, right
}
