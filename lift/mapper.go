package lift

// Locus is a single genomic coordinate: a contig name plus a 1-based
// position.
type Locus struct {
	Chrom string
	Pos   int64
}

// Mapper translates single loci between genome builds. Implementations own
// the chain data and whatever caching it requires; this package only asks
// per-locus questions.
//
// Lift returns the translated locus and true, or the zero Locus and false
// when the position has no mapping in the target build. An absent mapping
// is an expected, per-locus outcome and never an error.
type Mapper interface {
	Lift(from, to Build, locus Locus) (Locus, bool)

	// HasBuild reports whether any loaded chain touches the build.
	HasBuild(b Build) bool

	// CanLift reports whether a chain path connects the two builds,
	// possibly through intermediates.
	CanLift(from, to Build) bool
}
