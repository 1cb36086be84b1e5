package lift

import (
	"errors"
	"fmt"
	"strings"
)

// Build names a reference genome assembly in normalized (lowercase) form.
// GRCh38 and hg38 are distinct builds here: they differ in contig naming
// and in which patch contigs are present, and the UCSC chain inventory
// treats them as separate endpoints.
type Build string

const (
	GRCh37 Build = "grch37"
	GRCh38 Build = "grch38"
	Hg19   Build = "hg19"
	Hg38   Build = "hg38"
)

// ErrUnknownBuild indicates a build identifier the configured mapper has no
// chains for. It is a configuration error, surfaced before any row is
// processed.
var ErrUnknownBuild = errors.New("unknown genome build")

// ErrNoRoute indicates that both builds are known but no chain path
// connects them, even through intermediate builds.
var ErrNoRoute = errors.New("no chain route between builds")

// ParseBuild normalizes a caller-supplied build identifier. Any non-empty
// name is syntactically legal; whether a mapper supports it is a separate
// question answered by Mapper.HasBuild.
func ParseBuild(name string) (Build, error) {
	b := Build(strings.ToLower(strings.TrimSpace(name)))
	if b == "" {
		return "", fmt.Errorf("%w: empty build name", ErrUnknownBuild)
	}

	return b, nil
}
