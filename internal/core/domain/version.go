package domain

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// phase identifies a pre-release segment. Ordering: alpha < beta < rc.
type phase int

const (
	phaseNone phase = iota
	phaseAlpha
	phaseBeta
	phaseRC
)

// Version is a parsed release version as the packaging ecosystem writes them:
// an optional epoch, a dotted release, and optional pre/post/dev segments.
type Version struct {
	Epoch   int
	Release []int

	pre     phase
	preNum  int
	post    int // -1 when absent
	dev     int // -1 when absent
	raw     string
}

// versionPattern accepts the normalized forms plus the common spelling
// variants (v-prefix, alpha/beta/c aliases, separator variations).
var versionPattern = regexp.MustCompile(`^v?(?:(\d+)!)?(\d+(?:\.\d+)*)(?:[-._]?(a|alpha|b|beta|rc|c|pre|preview)[-._]?(\d*))?(?:[-._]?(post)[-._]?(\d*))?(?:[-._]?(dev)[-._]?(\d*))?$`)

// ParseVersion parses a concrete version string.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	m := versionPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}

	v := Version{post: -1, dev: -1, raw: s}

	if m[1] != "" {
		v.Epoch, _ = strconv.Atoi(m[1])
	}

	for part := range strings.SplitSeq(m[2], ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, zerr.With(ErrInvalidVersion, "version", s)
		}
		v.Release = append(v.Release, n)
	}

	if m[3] != "" {
		switch m[3] {
		case "a", "alpha":
			v.pre = phaseAlpha
		case "b", "beta":
			v.pre = phaseBeta
		default: // rc, c, pre, preview
			v.pre = phaseRC
		}
		if m[4] != "" {
			v.preNum, _ = strconv.Atoi(m[4])
		}
	}

	if m[5] != "" {
		v.post = 0
		if m[6] != "" {
			v.post, _ = strconv.Atoi(m[6])
		}
	}

	if m[7] != "" {
		v.dev = 0
		if m[8] != "" {
			v.dev, _ = strconv.Atoi(m[8])
		}
	}

	return v, nil
}

// String returns the original spelling the version was parsed from.
func (v Version) String() string {
	return v.raw
}

// Compare returns -1, 0 or 1 when v sorts before, equal to, or after o.
// Ordering follows the ecosystem rules: epoch first, then the release
// (missing segments count as zero), then dev < pre < final < post.
func (v Version) Compare(o Version) int {
	if v.Epoch != o.Epoch {
		return cmpInt(v.Epoch, o.Epoch)
	}

	if c := cmpRelease(v.Release, o.Release); c != 0 {
		return c
	}

	// Same release: dev < alpha < beta < rc < final, post last.
	if c := cmpInt(v.segmentRank(), o.segmentRank()); c != 0 {
		return c
	}
	if c := cmpInt(v.preNum, o.preNum); c != 0 {
		return c
	}
	if c := cmpInt(v.devKey(), o.devKey()); c != 0 {
		return c
	}
	return cmpInt(v.post, o.post)
}

// segmentRank orders the pre-release shape of a version: a plain dev release
// sorts before every pre-release, which sorts before the final release.
func (v Version) segmentRank() int {
	switch {
	case v.pre != phaseNone:
		return int(v.pre)
	case v.dev >= 0:
		return 0
	default:
		return int(phaseRC) + 1
	}
}

// devKey makes an absent dev segment sort after any present one
// (1.0a1.dev1 < 1.0a1).
func (v Version) devKey() int {
	if v.dev < 0 {
		return int(^uint(0) >> 1)
	}
	return v.dev
}

// ReleasePrefixMatch reports whether v's release starts with the given
// release segments. Used for wildcard clauses ("==3.11.*") and for checking
// an exact interpreter pin against a minor-version selector.
func (v Version) ReleasePrefixMatch(prefix []int) bool {
	for i, seg := range prefix {
		have := 0
		if i < len(v.Release) {
			have = v.Release[i]
		}
		if have != seg {
			return false
		}
	}
	return true
}

func cmpRelease(a, b []int) int {
	n := max(len(a), len(b))
	for i := range n {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return cmpInt(av, bv)
		}
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
