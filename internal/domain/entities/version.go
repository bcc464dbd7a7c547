package entities

import (
	"strconv"
	"strings"
)

// VersionKey is the ordered numeric form of a release version string.
type VersionKey []int

// minimalVersionKey sorts below every well-formed key.
var minimalVersionKey = VersionKey{-1} //nolint:gochecknoglobals // immutable sentinel

// ToVersionKey converts a free-text version (e.g. "3.0.123.45", "v8.3 build") into
// a comparable key. Everything except ASCII digits and dots is dropped before
// splitting on ".". Any segment that fails to parse (including an empty input)
// yields the minimal key.
func ToVersionKey(version string) VersionKey {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, version)

	segments := strings.Split(cleaned, ".")
	key := make(VersionKey, 0, len(segments))
	for _, segment := range segments {
		n, err := strconv.Atoi(segment)
		if err != nil {
			return minimalVersionKey
		}
		key = append(key, n)
	}
	return key
}

// Compare orders two keys lexicographically. A key that is a strict prefix of
// the other sorts first, so "1.2" < "1.2.0".
func (k VersionKey) Compare(other VersionKey) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		if k[i] != other[i] {
			if k[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	default:
		return 0
	}
}

// CompareVersions returns -1, 0 or 1 comparing a to b by their version keys.
func CompareVersions(a, b string) int {
	return ToVersionKey(a).Compare(ToVersionKey(b))
}

// IsVersionGreater reports whether a sorts strictly after b.
func IsVersionGreater(a, b string) bool {
	return CompareVersions(a, b) > 0
}

// MaxVersion returns the greatest version of the list, keeping the first one
// on ties. The second return value is false for an empty list.
func MaxVersion(versions []string) (string, bool) {
	if len(versions) == 0 {
		return "", false
	}
	best := versions[0]
	bestKey := ToVersionKey(best)
	for _, v := range versions[1:] {
		key := ToVersionKey(v)
		if key.Compare(bestKey) > 0 {
			best, bestKey = v, key
		}
	}
	return best, true
}
