package stac

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Version is the STAC version written by the constructors.
const Version = "1.0.0"

// Supported STAC versions for this library.
const (
	MinSupportedVersion = "1.0.0"
	MaxTestedVersion    = "1.1.0"
)

// SupportedRange returns the minimum and maximum STAC versions supported by this library.
func SupportedRange() (min, max string) {
	return MinSupportedVersion, MaxTestedVersion
}

var (
	minSupportedSemver semver
	maxTestedSemver    semver
)

func init() {
	var err error
	minSupportedSemver, err = parseSemver(MinSupportedVersion)
	if err != nil {
		panic(fmt.Sprintf("stac: invalid MinSupportedVersion %q: %v", MinSupportedVersion, err))
	}
	maxTestedSemver, err = parseSemver(MaxTestedVersion)
	if err != nil {
		panic(fmt.Sprintf("stac: invalid MaxTestedVersion %q: %v", MaxTestedVersion, err))
	}
}

// IsSupportedVersion reports whether a "stac_version" value is within the
// supported range. Pre-releases such as "1.0.0-rc.2" sort before their release.
func IsSupportedVersion(v string) (bool, error) {
	parsed, err := parseSemver(v)
	if err != nil {
		return false, err
	}
	return compareSemver(parsed, minSupportedSemver) >= 0 && compareSemver(parsed, maxTestedSemver) <= 0, nil
}

type semver struct {
	major int
	minor int
	patch int
	pre   string
}

func parseSemver(v string) (semver, error) {
	core, pre, _ := strings.Cut(strings.TrimSpace(v), "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return semver{}, fmt.Errorf("invalid semver: %q", v)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return semver{}, fmt.Errorf("invalid semver: %q", v)
		}
		nums[i] = n
	}
	return semver{major: nums[0], minor: nums[1], patch: nums[2], pre: pre}, nil
}

func compareSemver(a, b semver) int {
	if c := cmp.Compare(a.major, b.major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.minor, b.minor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.patch, b.patch); c != 0 {
		return c
	}
	switch {
	case a.pre == b.pre:
		return 0
	case a.pre == "":
		return 1
	case b.pre == "":
		return -1
	}
	return comparePrerelease(a.pre, b.pre)
}

// comparePrerelease orders dot-separated pre-release identifiers: numeric
// identifiers numerically and below alphanumeric ones, and a shorter list
// first when it is a prefix of the other.
func comparePrerelease(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aErr := strconv.ParseUint(as[i], 10, 64)
		bn, bErr := strconv.ParseUint(bs[i], 10, 64)
		var c int
		switch {
		case aErr == nil && bErr == nil:
			c = cmp.Compare(an, bn)
		case aErr == nil:
			c = -1
		case bErr == nil:
			c = 1
		default:
			c = strings.Compare(as[i], bs[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}
