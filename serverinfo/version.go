package serverinfo

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed dotted server version ("6.0.1"). Build suffixes
// and extra segments are ignored.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Server releases that gate feature availability.
var (
	// Version5_5 is the oldest release the SDK talks to.
	Version5_5 = Version{Major: 5, Minor: 5}
	// Version5_6_1 introduced server-side recursive lookups with
	// continuation offsets.
	Version5_6_1 = Version{Major: 5, Minor: 6, Patch: 1}
	// Version6 introduced the exclude-state flag on input controls.
	Version6 = Version{Major: 6}
)

func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	parts := strings.Split(s, ".")
	nums := make([]int, 0, 3)
	for i, part := range parts {
		if i == 3 {
			break
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			// tolerate suffixes like "6.0.1-beta" on the last segment
			trimmed := strings.SplitN(part, "-", 2)[0]
			n, err = strconv.Atoi(trimmed)
			if err != nil {
				return Version{}, fmt.Errorf("parse version %q: %w", s, err)
			}
		}
		nums = append(nums, n)
	}

	v := Version{Major: nums[0]}
	if len(nums) > 1 {
		v.Minor = nums[1]
	}
	if len(nums) > 2 {
		v.Patch = nums[2]
	}
	return v, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether v is the same as or newer than o.
func (v Version) AtLeast(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor > o.Minor
	}
	return v.Patch >= o.Patch
}
