package logdir

import (
	"fmt"
	"strconv"
	"strings"
)

// Unspecified marks a version component that was not present in the name.
const Unspecified = -1

// VersionTag is a version parsed from a directory name such as "2", "2.8" or "2.8.1".
// Missing components are Unspecified, which is distinct from zero.
type VersionTag struct {
	Major int
	Minor int
	Micro int
}

// ParseVersionTag parses a dotted numeric version with one to three components.
// Anything else (empty parts, signs, letters, whitespace, a fourth component)
// is rejected.
func ParseVersionTag(name string) (VersionTag, bool) {
	v := VersionTag{Major: Unspecified, Minor: Unspecified, Micro: Unspecified}

	parts := strings.Split(name, ".")
	if len(parts) > 3 {
		return v, false
	}

	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" || !isDigits(p) {
			return v, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return v, false
		}
		nums = append(nums, n)
	}

	v.Major = nums[0]
	if len(nums) > 1 {
		v.Minor = nums[1]
	}
	if len(nums) > 2 {
		v.Micro = nums[2]
	}
	return v, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsMajorOnly reports whether only the major component is present.
func (v VersionTag) IsMajorOnly() bool {
	return v.Major != Unspecified && v.Minor == Unspecified && v.Micro == Unspecified
}

func (v VersionTag) String() string {
	switch {
	case v.Major == Unspecified:
		return ""
	case v.Minor == Unspecified:
		return strconv.Itoa(v.Major)
	case v.Micro == Unspecified:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
	}
}

// VersionFilter decides whether a parsed version directory is a candidate.
type VersionFilter func(VersionTag) bool

// AnyVersion accepts every well formed version directory.
func AnyVersion(VersionTag) bool { return true }

// MajorOnly accepts version directories named by a bare major number.
func MajorOnly(v VersionTag) bool { return v.IsMajorOnly() }
