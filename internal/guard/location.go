// ABOUTME: Navigation locations as ordered path segments
// ABOUTME: Distinguishes the auth group, the home group, and the root placeholder

package guard

import "strings"

// Route groups
const (
	AuthGroup = "(auth)"
	HomeGroup = "(tabs)"
)

// Location is the current screen as path segments, e.g. ["(auth)", "login"].
// The empty location is the root placeholder shown before the first redirect.
type Location []string

// Well-known locations
var (
	Root     = Location{}
	Login    = Location{AuthGroup, "login"}
	Register = Location{AuthGroup, "register"}
	Home     = Location{HomeGroup}
)

// ParseLocation splits a slash-separated path into a Location
func ParseLocation(path string) Location {
	var loc Location
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			loc = append(loc, seg)
		}
	}
	if loc == nil {
		return Root
	}
	return loc
}

// String renders the location as an absolute path
func (l Location) String() string {
	return "/" + strings.Join(l, "/")
}

// IsRoot reports whether this is the root placeholder
func (l Location) IsRoot() bool {
	return len(l) == 0
}

// InAuthGroup reports whether the first segment is the auth group
func (l Location) InAuthGroup() bool {
	return len(l) > 0 && l[0] == AuthGroup
}

// InHomeGroup reports whether the first segment is the home group
func (l Location) InHomeGroup() bool {
	return len(l) > 0 && l[0] == HomeGroup
}

// Equal compares segment by segment
func (l Location) Equal(o Location) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i] != o[i] {
			return false
		}
	}
	return true
}

// Param returns the segment after name, e.g. the id in ["results", "<id>"]
func (l Location) Param(name string) string {
	for i := 0; i+1 < len(l); i++ {
		if l[i] == name {
			return l[i+1]
		}
	}
	return ""
}
