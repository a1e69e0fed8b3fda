package resource

import (
	"strconv"
	"strings"
)

// ID identifies a resource type or a resource name.
// The zero value is the numeric ID 0, which no host assigns.
type ID struct {
	name  string
	num   uint32
	named bool
}

// Num returns a numeric ID.
func Num(n uint32) ID {
	return ID{num: n}
}

// Name returns a named ID. Names are case-insensitive and stored upper-cased.
func Name(s string) ID {
	return ID{name: strings.ToUpper(s), named: true}
}

// ParseID converts a resource type as written on command lines and in
// fixtures. A well-known tag name such as "STRING" or "RT_STRING" maps to its
// numeric value; otherwise it is parsed like ParseName.
func ParseID(s string) ID {
	if w, ok := LookupWellKnown(s); ok {
		return w.ID()
	}
	return ParseName(s)
}

// ParseName converts a resource name. "#123" is numeric and anything else,
// including words that spell a well-known type, is a name.
func ParseName(s string) ID {
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		if n, err := strconv.ParseUint(rest, 10, 32); err == nil {
			return Num(uint32(n))
		}
	}
	return Name(s)
}

// IsNamed reports whether the ID is a string name.
func (id ID) IsNamed() bool {
	return id.named
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Number returns the numeric value and true for numeric IDs.
func (id ID) Number() (uint32, bool) {
	if id.named {
		return 0, false
	}
	return id.num, true
}

// Name returns the upper-cased name and true for named IDs.
func (id ID) Name() (string, bool) {
	if !id.named {
		return "", false
	}
	return id.name, true
}

// String renders numeric IDs as "#n" and names verbatim.
func (id ID) String() string {
	if id.named {
		return id.name
	}
	return "#" + strconv.FormatUint(uint64(id.num), 10)
}

// Label renders a type ID using its well-known tag name when it has one.
func (id ID) Label() string {
	if n, ok := id.Number(); ok {
		if w := WellKnown(n); w.Known() {
			return w.String()
		}
	}
	return id.String()
}
