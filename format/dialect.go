package format

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect is a supported source metadata schema.
type Dialect int

const (
	DialectEML Dialect = iota + 1
	DialectSPASE
	DialectISO19115
)

// ErrUnknownDialect is returned for dialect names outside the enumeration.
var ErrUnknownDialect = errors.New("unknown dialect")

var dialectNames = map[Dialect]string{
	DialectEML:      "eml",
	DialectSPASE:    "spase",
	DialectISO19115: "iso19115",
}

// Dialects returns every dialect in declaration order.
func Dialects() []Dialect {
	return []Dialect{DialectEML, DialectSPASE, DialectISO19115}
}

func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// Valid reports whether d is one of the declared dialects.
func (d Dialect) Valid() bool {
	_, ok := dialectNames[d]
	return ok
}

// ParseDialect matches a dialect name case-insensitively. "iso" and
// "iso-19115" are accepted for ISO 19115.
func ParseDialect(name string) (Dialect, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "iso", "iso-19115", "iso_19115":
		return DialectISO19115, nil
	}
	for d, s := range dialectNames {
		if s == n {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// MarshalText implements encoding.TextMarshaler.
func (d Dialect) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDialect, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dialect) UnmarshalText(text []byte) error {
	parsed, err := ParseDialect(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
