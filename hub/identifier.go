package hub

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/soso/value"
)

var (
	doiRegex    = regexp.MustCompile(`^10\.\d{4,}/[^\s]+$`)
	handleRegex = regexp.MustCompile(`^\d+\.\d+/[^\s]+$`)
	uuidRegex   = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// NodeID returns the @id for a strategy's ID value. Bare DOIs and handles
// become resolver URLs; a record without a usable identifier gets a fresh
// blank "urn:uuid:" identifier.
func NodeID(id any) string {
	s := strings.TrimSpace(value.Text(id))
	switch {
	case s == "":
		return NewBlankID()
	case value.IsURL(s), strings.HasPrefix(s, "urn:"):
		return s
	case strings.HasPrefix(strings.ToLower(s), "doi:"):
		return "https://doi.org/" + strings.TrimSpace(s[len("doi:"):])
	case doiRegex.MatchString(s):
		return "https://doi.org/" + s
	case handleRegex.MatchString(s):
		return "https://hdl.handle.net/" + s
	case uuidRegex.MatchString(s):
		return "urn:uuid:" + strings.ToLower(s)
	}
	return s
}

// NewBlankID returns a random "urn:uuid:" identifier.
func NewBlankID() string {
	return "urn:uuid:" + uuid.NewString()
}
