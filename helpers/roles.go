package helpers

import (
	"strings"
	"unicode"
)

// Role codes that make a contact an author of the dataset.
var authorRoles = []string{"PrincipalInvestigator", "PI", "CoInvestigator", "Author"}

// CuratorRoles lists the fallback contributor roles in priority order.
var CuratorRoles = []string{
	"HostContact",
	"GeneralContact",
	"DataProducer",
	"MetadataContact",
	"TechnicalContact",
}

const (
	// RoleContributor marks a contact as a contributor.
	RoleContributor = "Contributor"

	// RolePublisher marks a contact as the publisher.
	RolePublisher = "Publisher"

	// RoleAuthor is the role given to citation authors without a contact.
	RoleAuthor = "Author"
)

// IsAuthorRole reports whether a role code names an author role.
// Compound codes such as "CoPI" or "DeputyPI" count.
func IsAuthorRole(role string) bool {
	for _, r := range authorRoles {
		if strings.Contains(role, r) {
			return true
		}
	}
	return false
}

// ClassifyRole returns the human-readable label for a role code and the code
// itself. Codes are concatenated capitalized words:
//
//	PrincipalInvestigator  Principal Investigator
//	CoInvestigator         Co-Investigator
//	CoPI                   Co-PI
//	DeputyPI               Deputy PI
//	PI                     PI
//
// No other abbreviations are recognized.
func ClassifyRole(role string) (label, code string) {
	code = strings.TrimSpace(role)
	if before, _, ok := strings.Cut(code, "PI"); ok {
		switch {
		case before == "":
			return "PI", code
		case strings.Contains(before, "Co"):
			return before + "-PI", code
		default:
			return strings.Join(splitCamel(before), " ") + " PI", code
		}
	}

	words := splitCamel(code)
	if len(words) > 1 && words[0] == "Co" {
		return "Co-" + strings.Join(words[1:], " "), code
	}
	return strings.Join(words, " "), code
}

// RoleLabel is ClassifyRole without the code.
func RoleLabel(role string) string {
	label, _ := ClassifyRole(role)
	return label
}

// splitCamel splits before each upper-case letter.
func splitCamel(s string) []string {
	var words []string
	var cur []rune
	for _, r := range s {
		if unicode.IsUpper(r) && len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}
	return words
}

// CamelWords splits a code such as "EnergeticParticles" into space-joined
// words. Unlike RoleLabel it applies no abbreviation rules.
func CamelWords(code string) string {
	return strings.Join(splitCamel(strings.TrimSpace(code)), " ")
}
