// Package helpers provides the string heuristics shared by the dialect
// strategies: names, roles, dates, geometry, media types and licenses.
package helpers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ParsedName holds the components of a contact string.
type ParsedName struct {
	// Display is the name in "Given Family" order, or the raw input for
	// organizations.
	Display string
	Given   string
	Family  string
}

// IsOrganization reports whether no personal name parts were found.
func (n ParsedName) IsOrganization() bool {
	return n.Given == "" && n.Family == ""
}

// Inverted returns the name in "Family, Given" form.
func (n ParsedName) Inverted() string {
	if n.IsOrganization() {
		return n.Display
	}
	if n.Given == "" {
		return n.Family
	}
	return n.Family + ", " + n.Given
}

const personPathMarker = "Person/"

var (
	// Generational suffixes attached with a period in identifier paths
	pathSuffixes = []string{"II", "III", "Jr", "Sr"}

	// Pattern for "Family, Given" format
	invertedNameRegex = regexp.MustCompile(`^([^,]+),\s*(.+)$`)

	// A single trailing initial without its period: "Smith, J"
	trailingInitialRegex = regexp.MustCompile(`[.\s][\pL\d_]$`)
)

// SplitName splits a raw contact string into display, given and family
// names. Recognized forms, in priority order:
//
//	spase://SMWG/Person/John.A.Smith   identifier path
//	Smith, J. K.                       family, given
//	J. K. Smith                        given. family
//
// Anything else is treated as an organization name: Given and Family are
// empty and Display is the trimmed input.
func SplitName(raw string) ParsedName {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedName{}
	}

	if i := strings.Index(raw, personPathMarker); i >= 0 {
		return splitPersonPath(raw[i+len(personPathMarker):])
	}

	if m := invertedNameRegex.FindStringSubmatch(raw); m != nil {
		family := strings.TrimSpace(m[1])
		given := normalizeGiven(strings.ReplaceAll(m[2], ",", ""))
		if family != "" && given != "" {
			return ParsedName{Display: given + " " + family, Given: given, Family: family}
		}
	}

	if strings.Contains(raw, ". ") {
		parts := strings.Fields(raw)
		if len(parts) > 1 {
			family := parts[len(parts)-1]
			given := normalizeGiven(strings.Join(parts[:len(parts)-1], " "))
			return ParsedName{Display: given + " " + family, Given: given, Family: family}
		}
	}

	return ParsedName{Display: raw}
}

// splitPersonPath splits the dotted name that follows the person marker in
// an identifier, e.g. "John.A.Smith" or "J.Smith.Jr". A name without a
// period, such as "MMS_SDC_POC", is returned as the display name alone.
func splitPersonPath(name string) ParsedName {
	name = strings.NewReplacer("'", "", `"`, "").Replace(name)
	given, family, ok := strings.Cut(name, ".")
	if !ok || given == "" || family == "" {
		return ParsedName{Display: name}
	}
	if utf8.RuneCountInString(given) == 1 {
		given += "."
	}

	for _, suffix := range pathSuffixes {
		if strings.HasSuffix(family, "."+suffix) {
			family = strings.TrimSuffix(family, "."+suffix) + " " + suffix
			break
		}
	}

	for strings.Contains(family, ".") {
		var initial string
		initial, family, _ = strings.Cut(family, ".")
		if initial == "" {
			continue
		}
		given += " " + firstLetter(initial) + "."
	}

	return ParsedName{Display: given + " " + family, Given: given, Family: family}
}

// firstLetter returns the first character of s.
func firstLetter(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}

// normalizeGiven turns bare initials into period-suffixed initials and
// collapses spacing: "J K." becomes "J. K.".
func normalizeGiven(given string) string {
	parts := strings.Fields(given)
	for i, p := range parts {
		if len([]rune(p)) == 1 {
			parts[i] = p + "."
		}
	}
	return strings.Join(parts, " ")
}

// IsPerson decides between Person and Organization for a contact name.
//
// A name is a person when it contains ", " or ". ", when both given and
// family parts are known, or when it contains an underscore (identifier
// style names such as "Jane_Doe"). Known false positives: organizations
// whose names carry punctuation, e.g. "U.S. Geological Survey" or
// "Smith, Jones and Partners", are classified as persons.
func IsPerson(name string, parsed ParsedName) bool {
	if strings.Contains(name, ", ") || strings.Contains(name, ". ") || strings.Contains(name, "_") {
		return true
	}
	return parsed.Given != "" && parsed.Family != ""
}

// SplitAuthors splits a free-text author list. Separators are tried in
// order: "; ", "., ", " and ", " & ". The separator found first in that
// order is the only one used.
func SplitAuthors(authors string) []string {
	authors = strings.TrimSpace(authors)
	if authors == "" {
		return nil
	}

	var parts []string
	switch {
	case strings.Contains(authors, ";"):
		parts = strings.Split(authors, ";")
	case strings.Contains(authors, "., "):
		parts = strings.Split(authors, "., ")
		for i := 0; i < len(parts)-1; i++ {
			parts[i] += "."
		}
	case strings.Contains(authors, " and "):
		parts = strings.Split(authors, " and ")
	case strings.Contains(authors, " & "):
		parts = strings.Split(authors, " & ")
	default:
		return []string{authors}
	}
	return cleanNameList(parts)
}

// HasMultipleAuthors reports whether SplitAuthors would find a separator.
func HasMultipleAuthors(authors string) bool {
	for _, sep := range []string{"; ", "., ", " and ", " & "} {
		if strings.Contains(authors, sep) {
			return true
		}
	}
	return false
}

// NormalizeAuthor cleans one entry of a citation author list and returns it
// in "Family, Given" form together with its parts. A trailing bare initial
// gets a period and a leading "and " is removed.
func NormalizeAuthor(person string) (inverted, family, given string) {
	person = strings.TrimSpace(strings.ReplaceAll(person, "'", ""))
	if !strings.HasSuffix(person, ".") && trailingInitialRegex.MatchString(person) {
		person += "."
	}
	person = strings.TrimPrefix(person, "and ")
	person = strings.ReplaceAll(person, " and ", " ")

	if f, g, ok := strings.Cut(person, ", "); ok {
		family, given = f, g
	} else if g, f, ok := strings.Cut(person, ". "); ok {
		given, family = g+".", f
		if initial, rest, ok := strings.Cut(family, " "); ok && initial != "" {
			given = given + " " + firstLetter(initial) + "."
			family = rest
		}
	} else {
		return person, "", ""
	}
	given = strings.TrimSpace(strings.ReplaceAll(given, ",", ""))
	family = strings.TrimSpace(family)
	return strings.TrimSpace(family + ", " + given), family, given
}

// ContactNameParts splits a person identifier such as
// "spase://SMWG/Person/John.A.Smith" into first name, middle part and last
// name. A one-letter first name gets a period.
func ContactNameParts(contact string) (first, middle, last string) {
	head, last, _ := cutLast(contact, ".")
	first, middle, _ = strings.Cut(head, ".")
	if i := strings.LastIndex(first, "/"); i >= 0 {
		first = first[i+1:]
	}
	if utf8.RuneCountInString(first) == 1 {
		first += "."
	}
	return first, middle, last
}

// MatchesContact reports whether a free-text person string refers to the
// contact identifier. The first initial or first name, the middle initial or
// middle name, and the last name must all occur in the person string. This is
// approximate and misses people whose citation name differs from their
// identifier.
func MatchesContact(contact, person string) bool {
	first, middle, last := ContactNameParts(contact)
	if first == "" || last == "" {
		return false
	}
	firstOK := strings.Contains(person, firstLetter(first)+".") || strings.Contains(person, first)
	if !firstOK || !strings.Contains(person, last) {
		return false
	}
	switch {
	case middle == "":
		return true
	case utf8.RuneCountInString(middle) > 1:
		return strings.Contains(person, middle)
	default:
		return strings.Contains(person, middle+".")
	}
}

// ContactDisplayName renders a person identifier as "Last, First M.".
func ContactDisplayName(contact string) string {
	first, middle, last := ContactNameParts(contact)
	switch {
	case middle == "":
		return last + ", " + first
	case utf8.RuneCountInString(middle) > 1:
		return last + ", " + first + " " + middle
	default:
		return last + ", " + first + " " + middle + "."
	}
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return "", s, false
}

func cleanNameList(parts []string) []string {
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
