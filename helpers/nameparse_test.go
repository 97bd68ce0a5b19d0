package helpers

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		raw   string
		want  ParsedName
		isOrg bool
	}{
		{"Smith, J. K.", ParsedName{"J. K. Smith", "J. K.", "Smith"}, false},
		{"Smith, J K", ParsedName{"J. K. Smith", "J. K.", "Smith"}, false},
		{"J. K. Smith", ParsedName{"J. K. Smith", "J. K.", "Smith"}, false},
		{"National Data Center", ParsedName{Display: "National Data Center"}, true},
		{"spase://SMWG/Person/John.A.Smith", ParsedName{"John A. Smith", "John A.", "Smith"}, false},
		{"spase://SMWG/Person/J.Smith", ParsedName{"J. Smith", "J.", "Smith"}, false},
		{"spase://SMWG/Person/Robert.Jones.Jr", ParsedName{"Robert Jones Jr", "Robert", "Jones Jr"}, false},
		{"spase://SMWG/Person/Mary.Ann.Lee.III", ParsedName{"Mary A. Lee III", "Mary A.", "Lee III"}, false},
		{"spase://SMWG/Person/José.Ángel.García", ParsedName{"José Á. García", "José Á.", "García"}, false},
		{"spase://SMWG/Person/É.Dupont", ParsedName{"É. Dupont", "É.", "Dupont"}, false},
		{"spase://SMWG/Person/Consortium", ParsedName{Display: "Consortium"}, true},
		{"spase://SMWG/Person/MMS_SDC_POC", ParsedName{Display: "MMS_SDC_POC"}, true},
		{"", ParsedName{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := SplitName(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got.Display))
			assert.Equal(t, tt.isOrg, got.IsOrganization())
		})
	}
}

func TestParsedNameInverted(t *testing.T) {
	assert.Equal(t, "Smith, J. K.", SplitName("J. K. Smith").Inverted())
	assert.Equal(t, "NASA", SplitName("NASA").Inverted())
}

func TestIsPerson(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Smith, Jane", true},
		{"J. Smith", true},
		{"Jane_Smith", true},
		{"NASA Goddard Space Flight Center", false},
		// documented false positive
		{"U.S. Geological Survey", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPerson(tt.name, SplitName(tt.name)))
		})
	}

	assert.True(t, IsPerson("John A Smith", ParsedName{Given: "John A.", Family: "Smith"}))
}

func TestSplitAuthors(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Smith, J.; Doe, A.", []string{"Smith, J.", "Doe, A."}},
		{"Smith, J., Doe, A.", []string{"Smith, J.", "Doe, A."}},
		{"J. Smith and A. Doe", []string{"J. Smith", "A. Doe"}},
		{"J. Smith & A. Doe", []string{"J. Smith", "A. Doe"}},
		{"Smith, J.", []string{"Smith, J."}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitAuthors(tt.in))
		})
	}
	assert.True(t, HasMultipleAuthors("Smith, J.; Doe, A."))
	assert.False(t, HasMultipleAuthors("Smith, J."))
}

func TestNormalizeAuthor(t *testing.T) {
	inv, family, given := NormalizeAuthor("Smith, J")
	assert.Equal(t, "Smith, J.", inv)
	assert.Equal(t, "Smith", family)
	assert.Equal(t, "J.", given)

	inv, family, given = NormalizeAuthor("and J. K. Doe")
	assert.Equal(t, "Doe, J. K.", inv)
	assert.Equal(t, "Doe", family)
	assert.Equal(t, "J. K.", given)

	inv, family, given = NormalizeAuthor("J. Émile Dupont")
	assert.Equal(t, "Dupont, J. É.", inv)
	assert.Equal(t, "Dupont", family)
	assert.Equal(t, "J. É.", given)
	assert.True(t, utf8.ValidString(inv))

	inv, _, _ = NormalizeAuthor("Dupont, É")
	assert.Equal(t, "Dupont, É.", inv)

	inv, family, given = NormalizeAuthor("Science Team")
	assert.Equal(t, "Science Team", inv)
	assert.Empty(t, family)
	assert.Empty(t, given)
}

func TestMatchesContact(t *testing.T) {
	contact := "spase://SMWG/Person/John.A.Smith"
	assert.True(t, MatchesContact(contact, "Smith, John A."))
	assert.True(t, MatchesContact(contact, "Smith, J. A."))
	assert.False(t, MatchesContact(contact, "Smith, J."))
	assert.False(t, MatchesContact(contact, "Doe, John A."))

	assert.True(t, MatchesContact("spase://SMWG/Person/Jane.Doe", "Doe, J."))
	assert.True(t, MatchesContact("spase://SMWG/Person/Émile.Dupont", "Dupont, É."))
	assert.True(t, MatchesContact("spase://SMWG/Person/Émile.Á.Dupont", "Dupont, É. Á."))
	assert.False(t, MatchesContact("spase://SMWG/Person/Émile.Dupont", "Dupont, E."))
	assert.Equal(t, "Smith, John A.", ContactDisplayName(contact))
	assert.Equal(t, "Doe, Jane", ContactDisplayName("spase://SMWG/Person/Jane.Doe"))
}
