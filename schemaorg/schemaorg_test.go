package schemaorg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/soso/resolve"
	"github.com/lehigh-university-libraries/soso/value"
)

func TestPruneContext(t *testing.T) {
	graph := value.Map{
		ContextKey:    Context(),
		value.TypeKey: "Dataset",
		"wasGeneratedBy": value.Map{
			value.TypeKey: []any{"ResearchProject", "prov:Activity"},
			"prov:used":   value.Map{IDKey: "https://example.org/instrument"},
		},
	}
	require.NoError(t, PruneContext(graph))

	ctx := graph[ContextKey].(value.Map)
	assert.Equal(t, value.Map{
		VocabKey: Vocab,
		"prov":   "http://www.w3.org/ns/prov#",
	}, ctx)
}

func TestPruneContextKeepsVocab(t *testing.T) {
	graph := value.Map{ContextKey: Context(), value.TypeKey: "Dataset", "name": "x"}
	require.NoError(t, PruneContext(graph))
	assert.Equal(t, value.Map{VocabKey: Vocab}, graph[ContextKey])
}

func TestIsGraphKey(t *testing.T) {
	for _, k := range []string{"@context", "@id", "@type", "name", "wasGeneratedBy", "isAccessibleForFree"} {
		assert.True(t, IsGraphKey(k), k)
	}
	assert.False(t, IsGraphKey("bogusKey"))
	assert.False(t, IsProperty("@id"))
}

func TestDOIIdentifier(t *testing.T) {
	pv := DOIIdentifier("https://doi.org/10.48322/e0dc-0h53")
	assert.Equal(t, value.Map{
		"@type":      "PropertyValue",
		"propertyID": RegistryDOI,
		"value":      "doi:10.48322/e0dc-0h53",
		"url":        "https://doi.org/10.48322/e0dc-0h53",
		"name":       "DOI: 10.48322/e0dc-0h53",
	}, pv)
	assert.Nil(t, DOIIdentifier("https://doi.org"))
}

func TestORCIDAndROR(t *testing.T) {
	pv := ORCIDIdentifier("https://orcid.org/0000-0002-1825-0097")
	assert.Equal(t, "https://orcid.org/0000-0002-1825-0097", pv["@id"])
	assert.Equal(t, "orcid:0000-0002-1825-0097", pv["value"])
	assert.Equal(t, RegistryORCID, pv["propertyID"])

	ror := RORIdentifier("0171mag52")
	assert.Equal(t, "https://ror.org/0171mag52", ror["url"])
	assert.Equal(t, "ror:0171mag52", ror["value"])

	assert.Nil(t, ORCIDIdentifier(" "))
}

func TestAgentNode(t *testing.T) {
	t.Run("person with orcid and affiliation", func(t *testing.T) {
		a := AgentFromName("spase://SMWG/Person/Robert.J.Strangeway")
		a.ORCID = "0000-0001-9839-1828"
		a.Affiliation = "University of California, Los Angeles"
		a.ROR = "046rm7j60"

		node := a.Node()
		assert.Equal(t, "Person", node["@type"])
		assert.Equal(t, "Robert J. Strangeway", node["name"])
		assert.Equal(t, "Robert J.", node["givenName"])
		assert.Equal(t, "Strangeway", node["familyName"])
		assert.Equal(t, "https://orcid.org/0000-0001-9839-1828", node["@id"])

		aff := node["affiliation"].(value.Map)
		assert.Equal(t, "Organization", aff["@type"])
		assert.Equal(t, "https://ror.org/046rm7j60", aff["identifier"].(value.Map)["@id"])
	})

	t.Run("organization", func(t *testing.T) {
		node := AgentFromName("National Data Center").Node()
		assert.Equal(t, value.Map{"@type": "Organization", "name": "National Data Center"}, node)
	})

	t.Run("declared kind wins over the name", func(t *testing.T) {
		org := Agent{Kind: AgentOrganization, Name: "U.S. Geological Survey"}.Node()
		assert.Equal(t, "Organization", org["@type"])

		person := Agent{Kind: AgentPerson, Name: "Cher", Family: "Cher"}.Node()
		assert.Equal(t, "Person", person["@type"])
		assert.NotContains(t, person, "familyName")
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Agent{}.Node())
	})
}

func TestRole(t *testing.T) {
	set := DefinedTermSet("https://example.org/roles", "Roles", true)
	role := Role(AgentFromName("Smith, J."), []string{"CoInvestigator"}, set)

	assert.Equal(t, []any{"Role", "DefinedTerm"}, role["@type"])
	assert.Equal(t, "Co-Investigator", role["roleName"])
	assert.Equal(t, "CoInvestigator", role["termCode"])
	assert.Equal(t, "DefinedTermSet", role["inDefinedTermSet"].(value.Map)["@type"])

	multi := Role(AgentFromName("Smith, J."), []string{"PrincipalInvestigator", "DataProducer"},
		DefinedTermSet("https://example.org/roles", "", false))
	assert.Equal(t, []any{"Principal Investigator", "Data Producer"}, multi["roleName"])
	assert.Equal(t, value.Map{"@id": "https://example.org/roles"}, multi["inDefinedTermSet"])
}

func TestRelated(t *testing.T) {
	tests := []struct {
		name string
		stub resolve.Stub
		want value.Map
	}{
		{
			name: "unknown kind",
			stub: resolve.Stub{URL: "https://example.org/x"},
			want: value.Map{"@id": "https://example.org/x", "identifier": "https://example.org/x", "url": "https://example.org/x"},
		},
		{
			name: "article",
			stub: resolve.Stub{URL: "https://doi.org/10.1/a", Kind: resolve.KindArticle},
			want: value.Map{
				"@id": "https://doi.org/10.1/a", "identifier": "https://doi.org/10.1/a", "url": "https://doi.org/10.1/a",
				"@type": "ScholarlyArticle",
			},
		},
		{
			name: "dataset without creators",
			stub: resolve.Stub{URL: "https://doi.org/10.1/d", Kind: resolve.KindDataset, Name: "D", Description: "About D"},
			want: value.Map{
				"@id": "https://doi.org/10.1/d", "identifier": "https://doi.org/10.1/d", "url": "https://doi.org/10.1/d",
				"@type": "Dataset", "name": "D", "description": "About D", "creator": MissingCreators,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Related(tt.stub))
		})
	}

	assert.Nil(t, RelatedList(nil))
	one := RelatedList([]resolve.Stub{{URL: "https://example.org/1"}})
	assert.IsType(t, value.Map{}, one)
	two := RelatedList([]resolve.Stub{{URL: "https://example.org/1"}, {URL: "https://example.org/2"}})
	assert.Len(t, two, 2)
}

func TestCreatorsFromRemote(t *testing.T) {
	got := CreatorsFromRemote([]resolve.Creator{
		{Name: "Doe, Jane", Given: "Jane", Family: "Doe", Affiliation: "NASA"},
		{Name: "Space Agency"},
	})
	list := got.(value.Map)["@list"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "Person", list[0].(value.Map)["@type"])
	assert.Equal(t, "Organization", list[1].(value.Map)["@type"])
}
