// Package schemaorg holds the target vocabulary: the JSON-LD context, the
// canonical Dataset properties and constructors for the nodes that appear
// inside them.
package schemaorg

// SchemaType represents supported schema.org @type values.
type SchemaType string

const (
	TypeDataset                    SchemaType = "Dataset"
	TypeScholarlyArticle           SchemaType = "ScholarlyArticle"
	TypeCreativeWork               SchemaType = "CreativeWork"
	TypeDataDownload               SchemaType = "DataDownload"
	TypeDataCatalog                SchemaType = "DataCatalog"
	TypePerson                     SchemaType = "Person"
	TypeOrganization               SchemaType = "Organization"
	TypeRole                       SchemaType = "Role"
	TypePropertyValue              SchemaType = "PropertyValue"
	TypePropertyValueSpecification SchemaType = "PropertyValueSpecification"
	TypeDefinedTerm                SchemaType = "DefinedTerm"
	TypeDefinedTermSet             SchemaType = "DefinedTermSet"
	TypePlace                      SchemaType = "Place"
	TypeGeoCoordinates             SchemaType = "GeoCoordinates"
	TypeGeoShape                   SchemaType = "GeoShape"
	TypeMonetaryGrant              SchemaType = "MonetaryGrant"
	TypeSearchAction               SchemaType = "SearchAction"
	TypeEntryPoint                 SchemaType = "EntryPoint"
	TypeResearchProject            SchemaType = "ResearchProject"
	TypeIndividualProduct          SchemaType = "IndividualProduct"
	TypeProvActivity               SchemaType = "prov:Activity"
	TypeProvEntity                 SchemaType = "prov:Entity"
	TypeSosaSystem                 SchemaType = "sosa:System"
	TypeSosaPlatform               SchemaType = "sosa:Platform"
	TypeSpdxChecksum               SchemaType = "spdx:Checksum"
)

// Identifier registries used in PropertyValue.propertyID.
const (
	RegistryDOI   = "https://registry.identifiers.org/registry/doi"
	RegistryORCID = "https://registry.identifiers.org/registry/orcid"
	RegistryROR   = "https://registry.identifiers.org/registry/ror"
)
