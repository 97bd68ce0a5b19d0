package iso19115

import (
	"context"
	"slices"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// Role codes that make a party a creator.
var creatorRoles = []string{"author", "originator", "principalInvestigator"}

// party reads a CI_ResponsibleParty. A named individual is a person
// affiliated with the organisation.
func party(el *etree.Element) schemaorg.Agent {
	contact := format.Find(el, "contactInfo/CI_Contact")
	a := schemaorg.Agent{
		Email: text(contact, "address/CI_Address/electronicMailAddress"),
		URL:   format.FindText(contact, "onlineResource/CI_OnlineResource/linkage/URL"),
	}
	org := text(el, "organisationName")
	if individual := text(el, "individualName"); individual != "" {
		name := helpers.SplitName(individual)
		a.Kind = schemaorg.AgentPerson
		a.Name = name.Display
		a.Given = name.Given
		a.Family = name.Family
		a.Affiliation = org
		return a
	}
	a.Kind = schemaorg.AgentOrganization
	a.Name = org
	if a.Name == "" {
		a.Name = text(el, "positionName")
	}
	return a
}

// parties returns the responsible parties of the identification, cited
// parties first, whose role is one of roles.
func (s *Strategy) parties(roles ...string) []any {
	candidates := format.FindAll(s.citation(), "citedResponsibleParty/CI_ResponsibleParty")
	candidates = append(candidates, format.FindAll(s.identification(), "pointOfContact/CI_ResponsibleParty")...)

	var nodes []any
	for _, el := range candidates {
		if slices.Contains(roles, codeListValue(el, "role")) {
			nodes = append(nodes, party(el).Node())
		}
	}
	return nodes
}

// Creator is the ordered list of authors, originators and principal
// investigators.
func (s *Strategy) Creator(context.Context) any {
	return value.OrderedList(s.parties(creatorRoles...))
}

func (s *Strategy) Publisher(context.Context) any {
	return value.Single(s.parties("publisher"))
}
