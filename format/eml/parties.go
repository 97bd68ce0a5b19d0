package eml

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// party reads a ResponsibleParty element. An individualName makes a person
// affiliated with the organizationName; otherwise the organization, or
// failing that the position, is the agent. A userId in the ORCID directory
// becomes the agent's ORCID.
func party(el *etree.Element) schemaorg.Agent {
	a := schemaorg.Agent{
		Email: format.FindText(el, "electronicMailAddress"),
		URL:   format.FindText(el, "onlineUrl"),
	}
	for _, id := range format.FindAll(el, "userId") {
		if strings.Contains(format.Attr(id, "directory"), "orcid.org") {
			a.ORCID = strings.TrimSpace(id.Text())
		}
	}
	if a.ORCID == "" {
		a.Identifier = userID(format.FindAll(el, "userId"))
	}
	org := format.FindText(el, "organizationName")

	if individual := format.Find(el, "individualName"); individual != nil {
		given := strings.Join(format.FindTexts(individual, "givenName"), " ")
		family := format.FindText(individual, "surName")
		a.Kind = schemaorg.AgentPerson
		a.Given = given
		a.Family = family
		a.Name = strings.TrimSpace(given + " " + family)
		a.Affiliation = org
		return a
	}

	a.Kind = schemaorg.AgentOrganization
	a.Name = org
	if a.Name == "" {
		a.Name = format.FindText(el, "positionName")
	}
	return a
}

// userID describes the first userId of a party as a PropertyValue named by
// its directory.
func userID(ids []*etree.Element) any {
	for _, id := range ids {
		if v := strings.TrimSpace(id.Text()); v != "" {
			return schemaorg.PropertyValue(format.Attr(id, "directory"), v)
		}
	}
	return nil
}

func (s *Strategy) agents(path string) []any {
	var nodes []any
	for _, el := range format.FindAll(s.dataset(), path) {
		nodes = append(nodes, party(el).Node())
	}
	return nodes
}

// Creator is the ordered creator list.
func (s *Strategy) Creator(context.Context) any {
	return value.OrderedList(s.agents("creator"))
}

// Contributor lists the associated parties and project personnel. Parties
// with a role are wrapped in a Role.
func (s *Strategy) Contributor(context.Context) any {
	var roles []any
	parties := format.FindAll(s.dataset(), "associatedParty")
	parties = append(parties, format.FindAll(s.dataset(), ".//project/personnel")...)
	for _, el := range parties {
		agent := party(el)
		codes := format.FindTexts(el, "role")
		if len(codes) == 0 {
			roles = append(roles, agent.Node())
			continue
		}
		roles = append(roles, schemaorg.Role(agent, codes, nil))
	}
	return value.OrderedList(roles)
}

// Provider is the metadata provider.
func (s *Strategy) Provider(context.Context) any {
	return value.Single(s.agents("metadataProvider"))
}

func (s *Strategy) Publisher(context.Context) any {
	return value.Single(s.agents("publisher"))
}
