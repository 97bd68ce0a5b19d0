package spase

import (
	"context"
	"slices"
	"strings"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// contact is a Contact holding at least one author role.
type contact struct {
	personID string
	roles    []string

	// matched is set once a PublicationInfo author was found to be this
	// contact.
	matched bool
}

// author is one entry of the creator sequence.
type author struct {
	// name is a person identifier for contact authors, and the citation
	// form "Family, Given" (or an organization name) for publication
	// authors.
	name   string
	given  string
	family string
	roles  []string

	// personID links the author to its Person record, when known.
	personID string
}

// backup is a contact without author roles, kept as a fallback
// contributor.
type backup struct {
	personID string
	roles    []string
}

// authorship is the analysis of a record's Contacts and PublicationInfo.
type authorship struct {
	authors      []author
	contacts     []*contact
	contributors []string
	backups      []backup

	publisher string
	pubDate   string
	title     string

	// fromPublication is set when the authors come from PublicationInfo.
	fromPublication bool
}

func (s *Strategy) authorship() *authorship {
	return s.cache.Get("authorship", func() any {
		return analyzeAuthors(s)
	}).(*authorship)
}

func analyzeAuthors(s *Strategy) *authorship {
	a := &authorship{}
	header := format.Find(s.dataRoot(), "ResourceHeader")
	if header == nil {
		return a
	}

	for _, c := range format.FindAll(header, "Contact") {
		personID := format.FindText(c, "PersonID")
		if personID == "" {
			continue
		}
		bk := a.backup(personID)
		for _, role := range format.FindTexts(c, "Role") {
			switch {
			case helpers.IsAuthorRole(role):
				a.addContactAuthor(personID, role)
			case role == helpers.RoleContributor:
				a.contributors = append(a.contributors, personID)
			case role == helpers.RolePublisher:
				a.publisher = publisherName(personID)
			default:
				bk.roles = append(bk.roles, role)
			}
		}
	}

	if pub := format.Find(header, "PublicationInfo"); pub != nil {
		if by := format.FindText(pub, "PublishedBy"); by != "" {
			a.publisher = by
		}
		a.pubDate = format.FindText(pub, "PublicationDate")
		a.title = format.FindText(pub, "Title")
		if names := format.FindText(pub, "Authors"); names != "" {
			a.fromPublication = true
			a.authors = a.publicationAuthors(names)
		}
	}
	return a
}

// publisherName is the display name of a Person, or the last path segment
// of any other record identifier ("spase://SMWG/Repository/NASA/GSFC/SPDF"
// gives "SPDF").
func publisherName(id string) string {
	if strings.Contains(id, "/Person/") {
		return helpers.SplitName(id).Display
	}
	return id[strings.LastIndex(id, "/")+1:]
}

func (a *authorship) backup(personID string) *backup {
	for i := range a.backups {
		if a.backups[i].personID == personID {
			return &a.backups[i]
		}
	}
	a.backups = append(a.backups, backup{personID: personID})
	return &a.backups[len(a.backups)-1]
}

// addContactAuthor records an author role of a contact. A person holding
// several author roles appears once with every role.
func (a *authorship) addContactAuthor(personID, role string) {
	for i := range a.authors {
		if a.authors[i].personID == personID {
			a.authors[i].roles = append(a.authors[i].roles, role)
			a.contactFor(personID).roles = append(a.contactFor(personID).roles, role)
			return
		}
	}
	p := helpers.SplitName(personID)
	a.authors = append(a.authors, author{
		name:     personID,
		given:    p.Given,
		family:   p.Family,
		roles:    []string{role},
		personID: personID,
	})
	a.contacts = append(a.contacts, &contact{personID: personID, roles: []string{role}})
}

func (a *authorship) contactFor(personID string) *contact {
	for _, c := range a.contacts {
		if c.personID == personID {
			return c
		}
	}
	return &contact{personID: personID}
}

// publicationAuthors turns the free-text author list of PublicationInfo
// into the creator sequence, matching each person against the author-role
// contacts to pick up their roles and Person records.
func (a *authorship) publicationAuthors(names string) []author {
	names = strings.ReplaceAll(names, `"`, "")
	var out []author

	if helpers.HasMultipleAuthors(names) {
		for _, person := range helpers.SplitAuthors(names) {
			inverted, family, given := helpers.NormalizeAuthor(person)
			out = append(out, a.matchAuthor(author{
				name:   inverted,
				given:  given,
				family: family,
				roles:  []string{helpers.RoleAuthor},
			}))
		}
		return out
	}

	person := strings.TrimSpace(strings.ReplaceAll(names, "'", ""))
	switch {
	case strings.Contains(person, ", "):
		family, given, _ := strings.Cut(person, ", ")
		given = strings.TrimSpace(strings.ReplaceAll(given, ",", ""))
		out = append(out, a.matchAuthor(author{
			name:   strings.TrimSpace(family + ", " + given),
			given:  given,
			family: strings.TrimSpace(family),
			roles:  []string{helpers.RoleAuthor},
		}))
	case strings.Contains(person, ". "):
		inverted, family, given := helpers.NormalizeAuthor(person)
		out = append(out, a.matchAuthor(author{
			name:   inverted,
			given:  given,
			family: family,
			roles:  []string{helpers.RoleAuthor},
		}))
	default:
		out = append(out, author{name: person, roles: []string{helpers.RoleAuthor}})
	}
	return out
}

// matchAuthor links a publication author to the first contact whose
// identifier names the same person.
func (a *authorship) matchAuthor(au author) author {
	for _, c := range a.contacts {
		if !helpers.MatchesContact(c.personID, au.name) {
			continue
		}
		c.matched = true
		au.personID = c.personID
		au.roles = append(au.roles, c.roles...)
		return au
	}
	return au
}

// =============================================================================
// AGENTS
// =============================================================================

// agent builds a contact's agent with the details of its Person record.
func (s *Strategy) agent(ctx context.Context, personID string) schemaorg.Agent {
	a := schemaorg.AgentFromName(personID)
	s.withPerson(ctx, &a, personID)
	return a
}

func (s *Strategy) withPerson(ctx context.Context, a *schemaorg.Agent, personID string) {
	if personID == "" {
		return
	}
	p := s.person(ctx, personID)
	a.ORCID = p.orcid
	a.Affiliation = p.affiliation
	a.ROR = p.ror
}

// Creator is the ordered author sequence.
func (s *Strategy) Creator(ctx context.Context) any {
	var nodes []any
	for _, au := range s.authorship().authors {
		var ag schemaorg.Agent
		if !s.authorship().fromPublication {
			ag = s.agent(ctx, au.personID)
		} else {
			ag = schemaorg.Agent{Name: au.name, Given: au.given, Family: au.family}
			s.withPerson(ctx, &ag, au.personID)
		}
		if n := ag.Node(); n != nil {
			nodes = append(nodes, n)
		}
	}
	return value.OrderedList(nodes)
}

// Contributor lists, in order: author-role contacts missing from the
// publication authors, contacts with the Contributor role, and otherwise
// the contacts holding the highest priority curator role.
func (s *Strategy) Contributor(ctx context.Context) any {
	a := s.authorship()
	var roles []any
	add := func(personID string, codes []string) {
		set := schemaorg.DefinedTermSet(roleSetURL, "SPASE Role", len(roles) == 0)
		if r := schemaorg.Role(s.agent(ctx, personID), codes, set); r != nil {
			roles = append(roles, r)
		}
	}

	if a.fromPublication {
		for _, c := range a.contacts {
			if !c.matched {
				add(c.personID, c.roles)
			}
		}
	}

	if len(a.contributors) > 0 {
		for _, personID := range a.contributors {
			add(personID, []string{helpers.RoleContributor})
		}
		return value.OrderedList(roles)
	}

	for _, curator := range helpers.CuratorRoles {
		found := false
		for _, b := range a.backups {
			if slices.Contains(b.roles, curator) {
				add(b.personID, []string{curator})
				found = true
			}
		}
		if found {
			break
		}
	}
	return value.OrderedList(roles)
}

// Publisher is PublishedBy, or the contact holding the Publisher role.
func (s *Strategy) Publisher(context.Context) any {
	return value.Normalize(schemaorg.Organization(s.authorship().publisher, nil))
}
