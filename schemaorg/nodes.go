package schemaorg

import (
	"strings"

	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/resolve"
	"github.com/lehigh-university-libraries/soso/value"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// PropertyValue is the generic identifier node.
func PropertyValue(propertyID, val string) value.Map {
	return value.Map{
		value.TypeKey: string(TypePropertyValue),
		"propertyID":  propertyID,
		"value":       val,
	}
}

// DOIValue returns "doi:" plus the path of a resolver URL such as
// https://doi.org/10.48322/abc.
func DOIValue(doiURL string) string {
	parts := strings.Split(doiURL, "/")
	if len(parts) <= 3 {
		return ""
	}
	return "doi:" + strings.Join(parts[3:], "/")
}

// DOIIdentifier describes a DOI resolver URL.
func DOIIdentifier(doiURL string) value.Map {
	v := DOIValue(doiURL)
	if v == "" {
		return nil
	}
	pv := PropertyValue(RegistryDOI, v)
	pv["url"] = doiURL
	pv["name"] = strings.Replace(v, "doi:", "DOI: ", 1)
	return pv
}

// ORCIDIdentifier accepts a bare ORCID or an orcid.org URL.
func ORCIDIdentifier(orcid string) value.Map {
	orcid = strings.TrimPrefix(strings.TrimSpace(orcid), "https://orcid.org/")
	if orcid == "" {
		return nil
	}
	id := "https://orcid.org/" + orcid
	pv := PropertyValue(RegistryORCID, "orcid:"+orcid[strings.LastIndex(orcid, "/")+1:])
	pv[IDKey] = id
	pv["url"] = id
	return pv
}

// RORIdentifier accepts a bare ROR id or a ror.org URL.
func RORIdentifier(ror string) value.Map {
	ror = strings.TrimPrefix(strings.TrimSpace(ror), "https://ror.org/")
	if ror == "" {
		return nil
	}
	id := "https://ror.org/" + ror
	pv := PropertyValue(RegistryROR, "ror:"+ror)
	pv[IDKey] = id
	pv["url"] = id
	return pv
}

// =============================================================================
// TERMS
// =============================================================================

// DefinedTermSet references a term set. The full form, used on the first
// term of a property, also names it.
func DefinedTermSet(url, name string, full bool) value.Map {
	set := value.Map{IDKey: url}
	if full {
		set[value.TypeKey] = string(TypeDefinedTermSet)
		set["name"] = name
		set["url"] = url
	}
	return set
}

// DefinedTerm builds a term within set.
func DefinedTerm(name, termCode string, set value.Map) value.Map {
	term := value.Map{
		value.TypeKey: string(TypeDefinedTerm),
		"name":        name,
	}
	if termCode != "" {
		term["termCode"] = termCode
	}
	if set != nil {
		term["inDefinedTermSet"] = set
	}
	return term
}

// =============================================================================
// AGENTS
// =============================================================================

// AgentKind records what the source says an agent is.
type AgentKind int

const (
	// AgentUnknown leaves the decision to the name heuristic.
	AgentUnknown AgentKind = iota
	AgentPerson
	AgentOrganization
)

// Agent is a person or organization before it is rendered.
type Agent struct {
	Kind AgentKind

	Name   string
	Given  string
	Family string

	ORCID       string
	Affiliation string
	ROR         string

	// Identifier is used for agents without an ORCID, e.g. a directory id.
	Identifier any
	URL        string
	Email      string
}

// AgentFromName builds an agent from a raw contact string.
func AgentFromName(raw string) Agent {
	p := helpers.SplitName(raw)
	return Agent{Name: p.Display, Given: p.Given, Family: p.Family}
}

// IsPerson reports the agent's kind, applying the person heuristic to the
// name when the source did not say.
func (a Agent) IsPerson() bool {
	switch a.Kind {
	case AgentPerson:
		return true
	case AgentOrganization:
		return false
	}
	return helpers.IsPerson(a.Name, helpers.ParsedName{Display: a.Name, Given: a.Given, Family: a.Family})
}

// Node renders the agent as a Person or Organization.
func (a Agent) Node() value.Map {
	if strings.TrimSpace(a.Name) == "" {
		return nil
	}
	if !a.IsPerson() {
		org := value.Map{value.TypeKey: string(TypeOrganization), "name": a.Name}
		if a.ROR != "" {
			org["identifier"] = RORIdentifier(a.ROR)
		} else if a.Identifier != nil {
			org["identifier"] = a.Identifier
		}
		if a.URL != "" {
			org["url"] = a.URL
		}
		if a.Email != "" {
			org["email"] = a.Email
		}
		return org
	}

	person := value.Map{value.TypeKey: string(TypePerson), "name": a.Name}
	if a.Given != "" && a.Family != "" {
		person["givenName"] = strings.TrimSpace(a.Given)
		person["familyName"] = strings.TrimSpace(a.Family)
	}
	if pv := ORCIDIdentifier(a.ORCID); pv != nil {
		person["identifier"] = pv
		person[IDKey] = pv[IDKey]
	} else if a.Identifier != nil {
		person["identifier"] = a.Identifier
	}
	if a.Affiliation != "" {
		aff := value.Map{value.TypeKey: string(TypeOrganization), "name": a.Affiliation}
		if a.ROR != "" {
			aff["identifier"] = RORIdentifier(a.ROR)
		}
		person["affiliation"] = aff
	}
	if a.URL != "" {
		person["url"] = a.URL
	}
	if a.Email != "" {
		person["email"] = a.Email
	}
	return person
}

// Organization is a named organization with an optional identifier.
func Organization(name string, identifier any) value.Map {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	org := value.Map{value.TypeKey: string(TypeOrganization), "name": name}
	if identifier != nil {
		org["identifier"] = identifier
	}
	return org
}

// Role wraps a contributing agent with its role codes. termSet is the term
// set the codes belong to; the first role of a property carries the full
// set description.
func Role(agent Agent, codes []string, termSet value.Map) value.Map {
	node := agent.Node()
	if node == nil {
		return nil
	}
	labels := make([]string, 0, len(codes))
	for _, c := range codes {
		labels = append(labels, helpers.RoleLabel(c))
	}
	role := value.Map{
		value.TypeKey:      []any{string(TypeRole), string(TypeDefinedTerm)},
		"contributor":      node,
		"inDefinedTermSet": termSet,
		"roleName":         value.Single(value.Strings(labels)),
		"termCode":         value.Single(value.Strings(codes)),
	}
	return role
}

// =============================================================================
// WORKS
// =============================================================================

// DataDownload is a downloadable representation of the dataset.
func DataDownload(contentURL string, encodingFormat any) value.Map {
	if contentURL == "" {
		return nil
	}
	return value.Map{
		value.TypeKey:    string(TypeDataDownload),
		"contentUrl":     contentURL,
		"encodingFormat": encodingFormat,
	}
}

// CreativeWork is a linked document, such as an information page.
func CreativeWork(url, name string) value.Map {
	if url == "" {
		return nil
	}
	work := value.Map{
		IDKey:         url,
		value.TypeKey: string(TypeCreativeWork),
		"url":         url,
		"identifier":  url,
	}
	if name != "" {
		work["name"] = name
	}
	return work
}

// MissingCreators stands in for the creator of a related dataset whose
// record names none.
const MissingCreators = "No creators were found. View record for contacts."

// Related renders a resolved reference. Datasets carry their descriptive
// fields; articles only their type.
func Related(stub resolve.Stub) value.Map {
	id := stub.URL
	if id == "" {
		id = stub.ID
	}
	if id == "" {
		return nil
	}
	node := value.Map{IDKey: id, "identifier": id, "url": id}
	switch stub.Kind {
	case resolve.KindDataset:
		node[value.TypeKey] = stub.Kind.SchemaType()
		node["name"] = stub.Name
		node["description"] = stub.Description
		if stub.License != nil {
			node["license"] = stub.License
		}
		if value.IsAbsent(stub.Creator) {
			node["creator"] = MissingCreators
		} else {
			node["creator"] = stub.Creator
		}
	case resolve.KindArticle:
		node[value.TypeKey] = stub.Kind.SchemaType()
	}
	return node
}

// RelatedList renders stubs, returning a single node for one stub.
func RelatedList(stubs []resolve.Stub) any {
	nodes := make([]any, 0, len(stubs))
	for _, s := range stubs {
		if n := Related(s); n != nil {
			nodes = append(nodes, n)
		}
	}
	return value.Single(nodes)
}

// CreatorsFromRemote renders creators harvested from a DOI registry.
func CreatorsFromRemote(creators []resolve.Creator) any {
	nodes := make([]any, 0, len(creators))
	for _, c := range creators {
		a := Agent{Name: c.Name, Given: c.Given, Family: c.Family, Affiliation: c.Affiliation}
		if n := a.Node(); n != nil {
			nodes = append(nodes, n)
		}
	}
	return value.OrderedList(nodes)
}
