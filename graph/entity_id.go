package graph

import (
	"strings"

	"github.com/aquariumbio/aquarium-opil/vocabulary/opil"
	"github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

// Entity ID prefix: org and platform of the 6-part dotted ID.
const (
	Org      = "aquarium"
	Platform = "opil"
)

var classDomains = []struct {
	namespace string
	domain    string
}{
	{sbol.Namespace, "sbol"},
	{opil.Namespace, "opil"},
	{sbol.OMNamespace, "om"},
	{sbol.ProvNamespace, "prov"},
}

// EntityID maps an object identity to a dotted entity ID:
//
//	aquarium.opil.<domain>.<top-level displayId>.<class>.<path>
//
// domain is the vocabulary of the class (sbol, opil, om, prov) and path is
// the identity below the top-level object with "/" replaced by "-", or the
// top-level displayId itself.
func EntityID(namespace, identity, class string) string {
	rel := strings.TrimPrefix(identity, strings.TrimSuffix(namespace, "/")+"/")
	system, rest, nested := strings.Cut(rel, "/")
	instance := system
	if nested {
		instance = strings.ReplaceAll(rest, "/", "-")
	}

	domain, local := "ext", class
	for _, d := range classDomains {
		if strings.HasPrefix(class, d.namespace) {
			domain, local = d.domain, strings.TrimPrefix(class, d.namespace)
			break
		}
	}
	if i := strings.LastIndexAny(local, "/#"); i >= 0 {
		local = local[i+1:]
	}

	return strings.Join([]string{Org, Platform, domain, system, strings.ToLower(local), instance}, ".")
}
