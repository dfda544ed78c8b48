package catalog

import "strings"

// Built-in flavor vocabulary. Traditional flavors carry no surcharge; special
// flavors add the size-dependent surcharge from the config table. Names
// outside both sets are accepted as free text and priced without surcharge.
var traditionalFlavors = []string{
	"mexicana",
	"vegetales",
	"hawaiana",
	"napolitana",
	"margarita",
	"pollo",
	"champiñones",
	"criolla",
	"campesina",
}

var specialFlavors = []string{
	"paisa",
	"carnes",
	"ranchera",
	"pollo tocineta",
	"especial",
}

type flavorSet map[string]struct{}

func newFlavorSet(names ...[]string) flavorSet {
	s := make(flavorSet)
	for _, list := range names {
		for _, n := range list {
			s[normalizeFlavor(n)] = struct{}{}
		}
	}
	return s
}

func (s flavorSet) contains(name string) bool {
	_, ok := s[normalizeFlavor(name)]
	return ok
}

func normalizeFlavor(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
