package domain

import "github.com/donutopia/storefront/pkg/money"

// ProductType selects which of the two catalogs is active.
type ProductType string

const (
	TypeTraditional ProductType = "tradicional"
	TypeMini        ProductType = "mini"
)

// ShortLabel is the abbreviation used on order lines.
func (t ProductType) ShortLabel() string {
	if t == TypeMini {
		return "Mini"
	}
	return "Trad."
}

func (t ProductType) Valid() bool {
	return t == TypeTraditional || t == TypeMini
}

type Category struct {
	Name       string
	PriceCents money.Cents
	Flavors    []string
}

type Catalog struct {
	Title      string
	Categories []Category
}

// Store holds both catalogs. It is built once at startup and never mutated.
type Store struct {
	catalogs map[ProductType]Catalog
}

func NewStore(traditional, mini Catalog) *Store {
	return &Store{catalogs: map[ProductType]Catalog{
		TypeTraditional: traditional,
		TypeMini:        mini,
	}}
}

func (s *Store) Catalog(t ProductType) (Catalog, bool) {
	c, ok := s.catalogs[t]
	return c, ok
}

// UnitPrice looks up the list price for a flavor of the given type.
func (s *Store) UnitPrice(t ProductType, category, flavor string) (money.Cents, bool) {
	c, ok := s.catalogs[t]
	if !ok {
		return 0, false
	}
	for _, cat := range c.Categories {
		if cat.Name != category {
			continue
		}
		for _, f := range cat.Flavors {
			if f == flavor {
				return cat.PriceCents, true
			}
		}
	}
	return 0, false
}
