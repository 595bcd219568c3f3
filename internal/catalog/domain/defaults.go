package domain

// Default menus of the storefront. Prices are BRL cents.
func DefaultStore() *Store {
	traditional := Catalog{
		Title: "Donuts Tradicionais",
		Categories: []Category{
			{Name: "Clássicos", PriceCents: 1000, Flavors: []string{"Chocolate", "Açúcar e Canela", "Chocolate Branco"}},
			{Name: "Recheados", PriceCents: 1200, Flavors: []string{"Brigadeiro Meio Amargo", "Doce de Leite", "Beijinho", "Nesquik"}},
			{Name: "Gourmet", PriceCents: 1400, Flavors: []string{"Oreo", "Kit Kat", "Nutella", "Limão Siciliano"}},
		},
	}
	mini := Catalog{
		Title: "Mini Cake Donuts",
		Categories: []Category{
			{Name: "Clássicos", PriceCents: 250, Flavors: []string{"Chocolate", "Açúcar e Canela", "Chocolate Branco"}},
			{Name: "Recheados", PriceCents: 350, Flavors: []string{"Brigadeiro Meio Amargo", "Doce de Leite", "Beijinho", "Nesquik"}},
			{Name: "Gourmet", PriceCents: 450, Flavors: []string{"Oreo", "Kit Kat", "Nutella", "Limão Siciliano"}},
		},
	}
	return NewStore(traditional, mini)
}
