// Package catalog holds the storefront catalog types and the pure
// selection, variation-matching and pricing logic built on them.
package catalog

// Category groups products on the storefront.
type Category struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Feature is an option group such as "Ice level". Exactly one of its
// options is chosen per product configuration.
type Feature struct {
	ID          int      `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Options     []Option `json:"options,omitempty"`
}

// Option is one selectable value of a Feature.
type Option struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsDefault   bool   `json:"isDefault"`
}

// Modifier is an add-on group such as "Topping". Its options add to the
// price and never take part in variation matching.
type Modifier struct {
	ID          int              `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Options     []ModifierOption `json:"options"`
}

// ModifierOption is a priced add-on. Price is in the smallest currency unit.
type ModifierOption struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

// Variation is a priced point in the product's option space.
type Variation struct {
	ID            int      `json:"id"`
	SKU           string   `json:"sku"`
	Unit          string   `json:"unit"`
	OriginalPrice int      `json:"originalPrice"`
	Price         int      `json:"price"`
	Gram          int      `json:"gram"`
	Images        []string `json:"images"`
	IsAvailable   bool     `json:"isAvailable"`
	IsDefault     bool     `json:"isDefault"`
	Options       []Option `json:"options"`
	Product       *Product `json:"product,omitempty"`
}

type InventoryBaseUnit struct {
	ID        int     `json:"id"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	Name      string  `json:"name"`
	Gram      int     `json:"gram"`
	Ratio     float64 `json:"ratio"`
}

type InventoryUnit struct {
	ID        int                `json:"id"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
	Name      string             `json:"name"`
	Gram      int                `json:"gram"`
	BaseUnit  *InventoryBaseUnit `json:"baseUnit,omitempty"`
	Ratio     float64            `json:"ratio"`
}

// Product is a catalog entry with its option groups, priced variations
// and add-on groups.
type Product struct {
	ID           int            `json:"id"`
	Slug         string         `json:"slug"`
	Code         string         `json:"code"`
	Name         string         `json:"name"`
	FullName     string         `json:"fullName"`
	Description  string         `json:"description"`
	IsAvailable  bool           `json:"isAvailable"`
	IsFeature    bool           `json:"isFeature"`
	NotionPageID *string        `json:"notionPageID,omitempty"`
	CategoryID   int            `json:"categoryID"`
	Images       []string       `json:"images"`
	SharingImage *string        `json:"sharingImage,omitempty"`
	Category     *Category      `json:"category,omitempty"`
	Variations   []Variation    `json:"variations,omitempty"`
	Features     []Feature      `json:"features,omitempty"`
	Modifiers    []Modifier     `json:"modifiers,omitempty"`
	Unit         *InventoryUnit `json:"unit,omitempty"`
	Barcode      string         `json:"barcode"`
}

// Collection is an ordered list of products published together.
type Collection struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Products    []Product `json:"products"`
}

// Feature returns the product's feature with the given id.
func (p *Product) Feature(id int) (Feature, bool) {
	for _, f := range p.Features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// Modifier returns the product's modifier with the given id.
func (p *Product) Modifier(id int) (Modifier, bool) {
	for _, m := range p.Modifiers {
		if m.ID == id {
			return m, true
		}
	}
	return Modifier{}, false
}

func (f Feature) Option(id int) (Option, bool) {
	for _, o := range f.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func (m Modifier) Option(id int) (ModifierOption, bool) {
	for _, o := range m.Options {
		if o.ID == id {
			return o, true
		}
	}
	return ModifierOption{}, false
}

// Product returns the collection's product with the given id.
func (c *Collection) Product(id int) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], true
		}
	}
	return nil, false
}
