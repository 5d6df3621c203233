package catalog

// ModifierTotal sums the prices of the modifier options chosen under the
// product's modifiers. An option id counts once even when it is chosen
// under several modifiers. Choices under modifiers the product does not
// declare are ignored.
func ModifierTotal(p *Product, s Selection) int {
	seen := make(map[int]struct{})
	total := 0
	for _, m := range p.Modifiers {
		for _, o := range s.Modifiers[m.ID] {
			if _, ok := seen[o.ID]; ok {
				continue
			}
			seen[o.ID] = struct{}{}
			total += o.Price
		}
	}
	return total
}

// TotalPrice computes (variation price + modifier total) * quantity. An
// unresolved selection has a base price of zero. The quantity is used as is;
// callers keep it inside their Range.
func TotalPrice(p *Product, s Selection) int {
	base := 0
	if v, ok := ResolveVariation(p, s); ok {
		base = v.Price
	}
	return (base + ModifierTotal(p, s)) * s.Quantity
}

// Quote is a priced view of a selection.
type Quote struct {
	Variation     *Variation `json:"variation,omitempty"`
	BasePrice     int        `json:"basePrice"`
	ModifierTotal int        `json:"modifierTotal"`
	Quantity      int        `json:"quantity"`
	Total         int        `json:"total"`
	// Complete is false when no variation matched; the total then only
	// covers modifiers and should not be shown as the product price.
	Complete bool     `json:"complete"`
	Summary  []string `json:"summary"`
}

// NewQuote resolves and prices s against p.
func NewQuote(p *Product, s Selection) Quote {
	q := Quote{
		ModifierTotal: ModifierTotal(p, s),
		Quantity:      s.Quantity,
		Summary:       s.Summary(p),
	}
	if v, ok := ResolveVariation(p, s); ok {
		q.Variation = v
		q.BasePrice = v.Price
		q.Complete = true
	}
	q.Total = (q.BasePrice + q.ModifierTotal) * q.Quantity
	return q
}
