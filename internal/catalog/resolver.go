package catalog

// ResolveVariation returns the first variation, in declared order, whose
// option ids equal the selection's bound option ids as a set. ok is false
// when nothing matches, which is the normal state of an incomplete
// selection.
//
// Variations referencing options that no feature declares are not
// rejected; they simply never match.
func ResolveVariation(p *Product, s Selection) (v *Variation, ok bool) {
	selected := s.SelectedOptionIDs()
	for i := range p.Variations {
		if sameIDs(optionIDs(p.Variations[i].Options), selected) {
			return &p.Variations[i], true
		}
	}
	return nil, false
}

func optionIDs(options []Option) map[int]struct{} {
	ids := make(map[int]struct{}, len(options))
	for _, o := range options {
		ids[o.ID] = struct{}{}
	}
	return ids
}

func sameIDs(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

// SelectableOptions returns the options of feature that appear in at least
// one of the product's variations, in the feature's declared order.
func SelectableOptions(p *Product, feature Feature) []Option {
	used := make(map[int]struct{})
	for _, v := range p.Variations {
		for _, o := range v.Options {
			used[o.ID] = struct{}{}
		}
	}

	options := make([]Option, 0, len(feature.Options))
	for _, o := range feature.Options {
		if _, ok := used[o.ID]; ok {
			options = append(options, o)
		}
	}
	return options
}
