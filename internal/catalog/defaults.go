package catalog

// DefaultSelection binds every feature of p to its first option flagged as
// default. Features without a default stay unbound. When a feature flags
// several defaults the first in declared order wins.
func DefaultSelection(p *Product) Selection {
	s := NewSelection()
	for _, f := range p.Features {
		for _, o := range f.Options {
			if o.IsDefault {
				s.Options[f.ID] = BoundOption{FeatureID: f.ID, FeatureName: f.Name, Option: o}
				break
			}
		}
	}
	return s
}
