package catalog

import "slices"

// BoundOption is an option chosen for a feature. The feature fields are a
// display annotation carried next to the option; the catalog Option itself
// is never modified.
type BoundOption struct {
	FeatureID   int    `json:"featureId"`
	FeatureName string `json:"featureName"`
	Option      Option `json:"option"`
}

// Selection is the user's current configuration of one product: at most one
// option per feature, any number of options per modifier, and a quantity.
//
// Selections are values. SetFeatureOption, ToggleModifierOption and
// WithQuantity return a new Selection and leave the receiver untouched.
type Selection struct {
	Options   map[int]BoundOption      `json:"options"`
	Modifiers map[int][]ModifierOption `json:"modifiers"`
	Quantity  int                      `json:"quantity"`
}

// NewSelection returns an empty selection with quantity 1.
func NewSelection() Selection {
	return Selection{
		Options:   map[int]BoundOption{},
		Modifiers: map[int][]ModifierOption{},
		Quantity:  1,
	}
}

func (s Selection) clone() Selection {
	out := Selection{
		Options:   make(map[int]BoundOption, len(s.Options)),
		Modifiers: make(map[int][]ModifierOption, len(s.Modifiers)),
		Quantity:  s.Quantity,
	}
	for k, v := range s.Options {
		out.Options[k] = v
	}
	for k, v := range s.Modifiers {
		out.Modifiers[k] = slices.Clone(v)
	}
	return out
}

// SetFeatureOption binds feature's slot to option, replacing any prior binding.
func (s Selection) SetFeatureOption(feature Feature, option Option) Selection {
	out := s.clone()
	out.Options[feature.ID] = BoundOption{
		FeatureID:   feature.ID,
		FeatureName: feature.Name,
		Option:      option,
	}
	return out
}

// ToggleModifierOption removes option from modifier's chosen list when it is
// already there (matched by id) and appends it otherwise.
func (s Selection) ToggleModifierOption(modifier Modifier, option ModifierOption) Selection {
	out := s.clone()
	chosen := out.Modifiers[modifier.ID]
	if i := slices.IndexFunc(chosen, func(o ModifierOption) bool { return o.ID == option.ID }); i >= 0 {
		chosen = slices.Delete(chosen, i, i+1)
	} else {
		chosen = append(chosen, option)
	}
	if len(chosen) == 0 {
		delete(out.Modifiers, modifier.ID)
	} else {
		out.Modifiers[modifier.ID] = chosen
	}
	return out
}

// WithQuantity returns a copy of s with the given quantity. The value is not
// clamped; see Range.Clamp.
func (s Selection) WithQuantity(quantity int) Selection {
	out := s.clone()
	out.Quantity = quantity
	return out
}

// Option returns the option bound to the given feature.
func (s Selection) Option(featureID int) (Option, bool) {
	bound, ok := s.Options[featureID]
	return bound.Option, ok
}

// HasModifierOption reports whether option is chosen under modifier.
func (s Selection) HasModifierOption(modifierID, optionID int) bool {
	return slices.ContainsFunc(s.Modifiers[modifierID], func(o ModifierOption) bool { return o.ID == optionID })
}

// SelectedOptionIDs returns the set of option ids bound across all features.
func (s Selection) SelectedOptionIDs() map[int]struct{} {
	ids := make(map[int]struct{}, len(s.Options))
	for _, bound := range s.Options {
		ids[bound.Option.ID] = struct{}{}
	}
	return ids
}

// Summary renders the bound options as "Feature: Option" lines in the
// product's feature order.
func (s Selection) Summary(p *Product) []string {
	lines := make([]string, 0, len(s.Options))
	for _, f := range p.Features {
		bound, ok := s.Options[f.ID]
		if !ok {
			continue
		}
		lines = append(lines, bound.FeatureName+": "+bound.Option.Name)
	}
	return lines
}

// Equal reports whether two selections bind the same options, choose the
// same modifier options in the same order, and carry the same quantity.
// A nil map and an empty map are equal.
func (s Selection) Equal(other Selection) bool {
	if s.Quantity != other.Quantity || len(s.Options) != len(other.Options) || len(s.Modifiers) != len(other.Modifiers) {
		return false
	}
	for k, v := range s.Options {
		ov, ok := other.Options[k]
		if !ok || ov.FeatureID != v.FeatureID || ov.FeatureName != v.FeatureName || ov.Option != v.Option {
			return false
		}
	}
	for k, v := range s.Modifiers {
		ov, ok := other.Modifiers[k]
		if !ok || !slices.Equal(v, ov) {
			return false
		}
	}
	return true
}
