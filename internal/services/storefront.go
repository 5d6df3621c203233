package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/example/storefront/internal/catalog"
)

// CatalogSource fetches collections from wherever the catalog lives.
type CatalogSource interface {
	FetchCollections(ctx context.Context, ids []int) ([]catalog.Collection, error)
}

// State of the catalog snapshot.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Status describes the current snapshot.
type Status struct {
	State         State      `json:"state"`
	CollectionIDs []int      `json:"collection_ids"`
	LoadedAt      *time.Time `json:"loaded_at,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// Choice is a client's raw configuration of a product, by ids.
type Choice struct {
	Options   map[int]int   `json:"options"`
	Modifiers map[int][]int `json:"modifiers"`
	Quantity  int           `json:"quantity"`
}

// ProductQuote is a selection together with its price.
type ProductQuote struct {
	Selection catalog.Selection `json:"selection"`
	Quote     catalog.Quote     `json:"quote"`
}

// FeatureView is a feature with the options that can actually be picked.
type FeatureView struct {
	catalog.Feature
	Selectable []catalog.Option `json:"selectable"`
}

// ProductDetail is a product prepared for the customization screen.
type ProductDetail struct {
	Product  *catalog.Product `json:"product"`
	Features []FeatureView    `json:"features"`
	Quantity catalog.Range    `json:"quantity"`
}

// Storefront owns the latest catalog snapshot and prices products from it.
// Only the most recently started load may replace the snapshot.
type Storefront struct {
	source   CatalogSource
	quantity catalog.Range
	log      *zap.Logger
	group    singleflight.Group

	mu          sync.RWMutex
	generation  uint64
	latestKey   string
	state       State
	collections []catalog.Collection
	ids         []int
	loadedAt    time.Time
	lastErr     error
}

// NewStorefront builds a Storefront with no snapshot.
func NewStorefront(source CatalogSource, quantity catalog.Range, log *zap.Logger) *Storefront {
	return &Storefront{
		source:   source,
		quantity: quantity,
		log:      log.Named("storefront"),
		state:    StateIdle,
	}
}

func loadKey(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Load fetches the given collections and installs them as the snapshot.
// Identical concurrent loads share one fetch. A response that arrives after
// a newer load started is not installed. A failed latest load leaves the
// catalog absent.
func (s *Storefront) Load(ctx context.Context, ids []int) ([]catalog.Collection, error) {
	key := loadKey(ids)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.latestKey = key
	if s.collections == nil {
		s.state = StateLoading
	}
	s.mu.Unlock()

	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.source.FetchCollections(ctx, ids)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.log.Info("discarding stale catalog response",
			zap.String("ids", key),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", s.generation),
		)
		if err != nil {
			return nil, err
		}
		if s.latestKey != key {
			return nil, ErrSuperseded
		}
		return v.([]catalog.Collection), nil
	}

	if err != nil {
		s.state = StateError
		s.collections = nil
		s.ids = nil
		s.lastErr = err
		s.log.Error("catalog load failed", zap.String("ids", key), zap.Error(err))
		return nil, err
	}

	collections := v.([]catalog.Collection)
	if collections == nil {
		collections = []catalog.Collection{}
	}
	s.collections = collections
	s.ids = slices.Clone(ids)
	s.state = StateReady
	s.loadedAt = time.Now()
	s.lastErr = nil
	s.log.Info("catalog loaded",
		zap.String("ids", key),
		zap.Int("collections", len(collections)),
		zap.Bool("shared", shared),
	)
	return collections, nil
}

// Status reports the snapshot state.
func (s *Storefront) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{State: s.state, CollectionIDs: slices.Clone(s.ids)}
	if !s.loadedAt.IsZero() && s.collections != nil {
		at := s.loadedAt
		st.LoadedAt = &at
	}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	return st
}

// QuantityRange is the configured inclusive quantity range.
func (s *Storefront) QuantityRange() catalog.Range {
	return s.quantity
}

// Collections returns the snapshot.
func (s *Storefront) Collections() ([]catalog.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.collections == nil {
		return nil, ErrCatalogUnavailable
	}
	return s.collections, nil
}

// Collection returns a collection of the snapshot.
func (s *Storefront) Collection(id int) (*catalog.Collection, error) {
	collections, err := s.Collections()
	if err != nil {
		return nil, err
	}
	for i := range collections {
		if collections[i].ID == id {
			return &collections[i], nil
		}
	}
	return nil, ErrCollectionNotFound
}

// Product returns the first product with the given id across the snapshot's
// collections.
func (s *Storefront) Product(id int) (*catalog.Product, error) {
	collections, err := s.Collections()
	if err != nil {
		return nil, err
	}
	for i := range collections {
		if p, ok := collections[i].Product(id); ok {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

// ProductDetail returns the product with its selectable options.
func (s *Storefront) ProductDetail(id int) (*ProductDetail, error) {
	p, err := s.Product(id)
	if err != nil {
		return nil, err
	}

	features := make([]FeatureView, 0, len(p.Features))
	for _, f := range p.Features {
		features = append(features, FeatureView{Feature: f, Selectable: catalog.SelectableOptions(p, f)})
	}
	return &ProductDetail{Product: p, Features: features, Quantity: s.quantity}, nil
}

// DefaultQuote prices the product's default selection.
func (s *Storefront) DefaultQuote(productID int) (*ProductQuote, error) {
	p, err := s.Product(productID)
	if err != nil {
		return nil, err
	}

	sel := catalog.DefaultSelection(p).WithQuantity(s.quantity.Clamp(1))
	return &ProductQuote{Selection: sel, Quote: catalog.NewQuote(p, sel)}, nil
}

// Quote builds a selection from choice and prices it. The quantity is
// clamped to the configured range; unknown ids are rejected.
func (s *Storefront) Quote(productID int, choice Choice) (*ProductQuote, error) {
	p, err := s.Product(productID)
	if err != nil {
		return nil, err
	}

	sel := catalog.NewSelection()

	featureIDs := sortedKeys(choice.Options)
	for _, featureID := range featureIDs {
		optionID := choice.Options[featureID]
		feature, ok := p.Feature(featureID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown feature %d", ErrInvalidChoice, featureID)
		}
		option, ok := feature.Option(optionID)
		if !ok {
			return nil, fmt.Errorf("%w: option %d is not part of feature %d", ErrInvalidChoice, optionID, featureID)
		}
		sel = sel.SetFeatureOption(feature, option)
	}

	for _, modifierID := range sortedKeys(choice.Modifiers) {
		modifier, ok := p.Modifier(modifierID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown modifier %d", ErrInvalidChoice, modifierID)
		}
		for _, optionID := range choice.Modifiers[modifierID] {
			option, ok := modifier.Option(optionID)
			if !ok {
				return nil, fmt.Errorf("%w: option %d is not part of modifier %d", ErrInvalidChoice, optionID, modifierID)
			}
			if sel.HasModifierOption(modifierID, optionID) {
				continue
			}
			sel = sel.ToggleModifierOption(modifier, option)
		}
	}

	quantity := choice.Quantity
	if quantity == 0 {
		quantity = 1
	}
	sel = sel.WithQuantity(s.quantity.Clamp(quantity))

	return &ProductQuote{Selection: sel, Quote: catalog.NewQuote(p, sel)}, nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
