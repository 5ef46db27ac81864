package inventory

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
	"github.com/rogerio-castellano/smart-inventory/internal/repo"
)

// Rand is the random source used by the reorder heuristic.
type Rand interface {
	IntN(n int) int
}

// Notifier is told when an item enters Low Stock through a create or update.
// Implementations must return promptly.
type Notifier interface {
	LowStock(ctx context.Context, item models.InventoryItem)
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRand(r Rand) Option {
	return func(s *Service) { s.rand = r }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithIDGenerator(next func() string) Option {
	return func(s *Service) { s.newID = next }
}

// Service owns every change to the inventory collection. Mutations run one
// at a time so concurrent requests cannot overwrite each other's saves.
type Service struct {
	store    repo.ItemStore
	now      func() time.Time
	rand     Rand
	notifier Notifier
	newID    func() string
	log      zerolog.Logger

	mu sync.Mutex
}

func New(store repo.ItemStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		rand:  globalRand{},
		newID: uuid.NewString,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every item in stored order with its effective status.
func (s *Service) List(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = resolve(items[i])
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.InventoryItem, error) {
	items, err := s.load(ctx)
	if err != nil {
		return models.InventoryItem{}, err
	}
	if i := indexOf(items, id); i >= 0 {
		return resolve(items[i]), nil
	}
	return models.InventoryItem{}, ErrNotFound
}

func (s *Service) Create(ctx context.Context, in CreateInput) (models.InventoryItem, error) {
	if err := in.validate(); err != nil {
		return models.InventoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return models.InventoryItem{}, err
	}

	requested := in.Status
	if requested == "" {
		requested = models.StatusInStock
	}

	now := s.now().UTC()
	item := models.InventoryItem{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Quantity:    in.Quantity,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Status:      ResolveStatus(in.Quantity, requested),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.save(ctx, append(items, item)); err != nil {
		return models.InventoryItem{}, err
	}

	s.log.Info().Str("item_id", item.ID).Str("name", item.Name).Int("quantity", item.Quantity).
		Str("status", string(item.Status)).Msg("item created")

	if item.Status == models.StatusLowStock {
		s.notifyLowStock(ctx, item)
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (models.InventoryItem, error) {
	if err := patch.validate(); err != nil {
		return models.InventoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return models.InventoryItem{}, err
	}

	i := indexOf(items, id)
	if i < 0 {
		return models.InventoryItem{}, ErrNotFound
	}

	before := resolve(items[i]).Status
	item := items[i]
	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Category != nil {
		item.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	item.Status = ResolveStatus(item.Quantity, item.Status)
	item.UpdatedAt = s.now().UTC()
	items[i] = item

	if err := s.save(ctx, items); err != nil {
		return models.InventoryItem{}, err
	}

	item = resolve(item)
	s.log.Info().Str("item_id", item.ID).Int("quantity", item.Quantity).
		Str("status", string(item.Status)).Msg("item updated")

	if item.Status == models.StatusLowStock && before != models.StatusLowStock {
		s.notifyLowStock(ctx, item)
	}
	return item, nil
}

// Delete removes the item with id and reports whether it existed. The store
// is only written when something was removed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]models.InventoryItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	if err := s.save(ctx, kept); err != nil {
		return false, err
	}
	s.log.Info().Str("item_id", id).Msg("item deleted")
	return true, nil
}

// Clear removes every item and returns how many were dropped. An empty
// collection is not rewritten.
func (s *Service) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	if err := s.save(ctx, []models.InventoryItem{}); err != nil {
		return 0, err
	}
	s.log.Info().Int("removed", len(items)).Msg("inventory cleared")
	return len(items), nil
}

// Categories returns the distinct categories in first-seen order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return distinctCategories(items), nil
}

func (s *Service) load(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load inventory")
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, items []models.InventoryItem) error {
	if err := s.store.Save(ctx, items); err != nil {
		s.log.Error().Err(err).Msg("failed to save inventory")
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (s *Service) notifyLowStock(ctx context.Context, item models.InventoryItem) {
	if s.notifier == nil {
		return
	}
	s.notifier.LowStock(ctx, item)
}

func indexOf(items []models.InventoryItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func distinctCategories(items []models.InventoryItem) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, it := range items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	return out
}
