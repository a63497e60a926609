package inventory_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-lite/internal/domain/entity"
	"github.com/tu-usuario/inventario-lite/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia. Replican la semántica de
// los adaptadores PostgreSQL: GetByID devuelve (nil, nil) si no existe, el
// listado desempata por orden de inserción y el historial se ordena por
// timestamp DESC con seq como desempate. El TxRunner restaura un snapshot si
// el callback falla (equivalente al Rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items   map[string]*entity.Item
	order   []string // ids en orden de inserción
	entries []*entity.AuditEntry
	seq     int64
}

func newMemStore() *memStore {
	return &memStore{items: map[string]*entity.Item{}}
}

func (s *memStore) snapshot() *memStore {
	cp := &memStore{
		items:   make(map[string]*entity.Item, len(s.items)),
		order:   append([]string(nil), s.order...),
		entries: append([]*entity.AuditEntry(nil), s.entries...),
		seq:     s.seq,
	}
	for id, it := range s.items {
		c := *it
		cp.items[id] = &c
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.items = snap.items
	s.order = snap.order
	s.entries = snap.entries
	s.seq = snap.seq
}

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.AuditRepository) error) error {
	snap := r.s.snapshot()
	if err := fn(&memItemRepo{s: r.s}, &memAuditRepo{s: r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// failingTxRunner inyecta un fallo en el repositorio de auditoría para
// verificar que la transacción revierte ambas escrituras.
type failingTxRunner struct {
	s      *memStore
	failOn string
	err    error
}

func (r *failingTxRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.AuditRepository) error) error {
	snap := r.s.snapshot()
	var audit repository.AuditRepository = &memAuditRepo{s: r.s}
	if r.failOn == "audit" {
		audit = &failingAuditRepo{err: r.err}
	}
	if err := fn(&memItemRepo{s: r.s}, audit); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

type failingAuditRepo struct{ err error }

func (r *failingAuditRepo) Create(*entity.AuditEntry) error { return r.err }

func (r *failingAuditRepo) ListByItem(string, int, int) ([]*entity.AuditEntry, int, error) {
	return nil, 0, r.err
}

type memItemRepo struct{ s *memStore }

var _ repository.ItemRepository = (*memItemRepo)(nil)

func (r *memItemRepo) Create(item *entity.Item) error {
	c := *item
	r.s.items[item.ID] = &c
	r.s.order = append(r.s.order, item.ID)
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	c := *it
	return &c, nil
}

func (r *memItemRepo) GetByIDForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) Update(item *entity.Item) error {
	if _, ok := r.s.items[item.ID]; ok {
		c := *item
		r.s.items[item.ID] = &c
	}
	return nil
}

func (r *memItemRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	if it, ok := r.s.items[id]; ok {
		it.Quantity = quantity
		it.UpdatedAt = updatedAt
	}
	return nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.s.items, id)
	for i, oid := range r.s.order {
		if oid == id {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memItemRepo) List(filter repository.ItemFilter) ([]*entity.Item, int, error) {
	var matched []*entity.Item
	for _, id := range r.s.order {
		it := r.s.items[id]
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(it.Name), needle) &&
				!strings.Contains(strings.ToLower(it.Category), needle) {
				continue
			}
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		c := *it
		matched = append(matched, &c)
	}

	desc := filter.SortOrder == "desc"
	sort.SliceStable(matched, func(i, j int) bool {
		less := itemLess(matched[i], matched[j], filter.SortBy)
		if desc {
			return itemLess(matched[j], matched[i], filter.SortBy)
		}
		return less
	})

	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func itemLess(a, b *entity.Item, sortBy string) bool {
	switch sortBy {
	case "quantity":
		return a.Quantity < b.Quantity
	case "category":
		return a.Category < b.Category
	case "costPrice":
		return a.CostPrice.LessThan(b.CostPrice)
	case "createdAt":
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

func (r *memItemRepo) DistinctCategories() ([]string, error) {
	seen := map[string]bool{}
	var categories []string
	for _, it := range r.s.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			categories = append(categories, it.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *memItemRepo) Stats() (*entity.InventoryStats, error) {
	s := &entity.InventoryStats{TotalValue: decimal.Zero}
	for _, it := range r.s.items {
		s.TotalItems++
		if it.LowStock() {
			s.LowStockItems++
		}
		s.TotalValue = s.TotalValue.Add(it.CostPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return s, nil
}

type memAuditRepo struct{ s *memStore }

var _ repository.AuditRepository = (*memAuditRepo)(nil)

func (r *memAuditRepo) Create(entry *entity.AuditEntry) error {
	c := *entry
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	r.s.seq++
	c.Seq = r.s.seq
	r.s.entries = append(r.s.entries, &c)
	return nil
}

func (r *memAuditRepo) ListByItem(itemID string, limit, offset int) ([]*entity.AuditEntry, int, error) {
	var matched []*entity.AuditEntry
	for _, e := range r.s.entries {
		if e.ItemID == itemID {
			c := *e
			matched = append(matched, &c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].Seq > matched[j].Seq
	})
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
