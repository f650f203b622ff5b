package inventory_test

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: sustituyen los adaptadores de PostgreSQL en los tests de
// los casos de uso. El TxRunner falso toma un snapshot del estado al iniciar
// y lo restaura si el callback falla, reproduciendo el Commit/Rollback real.
// ──────────────────────────────────────────────────────────────────────────────

func balanceKey(productID, branchID string) string { return productID + "|" + branchID }

type memStore struct {
	balances  map[string]*entity.StockBalance
	movements []*entity.StockMovement
	products  map[string]*entity.Product
	prices    map[string]decimal.Decimal // productID|branchID|tier
}

func newMemStore() *memStore {
	return &memStore{
		balances: make(map[string]*entity.StockBalance),
		products: make(map[string]*entity.Product),
		prices:   make(map[string]decimal.Decimal),
	}
}

func (s *memStore) seedProduct(p *entity.Product) { s.products[p.ID] = p }
func (s *memStore) seedBalance(b *entity.StockBalance) {
	s.balances[balanceKey(b.ProductID, b.BranchID)] = b
}
func (s *memStore) seedPrice(productID, branchID, tier string, price decimal.Decimal) {
	s.prices[productID+"|"+branchID+"|"+tier] = price
}

type memSnapshot struct {
	balances  map[string]*entity.StockBalance
	movements []*entity.StockMovement
}

func (s *memStore) snapshot() memSnapshot {
	balances := make(map[string]*entity.StockBalance, len(s.balances))
	for k, b := range s.balances {
		copied := *b
		balances[k] = &copied
	}
	movements := make([]*entity.StockMovement, len(s.movements))
	copy(movements, s.movements)
	return memSnapshot{balances: balances, movements: movements}
}

func (s *memStore) restore(snap memSnapshot) {
	s.balances = snap.balances
	s.movements = snap.movements
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct {
	store *memStore
	// failures se consume de a uno: cada Run falla con el siguiente error de
	// la lista antes de ejecutar el callback (simula conflictos de commit).
	failures []error
	runs     int
}

func newMemTxRunner(store *memStore) *memTxRunner { return &memTxRunner{store: store} }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	repository.StockBalanceRepository,
	repository.StockMovementRepository,
	repository.ProductRepository,
) error) error {
	t.runs++
	if len(t.failures) > 0 {
		err := t.failures[0]
		t.failures = t.failures[1:]
		return err
	}
	snap := t.store.snapshot()
	err := fn(&memBalanceRepo{t.store}, &memMovementRepo{t.store}, &memProductRepo{t.store})
	if err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// ── Invalidator ───────────────────────────────────────────────────────────────

type memInvalidator struct {
	branches []string
}

func (n *memInvalidator) InvalidateBranchStock(_ context.Context, branchID string) {
	n.branches = append(n.branches, branchID)
}

// ── StockBalanceRepository ────────────────────────────────────────────────────

type memBalanceRepo struct{ store *memStore }

func (r *memBalanceRepo) Get(_ context.Context, productID, branchID string) (*entity.StockBalance, error) {
	b, ok := r.store.balances[balanceKey(productID, branchID)]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *memBalanceRepo) GetForUpdate(ctx context.Context, productID, branchID string) (*entity.StockBalance, error) {
	return r.Get(ctx, productID, branchID)
}

func (r *memBalanceRepo) Update(_ context.Context, balance *entity.StockBalance) error {
	copied := *balance
	r.store.balances[balanceKey(balance.ProductID, balance.BranchID)] = &copied
	return nil
}

func (r *memBalanceRepo) Deactivate(_ context.Context, productID, branchID string) error {
	if b, ok := r.store.balances[balanceKey(productID, branchID)]; ok {
		b.Active = false
	}
	return nil
}

func (r *memBalanceRepo) ListBranchStock(_ context.Context, branchID, priceTier string) ([]repository.BranchStockRow, error) {
	var rows []repository.BranchStockRow
	for _, b := range r.store.balances {
		if b.BranchID != branchID || !b.Active {
			continue
		}
		p, ok := r.store.products[b.ProductID]
		if !ok {
			continue
		}
		row := repository.BranchStockRow{
			ProductID:       b.ProductID,
			ProductName:     p.Name,
			UnitType:        p.UnitType,
			Quantity:        b.Quantity,
			TrackInventory:  p.TrackInventory,
			MinStockAlert:   p.MinStockAlert,
			LastRestockedAt: b.LastRestockedAt,
		}
		if price, ok := r.store.prices[b.ProductID+"|"+branchID+"|"+priceTier]; ok {
			row.DineInPrice = &price
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductName < rows[j].ProductName })
	return rows, nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	copied := *movement
	r.store.movements = append(r.store.movements, &copied)
	return nil
}

// List recorre del último insertado al primero: con created_at monótono eso
// equivale al orden "más reciente primero" del adaptador real.
func (r *memMovementRepo) List(_ context.Context, filter repository.MovementFilter, limit int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for i := len(r.store.movements) - 1; i >= 0 && len(list) < limit; i-- {
		m := r.store.movements[i]
		if !matchesFilter(m, filter) {
			continue
		}
		copied := *m
		list = append(list, &copied)
	}
	return list, nil
}

func matchesFilter(m *entity.StockMovement, filter repository.MovementFilter) bool {
	if filter.ProductID != "" && m.ProductID != filter.ProductID {
		return false
	}
	if filter.BranchID != "" && m.BranchID != filter.BranchID {
		return false
	}
	if filter.ReasonContains != "" && !containsFold(m.Reason, filter.ReasonContains) {
		return false
	}
	if filter.From != nil && m.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && m.CreatedAt.After(*filter.To) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}
