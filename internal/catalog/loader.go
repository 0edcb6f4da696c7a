package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rossellmestanza/menudigital/internal/menu"
	"github.com/rossellmestanza/menudigital/pkg/db/models"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"github.com/rossellmestanza/menudigital/pkg/logger"
)

// SnapshotState describes the loader lifecycle.
type SnapshotState string

const (
	StateLoading SnapshotState = "loading"
	StateReady   SnapshotState = "ready"
	StateFailed  SnapshotState = "failed"
)

// Snapshot is an immutable view of the storefront menu. Public reads are
// served from the latest snapshot so catalog edits never expose a
// half-written menu.
type Snapshot struct {
	State      SnapshotState
	Categories []CategoryDTO
	Products   map[string]menu.Product
	Config     ConfigDTO
	LoadedAt   time.Time
	Err        error
}

// source is the data surface the loader reads from.
type source interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error)
	GetConfig(ctx context.Context) (*models.RestaurantConfig, error)
}

// Loader fetches the catalog into memory and swaps snapshots atomically.
// Concurrent refreshes are resolved last-fetch-wins: a slow stale fetch
// cannot overwrite the result of a newer one.
type Loader struct {
	src  source
	logg *logger.Logger

	mu         sync.RWMutex
	snapshot   Snapshot
	generation uint64
}

// NewLoader constructs a loader in the loading state.
func NewLoader(src source, logg *logger.Logger) (*Loader, error) {
	if src == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog source required")
	}
	return &Loader{
		src:      src,
		logg:     logg,
		snapshot: Snapshot{State: StateLoading, Products: map[string]menu.Product{}},
	}, nil
}

// Snapshot returns the current catalog view.
func (l *Loader) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot
}

// Product resolves one product from the current snapshot.
func (l *Loader) Product(id string) (menu.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.snapshot.Products[id]
	return p, ok
}

// Refresh fetches the catalog and installs it as the new snapshot unless a
// newer fetch completed in the meantime.
func (l *Loader) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	snapshot, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		// a newer fetch already started; discard this result
		return nil
	}

	if err != nil {
		// keep serving the previous menu when one exists
		if l.snapshot.State == StateReady {
			if l.logg != nil {
				l.logg.Error(ctx, "catalog refresh failed, serving stale snapshot", err)
			}
			return err
		}
		l.snapshot = Snapshot{State: StateFailed, Products: map[string]menu.Product{}, Err: err}
		return err
	}

	l.snapshot = snapshot
	return nil
}

// Run refreshes on the configured interval until the context is cancelled.
func (l *Loader) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Refresh(ctx); err != nil && l.logg != nil {
				l.logg.Error(ctx, "scheduled catalog refresh failed", err)
			}
		}
	}
}

func (l *Loader) fetch(ctx context.Context) (Snapshot, error) {
	categories, err := l.src.ListCategories(ctx, true)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	products, err := l.src.ListProducts(ctx, true)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	cfg, err := l.src.GetConfig(ctx)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load config")
	}

	visible := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		visible[c.ID] = struct{}{}
	}

	// Products whose category was not fetched (inactive or deleted) are
	// dropped from the index too, so nothing hidden from the menu can be
	// added to a cart by ID.
	byCategory := map[string][]menu.Product{}
	index := make(map[string]menu.Product, len(products))
	for _, m := range products {
		if _, ok := visible[m.CategoryID]; !ok {
			continue
		}
		p := toMenuProduct(m)
		index[p.ID] = p
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{
			ID:       c.ID,
			Name:     c.Name,
			Icon:     c.Icon,
			Position: c.Position,
			Active:   c.Active,
			Products: byCategory[c.ID],
		})
	}

	return Snapshot{
		State:      StateReady,
		Categories: dtos,
		Products:   index,
		Config:     toConfigDTO(*cfg),
		LoadedAt:   time.Now(),
	}, nil
}
