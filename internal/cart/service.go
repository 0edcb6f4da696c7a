package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/internal/menu"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
)

// Service manages session carts. Carts live in Redis keyed by an opaque
// token minted on first use; every write resets the TTL.
type Service interface {
	Get(ctx context.Context, token string) (string, *menu.Cart, error)
	AddItem(ctx context.Context, token string, input AddItemInput) (string, *menu.Cart, error)
	UpdateQuantity(ctx context.Context, token, lineKey string, quantity int) (*menu.Cart, error)
	RemoveItem(ctx context.Context, token, lineKey string) (*menu.Cart, error)
	Clear(ctx context.Context, token string) (*menu.Cart, error)
}

// AddItemInput holds the validated payload to add a product to the cart.
type AddItemInput struct {
	ProductID string
	Selection menu.Selection
	Quantity  int
}

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type keyer interface {
	CartKey(token string) string
}

type productSource interface {
	Product(id string) (menu.Product, bool)
	Snapshot() catalog.Snapshot
}

type service struct {
	store    store
	keyer    keyer
	products productSource
	ttl      time.Duration
}

// NewService constructs a cart service instance.
func NewService(st store, k keyer, products productSource, ttl time.Duration) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if k == nil {
		return nil, fmt.Errorf("cart keyer required")
	}
	if products == nil {
		return nil, fmt.Errorf("product source required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &service{store: st, keyer: k, products: products, ttl: ttl}, nil
}

// Get loads the cart for the token, minting a fresh token when none is
// provided. An expired or unknown token yields an empty cart.
func (s *service) Get(ctx context.Context, token string) (string, *menu.Cart, error) {
	if strings.TrimSpace(token) == "" {
		return uuid.NewString(), &menu.Cart{}, nil
	}
	cart, err := s.load(ctx, token)
	if err != nil {
		return "", nil, err
	}
	return token, cart, nil
}

func (s *service) AddItem(ctx context.Context, token string, input AddItemInput) (string, *menu.Cart, error) {
	if strings.TrimSpace(input.ProductID) == "" {
		return "", nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	snap := s.products.Snapshot()
	switch snap.State {
	case catalog.StateReady:
	case catalog.StateLoading:
		return "", nil, pkgerrors.New(pkgerrors.CodeDependency, "menu is still loading")
	default:
		return "", nil, pkgerrors.New(pkgerrors.CodeDependency, "menu is unavailable")
	}

	product, ok := s.products.Product(input.ProductID)
	if !ok {
		return "", nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if err := menu.ValidateSelection(product, input.Selection); err != nil {
		return "", nil, err
	}

	if strings.TrimSpace(token) == "" {
		token = uuid.NewString()
	}

	cart, err := s.load(ctx, token)
	if err != nil {
		return "", nil, err
	}

	cart.Add(product, input.Selection, input.Quantity)
	if err := s.save(ctx, token, cart); err != nil {
		return "", nil, err
	}
	return token, cart, nil
}

func (s *service) UpdateQuantity(ctx context.Context, token, lineKey string, quantity int) (*menu.Cart, error) {
	cart, err := s.mutate(ctx, token, func(c *menu.Cart) {
		c.UpdateQuantity(lineKey, quantity)
	})
	return cart, err
}

func (s *service) RemoveItem(ctx context.Context, token, lineKey string) (*menu.Cart, error) {
	return s.mutate(ctx, token, func(c *menu.Cart) {
		c.Remove(lineKey)
	})
}

// Clear empties the cart and drops the Redis key.
func (s *service) Clear(ctx context.Context, token string) (*menu.Cart, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if err := s.store.Del(ctx, s.keyer.CartKey(token)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: delete cart")
	}
	return &menu.Cart{}, nil
}

func (s *service) mutate(ctx context.Context, token string, fn func(*menu.Cart)) (*menu.Cart, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	cart, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	fn(cart)

	if cart.IsEmpty() {
		if err := s.store.Del(ctx, s.keyer.CartKey(token)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: delete cart")
		}
		return cart, nil
	}

	if err := s.save(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) load(ctx context.Context, token string) (*menu.Cart, error) {
	raw, err := s.store.Get(ctx, s.keyer.CartKey(token))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return &menu.Cart{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: load cart")
	}

	var cart menu.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// a corrupted entry is unrecoverable; start over
		return &menu.Cart{}, nil
	}
	return &cart, nil
}

func (s *service) save(ctx context.Context, token string, cart *menu.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal cart")
	}
	if err := s.store.Set(ctx, s.keyer.CartKey(token), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: save cart")
	}
	return nil
}
