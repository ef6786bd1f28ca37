package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Mbarca89/vete-front-v2/internal/backend"
	"golang.org/x/sync/singleflight"
)

const (
	baseTTL   = 5 * time.Minute
	searchTTL = baseTTL / 2 // search results churn more than category lists
)

// Source is the slice of the backend client the catalog reads from.
type Source interface {
	Categories(ctx context.Context) ([]string, error)
	Products(ctx context.Context, page, size int) (*backend.ProductsPage, error)
	ProductsByCategory(ctx context.Context, category string, page, size int) (*backend.ProductsPage, error)
	SearchProducts(ctx context.Context, term string) ([]backend.Product, error)
}

type entry struct {
	value   any
	expires time.Time
}

// Service is a read-through cache over the catalog endpoints. Duplicate
// in-flight loads for the same key collapse into one upstream call.
type Service struct {
	source Source

	mu      sync.RWMutex
	entries map[string]entry
	sfg     singleflight.Group

	now func() time.Time
}

func NewService(source Source) *Service {
	return &Service{
		source:  source,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	v, err := s.get(ctx, "categories", baseTTL, func() (any, error) {
		return s.source.Categories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (s *Service) Products(ctx context.Context, page, size int) (*backend.ProductsPage, error) {
	key := fmt.Sprintf("products:%d:%d", page, size)
	v, err := s.get(ctx, key, baseTTL, func() (any, error) {
		return s.source.Products(ctx, page, size)
	})
	if err != nil {
		return nil, err
	}
	return v.(*backend.ProductsPage), nil
}

func (s *Service) ProductsByCategory(ctx context.Context, category string, page, size int) (*backend.ProductsPage, error) {
	key := fmt.Sprintf("category:%s:%d:%d", category, page, size)
	v, err := s.get(ctx, key, baseTTL, func() (any, error) {
		return s.source.ProductsByCategory(ctx, category, page, size)
	})
	if err != nil {
		return nil, err
	}
	return v.(*backend.ProductsPage), nil
}

func (s *Service) SearchProducts(ctx context.Context, term string) ([]backend.Product, error) {
	v, err := s.get(ctx, "search:"+term, searchTTL, func() (any, error) {
		return s.source.SearchProducts(ctx, term)
	})
	if err != nil {
		return nil, err
	}
	return v.([]backend.Product), nil
}

func (s *Service) get(ctx context.Context, key string, ttl time.Duration, load func() (any, error)) (any, error) {
	if v, ok := s.lookup(key); ok {
		return v, nil
	}

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		// a concurrent caller may have filled the entry while we waited
		if v, ok := s.lookup(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		s.set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok || s.now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (s *Service) set(key string, value any, ttl time.Duration) {
	jitter := time.Duration(rand.Intn(30)) * time.Second
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expires: s.now().Add(ttl + jitter)}
}
