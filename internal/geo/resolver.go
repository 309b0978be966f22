package geo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"swapwise/internal/domain"
	"swapwise/internal/metrics"
)

// CoordinateStore es un segundo nivel de cache compartido entre procesos.
type CoordinateStore interface {
	Get(ctx context.Context, key string) (domain.Coordinate, bool)
	Set(ctx context.Context, key string, coord domain.Coordinate, ttl time.Duration)
}

type cacheEntry struct {
	coord    domain.Coordinate
	storedAt time.Time
}

// Resolver cachea coordenadas resueltas por un Geocoder. Los fallos no se cachean.
type Resolver struct {
	geocoder Geocoder
	store    CoordinateStore
	logger   *zap.Logger
	ttl      time.Duration
	timeout  time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

// DefaultFetchTimeout limita una consulta compartida cuando no se configura otro valor.
const DefaultFetchTimeout = 10 * time.Second

// Option configura un Resolver.
type Option func(*Resolver)

// WithTTL hace expirar entradas despues de ttl. Cero significa sin expiracion.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithFetchTimeout acota cada consulta compartida al store y al geocoder.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithStore agrega un CoordinateStore (por ejemplo Redis) detras del cache en memoria.
func WithStore(store CoordinateStore) Option {
	return func(r *Resolver) { r.store = store }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

func NewResolver(geocoder Geocoder, opts ...Option) *Resolver {
	r := &Resolver{
		geocoder: geocoder,
		logger:   zap.NewNop(),
		timeout:  DefaultFetchTimeout,
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve devuelve las coordenadas de loc. false cubre ubicacion vacia,
// direccion desconocida y fallas de red; nunca es un error para el llamador.
func (r *Resolver) Resolve(ctx context.Context, loc domain.Location) (domain.Coordinate, bool) {
	if r == nil || loc.IsZero() {
		return domain.Coordinate{}, false
	}
	key := CacheKey(loc.District, loc.Province)

	if coord, ok := r.cached(key); ok {
		metrics.GeocodeRequests.WithLabelValues("hit").Inc()
		return coord, true
	}

	// La consulta la comparten todos los que esperan la misma clave: no hereda la
	// cancelacion de quien la inicio, solo sus valores y el timeout propio.
	v, err, _ := r.group.Do(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.fetch(fetchCtx, key, loc)
	})
	if err != nil {
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		if !errors.Is(err, ErrAddressNotFound) {
			r.logger.Warn("resolve coordinates failed", zap.String("key", key), zap.Error(err))
		}
		return domain.Coordinate{}, false
	}
	return v.(domain.Coordinate), true
}

// Len devuelve la cantidad de entradas en memoria.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Resolver) cached(key string) (domain.Coordinate, bool) {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return domain.Coordinate{}, false
	}
	if r.ttl > 0 && r.now().Sub(entry.storedAt) >= r.ttl {
		r.mu.Lock()
		if cur, ok := r.entries[key]; ok && cur.storedAt.Equal(entry.storedAt) {
			delete(r.entries, key)
		}
		r.mu.Unlock()
		return domain.Coordinate{}, false
	}
	return entry.coord, true
}

func (r *Resolver) remember(key string, coord domain.Coordinate) {
	r.mu.Lock()
	r.entries[key] = cacheEntry{coord: coord, storedAt: r.now()}
	r.mu.Unlock()
}

func (r *Resolver) fetch(ctx context.Context, key string, loc domain.Location) (domain.Coordinate, error) {
	if r.store != nil {
		if coord, ok := r.store.Get(ctx, key); ok {
			metrics.GeocodeRequests.WithLabelValues("store_hit").Inc()
			r.remember(key, coord)
			return coord, nil
		}
	}
	if r.geocoder == nil {
		return domain.Coordinate{}, errors.New("geocoder not configured")
	}

	metrics.GeocodeRequests.WithLabelValues("miss").Inc()
	address := strings.TrimSpace(loc.District) + "," + strings.TrimSpace(loc.Province)
	coord, err := r.geocoder.Lookup(ctx, address)
	if err != nil {
		return domain.Coordinate{}, err
	}

	r.remember(key, coord)
	if r.store != nil {
		r.store.Set(ctx, key, coord, r.ttl)
	}
	return coord, nil
}
