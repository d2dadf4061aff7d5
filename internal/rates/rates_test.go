package rates

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"homeloans_backend/internal/events"
	"homeloans_backend/platform/logger"
	"homeloans_backend/platform/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	mu     sync.Mutex
	sheet  *RateSheet
	reads  int
	err    error
	writes int
}

func (f *fakeStore) Read(ctx context.Context) (RateSheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.err != nil {
		return RateSheet{}, f.err
	}
	if f.sheet == nil {
		return RateSheet{}, ErrNotFound
	}
	return *f.sheet, nil
}

func (f *fakeStore) Write(ctx context.Context, sheet RateSheet) (RateSheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	sheet.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f.sheet = &sheet
	return sheet, nil
}

type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func newCache(t *testing.T, next Store) (*CachedStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCachedStore(next, rdb, time.Minute, logger.Discard()), mr
}

func TestCachedStoreReadThrough(t *testing.T) {
	next := &fakeStore{sheet: &RateSheet{FixedRate: 4.89, VariableRate: 5.2, ThreeYearFixedRate: 4.99}}
	cache, mr := newCache(t, next)
	ctx := context.Background()

	first, err := cache.Read(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mr.Exists(cacheKey) {
		t.Fatal("expected sheet cached after miss")
	}
	second, err := cache.Read(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next.reads != 1 {
		t.Fatalf("expected 1 backing read, got %d", next.reads)
	}
	if first.FixedRate != 4.89 || second.FixedRate != 4.89 {
		t.Fatalf("expected fixed rate 4.89, got %v and %v", first.FixedRate, second.FixedRate)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := cache.Read(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.reads != 2 {
		t.Fatalf("expected backing read after expiry, got %d", next.reads)
	}
}

func TestCachedStoreWriteInvalidates(t *testing.T) {
	next := &fakeStore{sheet: &RateSheet{FixedRate: 5.5, VariableRate: 6, ThreeYearFixedRate: 5.7}}
	cache, mr := newCache(t, next)
	ctx := context.Background()

	if _, err := cache.Read(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.Write(ctx, RateSheet{FixedRate: 4.5, VariableRate: 5, ThreeYearFixedRate: 4.7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.Exists(cacheKey) {
		t.Fatal("expected cache entry removed on write")
	}

	got, err := cache.Read(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FixedRate != 4.5 {
		t.Fatalf("expected fresh rate 4.5, got %v", got.FixedRate)
	}
}

func TestCachedStoreDoesNotCacheMissingSheet(t *testing.T) {
	cache, mr := newCache(t, &fakeStore{})

	_, err := cache.Read(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if mr.Exists(cacheKey) {
		t.Fatal("expected nothing cached")
	}
}

func TestCachedStoreFallsBackWhenRedisDown(t *testing.T) {
	next := &fakeStore{sheet: &RateSheet{FixedRate: 5.1}}
	cache, mr := newCache(t, next)
	mr.Close()

	got, err := cache.Read(context.Background())
	if err != nil {
		t.Fatalf("expected fallback to backing store, got %v", err)
	}
	if got.FixedRate != 5.1 {
		t.Fatalf("expected 5.1, got %v", got.FixedRate)
	}
}

func TestServiceFixedRateDefaults(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()

	missing := NewService(&fakeStore{}, &recordingBus{}, 5.5, log)
	if got := missing.FixedRate(ctx); got != 5.5 {
		t.Fatalf("expected default 5.5 without sheet, got %v", got)
	}

	failing := NewService(&fakeStore{err: errors.New("db down")}, &recordingBus{}, 5.5, log)
	if got := failing.FixedRate(ctx); got != 5.5 {
		t.Fatalf("expected default 5.5 on error, got %v", got)
	}

	posted := NewService(&fakeStore{sheet: &RateSheet{FixedRate: 4.79}}, &recordingBus{}, 5.5, log)
	if got := posted.FixedRate(ctx); got != 4.79 {
		t.Fatalf("expected posted 4.79, got %v", got)
	}
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, validator.New())
	r := gin.New()
	r.GET("/api/rates", h.Get)
	r.PUT("/api/admin/rates", h.Update)
	return r
}

func TestGetRatesNotFound(t *testing.T) {
	r := newTestRouter(NewService(&fakeStore{}, &recordingBus{}, 5.5, logger.Discard()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateRatesPublishesAndReturnsSheet(t *testing.T) {
	bus := &recordingBus{}
	store := &fakeStore{}
	r := newTestRouter(NewService(store, bus, 5.5, logger.Discard()))

	body, _ := json.Marshal(UpdateRatesRequest{FixedRate: 4.84, VariableRate: 5.45, ThreeYearFixedRate: 4.94})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/admin/rates", bytes.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got RateSheet
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.FixedRate != 4.84 || got.UpdatedAt.IsZero() {
		t.Fatalf("unexpected sheet %+v", got)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	if _, ok := bus.published[0].(events.RatesUpdated); !ok {
		t.Fatalf("expected RatesUpdated, got %T", bus.published[0])
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rates", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after write, got %d", w.Code)
	}
}

func TestUpdateRatesValidation(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(NewService(store, &recordingBus{}, 5.5, logger.Discard()))

	body := []byte(`{"fixed_rate": 0, "variable_rate": 5, "three_year_fixed_rate": 120}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/admin/rates", bytes.NewReader(body)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if store.writes != 0 {
		t.Fatalf("expected no writes, got %d", store.writes)
	}
}
