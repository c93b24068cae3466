package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type fakeIdempotencyStore struct {
	values map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{values: map[string]string{}}
}

func (f *fakeIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = fmt.Sprint(value)
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "tc:idempotency:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func submitRouter(store *fakeIdempotencyStore, calls *int) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	r.Post("/api/v1/group-orders/{groupOrderId}/submit", func(w http.ResponseWriter, req *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"call":` + fmt.Sprint(*calls) + `}}`))
	})
	return r
}

func TestIdempotencyReplaysFirstResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	router := submitRouter(store, &calls)
	target := "/api/v1/group-orders/" + uuid.NewString() + "/submit"

	first := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{}`))
	first.Header.Set("Idempotency-Key", "key-1")
	firstResp := httptest.NewRecorder()
	router.ServeHTTP(firstResp, first)

	second := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{}`))
	second.Header.Set("Idempotency-Key", "key-1")
	secondResp := httptest.NewRecorder()
	router.ServeHTTP(secondResp, second)

	if calls != 1 {
		t.Fatalf("expected the handler to run once, ran %d times", calls)
	}
	if firstResp.Body.String() != secondResp.Body.String() {
		t.Fatalf("expected identical bodies, got %q and %q", firstResp.Body.String(), secondResp.Body.String())
	}
	if secondResp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", secondResp.Code)
	}
}

func TestIdempotencyMissingKey(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	router := submitRouter(store, &calls)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/group-orders/"+uuid.NewString()+"/submit", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if calls != 0 {
		t.Fatal("handler should not run without an idempotency key")
	}
}

func TestIdempotencyKeyReuseDifferentBody(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	router := submitRouter(store, &calls)
	target := "/api/v1/group-orders/" + uuid.NewString() + "/submit"

	first := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"a":1}`))
	first.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"a":2}`))
	second.Header.Set("Idempotency-Key", "key-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, second)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	if calls != 1 {
		t.Fatalf("expected one handler run, got %d", calls)
	}
}

func TestIdempotencyIgnoresUnlistedRoutes(t *testing.T) {
	store := newFakeIdempotencyStore()
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	calls := 0
	r.Get("/api/v1/stock", func(w http.ResponseWriter, req *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stock", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", resp.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("expected both requests handled, got %d", calls)
	}
}
