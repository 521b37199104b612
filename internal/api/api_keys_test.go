package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type fakeKeyStore struct {
	created     []string
	deactivated []string
	createErr   error
	missing     bool
}

func (f *fakeKeyStore) Create(ctx context.Context, key string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, key)
	return nil
}

func (f *fakeKeyStore) Deactivate(ctx context.Context, key string) (int64, error) {
	if f.missing {
		return 0, nil
	}
	f.deactivated = append(f.deactivated, key)
	return 1, nil
}

func TestCreateAPIKeyReturnsFreshKey(t *testing.T) {
	store := &fakeKeyStore{}
	handler := CreateAPIKeyHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/admin/api-keys", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.created) != 1 {
		t.Fatalf("Expected 1 key created, got %d", len(store.created))
	}

	var body struct {
		Data struct {
			APIKey string `json:"api_key"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body.Data.APIKey != store.created[0] {
		t.Errorf("Response key %q does not match stored key %q", body.Data.APIKey, store.created[0])
	}
	if _, err := uuid.Parse(body.Data.APIKey); err != nil {
		t.Errorf("Key is not a uuid: %v", err)
	}
}

func TestCreateAPIKeyStoreFailure(t *testing.T) {
	handler := CreateAPIKeyHandler(&fakeKeyStore{createErr: errors.New("db down")})

	req := httptest.NewRequest(http.MethodPost, "/admin/api-keys", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}

func TestDeactivateAPIKey(t *testing.T) {
	store := &fakeKeyStore{}
	r := chi.NewRouter()
	r.Delete("/admin/api-keys/{key}", DeactivateAPIKeyHandler(store))

	req := httptest.NewRequest(http.MethodDelete, "/admin/api-keys/some-key", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if len(store.deactivated) != 1 || store.deactivated[0] != "some-key" {
		t.Errorf("Expected some-key deactivated, got %v", store.deactivated)
	}
}

func TestDeactivateAPIKeyUnknown(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/admin/api-keys/{key}", DeactivateAPIKeyHandler(&fakeKeyStore{missing: true}))

	req := httptest.NewRequest(http.MethodDelete, "/admin/api-keys/ghost", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown key, got %d", rec.Code)
	}
}
