package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/internal/menu"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
)

type stubSnapshot struct {
	snap catalog.Snapshot
}

func (s stubSnapshot) Snapshot() catalog.Snapshot { return s.snap }

func TestMenuServesReadySnapshot(t *testing.T) {
	src := stubSnapshot{snap: catalog.Snapshot{
		State: catalog.StateReady,
		Categories: []catalog.CategoryDTO{
			{ID: "c1", Name: "Hamburguesas", Icon: "🍔", Products: []menu.Product{{ID: "p1", Name: "Clásica", PriceCents: 1500}}},
		},
		Config:   catalog.ConfigDTO{RestaurantName: "La Esquina", Currency: "S/"},
		LoadedAt: time.Now(),
	}}
	handler := Menu(src, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	data := decodeData(t, rec)
	cfg, ok := data["config"].(map[string]any)
	if !ok || cfg["restaurant_name"] != "La Esquina" {
		t.Fatalf("unexpected config payload: %v", data["config"])
	}
	categories, ok := data["categories"].([]any)
	if !ok || len(categories) != 1 {
		t.Fatalf("unexpected categories payload: %v", data["categories"])
	}
}

func TestMenuWhileLoading(t *testing.T) {
	src := stubSnapshot{snap: catalog.Snapshot{State: catalog.StateLoading}}
	handler := Menu(src, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	code, _ := decodeError(t, rec)
	if code != string(pkgerrors.CodeDependency) {
		t.Fatalf("unexpected error code: %s", code)
	}
}

func TestMenuAfterLoadFailure(t *testing.T) {
	src := stubSnapshot{snap: catalog.Snapshot{State: catalog.StateFailed}}
	handler := Menu(src, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestMenuCategoriesAndProducts(t *testing.T) {
	src := stubSnapshot{snap: catalog.Snapshot{
		State: catalog.StateReady,
		Categories: []catalog.CategoryDTO{
			{ID: "c1", Name: "Hamburguesas", Products: []menu.Product{{ID: "p1", Name: "Clásica", PriceCents: 1500}}},
			{ID: "c2", Name: "Bebidas", Products: []menu.Product{{ID: "p2", Name: "Limonada", PriceCents: 500}}},
		},
	}}

	rec := httptest.NewRecorder()
	MenuCategories(src, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/menu/categories", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var catEnvelope struct {
		Data []catalog.CategoryDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &catEnvelope); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(catEnvelope.Data) != 2 || catEnvelope.Data[0].Name != "Hamburguesas" {
		t.Fatalf("unexpected categories: %+v", catEnvelope.Data)
	}

	rec = httptest.NewRecorder()
	MenuProducts(src, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/menu/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var prodEnvelope struct {
		Data []menu.Product `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &prodEnvelope); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(prodEnvelope.Data) != 2 || prodEnvelope.Data[1].ID != "p2" {
		t.Fatalf("products must follow category order: %+v", prodEnvelope.Data)
	}
}

func TestMenuProductsWhileLoading(t *testing.T) {
	src := stubSnapshot{snap: catalog.Snapshot{State: catalog.StateLoading}}

	rec := httptest.NewRecorder()
	MenuProducts(src, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/menu/products", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestMenuConfigOnly(t *testing.T) {
	src := stubSnapshot{snap: catalog.Snapshot{
		State:  catalog.StateReady,
		Config: catalog.ConfigDTO{RestaurantName: "La Esquina", WhatsAppNumber: "51999888777"},
	}}
	handler := MenuConfig(src, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu/config", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	data := decodeData(t, rec)
	if data["whatsapp_number"] != "51999888777" {
		t.Fatalf("unexpected payload: %v", data)
	}
}
