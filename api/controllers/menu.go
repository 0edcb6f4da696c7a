package controllers

import (
	"net/http"

	"github.com/rossellmestanza/menudigital/api/responses"
	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/internal/menu"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"github.com/rossellmestanza/menudigital/pkg/logger"
)

type snapshotSource interface {
	Snapshot() catalog.Snapshot
}

// Menu serves the public storefront: categories with their products plus
// the restaurant configuration, all from the in-memory snapshot.
func Menu(src snapshotSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := src.Snapshot()
		switch snap.State {
		case catalog.StateReady:
		case catalog.StateLoading:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "menu is still loading"))
			return
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "menu is unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"config":     snap.Config,
			"categories": snap.Categories,
		})
	}
}

// MenuCategories serves the category tree without the storefront config.
func MenuCategories(src snapshotSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := src.Snapshot()
		if snap.State != catalog.StateReady {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "menu is unavailable"))
			return
		}
		responses.WriteSuccess(w, snap.Categories)
	}
}

// MenuProducts serves a flat product list in category order.
func MenuProducts(src snapshotSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := src.Snapshot()
		if snap.State != catalog.StateReady {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "menu is unavailable"))
			return
		}

		products := make([]menu.Product, 0, len(snap.Products))
		for _, cat := range snap.Categories {
			products = append(products, cat.Products...)
		}
		responses.WriteSuccess(w, products)
	}
}

// MenuConfig serves only the storefront configuration.
func MenuConfig(src snapshotSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := src.Snapshot()
		if snap.State != catalog.StateReady {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "menu is unavailable"))
			return
		}
		responses.WriteSuccess(w, snap.Config)
	}
}
