package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rossellmestanza/menudigital/api/responses"
	"github.com/rossellmestanza/menudigital/api/validators"
	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/pkg/logger"
)

// CreateCategoryRequest is the admin payload to create a category.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=80"`
	Icon     string `json:"icon" validate:"max=16"`
	Position int    `json:"position" validate:"gte=0"`
	Active   *bool  `json:"active"`
}

// UpdateCategoryRequest carries partial category mutations; absent fields
// leave the stored value untouched.
type UpdateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=80"`
	Icon     *string `json:"icon" validate:"omitempty,max=16"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
	Active   *bool   `json:"active"`
}

// AdminListCategories returns every category, active or not.
func AdminListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// AdminCreateCategory wires category creation into the HTTP layer.
func AdminCreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		if body.Active != nil {
			active = *body.Active
		}
		created, err := svc.CreateCategory(r.Context(), catalog.CreateCategoryInput{
			Name:     body.Name,
			Icon:     body.Icon,
			Position: body.Position,
			Active:   active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminUpdateCategory applies a partial update to one category.
func AdminUpdateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body UpdateCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateCategory(r.Context(), chi.URLParam(r, "categoryID"), catalog.UpdateCategoryInput{
			Name:     body.Name,
			Icon:     body.Icon,
			Position: body.Position,
			Active:   body.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// AdminDeleteCategory removes a category and, via the schema cascade, its
// products.
func AdminDeleteCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCategory(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
