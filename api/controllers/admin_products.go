package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rossellmestanza/menudigital/api/responses"
	"github.com/rossellmestanza/menudigital/api/validators"
	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/pkg/db/models"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"github.com/rossellmestanza/menudigital/pkg/logger"
	"github.com/rossellmestanza/menudigital/pkg/money"
)

// CreateProductRequest is the admin payload to create a product. Price is a
// decimal string ("18.50") converted to centimos at the boundary.
type CreateProductRequest struct {
	CategoryID  string              `json:"category_id" validate:"required,uuid"`
	Name        string              `json:"name" validate:"required,min=1,max=120"`
	Description string              `json:"description" validate:"max=500"`
	Price       string              `json:"price" validate:"required"`
	ImageURL    string              `json:"image_url" validate:"omitempty,url"`
	Variables   models.VariableList `json:"variables"`
	Extras      models.ExtraList    `json:"extras"`
	Position    int                 `json:"position" validate:"gte=0"`
	Active      *bool               `json:"active"`
}

// UpdateProductRequest carries partial product mutations.
type UpdateProductRequest struct {
	CategoryID  *string              `json:"category_id" validate:"omitempty,uuid"`
	Name        *string              `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string              `json:"description" validate:"omitempty,max=500"`
	Price       *string              `json:"price"`
	ImageURL    *string              `json:"image_url" validate:"omitempty,url"`
	Variables   *models.VariableList `json:"variables"`
	Extras      *models.ExtraList    `json:"extras"`
	Position    *int                 `json:"position" validate:"omitempty,gte=0"`
	Active      *bool                `json:"active"`
}

// AdminListProducts returns every product, active or not.
func AdminListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// AdminCreateProduct wires product creation into the HTTP layer.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		priceCents, err := money.ParseToCents(body.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		active := true
		if body.Active != nil {
			active = *body.Active
		}
		created, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			CategoryID:  body.CategoryID,
			Name:        body.Name,
			Description: body.Description,
			PriceCents:  priceCents,
			ImageURL:    body.ImageURL,
			Variables:   body.Variables,
			Extras:      body.Extras,
			Position:    body.Position,
			Active:      active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminUpdateProduct applies a partial update to one product.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body UpdateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			CategoryID:  body.CategoryID,
			Name:        body.Name,
			Description: body.Description,
			ImageURL:    body.ImageURL,
			Variables:   body.Variables,
			Extras:      body.Extras,
			Position:    body.Position,
			Active:      body.Active,
		}
		if body.Price != nil {
			priceCents, err := money.ParseToCents(*body.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
				return
			}
			input.PriceCents = &priceCents
		}

		updated, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// AdminDeleteProduct removes a product.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
