package controllers

import (
	"net/http"

	"github.com/rossellmestanza/menudigital/api/responses"
	"github.com/rossellmestanza/menudigital/api/validators"
	"github.com/rossellmestanza/menudigital/internal/cart"
	"github.com/rossellmestanza/menudigital/internal/menu"
	"github.com/rossellmestanza/menudigital/internal/order"
	"github.com/rossellmestanza/menudigital/pkg/logger"
)

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID string            `json:"product_id" validate:"required"`
	Variables map[string]string `json:"variables"`
	Extras    []string          `json:"extras"`
	Quantity  int               `json:"quantity" validate:"gte=0"`
}

// UpdateItemRequest changes the quantity of a cart line.
type UpdateItemRequest struct {
	LineKey  string `json:"line_key" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// RemoveItemRequest drops one cart line.
type RemoveItemRequest struct {
	LineKey string `json:"line_key" validate:"required"`
}

// CheckoutRequest finishes the cart into a WhatsApp order.
type CheckoutRequest struct {
	OrderType     string `json:"order_type" validate:"required,oneof=delivery llevar mesa"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Reference     string `json:"reference"`
	PaymentMethod string `json:"payment_method"`
	Observations  string `json:"observations"`
	Table         string `json:"table"`
}

func cartPayload(token string, c *menu.Cart) map[string]any {
	return map[string]any{
		"token":       token,
		"lines":       c.Lines,
		"total_cents": c.TotalCents(),
		"item_count":  c.ItemCount(),
	}
}

// CartGet returns the cart for the current token, minting one when absent.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := validators.CartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, c, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(validators.CartTokenHeader, token)
		responses.WriteSuccess(w, cartPayload(token, c))
	}
}

// CartAddItem validates the customization and adds the product.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := validators.CartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body AddItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, c, err := svc.AddItem(r.Context(), token, cart.AddItemInput{
			ProductID: body.ProductID,
			Selection: menu.Selection{Variables: body.Variables, Extras: body.Extras},
			Quantity:  body.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(validators.CartTokenHeader, token)
		responses.WriteSuccessStatus(w, http.StatusCreated, cartPayload(token, c))
	}
}

// CartUpdateItem sets a line quantity; zero removes the line.
func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := validators.CartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body UpdateItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := svc.UpdateQuantity(r.Context(), token, body.LineKey, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(validators.CartTokenHeader, token)
		responses.WriteSuccess(w, cartPayload(token, c))
	}
}

// CartRemoveItem drops one line.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := validators.CartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body RemoveItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := svc.RemoveItem(r.Context(), token, body.LineKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(validators.CartTokenHeader, token)
		responses.WriteSuccess(w, cartPayload(token, c))
	}
}

// CartClear empties the cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := validators.CartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := svc.Clear(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(validators.CartTokenHeader, token)
		responses.WriteSuccess(w, cartPayload(token, c))
	}
}

// CartCheckout renders the WhatsApp order from the cart.
func CartCheckout(svc order.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := validators.CartTokenFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body CheckoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), token, order.CheckoutInput{
			Type: order.Type(body.OrderType),
			Customer: order.Customer{
				Name:          body.Name,
				Phone:         body.Phone,
				Address:       body.Address,
				Reference:     body.Reference,
				PaymentMethod: body.PaymentMethod,
				Observations:  body.Observations,
				Table:         body.Table,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
