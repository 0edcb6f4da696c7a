package controllers

import (
	"net/http"

	"github.com/rossellmestanza/menudigital/api/responses"
	"github.com/rossellmestanza/menudigital/api/validators"
	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/pkg/logger"
)

// UpdateConfigRequest carries partial storefront configuration mutations.
type UpdateConfigRequest struct {
	RestaurantName *string   `json:"restaurant_name" validate:"omitempty,min=1,max=120"`
	LogoURL        *string   `json:"logo_url" validate:"omitempty,url"`
	WelcomeMessage *string   `json:"welcome_message" validate:"omitempty,max=300"`
	Currency       *string   `json:"currency" validate:"omitempty,min=1,max=8"`
	WhatsAppNumber *string   `json:"whatsapp_number" validate:"omitempty,min=6,max=24"`
	Address        *string   `json:"address" validate:"omitempty,max=200"`
	Phone          *string   `json:"phone" validate:"omitempty,max=24"`
	Schedule       *string   `json:"schedule" validate:"omitempty,max=200"`
	PaymentMethods *[]string `json:"payment_methods"`
	FacebookURL    *string   `json:"facebook_url" validate:"omitempty,url"`
	InstagramURL   *string   `json:"instagram_url" validate:"omitempty,url"`
	TikTokURL      *string   `json:"tiktok_url" validate:"omitempty,url"`
	ThemeColor     *string   `json:"theme_color" validate:"omitempty,hexcolor"`
}

// AdminGetConfig returns the stored storefront configuration.
func AdminGetConfig(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.GetConfig(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cfg)
	}
}

// AdminUpdateConfig applies a partial update to the storefront configuration.
func AdminUpdateConfig(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body UpdateConfigRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateConfig(r.Context(), catalog.UpdateConfigInput{
			RestaurantName: body.RestaurantName,
			LogoURL:        body.LogoURL,
			WelcomeMessage: body.WelcomeMessage,
			Currency:       body.Currency,
			WhatsAppNumber: body.WhatsAppNumber,
			Address:        body.Address,
			Phone:          body.Phone,
			Schedule:       body.Schedule,
			PaymentMethods: body.PaymentMethods,
			FacebookURL:    body.FacebookURL,
			InstagramURL:   body.InstagramURL,
			TikTokURL:      body.TikTokURL,
			ThemeColor:     body.ThemeColor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
