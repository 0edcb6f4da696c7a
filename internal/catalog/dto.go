package catalog

import (
	"github.com/rossellmestanza/menudigital/internal/menu"
	"github.com/rossellmestanza/menudigital/pkg/db/models"
)

// CategoryDTO is the public shape of a category with its products.
type CategoryDTO struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Icon     string         `json:"icon"`
	Position int            `json:"position"`
	Active   bool           `json:"active"`
	Products []menu.Product `json:"products"`
}

// ConfigDTO is the public shape of the storefront configuration.
type ConfigDTO struct {
	RestaurantName string   `json:"restaurant_name"`
	LogoURL        string   `json:"logo_url"`
	WelcomeMessage string   `json:"welcome_message"`
	Currency       string   `json:"currency"`
	WhatsAppNumber string   `json:"whatsapp_number"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	Schedule       string   `json:"schedule"`
	PaymentMethods []string `json:"payment_methods"`
	FacebookURL    string   `json:"facebook_url"`
	InstagramURL   string   `json:"instagram_url"`
	TikTokURL      string   `json:"tiktok_url"`
	ThemeColor     string   `json:"theme_color"`
}

// toMenuProduct converts the persistence model into the engine shape.
func toMenuProduct(m models.Product) menu.Product {
	variables := make([]menu.Variable, 0, len(m.Variables))
	for _, v := range m.Variables {
		options := make([]menu.Option, 0, len(v.Options))
		for _, o := range v.Options {
			options = append(options, menu.Option{
				Name:               o.Name,
				PriceModifierCents: o.PriceModifierCents,
			})
		}
		variables = append(variables, menu.Variable{
			Name:     v.Name,
			Required: v.Required,
			Options:  options,
		})
	}

	extras := make([]menu.Extra, 0, len(m.Extras))
	for _, e := range m.Extras {
		extras = append(extras, menu.Extra{
			Name:       e.Name,
			PriceCents: e.PriceCents,
		})
	}

	return menu.Product{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		ImageURL:    m.ImageURL,
		Variables:   variables,
		Extras:      extras,
		Position:    m.Position,
		Active:      m.Active,
	}
}

func toConfigDTO(m models.RestaurantConfig) ConfigDTO {
	return ConfigDTO{
		RestaurantName: m.RestaurantName,
		LogoURL:        m.LogoURL,
		WelcomeMessage: m.WelcomeMessage,
		Currency:       m.Currency,
		WhatsAppNumber: m.WhatsAppNumber,
		Address:        m.Address,
		Phone:          m.Phone,
		Schedule:       m.Schedule,
		PaymentMethods: append([]string{}, m.PaymentMethods...),
		FacebookURL:    m.FacebookURL,
		InstagramURL:   m.InstagramURL,
		TikTokURL:      m.TikTokURL,
		ThemeColor:     m.ThemeColor,
	}
}
