package models

import (
	"time"

	"github.com/lib/pq"
)

// RestaurantConfig is the single-row storefront configuration.
type RestaurantConfig struct {
	ID             string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RestaurantName string         `gorm:"not null" json:"restaurant_name"`
	LogoURL        string         `json:"logo_url"`
	WelcomeMessage string         `json:"welcome_message"`
	Currency       string         `gorm:"not null" json:"currency"`
	WhatsAppNumber string         `gorm:"not null" json:"whatsapp_number"`
	Address        string         `json:"address"`
	Phone          string         `json:"phone"`
	Schedule       string         `json:"schedule"`
	PaymentMethods pq.StringArray `gorm:"type:text[]" json:"payment_methods"`
	FacebookURL    string         `json:"facebook_url"`
	InstagramURL   string         `json:"instagram_url"`
	TikTokURL      string         `json:"tiktok_url"`
	ThemeColor     string         `json:"theme_color"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (RestaurantConfig) TableName() string { return "restaurant_config" }

// Storefront defaults applied when no configuration row exists yet.
const (
	DefaultRestaurantName = "Mi Restaurante"
	DefaultCurrency       = "S/"
	DefaultWhatsAppNumber = "51999999999"
	DefaultWelcomeMessage = "¡Bienvenido a nuestro menú digital!"
)

// DefaultRestaurantConfig returns the bootstrap configuration row.
func DefaultRestaurantConfig() RestaurantConfig {
	return RestaurantConfig{
		RestaurantName: DefaultRestaurantName,
		Currency:       DefaultCurrency,
		WhatsAppNumber: DefaultWhatsAppNumber,
		WelcomeMessage: DefaultWelcomeMessage,
		PaymentMethods: pq.StringArray{"Efectivo", "Yape", "Plin"},
	}
}
