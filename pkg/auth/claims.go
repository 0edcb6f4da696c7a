package auth

import "github.com/golang-jwt/jwt/v5"

// AdminTokenPayload captures the data available when minting a JWT.
type AdminTokenPayload struct {
	AdminID  string
	Username string
	JTI      string
}

// AdminTokenClaims represents the typed JWT issued to back-office users.
type AdminTokenClaims struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
