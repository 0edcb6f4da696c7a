package validators

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
)

// CartTokenHeader identifies the session cart on public endpoints.
const CartTokenHeader = "X-Cart-Token"

// CartTokenFromRequest extracts and validates the cart token header.
// An empty token is allowed; callers mint a new cart in that case.
func CartTokenFromRequest(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get(CartTokenHeader))
	if raw == "" {
		return "", nil
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid cart token").WithDetails(map[string]any{"field": CartTokenHeader})
	}
	return raw, nil
}
