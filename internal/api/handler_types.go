package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pverlaine/convene/internal/services"
	"github.com/pverlaine/convene/internal/store"
)

type Handler struct {
	store        store.Store
	secretKey    []byte
	location     *time.Location
	cookieSecure bool

	auth         *services.AuthService
	decisions    *services.DecisionService
	availability *services.AvailabilityService
}

const (
	authCookieName = "convene_token"
	contextUserKey = "currentUser"

	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type authClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func NewHandler(backingStore store.Store, secretKey []byte, location *time.Location, cookieSecure bool) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		store:        backingStore,
		secretKey:    secretKey,
		location:     location,
		cookieSecure: cookieSecure,
		auth:         services.NewAuthService(backingStore),
		decisions:    services.NewDecisionService(backingStore),
		availability: services.NewAvailabilityService(backingStore),
	}
}
