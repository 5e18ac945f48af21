package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const actorContextKey = "actorID"

var (
	ErrMissingBearerToken = errors.New("missing bearer token")
	ErrInvalidActor       = errors.New("token does not name an actor")
)

// ActorClaims is the access token issued by the authentication service. UserID is the
// actor recorded on every change.
type ActorClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// ActorMiddleware verifies an HMAC signed bearer token and stores the actor id on the
// echo context.
type ActorMiddleware struct {
	secret []byte
	logger *zap.Logger
}

func NewActorMiddleware(secret string, logger *zap.Logger) *ActorMiddleware {
	return &ActorMiddleware{secret: []byte(secret), logger: logger}
}

func (m *ActorMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actorID, err := m.actor(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			m.logger.Debug("request rejected", zap.String("path", c.Path()), zap.Error(err))
			return c.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "Unauthorized"))
		}

		c.Set(actorContextKey, actorID)
		return next(c)
	}
}

func (m *ActorMiddleware) actor(header string) (int64, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return 0, ErrMissingBearerToken
	}

	claims := &ActorClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	if claims.UserID <= 0 {
		return 0, ErrInvalidActor
	}
	return claims.UserID, nil
}

// ActorID returns the actor stored by ActorMiddleware.
func ActorID(c echo.Context) (int64, bool) {
	id, ok := c.Get(actorContextKey).(int64)
	return id, ok
}
