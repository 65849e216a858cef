package middleware

import (
	"errors"
	"net/http"
	"strings"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"
	"invoicetracker/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const userContextKey = "currentUser"

var (
	errMissingToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or malformed bearer token", http.StatusUnauthorized)
	errInvalidToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid or expired token", http.StatusUnauthorized)
	errUnknownUser  = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Unknown or deactivated user", http.StatusUnauthorized)
	errAdminOnly    = pkg.NewDomainErrorSimple("FORBIDDEN", "Administrator role required", http.StatusForbidden)
)

// AuthMiddleware authenticates requests with an HS256 bearer token carrying a
// "username" claim and resolves the acting user against the user store on
// every request, so deactivating a user revokes access immediately.
type AuthMiddleware struct {
	users  interfaces.IUserRepository
	secret []byte
	log    zerolog.Logger
}

func NewAuthMiddleware(users interfaces.IUserRepository, secret string, log zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{users: users, secret: []byte(secret), log: log}
}

func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}

		username, err := m.parseUsername(strings.TrimSpace(token))
		if err != nil {
			m.log.Debug().Err(err).Msg("rejected bearer token")
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}

		user, err := m.users.GetByUsername(c.Request.Context(), username)
		if err != nil {
			m.log.Warn().Err(err).Str("username", username).Msg("user lookup failed during authentication")
			c.AbortWithStatusJSON(errUnknownUser.HTTPStatus, errUnknownUser.ToHTTPError())
			return
		}
		if user.ID == 0 || !user.Active {
			c.AbortWithStatusJSON(errUnknownUser.HTTPStatus, errUnknownUser.ToHTTPError())
			return
		}

		SetCurrentUser(c, &user)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(errAdminOnly.HTTPStatus, errAdminOnly.ToHTTPError())
			return
		}
		c.Next()
	}
}

// SetCurrentUser attaches the acting user to the request context.
func SetCurrentUser(c *gin.Context, user *entities.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the authenticated user, or nil outside an
// authenticated request.
func CurrentUser(c *gin.Context) *entities.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := v.(*entities.User)
	if !ok {
		return nil
	}
	return user
}

func (m *AuthMiddleware) parseUsername(raw string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", errors.New("token has no username claim")
	}
	return username, nil
}
