package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"devdeck/internal/domain"
)

const (
	sessionKey      = "session"
	defaultTokenTTL = 24 * time.Hour
	tokenIssuerName = "devdeck"
)

var errInvalidToken = errors.New("invalid or expired token")

// Session identifies the caller of one request.
type Session struct {
	UserID   int64
	Username string
	Guest    bool
	// GuestID is stable for the lifetime of a guest token.
	GuestID string
}

// Owner is the key used for per-caller state that does not live in the database.
func (s *Session) Owner() string {
	if s.Guest {
		return "guest:" + s.GuestID
	}
	return "user:" + strconv.FormatInt(s.UserID, 10)
}

type tokenClaims struct {
	Username string `json:"username,omitempty"`
	Guest    bool   `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenIssuer(secret string, ttl time.Duration, now func() time.Time) *tokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &tokenIssuer{secret: []byte(secret), ttl: ttl, now: now}
}

func (t *tokenIssuer) issue(s Session) (string, time.Time, error) {
	if len(t.secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret is not configured")
	}
	now := t.now()
	expires := now.Add(t.ttl)
	subject := strconv.FormatInt(s.UserID, 10)
	if s.Guest {
		subject = "guest:" + s.GuestID
	}
	claims := tokenClaims{
		Username: s.Username,
		Guest:    s.Guest,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuerName,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

func (t *tokenIssuer) parse(raw string) (*Session, error) {
	if len(t.secret) == 0 {
		return nil, errInvalidToken
	}
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuerName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, errInvalidToken
	}

	if claims.Guest {
		id, ok := strings.CutPrefix(claims.Subject, "guest:")
		if !ok || id == "" {
			return nil, errInvalidToken
		}
		return &Session{Guest: true, GuestID: id, Username: claims.Username}, nil
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, errInvalidToken
	}
	return &Session{UserID: userID, Username: claims.Username}, nil
}

// authenticate attaches the session for a valid bearer token. Requests
// without a token continue anonymously; a malformed or expired token is rejected.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}
		session, err := h.tokens.parse(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}

// requireSession admits signed-in users and guests.
func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// requireUser admits signed-in users only. Guests get 403.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessionFrom(c)
		if s == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if s.Guest {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "guests cannot access saved data, sign in to continue"})
			return
		}
		c.Next()
	}
}

// userID is only valid behind requireUser.
func userID(c *gin.Context) int64 {
	return sessionFrom(c).UserID
}

type credentialsRequest struct {
	Username         string `json:"username" binding:"required"`
	Password         string `json:"password" binding:"required"`
	RegisterPassword string `json:"registerPassword"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt string        `json:"expiresAt"`
	Guest     bool          `json:"guest"`
	User      *UserResponse `json:"user,omitempty"`
}

func userToResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func (h *Handler) respondWithToken(c *gin.Context, status int, s Session, user *domain.User) {
	token, expires, err := h.tokens.issue(s)
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := AuthResponse{Token: token, ExpiresAt: formatTime(expires), Guest: s.Guest}
	if user != nil {
		resp.User = userToResponse(user)
	}
	c.JSON(status, resp)
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, err := h.Users.Register(c.Request.Context(), req.Username, req.Password, req.RegisterPassword)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, Session{UserID: user.ID, Username: user.Username}, user)
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, err := h.Users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, Session{UserID: user.ID, Username: user.Username}, user)
}

func (h *Handler) demoLogin(c *gin.Context) {
	if h.Demo == nil || !h.Demo.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "demo mode is disabled"})
		return
	}
	user, err := h.Demo.Login(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, Session{UserID: user.ID, Username: user.Username}, user)
}

func (h *Handler) guestLogin(c *gin.Context) {
	h.respondWithToken(c, http.StatusOK, Session{Guest: true, GuestID: uuid.NewString(), Username: "guest"}, nil)
}

func (h *Handler) me(c *gin.Context) {
	s := sessionFrom(c)
	if s.Guest {
		c.JSON(http.StatusOK, gin.H{"guest": true, "username": s.Username})
		return
	}
	user, err := h.Users.GetByID(c.Request.Context(), s.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guest": false, "user": userToResponse(user)})
}
