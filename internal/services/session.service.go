package services

import (
	"context"
	"time"

	"renhold/config"
	"renhold/internal/database"
	"renhold/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const SESSION_CACHE_PREFIX = "session:"

// Session is the server-side record backing a token. Deleting it revokes the
// token before its JWT expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionService struct {
	db     database.DB
	config config.Config
	ttl    time.Duration
	log    logger.Logger
}

func NewSessionService(db database.DB, config config.Config) *SessionService {
	return &SessionService{
		db:     db,
		config: config,
		ttl:    time.Duration(config.SessionTTLHours) * time.Hour,
		log:    logger.New("SessionService"),
	}
}

// Create issues a signed token for the user and records the session in the
// cache under the token's jti claim.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	log := s.log.Function("Create")

	session := Session{
		ID:        uuid.New().String(),
		UserID:    userID.String(),
		ExpiresAt: time.Now().Add(s.ttl),
	}

	claims := jwt.MapClaims{
		"sub": session.UserID,
		"jti": session.ID,
		"iat": time.Now().Unix(),
		"exp": session.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", log.Err("failed to sign session token", err, "userID", userID)
	}

	cacheKey := SESSION_CACHE_PREFIX + session.ID
	if err := database.NewCacheBuilder(s.db.Cache.Session, cacheKey).
		WithStruct(session).
		WithTTL(s.ttl).
		WithContext(ctx).
		Set(); err != nil {
		return "", log.Err("failed to store session", err, "userID", userID)
	}

	return tokenString, nil
}

// Validate parses and verifies a token, then checks the backing session still
// exists. Returns the ID of the authenticated user.
func (s *SessionService) Validate(ctx context.Context, tokenString string) (uuid.UUID, error) {
	log := s.log.Function("Validate")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, log.Err("failed to parse session token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, log.ErrMsg("unexpected token claims type")
	}

	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return uuid.Nil, log.ErrMsg("token missing session id")
	}

	var session Session
	found, err := database.NewCacheBuilder(s.db.Cache.Session, SESSION_CACHE_PREFIX+sessionID).
		WithContext(ctx).
		Get(&session)
	if err != nil {
		return uuid.Nil, log.Err("failed to load session", err, "sessionID", sessionID)
	}
	if !found {
		return uuid.Nil, log.ErrMsg("session expired or revoked")
	}

	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		return uuid.Nil, log.Err("invalid user id in session", err, "sessionID", sessionID)
	}

	return userID, nil
}

// Revoke deletes the session backing the token. An already-expired or
// malformed token is not an error for logout purposes.
func (s *SessionService) Revoke(ctx context.Context, tokenString string) error {
	log := s.log.Function("Revoke")

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		log.Warn("failed to parse token during revoke", "error", err)
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return nil
	}

	if err := database.NewCacheBuilder(s.db.Cache.Session, SESSION_CACHE_PREFIX+sessionID).
		WithContext(ctx).
		Delete(); err != nil {
		return log.Err("failed to delete session", err, "sessionID", sessionID)
	}

	return nil
}
