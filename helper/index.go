package helper

import (
	"errors"
	"fmt"
	"room_booking/config"
	"room_booking/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BcryptHasher adapts HashPassword and CheckPasswordHash to the hasher the
// services depend on.
type BcryptHasher struct{}

func (BcryptHasher) Hash(plain string) (string, error) { return HashPassword(plain) }

func (BcryptHasher) Compare(plain, digest string) bool { return CheckPasswordHash(plain, digest) }

// TokenManager signs and parses HS256 access and refresh tokens. The two
// kinds use separate secrets.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenManager(cfg config.JWTSettings) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

func (m *TokenManager) GenerateAccessToken(claim model.TokenClaim) (string, error) {
	return m.sign(claim, tokenTypeAccess, m.accessTTL, m.accessSecret)
}

func (m *TokenManager) GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	return m.sign(claim, tokenTypeRefresh, m.refreshTTL, m.refreshSecret)
}

// Issue creates a fresh access/refresh pair for u.
func (m *TokenManager) Issue(u model.User) (model.TokenData, error) {
	claim := model.TokenClaim{UserID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
	access, err := m.GenerateAccessToken(claim)
	if err != nil {
		return model.TokenData{}, err
	}
	refresh, err := m.GenerateRefreshToken(claim)
	if err != nil {
		return model.TokenData{}, err
	}
	return model.TokenData{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *TokenManager) ParseAccessToken(token string) (model.TokenClaim, error) {
	return m.parse(token, tokenTypeAccess, m.accessSecret)
}

func (m *TokenManager) ParseRefreshToken(token string) (model.TokenClaim, error) {
	return m.parse(token, tokenTypeRefresh, m.refreshSecret)
}

func (m *TokenManager) sign(claim model.TokenClaim, typ string, ttl time.Duration, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  claim.UserID.String(),
		"email":   claim.Email,
		"isAdmin": claim.IsAdmin,
		"typ":     typ,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

func (m *TokenManager) parse(tokenString, typ string, secret []byte) (model.TokenClaim, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(m.now))
	if err != nil {
		return model.TokenClaim{}, err
	}
	if !token.Valid {
		return model.TokenClaim{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, errors.New("invalid token claims")
	}
	if t, _ := claims["typ"].(string); t != typ {
		return model.TokenClaim{}, fmt.Errorf("expected %s token", typ)
	}
	rawID, _ := claims["userId"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return model.TokenClaim{}, fmt.Errorf("invalid userId claim: %w", err)
	}
	email, _ := claims["email"].(string)
	isAdmin, _ := claims["isAdmin"].(bool)
	return model.TokenClaim{UserID: id, Email: email, IsAdmin: isAdmin}, nil
}
