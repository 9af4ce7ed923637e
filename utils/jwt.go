package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// Claims is what a verified token says about its bearer.
type Claims struct {
	UserID   uint
	UserRole string
}

type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// GenerateTokens issues an access and a refresh token for the user.
func (m *TokenManager) GenerateTokens(userRole string, userID uint) (string, string, error) {
	access, err := m.sign(userRole, userID, accessTokenType, m.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := m.sign(userRole, userID, refreshTokenType, m.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ValidateToken verifies an access token.
func (m *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, accessTokenType)
}

// RefreshTokens exchanges a valid refresh token for a new token pair.
func (m *TokenManager) RefreshTokens(oldRefreshToken string) (string, string, error) {
	claims, err := m.parse(oldRefreshToken, refreshTokenType)
	if err != nil {
		return "", "", err
	}
	return m.GenerateTokens(claims.UserRole, claims.UserID)
}

func (m *TokenManager) sign(userRole string, userID uint, tokenType string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_role":  userRole,
		"id":         userID,
		"token_type": tokenType,
		"exp":        time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

func (m *TokenManager) parse(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if t, _ := claims["token_type"].(string); t != tokenType {
		return nil, fmt.Errorf("expected %s token", tokenType)
	}

	role, ok := claims["user_role"].(string)
	if !ok {
		return nil, errors.New("role not found in token")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, errors.New("id not found or invalid type")
	}
	return &Claims{UserID: uint(id), UserRole: role}, nil
}
