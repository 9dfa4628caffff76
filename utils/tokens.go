package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/exp/rand"

	"aquaBack/internal/models"
)

type Manager struct {
	signingKey string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(signingKey string, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}
	return &Manager{signingKey: signingKey, accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// NewJWT issues an access token carrying the user's id, role and tenant.
func (m *Manager) NewJWT(userID int, role string, businessID int) (string, error) {
	claims := models.Claims{
		UserID:     userID,
		Role:       role,
		BusinessID: businessID,
	}
	claims.ExpiresAt = time.Now().Add(m.accessTTL).Unix()
	claims.Subject = fmt.Sprint(userID)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.signingKey))
}

func (m *Manager) Parse(accessToken string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.signingKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (m *Manager) NewRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}
