package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the terminal access token carries. The upstream bearer
// token never leaves the server; the browser only ever holds this JWT.
type Claims struct {
	SessionID string
	UserID    int
	Role      int
}

func SignAccessToken(sessionID string, userID, role int, expUnix int64, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sessionID,
		"sub":  userID,
		"role": role,
		"exp":  expUnix,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func ParseAccessToken(raw string, secret []byte) (*Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("cannot parse claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok {
		return nil, fmt.Errorf("access token missing sid")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("access token missing sub")
	}
	role, ok := claims["role"].(float64)
	if !ok {
		return nil, fmt.Errorf("access token missing role")
	}

	return &Claims{SessionID: sid, UserID: int(sub), Role: int(role)}, nil
}
