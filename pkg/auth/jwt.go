package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds the validator settings.
type JWTConfig struct {
	SecretKey string
	Issuer    string
}

// tokenClaims is the raw JWT payload. The role list travels in a custom
// claim; everything else follows RFC 7519 registered claims.
type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTValidator verifies HS256 bearer tokens issued by the identity
// collaborator and converts them into typed Claims.
type JWTValidator struct {
	secretKey []byte
	issuer    string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg JWTConfig) (*JWTValidator, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}
	return &JWTValidator{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
	}, nil
}

// Validate parses and verifies a bearer token and returns the caller identity.
func (v *JWTValidator) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secretKey, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	raw, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if raw.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	roles := make([]Role, 0, len(raw.Roles))
	for _, r := range raw.Roles {
		roles = append(roles, Role(r))
	}
	if len(roles) == 0 {
		roles = append(roles, RoleUser)
	}

	return &Claims{Subject: raw.Subject, Roles: roles}, nil
}
