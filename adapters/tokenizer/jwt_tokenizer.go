package tokenizer

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/propstack/walletgate/core"
	"github.com/propstack/walletgate/ports"
)

const (
	// TokenTypeAccess is the token_type claim for session tokens.
	TokenTypeAccess = "access"

	// AuthMethodWallet is the auth_method claim for wallet-signature sessions.
	AuthMethodWallet = "wallet-signature"
)

var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// JWTTokenizer implements the Tokenizer interface using HMAC-signed JWTs.
// Tokens are stateless: validity is fully determined by the signature and
// the exp claim, so there is no revocation short of rotating the secret.
type JWTTokenizer struct {
	secret []byte
	method jwt.SigningMethod
}

// NewJWTTokenizer creates a tokenizer signing with the given symmetric
// secret. algorithm must be one of HS256, HS384 or HS512.
func NewJWTTokenizer(secret []byte, algorithm string) (ports.Tokenizer, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret must not be empty")
	}
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &JWTTokenizer{secret: secret, method: method}, nil
}

// SessionToToken converts a Session to a signed JWT
func (j *JWTTokenizer) SessionToToken(session *core.Session) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Address,
			ID:        session.ID,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
		Address:    session.Address,
		TokenType:  session.TokenType,
		AuthMethod: session.AuthMethod,
	}

	token := jwt.NewWithClaims(j.method, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// TokenToSession verifies a JWT and returns the Session it carries
func (j *JWTTokenizer) TokenToSession(tokenStr string) (*core.Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, core.ErrInvalidToken
	}

	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, core.ErrInvalidToken
	}
	if claims.Subject == "" || claims.TokenType != TokenTypeAccess ||
		claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, core.ErrInvalidToken
	}

	address := claims.Address
	if address == "" {
		address = claims.Subject
	}

	return &core.Session{
		ID:         claims.ID,
		Address:    address,
		TokenType:  claims.TokenType,
		AuthMethod: claims.AuthMethod,
		IssuedAt:   claims.IssuedAt.Time,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
