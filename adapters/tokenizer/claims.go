package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims combines standard claims with wallet-session ones. The claim
// set is fixed: anything a token carries beyond these fields is ignored, and
// a token missing the required fields is rejected at validation.
type SessionClaims struct {
	jwt.RegisteredClaims
	Address    string `json:"address"`
	TokenType  string `json:"token_type"`
	AuthMethod string `json:"auth_method"`
}
