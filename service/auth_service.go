package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/propstack/walletgate/adapters/tokenizer"
	"github.com/propstack/walletgate/core"
	"github.com/propstack/walletgate/internal/eth"
	"github.com/propstack/walletgate/ports"
	"github.com/propstack/walletgate/siwe"
)

// MessageConfig are the fixed fields embedded in every rendered challenge.
type MessageConfig struct {
	Domain    string
	Statement string
	URI       string
	ChainID   int64
}

// AuthService handles wallet authentication business logic
type AuthService struct {
	store    ports.ChallengeStore
	tok      ports.Tokenizer
	eventPub ports.EventPublisher

	msg MessageConfig

	challengeTTL time.Duration
	sessionTTL   time.Duration

	now func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	store ports.ChallengeStore,
	tok ports.Tokenizer,
	eventPub ports.EventPublisher,
	msg MessageConfig,
	challengeTTL time.Duration,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		store:        store,
		tok:          tok,
		eventPub:     eventPub,
		msg:          msg,
		challengeTTL: challengeTTL,
		sessionTTL:   sessionTTL,
		now:          time.Now,
	}
}

// ChallengeTTL returns the configured challenge lifetime.
func (s *AuthService) ChallengeTTL() time.Duration { return s.challengeTTL }

// SessionTTL returns the configured session token lifetime.
func (s *AuthService) SessionTTL() time.Duration { return s.sessionTTL }

// ChainID returns the chain id embedded in rendered challenges.
func (s *AuthService) ChainID() int64 { return s.msg.ChainID }

// IssuedChallenge is the result of CreateChallenge.
type IssuedChallenge struct {
	Nonce     string
	Message   string
	ExpiresIn int
}

// CreateChallenge generates a new challenge bound to the given address. The
// message is rendered once, stored verbatim and returned to the caller for
// signing.
func (s *AuthService) CreateChallenge(ctx context.Context, address string) (IssuedChallenge, error) {
	bound, err := core.NormalizeAddress(address)
	if err != nil {
		return IssuedChallenge{}, err
	}

	nonceBytes := make([]byte, 16)
	if _, err := rand.Read(nonceBytes); err != nil {
		return IssuedChallenge{}, fmt.Errorf("failed to generate nonce: %w", err)
	}
	nonce := hex.EncodeToString(nonceBytes)

	now := s.now()
	message := siwe.Render(siwe.Params{
		Domain:    s.msg.Domain,
		Address:   address,
		Statement: s.msg.Statement,
		URI:       s.msg.URI,
		ChainID:   s.msg.ChainID,
		Nonce:     nonce,
		IssuedAt:  now,
	})

	challenge := core.Challenge{
		Token:     nonce,
		Address:   bound,
		Message:   message,
		CreatedAt: now,
	}

	if err := s.store.Put(ctx, challenge); err != nil {
		return IssuedChallenge{}, fmt.Errorf("failed to store challenge: %w", err)
	}

	return IssuedChallenge{
		Nonce:     nonce,
		Message:   message,
		ExpiresIn: int(s.challengeTTL.Seconds()),
	}, nil
}

// Verify checks a signed challenge and returns the verified address. The
// challenge is consumed on the way: a failed verification cannot be retried
// with the same nonce.
func (s *AuthService) Verify(ctx context.Context, message, signature, nonce string) (string, error) {
	sig, err := eth.DecodeSignature(signature)
	if err != nil {
		return "", err
	}

	challenge, err := s.store.Consume(ctx, nonce)
	if err != nil {
		return "", err
	}

	// The verifier trusts the caller's message text, so pin it to the
	// consumed challenge before recovering the signer.
	if siwe.ExtractNonce(message) != challenge.Token {
		return "", core.ErrNonceMismatch
	}

	recovered, err := eth.RecoverPersonalSigner(message, sig)
	if err != nil {
		return "", err
	}

	if !core.SameAddress(recovered.Hex(), challenge.Address) {
		return "", core.ErrAddressMismatch
	}

	return challenge.Address, nil
}

// IssuedSession is the result of IssueSession.
type IssuedSession struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	ExpiresIn   int
	Address     string
}

// IssueSession mints a bearer token for a verified address
func (s *AuthService) IssueSession(ctx context.Context, address string) (IssuedSession, error) {
	now := s.now()
	session := &core.Session{
		ID:         uuid.New().String(),
		Address:    address,
		TokenType:  tokenizer.TokenTypeAccess,
		AuthMethod: tokenizer.AuthMethodWallet,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.sessionTTL),
	}

	accessToken, err := s.tok.SessionToToken(session)
	if err != nil {
		return IssuedSession{}, fmt.Errorf("failed to create access token: %w", err)
	}

	// Best effort: the session is valid whether or not other instances
	// hear about it.
	if err := s.eventPub.PublishLogin(ctx, session.Address, session.ID); err != nil {
		log.Printf("warning: failed to publish login event: %v", err)
	}

	return IssuedSession{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   session.ExpiresAt,
		ExpiresIn:   int(s.sessionTTL.Seconds()),
		Address:     session.Address,
	}, nil
}

// ValidateAccessToken parses and validates a bearer token
func (s *AuthService) ValidateAccessToken(ctx context.Context, accessToken string) (*core.Session, error) {
	return s.tok.TokenToSession(accessToken)
}

// Logout announces a logout. Session tokens are stateless and cannot be
// invalidated server-side; the event lets interested consumers react anyway.
func (s *AuthService) Logout(ctx context.Context, address string) {
	if err := s.eventPub.PublishLogout(ctx, address); err != nil {
		log.Printf("warning: failed to publish logout event: %v", err)
	}
}
