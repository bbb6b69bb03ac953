package service

import (
	"context"
	"crypto/ecdsa"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propstack/walletgate/adapters/store"
	"github.com/propstack/walletgate/adapters/tokenizer"
	"github.com/propstack/walletgate/core"
)

type recordingPublisher struct {
	mu      sync.Mutex
	logins  []string
	logouts []string
}

func (p *recordingPublisher) PublishLogin(ctx context.Context, address, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logins = append(p.logins, address)
	return nil
}

func (p *recordingPublisher) PublishLogout(ctx context.Context, address string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logouts = append(p.logouts, address)
	return nil
}

func newServiceForTests(t *testing.T) (*AuthService, *recordingPublisher) {
	t.Helper()

	tok, err := tokenizer.NewJWTTokenizer([]byte("test-secret"), "HS256")
	require.NoError(t, err)

	pub := &recordingPublisher{}
	svc := NewAuthService(
		store.NewMemoryStore(5*time.Minute),
		tok,
		pub,
		MessageConfig{
			Domain:    "propstack.app",
			Statement: "Sign in to PropStack",
			URI:       "https://propstack.app",
			ChainID:   137,
		},
		5*time.Minute,
		24*time.Hour,
	)
	return svc, pub
}

func signMessage(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	// Browser wallets report the recovery id as 27/28.
	sig[64] += 27
	return hexutil.Encode(sig)
}

func TestVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceForTests(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	issued, err := svc.CreateChallenge(ctx, address)
	require.NoError(t, err)
	assert.Len(t, issued.Nonce, 32)
	assert.Contains(t, issued.Message, address)
	assert.Contains(t, issued.Message, "Nonce: "+issued.Nonce)
	assert.Equal(t, 300, issued.ExpiresIn)

	verified, err := svc.Verify(ctx, issued.Message, signMessage(t, key, issued.Message), issued.Nonce)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(address), verified)
}

func TestVerifyRejectsReplay(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceForTests(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	issued, err := svc.CreateChallenge(ctx, address)
	require.NoError(t, err)
	sig := signMessage(t, key, issued.Message)

	_, err = svc.Verify(ctx, issued.Message, sig, issued.Nonce)
	require.NoError(t, err)

	// Same valid signature, second attempt: the challenge is gone.
	_, err = svc.Verify(ctx, issued.Message, sig, issued.Nonce)
	assert.ErrorIs(t, err, core.ErrChallengeUsed)
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceForTests(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	otherKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	issued, err := svc.CreateChallenge(ctx, address)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, issued.Message, signMessage(t, otherKey, issued.Message), issued.Nonce)
	assert.ErrorIs(t, err, core.ErrAddressMismatch)
}

func TestVerifyRejectsForeignMessage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceForTests(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	first, err := svc.CreateChallenge(ctx, address)
	require.NoError(t, err)
	second, err := svc.CreateChallenge(ctx, address)
	require.NoError(t, err)

	// Signing the first message but presenting the second nonce must not
	// bind the two challenges together.
	_, err = svc.Verify(ctx, first.Message, signMessage(t, key, first.Message), second.Nonce)
	assert.ErrorIs(t, err, core.ErrNonceMismatch)
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceForTests(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	issued, err := svc.CreateChallenge(ctx, address)
	require.NoError(t, err)

	for _, sig := range []string{"", "0x1234", "not-hex-at-all"} {
		_, err := svc.Verify(ctx, issued.Message, sig, issued.Nonce)
		assert.ErrorIs(t, err, core.ErrMalformedSignature, sig)
	}

	// Structural validation happens before consume, so the challenge is
	// still live afterwards.
	_, err = svc.Verify(ctx, issued.Message, signMessage(t, key, issued.Message), issued.Nonce)
	assert.NoError(t, err)
}

func TestVerifyRejectsGarbageSignatureBytes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceForTests(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	issued, err := svc.CreateChallenge(ctx, address)
	require.NoError(t, err)

	// 65 well-formed bytes that are not a valid curve signature.
	garbage := "0x" + strings.Repeat("ff", 65)
	_, err = svc.Verify(ctx, issued.Message, garbage, issued.Nonce)
	assert.ErrorIs(t, err, core.ErrInvalidSignature)
}

func TestVerifyRejectsExpiredChallenge(t *testing.T) {
	ctx := context.Background()

	tok, err := tokenizer.NewJWTTokenizer([]byte("test-secret"), "HS256")
	require.NoError(t, err)

	svc := NewAuthService(
		store.NewMemoryStore(time.Nanosecond),
		tok,
		&recordingPublisher{},
		MessageConfig{Domain: "propstack.app", URI: "https://propstack.app", ChainID: 137},
		time.Nanosecond,
		24*time.Hour,
	)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	issued, err := svc.CreateChallenge(ctx, address)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	// A correct signature does not rescue a stale challenge.
	_, err = svc.Verify(ctx, issued.Message, signMessage(t, key, issued.Message), issued.Nonce)
	assert.ErrorIs(t, err, core.ErrChallengeExpired)
}

func TestCreateChallengeRejectsBadAddress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceForTests(t)

	for _, addr := range []string{
		"",
		"0x123",
		"ab5801a7d398351b8be11c439e05c5b3259aec9b",
		"0xZZ5801a7d398351b8be11c439e05c5b3259aec9b",
	} {
		_, err := svc.CreateChallenge(ctx, addr)
		assert.ErrorIs(t, err, core.ErrInvalidAddress, addr)
	}
}

func TestVerifyUnknownNonce(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceForTests(t)

	sig := "0x" + strings.Repeat("00", 65)
	_, err := svc.Verify(ctx, "some message", sig, "unknown")
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestIssueAndValidateSession(t *testing.T) {
	ctx := context.Background()
	svc, pub := newServiceForTests(t)

	const address = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"

	session, err := svc.IssueSession(ctx, address)
	require.NoError(t, err)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, address, session.Address)
	assert.Equal(t, 86400, session.ExpiresIn)

	validated, err := svc.ValidateAccessToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, address, validated.Address)
	assert.Equal(t, tokenizer.AuthMethodWallet, validated.AuthMethod)

	assert.Equal(t, []string{address}, pub.logins)
}

func TestLogoutPublishesEvent(t *testing.T) {
	ctx := context.Background()
	svc, pub := newServiceForTests(t)

	svc.Logout(ctx, "0xab5801a7d398351b8be11c439e05c5b3259aec9b")
	assert.Equal(t, []string{"0xab5801a7d398351b8be11c439e05c5b3259aec9b"}, pub.logouts)
}
