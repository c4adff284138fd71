package token

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/metrics"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newVerifier(issuer *fakeIssuer) *ExternalTokenVerifier {
	return NewExternalTokenVerifier(
		issuer.keySource(),
		testIssuer,
		testAudience,
		metrics.NewNoopMetrics(),
	)
}

func TestExternalTokenVerifier_Valid(t *testing.T) {
	issuer := newFakeIssuer(t, "kid-1")
	verifier := newVerifier(issuer)

	claims := validClaims()
	claims["email"] = "ada.l@example.com"
	claims["given_name"] = "Ada"

	got, err := verifier.Verify(context.Background(), issuer.sign("kid-1", claims))
	require.NoError(t, err)

	assert.Equal(t, "object-id-1", got.Subject)
	assert.Equal(t, "Ada@Example.com", got.UniqueName)
	assert.Equal(t, "ada.l@example.com", got.Email)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "Ada", got.GivenName)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt, 5*time.Second)
	assert.WithinDuration(t, time.Now(), got.IssuedAt, 5*time.Second)
}

func TestExternalTokenVerifier_SubjectFallsBackToSub(t *testing.T) {
	issuer := newFakeIssuer(t, "kid-1")
	verifier := newVerifier(issuer)

	claims := validClaims()
	delete(claims, "oid")

	got, err := verifier.Verify(context.Background(), issuer.sign("kid-1", claims))
	require.NoError(t, err)
	assert.Equal(t, "subject-1", got.Subject)
}

func TestExternalTokenVerifier_Expired(t *testing.T) {
	issuer := newFakeIssuer(t, "kid-1")
	verifier := newVerifier(issuer)

	claims := validClaims()
	claims["iat"] = time.Now().Add(-2 * time.Hour).Unix()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	_, err := verifier.Verify(context.Background(), issuer.sign("kid-1", claims))
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestExternalTokenVerifier_Invalid(t *testing.T) {
	issuer := newFakeIssuer(t, "kid-1")
	other := newFakeIssuer(t, "kid-1")
	verifier := newVerifier(issuer)

	mutate := func(f func(jwt.MapClaims)) string {
		c := validClaims()
		f(c)
		return issuer.sign("kid-1", c)
	}

	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).
		SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":         "definitely.not.a-token",
		"wrong issuer":    mutate(func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com" }),
		"wrong audience":  mutate(func(c jwt.MapClaims) { c["aud"] = "someone-else" }),
		"missing exp":     mutate(func(c jwt.MapClaims) { delete(c, "exp") }),
		"missing subject": mutate(func(c jwt.MapClaims) { delete(c, "oid"); delete(c, "sub") }),
		"foreign key":     other.sign("kid-1", validClaims()),
		"hmac algorithm":  hs256,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(context.Background(), raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.NotErrorIs(t, err, ErrExpiredToken)
		})
	}
}

func TestExternalTokenVerifier_KeyUnavailable(t *testing.T) {
	issuer := newFakeIssuer(t, "kid-1")
	raw := issuer.sign("kid-1", validClaims())
	issuer.setStatus(http.StatusBadGateway)

	_, err := newVerifier(issuer).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrKeyUnavailable)
}

func TestExternalTokenVerifier_RecordsResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockKeySource(ctrl)
	recorder := mocks.NewMockRecorder(ctrl)

	issuer := newFakeIssuer(t, "kid-1")
	pub := &issuer.keys["kid-1"].PublicKey

	gomock.InOrder(
		keys.EXPECT().Key(gomock.Any(), "kid-1").Return(pub, nil),
		keys.EXPECT().Key(gomock.Any(), "kid-1").
			Return(nil, errors.Join(ErrKeyUnavailable, errors.New("dial tcp: refused"))),
	)
	gomock.InOrder(
		recorder.EXPECT().RecordTokenValidation("external", resultValid, gomock.Any()),
		recorder.EXPECT().RecordTokenValidation("external", resultKeyUnavailable, gomock.Any()),
	)

	verifier := NewExternalTokenVerifier(keys, testIssuer, testAudience, recorder)
	raw := issuer.sign("kid-1", validClaims())

	_, err := verifier.Verify(context.Background(), raw)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrKeyUnavailable)
}
