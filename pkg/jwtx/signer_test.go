package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/talentgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T, issuer string) *jwtx.Signer {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	s, err := jwtx.NewSigner(priv, issuer)
	require.NoError(t, err)
	return s
}

func TestSignAndVerify(t *testing.T) {
	s := newSigner(t, "talentgate")

	raw, err := s.Sign(jwtx.NewClaims("talentgate", "user-1", "sess-1", time.Hour, time.Now()))
	require.NoError(t, err)

	claims, err := s.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "sess-1", claims.SID)
}

func TestVerifyRejects(t *testing.T) {
	s := newSigner(t, "talentgate")

	t.Run("expired", func(t *testing.T) {
		raw, err := s.Sign(jwtx.NewClaims("talentgate", "u", "s", time.Minute, time.Now().Add(-2*time.Hour)))
		require.NoError(t, err)
		_, err = s.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("other key", func(t *testing.T) {
		other := newSigner(t, "talentgate")
		raw, err := other.Sign(jwtx.NewClaims("talentgate", "u", "s", time.Hour, time.Now()))
		require.NoError(t, err)
		_, err = s.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		raw, err := s.Sign(jwtx.NewClaims("someone-else", "u", "s", time.Hour, time.Now()))
		require.NoError(t, err)
		_, err = s.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("missing sid", func(t *testing.T) {
		raw, err := s.Sign(jwtx.NewClaims("talentgate", "u", "", time.Hour, time.Now()))
		require.NoError(t, err)
		_, err = s.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("tampered payload", func(t *testing.T) {
		raw, err := s.Sign(jwtx.NewClaims("talentgate", "u", "s", time.Hour, time.Now()))
		require.NoError(t, err)
		parts := strings.Split(raw, ".")
		parts[2] = strings.Repeat("A", len(parts[2]))
		_, err = s.Verify(strings.Join(parts, "."))
		require.Error(t, err)
	})
}

func TestKIDStableForKey(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	a, err := jwtx.NewSigner(priv, "x")
	require.NoError(t, err)
	b, err := jwtx.NewSigner(priv, "x")
	require.NoError(t, err)
	require.Equal(t, a.KID(), b.KID())

	_, err = jwtx.NewSigner(nil, "x")
	require.Error(t, err)
}
