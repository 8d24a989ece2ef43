package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePair(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := m.GeneratePair(1, "alice", "simple")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := m.ParseAccess(pair.Access)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "simple", claims.Status)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := m.GeneratePair(1, "alice", "simple")
	assert.NoError(t, err)

	_, err = m.ParseAccess(pair.Refresh)
	assert.Error(t, err)

	_, err = m.ParseRefresh(pair.Access)
	assert.Error(t, err)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	other := NewManager("other-secret", 15*time.Minute, 24*time.Hour)

	pair, err := m.GeneratePair(1, "alice", "simple")
	assert.NoError(t, err)

	_, err = other.Parse(pair.Access)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, -time.Minute)

	pair, err := m.GeneratePair(1, "alice", "simple")
	assert.NoError(t, err)

	_, err = m.Parse(pair.Access)
	assert.Error(t, err)
}

func TestRefreshTokensCarryUniqueJTI(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	first, err := m.GeneratePair(1, "alice", "simple")
	assert.NoError(t, err)
	second, err := m.GeneratePair(1, "alice", "simple")
	assert.NoError(t, err)

	firstClaims, err := m.ParseRefresh(first.Refresh)
	assert.NoError(t, err)
	secondClaims, err := m.ParseRefresh(second.Refresh)
	assert.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestMemoryBlacklist(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBlacklist()

	revoked, err := b.IsRevoked(ctx, "some-jti")
	assert.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, b.Revoke(ctx, "some-jti", time.Minute))

	revoked, err = b.IsRevoked(ctx, "some-jti")
	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryBlacklistExpiry(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBlacklist()

	assert.NoError(t, b.Revoke(ctx, "short-lived", -time.Second))

	revoked, err := b.IsRevoked(ctx, "short-lived")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}
