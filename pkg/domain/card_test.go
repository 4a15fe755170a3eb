package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhwang/atmbank/pkg/domain"
)

func TestHashPinDeterministic(t *testing.T) {
	t.Parallel()
	salt := strings.Repeat("ab", 16)
	first := domain.HashPin("1234", salt)
	second := domain.HashPin("1234", salt)
	assert.Equal(t, first, second, "same pin and salt must yield the same digest")
	assert.Len(t, first, 64, "digest should be hex of a 32-byte key")
	assert.NotEqual(t, first, domain.HashPin("1235", salt))
	assert.NotEqual(t, first, domain.HashPin("1234", strings.Repeat("cd", 16)))
}

func TestValidatePin(t *testing.T) {
	t.Parallel()
	salt := strings.Repeat("0f", 16)
	card := &domain.Card{
		CardNumber:  4111111111111111,
		UserID:      42,
		PinSaltHash: salt + domain.HashPin("4321", salt),
	}

	assert.True(t, card.ValidatePin("4321"))
	assert.False(t, card.ValidatePin("4322"))
	assert.False(t, card.ValidatePin(""))
}

func TestValidatePinMalformedHash(t *testing.T) {
	t.Parallel()
	card := &domain.Card{CardNumber: 1, UserID: 1, PinSaltHash: "tooshort"}
	assert.False(t, card.ValidatePin("1234"), "a stored hash shorter than the salt never validates")
}

func TestNewPinSaltHash(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	stored, err := domain.NewPinSaltHash("9999")
	require.NoError(err)
	require.Len(stored, 32+64)

	card := &domain.Card{CardNumber: 1, UserID: 1, PinSaltHash: stored}
	assert.True(t, card.ValidatePin("9999"))
	assert.False(t, card.ValidatePin("9998"))

	other, err := domain.NewPinSaltHash("9999")
	require.NoError(err)
	assert.NotEqual(t, stored, other, "each issue uses a fresh salt")
}
