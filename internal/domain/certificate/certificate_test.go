package certificate

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, codeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q", r)
		}
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestNewKeepsContent(t *testing.T) {
	refs := Refs{RegistryID: uuid.New(), UserID: uuid.New(), ActivityID: uuid.New(), EventID: uuid.New()}
	issuedAt := time.Date(2024, time.November, 1, 10, 0, 0, 0, time.UTC)
	content := Content{
		ParticipantName:   "Ana Souza",
		EventName:         "5 Semana da Computação 2024",
		ActivityTitle:     "Minicurso de Go",
		WorkloadInMinutes: 240,
		Speakers:          []string{"Rob"},
	}

	cert, err := New(refs, content, issuedAt)
	require.NoError(t, err)
	assert.Equal(t, refs.RegistryID, cert.RegistryID)
	assert.Equal(t, refs.EventID, cert.EventID)
	assert.Equal(t, issuedAt, cert.IssuedAt)
	assert.NotEmpty(t, cert.Code)

	decoded, err := cert.Content()
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
}
