package password

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "regular password",
			password: "password123",
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
		},
		{
			name:     "unicode password",
			password: "пароль123",
		},
		{
			name:     "empty password",
			password: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, salt, err := Hash(tt.password)
			require.NoError(t, err)

			assert.Len(t, salt, SaltSize*2)
			assert.Len(t, hash, KeyLength*2)

			_, err = hex.DecodeString(salt)
			assert.NoError(t, err)
			_, err = hex.DecodeString(hash)
			assert.NoError(t, err)

			assert.Equal(t, Derive(tt.password, salt), hash)
		})
	}
}

func TestHash_SaltIsRandom(t *testing.T) {
	hash1, salt1, err := Hash("password")
	require.NoError(t, err)

	hash2, salt2, err := Hash("password")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestDerive_UsesHexSaltBytes(t *testing.T) {
	salt := "00112233445566778899aabbccddeeff"

	want := hex.EncodeToString(pbkdf2.Key([]byte("secret"), []byte(salt), 1000, 64, sha512.New))

	assert.Equal(t, want, Derive("secret", salt))
}

func TestDerive_DifferentPasswordsProduceDifferentHashes(t *testing.T) {
	salt := "salt"

	assert.NotEqual(t, Derive("password1", salt), Derive("password2", salt))
}
