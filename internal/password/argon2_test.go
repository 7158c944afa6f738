package password

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(digest, "$argon2id$"))

	ok, err := h.Verify("correct horse battery staple", digest)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("wrong password", digest)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashSaltsEveryDigest(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestHashDeterministicWithFixedSalt(t *testing.T) {
	t.Parallel()

	salt := bytes.Repeat([]byte{0x42}, 32)

	first, err := NewHasher().WithSaltSource(bytes.NewReader(salt)).Hash("secret")
	require.NoError(t, err)
	second, err := NewHasher().WithSaltSource(bytes.NewReader(salt)).Hash("secret")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestVerifyUsesEmbeddedParameters(t *testing.T) {
	t.Parallel()

	weak := &Hasher{
		memory:      8 * 1024,
		time:        1,
		parallelism: 1,
		saltLength:  16,
		keyLength:   32,
		saltSource:  bytes.NewReader(bytes.Repeat([]byte{0x01}, 16)),
	}

	digest, err := weak.Hash("secret")
	require.NoError(t, err)

	// A hasher with different defaults still verifies, because the
	// digest carries its own parameters.
	ok, err := NewHasher().Verify("secret", digest)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsMalformedDigests(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	for name, digest := range map[string]string{
		"empty":             "",
		"not a digest":      "plaintext",
		"wrong algorithm":   "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$a2V5",
		"missing sections":  "$argon2id$v=19$m=65536,t=3,p=2",
		"bad version":       "$argon2id$v=12$m=65536,t=3,p=2$c2FsdA$a2V5",
		"bad parameters":    "$argon2id$v=19$m=what$c2FsdA$a2V5",
		"zero cost":         "$argon2id$v=19$m=0,t=0,p=0$c2FsdA$a2V5",
		"bad salt encoding": "$argon2id$v=19$m=65536,t=3,p=2$!!!$a2V5",
		"bad key encoding":  "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!!",
	} {
		ok, err := h.Verify("secret", digest)
		require.Error(t, err, "digest %q (%s) should not parse", digest, name)
		require.False(t, ok)
	}
}
