package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"

	"labcatalog-api/pkg/apierror"
)

const (
	defaultMemoryKB    uint32 = 64 * 1024
	defaultTimeCost    uint32 = 3
	defaultParallelism uint8  = 2
	defaultSaltLength  uint32 = 16
	defaultKeyLength   uint32 = 32
)

// Hasher derives and verifies argon2id password digests. Digests are
// self-describing: the algorithm, its parameters and the salt are all
// embedded, so Verify needs nothing beyond the stored digest. The salt
// source is injectable to keep tests deterministic.
type Hasher struct {
	memory      uint32
	time        uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
	saltSource  io.Reader
}

func NewHasher() *Hasher {
	return &Hasher{
		memory:      defaultMemoryKB,
		time:        defaultTimeCost,
		parallelism: defaultParallelism,
		saltLength:  defaultSaltLength,
		keyLength:   defaultKeyLength,
		saltSource:  rand.Reader,
	}
}

// WithSaltSource replaces the random source used for salts. Only tests
// should need this.
func (h *Hasher) WithSaltSource(r io.Reader) *Hasher {
	h.saltSource = r
	return h
}

// Hash derives a fresh digest for the password. Two calls with the same
// password produce different digests because each call draws a new salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := io.ReadFull(h.saltSource, salt); err != nil {
		return "", apierror.Wrap(apierror.KindInternal, fmt.Errorf("read salt: %w", err))
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.parallelism, h.keyLength)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.time,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return digest, nil
}

// Verify re-derives the key using the parameters embedded in the digest
// and compares in constant time. A digest that cannot be parsed is a
// verification failure, not a crash; the parse error is returned so the
// caller can log the anomaly separately from a plain wrong password.
func (h *Hasher) Verify(password string, digest string) (bool, error) {
	params, salt, key, err := parseDigest(digest)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

type digestParams struct {
	memory      uint32
	time        uint32
	parallelism uint8
}

func parseDigest(digest string) (digestParams, []byte, []byte, error) {
	var params digestParams

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("malformed digest")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("malformed digest version")
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.parallelism); err != nil {
		return params, nil, nil, fmt.Errorf("malformed digest parameters")
	}
	if params.memory == 0 || params.time == 0 || params.parallelism == 0 {
		return params, nil, nil, fmt.Errorf("invalid digest parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("malformed digest salt")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params, nil, nil, fmt.Errorf("malformed digest key")
	}

	return params, salt, key, nil
}
