// Package password wraps bcrypt behind a small hasher with a configurable
// work factor. Hashing embeds a random salt, so two hashes of the same
// plaintext always differ.
package password

import "golang.org/x/crypto/bcrypt"

const DefaultCost = 10

// Hasher derives and verifies salted password hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's valid range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether plain matches hash. Any mismatch, including a
// malformed stored hash, yields false rather than an error.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
