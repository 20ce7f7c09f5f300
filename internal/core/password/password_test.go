package password

import "testing"

func TestHasher_HashNeverStoresPlaintext(t *testing.T) {
	h := NewHasher(bcryptTestCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret1" {
		t.Fatalf("hash equals plaintext")
	}
}

func TestHasher_SamePlaintextDifferentHashes(t *testing.T) {
	h := NewHasher(bcryptTestCost)

	a, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct hashes for identical plaintext")
	}
}

func TestHasher_VerifyRoundtrip(t *testing.T) {
	h := NewHasher(bcryptTestCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !h.Verify("secret1", hash) {
		t.Fatalf("verify rejected correct password")
	}
	if h.Verify("secret2", hash) {
		t.Fatalf("verify accepted wrong password")
	}
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := NewHasher(bcryptTestCost)

	if h.Verify("secret1", "not-a-bcrypt-hash") {
		t.Fatalf("verify accepted malformed hash")
	}
	if h.Verify("secret1", "") {
		t.Fatalf("verify accepted empty hash")
	}
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	h := NewHasher(99)
	if h.cost != DefaultCost {
		t.Fatalf("expected fallback to DefaultCost, got %d", h.cost)
	}
}

// bcryptTestCost keeps the test suite fast; cost does not change behavior.
const bcryptTestCost = 4
