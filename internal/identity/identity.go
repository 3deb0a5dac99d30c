// Package identity derives privacy-preserving account identifiers from
// caller-supplied secrets (wallet addresses). The identifier is a truncated
// one-way hash, so records keyed by it cannot be traced back to the wallet.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// FallbackWallet is substituted when no wallet address is configured. It is
// hashed like any real secret, never used verbatim as an identifier.
const FallbackWallet = "unknown"

// AccountIDLength is the length of every derived account identifier.
const AccountIDLength = 16

// DeriveAccountID hashes the raw UTF-8 bytes of secret with SHA-256 and
// returns the first 16 hex characters of the digest. Deterministic: the same
// secret always yields the same identifier.
func DeriveAccountID(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])[:AccountIDLength]
}

// FromWallet derives the account identifier for a run. An empty wallet
// address falls back to FallbackWallet; usedFallback reports whether that
// happened so callers can emit a warning. Never fails.
func FromWallet(wallet string) (accountID string, usedFallback bool) {
	if wallet == "" {
		return DeriveAccountID(FallbackWallet), true
	}
	return DeriveAccountID(wallet), false
}
