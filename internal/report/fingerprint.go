// Package report fingerprints finished runs and checks them against
// known-good results: a TOML baseline file, or the sequential run.
package report

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"promoscan/internal/consensus"
)

// Fingerprint is the hex BLAKE2b-256 digest of the registry's text rendering.
// Two runs agree exactly when their fingerprints do.
func Fingerprint(reg *consensus.Registry) string {
	sum := blake2b.Sum256([]byte(reg.Render()))
	return hex.EncodeToString(sum[:])
}
