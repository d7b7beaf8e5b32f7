package printer

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/roach88/modelgen/internal/alg"
)

// DomainModel prefixes model fingerprints. The version suffix allows the
// encoding to change without colliding with old fingerprints.
const DomainModel = "modelgen/model/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data). The null byte keeps
// the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies a model by the canonical JSON of its tables. Two
// models have the same fingerprint exactly when their tables are equal;
// comments are not part of it.
func Fingerprint(a alg.Algebra) (string, error) {
	data, err := MarshalCanonical(Document(a, ""))
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainModel, data), nil
}
