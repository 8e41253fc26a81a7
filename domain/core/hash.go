package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ReportHash fingerprints a rendered report so repeated runs can be compared.
type ReportHash Hash

// NewReportHash creates a report fingerprint from its canonical encoding
func NewReportHash(data []byte) ReportHash { return ReportHash(NewHash(data)) }

func (h ReportHash) String() string { return Hash(h).String() }

// Short returns the first 12 hex characters, enough for log lines
func (h ReportHash) Short() string {
	s := h.String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
