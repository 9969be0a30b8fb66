package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
)

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Digest hashes a sequence of records without materializing them. Every
// field is written length-prefixed and each record ends in a newline, so
// Line("e", "a", "b") contributes "1:e1:a1:b\n". Fields may contain any
// byte, spaces and newlines included, without two record sequences
// colliding.
type Digest struct {
	h hash.Hash
}

// NewDigest starts an empty digest.
func NewDigest() *Digest {
	return &Digest{h: sha256.New()}
}

// Line appends one record.
func (d *Digest) Line(fields ...string) {
	for _, f := range fields {
		fmt.Fprintf(d.h, "%d:%s", len(f), f)
	}
	d.h.Write([]byte{'\n'})
}

// Sum returns the hex digest of everything written so far.
func (d *Digest) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

// kindKey builds "<kind>:<sha256 of the JSON-encoded parts>".
func kindKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
