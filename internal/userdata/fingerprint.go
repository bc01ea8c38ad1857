package userdata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gowebpki/jcs"
)

// Fingerprint hashes the canonical form of d with its timestamps removed,
// so two documents with the same content compare equal regardless of
// when they were written or how their keys were ordered.
func Fingerprint(d *Document) (string, error) {
	c := *d
	c.LastModified = time.Time{}
	c.ExportDate = nil
	raw, err := json.Marshal(&c)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalizing document: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}
