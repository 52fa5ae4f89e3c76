package audit

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint returns a short, non-reversible identifier for a credential.
// It is what we log instead of the credential itself.
func Fingerprint(credential string) string {
	if credential == "" {
		return "(n/a)"
	}
	hash := sha256.Sum256([]byte(credential))
	return base64.RawStdEncoding.EncodeToString(hash[:12])
}
