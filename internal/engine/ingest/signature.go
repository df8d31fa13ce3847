package ingest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// SignatureHeader carries the hex HMAC-SHA256 digest of the raw body.
const SignatureHeader = "X-Hookdash-Signature"

var ErrBadSignature = errors.New("webhook signature mismatch")

func Sign(secret string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks the provider-supplied digest against the raw
// body. Constant-time compare; an empty header fails.
func VerifySignature(secret string, body []byte, header string) error {
	expected := Sign(secret, body)
	if !hmac.Equal([]byte(expected), []byte(header)) {
		return ErrBadSignature
	}
	return nil
}
