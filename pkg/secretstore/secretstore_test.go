package secretstore

import (
	"testing"

	"github.com/function61/gokit/assert"
)

func TestPrivateKeyName(t *testing.T) {
	assert.EqualString(
		t,
		PrivateKeyName(
			"LetsEncryptRenewer",
			"arn:aws:acm:us-east-1:123456789012:certificate/11112222-3333-4444-5555-666677778888"),
		"/LetsEncryptRenewer/11112222-3333-4444-5555-666677778888/PrivateKey")

	// identifier without path separators is used as-is
	assert.EqualString(
		t,
		PrivateKeyName("LetsEncryptRenewer", "bareId"),
		"/LetsEncryptRenewer/bareId/PrivateKey")
}
