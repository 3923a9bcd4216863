package issuer

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/function61/gokit/assert"
)

func TestCertonlyArgs(t *testing.T) {
	args := certonlyArgs(
		[]string{"example.com", "www.example.com"},
		"ops@example.com",
		false,
		"/tmp/work-area")

	assert.EqualString(t, strings.Join(args, " "), strings.Join([]string{
		"certonly",
		"--noninteractive",
		"--agree-tos",
		"--email", "ops@example.com",
		"--dns-route53",
		"--domains", "example.com,www.example.com",
		"--config-dir", "/tmp/work-area/config",
		"--work-dir", "/tmp/work-area/work",
		"--logs-dir", "/tmp/work-area/logs",
	}, " "))
}

func TestCertonlyArgsStaging(t *testing.T) {
	args := certonlyArgs([]string{"example.com"}, "ops@example.com", true, "/tmp/work-area")

	assert.EqualString(t, args[len(args)-1], "--staging")
}

func TestCollectOutput(t *testing.T) {
	configDir, err := ioutil.TempDir("", "certbot-test")
	assert.Ok(t, err)
	defer os.RemoveAll(configDir)

	liveDir := filepath.Join(configDir, "live", "example.com")
	assert.Ok(t, os.MkdirAll(liveDir, 0700))

	writePem := func(name string, content string) {
		assert.Ok(t, ioutil.WriteFile(filepath.Join(liveDir, name), []byte(content), 0600))
	}

	writePem("cert.pem", "LEAF")
	writePem("fullchain.pem", "LEAF+CHAIN")
	writePem("privkey.pem", "KEY")

	issued, err := collectOutput(configDir, "example.com")
	assert.Ok(t, err)
	assert.EqualString(t, issued.CertPem, "LEAF")
	assert.EqualString(t, issued.ChainPem, "LEAF+CHAIN")
	assert.EqualString(t, issued.KeyPem, "KEY")
}

func TestCollectOutputMissingFile(t *testing.T) {
	configDir, err := ioutil.TempDir("", "certbot-test")
	assert.Ok(t, err)
	defer os.RemoveAll(configDir)

	liveDir := filepath.Join(configDir, "live", "example.com")
	assert.Ok(t, os.MkdirAll(liveDir, 0700))

	// only some of the expected output present => the whole issuance failed
	assert.Ok(t, ioutil.WriteFile(filepath.Join(liveDir, "cert.pem"), []byte("LEAF"), 0600))

	_, err = collectOutput(configDir, "example.com")
	assert.Assert(t, err != nil)
	assert.Assert(t, strings.Contains(err.Error(), "did not produce fullchain.pem"))
}
