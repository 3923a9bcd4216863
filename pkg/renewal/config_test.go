package renewal

import (
	"os"
	"testing"

	"github.com/function61/gokit/assert"
)

func TestConfigFromEnv(t *testing.T) {
	os.Setenv("DOMAINS", `["example.com", "www.example.com"]`)
	os.Setenv("EMAIL_ADDRESS", "ops@example.com")
	os.Setenv("FUNCTION_NAME", "LetsEncryptRenewer")
	os.Setenv("STAGING", "1")
	defer func() {
		for _, key := range []string{"DOMAINS", "EMAIL_ADDRESS", "FUNCTION_NAME", "STAGING"} {
			os.Unsetenv(key)
		}
	}()

	conf, err := ConfigFromEnv()
	assert.Ok(t, err)

	assert.EqualString(t, conf.Subject(), "example.com")
	assert.EqualString(t, conf.Email, "ops@example.com")
	assert.EqualString(t, conf.Identity, "LetsEncryptRenewer")
	assert.Assert(t, conf.Staging)
	assert.Assert(t, len(conf.Domains) == 2)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Domains:  []string{"example.com"},
		Email:    "ops@example.com",
		Identity: "LetsEncryptRenewer",
	}
	assert.Ok(t, valid.Validate())

	noDomains := valid
	noDomains.Domains = nil
	assert.EqualString(t, noDomains.Validate().Error(), "config: no domains")

	noEmail := valid
	noEmail.Email = ""
	assert.EqualString(t, noEmail.Validate().Error(), "config: email missing")

	noIdentity := valid
	noIdentity.Identity = ""
	assert.EqualString(t, noIdentity.Validate().Error(), "config: identity missing")
}
