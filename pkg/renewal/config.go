package renewal

import (
	"errors"
	"os"
	"strings"

	"github.com/function61/gokit/envvar"
	"github.com/function61/gokit/jsonfile"
)

// Config is resolved once at process start and handed to the components as an
// immutable value, so tests can inject whatever they need.
type Config struct {
	Domains  []string // first entry is the canonical subject, full list is the required alternate-name set
	Email    string   // ACME registration contact
	Identity string   // managing identity name, namespaces the secret store entries
	Staging  bool     // issue from the staging authority instead of the real one
}

// Subject is the canonical domain the certificate is primarily issued for.
func (c Config) Subject() string {
	return c.Domains[0]
}

func (c Config) Validate() error {
	if len(c.Domains) == 0 {
		return errors.New("config: no domains")
	}
	if c.Email == "" {
		return errors.New("config: email missing")
	}
	if c.Identity == "" {
		return errors.New("config: identity missing")
	}

	return nil
}

// ConfigFromEnv resolves configuration the way the deployment delivers it:
// DOMAINS (JSON array), EMAIL_ADDRESS, FUNCTION_NAME and STAGING ("1" = on).
func ConfigFromEnv() (*Config, error) {
	domainsJson, err := envvar.Required("DOMAINS")
	if err != nil {
		return nil, err
	}

	domains := []string{}
	if err := jsonfile.Unmarshal(strings.NewReader(domainsJson), &domains, true); err != nil {
		return nil, err
	}

	email, err := envvar.Required("EMAIL_ADDRESS")
	if err != nil {
		return nil, err
	}

	identity, err := envvar.Required("FUNCTION_NAME")
	if err != nil {
		return nil, err
	}

	conf := &Config{
		Domains:  domains,
		Email:    email,
		Identity: identity,
		Staging:  os.Getenv("STAGING") == "1",
	}

	return conf, conf.Validate()
}
