package issuer

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/function61/gokit/logex"
)

// Certbot obtains certificates by invoking the certbot CLI with per-run
// config/work/log directories inside a scoped temp area, so it needs no
// root privileges and never sees a previous run's state.
type Certbot struct {
	binPath string
	logl    *logex.Leveled
}

func NewCertbot(logger *log.Logger) *Certbot {
	return &Certbot{
		binPath: "certbot",
		logl:    logex.Levels(logger),
	}
}

var _ Issuer = (*Certbot)(nil)

func (c *Certbot) Obtain(ctx context.Context, domains []string, email string, staging bool) (*Issued, error) {
	if len(domains) == 0 {
		return nil, errors.New("certbot: no domains")
	}

	workArea, err := ioutil.TempDir("", "certbot")
	if err != nil {
		return nil, fmt.Errorf("certbot: temp dir: %w", err)
	}
	defer os.RemoveAll(workArea) // cleanup also on the failure paths

	configDir := filepath.Join(workArea, "config")

	c.logl.Info.Printf("running %s for %s", c.binPath, strings.Join(domains, ", "))

	certbot := exec.CommandContext(
		ctx,
		c.binPath,
		certonlyArgs(domains, email, staging, workArea)...)

	if output, err := certbot.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("certbot: %v: %s", err, output)
	}

	return collectOutput(configDir, domains[0])
}

func certonlyArgs(domains []string, email string, staging bool, workArea string) []string {
	args := []string{
		"certonly",
		"--noninteractive",
		"--agree-tos",
		"--email", email,
		"--dns-route53", // DNS challenge, delegated to certbot's own plugin
		"--domains", strings.Join(domains, ","),
		// directory overrides so certbot doesn't have to run as root
		"--config-dir", filepath.Join(workArea, "config"),
		"--work-dir", filepath.Join(workArea, "work"),
		"--logs-dir", filepath.Join(workArea, "logs"),
	}

	if staging {
		args = append(args, "--staging")
	}

	return args
}

// certbot writes its output below <config dir>/live/<subject>/
func collectOutput(configDir string, subject string) (*Issued, error) {
	liveDir := filepath.Join(configDir, "live", subject)

	readPem := func(name string) (string, error) {
		pem, err := ioutil.ReadFile(filepath.Join(liveDir, name))
		if err != nil {
			return "", fmt.Errorf("certbot did not produce %s: %w", name, err)
		}

		return string(pem), nil
	}

	certPem, err := readPem("cert.pem")
	if err != nil {
		return nil, err
	}

	chainPem, err := readPem("fullchain.pem")
	if err != nil {
		return nil, err
	}

	keyPem, err := readPem("privkey.pem")
	if err != nil {
		return nil, err
	}

	return &Issued{
		CertPem:  certPem,
		ChainPem: chainPem,
		KeyPem:   keyPem,
	}, nil
}
