package issuer

import (
	"context"
	"crypto"
	"fmt"
	"log"

	"github.com/function61/gokit/logex"
	"github.com/go-acme/lego/v3/certcrypto"
	"github.com/go-acme/lego/v3/certificate"
	"github.com/go-acme/lego/v3/lego"
	legolog "github.com/go-acme/lego/v3/log"
	"github.com/go-acme/lego/v3/providers/dns/route53"
	"github.com/go-acme/lego/v3/registration"
)

// Lego obtains certificates in-process (no external binary needed, which is
// nice in a Lambda runtime) with a Route53 DNS-01 challenge. Each run uses a
// throwaway ACME account, same as certbot does with its per-run config dir.
type Lego struct {
	logl *logex.Leveled
}

func NewLego(logger *log.Logger) *Lego {
	legolog.Logger = logex.Prefix("lego", logger)

	return &Lego{
		logl: logex.Levels(logger),
	}
}

var _ Issuer = (*Lego)(nil)

func (l *Lego) Obtain(ctx context.Context, domains []string, email string, staging bool) (*Issued, error) {
	accountKey, err := certcrypto.GeneratePrivateKey(certcrypto.EC256)
	if err != nil {
		return nil, fmt.Errorf("lego: account key: %w", err)
	}

	account := &acmeAccount{
		email:      email,
		privateKey: accountKey,
	}

	conf := lego.NewConfig(account)
	conf.Certificate.KeyType = certcrypto.RSA2048
	if staging {
		conf.CADirURL = lego.LEDirectoryStaging
	} else {
		conf.CADirURL = lego.LEDirectoryProduction
	}

	client, err := lego.NewClient(conf)
	if err != nil {
		return nil, fmt.Errorf("lego: %w", err)
	}

	dnsProvider, err := route53.NewDNSProvider()
	if err != nil {
		return nil, fmt.Errorf("lego: route53: %w", err)
	}

	if err := client.Challenge.SetDNS01Provider(dnsProvider); err != nil {
		return nil, err
	}

	// nothing persists between runs, so register a fresh account each time
	reg, err := client.Registration.Register(registration.RegisterOptions{TermsOfServiceAgreed: true})
	if err != nil {
		return nil, fmt.Errorf("lego: register: %w", err)
	}
	account.registration = reg

	l.logl.Info.Printf("obtaining certificate for %v", domains)

	resp, err := client.Certificate.Obtain(certificate.ObtainRequest{
		Domains: domains,
		Bundle:  false,
	})
	if err != nil {
		return nil, fmt.Errorf("lego: obtain: %w", err)
	}

	return &Issued{
		CertPem: string(resp.Certificate),
		// mirror certbot's fullchain.pem: leaf first, then intermediates
		ChainPem: string(resp.Certificate) + string(resp.IssuerCertificate),
		KeyPem:   string(resp.PrivateKey),
	}, nil
}

// implements lego's registration.User
type acmeAccount struct {
	email        string
	registration *registration.Resource
	privateKey   crypto.PrivateKey
}

func (a *acmeAccount) GetEmail() string                        { return a.email }
func (a *acmeAccount) GetRegistration() *registration.Resource { return a.registration }
func (a *acmeAccount) GetPrivateKey() crypto.PrivateKey        { return a.privateKey }
