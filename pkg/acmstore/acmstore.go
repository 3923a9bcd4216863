// Inventory store for issued/imported certificates, backed by AWS ACM.
package acmstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/acm"
	"github.com/aws/aws-sdk-go/service/acm/acmiface"
	"github.com/certbeat/certbeat/pkg/certrecord"
)

// Summary is one line of the inventory listing - just enough to decide
// whether a certificate is worth describing in full.
type Summary struct {
	Identifier string
	Subject    string
}

type Inventory interface {
	// ListIssued lists all certificates in "issued" status
	ListIssued(ctx context.Context) ([]Summary, error)
	// Describe fetches full metadata for one certificate
	Describe(ctx context.Context, identifier string) (*certrecord.Info, error)
	// FetchBody fetches the PEM body and chain for one certificate
	FetchBody(ctx context.Context, identifier string) (cert string, chain string, err error)
	// Import registers a new certificate and returns its store-assigned identifier
	Import(ctx context.Context, cert string, chain string, privateKey string) (string, error)
}

type acmInventory struct {
	acm acmiface.ACMAPI
}

func New(sess *session.Session) Inventory {
	return &acmInventory{acm: acm.New(sess)}
}

func (a *acmInventory) ListIssued(ctx context.Context) ([]Summary, error) {
	summaries := []Summary{}

	err := a.acm.ListCertificatesPagesWithContext(ctx, &acm.ListCertificatesInput{
		CertificateStatuses: []*string{aws.String(acm.CertificateStatusIssued)},
	}, func(page *acm.ListCertificatesOutput, lastPage bool) bool {
		for _, summary := range page.CertificateSummaryList {
			summaries = append(summaries, Summary{
				Identifier: aws.StringValue(summary.CertificateArn),
				Subject:    aws.StringValue(summary.DomainName),
			})
		}

		return true
	})
	if err != nil {
		return nil, fmt.Errorf("acmstore list: %w", err)
	}

	return summaries, nil
}

func (a *acmInventory) Describe(ctx context.Context, identifier string) (*certrecord.Info, error) {
	result, err := a.acm.DescribeCertificateWithContext(ctx, &acm.DescribeCertificateInput{
		CertificateArn: aws.String(identifier),
	})
	if err != nil {
		return nil, fmt.Errorf("acmstore describe %s: %w", identifier, err)
	}

	detail := result.Certificate

	return &certrecord.Info{
		Identifier: aws.StringValue(detail.CertificateArn),
		Subject:    aws.StringValue(detail.DomainName),
		AltNames:   aws.StringValueSlice(detail.SubjectAlternativeNames),
		Issuer:     aws.StringValue(detail.Issuer),
		ImportedAt: detail.ImportedAt,
		NotAfter:   aws.TimeValue(detail.NotAfter),
	}, nil
}

func (a *acmInventory) FetchBody(ctx context.Context, identifier string) (string, string, error) {
	result, err := a.acm.GetCertificateWithContext(ctx, &acm.GetCertificateInput{
		CertificateArn: aws.String(identifier),
	})
	if err != nil {
		return "", "", fmt.Errorf("acmstore fetch %s: %w", identifier, err)
	}

	return aws.StringValue(result.Certificate), aws.StringValue(result.CertificateChain), nil
}

func (a *acmInventory) Import(ctx context.Context, cert string, chain string, privateKey string) (string, error) {
	result, err := a.acm.ImportCertificateWithContext(ctx, &acm.ImportCertificateInput{
		Certificate:      []byte(cert),
		CertificateChain: []byte(chain),
		PrivateKey:       []byte(privateKey),
	})
	if err != nil {
		return "", fmt.Errorf("acmstore import: %w", err)
	}

	return aws.StringValue(result.CertificateArn), nil
}
