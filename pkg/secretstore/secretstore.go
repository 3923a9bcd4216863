// Encrypted key-value storage for certificate private keys.
// Backed by AWS SSM Parameter Store (SecureString) in production.
package secretstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
)

// ErrNotFound means the store has no value under the requested name.
// For the Locator this is not an error - it just disqualifies a candidate.
var ErrNotFound = errors.New("secret not found")

type Store interface {
	// Get returns the decrypted value, or ErrNotFound
	Get(ctx context.Context, name string) (string, error)
	// Put stores value encrypted, overwriting any stale entry from a
	// previous partially failed run
	Put(ctx context.Context, name string, description string, value string) error
}

// PrivateKeyName derives the secret name for a certificate's private key:
// /<identity>/<certificate id>/PrivateKey, where the id is the last path
// segment of the store-assigned identifier (an ACM ARN).
func PrivateKeyName(identity string, certIdentifier string) string {
	parts := strings.Split(certIdentifier, "/")
	certId := parts[len(parts)-1]

	return "/" + identity + "/" + certId + "/PrivateKey"
}

type ssmStore struct {
	ssm ssmiface.SSMAPI
}

func New(sess *session.Session) Store {
	return &ssmStore{ssm: ssm.New(sess)}
}

func (s *ssmStore) Get(ctx context.Context, name string) (string, error) {
	result, err := s.ssm.GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == ssm.ErrCodeParameterNotFound {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("secretstore get %s: %w", name, err)
	}

	return aws.StringValue(result.Parameter.Value), nil
}

func (s *ssmStore) Put(ctx context.Context, name string, description string, value string) error {
	if _, err := s.ssm.PutParameterWithContext(ctx, &ssm.PutParameterInput{
		Name:        aws.String(name),
		Description: aws.String(description),
		Value:       aws.String(value),
		Type:        aws.String(ssm.ParameterTypeSecureString),
		Overwrite:   aws.Bool(true),
	}); err != nil {
		return fmt.Errorf("secretstore put %s: %w", name, err)
	}

	return nil
}
