package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/certbeat/certbeat/pkg/certrecord"
	"github.com/function61/gokit/logex"
)

// the scheduled-invocation deployment: each invocation runs the full renewal
// decision and returns the current certificate as the function's payload
func lambdaEntry() {
	rootLogger := logex.StandardLogger()

	lambda.Start(func(ctx context.Context) (*certrecord.Record, error) {
		manager, err := managerFromEnv(rootLogger)
		if err != nil {
			return nil, err
		}

		return manager.EnsureCurrent(ctx)
	})
}
