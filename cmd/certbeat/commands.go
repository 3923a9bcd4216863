package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/certbeat/certbeat/pkg/acmstore"
	"github.com/certbeat/certbeat/pkg/certrecord"
	"github.com/certbeat/certbeat/pkg/issuer"
	"github.com/certbeat/certbeat/pkg/renewal"
	"github.com/certbeat/certbeat/pkg/secretstore"
	"github.com/function61/gokit/jsonfile"
	"github.com/function61/gokit/logex"
	"github.com/scylladb/termtables"
)

func ensure(ctx context.Context, logger *log.Logger) error {
	manager, err := managerFromEnv(logger)
	if err != nil {
		return err
	}

	record, err := manager.EnsureCurrent(ctx)
	if err != nil {
		return err
	}

	return jsonfile.Marshal(os.Stdout, record)
}

func status(ctx context.Context, logger *log.Logger) error {
	manager, err := managerFromEnv(logger)
	if err != nil {
		return err
	}

	record, err := manager.FindCurrent(ctx)
	if err != nil {
		return err
	}

	if record == nil {
		fmt.Println("no current certificate")
		return nil
	}

	tbl := termtables.CreateTable()
	tbl.AddHeaders("Identifier", "Expires", "Days remaining")
	tbl.AddRow(
		record.Identifier,
		record.NotAfter.Format("2006-01-02"),
		certrecord.DaysRemaining(record.NotAfter, time.Now()))

	fmt.Println(tbl.Render())

	return nil
}

func renew(ctx context.Context, logger *log.Logger) error {
	manager, err := managerFromEnv(logger)
	if err != nil {
		return err
	}

	record, err := manager.ForceRenew(ctx)
	if err != nil {
		return err
	}

	return jsonfile.Marshal(os.Stdout, record)
}

func managerFromEnv(logger *log.Logger) (*renewal.Manager, error) {
	conf, err := renewal.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}

	acmeClient, err := issuer.FromEnv(logex.Prefix("issuer", logger))
	if err != nil {
		return nil, err
	}

	return renewal.New(
		*conf,
		acmstore.New(sess),
		secretstore.New(sess),
		acmeClient,
		logger), nil
}
