package main

import (
	"fmt"
	"os"

	"github.com/certbeat/certbeat/pkg/exampleserver"
	"github.com/function61/gokit/dynversion"
	"github.com/function61/gokit/logex"
	"github.com/function61/gokit/ossignal"
	"github.com/spf13/cobra"
)

func main() {
	// the Lambda runtime delivers no CLI args, so detect it from the environment
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambdaEntry()
		return
	}

	app := &cobra.Command{
		Use:     os.Args[0],
		Short:   "Certbeat keeps your ACM certificate fresh",
		Version: dynversion.Version,
	}

	app.AddCommand(ensureEntry())
	app.AddCommand(statusEntry())
	app.AddCommand(renewEntry())
	app.AddCommand(exampleserver.Entrypoint())

	if err := app.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func ensureEntry() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure",
		Short: "Renew the certificate if missing or expiring soon, then print it",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()
			if err := ensure(ossignal.InterruptOrTerminateBackgroundCtx(rootLogger), rootLogger); err != nil {
				panic(err)
			}
		},
	}
}

func statusEntry() *cobra.Command {
	return &cobra.Command{
		Use:   "cert-status",
		Short: "Show the current certificate without renewing anything",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()
			if err := status(ossignal.InterruptOrTerminateBackgroundCtx(rootLogger), rootLogger); err != nil {
				panic(err)
			}
		},
	}
}

func renewEntry() *cobra.Command {
	return &cobra.Command{
		Use:   "renew",
		Short: "Renew unconditionally, even if the current certificate is still fresh",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()
			if err := renew(ossignal.InterruptOrTerminateBackgroundCtx(rootLogger), rootLogger); err != nil {
				panic(err)
			}
		},
	}
}
