// Demo HTTPS server that serves with the managed certificate, to show how a
// downstream consumer uses the renewal output.
package exampleserver

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/certbeat/certbeat/pkg/acmstore"
	"github.com/certbeat/certbeat/pkg/issuer"
	"github.com/certbeat/certbeat/pkg/renewal"
	"github.com/certbeat/certbeat/pkg/secretstore"
	"github.com/function61/gokit/logex"
	"github.com/function61/gokit/ossignal"
	"github.com/function61/gokit/taskrunner"
	"github.com/spf13/cobra"
)

func Entrypoint() *cobra.Command {
	return &cobra.Command{
		Use:   "example-server",
		Short: "Start demo HTTPS server that serves using the managed certificate",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()
			if err := exampleServer(ossignal.InterruptOrTerminateBackgroundCtx(rootLogger), rootLogger); err != nil {
				panic(err)
			}
		},
	}
}

func exampleServer(ctx context.Context, logger *log.Logger) error {
	conf, err := renewal.ConfigFromEnv()
	if err != nil {
		return err
	}

	sess, err := session.NewSession()
	if err != nil {
		return err
	}

	acmeClient, err := issuer.FromEnv(logex.Prefix("issuer", logger))
	if err != nil {
		return err
	}

	manager := renewal.New(
		*conf,
		acmstore.New(sess),
		secretstore.New(sess),
		acmeClient,
		logex.Prefix("renewal", logger))

	// renews first if the stored certificate is missing or expiring soon
	record, err := manager.EnsureCurrent(ctx)
	if err != nil {
		return err
	}

	// chain PEM bundles the leaf first, so it pairs directly with the key
	keypair, err := tls.X509KeyPair([]byte(record.ChainPem), []byte(record.PrivateKey))
	if err != nil {
		return err
	}

	routes := http.NewServeMux()
	routes.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, "greetings from %s\n", req.URL.Path)
	})

	srv := &http.Server{
		Addr:    ":443",
		Handler: routes,
		TLSConfig: &tls.Config{
			Certificates: []tls.Certificate{keypair},
		},
	}

	// you don't have to use taskrunner, but it makes graceful stopping simpler
	tasks := taskrunner.New(ctx, logger)

	tasks.Start("http server (https://localhost)", func(_ context.Context, _ string) error {
		return removeGracefulServerClosedError(srv.ListenAndServeTLS("", ""))
	})

	// Go's HTTP server doesn't support stopping via context cancel, so we'll need
	// additional goroutine to map cancellation to Shutdown() call
	tasks.Start("http server shutdowner", httpShutdownTask(srv))

	return tasks.Wait()
}

// helper for making HTTP shutdown task. Go's http.Server is weird that we cannot use
// context cancellation to stop it, but instead we have to call srv.Shutdown()
func httpShutdownTask(server *http.Server) func(context.Context, string) error {
	return func(ctx context.Context, _ string) error {
		<-ctx.Done()
		// can't use task ctx b/c it'd cancel the Shutdown() itself
		return server.Shutdown(context.Background())
	}
}

func removeGracefulServerClosedError(httpServerError error) error {
	if httpServerError == http.ErrServerClosed {
		return nil
	} else {
		// some other error
		// (or nil, but http server should always exit with non-nil error)
		return httpServerError
	}
}
