package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"

	"github.com/MarcGrol/cartcheckout/lib/myhttpclient"
	"github.com/MarcGrol/cartcheckout/lib/mymetrics"
	"github.com/MarcGrol/cartcheckout/lib/mypublisher"
	"github.com/MarcGrol/cartcheckout/lib/mystore"
	"github.com/MarcGrol/cartcheckout/lib/mytime"
	"github.com/MarcGrol/cartcheckout/lib/myuuid"
	"github.com/MarcGrol/cartcheckout/services/checkoutbackend"
	"github.com/MarcGrol/cartcheckout/services/checkoutsession"
	"github.com/MarcGrol/cartcheckout/services/fakebackend"
	"github.com/MarcGrol/cartcheckout/services/statusboard"
	"github.com/MarcGrol/cartcheckout/services/warmup"
	"github.com/MarcGrol/cartcheckout/services/widget"
)

func main() {
	app := &cli.App{
		Name:  "cartcheckout",
		Usage: "Cart page with wallet and card checkout against a payment backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend-origin",
				Usage:   "Origin of the payment backend (e.g. https://payments.example.com)",
				EnvVars: []string{"BACKEND_ORIGIN"},
			},
			&cli.BoolFlag{
				Name:    "fake-backend",
				Usage:   "Use an in-process fake payment backend instead of backend-origin",
				EnvVars: []string{"FAKE_BACKEND"},
			},
			&cli.DurationFlag{
				Name:    "backend-timeout",
				Usage:   "Timeout of a single call to the payment backend",
				EnvVars: []string{"BACKEND_TIMEOUT"},
				Value:   myhttpclient.DefaultTimeout,
			},
			&cli.StringFlag{
				Name:     "wallet-client-id",
				Usage:    "Client id of the hosted wallet button",
				EnvVars:  []string{"WALLET_CLIENT_ID"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "wallet-sdk-url",
				Usage:   "Script of the hosted wallet button",
				EnvVars: []string{"WALLET_SDK_URL"},
				Value:   "https://www.paypal.com/sdk/js",
			},
			&cli.StringFlag{
				Name:    "wallet-disable-funding",
				Usage:   "Funding sources hidden in the wallet button",
				EnvVars: []string{"WALLET_DISABLE_FUNDING"},
				Value:   "card,credit,paylater",
			},
			&cli.StringFlag{
				Name:    "wallet-integration-source",
				Usage:   "Integration source reported to the wallet sdk",
				EnvVars: []string{"WALLET_INTEGRATION_SOURCE"},
				Value:   "integrationbuilder_sc",
			},
			&cli.BoolFlag{
				Name:    "redirect-silent-failures",
				Usage:   "Only log a failed card checkout, without telling the shopper",
				EnvVars: []string{"REDIRECT_SILENT_FAILURES"},
			},
			&cli.DurationFlag{
				Name:    "status-max-age",
				Usage:   "Forget the checkout status of sessions idle for this long",
				EnvVars: []string{"STATUS_MAX_AGE"},
				Value:   time.Hour,
			},
			&cli.StringFlag{
				Name:    "port",
				Usage:   "Port to listen on",
				EnvVars: []string{"PORT"},
				Value:   "8080",
			},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
}

func run(ctx *cli.Context) error {
	c := ctx.Context

	router := mux.NewRouter()

	nower := mytime.RealNower{}

	backend, err := createBackend(ctx, router)
	if err != nil {
		return err
	}

	statusStore, statusStoreCleanup, err := mystore.New[statusboard.SessionStatus](c)
	if err != nil {
		return fmt.Errorf("error creating status store: %s", err)
	}
	defer statusStoreCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, nower)
	if err != nil {
		return fmt.Errorf("error creating publisher: %s", err)
	}
	defer publisherCleanup()

	mymetrics.RegisterDefault()

	board := statusboard.New(statusStore, nower)
	go expireStatusesPeriodically(c, board, ctx.Duration("status-max-age"))

	coordinator := checkoutsession.NewCoordinator(checkoutsession.Config{
		SilentRedirectFailures: ctx.Bool("redirect-silent-failures"),
	}, backend, board, publisher)

	widgetService := widget.NewWebService(widget.Config{
		WalletSDKURL:            ctx.String("wallet-sdk-url"),
		WalletClientID:          ctx.String("wallet-client-id"),
		WalletDisableFunding:    ctx.String("wallet-disable-funding"),
		WalletIntegrationSource: ctx.String("wallet-integration-source"),
	}, coordinator, board, myuuid.RealUUIDer{})
	err = widgetService.RegisterEndpoints(c, router)
	if err != nil {
		return fmt.Errorf("error registering widget endpoints: %s", err)
	}

	warmup.NewService(board).RegisterEndpoints(c, router)

	return startWebServerBlocking(ctx.String("port"), router)
}

func createBackend(ctx *cli.Context, router *mux.Router) (checkoutbackend.Backend, error) {
	if ctx.Bool("fake-backend") {
		log.Printf("Using fake payment backend on /fake")
		fake, err := fakebackend.New(ctx.Context, myuuid.RealUUIDer{}, fmt.Sprintf("http://localhost:%s/fake", ctx.String("port")))
		if err != nil {
			return nil, fmt.Errorf("error creating fake backend: %s", err)
		}
		fake.RegisterEndpoints(ctx.Context, router.PathPrefix("/fake").Subrouter())
		return fake, nil
	}

	if ctx.String("backend-origin") == "" {
		return nil, fmt.Errorf("missing backend-origin (or use fake-backend)")
	}

	backend, err := checkoutbackend.New(ctx.String("backend-origin"), myhttpclient.New(ctx.Duration("backend-timeout")))
	if err != nil {
		return nil, fmt.Errorf("error creating backend client: %s", err)
	}
	return backend, nil
}

func expireStatusesPeriodically(c context.Context, board *statusboard.Board, maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}

	ticker := time.NewTicker(maxAge / 4)
	defer ticker.Stop()

	for {
		select {
		case <-c.Done():
			return
		case <-ticker.C:
			_, err := board.Expire(c, maxAge)
			if err != nil {
				log.Printf("Error expiring session statuses: %s", err)
			}
		}
	}
}

func startWebServerBlocking(port string, router *mux.Router) error {
	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		return fmt.Errorf("error starting webserver on port %s: %s", port, err)
	}
	return nil
}
