package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Eursukkul/rental-backoffice/internal/consumer"
	"github.com/Eursukkul/rental-backoffice/internal/handler"
	"github.com/Eursukkul/rental-backoffice/internal/middleware"
	"github.com/Eursukkul/rental-backoffice/pkg/rabbitmq"
	"github.com/Eursukkul/rental-backoffice/pkg/whatsapp"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the WhatsApp notification consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.migrate(ctx); err != nil {
				return err
			}
			startNotificationConsumer(a)

			e := newServer(a)
			log.Printf("Rental back-office starting on :%s", a.cfg.ServerPort)
			return e.Start(":" + a.cfg.ServerPort)
		},
	}
}

// startNotificationConsumer delivers queued WhatsApp messages. Without RabbitMQ
// messages are only returned to the caller as wa.me links.
func startNotificationConsumer(a *app) {
	if a.publisher == nil {
		return
	}
	mqConsumer, err := rabbitmq.NewConsumer(a.cfg.RabbitURL, rabbitmq.NotificationQueue, rabbitmq.RoutingWhatsApp)
	if err != nil {
		log.Printf("[App] notification consumer disabled: %v", err)
		return
	}
	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Printf("[App] notification consumer disabled: %v", err)
		mqConsumer.Close()
		return
	}

	wa := a.cfg.WhatsApp
	consumer.NewNotificationConsumer(whatsapp.NewClient(wa.APIURL, wa.PhoneNumberID, wa.Token)).Start(msgs)
}

func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "rental-backoffice"})
	})

	handler.NewContractHandler(a.contracts, a.signatures).RegisterRoutes(e)
	handler.NewPaymentHandler(a.payments).RegisterRoutes(e)
	handler.NewDocumentHandler(a.documents).RegisterRoutes(e)
	handler.NewSettingsHandler(a.settings).RegisterRoutes(e)
	handler.NewNotificationHandler(a.notifications).RegisterRoutes(e)
	return e
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed default templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.migrate(cmd.Context()); err != nil {
				return err
			}
			log.Println("[App] migration complete")
			return nil
		},
	}
}

func newContractCmd() *cobra.Command {
	var bookingID uint
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Generate the contract PDF for a booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			rendered, err := a.contracts.RenderText(ctx, bookingID)
			if err != nil {
				return err
			}
			for _, name := range rendered.Missing {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: unresolved placeholder {%s}\n", name)
			}

			path, err := a.contracts.GeneratePDF(ctx, bookingID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().UintVar(&bookingID, "booking", 0, "booking id")
	cmd.MarkFlagRequired("booking")
	return cmd
}
