// Package main is the chatshop CLI: a serve command running the
// storefront HTTP service and a seed command initializing the data
// files.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bazarlab/chatshop/internal/catalog"
	"github.com/bazarlab/chatshop/internal/chat"
	"github.com/bazarlab/chatshop/internal/config"
	"github.com/bazarlab/chatshop/internal/genai"
	"github.com/bazarlab/chatshop/internal/httpapi"
	"github.com/bazarlab/chatshop/internal/invoice"
	"github.com/bazarlab/chatshop/internal/notify"
	"github.com/bazarlab/chatshop/internal/order"
	"github.com/bazarlab/chatshop/internal/store"
	"github.com/bazarlab/chatshop/internal/telemetry"
	"github.com/bazarlab/chatshop/internal/whatsapp"
)

const serviceName = "chatshop"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "chatshop",
		Short: "E-commerce chatbot storefront",
		Long: `chatshop serves a chat-style storefront: product lookup over chat,
orders with stock decrement and PDF invoices, sales reports, and a
WhatsApp Cloud API relay.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "chatshop.yaml", "path to config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Initialize the data files with the default catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(configPath)
		},
	}

	cmd.AddCommand(serveCmd, seedCmd)
	return cmd
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	tp, err := telemetry.InitTracer(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize tracer: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	mp, err := telemetry.InitMetrics(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down meter: %v", err)
		}
	}()

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	cat := catalog.NewService(st)
	if seeded, err := cat.SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	} else if seeded {
		log.Println("🌱 Seeded default catalog")
	}

	invoices, err := invoice.NewGenerator(cfg.InvoiceDir)
	if err != nil {
		return fmt.Errorf("failed to set up invoices: %w", err)
	}

	notifier := notify.NewEmailNotifier(cfg.Email.Host, cfg.Email.Port, cfg.Email.User, cfg.Email.Pass)
	orders := order.NewUseCase(st, invoices, notifier, cfg.TaxRate)

	generator := genai.NewClient(cfg.GenAI.URL, cfg.GenAI.Model)
	responder := chat.NewResponder(orders, cat, generator, st, cfg.LowStockThreshold)

	wa := whatsapp.NewClient("", cfg.WhatsApp.Token, cfg.WhatsApp.PhoneID)

	tracer := tp.Tracer(serviceName)
	handler := httpapi.NewHandler(orders, cat, responder, wa, cfg.WhatsApp.VerifyToken, cfg.InvoiceDir, tracer)
	router := httpapi.NewRouter(handler)

	log.Printf("🚀 chatshop listening on port %s", cfg.Port)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func seed(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	seeded, err := catalog.NewService(st).SeedDefaults()
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	if seeded {
		log.Printf("🌱 Seeded default catalog into %s", cfg.DataDir)
	} else {
		log.Println("Catalog already present, nothing to do")
	}
	return nil
}
