// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/radheshyam-patil/devops-lab/internal/config"
	"github.com/radheshyam-patil/devops-lab/internal/controller"
	"github.com/radheshyam-patil/devops-lab/internal/db"
	"github.com/radheshyam-patil/devops-lab/internal/handler"
	"github.com/radheshyam-patil/devops-lab/internal/queue"
	"github.com/radheshyam-patil/devops-lab/internal/repository"
	"github.com/radheshyam-patil/devops-lab/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}
	cfg := config.Load()

	ready := &handler.Readiness{}

	// Repositories get their handle once the sequencer finishes; the
	// readiness gate keeps requests out until then.
	customerRepo := &repository.CustomerRepository{}
	eventRepo := &repository.AuditEventRepository{}

	var q queue.Queue
	if cfg.AMQPURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("❌ failed to connect to message broker: %v", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
		log.Println("✅ Connected to message broker")
	} else {
		q = queue.NewInMemoryQueue()
	}

	customerService := &service.CustomerService{
		CustomerRepo: customerRepo,
		EventRepo:    eventRepo,
		Queue:        q,
	}

	customerController := &controller.CustomerController{
		CustomerService: customerService,
	}

	healthHandler := &handler.HealthHandler{Ready: ready}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", healthHandler.Root)

	// Customer routes
	r.Route("/api/customers", func(r chi.Router) {
		r.Use(healthHandler.RequireReady)
		r.Post("/", customerController.CreateCustomer)
		r.Get("/", customerController.ListCustomers)
		r.Delete("/", customerController.DeleteAllCustomers)
		r.Get("/{id}", customerController.GetCustomer)
		r.Put("/{id}", customerController.UpdateCustomer)
		r.Delete("/{id}", customerController.DeleteCustomer)
		r.Get("/{id}/events", customerController.ListCustomerEvents)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Println("🚀 Server running on :" + cfg.Port)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Connect, authenticate, sync; exits non-zero when retries are
	// exhausted and the API never opens.
	conn, err := db.NewSequencer(cfg.DSN()).Run()
	if err != nil {
		log.Fatalf("❌ startup failed: %v", err)
	}
	defer conn.Close()

	customerRepo.DB = conn
	eventRepo.DB = conn
	if err := queue.StartAuditSubscriber(q, eventRepo); err != nil {
		log.Println("⚠️ failed to start audit subscriber:", err)
	}

	ready.Set()
	log.Println("✅ Connected to database, schema synced, API enabled")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
