package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calvinwijaya/blackjack-sim/internal/api"
	"github.com/calvinwijaya/blackjack-sim/internal/config"
	"github.com/calvinwijaya/blackjack-sim/internal/db"
	"github.com/calvinwijaya/blackjack-sim/internal/sim"
	"github.com/calvinwijaya/blackjack-sim/internal/store"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Parse command line flags
	var (
		port        = flag.String("port", "8080", "Server port")
		frontendURL = flag.String("frontend", "http://localhost:5173", "Frontend URL for CORS")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the store
	var runStore store.Store = store.NewMemoryStore()
	var database *db.Database
	if cfg.Store == "sqlite" {
		database, err = db.NewDatabase(cfg.SQLiteDSN)
		if err != nil {
			log.Printf("Warning: Failed to initialize database: %v", err)
			log.Println("Continuing with the in-memory store")
			database = nil
		} else {
			log.Println("Database initialized successfully")
			defer database.Close()
			runStore = store.NewDatabaseStore(database)
		}
	}
	if database == nil {
		log.Println("In-memory run store initialized")
	}

	// Initialize WebSocket hub
	hub := api.NewHub()
	go hub.Run()
	log.Println("WebSocket hub started")

	// Initialize API handlers
	handlers := api.NewHandlers(runStore, database, hub, sim.OptionsFromConfig(cfg), api.LimitsFromConfig(cfg))

	// Set up router
	r := mux.NewRouter()
	handlers.RegisterRoutes(r)

	// Add middleware for logging
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
		})
	})

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{*frontendURL},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Simulations run inside the request, so writes get a long timeout
	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Set up graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a termination signal
	<-stop

	log.Println("Shutting down server...")
}
