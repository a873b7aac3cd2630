package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bookstore-api/internal/config"
	"bookstore-api/internal/db"
	"bookstore-api/internal/httpserver"
	bookrepo "bookstore-api/internal/repository/book"
	cartrepo "bookstore-api/internal/repository/cart"
	orderrepo "bookstore-api/internal/repository/order"
	statsrepo "bookstore-api/internal/repository/stats"
	booksvc "bookstore-api/internal/service/book"
	cartsvc "bookstore-api/internal/service/cart"
	ordersvc "bookstore-api/internal/service/order"
	sessionsvc "bookstore-api/internal/service/session"
	statssvc "bookstore-api/internal/service/stats"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	bookRepo := bookrepo.NewPostgres(dbpool, logger)
	bookService := booksvc.New(bookRepo)
	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo, bookRepo)
	orderRepo := orderrepo.NewPostgres(dbpool)
	orderService := ordersvc.New(orderRepo)
	statsRepo := statsrepo.NewPostgres(dbpool)
	statsService := statssvc.New(statsRepo)
	sessionService := sessionsvc.New()

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:    cartService,
		OrderSvc:   orderService,
		BookSvc:    bookService,
		StatsSvc:   statsService,
		SessionSvc: sessionService,
	}, cfg.CORSAllowOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
