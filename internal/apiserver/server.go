// Package apiserver assembles the HTTP surface: routing, middleware and the
// http.Server lifecycle. Handlers receive their dependencies explicitly at
// construction; there are no package-level singletons.
package apiserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kostscope/kostscope/internal/config"
	"github.com/kostscope/kostscope/internal/mock"
	"github.com/kostscope/kostscope/internal/store"
	"github.com/kostscope/kostscope/pkg/insight"
)

// NewServer creates a new HTTP server for the REST API.
func NewServer(cfg *config.Config, db *store.DB, seeder *mock.Seeder, svc *insight.Service) *http.Server {
	router := NewRouter(db, seeder, svc)

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
