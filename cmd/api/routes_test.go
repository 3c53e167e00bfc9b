package main

import (
	"testing"

	"github.com/PHPdro/menu-engineering-api/internal/analytics"
	"github.com/PHPdro/menu-engineering-api/internal/inventory"
	"github.com/PHPdro/menu-engineering-api/internal/menu"
	"github.com/PHPdro/menu-engineering-api/internal/sale"
	"github.com/PHPdro/menu-engineering-api/internal/supplier"
	"github.com/gin-gonic/gin"
)

// Handlers are never invoked here, only registered, so nil services are
// fine. Guards the served paths against drifting from the public API.
func TestSetupRouter_ServesExpectedPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := setupRouter(
		inventory.NewHandler(nil),
		supplier.NewHandler(nil),
		menu.NewHandler(nil),
		sale.NewHandler(nil),
		analytics.NewHandler(nil),
	)

	want := map[string]bool{
		"GET /analytics/menu-matrix":             false,
		"GET /analytics/menu-matrix-by-category": false,
		"GET /analytics/perishables-alerts":      false,
		"GET /analytics/price-trends":            false,
		"GET /analytics/traffic-flow":            false,
		"GET /analytics/breakeven":               false,
		"POST /sales":                            false,
		"GET /sales/:id":                         false,
		"GET /health":                            false,
	}

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		key := route.Method + " " + route.Path
		registered[key] = true
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}

	for key, seen := range want {
		if !seen {
			t.Errorf("route %s not registered", key)
		}
	}

	if registered["GET /analytics/menu-matrix/by-category"] {
		t.Error("category matrix must live at /analytics/menu-matrix-by-category, not a nested path")
	}
}
