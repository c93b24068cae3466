package controllers

import (
	"net/http"

	"github.com/tacocrew/tacocrew-backend/api/responses"
	stocksvc "github.com/tacocrew/tacocrew-backend/internal/stock"
	"github.com/tacocrew/tacocrew-backend/pkg/logger"
)

// StockGet returns the full catalog grouped by category plus the taco sizes.
func StockGet(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stock, err := svc.GetStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stock)
	}
}
