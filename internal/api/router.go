package api

import (
	"net/http"

	_ "github.com/AlexZinkM/gif-portal/docs"
	"github.com/AlexZinkM/gif-portal/internal/handler"
	"github.com/AlexZinkM/gif-portal/internal/portal"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(p *portal.Portal, balances handler.BalanceSource) http.Handler {
	portalHandler := handler.NewPortalHandler(p, balances)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Portal endpoints
	mux.HandleFunc("/portal/state", portalHandler.State)
	mux.HandleFunc("/portal/connect", portalHandler.Connect)
	mux.HandleFunc("/portal/disconnect", portalHandler.Disconnect)
	mux.HandleFunc("/portal/initialize", portalHandler.Initialize)
	mux.HandleFunc("/portal/refresh", portalHandler.Refresh)
	mux.HandleFunc("/portal/gifs", portalHandler.Gifs)
	mux.HandleFunc("/portal/input", portalHandler.Input)
	mux.HandleFunc("/portal/balance", portalHandler.Balance)

	return mux
}
