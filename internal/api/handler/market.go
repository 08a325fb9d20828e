package handler

import (
	"net/http"

	"github.com/vfg2006/open-finance-api/internal/usecases/analyzing"
	"github.com/vfg2006/open-finance-api/internal/usecases/catalog"
)

func ListProducts(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := service.ListProducts(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar produtos")
			return
		}

		writeJSON(w, r, http.StatusOK, products)
	}
}

// GetDashboard monta o dashboard do usuário; falhas por conta degradam sem abortar
func GetDashboard(service analyzing.AnalyzeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		dashboard, err := service.Analyze(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar o dashboard")
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard)
	}
}
