package handler

import (
	"net/http"

	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/internal/usecases/connecting"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
	"github.com/vfg2006/open-finance-api/pkg/log"
)

type ConnectRequest struct {
	InstitutionID int `json:"institution_id"`
}

func ListInstitutions(service connecting.ConnectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		institutions, err := service.ListInstitutions(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar instituições")
			return
		}

		writeJSON(w, r, http.StatusOK, institutions)
	}
}

// ConnectInstitution sincroniza as contas do usuário com a instituição escolhida.
// Responde 201 quando conectado e 200 quando o vínculo foi removido.
func ConnectInstitution(service connecting.ConnectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req ConnectRequest
		if err := decodeJSON(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.Connect(r.Context(), claims.UserID, req.InstitutionID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao conectar instituição")
			return
		}

		status := http.StatusCreated
		if result.Status == domain.ConnectStatusLinkRemoved {
			status = http.StatusOK
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"institution": result.Institution,
			"status":      result.Status,
			"accounts":    len(result.Accounts),
		}).Info("Sincronização com instituição concluída")

		writeJSON(w, r, status, result)
	}
}
