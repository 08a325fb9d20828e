package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/open-finance-api/internal/usecases/account"
)

func ListAccounts(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accounts, err := service.ListAccounts(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar contas")
			return
		}

		writeJSON(w, r, http.StatusOK, accounts)
	}
}

// ConsolidatedBalances busca o saldo ao vivo de cada conta local
func ConsolidatedBalances(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		balances, err := service.GetConsolidatedBalances(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao consolidar saldos")
			return
		}

		writeJSON(w, r, http.StatusOK, balances)
	}
}

func ListTransactions(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		transactions, err := service.GetTransactions(r.Context(), claims.UserID, accountID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar transações")
			return
		}

		writeJSON(w, r, http.StatusOK, transactions)
	}
}

func ListInvestments(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		report, err := service.GetInvestments(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao consolidar investimentos")
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}
