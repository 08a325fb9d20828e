package connecting

import (
	"context"
	"fmt"

	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
	"github.com/vfg2006/open-finance-api/pkg/log"
)

type state int

const (
	stateLookup state = iota
	stateDiscover
	stateMerge
	stateDone
)

func (s state) String() string {
	switch s {
	case stateLookup:
		return "lookup"
	case stateDiscover:
		return "discover"
	case stateMerge:
		return "merge"
	default:
		return "done"
	}
}

// connectRun acumula o estado de uma sincronização
type connectRun struct {
	userID      int
	cpf         string
	institution *domain.Institution

	customer       *domain.ExternalCustomer
	accounts       []domain.ExternalAccount
	consentRenewed bool

	result *domain.ConnectResult
}

func (s *Service) step(ctx context.Context, st state, run *connectRun) (state, error) {
	switch st {
	case stateLookup:
		return s.lookup(ctx, run)
	case stateDiscover:
		return s.discover(ctx, run)
	case stateMerge:
		return s.merge(ctx, run)
	default:
		return stateDone, nil
	}
}

func (s *Service) lookup(ctx context.Context, run *connectRun) (state, error) {
	customer, err := s.integrator.FindCustomer(ctx, run.institution.BaseURL, run.cpf)
	if err == nil {
		run.customer = customer
		return stateDiscover, nil
	}

	if !ofdomain.IsNotFound(err) {
		return stateDone, gatewayFailure(ErrCustomerLookup, run.institution.Name, err)
	}

	// Cliente não existe mais na instituição: o espelho local deixa de valer
	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":     run.userID,
		"institution": run.institution.Name,
	}).Warn("Cliente não encontrado na instituição, removendo contas locais")

	removed, err := s.accountRepository.DeleteByUserAndInstitution(ctx, run.userID, run.institution.Name)
	if err != nil {
		return stateDone, NewConnectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, run.institution.Name, "Falha ao remover contas locais")
	}

	run.result = &domain.ConnectResult{
		Institution: run.institution.Name,
		Status:      domain.ConnectStatusLinkRemoved,
		Message:     fmt.Sprintf("Vínculo removido: cliente não encontrado na instituição %s.", run.institution.Name),
		Accounts:    []*domain.LocalAccount{},
		Removed:     removed,
	}
	return stateDone, nil
}

// discover renova o consentimento no máximo uma vez; a segunda falha encerra a sincronização
func (s *Service) discover(ctx context.Context, run *connectRun) (state, error) {
	accounts, err := s.integrator.DiscoverAccounts(ctx, run.institution.BaseURL, run.customer.ID)
	if err == nil {
		run.accounts = accounts
		return stateMerge, nil
	}

	consentRequired := ofdomain.IsForbidden(err) || ofdomain.IsNotFound(err)
	if !consentRequired || run.consentRenewed {
		return stateDone, gatewayFailure(ErrAccountDiscovery, run.institution.Name, err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":     run.userID,
		"institution": run.institution.Name,
		"status_code": ofdomain.StatusCode(err),
	}).Info("Acesso negado na descoberta de contas, renovando consentimento")

	run.consentRenewed = true
	if _, err := s.integrator.CreateConsent(ctx, run.institution.BaseURL, run.customer.ID); err != nil {
		return stateDone, gatewayFailure(ErrConsentCreation, run.institution.Name, err)
	}

	return stateDiscover, nil
}

// merge grava as contas descobertas e remove as que a instituição não reporta mais
func (s *Service) merge(ctx context.Context, run *connectRun) (state, error) {
	accounts, keepIDs, err := s.toLocalAccounts(run)
	if err != nil {
		return stateDone, err
	}

	saved, err := s.accountRepository.Upsert(ctx, accounts)
	if err != nil {
		return stateDone, NewConnectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, run.institution.Name, "Falha ao gravar contas")
	}

	removed, err := s.accountRepository.DeleteMissing(ctx, run.userID, run.institution.Name, keepIDs)
	if err != nil {
		return stateDone, NewConnectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, run.institution.Name, "Falha ao remover contas encerradas")
	}

	run.result = &domain.ConnectResult{
		Institution: run.institution.Name,
		Status:      domain.ConnectStatusConnected,
		Message:     fmt.Sprintf("Instituição '%s' conectada com sucesso!", run.institution.Name),
		Accounts:    saved,
		Removed:     removed,
	}
	return stateDone, nil
}

// toLocalAccounts deduplica pelo id externo (a última ocorrência vence)
func (s *Service) toLocalAccounts(run *connectRun) ([]*domain.LocalAccount, []string, error) {
	index := make(map[string]int, len(run.accounts))
	accounts := make([]*domain.LocalAccount, 0, len(run.accounts))
	keepIDs := make([]string, 0, len(run.accounts))

	for _, ext := range run.accounts {
		// O id local só é usado em inserção; em conflito o banco mantém o existente
		id, err := s.generateID()
		if err != nil {
			return nil, nil, NewConnectError(ErrGenerateID, apiErrors.ErrInternalServer, run.institution.Name, "Falha ao gerar identificador da conta")
		}

		local := &domain.LocalAccount{
			ID:                 id,
			UserID:             run.userID,
			InstitutionName:    run.institution.Name,
			AccountType:        ext.Type,
			Balance:            ext.Balance,
			Currency:           ext.Currency,
			ExternalCustomerID: run.customer.ID,
			ExternalAccountID:  ext.ID,
		}

		if i, ok := index[ext.ID]; ok {
			accounts[i] = local
			continue
		}

		index[ext.ID] = len(accounts)
		accounts = append(accounts, local)
		keepIDs = append(keepIDs, ext.ID)
	}

	return accounts, keepIDs, nil
}
