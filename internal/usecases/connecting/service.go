// Package connecting sincroniza o espelho local das contas de um usuário com uma instituição.
package connecting

import (
	"context"
	"fmt"

	"github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance"
	"github.com/vfg2006/open-finance-api/infrastructure/repository"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
	"github.com/vfg2006/open-finance-api/pkg/log"
	"github.com/vfg2006/open-finance-api/pkg/metrics"
	"github.com/vfg2006/open-finance-api/pkg/utils"
)

type ConnectService interface {
	Connect(ctx context.Context, userID int, institutionID int) (*domain.ConnectResult, error)
	ListInstitutions(ctx context.Context) ([]*domain.Institution, error)
}

type Service struct {
	userRepository        repository.UserRepository
	institutionRepository repository.InstitutionRepository
	accountRepository     repository.AccountRepository
	integrator            openfinance.OpenFinanceIntegrator
	locker                Locker
	metrics               metrics.Recorder
	generateID            func() (string, error)
}

func NewService(
	userRepository repository.UserRepository,
	institutionRepository repository.InstitutionRepository,
	accountRepository repository.AccountRepository,
	integrator openfinance.OpenFinanceIntegrator,
	locker Locker,
	recorder metrics.Recorder,
) *Service {
	if locker == nil {
		locker = NewKeyedMutex()
	}
	if recorder == nil {
		recorder = metrics.NoOp{}
	}

	return &Service{
		userRepository:        userRepository,
		institutionRepository: institutionRepository,
		accountRepository:     accountRepository,
		integrator:            integrator,
		locker:                locker,
		metrics:               recorder,
		generateID:            utils.GenerateID,
	}
}

func (s *Service) ListInstitutions(ctx context.Context) ([]*domain.Institution, error) {
	institutions, err := s.institutionRepository.List(ctx)
	if err != nil {
		return nil, NewConnectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", "Falha ao listar instituições")
	}
	return institutions, nil
}

// Connect executa Lookup -> Discover -> Merge para o par (usuário, instituição).
// Cliente inexistente na instituição não é erro: as contas locais são removidas e o
// resultado volta com status LINK_REMOVED.
func (s *Service) Connect(ctx context.Context, userID int, institutionID int) (*domain.ConnectResult, error) {
	run, err := s.prepare(ctx, userID, institutionID)
	if err != nil {
		s.metrics.RecordReconcile("invalid")
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id":     userID,
		"institution": run.institution.Name,
	})

	unlock, err := s.locker.Lock(ctx, lockKey(userID, run.institution.Name))
	if err != nil {
		logger.WithError(err).Error("Não foi possível obter o lock da sincronização")
		s.metrics.RecordReconcile("failed")
		return nil, NewConnectError(ErrLockUnavailable, apiErrors.ErrInternalServer, run.institution.Name, err.Error())
	}
	defer unlock()

	for st := stateLookup; st != stateDone; {
		st, err = s.step(ctx, st, run)
		if err != nil {
			logger.WithError(err).Error("Sincronização com a instituição abortada")
			s.metrics.RecordReconcile("failed")
			return nil, err
		}
	}

	s.metrics.RecordReconcile(string(run.result.Status))

	logger.WithFields(log.Fields{
		"accounts": len(run.result.Accounts),
		"removed":  run.result.Removed,
		"status":   run.result.Status,
	}).Info("Sincronização com a instituição concluída")

	return run.result, nil
}

// prepare valida usuário e instituição antes de qualquer chamada externa
func (s *Service) prepare(ctx context.Context, userID int, institutionID int) (*connectRun, error) {
	if institutionID <= 0 {
		return nil, NewConnectError(ErrInstitutionIDRequired, apiErrors.ErrMissingRequiredData, "", "institution_id é obrigatório")
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, NewConnectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", "Falha ao buscar usuário")
	}
	if user == nil {
		return nil, NewConnectError(ErrUserNotFound, apiErrors.ErrUserNotFound, "", "Usuário não encontrado")
	}

	cpf := utils.NormalizeCPF(user.CPF)
	if !utils.IsValidCPF(cpf) {
		return nil, NewConnectError(ErrInvalidCPF, apiErrors.ErrInvalidCPF, "", "CPF do usuário deve ter 11 dígitos")
	}

	institution, err := s.institutionRepository.GetByID(ctx, institutionID)
	if err != nil {
		return nil, NewConnectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "", "Falha ao buscar instituição")
	}
	if institution == nil || institution.BaseURL == "" {
		return nil, NewConnectError(ErrInstitutionNotFound, apiErrors.ErrInstitutionNotFound, "", fmt.Sprintf("Instituição %d não encontrada", institutionID))
	}

	return &connectRun{
		userID:      userID,
		cpf:         cpf,
		institution: institution,
	}, nil
}
