package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/open-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/open-finance-api/internal/domain"
)

const financialAccountsTable = "financial_accounts"

var accountColumns = []string{
	"id", "user_id", "institution_name", "account_type", "balance", "currency",
	"if_customer_id", "if_account_id", "created_at", "updated_at",
}

// AccountRepository persiste o espelho local das contas externas.
// Todas as leituras ignoram contas com deleted_at preenchido.
type AccountRepository interface {
	ListByUser(ctx context.Context, userID int) ([]*domain.LocalAccount, error)
	ListByUserAndInstitution(ctx context.Context, userID int, institutionName string) ([]*domain.LocalAccount, error)
	GetByID(ctx context.Context, accountID string) (*domain.LocalAccount, error)
	Upsert(ctx context.Context, accounts []*domain.LocalAccount) ([]*domain.LocalAccount, error)
	DeleteByUserAndInstitution(ctx context.Context, userID int, institutionName string) (int64, error)
	DeleteMissing(ctx context.Context, userID int, institutionName string, keepExternalIDs []string) (int64, error)
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) selectAccounts() squirrel.SelectBuilder {
	return squirrel.
		Select(accountColumns...).
		From(financialAccountsTable).
		Where(squirrel.Eq{"deleted_at": nil}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *accountRepository) ListByUser(ctx context.Context, userID int) ([]*domain.LocalAccount, error) {
	return r.list(ctx, r.selectAccounts().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("institution_name ASC", "created_at ASC"))
}

func (r *accountRepository) ListByUserAndInstitution(ctx context.Context, userID int, institutionName string) ([]*domain.LocalAccount, error) {
	return r.list(ctx, r.selectAccounts().
		Where(squirrel.Eq{"user_id": userID, "institution_name": institutionName}).
		OrderBy("created_at ASC"))
}

func (r *accountRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*domain.LocalAccount, error) {
	accountsSQL, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, accountsSQL, args...)
	if err != nil {
		return nil, wrapDBError("listar contas", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

func (r *accountRepository) GetByID(ctx context.Context, accountID string) (*domain.LocalAccount, error) {
	accountSQL, args, err := r.selectAccounts().
		Where(squirrel.Eq{"id": accountID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	acc, err := scanAccount(r.conn.QueryRowContext(ctx, accountSQL, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError("buscar conta", err)
	}

	return acc, nil
}

// Upsert grava as contas pela chave (institution_name, if_account_id).
// Em conflito atualiza saldo e metadados, preservando id e created_at, e reativa contas removidas.
func (r *accountRepository) Upsert(ctx context.Context, accounts []*domain.LocalAccount) ([]*domain.LocalAccount, error) {
	if len(accounts) == 0 {
		return []*domain.LocalAccount{}, nil
	}

	query := squirrel.StatementBuilder.
		Insert(financialAccountsTable).
		Columns("id", "user_id", "institution_name", "account_type", "balance", "currency", "if_customer_id", "if_account_id").
		PlaceholderFormat(squirrel.Dollar)

	for _, acc := range accounts {
		query = query.Values(
			acc.ID,
			acc.UserID,
			acc.InstitutionName,
			acc.AccountType,
			acc.Balance,
			acc.Currency,
			acc.ExternalCustomerID,
			acc.ExternalAccountID,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (institution_name, if_account_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			account_type = EXCLUDED.account_type,
			balance = EXCLUDED.balance,
			currency = EXCLUDED.currency,
			if_customer_id = EXCLUDED.if_customer_id,
			deleted_at = NULL,
			updated_at = NOW()
		RETURNING id, user_id, institution_name, account_type, balance, currency,
			if_customer_id, if_account_id, created_at, updated_at
	`)

	upsertSQL, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, upsertSQL, args...)
	if err != nil {
		return nil, wrapDBError("gravar contas", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

func (r *accountRepository) DeleteByUserAndInstitution(ctx context.Context, userID int, institutionName string) (int64, error) {
	return r.softDelete(ctx, squirrel.Eq{"user_id": userID, "institution_name": institutionName})
}

// DeleteMissing remove as contas da instituição que não vieram na última sincronização.
// Com keepExternalIDs vazio todas as contas da instituição são removidas.
func (r *accountRepository) DeleteMissing(ctx context.Context, userID int, institutionName string, keepExternalIDs []string) (int64, error) {
	if keepExternalIDs == nil {
		// pq.Array(nil) vira NULL e o filtro NOT ANY(NULL) não remove nada
		keepExternalIDs = []string{}
	}

	return r.softDelete(ctx, squirrel.And{
		squirrel.Eq{"user_id": userID, "institution_name": institutionName},
		squirrel.Expr("NOT (if_account_id = ANY(?))", pq.Array(keepExternalIDs)),
	})
}

func (r *accountRepository) softDelete(ctx context.Context, where squirrel.Sqlizer) (int64, error) {
	deleteSQL, args, err := squirrel.
		Update(financialAccountsTable).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(where).
		Where(squirrel.Eq{"deleted_at": nil}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.ExecContext(ctx, deleteSQL, args...)
	if err != nil {
		return 0, wrapDBError("remover contas", err)
	}

	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.LocalAccount, error) {
	acc := &domain.LocalAccount{}

	var customerID sql.NullString
	if err := row.Scan(
		&acc.ID,
		&acc.UserID,
		&acc.InstitutionName,
		&acc.AccountType,
		&acc.Balance,
		&acc.Currency,
		&customerID,
		&acc.ExternalAccountID,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	acc.ExternalCustomerID = customerID.String

	return acc, nil
}

func scanAccounts(rows *sql.Rows) ([]*domain.LocalAccount, error) {
	accounts := make([]*domain.LocalAccount, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, wrapDBError("ler conta", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterar contas", err)
	}

	return accounts, nil
}
