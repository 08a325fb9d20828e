package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/open-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/open-finance-api/internal/domain"
)

const institutionsTable = "institutions"

type InstitutionRepository interface {
	List(ctx context.Context) ([]*domain.Institution, error)
	GetByID(ctx context.Context, institutionID int) (*domain.Institution, error)
	GetByName(ctx context.Context, name string) (*domain.Institution, error)
}

type institutionRepository struct {
	conn postgres.Queryer
}

func NewInstitutionRepository(conn postgres.Queryer) InstitutionRepository {
	return &institutionRepository{
		conn: conn,
	}
}

func (r *institutionRepository) List(ctx context.Context) ([]*domain.Institution, error) {
	institutionsSQL, args, err := squirrel.
		Select("id", "name", "COALESCE(base_url, '')").
		From(institutionsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, institutionsSQL, args...)
	if err != nil {
		return nil, wrapDBError("listar instituições", err)
	}
	defer rows.Close()

	institutions := make([]*domain.Institution, 0)
	for rows.Next() {
		inst := &domain.Institution{}
		if err := rows.Scan(&inst.ID, &inst.Name, &inst.BaseURL); err != nil {
			return nil, wrapDBError("ler instituição", err)
		}
		institutions = append(institutions, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterar instituições", err)
	}

	return institutions, nil
}

func (r *institutionRepository) GetByID(ctx context.Context, institutionID int) (*domain.Institution, error) {
	return r.get(ctx, squirrel.Eq{"id": institutionID})
}

func (r *institutionRepository) GetByName(ctx context.Context, name string) (*domain.Institution, error) {
	return r.get(ctx, squirrel.Eq{"name": name})
}

func (r *institutionRepository) get(ctx context.Context, where squirrel.Eq) (*domain.Institution, error) {
	institutionSQL, args, err := squirrel.
		Select("id", "name", "COALESCE(base_url, '')").
		From(institutionsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	inst := &domain.Institution{}
	err = r.conn.QueryRowContext(ctx, institutionSQL, args...).Scan(&inst.ID, &inst.Name, &inst.BaseURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError("buscar instituição", err)
	}

	return inst, nil
}
