// Package migration aplica os scripts SQL versionados (V<n>__<descricao>.sql)
// e registra cada execução na tabela schema_migrations.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/open-finance-api/infrastructure/database/postgres"
)

const migrationsTable = "schema_migrations"

//go:embed sql/*.sql
var embedded embed.FS

var fileNamePattern = regexp.MustCompile(`^V(\d+)__(.+)\.sql$`)

type Migration struct {
	Version     int
	Description string
	Filename    string
}

type Status struct {
	Migration
	Applied bool
}

// Load lê os scripts de fsys ordenados pela versão numérica
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	seen := make(map[int]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		match := fileNamePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			return nil, fmt.Errorf("nome de migration inválido: %s", entry.Name())
		}

		version, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("versão inválida em %s: %w", entry.Name(), err)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("versão %d duplicada: %s e %s", version, other, entry.Name())
		}
		seen[version] = entry.Name()

		migrations = append(migrations, Migration{
			Version:     version,
			Description: strings.ReplaceAll(match[2], "_", " "),
			Filename:    entry.Name(),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Pending filtra as migrations ainda não aplicadas com sucesso
func Pending(all []Migration, applied map[int]bool) []Migration {
	pending := make([]Migration, 0, len(all))
	for _, m := range all {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending
}

type Migrator struct {
	conn *postgres.Connection
	fsys fs.FS
}

func NewMigrator(conn *postgres.Connection) (*Migrator, error) {
	fsys, err := fs.Sub(embedded, "sql")
	if err != nil {
		return nil, err
	}
	return &Migrator{conn: conn, fsys: fsys}, nil
}

// Migrate aplica as migrations pendentes em ordem e para na primeira falha
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}

	all, err := Load(m.fsys)
	if err != nil {
		return 0, err
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	pending := Pending(all, applied)
	if len(pending) == 0 {
		logrus.Info("✓ Nenhuma migration pendente. Banco de dados atualizado!")
		return 0, nil
	}

	logrus.Infof("%d migration(s) pendente(s)", len(pending))

	for i, migration := range pending {
		if err := m.apply(ctx, migration); err != nil {
			return i, err
		}
	}

	return len(pending), nil
}

// Info devolve o estado de cada migration conhecida
func (m *Migrator) Info(ctx context.Context) ([]Status, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	all, err := Load(m.fsys)
	if err != nil {
		return nil, err
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(all))
	for _, migration := range all {
		statuses = append(statuses, Status{Migration: migration, Applied: applied[migration.Version]})
	}
	return statuses, nil
}

func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	script, err := fs.ReadFile(m.fsys, migration.Filename)
	if err != nil {
		return fmt.Errorf("erro ao ler %s: %w", migration.Filename, err)
	}

	logger := logrus.WithFields(logrus.Fields{
		"version":     migration.Version,
		"description": migration.Description,
	})
	logger.Info("Executando migration")

	startTime := time.Now()
	err = m.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(script)); err != nil {
			return err
		}
		return record(ctx, tx, migration, time.Since(startTime), true)
	})
	if err != nil {
		logger.WithError(err).Error("✗ Migration falhou")
		if recErr := record(ctx, m.conn, migration, time.Since(startTime), false); recErr != nil {
			logger.WithError(recErr).Error("Erro ao registrar falha da migration")
		}
		return fmt.Errorf("migration V%d falhou: %w", migration.Version, err)
	}

	logger.WithField("execution_ms", time.Since(startTime).Milliseconds()).Info("✓ Migration aplicada com sucesso")
	return nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+migrationsTable+` (
			id SERIAL PRIMARY KEY,
			version VARCHAR(255) UNIQUE NOT NULL,
			description VARCHAR(500),
			installed_on TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			execution_time INTEGER,
			success BOOLEAN DEFAULT TRUE
		)`)
	if err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %w", migrationsTable, err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[int]bool, error) {
	query, args, err := squirrel.
		Select("version").
		From(migrationsTable).
		Where(squirrel.Eq{"success": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := m.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar migrations aplicadas: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		version, err := strconv.Atoi(raw)
		if err != nil {
			logrus.WithField("version", raw).Warn("Versão desconhecida em schema_migrations")
			continue
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// record grava o resultado; uma nova tentativa sobrescreve a falha anterior
func record(ctx context.Context, q postgres.Queryer, migration Migration, elapsed time.Duration, success bool) error {
	query, args, err := squirrel.
		Insert(migrationsTable).
		Columns("version", "description", "execution_time", "success").
		Values(strconv.Itoa(migration.Version), migration.Description, elapsed.Milliseconds(), success).
		Suffix(`ON CONFLICT (version) DO UPDATE SET
			description = EXCLUDED.description,
			execution_time = EXCLUDED.execution_time,
			success = EXCLUDED.success,
			installed_on = CURRENT_TIMESTAMP`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, query, args...)
	return err
}
