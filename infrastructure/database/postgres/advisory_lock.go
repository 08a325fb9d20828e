package postgres

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// AdvisoryLocker serializa seções críticas entre instâncias com pg_advisory_lock.
// Cada lock ocupa uma conexão dedicada do pool até ser liberado.
type AdvisoryLocker struct {
	conn *Connection
}

func NewAdvisoryLocker(conn *Connection) *AdvisoryLocker {
	return &AdvisoryLocker{conn: conn}
}

// Lock bloqueia até obter o lock da chave ou o contexto expirar
func (l *AdvisoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	dbConn, err := l.conn.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao reservar conexão para lock: %w", err)
	}

	if _, err := dbConn.ExecContext(ctx, "SELECT pg_advisory_lock(hashtext($1))", key); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("erro ao obter advisory lock %q: %w", key, err)
	}

	unlock := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := dbConn.ExecContext(releaseCtx, "SELECT pg_advisory_unlock(hashtext($1))", key); err != nil {
			logrus.WithError(err).WithField("lock_key", key).Error("Erro ao liberar advisory lock")
			// Descarta a conexão: o lock cai junto com a sessão
			_ = dbConn.Raw(func(any) error { return driver.ErrBadConn })
		}
		_ = dbConn.Close()
	}

	return unlock, nil
}
