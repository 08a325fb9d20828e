package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/open-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/open-finance-api/infrastructure/migration"
	"github.com/vfg2006/open-finance-api/internal/config"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "aplica as migrations pendentes" }
func (*migrateCmd) Usage() string {
	return `migrate migrate

  Aplica em ordem as migrations ainda não registradas em schema_migrations.
  Para na primeira falha.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	migrator, closeConn, err := newMigrator(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao preparar migrations")
		return subcommands.ExitFailure
	}
	defer closeConn()

	applied, err := migrator.Migrate(ctx)
	if err != nil {
		logrus.WithError(err).WithField("applied", applied).Error("❌ Migration falhou. Abortando.")
		return subcommands.ExitFailure
	}

	logrus.Infof("✅ %d migration(s) aplicada(s)", applied)
	return subcommands.ExitSuccess
}

type infoCmd struct{}

func (*infoCmd) Name() string     { return "info" }
func (*infoCmd) Synopsis() string { return "mostra o status das migrations" }
func (*infoCmd) Usage() string {
	return `migrate info

  Lista as migrations conhecidas e indica quais já foram aplicadas.
`
}
func (*infoCmd) SetFlags(*flag.FlagSet) {}

func (*infoCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	migrator, closeConn, err := newMigrator(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao preparar migrations")
		return subcommands.ExitFailure
	}
	defer closeConn()

	statuses, err := migrator.Info(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar migrations")
		return subcommands.ExitFailure
	}

	applied := 0
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Versão\tStatus\tDescrição")
	for _, s := range statuses {
		status := "⧗ Pendente"
		if s.Applied {
			status = "✓ Aplicada"
			applied++
		}
		fmt.Fprintf(tw, "V%d\t%s\t%s\n", s.Version, status, s.Description)
	}
	_ = tw.Flush()

	fmt.Printf("\nTotal: %d | Aplicadas: %d | Pendentes: %d\n", len(statuses), applied, len(statuses)-applied)
	return subcommands.ExitSuccess
}

func newMigrator(ctx context.Context) (*migration.Migrator, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}

	migrator, err := migration.NewMigrator(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return migrator, func() { _ = conn.Close() }, nil
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(&migrateCmd{}, "")
	commander.Register(&infoCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
