package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"posstock/config"
	"posstock/internal/pkg/database"
	"posstock/internal/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Aviso: arquivo .env não encontrado. Usando apenas o ambiente do sistema.")
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "diretório com os arquivos de migração")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.NewLogger(cfg.LogLevel)

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	if err := run(context.Background(), cfg, migrationsDir, command, args); err != nil {
		log.Fatal(fmt.Sprintf("goose %s falhou.", command), err)
	}
	log.Info("Migração concluída.", map[string]interface{}{"command": command, "dir": migrationsDir})
}

func run(ctx context.Context, cfg *config.Config, dir, command string, args []string) (err error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	goose.SetLogger(goose.NopLogger())

	return goose.RunContext(ctx, command, db, dir, args...)
}
