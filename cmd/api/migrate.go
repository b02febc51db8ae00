package main

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Licoreria-api/internal/infrastructure/postgres"
)

func migrateUp(pool *pgxpool.Pool) error {
	mg, err := postgres.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}
