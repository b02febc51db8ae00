package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Licoreria-api/internal/domain"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgCode(err) == "23505" }

// isForeignKeyViolation 23503: el documento referencia un usuario, cliente o artículo inexistente.
func isForeignKeyViolation(err error) bool { return pgCode(err) == "23503" }

// isCheckViolation 23514: la BD rechazó una fila (stock negativo, aritmética del kardex).
func isCheckViolation(err error) bool { return pgCode(err) == "23514" }

// mapWriteError traduce violaciones de constraint a errores de dominio.
func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.Conflictf("%s: registro duplicado", op)
	case isForeignKeyViolation(err):
		return domain.NotFoundf("%s: referencia inexistente", op)
	case isCheckViolation(err):
		return domain.Validationf("%s: %v", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// limitArg: LIMIT NULL equivale a sin límite.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
