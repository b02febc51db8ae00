package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Licoreria-api/internal/application/dto"
	"github.com/jhoicas/Licoreria-api/internal/domain"
)

const dateOnly = "2006-01-02"

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("id inválido")
	}
	return id, nil
}

// parseTime acepta RFC3339 o YYYY-MM-DD. Con endOfDay una fecha sin hora cubre el día completo.
func parseTime(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, domain.Validationf("fecha inválida %q", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// parseRange exige from y to.
func parseRange(q dto.RangeQuery) (time.Time, time.Time, error) {
	if q.From == "" || q.To == "" {
		return time.Time{}, time.Time{}, domain.Validationf("from y to son requeridos")
	}
	from, err := parseTime(q.From, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseTime(q.To, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// parseOptionalRange acepta from/to vacíos (nil).
func parseOptionalRange(q dto.RangeQuery) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if q.From != "" {
		t, err := parseTime(q.From, false)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if q.To != "" {
		t, err := parseTime(q.To, true)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}

func rangeQuery(c *fiber.Ctx) (dto.RangeQuery, error) {
	var q dto.RangeQuery
	if err := c.QueryParser(&q); err != nil {
		return q, domain.Validationf("parámetros inválidos")
	}
	return q, nil
}
