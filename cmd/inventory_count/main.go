// Comando inventory_count: concilia un conteo físico contra el stock registrado.
// Cada diferencia se asienta como un ajuste en el kardex.
//
//	go run ./cmd/inventory_count -file conteo.csv -user 1 [-encoding win1252] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Licoreria-api/internal/application/transaction"
	"github.com/jhoicas/Licoreria-api/internal/domain/pricing"
	"github.com/jhoicas/Licoreria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Licoreria-api/pkg/config"
	"github.com/jhoicas/Licoreria-api/pkg/logger"
)

func main() {
	file := flag.String("file", "", "CSV codigo;conteo[;motivo]")
	userID := flag.Int64("user", 0, "id del usuario que realizó el conteo")
	encoding := flag.String("encoding", "utf8", "utf8, latin1 o win1252")
	dryRun := flag.Bool("dry-run", false, "solo mostrar diferencias")
	flag.Parse()

	if *file == "" || *userID <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("inventory_count")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir archivo")
	}
	defer f.Close()
	r, err := decoderFor(f, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación")
	}
	rows, err := parseCounts(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer conteo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	policy, err := pricing.NewFlatRate(cfg.Pricing.SaleTaxRate, cfg.Pricing.PurchaseTaxRate)
	if err != nil {
		log.Fatal().Err(err).Msg("política de precios")
	}
	engine := transaction.NewEngine(postgres.NewTxRunner(pool, cfg.DB.StatementTimeoutMS), policy, log)
	items := postgres.NewStockItemRepository(pool)

	var adjusted, unchanged, failed int
	for _, row := range rows {
		item, err := items.GetByCode(ctx, row.Code)
		if err != nil || item == nil {
			log.Warn().Err(err).Int("line", row.Line).Str("code", row.Code).Msg("artículo no encontrado")
			failed++
			continue
		}
		if *dryRun {
			log.Info().Str("code", row.Code).Int64("stock", item.Stock).Int64("counted", row.Counted).
				Int64("delta", row.Counted-item.Stock).Msg("diferencia")
			continue
		}
		reason := row.Reason
		if reason == "" {
			reason = "conteo físico"
		}
		mov, err := engine.ReconcileCount(ctx, transaction.ReconcileCountInput{
			UserID: *userID, StockItemID: item.ID, Counted: row.Counted, Reason: reason,
		})
		switch {
		case err != nil:
			log.Error().Err(err).Int("line", row.Line).Str("code", row.Code).Msg("no se pudo conciliar")
			failed++
		case mov == nil:
			unchanged++
		default:
			adjusted++
		}
	}
	log.Info().Int("rows", len(rows)).Int("adjusted", adjusted).Int("unchanged", unchanged).
		Int("failed", failed).Bool("dry_run", *dryRun).Msg("conteo procesado")
	if failed > 0 {
		os.Exit(1)
	}
}
