// Command lead-fixture-seed loads the synthetic lead dataset into the
// contact-center tables of a development database.
package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/internal/leads/fixture"
	"contactcenter_backend/migrations"
	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/db"
	"contactcenter_backend/platform/logger"

	"github.com/jackc/pgx/v5"
)

var (
	basesColumns = []string{"iddatabase", "descripcion", "fecha_alta"}
	leadsColumns = []string{
		"idinterno", "medio", "txtnombreapellid", "emlmail", "teltelefono", "base", "iddatabase",
		"fecha_a_utilizar", "fecha_ult_gestion", "programa_interes", "resultado_gestion", "toques",
		"ultima_subcategoria",
	}
	eventsColumns = []string{"dedup_key", "idinterno", "fecha", "usuario", "idventa", "iddatabase"}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead fixture seed", "seed", cfg.GetFixtureSeed(), "size", cfg.GetFixtureSize())

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, migrations.FS); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}

	cat, err := fixture.DefaultCatalog()
	if err != nil {
		panic("failed to load fixture catalog: " + err.Error())
	}
	ds := fixture.Generate(cat, fixture.Options{
		Seed:           cfg.GetFixtureSeed(),
		Size:           cfg.GetFixtureSize(),
		Anchor:         time.Now(),
		EnrollmentCode: cfg.GetEnrollmentCode(),
	})

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.DatabaseError("begin seed", err)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE fact_contactos, dim_contactos, dim_bases`); err != nil {
		log.DatabaseError("truncate", err)
		return
	}

	tables := []struct {
		name    string
		columns []string
		rows    [][]any
	}{
		{"dim_bases", basesColumns, baseRows(ds)},
		{"dim_contactos", leadsColumns, leadRows(ds)},
		{"fact_contactos", eventsColumns, eventRows(ds)},
	}
	for _, table := range tables {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{table.name}, table.columns, pgx.CopyFromRows(table.rows))
		if err != nil {
			log.DatabaseError("copy "+table.name, err)
			return
		}
		log.Info("table seeded", "table", table.name, "rows", n)
	}

	if err := tx.Commit(ctx); err != nil {
		log.DatabaseError("commit seed", err)
		return
	}
	log.Info("lead fixture seed complete", "bases", len(ds.Bases), "leads", len(ds.Leads), "events", len(ds.Events))
}

func baseRows(ds fixture.Dataset) [][]any {
	rows := make([][]any, 0, len(ds.Bases))
	for _, b := range ds.Bases {
		rows = append(rows, []any{int32(b.ID), b.Name, nil})
	}
	return rows
}

// leadRows mirrors the ingestion format: dates and counters are stored as text.
func leadRows(ds fixture.Dataset) [][]any {
	ids := baseIDs(ds)
	rows := make([][]any, 0, len(ds.Leads))
	for _, l := range ds.Leads {
		rows = append(rows, []any{
			l.ID,
			nullable(l.Channel),
			nullable(l.Name),
			nullable(l.Email),
			nullable(l.Phone),
			nullable(l.SourceBase),
			nullable(ids[l.SourceBase]),
			formatDate(l.LeadDate),
			formatDate(l.LastContactDate),
			nullable(l.ProgramOfInterest),
			nullable(string(l.Outcome)),
			strconv.Itoa(l.TouchCount),
			nullable(l.LatestSubcategory),
		})
	}
	return rows
}

func eventRows(ds fixture.Dataset) [][]any {
	ids := baseIDs(ds)
	rows := make([][]any, 0, len(ds.Events))
	for _, e := range ds.Events {
		var sale any
		if e.IsSale() {
			sale = strconv.FormatInt(e.SaleID, 10)
		}
		rows = append(rows, []any{
			e.DedupKey,
			e.LeadID,
			e.OccurredAt,
			nullable(e.Agent),
			sale,
			nullable(ids[e.SourceBase]),
		})
	}
	return rows
}

func baseIDs(ds fixture.Dataset) map[string]string {
	ids := make(map[string]string, len(ds.Bases))
	for _, b := range ds.Bases {
		ids[b.Name] = fmt.Sprint(b.ID)
	}
	return ids
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateLayout)
}
