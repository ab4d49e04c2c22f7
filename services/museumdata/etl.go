package museumdata

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"museumstats-backend/lib/scrapers/wikidata"
	"museumstats-backend/lib/scrapers/wikipedia"
	"museumstats-backend/services/museumdata/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RunSummary is the outcome of one merge run. Counts cover entities
// touched (created or already present), not raw candidates.
type RunSummary struct {
	Status  string `json:"status"`
	Museums int64  `json:"museums"`
	Cities  int64  `json:"cities"`
	Error   string `json:"error,omitempty"`
}

func errorSummary(message string) RunSummary {
	return RunSummary{Status: "error", Error: message}
}

// RunETL drives one full collection run: fetch the museum table, resolve
// city populations and merge everything into the store. An empty museum
// result is total failure; population gaps and per-record persistence
// errors are tolerated and reported only through logs. Errors surface
// in-band through the summary, never as a returned error.
func (s Service) RunETL(ctx context.Context) RunSummary {
	ctx, span := tracer.Start(ctx, "RunETL")
	defer span.End()

	slog.InfoContext(ctx, "starting etl run")

	// schema creation is idempotent
	_, err := s.db.ExecContext(ctx, db.Schema)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to ensure schema")
		return errorSummary(fmt.Sprintf("failed to ensure schema: %s", err))
	}

	museums, err := s.wikipedia.FetchMostVisitedMuseums(ctx)
	if err != nil {
		// collapses into the "no data" outcome below, same as a
		// page with zero qualifying rows
		slog.ErrorContext(ctx, "museum fetch failed", "err", err)
	}
	if len(museums) == 0 {
		span.SetStatus(codes.Error, "no museum data")
		return errorSummary("no museum data available from wikipedia")
	}

	populations := s.resolvePopulations(ctx, museums)

	summary, err := s.persist(ctx, museums, populations)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return errorSummary(err.Error())
	}

	span.SetAttributes(
		attribute.Int64("museums", summary.Museums),
		attribute.Int64("cities", summary.Cities),
	)
	slog.InfoContext(ctx, "etl run complete", "museums", summary.Museums, "cities", summary.Cities)
	return summary
}

// persist merges candidates into the store within a single transaction.
// Each record runs under a savepoint: a failing record rolls back its
// own partial writes, gets logged and skipped, and the loop moves on.
func (s Service) persist(ctx context.Context, museums []wikipedia.Museum, populations map[string]*wikidata.Population) (RunSummary, error) {
	ctx, span := tracer.Start(ctx, "persist")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to open transaction: %w", err)
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	var museumCount, cityCount int64
	for _, candidate := range museums {
		_, err = tx.ExecContext(ctx, "SAVEPOINT record")
		if err != nil {
			return RunSummary{}, err
		}

		cityTouched, err := s.upsertRecord(ctx, txqry, candidate, populations)
		if err != nil {
			slog.ErrorContext(ctx, "failed to process museum", "museum", candidate.Name, "err", err)
			_, err = tx.ExecContext(ctx, "ROLLBACK TO record")
			if err != nil {
				return RunSummary{}, err
			}
			continue
		}

		_, err = tx.ExecContext(ctx, "RELEASE record")
		if err != nil {
			return RunSummary{}, err
		}

		museumCount++
		if cityTouched {
			cityCount++
		}
	}

	err = tx.Commit()
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to commit: %w", err)
	}

	return RunSummary{
		Status:  "ok",
		Museums: museumCount,
		Cities:  cityCount,
	}, nil
}

// upsertRecord merges one candidate: city, then museum, then stat, each
// an atomic insert-on-conflict-do-nothing followed by a read back, so
// re-observation is an idempotent no-op. The stat is keyed by
// (museum, year) to honor the declared uniqueness of museum_stats.
func (s Service) upsertRecord(ctx context.Context, qry *db.Queries, candidate wikipedia.Museum, populations map[string]*wikidata.Population) (cityTouched bool, err error) {
	now := time.Now().Format(time.RFC3339)

	city, err := s.upsertCity(ctx, qry, candidate, populations, now)
	if err != nil {
		return false, fmt.Errorf("city: %w", err)
	}

	cityID := sql.NullInt64{}
	if city != nil {
		cityTouched = true
		cityID = sql.NullInt64{Int64: city.ID, Valid: true}
	}

	err = qry.CreateMuseum(ctx, db.CreateMuseumParams{
		Name:        candidate.Name,
		CityID:      cityID,
		Source:      sql.NullString{String: candidate.Source, Valid: true},
		LastUpdated: sql.NullString{String: now, Valid: true},
	})
	if err != nil {
		return cityTouched, fmt.Errorf("museum: %w", err)
	}
	museum, err := qry.GetMuseumByNameCity(ctx, db.GetMuseumByNameCityParams{
		Name:   candidate.Name,
		CityID: cityID,
	})
	if err != nil {
		return cityTouched, fmt.Errorf("museum readback: %w", err)
	}

	err = qry.CreateMuseumStat(ctx, db.CreateMuseumStatParams{
		MuseumID:    museum.ID,
		Year:        int64(candidate.Year),
		Visitors:    candidate.Visitors,
		Source:      sql.NullString{String: candidate.Source, Valid: true},
		LastUpdated: sql.NullString{String: now, Valid: true},
	})
	if err != nil {
		return cityTouched, fmt.Errorf("stat: %w", err)
	}

	return cityTouched, nil
}

func (s Service) upsertCity(ctx context.Context, qry *db.Queries, candidate wikipedia.Museum, populations map[string]*wikidata.Population, now string) (*db.City, error) {
	existing, err := qry.GetCityByNameCountry(ctx, db.GetCityByNameCountryParams{
		Name:    candidate.City,
		Country: candidate.Country,
	})
	if err == nil {
		return &existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	params := db.CreateCityParams{
		Name:        candidate.City,
		Country:     candidate.Country,
		Source:      sql.NullString{String: candidate.Source, Valid: true},
		LastUpdated: sql.NullString{String: now, Valid: true},
	}
	if record := s.matcher.Match(candidate.City, populations); record != nil {
		params.Population = sql.NullInt64{Int64: record.Population, Valid: true}
		params.PopulationYear = sql.NullInt64{Int64: int64(record.Year), Valid: true}
		if record.QID != "" {
			params.WikidataID = sql.NullString{String: record.QID, Valid: true}
		}
	}

	err = qry.CreateCity(ctx, params)
	if err != nil {
		return nil, err
	}
	city, err := qry.GetCityByNameCountry(ctx, db.GetCityByNameCountryParams{
		Name:    candidate.City,
		Country: candidate.Country,
	})
	if err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	slog.InfoContext(ctx, "created city",
		"city", city.Name,
		"country", city.Country,
		"population", city.Population.Int64,
	)
	return &city, nil
}
