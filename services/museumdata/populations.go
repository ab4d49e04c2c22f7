package museumdata

import (
	"context"
	"log/slog"

	"museumstats-backend/lib/fanout"
	"museumstats-backend/lib/scrapers/wikidata"
	"museumstats-backend/lib/scrapers/wikipedia"
	"museumstats-backend/services/museumdata/db"

	"go.opentelemetry.io/otel/attribute"
)

type cityCountry struct {
	city    string
	country string
}

// resolvePopulations produces a population record (possibly nil) for
// every distinct city seen in the candidate set. Cities already present
// in the store keep their cached fields without a network call; the rest
// are looked up concurrently in bounded batches. A failed or empty
// lookup maps to a nil record for that city only, it never aborts the
// batch and this function never fails.
func (s Service) resolvePopulations(ctx context.Context, museums []wikipedia.Museum) map[string]*wikidata.Population {
	ctx, span := tracer.Start(ctx, "resolvePopulations")
	defer span.End()

	seen := map[cityCountry]bool{}
	var distinct []cityCountry
	for _, m := range museums {
		if m.City == "" || m.Country == "" {
			slog.WarnContext(ctx, "museum candidate without city or country", "museum", m.Name)
			continue
		}
		key := cityCountry{city: m.City, country: m.Country}
		if !seen[key] {
			seen[key] = true
			distinct = append(distinct, key)
		}
	}

	populations := map[string]*wikidata.Population{}
	var toFetch []cityCountry
	for _, pair := range distinct {
		city, err := s.qry.GetCityByNameCountry(ctx, db.GetCityByNameCountryParams{
			Name:    pair.city,
			Country: pair.country,
		})
		if err != nil {
			toFetch = append(toFetch, pair)
			continue
		}

		cached := &wikidata.Population{CityName: city.Name, QID: city.WikidataID.String}
		if city.Population.Valid {
			cached.Population = city.Population.Int64
		}
		if city.PopulationYear.Valid {
			cached.Year = int(city.PopulationYear.Int64)
		}
		populations[pair.city] = cached
		slog.DebugContext(ctx, "using cached population", "city", pair.city, "population", cached.Population)
	}

	span.SetAttributes(
		attribute.Int("distinct_cities", len(distinct)),
		attribute.Int("cached", len(populations)),
		attribute.Int("to_fetch", len(toFetch)),
	)

	if len(toFetch) == 0 {
		return populations
	}

	slog.InfoContext(ctx, "fetching population data", "cities", len(toFetch), "batch_size", s.batching.BatchSize)

	results := fanout.Batched(ctx, toFetch, s.batching, func(ctx context.Context, pair cityCountry) (*wikidata.Population, error) {
		qid, err := s.wikidata.SearchCityQID(ctx, pair.city)
		if err != nil {
			return nil, err
		}
		if qid == "" {
			slog.WarnContext(ctx, "no wikidata entity for city", "city", pair.city, "country", pair.country)
			return nil, nil
		}
		return s.wikidata.FetchCityPopulation(ctx, qid)
	})

	for _, res := range results {
		if res.Err != nil {
			slog.ErrorContext(ctx, "population lookup failed", "city", res.Input.city, "err", res.Err)
			populations[res.Input.city] = nil
			continue
		}
		populations[res.Input.city] = res.Output
	}

	return populations
}
