package museumdata

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// FeatureColumns is the fixed column set of the merged dataset.
var FeatureColumns = []string{
	"museum_id",
	"museum_name",
	"city_id",
	"city_name",
	"year",
	"visitors",
	"population",
}

type FeatureRow struct {
	MuseumID   int64  `json:"museum_id"`
	MuseumName string `json:"museum_name"`
	CityID     int64  `json:"city_id"`
	CityName   string `json:"city_name"`
	Year       int64  `json:"year"`
	Visitors   int64  `json:"visitors"`
	Population *int64 `json:"population"`
}

// LoadFeatures joins museums, cities and stats into the flat dataset the
// model trains on. A museum only becomes a feature row once it has both
// a resolved city and at least one stat.
func (s Service) LoadFeatures(ctx context.Context) ([]FeatureRow, error) {
	ctx, span := tracer.Start(ctx, "LoadFeatures")
	defer span.End()

	rows, err := s.qry.ListFeatures(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	features := make([]FeatureRow, 0, len(rows))
	for _, row := range rows {
		feature := FeatureRow{
			MuseumID:   row.MuseumID,
			MuseumName: row.MuseumName,
			CityID:     row.CityID,
			CityName:   row.CityName,
			Year:       row.Year,
			Visitors:   row.Visitors,
		}
		if row.Population.Valid {
			population := row.Population.Int64
			feature.Population = &population
		}
		features = append(features, feature)
	}

	span.SetAttributes(attribute.Int("rows", len(features)))
	return features, nil
}
