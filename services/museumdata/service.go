// Package museumdata collects museum visitor statistics and city
// populations from two public upstreams, merges them into a sqlite
// store and serves the merged dataset plus a linear attendance model.
package museumdata

import (
	"database/sql"
	"time"

	"museumstats-backend/lib/fanout"
	"museumstats-backend/lib/scrapers/wikidata"
	"museumstats-backend/lib/scrapers/wikipedia"
	"museumstats-backend/services/museumdata/db"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/museumdata")

type Options struct {
	// batch size for concurrent population lookups, default 10
	LookupBatchSize int
	// pause between lookup batches, default 500ms
	LookupPause time.Duration
	// fallback strategy for matching scraped city names against
	// resolved population records, default SubstringMatcher
	Matcher CityMatcher
}

type Service struct {
	db        *sql.DB
	qry       *db.Queries
	wikipedia *wikipedia.Client
	wikidata  *wikidata.Client
	matcher   CityMatcher
	batching  fanout.Options
}

func NewService(database *sql.DB, wp *wikipedia.Client, wd *wikidata.Client, opts Options) Service {
	if opts.LookupBatchSize <= 0 {
		opts.LookupBatchSize = fanout.DefaultBatchSize
	}
	if opts.LookupPause <= 0 {
		opts.LookupPause = fanout.DefaultPause
	}
	if opts.Matcher == nil {
		opts.Matcher = SubstringMatcher{}
	}

	return Service{
		db:        database,
		qry:       db.New(database),
		wikipedia: wp,
		wikidata:  wd,
		matcher:   opts.Matcher,
		batching: fanout.Options{
			BatchSize: opts.LookupBatchSize,
			Pause:     opts.LookupPause,
		},
	}
}
