package main

import (
	"context"
	"flag"

	"museumstats-backend/lib/configutil"
	configsqlite "museumstats-backend/lib/configutil/sqlite"
	"museumstats-backend/lib/scrapers/wikidata"
	"museumstats-backend/lib/scrapers/wikipedia"
	"museumstats-backend/lib/serviceutil"
	"museumstats-backend/lib/telemetry"
	"museumstats-backend/services/museumdata"
	museumdatadb "museumstats-backend/services/museumdata/db"

	"github.com/labstack/echo/v4"
)

type Config struct {
	Database configsqlite.Struct `json:"database"`
	Port     int                 `json:"port"`
	Scraper  struct {
		PageTitle   string `json:"page_title"`
		MinVisitors int64  `json:"min_visitors"`
	} `json:"scraper"`
	// "substring" (default) or "jaro_winkler"
	CityMatcher string `json:"city_matcher"`
}

func matcherFromConfig(config Config) museumdata.CityMatcher {
	if config.CityMatcher == "jaro_winkler" {
		return museumdata.JaroWinklerMatcher{}
	}
	return museumdata.SubstringMatcher{}
}

func main() {
	verbose := flag.Bool("v", false, "enable verbose logging")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	t, err := telemetry.SetupFromEnv(ctx, "museumstatsd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InitSlog(*verbose)

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8333
	}

	db, err := config.Database.OpenDB(museumdatadb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	svc := museumdata.NewService(
		db,
		wikipedia.NewClient(wikipedia.ClientOptions{
			PageTitle:   config.Scraper.PageTitle,
			MinVisitors: config.Scraper.MinVisitors,
		}),
		wikidata.NewClient(wikidata.ClientOptions{}),
		museumdata.Options{Matcher: matcherFromConfig(config)},
	)

	e := echo.New()
	e.HideBanner = true
	svc.RegisterRoutes(e)
	go serviceutil.StartHttpServer(config.Port, e)

	<-ctx.Done()
}
