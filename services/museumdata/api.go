package museumdata

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the service's HTTP surface. Run failures are
// reported in-band through the summary body with a 200; a 5xx on
// /etl/run only ever means a defect in the handler path itself.
func (s Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.handleHealthz)
	e.POST("/etl/run", s.handleRunETL)
	e.GET("/features", s.handleFeatures)
	e.GET("/model/linear", s.handleModelLinear)
}

func (s Service) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s Service) handleRunETL(c echo.Context) error {
	summary := s.RunETL(c.Request().Context())
	return c.JSON(http.StatusOK, summary)
}

type featuresResponse struct {
	Columns []string     `json:"columns"`
	Rows    []FeatureRow `json:"rows"`
	Count   int          `json:"count"`
}

func (s Service) handleFeatures(c echo.Context) error {
	rows, err := s.LoadFeatures(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, featuresResponse{
		Columns: FeatureColumns,
		Rows:    rows,
		Count:   len(rows),
	})
}

func (s Service) handleModelLinear(c echo.Context) error {
	rows, err := s.LoadFeatures(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, FitLinear(rows))
}
