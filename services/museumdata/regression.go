package museumdata

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// LinearModel reports an ordinary-least-squares fit of visitor count
// against city population.
type LinearModel struct {
	Model        string    `json:"model"`
	NSamples     int       `json:"n_samples"`
	R2           *float64  `json:"r2"`
	MAE          *float64  `json:"mae"`
	RMSE         *float64  `json:"rmse"`
	Coefficients []float64 `json:"coefficients,omitempty"`
	Intercept    float64   `json:"intercept"`
	Notes        string    `json:"notes"`
}

const modelName = "linear_regression"

// FitLinear fits visitors vs population over the feature rows. Rows
// without a resolved population carry no signal and are excluded from
// the sample. Fewer than two samples (or a degenerate fit) yields null
// metrics with an explanatory note rather than an error.
func FitLinear(features []FeatureRow) LinearModel {
	var xs, ys []float64
	for _, row := range features {
		if row.Population == nil {
			continue
		}
		xs = append(xs, float64(*row.Population))
		ys = append(ys, float64(row.Visitors))
	}

	if len(xs) == 0 {
		return LinearModel{
			Model:    modelName,
			NSamples: 0,
			Notes:    "No data available. Run ETL first.",
		}
	}
	if len(xs) < 2 {
		return LinearModel{
			Model:    modelName,
			NSamples: len(xs),
			Notes:    "Not enough samples to fit a line.",
		}
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(alpha, 0) || math.IsInf(beta, 0) {
		return LinearModel{
			Model:    modelName,
			NSamples: len(xs),
			Notes:    "Degenerate sample, no fit.",
		}
	}

	var absSum, sqSum float64
	for i := range xs {
		residual := alpha + beta*xs[i] - ys[i]
		absSum += math.Abs(residual)
		sqSum += residual * residual
	}
	n := float64(len(xs))
	mae := absSum / n
	rmse := math.Sqrt(sqSum / n)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)

	return LinearModel{
		Model:        modelName,
		NSamples:     len(xs),
		R2:           &r2,
		MAE:          &mae,
		RMSE:         &rmse,
		Coefficients: []float64{beta},
		Intercept:    alpha,
		Notes:        "Linear regression of visitors vs city population",
	}
}
