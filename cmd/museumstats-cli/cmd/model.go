package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"museumstats-backend/services/museumdata"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(modelCmd)
}

func formatMetric(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *value)
}

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Fits the linear attendance model and prints its metrics.",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client.R().SetContext(cmd.Context()).Get("/model/linear")
		if err != nil {
			log.Fatal(err)
		}

		var model museumdata.LinearModel
		err = json.Unmarshal(res.Body(), &model)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("model:     %s\n", model.Model)
		fmt.Printf("samples:   %d\n", model.NSamples)
		fmt.Printf("r2:        %s\n", formatMetric(model.R2))
		fmt.Printf("mae:       %s\n", formatMetric(model.MAE))
		fmt.Printf("rmse:      %s\n", formatMetric(model.RMSE))
		if len(model.Coefficients) > 0 {
			fmt.Printf("slope:     %g\n", model.Coefficients[0])
			fmt.Printf("intercept: %g\n", model.Intercept)
		}
		if model.Notes != "" {
			fmt.Printf("notes:     %s\n", model.Notes)
		}
	},
}
