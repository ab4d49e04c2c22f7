package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"museumstats-backend/services/museumdata"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(etlCmd)
}

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Triggers a collection run on the service and prints the summary.",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client.R().SetContext(cmd.Context()).Post("/etl/run")
		if err != nil {
			log.Fatal(err)
		}

		var summary museumdata.RunSummary
		err = json.Unmarshal(res.Body(), &summary)
		if err != nil {
			log.Fatal(err)
		}

		if summary.Status != "ok" {
			fmt.Printf("run failed: %s\n", summary.Error)
			return
		}
		fmt.Printf("run complete: %d museums, %d cities\n", summary.Museums, summary.Cities)
	},
}
