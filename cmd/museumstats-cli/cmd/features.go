package cmd

import (
	"encoding/json"
	"log"
	"os"

	"museumstats-backend/services/museumdata"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(featuresCmd)
}

type featuresResponse struct {
	Columns []string                `json:"columns"`
	Rows    []museumdata.FeatureRow `json:"rows"`
	Count   int                     `json:"count"`
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Prints the merged museum/city dataset.",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client.R().SetContext(cmd.Context()).Get("/features")
		if err != nil {
			log.Fatal(err)
		}

		var body featuresResponse
		err = json.Unmarshal(res.Body(), &body)
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)

		header := table.Row{}
		for _, column := range body.Columns {
			header = append(header, column)
		}
		t.AppendHeader(header)

		for _, row := range body.Rows {
			population := any("")
			if row.Population != nil {
				population = *row.Population
			}
			t.AppendRow(table.Row{
				row.MuseumID,
				row.MuseumName,
				row.CityID,
				row.CityName,
				row.Year,
				row.Visitors,
				population,
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
