package main

import (
	"fmt"
	"os"

	"museumstats-backend/cmd/museumstats-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("MUSEUMSTATS_BASE_URL")
	if !ok {
		fmt.Println("You should specify the base url of the museumstats service in the environment variable MUSEUMSTATS_BASE_URL.")
		os.Exit(1)
	}
	cmd.BaseUrl = baseUrl

	cmd.Execute()
}
