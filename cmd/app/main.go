package main

import (
	"marketplace/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("marketplace: %v", err)
	}
}
