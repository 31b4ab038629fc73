package main

import (
	"log"

	"afrisoutien/internal/app"
)

// @title        Afri Soutien API
// @version      1.0
// @description  Plateforme de dons et cagnottes solidaires
// @BasePath     /
func main() {
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
