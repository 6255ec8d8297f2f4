package main

import (
	"log"
	"net/http"

	"genegraph/internal/api"
	"genegraph/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	h := api.NewServer(cfg)
	log.Printf("genegraph api listening on %s taxa=%v", cfg.APIAddr, cfg.TaxonIDs)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
