package main

import (
	"net/http"

	"questflow/internal/app/server/api"
	"questflow/internal/config"
	"questflow/internal/utils/logger"
)

func main() {
	conf := config.NewConfig()
	log := logger.New(conf.Env)

	mux := api.New(conf.Server.APIKey, log)

	log.Info("sync server listening", "address", conf.Server.RunAddress)
	if err := http.ListenAndServe(conf.Server.RunAddress, mux); err != nil {
		log.Error("server stopped", "error", err)
	}
}
