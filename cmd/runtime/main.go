package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/split-engine/internal/aggregator"
	"github.com/hxuan190/split-engine/internal/common"
	"github.com/hxuan190/split-engine/internal/config"
	"github.com/hxuan190/split-engine/internal/http"
	"github.com/hxuan190/split-engine/internal/services/builder"
	"github.com/hxuan190/split-engine/internal/services/market"
)

// @title Split-Engine API
// @version 1.0
// @description Optimal-split swap aggregator: discretizes one trade into quanta
// @description and allocates them across liquidity venues with a dynamic program
// @description that maximizes total output.
// @description
// @description ## - Features
// @description - **Optimal splitting**: knapsack DP over (venue, quanta), exact within discretization
// @description - **Flat venue list**: venues are registered directly, no pathfinding graph
// @description - **Unsigned transactions**: one swap instruction per allocated venue, execution stays client-side
// @BasePath /
// @schemes https http
// @tag.name split-quote
// @tag.description Optimal split quotes across registered venues
// @tag.name split-swap
// @tag.description Build unsigned split swap transactions
// @tag.name venues
// @tag.description Venue registration and discovery

func main() {
	common.InitRuntime()

	// load env
	err := godotenv.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load env")
		return
	}

	// di container config
	conf := container.NewConf(
		&config.GeneralConfig{},
		&config.RPCConfig{},
		&config.SplitterConfig{},
	)

	// di container
	dic, err := container.New(
		conf,

		&market.Service{},
		&builder.BuilderService{},
		&aggregator.Service{},

		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	log.Info().Msg("Shutting down services...")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("Shutdown complete")
}
