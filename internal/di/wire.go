//go:build wireinject
// +build wireinject

package di

import (
	"BarPulse/pkg/config"
	"BarPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Upstream brokerage API
		ProvideProjectXClient,
		ProvideBarSource,
		ProvideTradeSource,
		ProvideContractResolver,

		// Analytics configuration
		ProvideSessionLocation,

		// Use cases
		ProvideBarService,
		ProvideIndicatorService,
		ProvideContextService,
		ProvideTradeService,
		ProvideJournalStore,
		ProvideJournalService,

		// HTTP
		ProvideHandlers,
		ProvideApp,
	)
	return &server.App{}, nil
}
