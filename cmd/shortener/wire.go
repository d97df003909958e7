//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"shortlog/internal/config"
	"shortlog/internal/eventlog"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// initApp wires the URL service around an already running event logger.
func initApp(*config.Config, *zap.Logger, *eventlog.Logger) (*app, func(), error) {
	panic(wire.Build(providerSet))
}
