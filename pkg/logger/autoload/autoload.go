// Package autoload initializes the global logger from the LOG_* environment
// on import. Import for side effect in main.
package autoload

import (
	configx "github.com/ovenly/pizza-agent/pkg/config"
	logx "github.com/ovenly/pizza-agent/pkg/logger"
)

func init() {
	cfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*cfg)
}
