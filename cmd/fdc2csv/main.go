package main

import (
	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/macrolens/fdc2csv/config"
	"github.com/macrolens/fdc2csv/internal/logging"
)

// Context is passed to every command's Run method
type Context struct {
	Config *config.Config
	Logger *zap.Logger
}

var cli struct {
	Config string `help:"Path to config file" short:"c" type:"path"`
	Debug  bool   `help:"Enable debug logging"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert an FDC JSON data set to CSV"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("fdc2csv"),
		kong.Description("Processes USDA FDC data and outputs a CSV of simplified nutrition facts. "+
			"Only Foundation and SR Legacy JSON data sets are supported."),
		kong.UsageOnError())

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)

	level := cfg.Log.Level
	if cli.Debug {
		level = "debug"
	}
	logger, err := logging.New(cfg.Server.Environment, level)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&Context{Config: cfg, Logger: logger})
	logger.Sync() //nolint:errcheck // we don't care about logger sync errors
	ctx.FatalIfErrorf(err)
}
