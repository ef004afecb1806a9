package main

import (
	"os"

	"github.com/ttpr0/go-ptmapper/mapper"
	"github.com/ttpr0/go-ptmapper/parser"
	. "github.com/ttpr0/go-ptmapper/util"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"
)

func main() {
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, nil)))

	app := &cli.App{
		Name:  "go-ptmapper",
		Usage: "maps public transit schedules onto osm road networks",
		Commands: []*cli.Command{
			{
				Name:  "map",
				Usage: "run the full mapping pipeline",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Value:   "./config.yaml",
						Usage:   "config file to load",
					},
				},
				Action: func(ctx *cli.Context) error {
					config, err := ReadConfig(ctx.String("config"))
					if err != nil {
						return err
					}
					return RunMapping(config)
				},
			},
			{
				Name:  "init-config",
				Usage: "write a config file with default values",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Value:   "./config.yaml",
						Usage:   "file to write",
					},
				},
				Action: func(ctx *cli.Context) error {
					return WriteConfig(DefaultConfig(), ctx.String("out"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func RunMapping(config Config) error {
	net, projection := parser.ParseNetwork(config.Input.OSM, &parser.MultimodalDecoder{})
	sched := parser.ParseSchedule(config.Input.GTFS, projection)

	index := mapper.NewSpatialIndex(net)
	route_mapper := mapper.NewRouteMapper(net, sched, index, config.Mapping)
	report := route_mapper.Run()

	proc := mapper.NewNetworkPostProcessor(net, sched, route_mapper.Usage(), config.Mapping)
	proc.AdjustFreespeed()
	proc.CleanUp()

	WriteJSONToFile(net.ToJSON(), config.Output.Network)
	WriteJSONToFile(sched.ToJSON(), config.Output.Schedule)
	if config.Output.Report != "" {
		WriteJSONToFile(report, config.Output.Report)
	}
	slog.Info("wrote mapping results",
		"network", config.Output.Network,
		"schedule", config.Output.Schedule,
	)
	return nil
}
