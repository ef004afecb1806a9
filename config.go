package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/go-ptmapper/mapper"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

type Config struct {
	Input struct {
		OSM  string `yaml:"osm" validate:"required"`
		GTFS string `yaml:"gtfs" validate:"required"`
	} `yaml:"input"`
	Output struct {
		Network  string `yaml:"network" validate:"required"`
		Schedule string `yaml:"schedule" validate:"required"`
		Report   string `yaml:"report"`
	} `yaml:"output"`
	Mapping mapper.Options `yaml:"mapping"`
}

func DefaultConfig() Config {
	config := Config{}
	config.Input.OSM = "./data/network.osm.pbf"
	config.Input.GTFS = "./data/gtfs"
	config.Output.Network = "./output/network.json"
	config.Output.Schedule = "./output/schedule.json"
	config.Output.Report = "./output/report.json"
	config.Mapping = mapper.DefaultOptions()
	return config
}

func ReadConfig(file string) (Config, error) {
	slog.Info("reading config file", "file", file)
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, err
	}
	// unset mapping options keep their defaults, paths must be given
	config := Config{Mapping: mapper.DefaultOptions()}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	v := validator.New()
	if err := v.Struct(config); err != nil {
		return Config{}, err
	}
	if err := config.Mapping.Check(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func WriteConfig(config Config, file string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}
