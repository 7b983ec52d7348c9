package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig carries flag defaults loaded from a YAML file. Values set on the
// command line always win over file values.
type fileConfig struct {
	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	CityDB        string `yaml:"city_db"`
	ASNDB         string `yaml:"asn_db"`
	IPColumn      string `yaml:"ip_column"`
	OutputColumn  string `yaml:"output_column"`
	ChunkSize     int    `yaml:"chunk_size"`
	Encoding      string `yaml:"encoding"`
	Delimiter     string `yaml:"delimiter"`
	NAFilter      bool   `yaml:"na_filter"`
	KeepInvalid   bool   `yaml:"keep_invalid"`
	InvalidMarker string `yaml:"invalid_marker"`
	MetricsListen string `yaml:"metrics_listen"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	return &cfg, nil
}

// applyFileConfig fills in every flag the user did not set on the command
// line from the config file, skipping empty file values.
func applyFileConfig(cmd *cobra.Command, flags *rootFlags, cfg *fileConfig) {
	changed := cmd.Flags().Changed

	setString := func(flag string, dst *string, value string) {
		if !changed(flag) && value != "" {
			*dst = value
		}
	}

	setString("in", &flags.input, cfg.Input)
	setString("out", &flags.output, cfg.Output)
	setString("db", &flags.cityDB, cfg.CityDB)
	setString("asn-db", &flags.asnDB, cfg.ASNDB)
	setString("ip-col", &flags.ipColumn, cfg.IPColumn)
	setString("geoip-col", &flags.outputColumn, cfg.OutputColumn)
	setString("encoding", &flags.encoding, cfg.Encoding)
	setString("sep", &flags.delimiter, cfg.Delimiter)
	setString("invalid-marker", &flags.invalidMarker, cfg.InvalidMarker)
	setString("metrics-listen", &flags.metricsListen, cfg.MetricsListen)

	if !changed("chunksize") && cfg.ChunkSize != 0 {
		flags.chunkSize = cfg.ChunkSize
	}
	if !changed("na-filter") && cfg.NAFilter {
		flags.naFilter = true
	}
	if !changed("keep-invalid") && cfg.KeepInvalid {
		flags.keepInvalid = true
	}
}
