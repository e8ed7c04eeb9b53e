// Package raptorservice is the process-level entry point: it turns a
// Request into one or more raptor worker runs and a Response, owning the
// tuning parameters, request validation, and the fixed-size worker pool
// (spec §5, §6). Grounded on manager.go's RoutingManager (config-driven
// profile registry) and config.go's yaml-tagged option structs.
package raptorservice

import (
	"fmt"
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

// Config holds the process-level tuning parameters (§6), read once when the
// service is built and never mutated afterwards - safe to share across the
// worker pool's goroutines. NewService reads only SearchThreadPoolSize; the
// workers take max transfers and the departure step from the Request, and
// trip search uses the tripsearch.BinarySearchThreshold constant.
type Config struct {
	MaxNumberOfTransfers               int `yaml:"max_number_of_transfers"`
	ScheduledTripBinarySearchThreshold int `yaml:"scheduled_trip_binary_search_threshold"`
	IterationDepartureStepInSeconds    int `yaml:"iteration_departure_step_in_seconds"`
	SearchThreadPoolSize               int `yaml:"search_thread_pool_size"`
}

// DefaultConfig returns the tuning defaults named in §6.
func DefaultConfig() Config {
	return Config{
		MaxNumberOfTransfers:               12,
		ScheduledTripBinarySearchThreshold: 50,
		IterationDepartureStepInSeconds:    60,
		SearchThreadPoolSize:               0,
	}
}

// ReadConfig loads a yaml tuning-parameter file over the defaults, in the
// style of the teacher's ReadConfig - unreadable or malformed config is a
// configuration error the caller must handle before building a Service.
func ReadConfig(file string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("raptorservice: reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("raptorservice: parsing config: %w", err)
	}
	slog.Info("raptorservice: loaded config", "max_number_of_transfers", config.MaxNumberOfTransfers,
		"iteration_departure_step_in_seconds", config.IterationDepartureStepInSeconds)
	return config, nil
}
