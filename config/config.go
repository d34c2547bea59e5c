/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names understood by the registry.
const (
	BackendCassandra = "cassandra"
	BackendDynamoDB  = "dynamodb"
	BackendMemory    = "memory"
)

// Config is the complete harness configuration.
type Config struct {
	Store    Store    `yaml:"store" json:"store"`
	Workload Workload `yaml:"workload" json:"workload"`
	Output   Output   `yaml:"output" json:"output"`
}

// Store selects and configures the target store session. It is passed
// explicitly to the backend opener; nothing about the target is global.
type Store struct {
	Backend         string   `yaml:"backend" json:"backend"`
	Hosts           []string `yaml:"hosts" json:"hosts"`
	Keyspace        string   `yaml:"keyspace" json:"keyspace"`
	IndexCollection string   `yaml:"index_collection" json:"index_collection"`
	DataCollection  string   `yaml:"data_collection" json:"data_collection"`

	// Consistency is the default level for every collection.
	Consistency string `yaml:"consistency" json:"consistency"`
	// Collections overrides the read/write level per collection name.
	Collections map[string]CollectionConsistency `yaml:"collections" json:"collections"`

	Username       string `yaml:"username" json:"username"`
	Password       string `yaml:"password" json:"password"`
	ConnectTimeout string `yaml:"connect_timeout" json:"connect_timeout"`
	NumConns       int    `yaml:"num_conns" json:"num_conns"`

	// DynamoDB
	Region      string `yaml:"region" json:"region"`
	AccessKey   string `yaml:"access_key" json:"access_key"`
	SecretKey   string `yaml:"secret_key" json:"secret_key"`
	Endpoint    string `yaml:"endpoint" json:"endpoint"`
	TablePrefix string `yaml:"table_prefix" json:"table_prefix"`
}

// CollectionConsistency holds the read and write levels of one collection.
type CollectionConsistency struct {
	Read  string `yaml:"read" json:"read"`
	Write string `yaml:"write" json:"write"`
}

// Workload holds the dataset shape and the load concurrency defaults.
type Workload struct {
	IndexRowKey       string  `yaml:"index_row_key" json:"index_row_key"`
	IndexColumnPrefix string  `yaml:"index_column_prefix" json:"index_column_prefix"`
	DataColumnPrefix  string  `yaml:"data_column_prefix" json:"data_column_prefix"`
	Placeholder       string  `yaml:"placeholder" json:"placeholder"`
	RangeStart        string  `yaml:"range_start" json:"range_start"`
	RangeEnd          string  `yaml:"range_end" json:"range_end"`
	Sessions          int     `yaml:"sessions" json:"sessions"`
	FetchConcurrency  int     `yaml:"fetch_concurrency" json:"fetch_concurrency"`
	FetchRate         float64 `yaml:"fetch_rate" json:"fetch_rate"`
	ProgressEvery     int     `yaml:"progress_every" json:"progress_every"`
}

// Output controls logging, reports and the metrics endpoint.
type Output struct {
	LogLevel    string `yaml:"log_level" json:"log_level"`
	LogEncoding string `yaml:"log_encoding" json:"log_encoding"`
	ReportPath  string `yaml:"report_path" json:"report_path"`
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`
}

// Default returns the stock configuration: a keyspace
// "test" with INDEXCF/DATACF read and written at ONE.
func Default() Config {
	return Config{
		Store: Store{
			Backend:         BackendCassandra,
			Hosts:           []string{"127.0.0.1"},
			Keyspace:        "test",
			IndexCollection: "INDEXCF",
			DataCollection:  "DATACF",
			Consistency:     "ONE",
			ConnectTimeout:  "5s",
			NumConns:        2,
			Region:          "us-east-1",
		},
		Workload: Workload{
			IndexRowKey:       "index",
			IndexColumnPrefix: "col",
			DataColumnPrefix:  "hello",
			Placeholder:       "world",
			RangeStart:        "a",
			RangeEnd:          "z",
			Sessions:          10,
			FetchConcurrency:  10,
			ProgressEvery:     1000,
		},
		Output: Output{
			LogLevel:    "info",
			LogEncoding: "console",
		},
	}
}

// LoadFile reads a YAML or JSON file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &config, nil
}

// ReadConsistency returns the read level of a collection.
func (s Store) ReadConsistency(collection string) string {
	if c, ok := s.Collections[collection]; ok && c.Read != "" {
		return strings.ToUpper(c.Read)
	}
	return strings.ToUpper(s.Consistency)
}

// WriteConsistency returns the write level of a collection.
func (s Store) WriteConsistency(collection string) string {
	if c, ok := s.Collections[collection]; ok && c.Write != "" {
		return strings.ToUpper(c.Write)
	}
	return strings.ToUpper(s.Consistency)
}

// Timeout parses ConnectTimeout; an empty value means no explicit timeout.
func (s Store) Timeout() (time.Duration, error) {
	if s.ConnectTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.ConnectTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid connect_timeout: %w", err)
	}
	return d, nil
}

// TableName returns the DynamoDB table backing a collection.
func (s Store) TableName(collection string) string {
	return s.TablePrefix + collection
}
