/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/suparena/cfstress/errors"
)

var consistencyLevels = map[string]bool{
	"ANY":          true,
	"ONE":          true,
	"TWO":          true,
	"THREE":        true,
	"QUORUM":       true,
	"ALL":          true,
	"LOCAL_QUORUM": true,
	"EACH_QUORUM":  true,
	"LOCAL_ONE":    true,
}

// IsConsistencyLevel reports whether name is a known consistency level.
func IsConsistencyLevel(name string) bool {
	return consistencyLevels[strings.ToUpper(name)]
}

// Validate checks the configuration and returns the first problem found as
// a ConfigurationError.
func (c *Config) Validate() error {
	s := c.Store

	switch s.Backend {
	case BackendCassandra:
		if len(s.Hosts) == 0 {
			return errors.NewConfigurationError("store.hosts", "at least one host is required")
		}
		if s.Keyspace == "" {
			return errors.NewConfigurationError("store.keyspace", "must not be empty")
		}
	case BackendDynamoDB:
		if s.Region == "" {
			return errors.NewConfigurationError("store.region", "must not be empty")
		}
	case BackendMemory:
	case "":
		return errors.NewConfigurationError("store.backend", "must not be empty")
	default:
		return errors.NewConfigurationError("store.backend", fmt.Sprintf("unknown backend %q", s.Backend))
	}

	if s.IndexCollection == "" || s.DataCollection == "" {
		return errors.NewConfigurationError("store.collections", "index and data collection names are required")
	}
	if s.IndexCollection == s.DataCollection {
		return errors.NewConfigurationError("store.collections", "index and data collections must differ")
	}

	for _, collection := range []string{s.IndexCollection, s.DataCollection} {
		for _, level := range []string{s.ReadConsistency(collection), s.WriteConsistency(collection)} {
			if !IsConsistencyLevel(level) {
				return errors.NewConfigurationError("store.consistency", fmt.Sprintf("unknown level %q for %s", level, collection))
			}
		}
	}

	if _, err := s.Timeout(); err != nil {
		return errors.NewConfigurationError("store.connect_timeout", err.Error())
	}
	if s.NumConns < 0 {
		return errors.NewConfigurationError("store.num_conns", "must be non-negative")
	}

	w := c.Workload
	if w.IndexRowKey == "" {
		return errors.NewConfigurationError("workload.index_row_key", "must not be empty")
	}
	if w.IndexColumnPrefix == "" || w.DataColumnPrefix == "" {
		return errors.NewConfigurationError("workload.column_prefix", "must not be empty")
	}
	if w.RangeStart != "" && w.RangeEnd != "" && w.RangeStart > w.RangeEnd {
		return errors.NewConfigurationError("workload.range", "range_start must not sort after range_end")
	}
	if w.Sessions < 1 {
		return errors.NewConfigurationError("workload.sessions", "must be at least 1")
	}
	if w.FetchConcurrency < 1 {
		return errors.NewConfigurationError("workload.fetch_concurrency", "must be at least 1")
	}
	if w.FetchRate < 0 {
		return errors.NewConfigurationError("workload.fetch_rate", "must be non-negative")
	}
	if w.ProgressEvery < 0 {
		return errors.NewConfigurationError("workload.progress_every", "must be non-negative")
	}

	if _, err := zapcore.ParseLevel(c.Output.LogLevel); err != nil {
		return errors.NewConfigurationError("output.log_level", err.Error())
	}
	switch c.Output.LogEncoding {
	case "console", "json":
	default:
		return errors.NewConfigurationError("output.log_encoding", fmt.Sprintf("unknown encoding %q", c.Output.LogEncoding))
	}

	return nil
}
