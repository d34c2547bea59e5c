/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvBackend     = "CFSTRESS_BACKEND"
	EnvHosts       = "CFSTRESS_HOSTS"
	EnvKeyspace    = "CFSTRESS_KEYSPACE"
	EnvConsistency = "CFSTRESS_CONSISTENCY"
	EnvUsername    = "CFSTRESS_CASSANDRA_USERNAME"
	EnvPassword    = "CFSTRESS_CASSANDRA_PASSWORD"
	EnvTablePrefix = "CFSTRESS_DDB_TABLE_PREFIX"
	EnvEndpoint    = "CFSTRESS_DDB_ENDPOINT"
	EnvAWSRegion   = "AWS_REGION"
	EnvAWSAccess   = "AWS_ACCESS_KEY"
	EnvAWSSecret   = "AWS_SECRET_KEY"
)

// LoadEnvFile loads variables from a dotenv file into the process
// environment. A missing file is not an error unless required is set.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !required && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

// ApplyEnv overrides store settings from the environment.
func (c *Config) ApplyEnv() {
	s := &c.Store

	if v := os.Getenv(EnvBackend); v != "" {
		s.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvHosts); v != "" {
		s.Hosts = SplitHosts(v)
	}
	if v := os.Getenv(EnvKeyspace); v != "" {
		s.Keyspace = v
	}
	if v := os.Getenv(EnvConsistency); v != "" {
		s.Consistency = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		s.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		s.Password = v
	}
	if v := os.Getenv(EnvTablePrefix); v != "" {
		s.TablePrefix = v
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		s.Endpoint = v
	}
	if v := os.Getenv(EnvAWSRegion); v != "" {
		s.Region = v
	}
	if v := os.Getenv(EnvAWSAccess); v != "" {
		s.AccessKey = v
	}
	if v := os.Getenv(EnvAWSSecret); v != "" {
		s.SecretKey = v
	}
}

// SplitHosts parses a comma separated host list, dropping blanks.
func SplitHosts(v string) []string {
	var hosts []string
	for _, h := range strings.Split(v, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
