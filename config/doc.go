// Package config loads and validates the harness configuration.
//
// Values are layered, later sources winning:
//
//	defaults → YAML/JSON file → .env file + environment → CLI flags
//
// # File format
//
//	store:
//	  backend: cassandra
//	  hosts: [esb-a-test, esb-b-test]
//	  keyspace: test
//	  consistency: ONE
//	  collections:
//	    DATACF: {read: LOCAL_QUORUM}
//	workload:
//	  sessions: 10
//	  fetch_concurrency: 10
//
// # Environment
//
// CFSTRESS_BACKEND, CFSTRESS_HOSTS (comma separated), CFSTRESS_KEYSPACE,
// CFSTRESS_CONSISTENCY, CFSTRESS_CASSANDRA_USERNAME/PASSWORD,
// CFSTRESS_DDB_TABLE_PREFIX, CFSTRESS_DDB_ENDPOINT, AWS_REGION,
// AWS_ACCESS_KEY and AWS_SECRET_KEY.
package config
