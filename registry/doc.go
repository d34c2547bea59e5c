/*
Package registry maps backend names to the functions that open store sessions.

Each backend package registers itself from an init function, so a binary
supports exactly the backends it imports:

	import _ "github.com/suparena/cfstress/datastore/cql"

	func init() {
	    registry.RegisterBackend("cassandra", Open)
	}

Callers then open a session by name taken from configuration:

	client, err := registry.Open(ctx, cfg.Store)

Registering the same name twice panics. Asking for an unknown name returns
a configuration error listing the registered names.
*/
package registry
