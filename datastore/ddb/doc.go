/*
Package ddb provides a DynamoDB implementation of the datastore.Client interface.

Every collection maps to one table named TablePrefix+collection with a
string partition key "RowKey" and a string sort key "Column". Each column of
a wide row is stored as its own item carrying a "Value" attribute, so a
bounded column range read becomes a single key-condition Query:

	RowKey = :rk AND Column BETWEEN :start AND :end

Key Features:

Range reads page through LastEvaluatedKey until the requested limit is
reached, ascending or descending by column name.

Writes are grouped into BatchWriteItem calls of up to 25 items. Unprocessed
items and throttled requests are retried with a linear backoff:

	client := ddb.NewClient(api, cfg.Store,
	    storagemodels.WithMaxRetries(5),
	    storagemodels.WithRetryBackoff(200*time.Millisecond),
	)

Consistency levels ANY, ONE and LOCAL_ONE read eventually consistent data;
every stronger level sets ConsistentRead. The tables must already exist.
*/
package ddb
