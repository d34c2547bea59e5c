/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/cfstress/storagemodels"
)

// Write puts one item per column, BatchSize items per BatchWriteItem call.
// DynamoDB writes are always durable, so the write consistency level is
// not consulted.
func (c *Client) Write(ctx context.Context, collection, rowKey string, columns ...storagemodels.Column) error {
	requests, err := buildPutRequests(rowKey, columns)
	if err != nil {
		return err
	}

	table := c.store.TableName(collection)
	for start := 0; start < len(requests); start += c.options.BatchSize {
		end := min(start+c.options.BatchSize, len(requests))
		if err := c.batchWriteWithRetry(ctx, table, requests[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// buildPutRequests marshals the columns into put requests. A batch may not
// name the same key twice, so a repeated column keeps its last value.
func buildPutRequests(rowKey string, columns []storagemodels.Column) ([]types.WriteRequest, error) {
	pos := make(map[string]int, len(columns))
	requests := make([]types.WriteRequest, 0, len(columns))

	for _, col := range columns {
		item, err := attributevalue.MarshalMap(cell{RowKey: rowKey, Column: col.Name, Value: col.Value})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal cell %s: %w", col.Name, err)
		}
		req := types.WriteRequest{PutRequest: &types.PutRequest{Item: item}}

		if i, seen := pos[col.Name]; seen {
			requests[i] = req
			continue
		}
		pos[col.Name] = len(requests)
		requests = append(requests, req)
	}
	return requests, nil
}

// batchWriteWithRetry sends one batch and resends unprocessed items until
// none remain or retries run out.
func (c *Client) batchWriteWithRetry(ctx context.Context, table string, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{table: requests}
	var lastErr error

	for attempt := 0; attempt <= c.options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		out, err := c.api.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{RequestItems: pending})
		lastErr = err
		switch {
		case err != nil && !isRetryableError(err):
			return fmt.Errorf("BatchWriteItem failed: %w", err)
		case err == nil && len(out.UnprocessedItems[table]) == 0:
			return nil
		case err == nil:
			pending = map[string][]types.WriteRequest{table: out.UnprocessedItems[table]}
		}

		if attempt < c.options.MaxRetries {
			if err := sleep(ctx, time.Duration(attempt+1)*c.options.RetryBackoff); err != nil {
				return err
			}
		}
	}

	if lastErr != nil {
		return fmt.Errorf("BatchWriteItem failed after %d retries: %w", c.options.MaxRetries, lastErr)
	}
	return fmt.Errorf("BatchWriteItem left %d items unprocessed after %d retries", len(pending[table]), c.options.MaxRetries)
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	if errors.As(err, &throughput) || errors.As(err, &limit) || errors.As(err, &internal) {
		return true
	}

	var awsErr interface{ IsRetryable() bool }
	if errors.As(err, &awsErr) {
		return awsErr.IsRetryable()
	}

	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
