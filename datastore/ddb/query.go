/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/cfstress/storagemodels"
)

// ReadRange queries the row's cells whose sort key is between r.Start and
// r.End, paging until r.Limit cells are collected or the row is exhausted.
func (c *Client) ReadRange(ctx context.Context, collection, rowKey string, r storagemodels.ColumnRange) ([]storagemodels.Column, error) {
	if r.Empty() {
		return []storagemodels.Column{}, nil
	}

	input := buildRangeQuery(c.store.TableName(collection), rowKey, r)
	input.ConsistentRead = aws.Bool(consistentRead(c.store.ReadConsistency(collection)))

	cols := make([]storagemodels.Column, 0, min(r.Limit, int(c.options.PageSize)))
	for {
		input.Limit = aws.Int32(int32(min(r.Limit-len(cols), int(c.options.PageSize))))

		out, err := c.queryWithRetry(ctx, input)
		if err != nil {
			return nil, err
		}

		var cells []cell
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &cells); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cells: %w", err)
		}
		for _, it := range cells {
			cols = append(cols, storagemodels.Column{Name: it.Column, Value: it.Value})
		}

		if len(cols) >= r.Limit || len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	return cols, nil
}

func buildRangeQuery(table, rowKey string, r storagemodels.ColumnRange) *sdk.QueryInput {
	return &sdk.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("#rk = :rk AND #col BETWEEN :start AND :end"),
		ProjectionExpression:   aws.String("#col, #val"),
		ExpressionAttributeNames: map[string]string{
			"#rk":  attrRowKey,
			"#col": attrColumn,
			"#val": attrValue,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rk":    &types.AttributeValueMemberS{Value: rowKey},
			":start": &types.AttributeValueMemberS{Value: r.Start},
			":end":   &types.AttributeValueMemberS{Value: r.End},
		},
		ScanIndexForward: aws.Bool(!r.Reversed),
	}
}

// queryWithRetry executes a query, retrying throttled requests with a
// linear backoff.
func (c *Client) queryWithRetry(ctx context.Context, input *sdk.QueryInput) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= c.options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := c.api.Query(ctx, input)
		if err == nil {
			return out, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < c.options.MaxRetries {
			if err := sleep(ctx, time.Duration(attempt+1)*c.options.RetryBackoff); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", c.options.MaxRetries, lastErr)
}
