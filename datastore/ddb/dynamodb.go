/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/cfstress/config"
	"github.com/suparena/cfstress/datastore"
	"github.com/suparena/cfstress/errors"
	"github.com/suparena/cfstress/registry"
	"github.com/suparena/cfstress/storagemodels"
)

// Attribute names of a cell item. RowKey is the partition key and Column
// the sort key of every collection table.
const (
	attrRowKey = "RowKey"
	attrColumn = "Column"
	attrValue  = "Value"
)

func init() {
	registry.RegisterBackend(config.BackendDynamoDB, func(ctx context.Context, cfg config.Store) (datastore.Client, error) {
		return Open(ctx, cfg)
	})
}

// API is the subset of the DynamoDB client used by Client.
type API interface {
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error)
	DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, optFns ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error)
}

// cell is one column of one row, stored as its own item.
type cell struct {
	RowKey string `dynamodbav:"RowKey"`
	Column string `dynamodbav:"Column"`
	Value  string `dynamodbav:"Value"`
}

// Client implements datastore.Client on DynamoDB. Each collection is a
// table named TablePrefix+collection.
type Client struct {
	api     API
	store   config.Store
	options storagemodels.RetryOptions
}

var _ datastore.Client = (*Client)(nil)

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are
// used when an access key is configured, otherwise the default AWS chain.
func NewDynamoDBClient(ctx context.Context, cfg config.Store) (*sdk.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewClient wraps an existing API.
func NewClient(api API, cfg config.Store, opts ...storagemodels.RetryOption) *Client {
	options := storagemodels.DefaultRetryOptions()
	for _, opt := range opts {
		opt(&options)
	}
	// BatchWriteItem accepts at most 25 requests.
	if options.BatchSize <= 0 || options.BatchSize > 25 {
		options.BatchSize = 25
	}
	if options.PageSize <= 0 {
		options.PageSize = storagemodels.DefaultRetryOptions().PageSize
	}
	return &Client{api: api, store: cfg, options: options}
}

// Open builds a client and checks that the index and data tables exist.
func Open(ctx context.Context, cfg config.Store, opts ...storagemodels.RetryOption) (*Client, error) {
	api, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, errors.NewStoreUnavailableError(config.BackendDynamoDB, endpoints(cfg), err)
	}

	c := NewClient(api, cfg, opts...)
	if err := c.checkTables(ctx); err != nil {
		return nil, errors.NewStoreUnavailableError(config.BackendDynamoDB, endpoints(cfg), err)
	}
	return c, nil
}

func (c *Client) checkTables(ctx context.Context) error {
	for _, collection := range []string{c.store.IndexCollection, c.store.DataCollection} {
		if collection == "" {
			continue
		}
		table := c.store.TableName(collection)
		if _, err := c.api.DescribeTable(ctx, &sdk.DescribeTableInput{TableName: aws.String(table)}); err != nil {
			return fmt.Errorf("describe table %s: %w", table, err)
		}
	}
	return nil
}

// Close is a no-op; the SDK client holds no session.
func (c *Client) Close() error {
	return nil
}

// consistentRead maps a consistency level name to DynamoDB's read mode.
// The single-replica levels read eventually consistent data.
func consistentRead(level string) bool {
	switch strings.ToUpper(level) {
	case "", "ANY", "ONE", "LOCAL_ONE":
		return false
	default:
		return true
	}
}

func endpoints(cfg config.Store) []string {
	if cfg.Endpoint != "" {
		return []string{cfg.Endpoint}
	}
	return []string{cfg.Region}
}
