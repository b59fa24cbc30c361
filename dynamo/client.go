// Package dynamo implements the terrace table-service client over
// DynamoDB. Tables use a string partition key "pk" and string sort key
// "sk"; record columns become item attributes.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jacentio/terrace/batch"
	"github.com/jacentio/terrace/table"
)

// Client implements batch.Client against DynamoDB.
type Client struct {
	ddb *dynamodb.Client
}

var _ batch.Client = (*Client)(nil)

// NewClient loads AWS configuration and constructs the client. Endpoint,
// region and profile from cfg override the environment when set.
func NewClient(ctx context.Context, cfg batch.Config) (*Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	ac, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var clientOpts []func(*dynamodb.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	return &Client{ddb: dynamodb.NewFromConfig(ac, clientOpts...)}, nil
}

// NewFromClient wraps an existing DynamoDB client.
func NewFromClient(ddb *dynamodb.Client) *Client {
	return &Client{ddb: ddb}
}

// TableExists reports whether the named table exists.
func (c *Client) TableExists(ctx context.Context, name string) (bool, error) {
	_, err := c.ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateTable creates the named table with the standard two-part key
// schema. Creating a table that already exists is not an error.
func (c *Client) CreateTable(ctx context.Context, name string) error {
	_, err := c.ddb.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return err
	}
	return nil
}

// Execute runs a single operation.
func (c *Client) Execute(ctx context.Context, op batch.Operation) error {
	switch op.Kind {
	case batch.KindDelete:
		_, err := c.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(op.Table),
			Key:       keyOf(op.Record),
		})
		return err

	case batch.KindMerge, batch.KindInsertOrMerge:
		input, err := mergeInput(op)
		if err != nil {
			return err
		}
		_, err = c.ddb.UpdateItem(ctx, input)
		return err

	default:
		input, err := putInput(op)
		if err != nil {
			return err
		}
		_, err = c.ddb.PutItem(ctx, input)
		return err
	}
}

// ExecuteBatch runs a unit as one TransactWriteItems request, which is
// atomic and shares the unit's 100-entry cap.
func (c *Client) ExecuteBatch(ctx context.Context, unit *batch.Unit) error {
	items := make([]types.TransactWriteItem, 0, unit.Size())
	for _, op := range unit.Ops {
		item, err := transactItem(op)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	_, err := c.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	return err
}

// transactItem translates one operation into its transactional form.
func transactItem(op batch.Operation) (types.TransactWriteItem, error) {
	switch op.Kind {
	case batch.KindDelete:
		return types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(op.Table),
				Key:       keyOf(op.Record),
			},
		}, nil

	case batch.KindMerge, batch.KindInsertOrMerge:
		input, err := mergeInput(op)
		if err != nil {
			return types.TransactWriteItem{}, err
		}
		update := &types.Update{
			TableName:                 input.TableName,
			Key:                       input.Key,
			UpdateExpression:          input.UpdateExpression,
			ConditionExpression:       input.ConditionExpression,
			ExpressionAttributeNames:  input.ExpressionAttributeNames,
			ExpressionAttributeValues: input.ExpressionAttributeValues,
		}
		return types.TransactWriteItem{Update: update}, nil

	default:
		input, err := putInput(op)
		if err != nil {
			return types.TransactWriteItem{}, err
		}
		return types.TransactWriteItem{
			Put: &types.Put{
				TableName:           input.TableName,
				Item:                input.Item,
				ConditionExpression: input.ConditionExpression,
			},
		}, nil
	}
}

// putInput builds the PutItem form of an insert, replace or
// insert-or-replace. Insert fails on an existing row, replace on a
// missing one; insert-or-replace is unconditional.
func putInput(op batch.Operation) (*dynamodb.PutItemInput, error) {
	item, err := marshalRecord(op.Record)
	if err != nil {
		return nil, err
	}
	input := &dynamodb.PutItemInput{
		TableName: aws.String(op.Table),
		Item:      item,
	}
	switch op.Kind {
	case batch.KindInsert:
		input.ConditionExpression = aws.String("attribute_not_exists(pk)")
	case batch.KindReplace:
		input.ConditionExpression = aws.String("attribute_exists(pk)")
	}
	return input, nil
}

// mergeInput builds the UpdateItem form of a merge: SET each present
// column, leaving absent columns untouched. Plain merge requires the row
// to exist; insert-or-merge creates it.
func mergeInput(op batch.Operation) (*dynamodb.UpdateItemInput, error) {
	rec := op.Record
	exprNames := make(map[string]string)
	exprValues := make(map[string]types.AttributeValue)
	var setClauses []string

	i := 0
	for name, v := range rec.Columns() {
		av, err := marshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		nameKey := fmt.Sprintf("#c%d", i)
		valueKey := fmt.Sprintf(":v%d", i)
		exprNames[nameKey] = name
		exprValues[valueKey] = av
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
		i++
	}
	exprNames["#ts"] = "ts"
	exprValues[":ts"] = timestampAttr(rec)
	setClauses = append(setClauses, "#ts = :ts")

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(op.Table),
		Key:                       keyOf(rec),
		UpdateExpression:          aws.String("SET " + joinClauses(setClauses)),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	}
	if op.Kind == batch.KindMerge {
		input.ConditionExpression = aws.String("attribute_exists(pk)")
	}
	return input, nil
}

// keyOf builds the two-part key item for a record.
func keyOf(rec *table.Record) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: rec.PartitionKey()},
		"sk": &types.AttributeValueMemberS{Value: rec.RowKey()},
	}
}

// marshalRecord converts a record into a full DynamoDB item.
func marshalRecord(rec *table.Record) (map[string]types.AttributeValue, error) {
	item := keyOf(rec)
	item["ts"] = timestampAttr(rec)
	for name, v := range rec.Columns() {
		av, err := marshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		item[name] = av
	}
	return item, nil
}

// marshalValue converts one native column value to its attribute form.
// GUIDs and times store as strings; the primitive kinds go through the
// SDK marshaller.
func marshalValue(v any) (types.AttributeValue, error) {
	switch t := v.(type) {
	case uuid.UUID:
		return &types.AttributeValueMemberS{Value: t.String()}, nil
	case time.Time:
		return &types.AttributeValueMemberS{Value: t.UTC().Format(time.RFC3339Nano)}, nil
	}
	return attributevalue.Marshal(v)
}

// timestampAttr renders the record's last-modified time, defaulting to
// now for records the service has not stamped yet.
func timestampAttr(rec *table.Record) types.AttributeValue {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &types.AttributeValueMemberS{Value: ts.UTC().Format(time.RFC3339Nano)}
}

func joinClauses(clauses []string) string {
	out := clauses[0]
	for _, c := range clauses[1:] {
		out += ", " + c
	}
	return out
}
