package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore implements EntityStore on a single DynamoDB table.
type DynamoStore struct {
	client *dynamodb.Client
	table  TableSpec
}

// NewDynamoStore creates a store for the given table.
func NewDynamoStore(client *dynamodb.Client, table TableSpec) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (s *DynamoStore) key(partition, sort string) map[string]types.AttributeValue {
	key := map[string]types.AttributeValue{
		s.table.PartitionKey: &types.AttributeValueMemberS{Value: partition},
	}
	if s.table.SortKey != "" {
		key[s.table.SortKey] = &types.AttributeValueMemberS{Value: sort}
	}
	return key
}

// Put upserts a record.
func (s *DynamoStore) Put(ctx context.Context, rec Record) error {
	item, err := attributevalue.MarshalMap(map[string]string(rec))
	if err != nil {
		return fmt.Errorf("marshal record for %s: %w", s.table.Name, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table.Name),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item in %s: %w", s.table.Name, err)
	}
	return nil
}

// Get returns the record at (partition, sort), reporting absence via ok.
func (s *DynamoStore) Get(ctx context.Context, partition, sort string) (Record, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table.Name),
		Key:       s.key(partition, sort),
	})
	if err != nil {
		return nil, false, fmt.Errorf("get item from %s: %w", s.table.Name, err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	rec, err := unmarshalRecord(out.Item)
	if err != nil {
		return nil, false, fmt.Errorf("decode item from %s: %w", s.table.Name, err)
	}
	return rec, true, nil
}

// Query returns the partition's records whose sort key begins with sortPrefix.
func (s *DynamoStore) Query(ctx context.Context, partition, sortPrefix string) ([]Record, error) {
	keyCond := expression.Key(s.table.PartitionKey).Equal(expression.Value(partition))
	if sortPrefix != "" {
		keyCond = keyCond.And(expression.Key(s.table.SortKey).BeginsWith(sortPrefix))
	}
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build query expression for %s: %w", s.table.Name, err)
	}
	return s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.table.Name),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

// QueryIndex returns the records whose secondary-index key equals value.
func (s *DynamoStore) QueryIndex(ctx context.Context, indexName, key, value string) ([]Record, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(key).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build index query expression for %s: %w", s.table.Name, err)
	}
	return s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.table.Name),
		IndexName:                 aws.String(indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

// Delete removes the record at (partition, sort). DynamoDB deletes of absent
// keys succeed, which is exactly the no-op contract.
func (s *DynamoStore) Delete(ctx context.Context, partition, sort string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table.Name),
		Key:       s.key(partition, sort),
	})
	if err != nil {
		return fmt.Errorf("delete item from %s: %w", s.table.Name, err)
	}
	return nil
}

func (s *DynamoStore) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]Record, error) {
	var records []Record
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", s.table.Name, err)
		}
		for _, item := range page.Items {
			rec, err := unmarshalRecord(item)
			if err != nil {
				return nil, fmt.Errorf("decode item from %s: %w", s.table.Name, err)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

func unmarshalRecord(item map[string]types.AttributeValue) (Record, error) {
	var m map[string]string
	if err := attributevalue.UnmarshalMap(item, &m); err != nil {
		return nil, err
	}
	return Record(m), nil
}
