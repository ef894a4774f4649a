// Package store provides a DynamoDB data access layer for the resource records.
package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// Entity is the base interface for all storable types.
type Entity interface {
	// TableName returns the DynamoDB table name for this entity type.
	TableName() string

	// GetKey returns the primary key for this entity.
	GetKey() PK

	// EntityRef returns the type-qualified reference (e.g., "folder#uuid").
	EntityRef() string

	// EntityType returns the entity type name (e.g., "folder").
	EntityType() string
}

// ContainerChecker is implemented by entities that live inside a container.
type ContainerChecker interface {
	// ContainerCheck returns the condition check asserting the container
	// exists and is not deleted. Returns nil for container-less entities.
	ContainerCheck() *ConditionCheck
}

// ConditionCheck defines a container existence check for transactions.
type ConditionCheck struct {
	TableName string
	Key       PK
}

// UniqueFielder is implemented by entities with unique field constraints.
type UniqueFielder interface {
	// UniqueFields returns field name to value mappings for fields
	// that must be unique within UniqueScope.
	UniqueFields() map[string]string

	// UniqueScope names the scope the constraint applies in. The service
	// uses a single global scope per entity type.
	UniqueScope() string
}

// Item represents a retrieved DynamoDB record with managed fields decoded.
type Item struct {
	// Raw is the raw DynamoDB item.
	Raw map[string]types.AttributeValue

	// Version is the optimistic lock version.
	Version int64

	// CreatedAt is the ISO 8601 creation timestamp.
	CreatedAt string

	// UpdatedAt is the ISO 8601 last update timestamp.
	UpdatedAt string

	// EntityRef is the type-qualified entity reference.
	EntityRef string
}

// ScanInput defines parameters for scanning a table.
type ScanInput struct {
	// TableName is the DynamoDB table to scan.
	TableName string

	// FilterExpression is an optional filter (the TTL filter is merged in).
	FilterExpression string

	// ExpressionAttributeNames maps expression attribute name placeholders.
	ExpressionAttributeNames map[string]string

	// ExpressionAttributeValues maps expression attribute value placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
}

// QueryInput defines parameters for querying a table or index.
type QueryInput struct {
	// TableName is the DynamoDB table to query.
	TableName string

	// IndexName is the optional GSI/LSI to query.
	IndexName string

	// KeyConditionExpression is the DynamoDB key condition.
	KeyConditionExpression string

	// ExpressionAttributeNames maps expression attribute name placeholders.
	ExpressionAttributeNames map[string]string

	// ExpressionAttributeValues maps expression attribute value placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue

	// Limit is the maximum number of items to return (0 = no limit).
	Limit int32
}
