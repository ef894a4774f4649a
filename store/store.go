package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lattice/internal/shard"
)

// Store provides DynamoDB operations for the service's resource records.
type Store struct {
	client *dynamodb.Client
	config Config
}

// New creates a new Store instance.
func New(client *dynamodb.Client, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// Create creates a new record with container validation and unique constraints.
func (s *Store) Create(ctx context.Context, entity Entity, item map[string]types.AttributeValue) error {
	items := []types.TransactWriteItem{}
	now := time.Now()
	nowUnix := now.Unix()
	nowISO := now.UTC().Format(time.RFC3339)

	// Track item indices for error mapping
	containerCheckIndex := -1
	entityPutIndex := -1

	// 1. Add container condition check if the entity lives in a container
	if checker, ok := entity.(ContainerChecker); ok {
		if check := checker.ContainerCheck(); check != nil {
			containerCheckIndex = len(items)
			items = append(items, types.TransactWriteItem{
				ConditionCheck: &types.ConditionCheck{
					TableName:           aws.String(check.TableName),
					Key:                 check.Key,
					ConditionExpression: aws.String(ContainerExistsCondition()),
					ExpressionAttributeNames: map[string]string{
						"#ttl": "ttl",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":now": &types.AttributeValueMemberN{
							Value: strconv.FormatInt(nowUnix, 10),
						},
					},
				},
			})
		}
	}

	// 2. Set managed fields
	item["entity_ref"] = &types.AttributeValueMemberS{Value: entity.EntityRef()}
	item["version"] = &types.AttributeValueMemberN{Value: "1"}
	item["created_at"] = &types.AttributeValueMemberS{Value: nowISO}
	item["updated_at"] = &types.AttributeValueMemberS{Value: nowISO}

	// 3. Handle unique constraints
	var uniquePKs []string
	if uf, ok := entity.(UniqueFielder); ok {
		entityType := entity.EntityType()
		scope := uf.UniqueScope()
		for field, value := range uf.UniqueFields() {
			constraintPK := shard.ConstraintPK(scope, entityType, field, value)
			uniquePKs = append(uniquePKs, constraintPK)

			items = append(items, types.TransactWriteItem{
				Put: &types.Put{
					TableName: aws.String(s.config.UniqueTable),
					Item: map[string]types.AttributeValue{
						"pk":          &types.AttributeValueMemberS{Value: constraintPK},
						"sk":          &types.AttributeValueMemberS{Value: "CONSTRAINT"},
						"scope":       &types.AttributeValueMemberS{Value: scope},
						"entity_type": &types.AttributeValueMemberS{Value: entityType},
						"field_name":  &types.AttributeValueMemberS{Value: field},
						"field_value": &types.AttributeValueMemberS{Value: value},
						"entity_ref":  &types.AttributeValueMemberS{Value: entity.EntityRef()},
					},
					ConditionExpression: aws.String("attribute_not_exists(pk)"),
				},
			})
		}
	}

	// Store unique PKs on the record for post-delete cleanup
	if len(uniquePKs) > 0 {
		uniquePKsAttr, _ := attributevalue.MarshalList(uniquePKs)
		item["_unique_pks"] = &types.AttributeValueMemberL{Value: uniquePKsAttr}
	}

	// 4. Add the entity put
	entityPutIndex = len(items)
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(entity.TableName()),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		},
	})

	// 5. Execute transaction
	_, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})

	return s.mapCreateTransactionError(err, containerCheckIndex, entityPutIndex)
}

// Get retrieves a record by key, returning ErrNotFound if deleted or missing.
func (s *Store) Get(ctx context.Context, table string, key PK) (*Item, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	// Check if the record is deleted (has expired TTL)
	if IsDeleted(result.Item) {
		return nil, ErrNotFound
	}

	return s.unmarshalItem(result.Item), nil
}

// Query queries records with automatic TTL filtering.
func (s *Store) Query(ctx context.Context, input QueryInput) ([]*Item, error) {
	exprNames := map[string]string{"#ttl": "ttl"}
	for k, v := range input.ExpressionAttributeNames {
		exprNames[k] = v
	}

	exprValues := map[string]types.AttributeValue{
		":now": &types.AttributeValueMemberN{
			Value: strconv.FormatInt(time.Now().Unix(), 10),
		},
	}
	for k, v := range input.ExpressionAttributeValues {
		exprValues[k] = v
	}

	queryInput := &dynamodb.QueryInput{
		TableName:                 aws.String(input.TableName),
		KeyConditionExpression:    aws.String(input.KeyConditionExpression),
		FilterExpression:          aws.String(TTLFilterExpr()),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	}

	if input.IndexName != "" {
		queryInput.IndexName = aws.String(input.IndexName)
	}
	if input.Limit > 0 {
		queryInput.Limit = aws.Int32(input.Limit)
	}

	var items []*Item
	paginator := dynamodb.NewQueryPaginator(s.client, queryInput)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			items = append(items, s.unmarshalItem(raw))
		}
	}

	return items, nil
}

// Scan scans a table with automatic TTL filtering, collecting every live record.
// Sorting and page slicing happen above this layer.
func (s *Store) Scan(ctx context.Context, input ScanInput) ([]*Item, error) {
	filterExpr := TTLFilterExpr()
	if input.FilterExpression != "" {
		filterExpr = fmt.Sprintf("(%s) AND (%s)", input.FilterExpression, filterExpr)
	}

	exprNames := map[string]string{"#ttl": "ttl"}
	for k, v := range input.ExpressionAttributeNames {
		exprNames[k] = v
	}

	exprValues := map[string]types.AttributeValue{
		":now": &types.AttributeValueMemberN{
			Value: strconv.FormatInt(time.Now().Unix(), 10),
		},
	}
	for k, v := range input.ExpressionAttributeValues {
		exprValues[k] = v
	}

	var items []*Item
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                 aws.String(input.TableName),
		FilterExpression:          aws.String(filterExpr),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			items = append(items, s.unmarshalItem(raw))
		}
	}

	return items, nil
}

// Update updates a record with optimistic locking.
// If the entity implements UniqueFielder and unique fields change,
// old constraints are deleted and new ones created transactionally.
func (s *Store) Update(ctx context.Context, entity Entity, item map[string]types.AttributeValue, expectedVersion int64) error {
	if uf, ok := entity.(UniqueFielder); ok {
		return s.updateWithUniqueConstraints(ctx, entity, item, expectedVersion, uf)
	}
	return s.updateSimple(ctx, entity, item, expectedVersion)
}

// updateSimple performs a basic update without unique constraint handling.
func (s *Store) updateSimple(ctx context.Context, entity Entity, item map[string]types.AttributeValue, expectedVersion int64) error {
	setClauses, exprNames, exprValues := buildSetClauses(item, expectedVersion)

	updateExpr := "SET " + strings.Join(setClauses, ", ")

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(entity.TableName()),
		Key:                       entity.GetKey(),
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String("#version = :expected_version AND attribute_not_exists(#ttl)"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})

	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return err
	}
	return nil
}

// updateWithUniqueConstraints handles updates where unique fields may have changed.
func (s *Store) updateWithUniqueConstraints(ctx context.Context, entity Entity, item map[string]types.AttributeValue, expectedVersion int64, uf UniqueFielder) error {
	// Fetch current record to get old unique field values
	current, err := s.Get(ctx, entity.TableName(), entity.GetKey())
	if err != nil {
		return err
	}

	scope := uf.UniqueScope()
	entityType := entity.EntityType()
	newUniques := uf.UniqueFields()

	// Extract old unique values from the current record
	oldUniques := make(map[string]string)
	for field := range newUniques {
		if v, ok := current.Raw[field].(*types.AttributeValueMemberS); ok {
			oldUniques[field] = v.Value
		}
	}

	// Check if any unique fields changed
	var changedFields []string
	for field, newValue := range newUniques {
		if oldValue, ok := oldUniques[field]; !ok || oldValue != newValue {
			changedFields = append(changedFields, field)
		}
	}

	// If no unique fields changed, use the simple update
	if len(changedFields) == 0 {
		return s.updateSimple(ctx, entity, item, expectedVersion)
	}

	items := []types.TransactWriteItem{}

	// Compute all new unique PKs (including unchanged ones for the _unique_pks update)
	var newUniquePKs []string
	for field, newValue := range newUniques {
		newUniquePKs = append(newUniquePKs, shard.ConstraintPK(scope, entityType, field, newValue))
	}

	// For each changed field: delete the old constraint, create the new one
	for _, field := range changedFields {
		oldValue := oldUniques[field]
		newValue := newUniques[field]

		if oldValue != "" {
			oldPK := shard.ConstraintPK(scope, entityType, field, oldValue)
			items = append(items, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: aws.String(s.config.UniqueTable),
					Key: map[string]types.AttributeValue{
						"pk": &types.AttributeValueMemberS{Value: oldPK},
						"sk": &types.AttributeValueMemberS{Value: "CONSTRAINT"},
					},
				},
			})
		}

		newPK := shard.ConstraintPK(scope, entityType, field, newValue)
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(s.config.UniqueTable),
				Item: map[string]types.AttributeValue{
					"pk":          &types.AttributeValueMemberS{Value: newPK},
					"sk":          &types.AttributeValueMemberS{Value: "CONSTRAINT"},
					"scope":       &types.AttributeValueMemberS{Value: scope},
					"entity_type": &types.AttributeValueMemberS{Value: entityType},
					"field_name":  &types.AttributeValueMemberS{Value: field},
					"field_value": &types.AttributeValueMemberS{Value: newValue},
					"entity_ref":  &types.AttributeValueMemberS{Value: entity.EntityRef()},
				},
				// Fails if another record already has this unique value
				ConditionExpression: aws.String("attribute_not_exists(pk)"),
			},
		})
	}

	// Build the record update
	setClauses, exprNames, exprValues := buildSetClauses(item, expectedVersion)

	exprNames["#unique_pks"] = "_unique_pks"
	uniquePKsAttr, _ := attributevalue.MarshalList(newUniquePKs)
	exprValues[":unique_pks"] = &types.AttributeValueMemberL{Value: uniquePKsAttr}
	setClauses = append(setClauses, "#unique_pks = :unique_pks")

	updateExpr := "SET " + strings.Join(setClauses, ", ")

	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(entity.TableName()),
			Key:                       entity.GetKey(),
			UpdateExpression:          aws.String(updateExpr),
			ConditionExpression:       aws.String("#version = :expected_version AND attribute_not_exists(#ttl)"),
			ExpressionAttributeNames:  exprNames,
			ExpressionAttributeValues: exprValues,
		},
	})

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})

	return s.mapUpdateTransactionError(err)
}

// buildSetClauses builds the SET expression pieces for an update, skipping
// managed fields and adding the version bump and timestamp refresh.
func buildSetClauses(item map[string]types.AttributeValue, expectedVersion int64) ([]string, map[string]string, map[string]types.AttributeValue) {
	now := time.Now().UTC().Format(time.RFC3339)

	var setClauses []string
	exprNames := map[string]string{
		"#updated_at": "updated_at",
		"#version":    "version",
		"#ttl":        "ttl",
	}
	exprValues := map[string]types.AttributeValue{
		":updated_at":       &types.AttributeValueMemberS{Value: now},
		":one":              &types.AttributeValueMemberN{Value: "1"},
		":expected_version": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
	}

	i := 0
	for k, v := range item {
		// Skip managed fields
		if k == "id" || k == "entity_ref" || k == "version" ||
			k == "created_at" || k == "updated_at" || k == "ttl" || k == "_unique_pks" {
			continue
		}
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		exprNames[nameKey] = k
		exprValues[valueKey] = v
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
		i++
	}

	setClauses = append(setClauses, "#updated_at = :updated_at", "#version = #version + :one")

	return setClauses, exprNames, exprValues
}

// SetTTL marks a record for deletion by setting its TTL to now.
// This also increments the version to fail concurrent updates.
func (s *Store) SetTTL(ctx context.Context, entity Entity) error {
	now := time.Now()

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(entity.TableName()),
		Key:                 entity.GetKey(),
		UpdateExpression:    aws.String("SET #ttl = :now, #version = #version + :one"),
		ConditionExpression: aws.String("attribute_not_exists(#ttl)"),
		ExpressionAttributeNames: map[string]string{
			"#ttl":     "ttl",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{
				Value: strconv.FormatInt(now.Unix(), 10),
			},
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})

	// Ignore condition failure - already has TTL (already deleted)
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return nil
	}
	return err
}

// SetUniqueConstraintTTL sets TTL on a unique constraint record.
func (s *Store) SetUniqueConstraintTTL(ctx context.Context, pk string, ttl int64) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.config.UniqueTable),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
			"sk": &types.AttributeValueMemberS{Value: "CONSTRAINT"},
		},
		UpdateExpression:    aws.String("SET #ttl = :ttl"),
		ConditionExpression: aws.String("attribute_not_exists(#ttl)"),
		ExpressionAttributeNames: map[string]string{
			"#ttl": "ttl",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ttl": &types.AttributeValueMemberN{
				Value: strconv.FormatInt(ttl, 10),
			},
		},
	})

	// Ignore condition failure - already has TTL
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return nil
	}
	return err
}

// mapCreateTransactionError maps DynamoDB transaction errors for Create operations.
// containerCheckIndex is the index of the container check item (-1 if none).
// entityPutIndex is the index of the entity put item.
func (s *Store) mapCreateTransactionError(err error, containerCheckIndex, entityPutIndex int) error {
	if err == nil {
		return nil
	}

	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for i, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				if i == containerCheckIndex {
					return ErrParentNotFound
				}
				if i == entityPutIndex {
					return ErrAlreadyExists
				}
				// Must be a unique constraint
				return ErrDuplicateValue
			}
		}
	}

	return err
}

// mapUpdateTransactionError maps DynamoDB transaction errors for Update operations.
func (s *Store) mapUpdateTransactionError(err error) error {
	if err == nil {
		return nil
	}

	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for _, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				// For updates, this is always a unique constraint violation
				return ErrDuplicateValue
			}
		}
	}

	return err
}

// unmarshalItem converts a DynamoDB item to an Item struct.
func (s *Store) unmarshalItem(raw map[string]types.AttributeValue) *Item {
	item := &Item{Raw: raw}

	if v, ok := raw["version"].(*types.AttributeValueMemberN); ok {
		item.Version, _ = strconv.ParseInt(v.Value, 10, 64)
	}
	if v, ok := raw["created_at"].(*types.AttributeValueMemberS); ok {
		item.CreatedAt = v.Value
	}
	if v, ok := raw["updated_at"].(*types.AttributeValueMemberS); ok {
		item.UpdatedAt = v.Value
	}
	if v, ok := raw["entity_ref"].(*types.AttributeValueMemberS); ok {
		item.EntityRef = v.Value
	}

	return item
}
