// Package dynamo provides the DynamoDB-backed implementation of the engine's
// resource store boundary, built on the generic store layer.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lattice/model"
	"github.com/jacentio/lattice/store"
)

// Adapter exposes typed operations for the service's record kinds.
type Adapter struct {
	s *store.Store
}

// NewAdapter wraps a store.
func NewAdapter(s *store.Store) *Adapter {
	return &Adapter{s: s}
}

// --- Users ---

func (a *Adapter) GetUser(ctx context.Context, id string) (*model.User, error) {
	key := (&model.User{ID: id}).GetKey()
	item, err := a.s.Get(ctx, model.UsersTable, key)
	if err != nil {
		return nil, err
	}
	return decodeUser(item)
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	items, err := a.s.Query(ctx, store.QueryInput{
		TableName:              model.UsersTable,
		IndexName:              model.UsernameIndex,
		KeyConditionExpression: "username = :username",
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":username": &types.AttributeValueMemberS{Value: username},
		},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, store.ErrNotFound
	}
	return decodeUser(items[0])
}

func (a *Adapter) CreateUser(ctx context.Context, u *model.User) error {
	return a.create(ctx, u)
}

// --- Folders ---

func (a *Adapter) GetFolder(ctx context.Context, id string) (*model.Folder, error) {
	key := (&model.Folder{ID: id}).GetKey()
	item, err := a.s.Get(ctx, model.FoldersTable, key)
	if err != nil {
		return nil, err
	}
	return decodeFolder(item)
}

func (a *Adapter) CreateFolder(ctx context.Context, f *model.Folder) error {
	return a.create(ctx, f)
}

func (a *Adapter) UpdateFolder(ctx context.Context, f *model.Folder) error {
	return a.update(ctx, f, &f.Version)
}

func (a *Adapter) DeleteFolder(ctx context.Context, f *model.Folder) error {
	return a.s.SetTTL(ctx, f)
}

func (a *Adapter) Folders(ctx context.Context, filter store.Filter) ([]*model.Folder, error) {
	items, err := a.scan(ctx, model.FoldersTable, filter)
	if err != nil {
		return nil, err
	}

	folders := make([]*model.Folder, 0, len(items))
	for _, item := range items {
		f, err := decodeFolder(item)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, nil
}

// --- Lists ---

func (a *Adapter) GetList(ctx context.Context, id string) (*model.List, error) {
	key := (&model.List{ID: id}).GetKey()
	item, err := a.s.Get(ctx, model.ListsTable, key)
	if err != nil {
		return nil, err
	}
	return decodeList(item)
}

func (a *Adapter) CreateList(ctx context.Context, l *model.List) error {
	return a.create(ctx, l)
}

func (a *Adapter) UpdateList(ctx context.Context, l *model.List) error {
	return a.update(ctx, l, &l.Version)
}

func (a *Adapter) DeleteList(ctx context.Context, l *model.List) error {
	return a.s.SetTTL(ctx, l)
}

func (a *Adapter) Lists(ctx context.Context, filter store.Filter) ([]*model.List, error) {
	items, err := a.scan(ctx, model.ListsTable, filter)
	if err != nil {
		return nil, err
	}

	lists := make([]*model.List, 0, len(items))
	for _, item := range items {
		l, err := decodeList(item)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, nil
}

// --- Todos ---

func (a *Adapter) GetTodo(ctx context.Context, id string) (*model.Todo, error) {
	key := (&model.Todo{ID: id}).GetKey()
	item, err := a.s.Get(ctx, model.TodosTable, key)
	if err != nil {
		return nil, err
	}
	return decodeTodo(item)
}

func (a *Adapter) CreateTodo(ctx context.Context, t *model.Todo) error {
	return a.create(ctx, t)
}

func (a *Adapter) UpdateTodo(ctx context.Context, t *model.Todo) error {
	return a.update(ctx, t, &t.Version)
}

func (a *Adapter) DeleteTodo(ctx context.Context, t *model.Todo) error {
	return a.s.SetTTL(ctx, t)
}

// --- plumbing ---

func (a *Adapter) create(ctx context.Context, entity store.Entity) error {
	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", entity.EntityType(), err)
	}
	return a.s.Create(ctx, entity, item)
}

// update persists the record with the optimistic version check and bumps the
// in-memory version on success so follow-up writes in the same operation
// carry the right expectation.
func (a *Adapter) update(ctx context.Context, entity store.Entity, version *int64) error {
	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", entity.EntityType(), err)
	}
	if err := a.s.Update(ctx, entity, item, *version); err != nil {
		return err
	}
	*version++
	return nil
}

func (a *Adapter) scan(ctx context.Context, table string, filter store.Filter) ([]*store.Item, error) {
	input := store.ScanInput{TableName: table}

	var exprs []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	if filter.Creator != "" {
		exprs = append(exprs, "#creator = :creator")
		names["#creator"] = "creator"
		values[":creator"] = &types.AttributeValueMemberS{Value: filter.Creator}
	}
	if filter.FolderLess {
		exprs = append(exprs, "(attribute_not_exists(#container) OR #container = :empty)")
		names["#container"] = "container"
		values[":empty"] = &types.AttributeValueMemberS{Value: ""}
	}

	if len(exprs) > 0 {
		input.FilterExpression = joinAnd(exprs)
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	return a.s.Scan(ctx, input)
}

func joinAnd(exprs []string) string {
	out := exprs[0]
	for _, e := range exprs[1:] {
		out += " AND " + e
	}
	return out
}

func decodeUser(item *store.Item) (*model.User, error) {
	var u model.User
	if err := attributevalue.UnmarshalMap(item.Raw, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	u.Version = item.Version
	u.CreatedAt = item.CreatedAt
	u.UpdatedAt = item.UpdatedAt
	return &u, nil
}

func decodeFolder(item *store.Item) (*model.Folder, error) {
	var f model.Folder
	if err := attributevalue.UnmarshalMap(item.Raw, &f); err != nil {
		return nil, fmt.Errorf("unmarshal folder: %w", err)
	}
	if f.Files == nil {
		f.Files = []string{}
	}
	f.Version = item.Version
	f.CreatedAt = item.CreatedAt
	f.UpdatedAt = item.UpdatedAt
	return &f, nil
}

func decodeList(item *store.Item) (*model.List, error) {
	var l model.List
	if err := attributevalue.UnmarshalMap(item.Raw, &l); err != nil {
		return nil, fmt.Errorf("unmarshal list: %w", err)
	}
	if l.Todos == nil {
		l.Todos = []string{}
	}
	l.Version = item.Version
	l.CreatedAt = item.CreatedAt
	l.UpdatedAt = item.UpdatedAt
	return &l, nil
}

func decodeTodo(item *store.Item) (*model.Todo, error) {
	var t model.Todo
	if err := attributevalue.UnmarshalMap(item.Raw, &t); err != nil {
		return nil, fmt.Errorf("unmarshal todo: %w", err)
	}
	t.Version = item.Version
	t.CreatedAt = item.CreatedAt
	t.UpdatedAt = item.UpdatedAt
	return &t, nil
}
