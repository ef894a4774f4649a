package model

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lattice/store"
)

// ListsTable is the DynamoDB table holding todo list records.
const ListsTable = "lattice_lists"

// List is a todo list. Container is the ID of the folder holding it, empty
// for folder-less lists; when set, that folder's Files contains this list's
// ID. Todos is the ordered back-reference to the contained todos.
type List struct {
	ID        string   `json:"id" dynamodbav:"id"`
	Name      string   `json:"name" dynamodbav:"name"`
	Image     string   `json:"image,omitempty" dynamodbav:"image"`
	Container string   `json:"container,omitempty" dynamodbav:"container"`
	Todos     []string `json:"todos" dynamodbav:"todos"`
	Creator   string   `json:"creator" dynamodbav:"creator"`

	CreatedAt string `json:"createdAt,omitempty" dynamodbav:"-"`
	UpdatedAt string `json:"updatedAt,omitempty" dynamodbav:"-"`
	Version   int64  `json:"-" dynamodbav:"-"`
}

func (l *List) TableName() string  { return ListsTable }
func (l *List) EntityType() string { return "list" }
func (l *List) EntityRef() string  { return "list#" + l.ID }

func (l *List) GetKey() store.PK {
	return store.PK{
		"id": &types.AttributeValueMemberS{Value: l.ID},
	}
}

// ContainerCheck validates the destination folder exists on creation.
// Folder-less lists skip the check.
func (l *List) ContainerCheck() *store.ConditionCheck {
	if l.Container == "" {
		return nil
	}
	return &store.ConditionCheck{
		TableName: FoldersTable,
		Key: store.PK{
			"id": &types.AttributeValueMemberS{Value: l.Container},
		},
	}
}

// HasTodo reports whether the list back-references the given todo.
func (l *List) HasTodo(todoID string) bool {
	for _, id := range l.Todos {
		if id == todoID {
			return true
		}
	}
	return false
}

// AddTodo appends the todo to the back-reference set, once.
func (l *List) AddTodo(todoID string) {
	if l.HasTodo(todoID) {
		return
	}
	l.Todos = append(l.Todos, todoID)
}

// RemoveTodo drops the todo from the back-reference set.
func (l *List) RemoveTodo(todoID string) {
	out := l.Todos[:0]
	for _, id := range l.Todos {
		if id != todoID {
			out = append(out, id)
		}
	}
	l.Todos = out
}
