package model

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lattice/store"
)

// TodosTable is the DynamoDB table holding todo records.
const TodosTable = "lattice_todos"

// Todo is a single entry in a list. Container always references an existing
// list; a todo never exists without one.
type Todo struct {
	ID          string `json:"id" dynamodbav:"id"`
	Description string `json:"description" dynamodbav:"description"`
	Checked     bool   `json:"checked" dynamodbav:"checked"`
	Container   string `json:"container" dynamodbav:"container"`

	CreatedAt string `json:"createdAt,omitempty" dynamodbav:"-"`
	UpdatedAt string `json:"updatedAt,omitempty" dynamodbav:"-"`
	Version   int64  `json:"-" dynamodbav:"-"`
}

func (t *Todo) TableName() string  { return TodosTable }
func (t *Todo) EntityType() string { return "todo" }
func (t *Todo) EntityRef() string  { return "todo#" + t.ID }

func (t *Todo) GetKey() store.PK {
	return store.PK{
		"id": &types.AttributeValueMemberS{Value: t.ID},
	}
}

// ContainerCheck validates the owning list exists on creation.
func (t *Todo) ContainerCheck() *store.ConditionCheck {
	return &store.ConditionCheck{
		TableName: ListsTable,
		Key: store.PK{
			"id": &types.AttributeValueMemberS{Value: t.Container},
		},
	}
}
