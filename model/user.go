package model

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lattice/store"
)

// UsersTable is the DynamoDB table holding user records.
const UsersTable = "lattice_users"

// UsernameIndex is the GSI used to look users up at login.
const UsernameIndex = "username-index"

// User is an account. Users are never deleted by this service.
type User struct {
	ID           string `json:"id" dynamodbav:"id"`
	Username     string `json:"username" dynamodbav:"username"`
	PasswordHash string `json:"-" dynamodbav:"password_hash"`
	IsAdmin      bool   `json:"isAdmin" dynamodbav:"is_admin"`

	CreatedAt string `json:"createdAt,omitempty" dynamodbav:"-"`
	UpdatedAt string `json:"updatedAt,omitempty" dynamodbav:"-"`
	Version   int64  `json:"-" dynamodbav:"-"`
}

func (u *User) TableName() string  { return UsersTable }
func (u *User) EntityType() string { return "user" }
func (u *User) EntityRef() string  { return "user#" + u.ID }

func (u *User) GetKey() store.PK {
	return store.PK{
		"id": &types.AttributeValueMemberS{Value: u.ID},
	}
}

func (u *User) UniqueFields() map[string]string {
	return map[string]string{"username": u.Username}
}

func (u *User) UniqueScope() string { return "users" }
