package model

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lattice/store"
)

// FoldersTable is the DynamoDB table holding folder records.
const FoldersTable = "lattice_folders"

// Folder groups todo lists. Files is the ordered back-reference mirroring
// each contained list's Container field.
type Folder struct {
	ID          string   `json:"id" dynamodbav:"id"`
	Name        string   `json:"name" dynamodbav:"name"`
	Description string   `json:"description,omitempty" dynamodbav:"description"`
	Image       string   `json:"image,omitempty" dynamodbav:"image"`
	Files       []string `json:"files" dynamodbav:"files"`
	Creator     string   `json:"creator" dynamodbav:"creator"`

	CreatedAt string `json:"createdAt,omitempty" dynamodbav:"-"`
	UpdatedAt string `json:"updatedAt,omitempty" dynamodbav:"-"`
	Version   int64  `json:"-" dynamodbav:"-"`
}

func (f *Folder) TableName() string  { return FoldersTable }
func (f *Folder) EntityType() string { return "folder" }
func (f *Folder) EntityRef() string  { return "folder#" + f.ID }

func (f *Folder) GetKey() store.PK {
	return store.PK{
		"id": &types.AttributeValueMemberS{Value: f.ID},
	}
}

func (f *Folder) UniqueFields() map[string]string {
	return map[string]string{"name": f.Name}
}

func (f *Folder) UniqueScope() string { return "folders" }

// ContainsFile reports whether the folder back-references the given list.
func (f *Folder) ContainsFile(listID string) bool {
	for _, id := range f.Files {
		if id == listID {
			return true
		}
	}
	return false
}

// AddFile appends the list to the back-reference set, once.
func (f *Folder) AddFile(listID string) {
	if f.ContainsFile(listID) {
		return
	}
	f.Files = append(f.Files, listID)
}

// RemoveFile drops the list from the back-reference set.
func (f *Folder) RemoveFile(listID string) {
	out := f.Files[:0]
	for _, id := range f.Files {
		if id != listID {
			out = append(out, id)
		}
	}
	f.Files = out
}
