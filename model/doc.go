// Package model defines the resource records: users own folders, folders
// contain todo lists, lists contain todos.
//
// Each type implements the store interfaces it needs: [store.Entity] for
// persistence, [store.UniqueFielder] where a field must be unique, and
// [store.ContainerChecker] where creation must validate the container.
//
// The Creator field on folders and lists is set once at creation and never
// reassigned. Back-references (Folder.Files, List.Todos) are maintained by
// the hierarchy engine; both sides of a relation change in the same logical
// operation.
package model
