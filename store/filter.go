package store

// Filter restricts a listing to an owner and, for lists, to container-less
// records. A zero filter matches everything live.
type Filter struct {
	// Creator restricts to records created by this user when non-empty.
	Creator string

	// FolderLess restricts to lists with no container folder.
	FolderLess bool
}
