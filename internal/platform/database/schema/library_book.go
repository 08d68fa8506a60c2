package schema

// LibraryBookTable represents the 'library.book' table
type LibraryBookTable struct {
	Table        string
	ID           string
	Title        string
	Comments     string
	CommentCount string
	CreatedAt    string
}

// LibraryBook is the schema definition for library.book
var LibraryBook = LibraryBookTable{
	Table:        "library.book",
	ID:           "id",
	Title:        "title",
	Comments:     "comments",
	CommentCount: "commentcount",
	CreatedAt:    "createdat",
}
