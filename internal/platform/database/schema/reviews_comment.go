package schema

// ReviewCommentTable represents the 'reviews.comment' table
type ReviewCommentTable struct {
	Table    string
	ID       string
	ReviewID string
	AuthorID string
	Text     string
	PubDate  string
}

// ReviewComment is the schema definition for reviews.comment
var ReviewComment = ReviewCommentTable{
	Table:    "reviews.comment",
	ID:       "id",
	ReviewID: "reviewid",
	AuthorID: "authorid",
	Text:     "text",
	PubDate:  "pubdate",
}

func (t ReviewCommentTable) Columns() []string {
	return []string{t.ID, t.ReviewID, t.AuthorID, t.Text, t.PubDate}
}
