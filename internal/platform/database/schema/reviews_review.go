package schema

// ReviewTable represents the 'reviews.review' table
type ReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    string
	PubDate  string
}

// Review is the schema definition for reviews.review
var Review = ReviewTable{
	Table:    "reviews.review",
	ID:       "id",
	TitleID:  "titleid",
	AuthorID: "authorid",
	Text:     "text",
	Score:    "score",
	PubDate:  "pubdate",
}

func (t ReviewTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.AuthorID, t.Text, t.Score, t.PubDate}
}
