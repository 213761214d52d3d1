package domain

type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusRejected  BlogStatus = "rejected"
)

func (s BlogStatus) Valid() bool {
	return s == BlogStatusDraft || s == BlogStatusPublished || s == BlogStatusRejected
}

type BlogPost struct {
	ID          int32      `json:"id"`
	Title       string     `json:"title"`
	Thumbnail   string     `json:"thumbnail"`
	Content     string     `json:"content"`
	Status      BlogStatus `json:"status"`
	AuthorID    int32      `json:"author_id"`
	AuthorName  string     `json:"author_name"`
	AuthorEmail string     `json:"author_email"`
	CreatedOn   string     `json:"created_on"`
	UpdatedOn   string     `json:"updated_on"`
}
