package domain

type Blog struct {
	ID        int32  `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	CoverURL  string `json:"cover_url"`
	Published bool   `json:"published"`
	AuthorID  int32  `json:"author_id"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
