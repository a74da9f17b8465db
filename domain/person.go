package domain

// Person is a user account on some instance.
type Person struct {
	ID           int
	Name         string
	DisplayName  string
	Bio          string
	PostCount    int
	CommentCount int
}

// Label returns the display name, falling back to the account name.
func (p Person) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// PersonDetail is one page of a person's profile.
type PersonDetail struct {
	Person   Person
	Posts    []Post
	Comments []Comment
}

// Items merges posts and comments into one list, posts first.
func (d PersonDetail) Items() []Item {
	out := make([]Item, 0, len(d.Posts)+len(d.Comments))
	for _, p := range d.Posts {
		out = append(out, p)
	}
	for _, c := range d.Comments {
		out = append(out, c)
	}
	return out
}
