package models

// Tag is a name-keyed label attached to posts through the post_tags join
// table. Names match case-sensitively. Tags are created on first use and
// never deleted by normal flows.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// TagCount pairs a tag name with the number of live posts carrying it.
type TagCount struct {
	Name      string `json:"name"`
	PostCount int    `json:"post_count"`
}
