// internal/domain/models/blog.go
package models

import "time"

// Blog categories offered by the admin editor.
const (
	BlogCategoryStudyGuides    = "Study Guides"
	BlogCategoryVisaUpdates    = "Visa Updates"
	BlogCategoryScholarships   = "Scholarships"
	BlogCategoryStudentLife    = "Student Life"
	BlogCategoryUniversityNews = "University News"
	BlogCategoryTestPrep       = "Test Prep"
)

// BlogCategories is the closed set of blog categories.
var BlogCategories = []string{
	BlogCategoryStudyGuides,
	BlogCategoryVisaUpdates,
	BlogCategoryScholarships,
	BlogCategoryStudentLife,
	BlogCategoryUniversityNews,
	BlogCategoryTestPrep,
}

// Blog is an article shown on the public blog. Content is markdown.
//
// Slug is derived from Title, ReadTime from Content, and PublishedAt is
// stamped the first time Status becomes "published" and never changed after.
type Blog struct {
	Base `bson:",inline"`

	Title         string     `bson:"title" json:"title"`
	Slug          string     `bson:"slug" json:"slug"`
	Excerpt       string     `bson:"excerpt,omitempty" json:"excerpt"`
	Content       string     `bson:"content" json:"content"`
	Author        string     `bson:"author" json:"author"`
	Category      string     `bson:"category" json:"category"`
	Tags          []string   `bson:"tags" json:"tags"`
	FeaturedImage string     `bson:"featured_image,omitempty" json:"featuredImage"`
	Status        string     `bson:"status" json:"status"`
	ReadTime      string     `bson:"read_time" json:"readTime"`
	PublishedAt   *time.Time `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	Order         int        `bson:"order" json:"order"`
}
