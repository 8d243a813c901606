// Package domain defines the document model shared by every other package.
// Field names and nesting mirror the stored JSON document exactly, so any
// previously saved document keeps loading.
package domain

// Category classifies a project. The set is closed.
type Category string

const (
	CategoryPrototype   Category = "prototype"
	CategoryFormulation Category = "formulation"
	CategoryPackaging   Category = "packaging"
	CategoryProcess     Category = "process"
	CategoryOther       Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryPrototype,
	CategoryFormulation,
	CategoryPackaging,
	CategoryProcess,
	CategoryOther,
}

// Valid reports whether c is one of the closed category set.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Project is the root entity of the document tree. Soft-deleted projects
// keep their place in the document until permanently deleted.
type Project struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Category   Category         `json:"category"`
	CoverImage string           `json:"coverImage,omitempty"`
	CreatedAt  int64            `json:"createdAt"`
	Reports    []Report         `json:"reports"`
	Logs       []DevelopmentLog `json:"logs"`
	Recipe     *Recipe          `json:"recipe"`
	IsDeleted  bool             `json:"isDeleted"`
}

// Normalize replaces nil collections with empty ones so a project always
// serializes with the same shape regardless of how it was built.
func (p *Project) Normalize() {
	if p.Reports == nil {
		p.Reports = []Report{}
	}
	if p.Logs == nil {
		p.Logs = []DevelopmentLog{}
	}
	for i := range p.Reports {
		if p.Reports[i].Images == nil {
			p.Reports[i].Images = []AnnotatedImage{}
		}
	}
	for i := range p.Logs {
		if p.Logs[i].Images == nil {
			p.Logs[i].Images = []AnnotatedImage{}
		}
	}
	if p.Recipe != nil && p.Recipe.Steps == nil {
		p.Recipe.Steps = []RecipeStep{}
	}
}

// Report is a written account of a piece of work, carrying rich text and a
// layer of free-floating annotated images. Content is an opaque marked-up
// string produced by the text-formatting collaborator.
type Report struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Date      string           `json:"date"`
	Images    []AnnotatedImage `json:"images"`
	IsDeleted bool             `json:"isDeleted"`
}

// DevelopmentLog is a dated running log entry. It carries the same payload
// as a Report but lives in its own collection.
type DevelopmentLog struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Date      string           `json:"date"`
	Images    []AnnotatedImage `json:"images"`
	IsDeleted bool             `json:"isDeleted"`
}

// Recipe is the structured recipe of a project. At most one per project,
// replaced wholesale on save.
type Recipe struct {
	Name        string       `json:"name"`
	Yield       string       `json:"yield"`
	Ingredients string       `json:"ingredients"`
	Steps       []RecipeStep `json:"steps"`
	Image       string       `json:"image,omitempty"`
}

// RecipeStep is one ordered step of a recipe.
type RecipeStep struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}
