package domain

import "time"

// DefaultProjects returns the starter document used when a brand-new remote
// document is created and when the app falls back to offline mode.
func DefaultProjects() []Project {
	p := Project{
		ID:        NewID(),
		Title:     "My First Project",
		Category:  CategoryOther,
		CreatedAt: time.Now().UnixMilli(),
		Recipe: &Recipe{
			Name:  "",
			Steps: []RecipeStep{},
		},
	}
	p.Normalize()
	return []Project{p}
}
