package store

import (
	"github.com/veleth/stagehand/internal/apperr"
	"github.com/veleth/stagehand/internal/document"
	"github.com/veleth/stagehand/internal/slug"
)

// Category and technology values for gear records.
var (
	GearCategories   = []string{"Pedal", "Synth"}
	GearTechnologies = []string{"Analog", "Digital", "Hybrid"}
	MediaTypes       = []string{"picture", "video"}
)

// Gear returns the kind table for gear records (pedals and synths),
// stored as plain YAML documents under data/gear.
func Gear() Kind {
	return Kind{
		Name:     "gear",
		Dir:      "gear",
		Ext:      ".yaml",
		Required: []string{"name", "manufacturer", "category", "technology"},
		Optional: []string{"types", "controls", "url", "description"},
		Enums: map[string][]string{
			"category":   GearCategories,
			"technology": GearTechnologies,
		},
		Searchable:   []string{"name", "manufacturer", "types", "description"},
		ExactFilters: []string{"category", "technology"},
		Archivable:   true,
		Slug: func(f document.Fields) string {
			return slug.ForGear(f.String("manufacturer"), f.String("name"))
		},
	}
}

// Live returns the kind table for live-performance records, stored as
// frontmatter documents with a description body under data/live. The slug
// is date-prefixed, so editing the date or title renames the file.
func Live() Kind {
	return Kind{
		Name:       "live",
		Dir:        "live",
		Ext:        ".yaml",
		Required:   []string{"title", "date", "venue", "location"},
		Optional:   []string{"poster", "event_link", "other_performers"},
		DateFields: []string{"date"},
		Searchable: []string{"title", "venue", "location"},
		Defaults:   document.Fields{{Name: "draft", Value: false}},
		HasBody:    true,
		Slug: func(f document.Fields) string {
			return slug.ForDated(f.String("date"), f.String("title"))
		},
	}
}

// Media returns the kind table for standalone media records (pictures and
// videos), stored as frontmatter documents under data/media. Pictures
// require an image path and author credit; videos require a YouTube id.
func Media() Kind {
	return Kind{
		Name:       "media",
		Dir:        "media",
		Ext:        ".yaml",
		Required:   []string{"title", "date", "type"},
		Optional:   []string{"image", "author", "author_url", "youtube_id", "gig", "description"},
		Enums:      map[string][]string{"type": MediaTypes},
		DateFields: []string{"date"},
		Searchable: []string{"title", "author", "description"},
		ExactFilters: []string{"type"},
		Defaults:   document.Fields{{Name: "draft", Value: false}},
		HasBody:    true,
		Archivable: true,
		Slug: func(f document.Fields) string {
			return slug.ForDated(f.String("date"), f.String("title"))
		},
		Validate: func(f document.Fields) error {
			switch f.String("type") {
			case "picture":
				if f.String("image") == "" {
					return apperr.NewValidation("image", "required for pictures")
				}
				if f.String("author") == "" {
					return apperr.NewValidation("author", "required for pictures")
				}
			case "video":
				if f.String("youtube_id") == "" {
					return apperr.NewValidation("youtube_id", "required for videos")
				}
			}
			return nil
		},
	}
}
