// Package store implements the slug-keyed record stores backing the site
// data directories: one store instance per record kind, each bound to one
// directory of YAML record files.
package store

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/veleth/stagehand/internal/apperr"
	"github.com/veleth/stagehand/internal/document"
)

// Kind is the configuration table for one record kind: which fields exist,
// which are required, how records are validated, searched, and keyed.
type Kind struct {
	// Name identifies the kind ("gear", "live", "media").
	Name string
	// Dir is the record directory relative to the data root.
	Dir string
	// Ext is the record file extension, including the dot.
	Ext string

	// Required fields must be present and non-empty at creation.
	Required []string
	// Optional fields may be absent; absent fields are omitted from storage.
	Optional []string
	// Enums constrains the listed fields to a fixed value set.
	Enums map[string][]string
	// DateFields must be YYYY-MM-DD strings.
	DateFields []string
	// Searchable lists the fields scanned by Search (string and string-list
	// fields; the body is always searched for kinds that carry one).
	Searchable []string
	// ExactFilters lists the List filter keys compared exactly; all other
	// filters are case-insensitive substring matches.
	ExactFilters []string

	// Defaults are appended at creation when the field is absent.
	Defaults document.Fields

	// HasBody marks kinds stored as split documents with a free-text body.
	HasBody bool
	// Archivable marks kinds whose records can move to an archived/ subdir.
	Archivable bool

	// Slug derives the record key from its identity fields.
	Slug func(document.Fields) string
	// Validate, if set, runs kind-specific checks after the generic ones.
	Validate func(document.Fields) error
}

// known reports whether name is a declared field of the kind.
func (k Kind) known(name string) bool {
	for _, n := range k.Required {
		if n == name {
			return true
		}
	}
	for _, n := range k.Optional {
		if n == name {
			return true
		}
	}
	for _, fld := range k.Defaults {
		if fld.Name == name {
			return true
		}
	}
	return false
}

func (k Kind) exactFilter(name string) bool {
	for _, n := range k.ExactFilters {
		if n == name {
			return true
		}
	}
	return false
}

// validateFields checks field names, enum membership, and date formats for
// every field present. Required-field presence is checked separately so the
// same routine serves both create and partial update.
func (k Kind) validateFields(fields document.Fields) error {
	for _, fld := range fields {
		if !k.known(fld.Name) {
			return apperr.NewValidation(fld.Name, "unknown field for kind "+k.Name)
		}
		if allowed, ok := k.Enums[fld.Name]; ok {
			s, _ := fld.Value.(string)
			if err := validation.Validate(s, validation.Required, validation.In(toAny(allowed)...)); err != nil {
				return apperr.NewValidation(fld.Name, "must be one of: "+strings.Join(allowed, ", "))
			}
		}
	}
	for _, name := range k.DateFields {
		if v, ok := fields.Get(name); ok {
			s, _ := v.(string)
			if err := validation.Validate(s, validation.Date("2006-01-02")); err != nil {
				return apperr.NewValidation(name, "must be a YYYY-MM-DD date")
			}
		}
	}
	return nil
}

// validateCreate checks a full field set for creation.
func (k Kind) validateCreate(fields document.Fields) error {
	for _, name := range k.Required {
		v, ok := fields.Get(name)
		if !ok {
			return apperr.NewValidation(name, "required")
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return apperr.NewValidation(name, "required")
		}
	}
	if err := k.validateFields(fields); err != nil {
		return err
	}
	if k.Validate != nil {
		return k.Validate(fields)
	}
	return nil
}

// applyDefaults appends the kind defaults missing from fields.
func (k Kind) applyDefaults(fields document.Fields) document.Fields {
	out := fields.Clone()
	for _, fld := range k.Defaults {
		if !out.Has(fld.Name) {
			out.Set(fld.Name, fld.Value)
		}
	}
	return out
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
