// Package contentservice coordinates the per-kind record stores for the
// read-only preview API.
package contentservice

import (
	"context"
	"errors"

	"github.com/veleth/stagehand/internal/document"
	"github.com/veleth/stagehand/internal/store"
)

// ErrUnknownKind is returned for kind names no store is registered under.
var ErrUnknownKind = errors.New("unknown record kind")

// RecordDetail is the full representation of a record.
type RecordDetail struct {
	Kind   string         `json:"kind"`
	Slug   string         `json:"slug"`
	Fields map[string]any `json:"fields"`
	Order  []string       `json:"field_order"`
	Body   string         `json:"body,omitempty"`
}

// ListResult is a directory scan with any per-file read failures.
type ListResult struct {
	Records []RecordDetail `json:"records"`
	Skipped []string       `json:"skipped,omitempty"`
}

// Service exposes the record stores by kind name.
type Service struct {
	stores map[string]*store.Store
}

// NewService creates a service over the given stores, keyed by kind name.
func NewService(stores ...*store.Store) *Service {
	m := make(map[string]*store.Store, len(stores))
	for _, s := range stores {
		m[s.Kind().Name] = s
	}
	return &Service{stores: m}
}

// Store returns the store for a kind name.
func (s *Service) Store(kind string) (*store.Store, bool) {
	st, ok := s.stores[kind]
	return st, ok
}

// Kinds returns the known kind names.
func (s *Service) Kinds() []string {
	out := make([]string, 0, len(s.stores))
	for name := range s.stores {
		out = append(out, name)
	}
	return out
}

// List scans a kind's directory with optional field filters.
func (s *Service) List(_ context.Context, kind string, filters map[string]string) (*ListResult, error) {
	st, err := s.mustStore(kind)
	if err != nil {
		return nil, err
	}
	entries, fileErrs, err := st.List(filters)
	if err != nil {
		return nil, err
	}
	return buildResult(kind, entries, fileErrs), nil
}

// Search runs a full-text search over a kind's searchable fields.
func (s *Service) Search(_ context.Context, kind, query string) (*ListResult, error) {
	st, err := s.mustStore(kind)
	if err != nil {
		return nil, err
	}
	entries, fileErrs, err := st.Search(query)
	if err != nil {
		return nil, err
	}
	return buildResult(kind, entries, fileErrs), nil
}

// Get loads a single record by slug.
func (s *Service) Get(_ context.Context, kind, slug string) (*RecordDetail, error) {
	st, err := s.mustStore(kind)
	if err != nil {
		return nil, err
	}
	entry, err := st.Get(slug)
	if err != nil {
		return nil, err
	}
	detail := toDetail(kind, entry)
	return &detail, nil
}

func (s *Service) mustStore(kind string) (*store.Store, error) {
	st, ok := s.stores[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return st, nil
}

func buildResult(kind string, entries []store.Entry, fileErrs []store.FileError) *ListResult {
	res := &ListResult{Records: make([]RecordDetail, 0, len(entries))}
	for _, e := range entries {
		res.Records = append(res.Records, toDetail(kind, e))
	}
	for _, fe := range fileErrs {
		res.Skipped = append(res.Skipped, fe.Error())
	}
	return res
}

func toDetail(kind string, e store.Entry) RecordDetail {
	return RecordDetail{
		Kind:   kind,
		Slug:   e.Slug,
		Fields: fieldsToMap(e.Fields),
		Order:  e.Fields.Names(),
		Body:   e.Body,
	}
}

// fieldsToMap flattens ordered fields into a JSON-friendly map; the original
// order travels separately in RecordDetail.Order since JSON objects are
// unordered.
func fieldsToMap(fields document.Fields) map[string]any {
	out := make(map[string]any, len(fields))
	for _, fld := range fields {
		switch v := fld.Value.(type) {
		case []document.Fields:
			subs := make([]map[string]any, len(v))
			for i, sub := range v {
				subs[i] = fieldsToMap(sub)
			}
			out[fld.Name] = subs
		case document.Fields:
			out[fld.Name] = fieldsToMap(v)
		default:
			out[fld.Name] = fld.Value
		}
	}
	return out
}
