package store

import (
	"fmt"
	"path"
	"strings"

	"github.com/veleth/stagehand/internal/apperr"
	"github.com/veleth/stagehand/internal/document"
	"github.com/veleth/stagehand/internal/storage"
)

// archivedDir is the subdirectory holding archived records of a kind.
const archivedDir = "archived"

// Entry is one record with its derived key.
type Entry struct {
	Slug   string
	Fields document.Fields
	Body   string
}

// FileError names a record file that could not be read or parsed during a
// directory scan. Scans return valid entries alongside these, so one corrupt
// file never hides the rest of the corpus.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Store is a directory-backed collection of records of one kind.
//
// All operations are single-record and synchronous. The directory is not
// protected against concurrent writers; callers needing stronger consistency
// must serialize access externally (one writer process at a time).
type Store struct {
	kind Kind
	fs   storage.Provider
}

// New creates a store for kind backed by fs.
func New(fs storage.Provider, kind Kind) *Store {
	return &Store{kind: kind, fs: fs}
}

// Kind returns the store's kind table.
func (s *Store) Kind() Kind {
	return s.kind
}

func (s *Store) filePath(slug string) string {
	return path.Join(s.kind.Dir, slug+s.kind.Ext)
}

func (s *Store) archivedPath(slug string) string {
	return path.Join(s.kind.Dir, archivedDir, slug+s.kind.Ext)
}

// Create validates fields, derives the slug, and writes a new record file.
// It never overwrites: a colliding slug fails with ErrAlreadyExists. Fields
// absent from the input are omitted from the file; kind defaults are applied.
func (s *Store) Create(fields document.Fields, body string) (Entry, error) {
	if err := s.kind.validateCreate(fields); err != nil {
		return Entry{}, err
	}

	key := s.kind.Slug(fields)
	exists, err := s.fs.Exists(s.filePath(key))
	if err != nil {
		return Entry{}, err
	}
	if exists {
		return Entry{}, fmt.Errorf("%s %s: %w", s.kind.Name, key, apperr.ErrAlreadyExists)
	}

	full := s.kind.applyDefaults(fields)
	entry := Entry{Slug: key, Fields: full, Body: strings.TrimSpace(body)}
	if err := s.write(entry, s.filePath(key)); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Get loads one active record by slug.
func (s *Store) Get(slug string) (Entry, error) {
	data, err := s.read(slug)
	if err != nil {
		return Entry{}, err
	}
	return s.decode(slug, data)
}

// List returns every active record whose fields match all supplied filters.
// Filter keys declared exact by the kind compare exactly; all others are
// case-insensitive substring matches (string-list fields match when any
// element does). Unparseable files are reported in the second return value.
func (s *Store) List(filters map[string]string) ([]Entry, []FileError, error) {
	return s.scan(s.kind.Dir, filters)
}

// ListArchived returns the records in the archive subdirectory.
func (s *Store) ListArchived() ([]Entry, []FileError, error) {
	if !s.kind.Archivable {
		return nil, nil, fmt.Errorf("kind %s does not support archiving", s.kind.Name)
	}
	return s.scan(path.Join(s.kind.Dir, archivedDir), nil)
}

// Search returns active records where query matches any searchable field
// (or the body, for kinds that carry one), case-insensitively.
func (s *Store) Search(query string) ([]Entry, []FileError, error) {
	entries, fileErrs, err := s.scan(s.kind.Dir, nil)
	if err != nil {
		return nil, fileErrs, err
	}
	needle := strings.ToLower(query)

	var out []Entry
	for _, e := range entries {
		if s.matchesQuery(e, needle) {
			out = append(out, e)
		}
	}
	return out, fileErrs, nil
}

// Update merges the supplied fields into an existing record and rewrites its
// file. Fields are replaced whole (lists are not deep-merged); a non-nil body
// replaces the body. When identity fields change, the file is renamed. The
// returned slice names the applied fields; an empty slice is a no-op, which
// is not an error.
func (s *Store) Update(slug string, partial document.Fields, body *string) (Entry, []string, error) {
	data, err := s.read(slug)
	if err != nil {
		return Entry{}, nil, err
	}
	entry, err := s.decode(slug, data)
	if err != nil {
		return Entry{}, nil, err
	}

	if len(partial) == 0 && body == nil {
		return entry, nil, nil
	}
	if err := s.kind.validateFields(partial); err != nil {
		return Entry{}, nil, err
	}

	var applied []string
	merged := entry.Fields.Clone()
	for _, fld := range partial {
		merged.Set(fld.Name, fld.Value)
		applied = append(applied, fld.Name)
	}
	if err := s.kind.validateCreate(merged); err != nil {
		return Entry{}, nil, err
	}

	newBody := entry.Body
	if body != nil {
		newBody = strings.TrimSpace(*body)
		applied = append(applied, "body")
	}

	updated := Entry{Slug: s.kind.Slug(merged), Fields: merged, Body: newBody}
	if updated.Slug != slug {
		// Identity fields changed: write the new file first, then remove the
		// old one, so a failure never loses the record.
		exists, err := s.fs.Exists(s.filePath(updated.Slug))
		if err != nil {
			return Entry{}, nil, err
		}
		if exists {
			return Entry{}, nil, fmt.Errorf("%s %s: %w", s.kind.Name, updated.Slug, apperr.ErrAlreadyExists)
		}
		if err := s.write(updated, s.filePath(updated.Slug)); err != nil {
			return Entry{}, nil, err
		}
		if err := s.fs.Delete(s.filePath(slug)); err != nil {
			return Entry{}, nil, err
		}
		return updated, applied, nil
	}

	if err := s.write(updated, s.filePath(slug)); err != nil {
		return Entry{}, nil, err
	}
	return updated, applied, nil
}

// Delete removes the record file. Deletion is immediate and irreversible.
func (s *Store) Delete(slug string) error {
	exists, err := s.fs.Exists(s.filePath(slug))
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", s.kind.Name, slug, apperr.ErrNotFound)
	}
	return s.fs.Delete(s.filePath(slug))
}

// Archive moves a record to the archived/ subdirectory, content unchanged.
// It refuses to overwrite an archived record with the same slug.
func (s *Store) Archive(slug string) error {
	return s.move(slug, s.filePath(slug), s.archivedPath(slug))
}

// Unarchive moves a record back to the active directory.
func (s *Store) Unarchive(slug string) error {
	return s.move(slug, s.archivedPath(slug), s.filePath(slug))
}

func (s *Store) move(slug, src, dst string) error {
	if !s.kind.Archivable {
		return fmt.Errorf("kind %s does not support archiving", s.kind.Name)
	}
	exists, err := s.fs.Exists(src)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", s.kind.Name, slug, apperr.ErrNotFound)
	}
	taken, err := s.fs.Exists(dst)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%s %s: destination %w", s.kind.Name, slug, apperr.ErrAlreadyExists)
	}
	return s.fs.Move(src, dst)
}

// read returns the raw bytes of an active record, mapping a missing file
// to ErrNotFound.
func (s *Store) read(slug string) ([]byte, error) {
	p := s.filePath(slug)
	exists, err := s.fs.Exists(p)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%s %s: %w", s.kind.Name, slug, apperr.ErrNotFound)
	}
	return s.fs.Read(p)
}

func (s *Store) decode(slug string, data []byte) (Entry, error) {
	if s.kind.HasBody {
		fields, body, err := document.DecodeSplit(data)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Slug: slug, Fields: fields, Body: body}, nil
	}
	fields, err := document.DecodePlain(data)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Slug: slug, Fields: fields}, nil
}

func (s *Store) write(e Entry, path string) error {
	var data []byte
	var err error
	if s.kind.HasBody {
		data, err = document.EncodeSplit(e.Fields, e.Body)
	} else {
		data, err = document.EncodePlain(e.Fields)
	}
	if err != nil {
		return err
	}
	return s.fs.Write(path, data)
}

// scan reads every record file in dir, applying filters. Files that fail to
// parse are collected as FileErrors instead of aborting the scan.
func (s *Store) scan(dir string, filters map[string]string) ([]Entry, []FileError, error) {
	names, err := s.fs.List(dir, s.kind.Ext)
	if err != nil {
		return nil, nil, err
	}

	var entries []Entry
	var fileErrs []FileError
	for _, name := range names {
		key := strings.TrimSuffix(name, s.kind.Ext)
		data, err := s.fs.Read(path.Join(dir, name))
		if err != nil {
			fileErrs = append(fileErrs, FileError{File: name, Err: err})
			continue
		}
		entry, err := s.decode(key, data)
		if err != nil {
			fileErrs = append(fileErrs, FileError{File: name, Err: err})
			continue
		}
		if s.matchesFilters(entry, filters) {
			entries = append(entries, entry)
		}
	}
	return entries, fileErrs, nil
}

func (s *Store) matchesFilters(e Entry, filters map[string]string) bool {
	for name, want := range filters {
		if want == "" {
			continue
		}
		v, ok := e.Fields.Get(name)
		if !ok {
			return false
		}
		switch val := v.(type) {
		case string:
			if s.kind.exactFilter(name) {
				if val != want {
					return false
				}
			} else if !strings.Contains(strings.ToLower(val), strings.ToLower(want)) {
				return false
			}
		case []string:
			if !anyContains(val, want) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (s *Store) matchesQuery(e Entry, needle string) bool {
	for _, name := range s.kind.Searchable {
		switch v, _ := e.Fields.Get(name); val := v.(type) {
		case string:
			if strings.Contains(strings.ToLower(val), needle) {
				return true
			}
		case []string:
			if anyContains(val, needle) {
				return true
			}
		}
	}
	if s.kind.HasBody && strings.Contains(strings.ToLower(e.Body), needle) {
		return true
	}
	return false
}

func anyContains(haystack []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
