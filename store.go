package jsonlit

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// DocumentExt is the file extension of stored documents.
const DocumentExt = ".json"

// DefaultListPattern matches every document under the store root.
const DefaultListPattern = "**/*" + DocumentExt

var (
	// ErrDecode is matched by *DecodeError.
	ErrDecode = errors.New("invalid JSON document")
	// ErrDocumentNotFound is returned when no file backs a document id.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidDocumentID is returned for ids that are empty or escape the store root.
	ErrInvalidDocumentID = errors.New("invalid document id")
)

// DecodeError reports a document that is not valid JSON.
type DecodeError struct {
	Document string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode document %q: %v", e.Document, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// DocumentStore provides decoded documents addressed by logical id.
type DocumentStore interface {
	Load(id string) (Value, error)
	List(pattern string) ([]string, error)
}

// Store reads documents from <Root>/<id>.json.
type Store struct {
	FS   FileSystem
	Root string
	Log  *slog.Logger
}

// NewStore creates a Store with explicit dependencies (for testing).
func NewStore(fs FileSystem, root string, log *slog.Logger) *Store {
	if log == nil {
		log = NewNopLogger()
	}
	return &Store{
		FS:   fs,
		Root: root,
		Log:  log,
	}
}

// NewDefaultStore creates a Store on the OS filesystem.
func NewDefaultStore(root string, log *slog.Logger) *Store {
	return NewStore(osFS{}, root, log)
}

// Path returns the file backing id.
func (s *Store) Path(id string) (string, error) {
	if err := validateDocumentID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.Root, filepath.FromSlash(id)+DocumentExt), nil
}

// Load reads and decodes the document identified by id.
func (s *Store) Load(id string) (Value, error) {
	p, err := s.Path(id)
	if err != nil {
		return Value{}, err
	}

	s.Log.Debug("reading document",
		LogAttrKeyCategory.Attr(LogCategoryStore),
		slog.String("id", id),
		slog.String("path", p))

	data, err := s.FS.ReadFile(p)
	if err != nil {
		if s.FS.IsNotExist(err) {
			return Value{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
		}
		return Value{}, fmt.Errorf("failed to read document %q: %w", id, err)
	}

	v, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Value{}, &DecodeError{Document: id, Err: err}
	}
	return v, nil
}

// List returns the ids of documents matching a doublestar pattern, sorted.
// An empty pattern lists every document. Matches without the document
// extension are ignored.
func (s *Store) List(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultListPattern
	}

	matches, err := s.FS.Glob(s.Root, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents matching %q: %w", pattern, err)
	}

	s.Log.Debug(fmt.Sprintf("pattern %q matched %d files", pattern, len(matches)),
		LogAttrKeyCategory.Attr(LogCategoryGlob))

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		m = filepath.ToSlash(m)
		if !strings.HasSuffix(m, DocumentExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(m, DocumentExt))
	}
	slices.Sort(ids)
	return ids, nil
}

func validateDocumentID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDocumentID)
	}
	if strings.HasPrefix(id, "/") || filepath.IsAbs(id) {
		return fmt.Errorf("%w: %q is absolute", ErrInvalidDocumentID, id)
	}
	clean := path.Clean(filepath.ToSlash(id))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q escapes the document root", ErrInvalidDocumentID, id)
	}
	return nil
}

// RenderDocument loads id from store and renders it in dialect d, re-indenting
// embedded lines with indent. Decoding happens before dialect dispatch.
func RenderDocument(store DocumentStore, id string, d Dialect, indent string) (string, error) {
	v, err := store.Load(id)
	if err != nil {
		return "", err
	}
	return Render(v, d, indent)
}
