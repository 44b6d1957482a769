// Package persist saves and restores a drawing as one JSON blob in a
// store.Store.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/drafter/internal/shape"
	"github.com/example/drafter/internal/store"
)

// DefaultKey is the storage key a Repository uses unless told otherwise.
const DefaultKey = "drafter.document"

// Version is the schema version written by Save. Blobs without a version
// field predate it and are read as version 1.
const Version = 1

var (
	// ErrNotFound means nothing has been saved yet. Callers usually start
	// from an empty document.
	ErrNotFound = errors.New("no saved drawing")
	// ErrCorrupt matches every *CorruptDocumentError.
	ErrCorrupt = errors.New("corrupt document")
	// ErrStorageWrite matches every *StorageWriteError.
	ErrStorageWrite = errors.New("storage write failed")
)

// CorruptDocumentError reports a stored blob that cannot be turned back into
// a document.
type CorruptDocumentError struct {
	Key string
	Err error
}

func (e *CorruptDocumentError) Error() string {
	return fmt.Sprintf("corrupt document %q: %v", e.Key, e.Err)
}

func (e *CorruptDocumentError) Unwrap() error { return e.Err }

func (e *CorruptDocumentError) Is(target error) bool { return target == ErrCorrupt }

// StorageWriteError reports a store that refused the save.
type StorageWriteError struct {
	Key string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("save %q: %v", e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

func (e *StorageWriteError) Is(target error) bool { return target == ErrStorageWrite }

type wireDocument struct {
	Version     int                `json:"version,omitempty"`
	Shapes      shape.List         `json:"shapes"`
	Annotations []shape.Annotation `json:"annotations"`
}

// Marshal encodes doc in the persisted layout.
func Marshal(doc shape.Document) ([]byte, error) {
	w := wireDocument{
		Version:     Version,
		Shapes:      doc.Shapes,
		Annotations: doc.Annotations,
	}
	if w.Annotations == nil {
		w.Annotations = []shape.Annotation{}
	}
	return json.Marshal(w)
}

// readDocument is the decoding view of wireDocument. Pointers tell a
// missing key from an empty one.
type readDocument struct {
	Version     *int                `json:"version"`
	Shapes      *shape.List         `json:"shapes"`
	Annotations *[]shape.Annotation `json:"annotations"`
}

// Unmarshal decodes the persisted layout. The value must be an object with
// both the shapes and annotations keys; an absent version reads as 1.
// Annotation text is recomputed from the points. The error is not
// classified; Load wraps it in a CorruptDocumentError.
func Unmarshal(b []byte) (shape.Document, error) {
	var w readDocument
	if err := json.Unmarshal(b, &w); err != nil {
		return shape.Document{}, err
	}
	switch {
	case w.Shapes == nil:
		return shape.Document{}, errors.New("missing shapes")
	case w.Annotations == nil:
		return shape.Document{}, errors.New("missing annotations")
	}
	version := 1
	if w.Version != nil {
		version = *w.Version
	}
	if version < 1 || version > Version {
		return shape.Document{}, fmt.Errorf("unsupported version %d", version)
	}
	doc := shape.Document{Shapes: *w.Shapes}
	for i, an := range *w.Annotations {
		if an.ID == "" {
			return shape.Document{}, fmt.Errorf("annotation %d without id", i)
		}
		an.Finalize()
		doc.Annotations = append(doc.Annotations, an)
	}
	return doc, nil
}

// Repository reads and writes the document under a single key.
type Repository struct {
	store store.Store
	key   string
}

// Option configures a Repository.
type Option func(*Repository)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(r *Repository) { r.key = key }
}

// New returns a Repository backed by s.
func New(s store.Store, opts ...Option) *Repository {
	r := &Repository{store: s, key: DefaultKey}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Key reports the storage key in use.
func (r *Repository) Key() string { return r.key }

// Save replaces the stored document with doc in a single attempt.
func (r *Repository) Save(doc shape.Document) error {
	b, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := r.store.Put(r.key, b); err != nil {
		return &StorageWriteError{Key: r.key, Err: err}
	}
	return nil
}

// Load returns the stored document, ErrNotFound when nothing was saved, or a
// *CorruptDocumentError when the blob is unreadable.
func (r *Repository) Load() (shape.Document, error) {
	b, err := r.store.Get(r.key)
	if errors.Is(err, store.ErrNotExist) {
		return shape.Document{}, ErrNotFound
	}
	if err != nil {
		return shape.Document{}, fmt.Errorf("load %q: %w", r.key, err)
	}
	doc, err := Unmarshal(b)
	if err != nil {
		return shape.Document{}, &CorruptDocumentError{Key: r.key, Err: err}
	}
	return doc, nil
}
