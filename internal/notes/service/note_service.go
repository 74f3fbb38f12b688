package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartnote/internal/logs"
	"smartnote/internal/notes"
)

// Persister is the slice of the storage layer the service needs
type Persister interface {
	LoadNotes() []notes.Note
	SaveNotes(list []notes.Note) error
}

// DeleteOutcome says which phase of Delete ran
type DeleteOutcome int

const (
	MovedToTrash DeleteOutcome = iota
	Removed
)

func (o DeleteOutcome) String() string {
	if o == Removed {
		return "removed"
	}
	return "moved to trash"
}

// NoteService defines the interface for note operations. Every mutation
// persists the whole collection before returning.
type NoteService interface {
	List() []notes.Note
	Query(q notes.Query) []notes.Note
	Tags() []string
	Get(id string) (notes.Note, error)
	Add() (notes.Note, error)
	Update(id string, patch notes.Patch) (notes.Note, error)
	ToggleFavorite(id string) (notes.Note, error)
	AddAttachment(id string, att notes.Attachment) (notes.Note, error)
	RemoveAttachment(id, attachmentID string) (notes.Note, error)
	SoftDelete(id string) (notes.Note, error)
	PermanentDelete(id string) error
	Delete(id string) (DeleteOutcome, error)
	Restore(id string) (notes.Note, error)
	EmptyTrash() (int, error)
	Import(list []notes.Note) (int, error)
	Reload() error
}

// Option configures a service
type Option func(*noteServiceImpl)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *noteServiceImpl) { s.now = now }
}

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(gen func() string) Option {
	return func(s *noteServiceImpl) { s.newID = gen }
}

type noteServiceImpl struct {
	notes []notes.Note
	store Persister
	now   func() time.Time
	newID func() string
}

// NewNoteService loads the collection from store
func NewNoteService(store Persister, opts ...Option) NoteService {
	svc := &noteServiceImpl{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.Reload()
	return svc
}

func (s *noteServiceImpl) Reload() error {
	s.notes = s.store.LoadNotes()
	return nil
}

// persist writes the collection. Storage failures are logged by the store
// and never block the caller.
func (s *noteServiceImpl) persist(op, id string) {
	if err := s.store.SaveNotes(s.notes); err != nil {
		logs.Logger.Warn().Err(err).Str("op", op).Str("note_id", id).Msg("note change kept in memory only")
	}
}

func (s *noteServiceImpl) List() []notes.Note {
	out := make([]notes.Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.Clone()
	}
	return out
}

func (s *noteServiceImpl) Query(q notes.Query) []notes.Note {
	return notes.Filter(s.notes, q)
}

func (s *noteServiceImpl) Tags() []string {
	return notes.TagIndex(s.notes)
}

func (s *noteServiceImpl) Get(id string) (notes.Note, error) {
	n, ok := notes.Find(s.notes, id)
	if !ok {
		return notes.Note{}, fmt.Errorf("%w: %s", notes.ErrNotFound, id)
	}
	return n, nil
}

func (s *noteServiceImpl) Add() (notes.Note, error) {
	n := notes.New(s.newID(), s.now())
	s.notes = notes.Prepend(s.notes, n)
	logs.Logger.Debug().Str("note_id", n.ID).Msg("note added")
	s.persist("add", n.ID)
	return n.Clone(), nil
}

func (s *noteServiceImpl) Update(id string, patch notes.Patch) (notes.Note, error) {
	n, err := notes.UpdateNote(s.notes, id, patch, s.now())
	if err != nil {
		return notes.Note{}, fmt.Errorf("%w: %s", err, id)
	}
	s.persist("update", id)
	return n, nil
}

func (s *noteServiceImpl) ToggleFavorite(id string) (notes.Note, error) {
	n, err := s.Get(id)
	if err != nil {
		return notes.Note{}, err
	}
	fav := !n.IsFavorite
	return s.Update(id, notes.Patch{IsFavorite: &fav})
}

func (s *noteServiceImpl) AddAttachment(id string, att notes.Attachment) (notes.Note, error) {
	n, err := s.Get(id)
	if err != nil {
		return notes.Note{}, err
	}
	if att.ID == "" {
		att.ID = s.newID()
	}
	atts := append(n.Attachments, att)
	return s.Update(id, notes.Patch{Attachments: &atts})
}

func (s *noteServiceImpl) RemoveAttachment(id, attachmentID string) (notes.Note, error) {
	n, err := s.Get(id)
	if err != nil {
		return notes.Note{}, err
	}
	atts := make([]notes.Attachment, 0, len(n.Attachments))
	for _, a := range n.Attachments {
		if a.ID != attachmentID {
			atts = append(atts, a)
		}
	}
	return s.Update(id, notes.Patch{Attachments: &atts})
}

func (s *noteServiceImpl) SoftDelete(id string) (notes.Note, error) {
	n, err := notes.SoftDelete(s.notes, id, s.now())
	if err != nil {
		return notes.Note{}, fmt.Errorf("%w: %s", err, id)
	}
	s.persist("soft-delete", id)
	return n, nil
}

func (s *noteServiceImpl) PermanentDelete(id string) error {
	list, err := notes.PermanentDelete(s.notes, id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}
	s.notes = list
	s.persist("permanent-delete", id)
	return nil
}

// Delete runs whichever delete phase applies to the note's current state
func (s *noteServiceImpl) Delete(id string) (DeleteOutcome, error) {
	n, err := s.Get(id)
	if err != nil {
		return MovedToTrash, err
	}
	if n.IsDeleted {
		return Removed, s.PermanentDelete(id)
	}
	_, err = s.SoftDelete(id)
	return MovedToTrash, err
}

func (s *noteServiceImpl) Restore(id string) (notes.Note, error) {
	n, err := notes.Restore(s.notes, id)
	if err != nil {
		return notes.Note{}, fmt.Errorf("%w: %s", err, id)
	}
	s.persist("restore", id)
	return n, nil
}

func (s *noteServiceImpl) EmptyTrash() (int, error) {
	list, removed := notes.PurgeDeleted(s.notes)
	if removed == 0 {
		return 0, nil
	}
	s.notes = list
	s.persist("empty-trash", "")
	return removed, nil
}

// Import prepends notes from outside the store. Notes whose id already exists
// get a fresh one.
func (s *noteServiceImpl) Import(list []notes.Note) (int, error) {
	if len(list) == 0 {
		return 0, nil
	}
	for i := len(list) - 1; i >= 0; i-- {
		n := list[i].Clone()
		if n.ID == "" || notes.Index(s.notes, n.ID) >= 0 {
			n.ID = s.newID()
		}
		if n.Tags == nil {
			n.Tags = []string{}
		}
		if n.UpdatedAt < n.CreatedAt {
			n.UpdatedAt = n.CreatedAt
		}
		s.notes = notes.Prepend(s.notes, n)
	}
	s.persist("import", "")
	return len(list), nil
}
