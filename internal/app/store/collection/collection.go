// Package collection holds the authoritative in-memory note collection.
//
// The Store is the sole mutator of the file list and the current selection.
// Every change to the file list is mirrored to the persistence provider
// through a debounced write, so continuous typing costs one write per quiet
// period instead of one per keystroke. The archived-visibility flag changes
// rarely and is written immediately.
package collection

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/stratanote/internal/app/store/kvstore"
	"github.com/dalemusser/stratanote/internal/app/system/debounce"
	"github.com/dalemusser/stratanote/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// writeTimeout bounds a single persistence write scheduled from the
// debouncer, which runs outside any request context.
const writeTimeout = 10 * time.Second

// Store owns the ordered file list, the current selection, and the
// archived-visibility flag. All mutations run under one mutex, so no
// operation ever observes another mid-flight.
type Store struct {
	logger *zap.Logger
	kv     kvstore.Provider
	saver  *debounce.Debouncer

	mu           sync.Mutex
	files        []models.File
	currentID    string
	showArchived bool
}

// New creates a collection store backed by the given provider. quiet is the
// debounce period for file-list writes; zero makes writes synchronous, which
// is the test configuration.
func New(kv kvstore.Provider, quiet time.Duration, logger *zap.Logger) *Store {
	s := &Store{
		logger: logger,
		kv:     kv,
	}
	s.saver = debounce.New(quiet, s.persistFiles)
	return s
}

// State is a point-in-time snapshot of the collection. Files is a copy;
// callers can hold it without racing the store.
type State struct {
	Files        []models.File
	CurrentID    string
	ShowArchived bool
}

// Current returns the current file, if any.
func (st State) Current() (models.File, bool) {
	for _, f := range st.Files {
		if f.ID == st.CurrentID {
			return f, true
		}
	}
	return models.File{}, false
}

// Active returns the non-archived files in collection order.
func (st State) Active() []models.File {
	out := make([]models.File, 0, len(st.Files))
	for _, f := range st.Files {
		if !f.Archived {
			out = append(out, f)
		}
	}
	return out
}

// Archived returns the archived files in collection order.
func (st State) Archived() []models.File {
	out := make([]models.File, 0)
	for _, f := range st.Files {
		if f.Archived {
			out = append(out, f)
		}
	}
	return out
}

// Hydrate loads persisted state from the provider and chooses the initial
// current file. It must complete before the HTTP handler accepts requests;
// an edit racing hydration would be lost to the state replacement here.
//
// A failed read is treated the same as no data: the store starts empty and
// fabricates a blank file.
func (s *Store) Hydrate(ctx context.Context) {
	var files []models.File
	if _, err := s.kv.Get(ctx, kvstore.KeyFiles, &files); err != nil {
		s.logger.Warn("failed to load persisted files, starting empty", zap.Error(err))
		files = nil
	}

	var showArchived bool
	if _, err := s.kv.Get(ctx, kvstore.KeyShowArchived, &showArchived); err != nil {
		s.logger.Warn("failed to load archived-visibility flag", zap.Error(err))
	}

	s.mu.Lock()
	s.files = files
	s.showArchived = showArchived
	s.selectLocked("")
	count := len(s.files)
	s.mu.Unlock()

	s.saver.Trigger()

	s.logger.Info("note collection hydrated",
		zap.Int("files", count),
		zap.Bool("show_archived", showArchived),
	)
}

// Resolve applies the bootstrap selection chain with an optional deep-link
// id (the page's fileId query parameter) and returns the resulting state.
//
// A deep link selects its target even when archived; only interactive Open
// revives. A shared link is a read path and must not mutate the collection.
func (s *Store) Resolve(fileID string) State {
	s.mu.Lock()
	created := s.selectLocked(fileID)
	st := s.snapshotLocked()
	s.mu.Unlock()

	if created {
		s.saver.Trigger()
	}
	return st
}

// selectLocked is the strict fallback chain for choosing the current file,
// evaluated top to bottom, first match wins:
//
//  1. a deep-link id that exists in the collection
//  2. empty collection: fabricate a blank file
//  3. first non-archived file in collection order
//  4. first file in collection order
//
// It reports whether a file was fabricated (so the caller can persist).
func (s *Store) selectLocked(fileID string) bool {
	if fileID != "" {
		for _, f := range s.files {
			if f.ID == fileID {
				s.currentID = f.ID
				return false
			}
		}
	}

	if len(s.files) == 0 {
		f := newFile()
		s.files = append(s.files, f)
		s.currentID = f.ID
		return true
	}

	for _, f := range s.files {
		if !f.Archived {
			s.currentID = f.ID
			return false
		}
	}

	s.currentID = s.files[0].ID
	return false
}

// Create allocates a fresh blank file, appends it, and makes it current.
// It always succeeds.
func (s *Store) Create() (models.File, State) {
	s.mu.Lock()
	f := newFile()
	s.files = append(s.files, f)
	s.currentID = f.ID
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.saver.Trigger()
	return f, st
}

// UpdateContent replaces the content of the current file. With no current
// file the call is a silent no-op and reports false.
func (s *Store) UpdateContent(content string) (State, bool) {
	s.mu.Lock()
	idx := s.indexLocked(s.currentID)
	if idx < 0 {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, false
	}
	s.files[idx].Content = content
	s.files[idx].UpdatedAt = time.Now().UTC()
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.saver.Trigger()
	return st, true
}

// ToggleArchive flips the archived flag on the identified file. The current
// selection does not change, even when the toggled file is current. Unknown
// ids report false.
func (s *Store) ToggleArchive(fileID string) (State, bool) {
	s.mu.Lock()
	idx := s.indexLocked(fileID)
	if idx < 0 {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, false
	}
	s.files[idx].Archived = !s.files[idx].Archived
	s.files[idx].UpdatedAt = time.Now().UTC()
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.saver.Trigger()
	return st, true
}

// Delete removes the identified file. Deleting is only permitted when the
// file is archived; anything else is a no-op reporting false. When the
// deleted file was current, the selection is repaired rather than left
// dangling.
func (s *Store) Delete(fileID string) (State, bool) {
	s.mu.Lock()
	idx := s.indexLocked(fileID)
	if idx < 0 || !s.files[idx].Archived {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, false
	}

	s.files = append(s.files[:idx], s.files[idx+1:]...)
	if s.currentID == fileID {
		s.repairSelectionLocked()
	}
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.saver.Trigger()
	return st, true
}

// repairSelectionLocked re-establishes a valid current file after a delete:
// first non-archived file in collection order, else the first file even if
// archived, else a fresh blank file when the collection emptied out.
func (s *Store) repairSelectionLocked() {
	for _, f := range s.files {
		if !f.Archived {
			s.currentID = f.ID
			return
		}
	}
	if len(s.files) > 0 {
		s.currentID = s.files[0].ID
		return
	}
	f := newFile()
	s.files = append(s.files, f)
	s.currentID = f.ID
}

// Open makes the identified file current. Opening an archived file revives
// it: archive state and "open" are coupled for interactive opens. Unknown
// ids report false.
func (s *Store) Open(fileID string) (State, bool) {
	s.mu.Lock()
	idx := s.indexLocked(fileID)
	if idx < 0 {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st, false
	}

	revived := s.files[idx].Archived
	if revived {
		s.files[idx].Archived = false
		s.files[idx].UpdatedAt = time.Now().UTC()
	}
	s.currentID = fileID
	st := s.snapshotLocked()
	s.mu.Unlock()

	if revived {
		s.saver.Trigger()
	}
	return st, true
}

// Exists reports whether a file with the given id is in the collection.
func (s *Store) Exists(fileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(fileID) >= 0
}

// SetShowArchived sets the archived-visibility flag and writes it through
// immediately; the flag changes rarely, so it bypasses the debouncer.
func (s *Store) SetShowArchived(ctx context.Context, show bool) State {
	s.mu.Lock()
	s.showArchived = show
	st := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.kv.Set(ctx, kvstore.KeyShowArchived, show); err != nil {
		s.logger.Warn("failed to persist archived-visibility flag", zap.Error(err))
	}
	return st
}

// State returns a snapshot of the collection.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Flush writes any pending debounced state immediately. Called at shutdown
// so the last edits are not lost.
func (s *Store) Flush() {
	s.saver.Flush()
}

func (s *Store) indexLocked(fileID string) int {
	if fileID == "" {
		return -1
	}
	for i, f := range s.files {
		if f.ID == fileID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() State {
	files := make([]models.File, len(s.files))
	copy(files, s.files)
	return State{
		Files:        files,
		CurrentID:    s.currentID,
		ShowArchived: s.showArchived,
	}
}

// persistFiles writes the current file list to the provider. It runs from
// the debouncer, outside any request, and is never retried: a write that
// fails simply does not persist.
func (s *Store) persistFiles() {
	s.mu.Lock()
	files := make([]models.File, len(s.files))
	copy(files, s.files)
	s.mu.Unlock()

	// An empty collection is a transient pre-bootstrap state and is never
	// written out.
	if len(files) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := s.kv.Set(ctx, kvstore.KeyFiles, files); err != nil {
		s.logger.Warn("failed to persist files", zap.Error(err), zap.Int("count", len(files)))
		return
	}
	s.logger.Debug("persisted files", zap.Int("count", len(files)))
}

// newFile allocates a blank, non-archived file with a fresh id. UUIDv7 ids
// are timestamp-derived, so creation order sorts naturally.
func newFile() models.File {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	now := time.Now().UTC()
	return models.File{
		ID:        id.String(),
		Name:      "Note " + now.Format("Jan 2, 2006 15:04"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
