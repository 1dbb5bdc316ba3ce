// Package notesapi provides the JSON API the note page calls for every
// mutation of the collection.
//
// Endpoints (mounted at /api):
//   - GET    /api/state                        - Current collection state
//   - POST   /api/files                        - Create a blank file and open it
//   - PUT    /api/files/current/content        - Replace the current file's content
//   - POST   /api/files/{fileID}/open          - Open a file (revives archived)
//   - POST   /api/files/{fileID}/open-external - Announce an open to other contexts
//   - POST   /api/files/{fileID}/archive       - Toggle a file's archived flag
//   - DELETE /api/files/{fileID}               - Delete an archived file
//   - PUT    /api/settings/show-archived       - Set archived-list visibility
//
// Every endpoint that touches the collection responds with the full state,
// so the page re-renders from one payload and never diffs.
package notesapi

import (
	"net/http"

	"github.com/dalemusser/stratanote/internal/app/store/collection"
	"github.com/dalemusser/stratanote/internal/app/system/auditlog"
	"github.com/dalemusser/stratanote/internal/app/system/jsonutil"
	"github.com/dalemusser/stratanote/internal/app/system/notifier"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler handles note collection API requests.
type Handler struct {
	notes  *collection.Store
	audit  *auditlog.Logger
	notify *notifier.Notifier
	logger *zap.Logger
}

// NewHandler creates a new notesapi handler.
func NewHandler(notes *collection.Store, audit *auditlog.Logger, notify *notifier.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		notes:  notes,
		audit:  audit,
		notify: notify,
		logger: logger,
	}
}

// State handles GET /state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, newStateVM(h.notes.State()))
}

// Create handles POST /files. The new file is blank and becomes current.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	f, st := h.notes.Create()

	h.audit.FileCreated(r, f.ID)
	h.notify.FileOpened(f.ID)
	h.logger.Debug("file created", zap.String("file_id", f.ID))

	jsonutil.Created(w, newStateVM(st))
}

// UpdateContent handles PUT /files/current/content. With no current file
// the edit is silently dropped and the unchanged state returned.
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var in UpdateContentInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}

	st, ok := h.notes.UpdateContent(in.Content)
	if !ok {
		h.logger.Debug("content update with no current file dropped")
	}
	jsonutil.OK(w, newStateVM(st))
}

// Open handles POST /files/{fileID}/open. Opening an archived file revives
// it. Other interested processes are notified through the webhook.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	wasArchived := false
	for _, f := range h.notes.State().Files {
		if f.ID == fileID {
			wasArchived = f.Archived
		}
	}

	st, ok := h.notes.Open(fileID)
	if !ok {
		jsonutil.NotFound(w, "file not found")
		return
	}

	h.audit.FileOpened(r, fileID, wasArchived)
	h.notify.FileOpened(fileID)

	jsonutil.OK(w, newStateVM(st))
}

// OpenExternal handles POST /files/{fileID}/open-external. It announces the
// open over the webhook without touching the local selection; another
// window or process owns the actual navigation.
func (h *Handler) OpenExternal(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	if !h.notes.Exists(fileID) {
		jsonutil.NotFound(w, "file not found")
		return
	}

	h.notify.FileOpened(fileID)
	jsonutil.NoContent(w)
}

// Archive handles POST /files/{fileID}/archive, toggling the archived flag.
// The current selection never changes here, even for the current file.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	st, ok := h.notes.ToggleArchive(fileID)
	if !ok {
		jsonutil.NotFound(w, "file not found")
		return
	}

	archived := false
	for _, f := range st.Files {
		if f.ID == fileID {
			archived = f.Archived
		}
	}
	h.audit.FileArchived(r, fileID, archived)

	jsonutil.OK(w, newStateVM(st))
}

// Delete handles DELETE /files/{fileID}. Only archived files can be
// deleted; deleting a non-archived file is a no-op that returns the
// unchanged state, mirroring how the page guards the delete control.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	if !h.notes.Exists(fileID) {
		jsonutil.NotFound(w, "file not found")
		return
	}

	st, ok := h.notes.Delete(fileID)
	if ok {
		h.audit.FileDeleted(r, fileID)
	} else {
		h.logger.Debug("delete of non-archived file ignored", zap.String("file_id", fileID))
	}

	jsonutil.OK(w, newStateVM(st))
}

// SetShowArchived handles PUT /settings/show-archived.
func (h *Handler) SetShowArchived(w http.ResponseWriter, r *http.Request) {
	var in ShowArchivedInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}

	st := h.notes.SetShowArchived(r.Context(), in.ShowArchived)
	h.audit.SettingsChanged(r, in.ShowArchived)

	jsonutil.OK(w, newStateVM(st))
}
