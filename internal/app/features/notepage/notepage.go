// internal/app/features/notepage/notepage.go
package notepage

import (
	"net/http"

	"github.com/dalemusser/stratanote/internal/app/store/collection"
	"github.com/dalemusser/stratanote/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratanote/internal/app/system/preview"
	"github.com/dalemusser/stratanote/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the note page handlers.
type Handler struct {
	notes  *collection.Store
	logger *zap.Logger
}

// NewHandler creates a new notepage Handler.
func NewHandler(notes *collection.Store, logger *zap.Logger) *Handler {
	return &Handler{
		notes:  notes,
		logger: logger,
	}
}

// FileItemVM is one entry in the page's file list.
type FileItemVM struct {
	ID       string
	Name     string
	Preview  string
	Archived bool
	Current  bool
}

// NotePageVM is the view model for the note page.
type NotePageVM struct {
	viewdata.BaseVM
	CurrentID    string
	Content      string // Raw note text for the editor
	Active       []FileItemVM
	Archived     []FileItemVM
	ShowArchived bool
	Location     string // Canonical deep-link path for the address bar
}

// Routes returns a chi.Router with the note page mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the note page. A fileId query parameter deep-links to a
// specific file; without one (or with an unknown id) the selection falls
// back to the usual bootstrap order.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	fileID := r.URL.Query().Get("fileId")
	st := h.notes.Resolve(fileID)

	vm := NotePageVM{
		BaseVM:       viewdata.New(r),
		ShowArchived: st.ShowArchived,
		Location:     "/",
	}
	vm.Title = preview.NoFileTitle()

	if cur, ok := st.Current(); ok {
		vm.CurrentID = cur.ID
		vm.Content = cur.Content
		vm.Title = preview.Title(htmlsanitize.StripTags(cur.Content))
		vm.Location = "/?fileId=" + cur.ID
	}

	for _, f := range st.Files {
		item := FileItemVM{
			ID:       f.ID,
			Name:     f.Name,
			Preview:  preview.Text(htmlsanitize.StripTags(f.Content), preview.MaxLength),
			Archived: f.Archived,
			Current:  f.ID == vm.CurrentID,
		}
		if f.Archived {
			vm.Archived = append(vm.Archived, item)
		} else {
			vm.Active = append(vm.Active, item)
		}
	}

	templates.Render(w, r, "notepage/index", vm)
}
