package notesapi

import (
	"time"

	"github.com/dalemusser/stratanote/internal/app/store/collection"
	"github.com/dalemusser/stratanote/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratanote/internal/app/system/preview"
)

// FileVM is a file as it appears in the note list. Content is reduced to a
// short preview; the full text only travels with the current file.
type FileVM struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Preview   string    `json:"preview"`
	Archived  bool      `json:"archived"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrentVM is the file loaded in the editor, with its full content.
type CurrentVM struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Content  string `json:"content"`
	Archived bool   `json:"archived"`
}

// StateVM is the full client-visible state, returned by every endpoint so
// the page can re-render from a single response.
type StateVM struct {
	Current      *CurrentVM `json:"current"`
	Active       []FileVM   `json:"active"`
	Archived     []FileVM   `json:"archived"`
	ShowArchived bool       `json:"show_archived"`
	Title        string     `json:"title"`
	Location     string     `json:"location"`
}

// newStateVM projects a collection snapshot into the wire shape. Title is
// the browser tab title for the current file; Location is the canonical
// deep-link path the page should show in the address bar.
func newStateVM(st collection.State) StateVM {
	vm := StateVM{
		Active:       make([]FileVM, 0),
		Archived:     make([]FileVM, 0),
		ShowArchived: st.ShowArchived,
		Title:        preview.NoFileTitle(),
		Location:     "/",
	}

	for _, f := range st.Files {
		fvm := FileVM{
			ID:        f.ID,
			Name:      f.Name,
			Preview:   preview.Text(htmlsanitize.StripTags(f.Content), preview.MaxLength),
			Archived:  f.Archived,
			UpdatedAt: f.UpdatedAt,
		}
		if f.Archived {
			vm.Archived = append(vm.Archived, fvm)
		} else {
			vm.Active = append(vm.Active, fvm)
		}
	}

	if cur, ok := st.Current(); ok {
		vm.Current = &CurrentVM{
			ID:       cur.ID,
			Name:     cur.Name,
			Content:  cur.Content,
			Archived: cur.Archived,
		}
		vm.Title = preview.Title(htmlsanitize.StripTags(cur.Content))
		vm.Location = "/?fileId=" + cur.ID
	}
	return vm
}

// UpdateContentInput is the request body for PUT /files/current/content.
type UpdateContentInput struct {
	Content string `json:"content"`
}

// ShowArchivedInput is the request body for PUT /settings/show-archived.
type ShowArchivedInput struct {
	ShowArchived bool `json:"show_archived"`
}
