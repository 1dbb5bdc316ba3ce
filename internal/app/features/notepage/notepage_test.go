package notepage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/stratanote/internal/app/store/collection"
	"github.com/dalemusser/stratanote/internal/testutil"
	"go.uber.org/zap"
)

type memProvider struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (p *memProvider) Get(_ context.Context, key string, v any) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	raw, ok := p.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (p *memProvider) Set(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		p.data = make(map[string][]byte)
	}
	p.data[key] = raw
	return nil
}

func (p *memProvider) Ping(context.Context) error    { return nil }
func (p *memProvider) Migrate(context.Context) error { return nil }
func (p *memProvider) Close(context.Context) error   { return nil }

func newTestStore(t *testing.T) *collection.Store {
	t.Helper()
	notes := collection.New(&memProvider{}, 0, zap.NewNop())
	notes.Hydrate(context.Background())
	return notes
}

func TestNewHandler(t *testing.T) {
	h := NewHandler(newTestStore(t), zap.NewNop())
	if h == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestRoutes(t *testing.T) {
	h := NewHandler(newTestStore(t), zap.NewNop())
	if Routes(h) == nil {
		t.Fatal("Routes() returned nil")
	}
}

func TestIndex_RendersPage(t *testing.T) {
	testutil.MustBootTemplates(t)

	notes := newTestStore(t)
	router := Routes(NewHandler(notes, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `id="editor"`) {
		t.Error("page does not contain the editor textarea")
	}
	if !strings.Contains(body, `id="file-list"`) {
		t.Error("page does not contain the file list")
	}
}

func TestIndex_DeepLinkSelectsFile(t *testing.T) {
	testutil.MustBootTemplates(t)

	notes := newTestStore(t)
	created, _ := notes.Create()
	if _, ok := notes.UpdateContent("deep linked note body"); !ok {
		t.Fatal("UpdateContent() failed with a current file")
	}

	router := Routes(NewHandler(notes, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/?fileId="+created.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "deep linked note body") {
		t.Error("deep-linked note content missing from rendered page")
	}
}

func TestNotePageVM(t *testing.T) {
	vm := NotePageVM{
		CurrentID: "abc",
		Content:   "note text",
		Active: []FileItemVM{
			{ID: "abc", Preview: "note text", Current: true},
		},
		Location: "/?fileId=abc",
	}

	if vm.Active[0].ID != vm.CurrentID {
		t.Errorf("current item id = %q, want %q", vm.Active[0].ID, vm.CurrentID)
	}
	if vm.Location != "/?fileId=abc" {
		t.Errorf("Location = %q, want deep link", vm.Location)
	}
}
