package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-widgets/components/widgets"
	"github.com/goliatone/go-widgets/components/widgets/commands"
	"github.com/goliatone/go-widgets/components/widgets/queries"
)

// maxDocumentBytes bounds configuration documents accepted over HTTP.
const maxDocumentBytes = 1 << 20

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Save    gocommand.Commander[commands.SavePageInput]
	Delete  gocommand.Commander[commands.DeletePageInput]
	Refresh gocommand.Commander[commands.RefreshPageInput]
	Render  gocommand.Querier[queries.RenderPageInput, queries.PageView]
	// Preview renders unsaved documents. Optional.
	Preview *widgets.Service
}

// HandleSavePage stores the request body as the page configuration. The
// format comes from the "format" query parameter or the Content-Type header.
func (h *Handlers) HandleSavePage(w http.ResponseWriter, r *http.Request, pageID string) {
	format, err := requestFormat(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := readDocument(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var page widgets.Page
	input := commands.SavePageInput{
		PageID:   pageID,
		Slug:     r.URL.Query().Get("slug"),
		Title:    r.URL.Query().Get("title"),
		Document: doc,
		Format:   format,
		Result:   &page,
	}
	if err := h.Save.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	status := http.StatusOK
	if pageID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, page)
}

// HandleDeletePage removes a page.
func (h *Handlers) HandleDeletePage(w http.ResponseWriter, r *http.Request, pageID string) {
	if err := h.Delete.Execute(r.Context(), commands.DeletePageInput{PageID: pageID}); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRefreshPage emits a refresh event for a page.
func (h *Handlers) HandleRefreshPage(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshPageInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Refresh.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleRenderPage renders a page as HTML, or as JSON when the client asks
// for application/json.
func (h *Handlers) HandleRenderPage(w http.ResponseWriter, r *http.Request, pageID string) {
	view, err := h.Render.Query(r.Context(), queries.RenderPageInput{
		PageID:    pageID,
		ClassName: r.URL.Query().Get("class"),
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, view)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, view.HTML)
}

// HandlePreview renders the request body without storing it.
func (h *Handlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if h.Preview == nil {
		http.Error(w, "preview not configured", http.StatusNotImplemented)
		return
	}
	format, err := requestFormat(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := readDocument(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cfg, err := h.Preview.Decoder().DecodeBytes(doc, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	node := h.Preview.Preview(r.Context(), cfg)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = node.WriteHTML(w)
}

func requestFormat(r *http.Request) (widgets.Format, error) {
	if name := r.URL.Query().Get("format"); name != "" {
		return widgets.ParseFormat(name)
	}
	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	switch {
	case strings.Contains(contentType, "yaml"):
		return widgets.FormatYAML, nil
	case strings.Contains(contentType, "toml"):
		return widgets.FormatTOML, nil
	default:
		return widgets.FormatJSON, nil
	}
}

func readDocument(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, widgets.ErrEmptyConfig
	}
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, err
	}
	if len(doc) > maxDocumentBytes {
		return nil, errors.New("configuration document too large")
	}
	if len(doc) == 0 {
		return nil, widgets.ErrEmptyConfig
	}
	return doc, nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") || r.URL.Query().Get("format") == "json"
}

func statusFor(err error) int {
	if errors.Is(err, widgets.ErrPageNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
