package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/treelayout/pkg/buildinfo"
	"github.com/matzehuels/treelayout/pkg/errors"
	treeio "github.com/matzehuels/treelayout/pkg/io"
	"github.com/matzehuels/treelayout/pkg/pipeline"
	"github.com/matzehuels/treelayout/pkg/render/styles"
)

// Response headers set on rendered artifacts.
const (
	HeaderCache    = "X-Cache"
	HeaderTreeHash = "X-Tree-Hash"
)

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Tree    json.RawMessage  `json:"tree"`
	Options pipeline.Options `json:"options"`
}

// DrawerInfo describes one drawer in GET /v1/drawers.
type DrawerInfo struct {
	Name    string   `json:"name"`
	Formats []string `json:"formats"`
	Styles  []string `json:"styles,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
	})
}

func (s *Server) handleDrawers(w http.ResponseWriter, r *http.Request) {
	var out []DrawerInfo
	for _, name := range pipeline.Drawers() {
		info := DrawerInfo{Name: name, Formats: pipeline.Formats(name)}
		if name == pipeline.DrawerSVG {
			info.Styles = styles.Names()
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var disposition string
	if name := r.URL.Query().Get("filename"); name != "" {
		if err := errors.ValidateFilename(name); err != nil {
			s.writeError(w, r, 0, err)
			return
		}
		disposition = `attachment; filename="` + name + `"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxBodyBytes)

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	t, err := treeio.ReadJSON(bytes.NewReader(req.Tree))
	if err != nil {
		s.writeError(w, r, 0, err)
		return
	}

	res, err := s.Config.Runner.Render(r.Context(), t, req.Options)
	if err != nil {
		s.writeError(w, r, 0, err)
		return
	}

	cacheStatus := "MISS"
	if res.CacheHit {
		cacheStatus = "HIT"
	}
	h := w.Header()
	h.Set("Content-Type", res.Artifact.MediaType)
	h.Set("Content-Length", strconv.Itoa(res.Artifact.Len()))
	h.Set(HeaderCache, cacheStatus)
	h.Set(HeaderTreeHash, res.TreeHash)
	if disposition != "" {
		h.Set("Content-Disposition", disposition)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact.Data)
}

// writeError writes err as a JSON error body. A zero status is derived from
// the error code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status == 0 {
		status = errors.HTTPStatus(err)
	}
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.Config.Log.Error("render failed", "id", RequestID(r.Context()), "error", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
