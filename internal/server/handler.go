package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/raphi011/repodash/internal/dashboard"
	"github.com/raphi011/repodash/internal/git"
	"github.com/raphi011/repodash/internal/log"
)

// statusResponse wraps a status; Git is null for non-repositories.
type statusResponse struct {
	Git *git.Status `json:"git"`
}

type syncResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// detached keeps request values (logger, request id) but ignores client
// disconnects: git work always runs to completion.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// dirParam extracts the root-relative directory from a catch-all parameter.
func dirParam(ps httprouter.Params) string {
	return strings.TrimPrefix(ps.ByName("dir"), "/")
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/index.html", http.StatusFound)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	paths := s.service.ListRepositories(detached(r))
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, http.StatusOK, paths)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dir := dirParam(ps)
	st, err := s.service.Status(detached(r), dir)
	if errors.Is(err, dashboard.ErrNotFound) {
		writeText(w, http.StatusNotFound, fmt.Sprintf("Directory '%s' not found", dir))
		return
	}
	if err != nil {
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Git: st})
}

func (s *Server) handleSync(op git.Operation) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		dir := dirParam(ps)
		err := s.service.Sync(detached(r), dir, op)

		var syncErr *git.SyncError
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, syncResponse{Status: "success", Message: fmt.Sprintf("%s successful", op)})
		case errors.Is(err, dashboard.ErrNotFound):
			writeText(w, http.StatusNotFound, fmt.Sprintf("Directory '%s' not found", dir))
		case errors.As(err, &syncErr):
			writeText(w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s changes", syncErr.Op))
		default:
			writeText(w, http.StatusInternalServerError, err.Error())
		}
	}
}

func (s *Server) handleKeepalive(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.service.Touch()
	log.FromContext(r.Context()).Debug("keepalive received")
	writeText(w, http.StatusOK, "ok")
}

// handleStatic serves files from the static directory. index.html is served
// directly because http.FileServer redirects it to "./", which "/" would
// redirect back.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	root := http.Dir(s.staticDir)
	if !strings.HasSuffix(r.URL.Path, "/index.html") {
		http.FileServer(root).ServeHTTP(w, r)
		return
	}

	f, err := root.Open(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *Server) handlePanic(w http.ResponseWriter, r *http.Request, v any) {
	log.FromContext(r.Context()).Printf("panic serving %s %s: %v\n", r.Method, r.URL.Path, v)
	writeText(w, http.StatusInternalServerError, fmt.Sprint(v))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, code int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(text))
}
