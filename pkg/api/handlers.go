package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/visualencer/pkg/buildinfo"
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/errors"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/pipeline"
	"github.com/matzehuels/visualencer/pkg/storage"
)

// =============================================================================
// Response Types
// =============================================================================

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	NodeTypes int    `json:"node_types"`
	Storage   bool   `json:"storage"`
}

// CompileResponse is the body of a successful compile.
type CompileResponse struct {
	Output    string             `json:"output"`
	Script    *compiler.Script   `json:"script"`
	GraphHash string             `json:"graph_hash"`
	Stats     pipeline.Stats     `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
	Previews  map[string]string  `json:"previews,omitempty"`
}

// GraphList is the body of GET /graphs.
type GraphList struct {
	Graphs []storage.Info `json:"graphs"`
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   buildinfo.Version,
		NodeTypes: s.runner.Registry.Len(),
		Storage:   s.store != nil,
	})
}

// =============================================================================
// Compile
// =============================================================================

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		s.respondError(w, r, err)
		return
	}
	if opts.Document == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "document is required"))
		return
	}
	s.compile(w, r, opts)
}

func (s *Server) handleCompileGraph(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil && err != errEmptyBody {
		s.respondError(w, r, err)
		return
	}
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts.Document = doc
	s.compile(w, r, opts)
}

func (s *Server) compile(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	opts.Path = ""
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		if result == nil || result.Script == nil {
			s.respondError(w, r, err)
			return
		}
		s.respondErrorBody(w, r, err, func(body *ErrorResponse) {
			body.Output = result.Output
			body.Diagnostics = result.Script.Diagnostics
		})
		return
	}

	resp := CompileResponse{
		Output:    result.Output,
		Script:    result.Script,
		GraphHash: result.GraphHash,
		Stats:     result.Stats,
		Cache:     result.CacheInfo,
	}
	if len(result.Previews) > 0 {
		resp.Previews = make(map[string]string, len(result.Previews))
		for format, data := range result.Previews {
			resp.Previews[format] = string(data)
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Node Catalog
// =============================================================================

func (s *Server) handleListNodes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	role := compiler.Role(q.Get("role"))
	family := q.Get("family")
	category := q.Get("category")

	out := []compiler.Info{}
	for _, d := range s.runner.Registry.Descriptors() {
		if role != "" && d.Role != role {
			continue
		}
		if category != "" && d.Category != category {
			continue
		}
		if family != "" && d.Family != family && !d.Accepts(family) {
			continue
		}
		out = append(out, d.Info())
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	d, err := s.runner.Registry.Lookup(chi.URLParam(r, "type"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, d.Info())
}

// =============================================================================
// Graph Store
// =============================================================================

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if infos == nil {
		infos = []storage.Info{}
	}
	s.respondJSON(w, http.StatusOK, GraphList{Graphs: infos})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	var doc graph.Document
	if err := s.decode(w, r, &doc); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), chi.URLParam(r, "name"), &doc); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
