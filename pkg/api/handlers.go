package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/anchor/pkg/buildinfo"
	"github.com/matzehuels/anchor/pkg/cache"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/grid"
	"github.com/matzehuels/anchor/pkg/overlay"
	"github.com/matzehuels/anchor/pkg/scene"
	"github.com/matzehuels/anchor/pkg/snapshot"
)

// PlanRequest is the body of POST /v1/grid/plan. Packing accepts a name
// ("spread", "top_leading") or slot notation ("_I_ _I_"); empty means
// spread. A nil gap means grid.DefaultGap.
type PlanRequest struct {
	Count   int      `json:"count"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Packing string   `json:"packing,omitempty"`
	Columns int      `json:"columns,omitempty"`
	Rows    int      `json:"rows,omitempty"`
	Gap     *float64 `json:"gap,omitempty"`
	Border  float64  `json:"border,omitempty"`
}

// Spec converts the request into a grid spec.
func (p PlanRequest) Spec() (grid.Spec, error) {
	packing := grid.DefaultPacking
	if p.Packing != "" {
		var err error
		if packing, err = grid.LookupPacking(p.Packing); err != nil {
			return grid.Spec{}, err
		}
	}
	gap := float64(grid.DefaultGap)
	if p.Gap != nil {
		gap = *p.Gap
	}
	return grid.Spec{
		Count:   p.Count,
		Width:   p.Width,
		Height:  p.Height,
		Packing: packing,
		Counts:  grid.Counts{Columns: p.Columns, Rows: p.Rows},
		Gap:     gap,
		Border:  p.Border,
	}, nil
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode plan request"))
		return
	}
	spec, err := req.Spec()
	if err != nil {
		s.writeError(w, err)
		return
	}
	key := s.keys.PlanKey(cache.PlanKeyOpts{
		Count:   spec.Count,
		Width:   spec.Width,
		Height:  spec.Height,
		Packing: spec.Packing.String(),
		Columns: spec.Counts.Columns,
		Rows:    spec.Counts.Rows,
		Gap:     spec.Gap,
		Border:  spec.Border,
	})
	data, _, err := cache.GetOrCompute(r.Context(), s.cache, "plan", key, s.cacheTTL, func() ([]byte, error) {
		plan, err := grid.Compute(spec)
		if err != nil {
			return nil, err
		}
		return json.Marshal(plan)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, "application/json", data)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	raw, sc, err := s.readScene(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	key := s.keys.ReportKey(cache.Hash(raw))
	data, _, err := cache.GetOrCompute(r.Context(), s.cache, "report", key, s.cacheTTL, func() ([]byte, error) {
		res, err := scene.Build(sc, scene.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		defer res.Close()
		return json.Marshal(res.Report)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, "application/json", data)
}

func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := overlay.ParseFormat(q.Get("format"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	seed := uint64(1)
	if v := q.Get("seed"); v != "" {
		if seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "seed %q is not an unsigned integer", v))
			return
		}
	}
	start := q.Get("start")

	raw, sc, err := s.readScene(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	key := s.keys.OverlayKey(cache.Hash(raw), cache.OverlayKeyOpts{Format: string(format), Start: start, Seed: seed})
	data, _, err := cache.GetOrCompute(r.Context(), s.cache, "overlay", key, s.cacheTTL, func() ([]byte, error) {
		res, err := scene.Build(sc, scene.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		defer res.Close()
		opts := []overlay.Option{overlay.WithSeed(seed)}
		if start != "" {
			v, ok := res.Resolve(start)
			if !ok {
				return nil, errors.New(errors.ErrCodeNotFound, "view %q not found", start)
			}
			opts = append(opts, overlay.WithStart(v))
		}
		return overlay.Render(r.Context(), overlay.Build(res.Engine, res.Root, opts...), format)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, format.ContentType(), data)
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	_, sc, err := s.readScene(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := scene.Build(sc, scene.WithLogger(s.logger))
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer res.Close()

	snap := snapshot.Capture(res)
	if err := s.store.Save(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/snapshots/"+snap.ID)
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit %q is not a non-negative integer", v))
			return
		}
		limit = n
	}
	list, err := s.store.List(r.Context(), r.URL.Query().Get("scene"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []snapshot.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// readScene reads a TOML scene from the request body.
func (s *Server) readScene(w http.ResponseWriter, r *http.Request) ([]byte, *scene.Scene, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene")
	}
	sc, err := scene.Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	return raw, sc, nil
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInternal, "":
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("api request failed", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, "application/json", data)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
