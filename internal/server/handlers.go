// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"laptudirm.com/x/pairings/pkg/event"
	"laptudirm.com/x/pairings/pkg/pairing"
	"laptudirm.com/x/pairings/pkg/render"
	"laptudirm.com/x/pairings/pkg/store"
)

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, healthResponse{
		Status:    "healthy",
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	})
}

// participantList accepts either a JSON array of names or a single
// comma-delimited string.
type participantList []string

func (list *participantList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var field string
		if err := json.Unmarshal(data, &field); err != nil {
			return err
		}

		*list = event.ParseParticipants(field)
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return errors.New("participants must be a list or a comma-separated string")
	}

	*list = event.CleanParticipants(names)
	return nil
}

type pairingsRequest struct {
	Event        string          `json:"event"`
	Date         string          `json:"date"`
	Group        string          `json:"group"`
	Participants participantList `json:"participants"`
	Rounds       *int            `json:"rounds"`
	Seed         uint64          `json:"seed"`

	// Save stores the generated record under this name when set.
	Save string `json:"save"`
}

// invalidArgument reports whether err was caused by the request's content.
func invalidArgument(err error) bool {
	for _, target := range []error{
		pairing.ErrInvalidParticipants,
		pairing.ErrInvalidRounds,
		event.ErrInvalidDate,
		event.ErrNoGroups,
		store.ErrInvalidName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func (s *Server) handleCreatePairings(w http.ResponseWriter, r *http.Request) {
	var req pairingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidArgument, fmt.Errorf("decode request: %w", err))
		return
	}

	if req.Save != "" {
		if err := store.ValidateName(req.Save); err != nil {
			respondError(w, r, http.StatusBadRequest, codeInvalidArgument, err)
			return
		}
	}

	config := event.Config{
		Event:  req.Event,
		Date:   req.Date,
		Rounds: req.Rounds,
		Seed:   req.Seed,
		Groups: []event.Group{{
			Name:         req.Group,
			Participants: event.Participants(req.Participants),
		}},
	}

	record, err := event.Run(r.Context(), config, s.logger)
	if err != nil {
		if invalidArgument(err) {
			respondError(w, r, http.StatusBadRequest, codeInvalidArgument, err)
			return
		}
		respondError(w, r, http.StatusInternalServerError, codeInternal, err)
		return
	}

	if req.Save != "" {
		data, err := record.Marshal()
		if err == nil {
			err = s.store.Put(r.Context(), req.Save, data)
		}
		if err != nil {
			s.logger.WithError(err).Error("failed to save record")
			respondError(w, r, http.StatusInternalServerError, codeInternal, err)
			return
		}
	}

	respondCreated(w, r, record)
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, err)
		return
	}

	respondOK(w, r, map[string][]string{"schedules": names})
}

// handleGetSchedule serves a stored record as JSON, or in any render
// format given by the format query parameter.
func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	record, ok := s.load(w, r)
	if !ok {
		return
	}

	requested := r.URL.Query().Get("format")
	if requested == "" {
		respondOK(w, r, record)
		return
	}

	format, err := render.ParseFormat(requested)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidArgument, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, format, record); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, err)
		return
	}

	switch format {
	case render.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case render.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.respondStoreError(w, r, err)
		return
	}

	respondOK(w, r, map[string]string{"deleted": name})
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*event.Record, bool) {
	data, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.respondStoreError(w, r, err)
		return nil, false
	}

	record, err := event.UnmarshalRecord(data)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, err)
		return nil, false
	}

	return record, true
}

func (s *Server) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, r, http.StatusNotFound, codeNotFound, err)
	case errors.Is(err, store.ErrInvalidName):
		respondError(w, r, http.StatusBadRequest, codeInvalidArgument, err)
	default:
		respondError(w, r, http.StatusInternalServerError, codeInternal, err)
	}
}
