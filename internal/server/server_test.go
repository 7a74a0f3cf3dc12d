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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"laptudirm.com/x/pairings/pkg/event"
	"laptudirm.com/x/pairings/pkg/store"
)

// envelope is used to decode the standard response envelope.
type envelope struct {
	Status    string          `json:"status"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
	Error     *APIError       `json:"error"`
}

func testServer(t *testing.T) *Server {
	t.Helper()

	dir, err := store.NewDirectory(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	logger, _ := test.NewNullLogger()
	return New(dir, logger)
}

func do(t *testing.T, srv *Server, method, path, body string, wantStatus int) envelope {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != wantStatus {
		t.Fatalf("%s %s: status=%d, want %d, body=%s", method, path, w.Code, wantStatus, w.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON: %v", method, path, err)
	}

	if env.RequestID == "" || env.RequestID != w.Header().Get("X-Request-ID") {
		t.Errorf("%s %s: request_id = %q, header = %q", method, path, env.RequestID, w.Header().Get("X-Request-ID"))
	}

	return env
}

func TestHealth(t *testing.T) {
	env := do(t, testServer(t), "GET", "/api/v1/health", "", http.StatusOK)

	var data healthResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if env.Status != "ok" || data.Status != "healthy" {
		t.Errorf("health = %+v, %+v", env, data)
	}
}

func TestCreatePairings(t *testing.T) {
	srv := testServer(t)

	env := do(t, srv, "POST", "/api/v1/pairings",
		`{"participants": "Alice, Bob, Carol", "rounds": 2, "group": "Seed", "date": "2026-01-05", "seed": 9}`,
		http.StatusCreated)

	var record event.Record
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatal(err)
	}

	if len(record.Groups) != 1 || record.Groups[0].Group != "Seed" {
		t.Fatalf("record groups = %+v", record.Groups)
	}

	schedule := record.Groups[0].Schedule
	if len(schedule) != 2 {
		t.Fatalf("got %d rounds, want 2", len(schedule))
	}
	for _, round := range schedule {
		if len(round.Matches) != 2 {
			t.Errorf("round %d has %d matches, want 2", round.Number, len(round.Matches))
		}
	}
}

func TestCreatePairingsTrimsNames(t *testing.T) {
	srv := testServer(t)

	env := do(t, srv, "POST", "/api/v1/pairings",
		`{"participants": ["A", "", " B ", "  "], "rounds": 1}`,
		http.StatusCreated)

	var record event.Record
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatal(err)
	}

	participants := record.Groups[0].Participants
	if len(participants) != 2 || participants[0] != "A" || participants[1] != "B" {
		t.Errorf("participants = %q, want [A B]", participants)
	}

	matches := record.Groups[0].Schedule[0].Matches
	if len(matches) != 1 || matches[0].Bye {
		t.Errorf("round 1 matches = %+v, want a single A-B match", matches)
	}
}

func TestCreatePairingsInvalid(t *testing.T) {
	srv := testServer(t)

	for _, body := range []string{
		`{"participants": ["A", "B"], "rounds": 0}`,
		`{"participants": ["A", "B"], "rounds": -1}`,
		`{"participants": [], "rounds": 2}`,
		`{"participants": " , "}`,
		`{"participants": ["", "  "]}`,
		`{"participants": ["A", "A"]}`,
		`{"participants": 12}`,
		`{"participants": ["A", "B"], "date": "2026-13-45"}`,
		`{"participants": ["A", "B"], "save": "../escape"}`,
		`not json`,
	} {
		env := do(t, srv, "POST", "/api/v1/pairings", body, http.StatusBadRequest)
		if env.Status != "error" || env.Error == nil || env.Error.Code != codeInvalidArgument {
			t.Errorf("body %s: envelope = %+v", body, env)
		}
		if len(env.Data) != 0 {
			t.Errorf("body %s: returned data %s alongside an error", body, env.Data)
		}
	}
}

func TestSchedules(t *testing.T) {
	srv := testServer(t)

	do(t, srv, "POST", "/api/v1/pairings",
		`{"participants": ["Alice", "Bob", "Carol", "Dave"], "rounds": 3, "save": "week-1"}`,
		http.StatusCreated)

	env := do(t, srv, "GET", "/api/v1/schedules", "", http.StatusOK)
	var list struct {
		Schedules []string `json:"schedules"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Schedules) != 1 || list.Schedules[0] != "week-1" {
		t.Errorf("schedules = %v, want [week-1]", list.Schedules)
	}

	env = do(t, srv, "GET", "/api/v1/schedules/week-1", "", http.StatusOK)
	var record event.Record
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatal(err)
	}
	if got := len(record.Groups[0].Schedule); got != 3 {
		t.Errorf("stored schedule has %d rounds, want 3", got)
	}

	req := httptest.NewRequest("GET", "/api/v1/schedules/week-1?format=plain", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Body.String(), "Round 1\n@") {
		t.Errorf("plain export: status=%d body=%q", w.Code, w.Body.String())
	}
	if got := strings.Count(w.Body.String(), "-----\n"); got != 3 {
		t.Errorf("plain export has %d round separators, want 3", got)
	}

	do(t, srv, "GET", "/api/v1/schedules/week-1?format=html", "", http.StatusBadRequest)
	do(t, srv, "DELETE", "/api/v1/schedules/week-1", "", http.StatusOK)
	do(t, srv, "GET", "/api/v1/schedules/week-1", "", http.StatusNotFound)
	do(t, srv, "DELETE", "/api/v1/schedules/week-1", "", http.StatusNotFound)
}
