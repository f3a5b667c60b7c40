package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tangled.org/brewguide.app/brewguide/internal/database/boltstore"
	"tangled.org/brewguide.app/brewguide/internal/database/sqlitestore"
)

// newTestHandler builds a Handler backed by real stores in a temp dir.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	dir := t.TempDir()

	store, err := boltstore.Open(boltstore.Options{Path: filepath.Join(dir, "brewguide.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	db, err := sqlitestore.Open(filepath.Join(dir, "notes.db"))
	require.NoError(t, err)
	notes := sqlitestore.NewNoteStore(db)
	t.Cleanup(func() { notes.Close() })

	h := NewHandler(store, notes, store.SettingsStore(), DefaultConfig())
	h.SetClock(func() time.Time {
		return time.Date(2026, time.August, 20, 9, 30, 0, 0, time.UTC)
	})
	return h
}

// doJSON performs a request against a handler func with an optional
// JSON body and path values, returning the recorder.
func doJSON(t *testing.T, fn http.HandlerFunc, method, target string, body interface{}, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	for k, v := range pathValues {
		r.SetPathValue(k, v)
	}

	rec := httptest.NewRecorder()
	fn(rec, r)
	return rec
}

// decodeBody unmarshals a recorder body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
