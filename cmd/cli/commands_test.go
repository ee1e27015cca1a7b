package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMatchCommandSendsCounters(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/matches", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	rootCmd.SetArgs([]string{"--host", srv.URL, "--token", "tok", "add-match", "Raj", "m1", "--runs", "50", "--balls_faced", "40"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "Raj", got["player_name"])
	assert.Equal(t, "m1", got["match_id"])
	assert.Equal(t, 50.0, got["runs"])
	assert.Equal(t, 40.0, got["balls_faced"])
	assert.Equal(t, 0.0, got["wickets"])
}

func TestMatchEndpointEscapes(t *testing.T) {
	assert.Equal(t, "/api/matches/Raj%20Kumar/m%201", matchEndpoint("Raj Kumar", "m 1"))
}
