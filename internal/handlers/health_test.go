package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name   string
		checks map[string]Check
		status int
		state  string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all up", map[string]Check{"mongo": ok, "redis": ok}, http.StatusOK, "ok"},
		{"redis down", map[string]Check{"mongo": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthz", Health(tc.checks))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.status, w.Code)
			body := decode[struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}](t, w)
			assert.Equal(t, tc.state, body.Status)
			assert.Len(t, body.Checks, len(tc.checks))
		})
	}
}
