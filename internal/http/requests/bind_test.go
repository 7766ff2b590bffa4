package requests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name *string `json:"name"`
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{name: "valid", body: `{"name":"Jane"}`, wantOK: true},
		{name: "empty object", body: `{}`, wantOK: true},
		{name: "empty body", body: ``},
		{name: "malformed", body: `{"name":`},
		{name: "unknown field", body: `{"nickname":"J"}`},
		{name: "wrong type", body: `{"name":5}`},
		{name: "trailing data", body: `{"name":"a"} {"name":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst payload
			ok := BindJSON(rec, req, &dst)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestBindOptionalJSON(t *testing.T) {
	t.Run("empty body leaves zero value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/", nil)
		rec := httptest.NewRecorder()

		var dst payload
		assert.True(t, BindOptionalJSON(rec, req, &dst))
		assert.Nil(t, dst.Name)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed is still rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"name":`))
		rec := httptest.NewRecorder()

		var dst payload
		assert.False(t, BindOptionalJSON(rec, req, &dst))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
