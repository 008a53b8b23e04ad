package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondConflict_Retryable(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"занято","retryable":true}`, rec.Body.String())
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "a", dst.Name)
}

func TestQueryInt64List(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?serviceIds=3,%201,2", nil)
	ids, err := QueryInt64List(r, "serviceIds")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	ids, err = QueryInt64List(r, "serviceIds")
	require.NoError(t, err)
	assert.Empty(t, ids)

	r = httptest.NewRequest(http.MethodGet, "/?serviceIds=1,x", nil)
	_, err = QueryInt64List(r, "serviceIds")
	assert.Error(t, err)
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"unitId": "12"})
	id, err := PathInt64(r, "unitId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"unitId": "-1"})
	_, err = PathInt64(r, "unitId")
	assert.Error(t, err)
}
