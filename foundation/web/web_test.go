package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type request struct {
	Name    *string `json:"name"`
	Count   *int    `json:"count"`
	Enabled bool    `json:"enabled"`
}

func TestRequireFields(t *testing.T) {
	name := "x"
	err := RequireFields(&request{Name: &name}, "Name", "Count")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Contains(t, err.Error(), "count")
	assert.NotContains(t, err.Error(), "name")

	count := 3
	assert.NoError(t, RequireFields(&request{Name: &name, Count: &count}, "Name", "Count"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusOf(NewRequestError(errors.New("dup"), http.StatusConflict)))
	assert.Equal(t, http.StatusConflict, StatusOf(errors.Wrap(NewRequestError(errors.New("dup"), http.StatusConflict), "outer")))
	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(errors.Wrap(context.DeadlineExceeded, "query")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestAppRespondError(t *testing.T) {
	app := NewApp(zerolog.Nop())

	var order []string
	mark := func(name string) Middleware {
		return func(h Handler) Handler {
			return func(c *Context) error {
				order = append(order, name)
				return h(c)
			}
		}
	}

	app.mw = []Middleware{mark("app")}
	app.Post("/items", func(c *Context) error {
		var req request
		if err := c.BindFunc(&req, "Name"); err != nil {
			return c.RespondError(err)
		}
		return c.Respond(map[string]interface{}{"status": true, "data": *req.Name}, http.StatusOK)
	}, mark("route"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"count":1}`))
	r.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"app", "route"}, order)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["status"])
	assert.Contains(t, body["error"], "name")

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"lab"}`))
	r.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":true,"data":"lab"}`, w.Body.String())
}

func TestContextQueryAndParam(t *testing.T) {
	app := NewApp(zerolog.Nop())
	app.Get("/things/:id", func(c *Context) error {
		id := c.GetParam(reflect.Int, "id")
		limit := c.GetQueryFunc(reflect.Int, "limit")
		if err := c.ValidParam(); err != nil {
			return c.RespondError(err)
		}
		if err := c.ValidQuery(); err != nil {
			return c.RespondError(err)
		}
		return c.Respond(map[string]interface{}{"id": id, "limit": limit}, http.StatusOK)
	})

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "id must be an integer")

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/4?limit=x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit must be an integer")

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/4?limit=10", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":4,"limit":10}`, w.Body.String())
}
