package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var validate = validator.New()

// Context is passed to every Handler. Ctx carries request scoped values such
// as the authenticated claims.
type Context struct {
	*gin.Context
	Ctx context.Context

	log         zerolog.Logger
	queryErrors []string
	paramErrors []string
}

func NewContext(gc *gin.Context, log zerolog.Logger) *Context {
	return &Context{
		Context: gc,
		Ctx:     gc.Request.Context(),
		log:     log,
	}
}

// Respond writes data as JSON with the given status.
func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError writes err using the status it was classified with.
func (c *Context) RespondError(err error) error {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		c.log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("request failed")
	}

	c.AbortWithStatusJSON(status, map[string]interface{}{
		"status": false,
		"error":  err.Error(),
	})

	return nil
}

// BindFunc binds the request body into data and checks that the named fields
// are set.
func (c *Context) BindFunc(data interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(data); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	return RequireFields(data, requiredFields...)
}

// RequireFields reports the first named struct field of data that is empty.
func RequireFields(data interface{}, fields ...string) error {
	v := reflect.Indirect(reflect.ValueOf(data))
	if v.Kind() != reflect.Struct {
		return NewRequestError(errors.New("request must be a struct"), http.StatusInternalServerError)
	}

	var missing []string
	for _, name := range fields {
		sf, ok := v.Type().FieldByName(name)
		if !ok {
			return NewRequestError(errors.Errorf("unknown field %q", name), http.StatusInternalServerError)
		}
		if err := validate.Var(v.FieldByIndex(sf.Index).Interface(), "required"); err != nil {
			missing = append(missing, fieldName(sf))
		}
	}
	if len(missing) > 0 {
		return NewRequestError(errors.Errorf("%s required", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	return nil
}

func fieldName(sf reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		if name := strings.Split(sf.Tag.Get(tag), ",")[0]; name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}

// GetQueryFunc returns a pointer to the parsed query value, or nil when the
// key is absent. Parse failures are collected for ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, key string) interface{} {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s must be an integer", key))
			return nil
		}
		return &v
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s must be a boolean", key))
			return nil
		}
		return &v
	case reflect.String:
		return &raw
	}

	c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s has unsupported type", key))
	return nil
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrors) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.queryErrors, "; ")), http.StatusBadRequest)
}

// GetParam returns the path parameter converted to kind. The zero value is
// returned on failure and the failure is collected for ValidParam.
func (c *Context) GetParam(kind reflect.Kind, key string) interface{} {
	raw := c.Param(key)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.paramErrors = append(c.paramErrors, fmt.Sprintf("%s must be an integer", key))
			return 0
		}
		return v
	default:
		if raw == "" {
			c.paramErrors = append(c.paramErrors, fmt.Sprintf("%s is required", key))
		}
		return raw
	}
}

func (c *Context) ValidParam() error {
	if len(c.paramErrors) == 0 {
		return nil
	}
	return NewRequestError(errors.New(strings.Join(c.paramErrors, "; ")), http.StatusBadRequest)
}
