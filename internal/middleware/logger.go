package middleware

import (
	"time"

	"github.com/rs/zerolog"

	"venue-allotment/backend/foundation/web"
)

// Logger writes one line per request.
func Logger(log zerolog.Logger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			start := time.Now()

			err := handler(c)

			status := c.Writer.Status()
			event := log.Info()
			if status >= 500 {
				event = log.Error()
			} else if status >= 400 {
				event = log.Warn()
			}
			event.Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote", c.ClientIP()).
				Msg("request")

			return err
		}

		return h
	}

	return m
}
