// Package web is a thin layer over gin that gives handlers an error-returning
// signature and a composable middleware chain.
package web

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler handles a single request. Returned errors are rendered by the App.
type Handler func(c *Context) error

// Middleware wraps a Handler with additional behaviour.
type Middleware func(Handler) Handler

// App is the entrypoint into the application and carries the gin engine.
type App struct {
	*gin.Engine
	log zerolog.Logger
	mw  []Middleware
}

// NewApp creates an App whose routes are all wrapped with mw.
func NewApp(log zerolog.Logger, mw ...Middleware) *App {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &App{
		Engine: engine,
		log:    log,
		mw:     mw,
	}
}

// Log returns the application logger.
func (a *App) Log() zerolog.Logger {
	return a.log
}

// Handle binds handler to method and path. Route middleware runs inside the
// application-wide middleware.
func (a *App) Handle(method, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(gc *gin.Context) {
		c := NewContext(gc, a.log)

		if err := handler(c); err != nil {
			a.log.Error().Err(err).Str("method", method).Str("path", path).Msg("unhandled error")
			_ = c.RespondError(err)
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.Handle("GET", path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.Handle("POST", path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.Handle("PUT", path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.Handle("PATCH", path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.Handle("DELETE", path, handler, mw...)
}

// wrapMiddleware applies mw so that the first element is the outermost call.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if h := mw[i]; h != nil {
			handler = h(handler)
		}
	}

	return handler
}
