// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the centralized error handler: the single place
// where every failure (an operational apperr.AppError forwarded by a
// handler, or an unexpected fault including recovered panics) becomes an
// HTTP response. Handlers never write failure bodies themselves; they call
// c.Error(err) and abort, and this middleware renders the failure envelope
// after the chain unwinds.
//
// Envelope contract:
//
//	production, operational:  <own status> {"status":"fail"|"error","message":...}
//	production, unexpected:   500          {"status":"error","message":"Bir şeyler yanlış gitti!"}
//	development:              both branches additionally echo the error and
//	                          a stack trace for debugging
//
// The development relaxation is an explicit toggle (APP_ENV), not a default.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/modaselfie/go-mirror-backend/internal/apperr"
	"github.com/modaselfie/go-mirror-backend/internal/config"
)

// genericMessage is the only thing a production client learns about a
// non-operational error.
const genericMessage = "Bir şeyler yanlış gitti!"

// ErrorHandler returns the terminal error middleware. mode is
// config.EnvDevelopment or config.EnvProduction.
//
// It must be registered before Recovery() so that recovered panics (pushed
// into c.Errors) are still rendered. Each failed request is handled exactly
// once: if a handler already wrote a response body, the middleware only logs.
func ErrorHandler(mode string) gin.HandlerFunc {
	dev := mode == config.EnvDevelopment

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		ae := apperr.From(c.Errors.Last().Err)

		// Every error is logged once, with status, message, and stack.
		lg := LoggerFrom(c)
		ev := lg.Error().
			Int("status", ae.Code).
			Str("status_class", ae.Status()).
			Bool("operational", ae.Operational).
			Str("message", ae.Message)
		if ae.Err != nil {
			ev = ev.AnErr("cause", ae.Err)
		}
		ev.Msg("request failed")

		if c.Writer.Written() {
			return
		}

		if dev {
			c.JSON(ae.Code, gin.H{
				"status":  ae.Status(),
				"error":   ae,
				"message": ae.Message,
				"stack":   string(debug.Stack()),
			})
			return
		}

		if ae.Operational {
			c.JSON(ae.Code, gin.H{
				"status":  ae.Status(),
				"message": ae.Message,
			})
			return
		}

		// Programming or unknown fault: never leak details.
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  apperr.StatusError,
			"message": genericMessage,
		})
	}
}
