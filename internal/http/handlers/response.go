// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response conventions shared by every endpoint.
// Exactly two JSON shapes leave this API:
//
//	success: {"status":"success","data":<payload>}
//	failure: {"status":"fail"|"error","message":<text>}
//
// Handlers only ever produce the success shape. Failures are forwarded to
// the centralized error middleware via forward(), which is the sole writer
// of failure envelopes ("fail" for 4xx, "error" for 5xx).
package handlers

import (
	"github.com/gin-gonic/gin"
)

// successEnvelope is the wire shape of every successful response.
type successEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// ok writes the success envelope with the given HTTP status.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, successEnvelope{Status: "success", Data: data})
}

// forward hands err to the error middleware and stops the chain. Handlers
// must not write failure bodies themselves.
func forward(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Forward is the exported variant of forward(), used by router fallbacks
// (NoRoute/NoMethod) so they emit the same envelope as everything else.
func Forward(c *gin.Context, err error) { forward(c, err) }
