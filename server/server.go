// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

/*
Package server exposes huffhex encode and decode over HTTP.

	POST /api/v1/encode   {"text": "...", "map": "..."}  ->  {"data": "...", "map": "..."}
	POST /api/v1/decode   {"data": "...", "map": "..."}  ->  {"text": "..."}
	GET  /healthz

The map field of an encode request is optional; when present, text is packed with that code table instead
of one built from text.  Encoding parameters (absent=skip|fail) are taken from the query string.
*/
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/chimbosonic/huffhex/huffhex"
	"github.com/chimbosonic/huffhex/huffman"
)

var log = logging.MustGetLogger("huffhex/server")

type encodeReq struct {
	Text string  `json:"text"`
	Map  *string `json:"map"`
}

type decodeReq struct {
	Data string `json:"data"`
	Map  string `json:"map" binding:"required"`
}

type decodeResp struct {
	Text string `json:"text"`
}

// statusFor maps codec errors onto HTTP statuses: malformed payloads are the client's fault (400),
// well-formed payloads that do not go together are unprocessable (422).
func statusFor(err error) int {
	var pe *huffhex.ParameterError
	switch {
	case errors.As(err, &pe),
		errors.Is(err, huffman.ErrInvalidTransport),
		errors.Is(err, huffman.ErrInvalidMap):
		return http.StatusBadRequest
	case errors.Is(err, huffman.ErrUndecodable),
		errors.Is(err, huffman.ErrAbsentSymbol):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func queryParams(c *gin.Context) map[string]string {
	unparsed := make(map[string]string)
	for key, vals := range c.Request.URL.Query() {
		if len(vals) > 0 {
			unparsed[key] = vals[len(vals)-1]
		}
	}
	return unparsed
}

func encode(c *gin.Context) {
	opts, err := huffhex.ParseOptions(queryParams(c))
	if err != nil {
		fail(c, err)
		return
	}

	var req encodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var data huffhex.Huffdata
	if req.Map != nil {
		data, err = huffhex.EncodeWithMap(req.Text, *req.Map, opts)
	} else {
		data, err = huffhex.Encode(req.Text)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func decode(c *gin.Context) {
	var req decodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := huffhex.Decode(huffhex.Huffdata{Data: req.Data, Map: req.Map})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, decodeResp{text})
}

// requestLogger reports each request through go-logging instead of gin's own writer.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infof("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Register installs the routes on r.
func Register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/encode", encode)
		v1.POST("/decode", decode)
	}
}

// New returns an engine with all routes registered.
func New() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	Register(r)
	return r
}
