package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/admin-edit-comment/internal/i18n"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
)

// respondSuccess writes a success envelope
func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.Response{Success: true, Data: data})
}

// respondError writes a failure envelope with a translated message and stops the chain
func respondError(c *gin.Context, status int, key string) {
	p := i18n.FromContext(c.Request.Context())
	c.AbortWithStatusJSON(status, models.Response{
		Success: false,
		Data:    models.MessageData{Message: i18n.T(p, key)},
	})
}

// bindParams fills dst from a JSON body or from form values.
// JSON numbers are accepted wherever a string field is declared.
func bindParams(c *gin.Context, dst interface{}) error {
	if c.ContentType() != binding.MIMEJSON {
		return c.ShouldBindWith(dst, binding.Form)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	values := make(map[string][]string, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			values[key] = []string{s}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(value, &n); err == nil {
			values[key] = []string{n.String()}
		}
	}
	return binding.MapFormWithTag(dst, values, "json")
}

// actionParam reads the ajax action from the query string, the form or a JSON body.
// A JSON body is restored so bindParams can decode it afterwards.
func actionParam(c *gin.Context) (string, error) {
	if action := c.Query("action"); action != "" {
		return action, nil
	}
	if c.ContentType() != binding.MIMEJSON {
		return c.PostForm("action"), nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}

	var payload struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	return payload.Action, nil
}

// requestLogger returns the request-scoped logger tagged with the handler name
func requestLogger(c *gin.Context, base zerolog.Logger, handler string) *zerolog.Logger {
	l := logger.From(c.Request.Context(), base).With().Str("handler", handler).Logger()
	return &l
}
