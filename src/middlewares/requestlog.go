package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestLogger tags every request with a uuid and emits one structured
// line when it completes.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestId := uuid.NewString()
		ctx.Set("request_id", requestId)
		ctx.Header("X-Request-Id", requestId)
		start := time.Now()
		ctx.Next()
		log.Info().
			Str("request_id", requestId).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
