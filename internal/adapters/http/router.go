package http

import (
	"context"
	"net/http"

	"github.com/dkeye/roomkit/internal/adapters/credential"
	"github.com/dkeye/roomkit/internal/adapters/signal"
	"github.com/dkeye/roomkit/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

type credentialRequest struct {
	AppID  uint32 `json:"appId" binding:"required"`
	UserID string `json:"userId" binding:"required"`
}

// SetupRouter mounts the relay endpoint. Outside release mode it also signs
// credentials for any user, which is what local sessions log in with.
func SetupRouter(ctx context.Context, cfg *config.Config, ctl *signal.RelayWSController, signer *credential.Signer) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/ws/relay", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("request", c.GetString("request_id")).Msg("ws relay endpoint hit")
		ctl.HandleRelay(ctx, c)
	})

	if cfg.Mode != "release" && signer != nil {
		api.POST("/credential", func(c *gin.Context) {
			var req credentialRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			cred, err := signer.Issue(req.AppID, req.UserID)
			if err != nil {
				log.Error().Str("module", "adapters.http").Err(err).Msg("issue credential")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"credential": cred})
		})
	}

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Msg("router setup")
	return r
}
