package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// idle per-IP limiters are dropped after this long
const limiterTTL = time.Hour

// NewRouter wires every endpoint. createChatPerMinute bounds /create_chat per
// client IP, since each call may start a paid image job.
func NewRouter(h *Handler, createChatPerMinute int) *gin.Engine {
	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	router.Use(cors.New(config))

	router.GET("/chats", h.ListChats)
	router.POST("/create_chat", createChatLimiter(createChatPerMinute), h.CreateChat)
	router.POST("/delete_chat", h.DeleteChat)
	router.GET("/ws", h.ServeRelay)

	router.GET("/voices", h.ListVoices)
	router.GET("/voices/:name/preview", h.PreviewVoice)
	router.POST("/translate", h.Translate)
	router.POST("/transcribe", h.Transcribe)
	router.GET("/sessions", h.ListSessions)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}

func createChatLimiter(perMinute int) gin.HandlerFunc {
	if perMinute < 1 {
		perMinute = 1
	}
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute), limiterTTL
		},
		func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		},
	)
}
