package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultSessionLimit = 50
	maxSessionLimit     = 200
)

// ListSessions godoc
// @Summary      릴레이 세션 기록 조회
// @Description  종료된 릴레이 세션 목록을 최신순으로 반환합니다.
// @Tags         History
// @Produce      json
// @Param        chat_id query string false "특정 프로필로 필터링"
// @Param        limit   query int    false "최대 개수 (기본 50, 최대 200)"
// @Success      200 {object} handler.SessionsResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 limit"
// @Failure      500 {object} handler.ErrorResponse "DB 조회 실패"
// @Failure      503 {object} handler.ErrorResponse "세션 기록 미설정"
// @Router       /sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	if h.sessions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session history is not configured"})
		return
	}

	limit := defaultSessionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxSessionLimit)
	}

	records, err := h.sessions.ListSessions(c.Query("chat_id"), limit)
	if err != nil {
		h.logger.Errorf("ListSessions(): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, SessionsResponse{Sessions: records})
}
