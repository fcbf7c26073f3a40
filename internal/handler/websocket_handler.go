package handler

import (
	"context"
	"errors"
	"net/http"

	"VoiceChatRelay/internal/models"
	"VoiceChatRelay/internal/relay"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// base64 audio frames stay well below this
const maxClientMessageBytes = 1 << 20

const (
	endClientClosed      = "client_closed"
	endClientError       = "client_error"
	endUpstreamError     = "upstream_error"
	endHandshakeRejected = "handshake_rejected"
	endShutdown          = "shutdown"
	endInternalError     = "internal_error"
)

// ServeRelay godoc
// @Summary      실시간 음성 릴레이 WebSocket 연결
// @Description  클라이언트와 Gemini Live 세션 사이에서 오디오를 양방향으로 중계합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴으로 연결한 뒤,
// @Description  첫 메시지로 `{"type":"initialize","chat_id":"..."}`를 보내야 합니다 (chat_id 생략 시 "default").
// @Description  이후 `{"type":"audio","data":"<base64 PCM>"}` 또는 `{"type":"text","data":"..."}`를 보내고,
// @Description  서버는 `{"type":"audio","data":"<base64>"}`로 응답 음성을 보냅니다.
// @Tags         WebSocket (Relay)
// @Success      101 {string} string "101 Switching Protocols (WebSocket으로 프로토콜 전환 성공)"
// @Failure      400 {object} handler.ErrorResponse "WebSocket 업그레이드 실패"
// @Router       /ws [get]
func (h *Handler) ServeRelay(c *gin.Context) {
	h.live.Add(1)
	defer h.live.Done()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the request
		h.logger.Warnf("ServeRelay(): failed to upgrade to WebSocket from %s: %v", c.ClientIP(), err)
		return
	}
	conn.SetReadLimit(maxClientMessageBytes)

	session := relay.NewSession(conn, h.profiles, h.dial, h.logger)
	h.logger.Infof("ServeRelay(): connection %s from %s", session.ID(), c.ClientIP())

	// the request context ends on server shutdown, which tears the session down
	ctx := c.Request.Context()
	err = session.Run(ctx)
	if ctx.Err() != nil && !relay.IsClientGone(err) {
		err = ctx.Err()
	}
	h.recordSession(session.Summary(), err)
}

// recordSession stores sessions that got past the handshake.
func (h *Handler) recordSession(sum relay.Summary, err error) {
	if h.sessions == nil || sum.ChatID == "" {
		return
	}
	record := models.SessionRecord{
		ID:        sum.SessionID,
		ChatID:    sum.ChatID,
		StartedAt: sum.StartedAt,
		EndedAt:   sum.EndedAt,
		AudioIn:   sum.AudioIn,
		AudioOut:  sum.AudioOut,
		TextIn:    sum.TextIn,
		EndReason: endReason(err),
	}
	if err := h.sessions.CreateSessionRecord(record); err != nil {
		h.logger.Errorf("recordSession(): failed to store session %s: %v", sum.SessionID, err)
	}
}

func endReason(err error) string {
	var (
		herr *relay.HandshakeError
		uerr *relay.UpstreamStreamError
		cerr *relay.ClientTransportError
	)
	switch {
	case relay.IsClientGone(err):
		return endClientClosed
	case errors.Is(err, context.Canceled):
		return endShutdown
	case errors.As(err, &herr):
		return endHandshakeRejected
	case errors.As(err, &uerr):
		return endUpstreamError
	case errors.As(err, &cerr):
		return endClientError
	default:
		return endInternalError
	}
}
