package handler

import (
	"net/http"
	"strings"

	"VoiceChatRelay/internal/voice"

	"github.com/gin-gonic/gin"
)

const defaultPreviewText = "Hello! This is how I sound in a live conversation."

// ListVoices godoc
// @Summary      음성 카탈로그
// @Description  프로필에 지정될 수 있는 모든 음성을 이름순으로 반환합니다.
// @Tags         Voices
// @Produce      json
// @Success      200 {object} map[string][]voice.Voice "voices: [음성 배열]"
// @Router       /voices [get]
func (h *Handler) ListVoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"voices": voice.Catalog(), "default": voice.Default})
}

// PreviewVoice godoc
// @Summary      음성 미리듣기
// @Description  Cloud Text-to-Speech(Chirp3-HD)로 지정한 음성의 WAV 샘플을 합성합니다.
// @Tags         Voices
// @Produce      audio/wav
// @Param        name path  string true  "음성 이름 (예: Puck)"
// @Param        text query string false "읽을 문장"
// @Success      200 {file} file "WAV 오디오"
// @Failure      404 {object} handler.ErrorResponse "알 수 없는 음성"
// @Failure      502 {object} handler.ErrorResponse "TTS 호출 실패"
// @Failure      503 {object} handler.ErrorResponse "TTS 미설정"
// @Router       /voices/{name}/preview [get]
func (h *Handler) PreviewVoice(c *gin.Context) {
	v, ok := voice.GetVoice(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voice not found"})
		return
	}
	if h.previewer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Voice preview is not configured"})
		return
	}

	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		text = defaultPreviewText
	}

	audio, err := h.previewer.PreviewVoice(c.Request.Context(), v.Name, text)
	if err != nil {
		h.logger.Errorf("PreviewVoice(): synthesis failed for %s: %v", v.Name, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to synthesize preview"})
		return
	}
	c.Data(http.StatusOK, "audio/wav", audio)
}
