package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultTranscribeLanguage = "en-US"

// Translate godoc
// @Summary      텍스트 번역
// @Description  Gemini 텍스트 모델로 문장을 번역합니다. 원문이 영어면 러시아어로, 그 외에는 영어로 번역합니다.
// @Tags         Speech
// @Accept       json
// @Produce      json
// @Param        request body handler.TranslateRequest true "번역할 텍스트"
// @Success      200 {object} handler.TranslateResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      502 {object} handler.ErrorResponse "모델 호출 실패"
// @Failure      503 {object} handler.ErrorResponse "번역 미설정"
// @Router       /translate [post]
func (h *Handler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}
	if h.translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Translation is not configured"})
		return
	}

	out, err := h.translator.Translate(c.Request.Context(), req.Text, req.FromLang)
	if err != nil {
		h.logger.Errorf("Translate(): %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Translation failed"})
		return
	}
	c.JSON(http.StatusOK, TranslateResponse{Translated: out})
}

// Transcribe godoc
// @Summary      음성 인식
// @Description  base64로 인코딩된 PCM16(16kHz, mono) 오디오를 Cloud Speech-to-Text로 받아씁니다.
// @Tags         Speech
// @Accept       json
// @Produce      json
// @Param        request body handler.TranscribeRequest true "오디오 데이터"
// @Success      200 {object} handler.TranscribeResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      502 {object} handler.ErrorResponse "STT 호출 실패"
// @Failure      503 {object} handler.ErrorResponse "STT 미설정"
// @Router       /transcribe [post]
func (h *Handler) Transcribe(c *gin.Context) {
	var req TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	pcm, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil || len(pcm) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio data must be non-empty base64"})
		return
	}
	if h.transcriber == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Transcription is not configured"})
		return
	}

	language := req.Language
	if language == "" {
		language = defaultTranscribeLanguage
	}
	transcript, err := h.transcriber.Transcribe(c.Request.Context(), pcm, language)
	if err != nil {
		h.logger.Errorf("Transcribe(): %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Transcription failed"})
		return
	}
	c.JSON(http.StatusOK, TranscribeResponse{Transcript: transcript})
}
