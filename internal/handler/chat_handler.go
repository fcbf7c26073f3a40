package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"VoiceChatRelay/internal/models"

	"github.com/gin-gonic/gin"
)

// chatListing marshals as a JSON object whose keys keep registry order.
type chatListing []models.ProfileSummary

func (l chatListing) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.ID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ListChats godoc
// @Summary      대화 프로필 목록
// @Description  저장된 모든 프로필(default 포함)을 id -> {prompt, voice, image_url} 형태로 반환합니다.
// @Tags         Chats
// @Produce      json
// @Success      200 {object} map[string]models.ProfileSummary
// @Router       /chats [get]
func (h *Handler) ListChats(c *gin.Context) {
	c.JSON(http.StatusOK, chatListing(h.profiles.List()))
}

// CreateChat godoc
// @Summary      대화 프로필 생성
// @Description  프롬프트로 음성을 추론하고 아바타 이미지를 생성한 뒤 프로필을 저장합니다.
// @Description  이미지 생성은 최대 약 1분이 걸릴 수 있으며, 실패해도 프로필은 생성됩니다 (image_url = "").
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        request body handler.CreateChatRequest true "프로필 프롬프트"
// @Success      200 {object} handler.CreateChatResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      429 {object} handler.ErrorResponse "요청 한도 초과"
// @Failure      500 {object} handler.ErrorResponse "저장 실패"
// @Router       /create_chat [post]
func (h *Handler) CreateChat(c *gin.Context) {
	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), req.Prompt)
	if err != nil {
		h.logger.Errorf("CreateChat(): failed to create profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save chat"})
		return
	}

	c.JSON(http.StatusOK, CreateChatResponse{
		ChatID:   profile.ID,
		Voice:    profile.Voice,
		ImageURL: profile.ImageURL,
	})
}

// DeleteChat godoc
// @Summary      대화 프로필 삭제
// @Description  프로필을 삭제합니다. 없는 id 또는 "default"는 success=false를 반환합니다.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        request body handler.DeleteChatRequest true "삭제할 chat_id"
// @Success      200 {object} handler.DeleteChatResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      500 {object} handler.ErrorResponse "저장 실패"
// @Router       /delete_chat [post]
func (h *Handler) DeleteChat(c *gin.Context) {
	var req DeleteChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ok, err := h.profiles.Delete(req.ChatID)
	if err != nil {
		h.logger.Errorf("DeleteChat(): failed to delete %s: %v", req.ChatID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save chats"})
		return
	}
	c.JSON(http.StatusOK, DeleteChatResponse{Success: ok})
}
