package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/pkg/database"
	"realtime_chat_service/pkg/logger"
	"realtime_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const presignExpiry = 24 * time.Hour

// ChatHandler HTTP handlers for conversation and message routes
type ChatHandler struct {
	ConvUC    *ConversationUseCase
	MessageUC *SendMessageUseCase
	Media     *database.MinIOClient
}

// NewChatHandler create a ChatHandler
func NewChatHandler(convUC *ConversationUseCase, messageUC *SendMessageUseCase, media *database.MinIOClient) *ChatHandler {
	return &ChatHandler{
		ConvUC:    convUC,
		MessageUC: messageUC,
		Media:     media,
	}
}

// Conversations list the caller's conversations, populated with
// participant display info
func (h *ChatHandler) Conversations(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": fmt.Sprintf("c.Locals(%s) is nil", middlewares.TokenUserID)})
	}

	views, err := h.ConvUC.List(c.Context(), userID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "conversations": views})
}

// CreateOrGetConversation find-or-create a direct conversation with
// one other user. Safe to call repeatedly.
func (h *ChatHandler) CreateOrGetConversation(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": fmt.Sprintf("c.Locals(%s) is nil", middlewares.TokenUserID)})
	}

	type request struct {
		ParticipantID string `json:"participant_id"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request"})
	}

	view, err := h.ConvUC.CreateOrGet(c.Context(), userID, req.ParticipantID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "conversation": view})
}

// ConversationMessages page through one conversation's history
func (h *ChatHandler) ConversationMessages(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": fmt.Sprintf("c.Locals(%s) is nil", middlewares.TokenUserID)})
	}

	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "50"), 10, 64)
	if err != nil || limit < 1 || limit > 100 {
		limit = 50
	}

	msgs, total, err := h.MessageUC.GetMessages(c.Context(), userID, c.Params("id"), page, limit)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": msgs,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// DeleteMessage sender-only hard delete
func (h *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": fmt.Sprintf("c.Locals(%s) is nil", middlewares.TokenUserID)})
	}

	if err := h.MessageUC.DeleteMessage(c.Context(), userID, c.Params("id")); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "message deleted"})
}

// UploadMedia store an attachment and hand back the URL the client
// puts in the send event's media field
func (h *ChatHandler) UploadMedia(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": fmt.Sprintf("c.Locals(%s) is nil", middlewares.TokenUserID)})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "cannot open file"})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("%s/%s%s", userID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	if err := h.Media.UploadStream(c.Context(), objectName, file, fileHeader.Size, contentType); err != nil {
		logger.Log.Errorf("media upload err :", err, zap.String("userID", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "upload failed"})
	}

	mediaURL, err := h.Media.PresignGetURL(c.Context(), objectName, presignExpiry)
	if err != nil {
		logger.Log.Errorf("media presign err :", err, zap.String("object", objectName))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "upload failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"object":    objectName,
		"media_url": mediaURL,
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrContentRejected):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotParticipant), errors.Is(err, domain.ErrNotSender):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
