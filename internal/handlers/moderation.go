package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"archivio/internal/logger"
	"archivio/internal/models"
	"archivio/internal/services"
	helpers "archivio/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ModerationHandler — сторона модератора: очереди заявок и решения по ним.
type ModerationHandler struct {
	tagWorkflow     *services.TagWorkflowService
	publishWorkflow *services.PublishWorkflowService
}

func NewModerationHandler(tagWorkflow *services.TagWorkflowService, publishWorkflow *services.PublishWorkflowService) *ModerationHandler {
	return &ModerationHandler{tagWorkflow: tagWorkflow, publishWorkflow: publishWorkflow}
}

type decisionRequest struct {
	Decision models.RequestStatus `json:"decision"`
}

// PendingTagRequests godoc
// @Summary Очередь заявок на теги
// @Tags moderation
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.TagChangeRequest
// @Failure 403 {string} string "Доступ запрещён"
// @Router /api/moderation/tag-requests [get]
func (h *ModerationHandler) PendingTagRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	reqs, err := h.tagWorkflow.PendingTagRequests(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, reqs)
}

// DecideTagRequest godoc
// @Summary Решение по заявке на тег (APPROVED или REJECTED)
// @Tags moderation
// @Security ApiKeyAuth
// @Accept json
// @Param id path int true "ID заявки"
// @Param input body decisionRequest true "Решение"
// @Success 200 {string} string "Решение принято"
// @Failure 409 {string} string "Заявка уже рассмотрена"
// @Router /api/moderation/tag-requests/{id} [post]
func (h *ModerationHandler) DecideTagRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	requestID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	var body decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	if err := h.tagWorkflow.DecideTagRequest(r.Context(), userID, requestID, body.Decision); err != nil {
		logger.Log.Warn("Ошибка решения по заявке на тег",
			zap.Error(err), zap.Int("request_id", requestID), zap.Int("moderator_id", userID))
		helpers.FromError(w, err)
		return
	}

	logger.Log.Info("Решение по заявке на тег принято",
		zap.Int("request_id", requestID), zap.Int("moderator_id", userID), zap.String("decision", string(body.Decision)))
	helpers.JSON(w, http.StatusOK, "Решение принято")
}

// TagRequestHistory godoc
// @Summary Рассмотренные модератором заявки на теги
// @Tags moderation
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.TagChangeRequest
// @Router /api/moderation/tag-requests/history [get]
func (h *ModerationHandler) TagRequestHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	reqs, err := h.tagWorkflow.TagRequestHistory(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, reqs)
}

// PendingPublishRequests godoc
// @Summary Очередь заявок на публикацию
// @Tags moderation
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.PublishRequest
// @Failure 403 {string} string "Доступ запрещён"
// @Router /api/moderation/publish-requests [get]
func (h *ModerationHandler) PendingPublishRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	reqs, err := h.publishWorkflow.PendingPublishRequests(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, reqs)
}

// DecidePublishRequest godoc
// @Summary Решение по заявке на публикацию (по ID документа)
// @Tags moderation
// @Security ApiKeyAuth
// @Accept json
// @Param id path int true "ID документа"
// @Param input body decisionRequest true "Решение"
// @Success 200 {string} string "Решение принято"
// @Failure 409 {string} string "Ожидающей заявки нет"
// @Router /api/moderation/publish-requests/{id} [post]
func (h *ModerationHandler) DecidePublishRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	docID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	var body decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	if err := h.publishWorkflow.DecidePublishRequest(r.Context(), userID, docID, body.Decision); err != nil {
		logger.Log.Warn("Ошибка решения по заявке на публикацию",
			zap.Error(err), zap.Int("document_id", docID), zap.Int("moderator_id", userID))
		helpers.FromError(w, err)
		return
	}

	logger.Log.Info("Решение по заявке на публикацию принято",
		zap.Int("document_id", docID), zap.Int("moderator_id", userID), zap.String("decision", string(body.Decision)))
	helpers.JSON(w, http.StatusOK, "Решение принято")
}

// PublishRequestHistory godoc
// @Summary Рассмотренные модератором заявки на публикацию
// @Tags moderation
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.PublishRequest
// @Router /api/moderation/publish-requests/history [get]
func (h *ModerationHandler) PublishRequestHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	reqs, err := h.publishWorkflow.PublishRequestHistory(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, reqs)
}
