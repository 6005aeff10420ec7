package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"archivio/internal/config"
	"archivio/internal/logger"
	"archivio/internal/models"
	"archivio/internal/services"
	helpers "archivio/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	docService     *services.DocumentService
	publishService *services.PublishWorkflowService
}

func NewDocumentHandler(docService *services.DocumentService, publishService *services.PublishWorkflowService) *DocumentHandler {
	return &DocumentHandler{docService: docService, publishService: publishService}
}

type askPublicationRequest struct {
	Motivation string `json:"motivation"`
}

// CreateDocument godoc
// @Summary Создать документ (в статусе DRAFT)
// @Tags documents
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body services.CreateDocumentInput true "Данные документа"
// @Success 201 {object} models.Document
// @Failure 400 {string} string "Ошибка валидации"
// @Router /api/documents [post]
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	var input services.CreateDocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logger.Log.Warn("Невалидный JSON при создании документа", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	cfg, _ := config.LoadConfig()
	doc, err := h.docService.Create(r.Context(), userID, input, cfg.UploadDir)
	if err != nil {
		logger.Log.Error("Ошибка создания документа", zap.Error(err), zap.Int("user_id", userID))
		helpers.FromError(w, err)
		return
	}

	logger.Log.Info("Документ создан", zap.Int("document_id", doc.ID), zap.Int("user_id", userID))
	helpers.JSON(w, http.StatusCreated, doc)
}

// GetDocument godoc
// @Summary Получить документ по ID
// @Tags documents
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID документа"
// @Success 200 {object} models.Document
// @Failure 404 {string} string "Документ не найден"
// @Router /api/documents/{id} [get]
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	doc, err := h.docService.GetByID(r.Context(), id)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, doc)
}

// DeleteDocument godoc
// @Summary Удалить собственный документ
// @Tags documents
// @Security ApiKeyAuth
// @Param id path int true "ID документа"
// @Success 200 {string} string "Документ удалён"
// @Failure 403 {string} string "Доступ запрещён"
// @Failure 404 {string} string "Документ не найден"
// @Router /api/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	if err := h.docService.Delete(r.Context(), userID, id); err != nil {
		logger.Log.Warn("Ошибка удаления документа", zap.Error(err), zap.Int("document_id", id))
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Документ удалён", zap.Int("document_id", id), zap.Int("user_id", userID))
	helpers.JSON(w, http.StatusOK, "Документ удалён")
}

// OwnDocuments godoc
// @Summary Список собственных документов
// @Tags documents
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Document
// @Router /api/documents/my [get]
func (h *DocumentHandler) OwnDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	docs, err := h.docService.OwnDocuments(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, docs)
}

// PublishedDocuments godoc
// @Summary Список опубликованных документов
// @Tags documents
// @Produce json
// @Success 200 {array} models.Document
// @Router /documents [get]
func (h *DocumentHandler) PublishedDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docService.PublishedDocuments(r.Context())
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, docs)
}

// SearchDocuments godoc
// @Summary Поиск документов по фильтрам
// @Tags documents
// @Security ApiKeyAuth
// @Produce json
// @Param title query string false "Подстрока заголовка"
// @Param author_id query int false "ID автора"
// @Param format query string false "Формат (PDF, TXT, MIDI, MUSICXML)"
// @Param created_after query string false "Создан после (RFC3339)"
// @Param created_before query string false "Создан до (RFC3339)"
// @Param tags query string false "Теги через запятую"
// @Success 200 {array} models.Document
// @Router /api/documents/search [get]
func (h *DocumentHandler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := models.DocumentSearchCriteria{
		Title:  q.Get("title"),
		Format: models.DocumentFormat(q.Get("format")),
	}
	if raw := q.Get("author_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "Невалидный author_id")
			return
		}
		criteria.AuthorID = &id
	}
	if raw := q.Get("created_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "Невалидный created_after")
			return
		}
		criteria.CreatedAfter = &t
	}
	if raw := q.Get("created_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "Невалидный created_before")
			return
		}
		criteria.CreatedBefore = &t
	}
	if raw := q.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				criteria.Tags = append(criteria.Tags, tag)
			}
		}
	}

	docs, err := h.docService.Search(r.Context(), criteria)
	if err != nil {
		logger.Log.Error("Ошибка поиска документов", zap.Error(err))
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, docs)
}

// AskForPublication godoc
// @Summary Подать заявку на публикацию документа
// @Tags publish-requests
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID документа"
// @Param input body askPublicationRequest false "Мотивация"
// @Success 201 {object} models.PublishRequest
// @Failure 409 {string} string "Заявка уже подана"
// @Router /api/documents/{id}/publish-request [post]
func (h *DocumentHandler) AskForPublication(w http.ResponseWriter, r *http.Request) {
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

	var req askPublicationRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	pr, err := h.publishService.AskForPublication(r.Context(), userID, docID, req.Motivation)
	if err != nil {
		logger.Log.Warn("Ошибка подачи заявки на публикацию", zap.Error(err), zap.Int("document_id", docID))
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Заявка на публикацию подана", zap.Int("document_id", docID), zap.Int("user_id", userID))
	helpers.JSON(w, http.StatusCreated, pr)
}

// OwnPublishRequests godoc
// @Summary Заявки на публикацию текущего автора
// @Tags publish-requests
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.PublishRequest
// @Router /api/publish-requests/my [get]
func (h *DocumentHandler) OwnPublishRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	reqs, err := h.publishService.PublishRequestsByAuthor(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, reqs)
}
