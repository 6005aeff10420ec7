package handlers

import (
	"context"
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

// TagRequestHandler — авторская сторона заявок на изменение тегов.
type TagRequestHandler struct {
	tagWorkflow *services.TagWorkflowService
	tagCatalog  *services.TagCatalogService
}

func NewTagRequestHandler(tagWorkflow *services.TagWorkflowService, tagCatalog *services.TagCatalogService) *TagRequestHandler {
	return &TagRequestHandler{tagWorkflow: tagWorkflow, tagCatalog: tagCatalog}
}

type tagChangeRequestBody struct {
	Label string `json:"label"`
}

// RequestAddExistingTag godoc
// @Summary Заявка на добавление существующего тега к документу
// @Tags tag-requests
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID документа"
// @Param input body tagChangeRequestBody true "Ярлык тега из каталога"
// @Success 201 {object} models.TagChangeRequest
// @Failure 404 {string} string "Тег не найден в каталоге"
// @Router /api/documents/{id}/tag-requests/add [post]
func (h *TagRequestHandler) RequestAddExistingTag(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.tagWorkflow.RequestAddExistingTag)
}

// RequestAddNewTag godoc
// @Summary Заявка на добавление нового тега (ярлык предлагает автор)
// @Tags tag-requests
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID документа"
// @Param input body tagChangeRequestBody true "Предлагаемый ярлык"
// @Success 201 {object} models.TagChangeRequest
// @Failure 409 {string} string "Такая заявка уже ожидает решения"
// @Router /api/documents/{id}/tag-requests/add-new [post]
func (h *TagRequestHandler) RequestAddNewTag(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.tagWorkflow.RequestAddNewTag)
}

// RequestRemoveTag godoc
// @Summary Заявка на снятие тега с документа
// @Tags tag-requests
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID документа"
// @Param input body tagChangeRequestBody true "Ярлык тега"
// @Success 201 {object} models.TagChangeRequest
// @Failure 404 {string} string "Тег не найден в каталоге"
// @Router /api/documents/{id}/tag-requests/remove [post]
func (h *TagRequestHandler) RequestRemoveTag(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.tagWorkflow.RequestRemoveTag)
}

func (h *TagRequestHandler) submit(
	w http.ResponseWriter,
	r *http.Request,
	call func(ctx context.Context, userID, docID int, label string) (*models.TagChangeRequest, error),
) {
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

	var body tagChangeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log.Warn("Невалидный JSON в заявке на тег", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	req, err := call(r.Context(), userID, docID, body.Label)
	if err != nil {
		logger.Log.Warn("Ошибка подачи заявки на тег", zap.Error(err), zap.Int("document_id", docID))
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Заявка на изменение тега подана",
		zap.Int("document_id", docID), zap.Int("user_id", userID), zap.Int("request_id", req.ID))
	helpers.JSON(w, http.StatusCreated, req)
}

// OwnTagRequests godoc
// @Summary Заявки на теги текущего автора
// @Tags tag-requests
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.TagChangeRequest
// @Router /api/tag-requests/my [get]
func (h *TagRequestHandler) OwnTagRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	reqs, err := h.tagWorkflow.TagRequestsByAuthor(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, reqs)
}

// DocumentTagRequests godoc
// @Summary Заявки на теги по конкретному документу (только автор документа)
// @Tags tag-requests
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID документа"
// @Success 200 {array} models.TagChangeRequest
// @Failure 403 {string} string "Доступ запрещён"
// @Router /api/documents/{id}/tag-requests [get]
func (h *TagRequestHandler) DocumentTagRequests(w http.ResponseWriter, r *http.Request) {
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
	reqs, err := h.tagWorkflow.TagRequestsByDocument(r.Context(), userID, docID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, reqs)
}

// AllTags godoc
// @Summary Каталог тегов
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (h *TagRequestHandler) AllTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagCatalog.AllTags(r.Context())
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, tags)
}
