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

type AdminHandler struct {
	adminService *services.AdminService
	tagCatalog   *services.TagCatalogService
}

func NewAdminHandler(adminService *services.AdminService, tagCatalog *services.TagCatalogService) *AdminHandler {
	return &AdminHandler{adminService: adminService, tagCatalog: tagCatalog}
}

type moderatorRequest struct {
	IsModerator bool `json:"is_moderator"`
}

type seedTagRequest struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// GetUsers godoc
// @Summary Получить всех пользователей
// @Tags admin-users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {string} string "Доступ запрещён"
// @Router /api/admin/users [get]
func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	users, err := h.adminService.AllUsers(r.Context(), adminID)
	if err != nil {
		logger.Log.Error("Ошибка получения пользователей", zap.Error(err))
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, users)
}

// GetUserByID godoc
// @Summary Получить пользователя по ID
// @Tags admin-users
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} models.User
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/admin/users/{id} [get]
func (h *AdminHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	user, err := h.adminService.SearchUserByID(r.Context(), adminID, id)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}

// GetUserByEmail godoc
// @Summary Найти пользователя по email
// @Tags admin-users
// @Security ApiKeyAuth
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} models.User
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/admin/users/search [get]
func (h *AdminHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	email := r.URL.Query().Get("email")
	if email == "" {
		helpers.Error(w, http.StatusBadRequest, "Параметр email обязателен")
		return
	}
	user, err := h.adminService.SearchUserByEmail(r.Context(), adminID, email)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Удалить пользователя
// @Tags admin-users
// @Security ApiKeyAuth
// @Param id path int true "ID пользователя"
// @Success 200 {string} string "Пользователь удалён"
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	if err := h.adminService.RemoveUser(r.Context(), adminID, id); err != nil {
		logger.Log.Error("Ошибка удаления пользователя", zap.Error(err), zap.Int("user_id", id))
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Пользователь удалён", zap.Int("user_id", id), zap.Int("admin_id", adminID))
	helpers.JSON(w, http.StatusOK, "Пользователь удалён")
}

// SetModerator godoc
// @Summary Назначить или снять модератора
// @Tags admin-users
// @Security ApiKeyAuth
// @Accept json
// @Param id path int true "ID пользователя"
// @Param input body moderatorRequest true "Статус модератора"
// @Success 200 {string} string "Статус обновлён"
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/admin/users/{id}/moderator [patch]
func (h *AdminHandler) SetModerator(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	var req moderatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := h.adminService.SetModerator(r.Context(), adminID, id, req.IsModerator); err != nil {
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Статус модератора изменён",
		zap.Int("user_id", id), zap.Bool("is_moderator", req.IsModerator), zap.Int("admin_id", adminID))
	helpers.JSON(w, http.StatusOK, "Статус обновлён")
}

// GetDocuments godoc
// @Summary Все документы репозитория (с фильтрами)
// @Tags admin-documents
// @Security ApiKeyAuth
// @Produce json
// @Param author_id query int false "ID автора"
// @Param status query string false "Статус документа"
// @Param moderator_id query int false "ID одобрившего модератора"
// @Success 200 {array} models.Document
// @Failure 403 {string} string "Доступ запрещён"
// @Router /api/admin/documents [get]
func (h *AdminHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	q := r.URL.Query()
	var (
		docs []*models.Document
		err  error
	)
	switch {
	case q.Get("author_id") != "":
		var authorID int
		authorID, err = strconv.Atoi(q.Get("author_id"))
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "Невалидный author_id")
			return
		}
		docs, err = h.adminService.DocumentsByAuthor(r.Context(), adminID, authorID)
	case q.Get("status") != "":
		docs, err = h.adminService.DocumentsByStatus(r.Context(), adminID, models.DocumentStatus(q.Get("status")))
	case q.Get("moderator_id") != "":
		var moderatorID int
		moderatorID, err = strconv.Atoi(q.Get("moderator_id"))
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "Невалидный moderator_id")
			return
		}
		docs, err = h.adminService.DocumentsApprovedByModerator(r.Context(), adminID, moderatorID)
	default:
		docs, err = h.adminService.AllDocuments(r.Context(), adminID)
	}
	if err != nil {
		logger.Log.Error("Ошибка получения документов (admin)", zap.Error(err))
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, docs)
}

// GetCollections godoc
// @Summary Все коллекции
// @Tags admin-collections
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Collection
// @Router /api/admin/collections [get]
func (h *AdminHandler) GetCollections(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	collections, err := h.adminService.AllCollections(r.Context(), adminID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, collections)
}

// DeleteCollection godoc
// @Summary Удалить любую коллекцию
// @Tags admin-collections
// @Security ApiKeyAuth
// @Param id path int true "ID коллекции"
// @Success 200 {string} string "Коллекция удалена"
// @Router /api/admin/collections/{id} [delete]
func (h *AdminHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	if err := h.adminService.DeleteCollection(r.Context(), adminID, id); err != nil {
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Коллекция удалена (admin)", zap.Int("collection_id", id), zap.Int("admin_id", adminID))
	helpers.JSON(w, http.StatusOK, "Коллекция удалена")
}

// DeleteComment godoc
// @Summary Удалить любой комментарий
// @Tags admin-comments
// @Security ApiKeyAuth
// @Param id path int true "ID комментария"
// @Success 200 {string} string "Комментарий удалён"
// @Router /api/admin/comments/{id} [delete]
func (h *AdminHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	if err := h.adminService.RemoveComment(r.Context(), adminID, id); err != nil {
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Комментарий удалён (admin)", zap.Int("comment_id", id), zap.Int("admin_id", adminID))
	helpers.JSON(w, http.StatusOK, "Комментарий удалён")
}

// GetComments godoc
// @Summary Комментарии по автору или документу
// @Tags admin-comments
// @Security ApiKeyAuth
// @Produce json
// @Param author_id query int false "ID автора"
// @Param document_id query int false "ID документа"
// @Success 200 {array} models.Comment
// @Router /api/admin/comments [get]
func (h *AdminHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	q := r.URL.Query()
	var (
		comments []*models.Comment
		err      error
	)
	switch {
	case q.Get("author_id") != "":
		var authorID int
		authorID, err = strconv.Atoi(q.Get("author_id"))
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "Невалидный author_id")
			return
		}
		comments, err = h.adminService.CommentsByAuthor(r.Context(), adminID, authorID)
	case q.Get("document_id") != "":
		var documentID int
		documentID, err = strconv.Atoi(q.Get("document_id"))
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "Невалидный document_id")
			return
		}
		comments, err = h.adminService.CommentsByDocument(r.Context(), adminID, documentID)
	default:
		helpers.Error(w, http.StatusBadRequest, "Нужен author_id или document_id")
		return
	}
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, comments)
}

// SeedTag godoc
// @Summary Добавить тег в каталог напрямую
// @Tags admin-tags
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body seedTagRequest true "Тег"
// @Success 201 {object} models.Tag
// @Failure 409 {string} string "Тег уже существует"
// @Router /api/admin/tags [post]
func (h *AdminHandler) SeedTag(w http.ResponseWriter, r *http.Request) {
	var req seedTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	tag, err := h.tagCatalog.SeedTag(r.Context(), req.Label, req.Description)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Тег добавлен в каталог", zap.String("label", tag.Label))
	helpers.JSON(w, http.StatusCreated, tag)
}
