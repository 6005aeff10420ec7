package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"archivio/internal/logger"
	"archivio/internal/services"
	helpers "archivio/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type CollectionHandler struct {
	collectionService *services.CollectionService
}

func NewCollectionHandler(collectionService *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

type createCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCollection godoc
// @Summary Создать коллекцию
// @Tags collections
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body createCollectionRequest true "Коллекция"
// @Success 201 {object} models.Collection
// @Failure 400 {string} string "Ошибка валидации"
// @Router /api/collections [post]
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	collection, err := h.collectionService.CreateCollection(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		logger.Log.Warn("Ошибка создания коллекции", zap.Error(err), zap.Int("user_id", userID))
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Коллекция создана", zap.Int("collection_id", collection.ID), zap.Int("user_id", userID))
	helpers.JSON(w, http.StatusCreated, collection)
}

// DeleteCollection godoc
// @Summary Удалить собственную коллекцию
// @Tags collections
// @Security ApiKeyAuth
// @Param id path int true "ID коллекции"
// @Success 200 {string} string "Коллекция удалена"
// @Failure 403 {string} string "Доступ запрещён"
// @Router /api/collections/{id} [delete]
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
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
	if err := h.collectionService.DeleteCollection(r.Context(), userID, id); err != nil {
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Коллекция удалена", zap.Int("collection_id", id), zap.Int("user_id", userID))
	helpers.JSON(w, http.StatusOK, "Коллекция удалена")
}

// AddDocument godoc
// @Summary Добавить документ в коллекцию
// @Tags collections
// @Security ApiKeyAuth
// @Param id path int true "ID коллекции"
// @Param doc_id path int true "ID документа"
// @Success 200 {string} string "Документ добавлен"
// @Failure 409 {string} string "Документ уже в коллекции"
// @Router /api/collections/{id}/documents/{doc_id} [post]
func (h *CollectionHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	vars := mux.Vars(r)
	collectionID, err1 := strconv.Atoi(vars["id"])
	docID, err2 := strconv.Atoi(vars["doc_id"])
	if err1 != nil || err2 != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	if err := h.collectionService.AddDocumentToCollection(r.Context(), userID, docID, collectionID); err != nil {
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Документ добавлен в коллекцию", zap.Int("collection_id", collectionID), zap.Int("document_id", docID))
	helpers.JSON(w, http.StatusOK, "Документ добавлен")
}

// RemoveDocument godoc
// @Summary Убрать документ из коллекции
// @Tags collections
// @Security ApiKeyAuth
// @Param id path int true "ID коллекции"
// @Param doc_id path int true "ID документа"
// @Success 200 {string} string "Документ убран"
// @Router /api/collections/{id}/documents/{doc_id} [delete]
func (h *CollectionHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	vars := mux.Vars(r)
	collectionID, err1 := strconv.Atoi(vars["id"])
	docID, err2 := strconv.Atoi(vars["doc_id"])
	if err1 != nil || err2 != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	if err := h.collectionService.RemoveDocumentFromCollection(r.Context(), userID, docID, collectionID); err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, "Документ убран")
}

// OwnCollections godoc
// @Summary Коллекции текущего пользователя
// @Tags collections
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Collection
// @Router /api/collections/my [get]
func (h *CollectionHandler) OwnCollections(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	collections, err := h.collectionService.UserCollections(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, collections)
}

// CollectionDocuments godoc
// @Summary Документы коллекции
// @Tags collections
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID коллекции"
// @Success 200 {array} models.Document
// @Router /api/collections/{id}/documents [get]
func (h *CollectionHandler) CollectionDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	docs, err := h.collectionService.CollectionDocuments(r.Context(), id)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, docs)
}
