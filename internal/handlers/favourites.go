package handlers

import (
	"context"
	"net/http"
	"strconv"

	"archivio/internal/logger"
	"archivio/internal/services"
	helpers "archivio/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type FavouritesHandler struct {
	favService *services.FavouritesService
}

func NewFavouritesHandler(favService *services.FavouritesService) *FavouritesHandler {
	return &FavouritesHandler{favService: favService}
}

// AddDocument godoc
// @Summary Добавить документ в избранное
// @Tags favourites
// @Security ApiKeyAuth
// @Param id path int true "ID документа"
// @Success 200 {string} string "Добавлено"
// @Router /api/favourites/documents/{id} [post]
func (h *FavouritesHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.favService.AddDocument, "Документ добавлен в избранное")
}

// RemoveDocument godoc
// @Summary Убрать документ из избранного
// @Tags favourites
// @Security ApiKeyAuth
// @Param id path int true "ID документа"
// @Success 200 {string} string "Убрано"
// @Router /api/favourites/documents/{id} [delete]
func (h *FavouritesHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.favService.RemoveDocument, "Документ убран из избранного")
}

// AddCollection godoc
// @Summary Добавить коллекцию в избранное
// @Tags favourites
// @Security ApiKeyAuth
// @Param id path int true "ID коллекции"
// @Success 200 {string} string "Добавлено"
// @Router /api/favourites/collections/{id} [post]
func (h *FavouritesHandler) AddCollection(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.favService.AddCollection, "Коллекция добавлена в избранное")
}

// RemoveCollection godoc
// @Summary Убрать коллекцию из избранного
// @Tags favourites
// @Security ApiKeyAuth
// @Param id path int true "ID коллекции"
// @Success 200 {string} string "Убрано"
// @Router /api/favourites/collections/{id} [delete]
func (h *FavouritesHandler) RemoveCollection(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.favService.RemoveCollection, "Коллекция убрана из избранного")
}

func (h *FavouritesHandler) toggle(
	w http.ResponseWriter,
	r *http.Request,
	call func(ctx context.Context, userID, targetID int) error,
	message string,
) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	targetID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	if err := call(r.Context(), userID, targetID); err != nil {
		logger.Log.Warn("Ошибка изменения избранного", zap.Error(err), zap.Int("target_id", targetID))
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, message)
}

// Documents godoc
// @Summary Избранные документы
// @Tags favourites
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Document
// @Router /api/favourites/documents [get]
func (h *FavouritesHandler) Documents(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	docs, err := h.favService.Documents(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, docs)
}

// Collections godoc
// @Summary Избранные коллекции
// @Tags favourites
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Collection
// @Router /api/favourites/collections [get]
func (h *FavouritesHandler) Collections(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	collections, err := h.favService.Collections(r.Context(), userID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, collections)
}
