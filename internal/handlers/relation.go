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

type RelationHandler struct {
	relationService *services.RelationService
}

func NewRelationHandler(relationService *services.RelationService) *RelationHandler {
	return &RelationHandler{relationService: relationService}
}

type addRelationRequest struct {
	SourceID      int                 `json:"source_id"`
	DestinationID int                 `json:"destination_id"`
	Type          models.RelationType `json:"type"`
}

type updateRelationRequest struct {
	SourceID      int                 `json:"source_id"`
	DestinationID int                 `json:"destination_id"`
	Type          models.RelationType `json:"type"`
}

type confirmRelationRequest struct {
	SourceID      int  `json:"source_id"`
	DestinationID int  `json:"destination_id"`
	Confirmed     bool `json:"confirmed"`
}

// AddRelation godoc
// @Summary Создать связь между документами (source должен принадлежать автору)
// @Tags relations
// @Security ApiKeyAuth
// @Accept json
// @Param input body addRelationRequest true "Связь"
// @Success 201 {string} string "Связь создана"
// @Failure 409 {string} string "Связь уже существует"
// @Router /api/relations [post]
func (h *RelationHandler) AddRelation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	var req addRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := h.relationService.AddRelation(r.Context(), userID, req.SourceID, req.DestinationID, req.Type); err != nil {
		logger.Log.Warn("Ошибка создания связи", zap.Error(err),
			zap.Int("source_id", req.SourceID), zap.Int("destination_id", req.DestinationID))
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Связь создана",
		zap.Int("source_id", req.SourceID), zap.Int("destination_id", req.DestinationID), zap.String("type", string(req.Type)))
	helpers.JSON(w, http.StatusCreated, "Связь создана")
}

// RemoveRelation godoc
// @Summary Удалить связь между документами
// @Tags relations
// @Security ApiKeyAuth
// @Param source_id query int true "ID исходного документа"
// @Param destination_id query int true "ID целевого документа"
// @Success 200 {string} string "Связь удалена"
// @Router /api/relations [delete]
func (h *RelationHandler) RemoveRelation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	sourceID, err1 := strconv.Atoi(r.URL.Query().Get("source_id"))
	destinationID, err2 := strconv.Atoi(r.URL.Query().Get("destination_id"))
	if err1 != nil || err2 != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидные source_id/destination_id")
		return
	}
	if err := h.relationService.RemoveRelation(r.Context(), userID, sourceID, destinationID); err != nil {
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Связь удалена", zap.Int("source_id", sourceID), zap.Int("destination_id", destinationID))
	helpers.JSON(w, http.StatusOK, "Связь удалена")
}

// UpdateRelationType godoc
// @Summary Сменить тип связи
// @Tags relations
// @Security ApiKeyAuth
// @Accept json
// @Param input body updateRelationRequest true "Связь с новым типом"
// @Success 200 {string} string "Тип связи обновлён"
// @Router /api/relations [patch]
func (h *RelationHandler) UpdateRelationType(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	var req updateRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := h.relationService.UpdateRelationType(r.Context(), userID, req.SourceID, req.DestinationID, req.Type); err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, "Тип связи обновлён")
}

// ConfirmRelation godoc
// @Summary Подтвердить связь (только автор целевого документа)
// @Tags relations
// @Security ApiKeyAuth
// @Accept json
// @Param input body confirmRelationRequest true "Подтверждение"
// @Success 200 {string} string "Связь подтверждена"
// @Failure 403 {string} string "Доступ запрещён"
// @Router /api/relations/confirm [patch]
func (h *RelationHandler) ConfirmRelation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	var req confirmRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := h.relationService.ConfirmRelation(r.Context(), userID, req.SourceID, req.DestinationID, req.Confirmed); err != nil {
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Связь подтверждена",
		zap.Int("source_id", req.SourceID), zap.Int("destination_id", req.DestinationID), zap.Bool("confirmed", req.Confirmed))
	helpers.JSON(w, http.StatusOK, "Связь подтверждена")
}

// DocumentRelations godoc
// @Summary Связи документа (исходящие или входящие)
// @Tags relations
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID документа"
// @Param direction query string false "source (по умолчанию) или destination"
// @Param type query string false "Фильтр по типу связи"
// @Param confirmed query bool false "Только подтверждённые входящие"
// @Success 200 {array} models.DocumentRelation
// @Router /api/documents/{id}/relations [get]
func (h *RelationHandler) DocumentRelations(w http.ResponseWriter, r *http.Request) {
	docID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	q := r.URL.Query()
	relType := models.RelationType(q.Get("type"))

	var relations []*models.DocumentRelation
	switch {
	case q.Get("direction") == "destination" && q.Get("confirmed") != "":
		confirmed, perr := strconv.ParseBool(q.Get("confirmed"))
		if perr != nil {
			helpers.Error(w, http.StatusBadRequest, "Невалидный confirmed")
			return
		}
		relations, err = h.relationService.DestinationRelationsByConfirm(r.Context(), docID, confirmed)
	case q.Get("direction") == "destination":
		relations, err = h.relationService.DestinationRelations(r.Context(), docID, relType)
	default:
		relations, err = h.relationService.SourceRelations(r.Context(), docID, relType)
	}
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, relations)
}
