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

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type writeCommentRequest struct {
	Text string `json:"text"`
}

// WriteComment godoc
// @Summary Оставить комментарий к документу
// @Tags comments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID документа"
// @Param input body writeCommentRequest true "Текст комментария"
// @Success 201 {object} models.Comment
// @Failure 400 {string} string "Пустой комментарий"
// @Router /api/documents/{id}/comments [post]
func (h *CommentHandler) WriteComment(w http.ResponseWriter, r *http.Request) {
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
	var req writeCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	comment, err := h.commentService.WriteComment(r.Context(), userID, docID, req.Text)
	if err != nil {
		logger.Log.Warn("Ошибка создания комментария", zap.Error(err), zap.Int("document_id", docID))
		helpers.FromError(w, err)
		return
	}
	logger.Log.Info("Комментарий оставлен", zap.Int("comment_id", comment.ID), zap.Int("document_id", docID))
	helpers.JSON(w, http.StatusCreated, comment)
}

// DocumentComments godoc
// @Summary Комментарии документа
// @Tags comments
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID документа"
// @Success 200 {array} models.Comment
// @Router /api/documents/{id}/comments [get]
func (h *CommentHandler) DocumentComments(w http.ResponseWriter, r *http.Request) {
	docID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	comments, err := h.commentService.DocumentComments(r.Context(), docID)
	if err != nil {
		helpers.FromError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, comments)
}
