package api

import (
	"errors"
	"net/http"

	"github.com/admin-edit-comment/internal/i18n"
	"github.com/admin-edit-comment/internal/metrics"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/service"
	"github.com/admin-edit-comment/internal/validation"
	"github.com/admin-edit-comment/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Actions accepted by the ajax endpoint. The aec_ names are what the
// editing screen sends; the short names remain accepted.
const (
	ActionInsertComment = "aec_insert_comment"
	ActionDeleteComment = "aec_delete_comment"

	actionInsertShort = "insert_comment"
	actionDeleteShort = "delete_comment"
)

const (
	opInsert   = "insert"
	opDelete   = "delete"
	opDispatch = "dispatch"
)

// CommentHandler handles comment box endpoints
type CommentHandler struct {
	services *service.Services
	renderer view.Renderer
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, renderer view.Renderer, m *metrics.Metrics, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		renderer: renderer,
		metrics:  m,
		log:      log,
	}
}

// Insert handles POST /v1/comments/insert
func (h *CommentHandler) Insert(c *gin.Context) {
	var req models.InsertCommentRequest
	if err := bindParams(c, &req); err != nil {
		h.fail(c, opInsert, metrics.ResultMissingParam, http.StatusBadRequest, i18n.MsgInsertMissingParam)
		return
	}

	parentID, errs := validation.ValidateInsertRequest(&req)
	if len(errs) > 0 {
		h.fail(c, opInsert, metrics.ResultMissingParam, http.StatusBadRequest, i18n.MsgInsertMissingParam)
		return
	}

	ctx := c.Request.Context()
	user := currentUser(c)

	if _, err := h.services.Comment.Create(ctx, parentID, user, req.Comment); err != nil {
		switch {
		case errors.Is(err, service.ErrLimitExceeded):
			h.fail(c, opInsert, metrics.ResultLimit, http.StatusConflict, i18n.MsgLimitExceeded)
		case errors.Is(err, service.ErrValidation):
			h.fail(c, opInsert, metrics.ResultRefused, http.StatusUnprocessableEntity, i18n.MsgInsertRefused)
		default:
			h.requestLog(c).Error().Err(err).Int64("parent_id", parentID).Msg("Failed to insert comment")
			h.fail(c, opInsert, metrics.ResultError, http.StatusInternalServerError, i18n.MsgInsertRefused)
		}
		return
	}

	h.metrics.RecordCommentOperation(opInsert, metrics.ResultSuccess)
	h.respondFragment(c, parentID, user)
}

// Delete handles POST /v1/comments/delete
func (h *CommentHandler) Delete(c *gin.Context) {
	var req models.DeleteCommentRequest
	if err := bindParams(c, &req); err != nil {
		h.fail(c, opDelete, metrics.ResultMissingParam, http.StatusBadRequest, i18n.MsgDeleteMissingParam)
		return
	}

	parentID, commentID, errs := validation.ValidateDeleteRequest(&req)
	if len(errs) > 0 {
		h.fail(c, opDelete, metrics.ResultMissingParam, http.StatusBadRequest, i18n.MsgDeleteMissingParam)
		return
	}

	ctx := c.Request.Context()
	user := currentUser(c)

	if err := h.services.Comment.Delete(ctx, parentID, commentID, user); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.fail(c, opDelete, metrics.ResultNotFound, http.StatusNotFound, i18n.MsgDeleteFailed)
		case errors.Is(err, service.ErrForbidden):
			h.fail(c, opDelete, metrics.ResultForbidden, http.StatusForbidden, i18n.MsgDeleteForbidden)
		case errors.Is(err, service.ErrValidation):
			h.fail(c, opDelete, metrics.ResultMissingParam, http.StatusBadRequest, i18n.MsgDeleteMissingParam)
		default:
			h.requestLog(c).Error().Err(err).Int64("comment_id", commentID).Msg("Failed to delete comment")
			h.fail(c, opDelete, metrics.ResultError, http.StatusInternalServerError, i18n.MsgDeleteFailed)
		}
		return
	}

	h.metrics.RecordCommentOperation(opDelete, metrics.ResultSuccess)
	h.respondFragment(c, parentID, user)
}

// Dispatch handles POST /v1/ajax, routing on the action parameter
func (h *CommentHandler) Dispatch(c *gin.Context) {
	action, err := actionParam(c)
	if err != nil {
		h.fail(c, opDispatch, metrics.ResultMissingParam, http.StatusBadRequest, i18n.MsgUnknownAction)
		return
	}

	switch action {
	case ActionInsertComment, actionInsertShort:
		h.Insert(c)
	case ActionDeleteComment, actionDeleteShort:
		h.Delete(c)
	default:
		h.fail(c, opDispatch, metrics.ResultMissingParam, http.StatusBadRequest, i18n.MsgUnknownAction)
	}
}

// MetaBox handles GET /v1/posts/:post_id/comments
func (h *CommentHandler) MetaBox(c *gin.Context) {
	parentID, err := validation.ParseID("post_id", c.Param("post_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, i18n.MsgInsertMissingParam)
		return
	}

	ctx := c.Request.Context()
	user := currentUser(c)

	thread, err := h.services.Comment.Thread(ctx, parentID)
	if err != nil {
		if errors.Is(err, service.ErrParentNotFound) {
			respondError(c, http.StatusNotFound, i18n.MsgPostNotFound)
			return
		}
		h.requestLog(c).Error().Err(err).Int64("parent_id", parentID).Msg("Failed to load comments")
		respondError(c, http.StatusInternalServerError, i18n.MsgInternalError)
		return
	}

	enabled, err := h.services.Settings.IsEnabled(ctx, thread.SiteID, thread.ParentType)
	if err != nil {
		h.requestLog(c).Error().Err(err).Int64("site_id", thread.SiteID).Msg("Failed to read settings")
		respondError(c, http.StatusInternalServerError, i18n.MsgInternalError)
		return
	}

	data := models.MetaBoxData{
		Enabled:  enabled,
		Limit:    thread.Limit,
		Messages: i18n.ClientMessages(i18n.FromContext(ctx)),
	}
	if enabled {
		fragment, err := h.renderer.Render(ctx, parentID, user)
		if err != nil {
			h.requestLog(c).Error().Err(err).Int64("parent_id", parentID).Msg("Failed to render comments")
			respondError(c, http.StatusInternalServerError, i18n.MsgInternalError)
			return
		}
		data.Comments = fragment
	}

	respondSuccess(c, http.StatusOK, data)
}

// respondFragment answers a successful write with the refreshed comment list
func (h *CommentHandler) respondFragment(c *gin.Context, parentID int64, user *models.User) {
	fragment, err := h.renderer.Render(c.Request.Context(), parentID, user)
	if err != nil {
		h.requestLog(c).Error().Err(err).Int64("parent_id", parentID).Msg("Failed to render comments")
		respondError(c, http.StatusInternalServerError, i18n.MsgInternalError)
		return
	}
	respondSuccess(c, http.StatusOK, models.CommentsData{Comments: fragment})
}

func (h *CommentHandler) requestLog(c *gin.Context) *zerolog.Logger {
	return requestLogger(c, h.log, "comments")
}

func (h *CommentHandler) fail(c *gin.Context, operation, result string, status int, key string) {
	h.metrics.RecordCommentOperation(operation, result)
	respondError(c, status, key)
}
