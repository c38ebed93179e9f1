package controller

import (
	"anre_quiz_backend/internal/model"
	"anre_quiz_backend/internal/service"
	"anre_quiz_backend/internal/util"
	"anre_quiz_backend/pkg/monitoring"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// EditorController exposes the collaborative edit workflow plus the
// import/export maintenance endpoints.
type EditorController struct {
	Editor  *service.EditorService
	Content *service.ContentService
}

func NewEditorController(editor *service.EditorService, content *service.ContentService) *EditorController {
	return &EditorController{Editor: editor, Content: content}
}

func questionParams(ctx *gin.Context) (string, uint, bool) {
	subjectID := ctx.Param("subject")
	qid, err := strconv.Atoi(ctx.Param("qid"))
	if err != nil || qid < 1 {
		util.BadRequest(ctx, "invalid question id")
		return "", 0, false
	}
	return subjectID, uint(qid), true
}

// @Summary A question with its current edit version token
// @Tags editor
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Param qid path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/subjects/{subject}/questions/{qid} [get]
func (c *EditorController) GetQuestion(ctx *gin.Context) {
	subjectID, qid, ok := questionParams(ctx)
	if !ok {
		return
	}

	q, version, err := c.Editor.GetQuestion(subjectID, qid)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) || errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"question": q, "version": version})
}

// @Summary Questions of a block with answers, for editing
// @Tags editor
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Param block path int true "block number"
// @Success 200 {object} util.Response
// @Router /api/subjects/{subject}/blocks/{block}/questions [get]
func (c *EditorController) ListBlockQuestions(ctx *gin.Context) {
	subjectID, block, ok := blockParams(ctx)
	if !ok {
		return
	}

	questions, err := c.Editor.Questions.ListByBlock(subjectID, block)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if len(questions) == 0 {
		util.NotFound(ctx)
		return
	}

	type entry struct {
		Question *model.Question `json:"question"`
		Version  string          `json:"version"`
	}
	entries := make([]entry, 0, len(questions))
	for i := range questions {
		entries = append(entries, entry{
			Question: &questions[i],
			Version:  service.FormatVersion(questions[i].EditedAt),
		})
	}
	util.Success(ctx, gin.H{"block": block, "questions": entries})
}

// @Summary Apply a collaborative edit to a question
// @Tags editor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Param qid path int true "question id"
// @Param body body service.EditRequest true "fields and version token"
// @Success 200 {object} util.Response
// @Router /api/subjects/{subject}/questions/{qid} [put]
func (c *EditorController) EditQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subjectID, qid, ok := questionParams(ctx)
	if !ok {
		return
	}

	var req service.EditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Editor.EditQuestion(subjectID, qid, user.UserID, user.Privileged(), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrStaleEdit):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrQuestionLocked):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrInvalidCorrectValue):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuestionEdits.WithLabelValues(subjectID).Inc()

	util.Success(ctx, gin.H{"question": q, "version": service.FormatVersion(q.EditedAt)})
}

// @Summary Import a subject's quiz_data JSON into the store
// @Tags editor
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Param skipExport query bool false "suppress the post-import export"
// @Success 200 {object} util.Response
// @Router /api/admin/subjects/{subject}/import [post]
func (c *EditorController) ImportSubject(ctx *gin.Context) {
	subjectID := ctx.Param("subject")
	opts := service.ImportOptions{
		SkipExport: ctx.Query("skipExport") == "true",
	}

	stats, err := c.Content.ImportSubject(subjectID, opts)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Import every subject's quiz_data JSON
// @Tags editor
// @Produce json
// @Security ApiKeyAuth
// @Param skipExport query bool false "suppress the post-import export"
// @Success 200 {object} util.Response
// @Router /api/admin/import [post]
func (c *EditorController) ImportAll(ctx *gin.Context) {
	opts := service.ImportOptions{
		SkipExport: ctx.Query("skipExport") == "true",
	}

	stats, err := c.Content.ImportAll(opts)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Export a subject from the store back into its JSON file
// @Tags editor
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Success 200 {object} util.Response
// @Router /api/admin/subjects/{subject}/export [post]
func (c *EditorController) ExportSubject(ctx *gin.Context) {
	subjectID := ctx.Param("subject")

	if err := c.Content.ExportSubject(subjectID); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
