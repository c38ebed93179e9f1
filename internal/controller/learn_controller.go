package controller

import (
	"anre_quiz_backend/internal/service"
	"anre_quiz_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// LearnController serves the public, indexable learn surface. No auth.
type LearnController struct {
	Learn *service.LearnService
}

func NewLearnController(learn *service.LearnService) *LearnController {
	return &LearnController{Learn: learn}
}

// @Summary Public list of subjects
// @Tags learn
// @Produce json
// @Success 200 {object} util.Response
// @Router /learn [get]
func (c *LearnController) SubjectList(ctx *gin.Context) {
	page, err := c.Learn.SubjectList(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary Public subject page with its blocks
// @Tags learn
// @Produce json
// @Param subjectSlug path string true "subject slug"
// @Success 200 {object} util.Response
// @Router /learn/{subjectSlug} [get]
func (c *LearnController) SubjectDetail(ctx *gin.Context) {
	page, err := c.Learn.SubjectDetail(ctx.Request.Context(), ctx.Param("subjectSlug"))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary Public block page with its questions and answers
// @Tags learn
// @Produce json
// @Param subjectSlug path string true "subject slug"
// @Param blockSlug path string true "block slug"
// @Success 200 {object} util.Response
// @Router /learn/{subjectSlug}/{blockSlug} [get]
func (c *LearnController) BlockDetail(ctx *gin.Context) {
	page, err := c.Learn.BlockDetail(ctx.Request.Context(), ctx.Param("subjectSlug"), ctx.Param("blockSlug"))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) || errors.Is(err, util.ErrBlockNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary Public single-question page
// @Tags learn
// @Produce json
// @Param subjectSlug path string true "subject slug"
// @Param blockSlug path string true "block slug"
// @Param qid path int true "question id"
// @Success 200 {object} util.Response
// @Router /learn/{subjectSlug}/{blockSlug}/{qid} [get]
func (c *LearnController) QuestionDetail(ctx *gin.Context) {
	qid, err := strconv.Atoi(ctx.Param("qid"))
	if err != nil || qid < 1 {
		util.NotFound(ctx)
		return
	}

	page, err := c.Learn.QuestionDetail(ctx.Request.Context(), ctx.Param("subjectSlug"), ctx.Param("blockSlug"), uint(qid))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) || errors.Is(err, util.ErrBlockNotFound) || errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, page)
}
