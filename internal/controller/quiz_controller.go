package controller

import (
	"anre_quiz_backend/internal/service"
	"anre_quiz_backend/internal/util"
	"anre_quiz_backend/pkg/monitoring"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

func blockParams(ctx *gin.Context) (string, uint, bool) {
	subjectID := ctx.Param("subject")
	blockNumber, err := strconv.Atoi(ctx.Param("block"))
	if err != nil || blockNumber < 1 {
		util.BadRequest(ctx, "invalid block number")
		return "", 0, false
	}
	return subjectID, uint(blockNumber), true
}

// @Summary Dashboard: all subjects, their blocks and the user's last attempts
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard [get]
func (c *QuizController) Dashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.Service.Dashboard(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// @Summary Questions of a block, without answers
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Param block path int true "block number"
// @Success 200 {object} util.Response
// @Router /api/subjects/{subject}/blocks/{block} [get]
func (c *QuizController) GetBlock(ctx *gin.Context) {
	subjectID, blockNumber, ok := blockParams(ctx)
	if !ok {
		return
	}

	questions, err := c.Service.BlockForTaking(subjectID, blockNumber)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) || errors.Is(err, util.ErrBlockNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"subject":     subjectID,
		"blockNumber": blockNumber,
		"questions":   questions,
	})
}

type SubmitRequest struct {
	// Answers maps qid to the chosen option key; blank questions are omitted.
	Answers map[uint]string `json:"answers"`
}

// @Summary Grade a block submission and record the attempt
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Param block path int true "block number"
// @Param body body SubmitRequest true "answers keyed by qid"
// @Success 201 {object} util.Response
// @Router /api/subjects/{subject}/blocks/{block}/submit [post]
func (c *QuizController) SubmitBlock(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subjectID, blockNumber, ok := blockParams(ctx)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, attempt, err := c.Service.SubmitBlock(user.UserID, subjectID, blockNumber, req.Answers)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) || errors.Is(err, util.ErrBlockNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	monitoring.BlockSubmissions.WithLabelValues(subjectID).Inc()

	util.Created(ctx, gin.H{
		"attempt": attempt,
		"outcome": outcome,
	})
}

// @Summary Attempt history for a block, newest first
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Param block path int true "block number"
// @Success 200 {object} util.Response
// @Router /api/subjects/{subject}/blocks/{block}/attempts [get]
func (c *QuizController) BlockHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subjectID, blockNumber, ok := blockParams(ctx)
	if !ok {
		return
	}

	attempts, err := c.Service.BlockHistory(user.UserID, subjectID, blockNumber)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary Newest attempts across all users
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page, 1-based"
// @Param limit query int false "page size, max 100"
// @Success 200 {object} util.Response
// @Router /api/admin/attempts [get]
func (c *QuizController) RecentAttempts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	attempts, total, err := c.Service.RecentAttempts(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"attempts": attempts, "total": total})
}
