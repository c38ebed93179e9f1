package controller

import (
	"anre_quiz_backend/internal/service"
	"anre_quiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	Service *service.NoteService
}

func NewNoteController(svc *service.NoteService) *NoteController {
	return &NoteController{Service: svc}
}

// @Summary The caller's note on a block
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Param block path int true "block number"
// @Success 200 {object} util.Response
// @Router /api/subjects/{subject}/blocks/{block}/note [get]
func (c *NoteController) GetNote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subjectID, blockNumber, ok := blockParams(ctx)
	if !ok {
		return
	}

	note, err := c.Service.GetNote(user.UserID, subjectID, blockNumber)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, note)
}

type NoteRequest struct {
	Note string `json:"note"`
}

// @Summary Save the caller's note on a block
// @Tags notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param subject path string true "subject id"
// @Param block path int true "block number"
// @Param body body NoteRequest true "note text"
// @Success 200 {object} util.Response
// @Router /api/subjects/{subject}/blocks/{block}/note [put]
func (c *NoteController) SaveNote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subjectID, blockNumber, ok := blockParams(ctx)
	if !ok {
		return
	}

	var req NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.Service.SaveNote(user.UserID, subjectID, blockNumber, req.Note)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, note)
}

// @Summary All of the caller's notes
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/notes [get]
func (c *NoteController) ListNotes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	notes, err := c.Service.ListNotes(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, notes)
}
