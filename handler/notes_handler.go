package handler

import (
	"errors"

	"notekeeper/model"
	"notekeeper/usecase"
	"notekeeper/utils"

	"github.com/gin-gonic/gin"
)

type NotesHandler struct {
	notesService *usecase.NotesService
}

func NewNotesHandler(notesService *usecase.NotesService) *NotesHandler {
	return &NotesHandler{notesService: notesService}
}

// Register mounts the note routes on group
func (h *NotesHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.ListNotes)
	group.GET("/:id", h.GetNote)
	group.POST("", h.CreateNote)
	group.PUT("/:id", h.UpdateNote)
	group.DELETE("/:id", h.DeleteNote)
}

func (h *NotesHandler) ListNotes(c *gin.Context) {
	notes, err := h.notesService.ListNotes(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, notes)
}

func (h *NotesHandler) GetNote(c *gin.Context) {
	note, err := h.notesService.GetNote(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNoteNotFound) {
		utils.NotFoundEmpty(c)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, note)
}

func (h *NotesHandler) CreateNote(c *gin.Context) {
	var draft model.NoteDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(usecase.MalformedBody())
		return
	}

	note, err := h.notesService.CreateNote(c.Request.Context(), draft)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, note)
}

func (h *NotesHandler) UpdateNote(c *gin.Context) {
	var update model.NoteUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(usecase.MalformedBody())
		return
	}

	note, err := h.notesService.UpdateNote(c.Request.Context(), c.Param("id"), update)
	if errors.Is(err, model.ErrNoteNotFound) {
		utils.NotFoundEmpty(c)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, note)
}

func (h *NotesHandler) DeleteNote(c *gin.Context) {
	if err := h.notesService.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	utils.NoContent(c)
}
