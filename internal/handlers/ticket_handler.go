package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/rootbits-api/internal/domain/ticket"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/httpresp"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/media"
	ucTicket "github.com/BruksfildServices01/rootbits-api/internal/usecase/ticket"
)

type TicketHandler struct {
	repo      domain.Repository
	createUC  *ucTicket.CreateTicket
	updateUC  *ucTicket.UpdateTicket
	commentUC *ucTicket.AddComment
	deleteUC  *ucTicket.DeleteTicket
	log       *logger.Logger
}

func NewTicketHandler(
	repo domain.Repository,
	createUC *ucTicket.CreateTicket,
	updateUC *ucTicket.UpdateTicket,
	commentUC *ucTicket.AddComment,
	deleteUC *ucTicket.DeleteTicket,
	log *logger.Logger,
) *TicketHandler {
	return &TicketHandler{
		repo:      repo,
		createUC:  createUC,
		updateUC:  updateUC,
		commentUC: commentUC,
		deleteUC:  deleteUC,
		log:       log,
	}
}

// --------- Requests ---------

type CreateTicketRequest struct {
	Titulo      string            `json:"titulo"`
	Descricao   string            `json:"descricao"`
	Cliente     string            `json:"cliente"`
	Responsavel string            `json:"responsavel"`
	Prioridade  string            `json:"prioridade"`
	Tipo        string            `json:"tipo"`
	Anexos      []json.RawMessage `json:"anexos"`
}

type UpdateTicketRequest struct {
	Titulo      *string           `json:"titulo"`
	Descricao   *string           `json:"descricao"`
	Status      *string           `json:"status"`
	Responsavel *string           `json:"responsavel"`
	Prioridade  *string           `json:"prioridade"`
	Tipo        *string           `json:"tipo"`
	Anexos      []json.RawMessage `json:"anexos"`
}

type CommentRequest struct {
	Texto string `json:"texto"`
}

// --------- Handlers ---------

func (h *TicketHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)

	f := domain.Filter{
		Status:        c.Query("status"),
		ClienteID:     c.Query("cliente"),
		ResponsavelID: c.Query("responsavel"),
		Prioridade:    c.Query("prioridade"),
	}

	tickets, total, err := h.repo.List(c.Request.Context(), f, page.Limit, page.Offset())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, tickets, total, page)
}

func (h *TicketHandler) Get(c *gin.Context) {
	t, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req CreateTicketRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	t, err := h.createUC.Execute(c.Request.Context(), ucTicket.CreateInput{
		Titulo:        req.Titulo,
		Descricao:     req.Descricao,
		ClienteID:     req.Cliente,
		ResponsavelID: req.Responsavel,
		Prioridade:    req.Prioridade,
		Tipo:          req.Tipo,
		Anexos:        media.DecodeAllAttachments(req.Anexos, domain.MaxAnexos),
		ActorID:       actorID(c),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, t)
}

func (h *TicketHandler) Update(c *gin.Context) {
	var req UpdateTicketRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	t, err := h.updateUC.Execute(c.Request.Context(), ucTicket.UpdateInput{
		ID:            c.Param("id"),
		Titulo:        req.Titulo,
		Descricao:     req.Descricao,
		Status:        req.Status,
		ResponsavelID: req.Responsavel,
		Prioridade:    req.Prioridade,
		Tipo:          req.Tipo,
		Anexos:        media.DecodeAllAttachments(req.Anexos, domain.MaxAnexos),
		ActorID:       actorID(c),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, t)
}

func (h *TicketHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	t, err := h.commentUC.Execute(c.Request.Context(), c.Param("id"), actorID(c), req.Texto)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, t)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.deleteUC.Execute(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.NoContent(c)
}

// --------- Enumerations ---------

func (h *TicketHandler) Statuses(c *gin.Context) {
	httpresp.OK(c, gin.H{"status": domain.Statuses})
}

func (h *TicketHandler) Prioridades(c *gin.Context) {
	httpresp.OK(c, gin.H{"prioridades": domain.Prioridades})
}

func (h *TicketHandler) Tipos(c *gin.Context) {
	httpresp.OK(c, gin.H{"tipos": domain.Tipos})
}
