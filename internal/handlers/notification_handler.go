package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/httpresp"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/notify"
)

type NotificationHandler struct {
	notify *notify.Service
	log    *logger.Logger
}

func NewNotificationHandler(n *notify.Service, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notify: n, log: log}
}

// List returns the caller's feed, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	page := httpresp.ParsePageWithDefault(c, notify.DefaultListLimit)

	items, total, err := h.notify.List(c.Request.Context(), actorID(c), notify.ListFilter{
		Lida:   queryBool(c, "lida"),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, items, total, page)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notify.UnreadCount(c.Request.Context(), actorID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notify.MarkRead(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"mensagem": "Notificação marcada como lida"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	marked, err := h.notify.MarkAllRead(c.Request.Context(), actorID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"mensagem": "Todas marcadas como lidas", "marcadas": marked})
}
