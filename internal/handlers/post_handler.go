package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/rootbits-api/internal/audit"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/notification"
	"github.com/BruksfildServices01/rootbits-api/internal/dto"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/httpresp"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/media"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/notify"
)

// MaxImagensAdicionais caps the gallery of a post.
const MaxImagensAdicionais = 10

type PostHandler struct {
	db     *gorm.DB
	notify *notify.Service
	audit  *audit.Dispatcher
	log    *logger.Logger
}

func NewPostHandler(db *gorm.DB, n *notify.Service, a *audit.Dispatcher, log *logger.Logger) *PostHandler {
	return &PostHandler{db: db, notify: n, audit: a, log: log}
}

type PostRequest struct {
	Titulo            *string           `json:"titulo"`
	Descricao         *string           `json:"descricao"`
	ImagemPrincipal   json.RawMessage   `json:"imagemPrincipal"`
	ImagensAdicionais []json.RawMessage `json:"imagensAdicionais"`
	Publicado         *bool             `json:"publicado"`
	Ordem             *int              `json:"ordem"`
	Tags              *dto.StringList   `json:"tags"`
	ClienteRef        *string           `json:"clienteRef"`
}

// ======================================================
// LIST (optional auth)
// ======================================================
func (h *PostHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Post{})
	if currentUser(c) == nil {
		q = q.Where("publicado = ?", true)
	} else if publicado := queryBool(c, "publicado"); publicado != nil {
		q = q.Where("publicado = ?", *publicado)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var posts []models.Post
	if err := withPostRefs(q).
		Order("ordem DESC").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&posts).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, posts, total, page)
}

// ======================================================
// GET (optional auth)
// ======================================================
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.find(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if !post.Publicado && currentUser(c) == nil {
		httperr.Respond(c, h.log, httperr.NotFound("Post não encontrado"))
		return
	}
	httpresp.OK(c, post)
}

// ======================================================
// CREATE
// ======================================================
func (h *PostHandler) Create(c *gin.Context) {
	var req PostRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	titulo := trimmed(req.Titulo)
	descricao := trimmed(req.Descricao)
	if titulo == "" || descricao == "" {
		fields := map[string]string{}
		if titulo == "" {
			fields["titulo"] = "campo obrigatório"
		}
		if descricao == "" {
			fields["descricao"] = "campo obrigatório"
		}
		httperr.Respond(c, h.log, httperr.Validation("Título e descrição obrigatórios", fields))
		return
	}

	principal, ok := media.Decode(req.ImagemPrincipal)
	if !ok {
		httperr.Respond(c, h.log, httperr.Validation(
			"Imagem principal obrigatória (envie em base64 ou data URL)",
			map[string]string{"imagemPrincipal": "campo obrigatório"},
		))
		return
	}

	ctx := c.Request.Context()

	post := models.Post{
		Titulo:          titulo,
		Descricao:       descricao,
		ImagemPrincipal: principal,
		AutorID:         actorID(c),
		Publicado:       req.Publicado == nil || *req.Publicado,
		Tags:            []string{},
	}
	if req.Ordem != nil {
		post.Ordem = *req.Ordem
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if req.ClienteRef != nil {
		ref, err := h.clientRef(ctx, *req.ClienteRef)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		post.ClienteRefID = ref
	}

	extras := media.DecodeAll(req.ImagensAdicionais, MaxImagensAdicionais)

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&post).Error; err != nil {
			return err
		}
		return insertPostImages(tx, post.ID, extras)
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.notify.Fire(ctx, notification.PostCriado, "Novo projeto",
		fmt.Sprintf("Projeto \"%s\" foi criado.", post.Titulo),
		notify.Options{
			Global:    true,
			Link:      "/posts/" + post.ID,
			Dados:     map[string]any{"postId": post.ID},
			CriadoPor: actorID(c),
		})

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "post_created",
		Entity:   "post",
		EntityID: post.ID,
		Metadata: map[string]int{"imagensAdicionais": len(extras)},
	})

	fresh, err := h.find(ctx, post.ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, fresh)
}

// ======================================================
// UPDATE
// ======================================================
func (h *PostHandler) Update(c *gin.Context) {
	var req PostRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ctx := c.Request.Context()

	post, err := h.find(ctx, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	columns := []string{"updated_at"}

	if req.Titulo != nil {
		if post.Titulo = trimmed(req.Titulo); post.Titulo == "" {
			httperr.Respond(c, h.log, httperr.Validation("", map[string]string{"titulo": "campo obrigatório"}))
			return
		}
		columns = append(columns, "titulo")
	}
	if req.Descricao != nil {
		if post.Descricao = trimmed(req.Descricao); post.Descricao == "" {
			httperr.Respond(c, h.log, httperr.Validation("", map[string]string{"descricao": "campo obrigatório"}))
			return
		}
		columns = append(columns, "descricao")
	}
	if img, ok := media.Decode(req.ImagemPrincipal); ok {
		post.ImagemPrincipal = img
		columns = append(columns, "imagem_principal_data", "imagem_principal_content_type")
	}
	if req.Publicado != nil {
		post.Publicado = *req.Publicado
		columns = append(columns, "publicado")
	}
	if req.Ordem != nil {
		post.Ordem = *req.Ordem
		columns = append(columns, "ordem")
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
		columns = append(columns, "tags")
	}
	if req.ClienteRef != nil {
		ref, err := h.clientRef(ctx, *req.ClienteRef)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		post.ClienteRefID = ref
		columns = append(columns, "cliente_ref_id")
	}

	replaceImages := req.ImagensAdicionais != nil
	extras := media.DecodeAll(req.ImagensAdicionais, MaxImagensAdicionais)

	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).Select(columns).Omit(clause.Associations).Updates(post).Error; err != nil {
			return err
		}
		if !replaceImages {
			return nil
		}
		if err := tx.Delete(&models.PostImage{}, "post_id = ?", post.ID).Error; err != nil {
			return err
		}
		return insertPostImages(tx, post.ID, extras)
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.notify.Fire(ctx, notification.PostAtualizado, "Projeto atualizado",
		fmt.Sprintf("Projeto \"%s\" foi atualizado.", post.Titulo),
		notify.Options{
			Global:    true,
			Link:      "/posts/" + post.ID,
			Dados:     map[string]any{"postId": post.ID},
			CriadoPor: actorID(c),
		})

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "post_updated",
		Entity:   "post",
		EntityID: post.ID,
		Metadata: map[string]any{"fields": columns[1:], "imagensSubstituidas": replaceImages},
	})

	fresh, err := h.find(ctx, post.ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, fresh)
}

// ======================================================
// DELETE
// ======================================================
func (h *PostHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.NotFound("Post não encontrado")
		}
		return tx.Delete(&models.PostImage{}, "post_id = ?", id).Error
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "post_deleted",
		Entity:   "post",
		EntityID: id,
	})

	httpresp.NoContent(c)
}

// ======================================================
// HELPERS
// ======================================================

func withPostRefs(q *gorm.DB) *gorm.DB {
	return q.
		Preload("ImagensAdicionais", func(db *gorm.DB) *gorm.DB {
			return db.Order("posicao ASC")
		}).
		Preload("Autor").
		Preload("ClienteRef")
}

func (h *PostHandler) find(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := withPostRefs(h.db.WithContext(ctx)).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("Post não encontrado")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// clientRef resolves an optional client reference. An empty id clears it.
func (h *PostHandler) clientRef(ctx context.Context, id string) (*string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	var count int64
	if err := h.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, httperr.Validation("", map[string]string{"clienteRef": "cliente não encontrado"})
	}
	return &id, nil
}

func insertPostImages(tx *gorm.DB, postID string, images []media.Image) error {
	if len(images) == 0 {
		return nil
	}
	rows := make([]models.PostImage, len(images))
	for i, img := range images {
		rows[i] = models.PostImage{PostID: postID, Posicao: i, Imagem: img}
	}
	return tx.Create(&rows).Error
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
