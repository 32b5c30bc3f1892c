package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/rootbits-api/internal/audit"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/client"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/notification"
	"github.com/BruksfildServices01/rootbits-api/internal/dto"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/httpresp"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/notify"
	"github.com/BruksfildServices01/rootbits-api/internal/validators"
)

type ClientHandler struct {
	db     *gorm.DB
	notify *notify.Service
	audit  *audit.Dispatcher
	log    *logger.Logger
}

func NewClientHandler(db *gorm.DB, n *notify.Service, a *audit.Dispatcher, log *logger.Logger) *ClientHandler {
	return &ClientHandler{db: db, notify: n, audit: a, log: log}
}

// ClientRequest serves create and update. Absent fields are left untouched on
// update.
type ClientRequest struct {
	Nome      *string `json:"nome"`
	Email     *string `json:"email"`
	Telefone  *string `json:"telefone"`
	Telefone2 *string `json:"telefone2"`
	Celular   *string `json:"celular"`
	WhatsApp  *string `json:"whatsapp"`
	Cargo     *string `json:"cargo"`

	NomeEmpresa   *string `json:"nomeEmpresa"`
	RazaoSocial   *string `json:"razaoSocial"`
	CNPJ          *string `json:"cnpj"`
	RamoAtividade *string `json:"ramoAtividade"`

	TipoSite              *string `json:"tipoSite"`
	InformacoesAdicionais *string `json:"informacoesAdicionais"`

	Preco              *decimal.Decimal `json:"preco"`
	PrecoPago          *decimal.Decimal `json:"precoPago"`
	ValorEntrada       *decimal.Decimal `json:"valorEntrada"`
	ValorParcelas      *decimal.Decimal `json:"valorParcelas"`
	FormaPagamento     *string          `json:"formaPagamento"`
	QuantidadeParcelas *int             `json:"quantidadeParcelas"`

	URLSite    *string `json:"urlSite"`
	Dominio    *string `json:"dominio"`
	Hospedagem *string `json:"hospedagem"`

	Status        *string `json:"status"`
	Etapa         *string `json:"etapa"`
	Probabilidade *int    `json:"probabilidade"`
	OrigemLead    *string `json:"origemLead"`

	DataContrato        *dto.Date `json:"dataContrato"`
	DataProposta        *dto.Date `json:"dataProposta"`
	DataFechamento      *dto.Date `json:"dataFechamento"`
	DataEntregaPrevista *dto.Date `json:"dataEntregaPrevista"`
	DataPrimeiroContato *dto.Date `json:"dataPrimeiroContato"`

	Vendedor    *string `json:"vendedor"`
	Responsavel *string `json:"responsavel"`

	Endereco *models.Endereco `json:"endereco"`

	Observacoes         *string `json:"observacoes"`
	ObservacoesInternas *string `json:"observacoesInternas"`
}

// ======================================================
// LIST
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Client{})

	if v := c.Query("status"); v != "" {
		q = q.Where("status = ?", v)
	}
	if v := c.Query("tipoSite"); v != "" {
		q = q.Where("tipo_site = ?", v)
	}
	if v := c.Query("vendedor"); v != "" {
		q = q.Where("vendedor_id = ?", v)
	}
	if v := c.Query("origemLead"); v != "" {
		q = q.Where("origem_lead = ?", v)
	}

	busca := strings.ToLower(strings.TrimSpace(c.Query("busca")))
	if busca != "" {
		like := containsPattern(busca)
		q = q.Where(
			"(LOWER(nome) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!' OR "+
				"LOWER(nome_empresa) LIKE ? ESCAPE '!' OR LOWER(cnpj) LIKE ? ESCAPE '!')",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var clients []models.Client
	if err := q.
		Preload("Vendedor").
		Preload("Responsavel").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&clients).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, clients, total, page)
}

// ======================================================
// GET
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	cl, err := h.find(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, cl)
}

// ======================================================
// CREATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	missing := map[string]string{}
	if req.Nome == nil || strings.TrimSpace(*req.Nome) == "" {
		missing["nome"] = "campo obrigatório"
	}
	if req.Email == nil || strings.TrimSpace(*req.Email) == "" {
		missing["email"] = "campo obrigatório"
	}
	if len(missing) > 0 {
		httperr.Respond(c, h.log, httperr.Validation("Nome e email obrigatórios", missing))
		return
	}

	cl := models.Client{
		TipoSite: client.DefaultTipoSite,
		Status:   client.DefaultStatus,
	}

	ctx := c.Request.Context()
	if err := h.apply(ctx, &cl, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.db.WithContext(ctx).Omit(clause.Associations).Create(&cl).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.notify.Fire(ctx, notification.ClienteCriado, "Novo cliente",
		fmt.Sprintf("Cliente \"%s\" foi cadastrado.", cl.Nome),
		notify.Options{
			Global:    true,
			Link:      "/clientes/" + cl.ID,
			Dados:     map[string]any{"clientId": cl.ID},
			CriadoPor: actorID(c),
		})

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "client_created",
		Entity:   "client",
		EntityID: cl.ID,
	})

	fresh, err := h.find(ctx, cl.ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, fresh)
}

// ======================================================
// UPDATE
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	var req ClientRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ctx := c.Request.Context()

	cl, err := h.find(ctx, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if req.Nome != nil && strings.TrimSpace(*req.Nome) == "" {
		httperr.Respond(c, h.log, httperr.Validation("", map[string]string{"nome": "campo obrigatório"}))
		return
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) == "" {
		httperr.Respond(c, h.log, httperr.Validation("", map[string]string{"email": "campo obrigatório"}))
		return
	}

	if err := h.apply(ctx, cl, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	cl.Vendedor = nil
	cl.Responsavel = nil
	if err := h.db.WithContext(ctx).Omit(clause.Associations).Save(cl).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.notify.Fire(ctx, notification.ClienteAtualizado, "Cliente atualizado",
		fmt.Sprintf("Cliente \"%s\" foi atualizado.", cl.Nome),
		notify.Options{
			Global:    true,
			Link:      "/clientes/" + cl.ID,
			Dados:     map[string]any{"clientId": cl.ID, "status": cl.Status},
			CriadoPor: actorID(c),
		})

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "client_updated",
		Entity:   "client",
		EntityID: cl.ID,
		Metadata: map[string]string{"status": cl.Status},
	})

	fresh, err := h.find(ctx, cl.ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, fresh)
}

// ======================================================
// DELETE
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		httperr.Respond(c, h.log, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, h.log, httperr.NotFound("Cliente não encontrado"))
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: id,
	})

	httpresp.NoContent(c)
}

// ======================================================
// ENUMERATIONS
// ======================================================
func (h *ClientHandler) TiposSite(c *gin.Context) {
	httpresp.OK(c, gin.H{"tipos": client.TiposSite})
}

func (h *ClientHandler) StatusVenda(c *gin.Context) {
	httpresp.OK(c, gin.H{"status": client.StatusVenda})
}

func (h *ClientHandler) FormasPagamento(c *gin.Context) {
	httpresp.OK(c, gin.H{"formas": client.FormasPagamento})
}

func (h *ClientHandler) OrigensLead(c *gin.Context) {
	httpresp.OK(c, gin.H{"origens": client.OrigensLead})
}

// ======================================================
// HELPERS
// ======================================================

func (h *ClientHandler) find(ctx context.Context, id string) (*models.Client, error) {
	var cl models.Client
	err := h.db.WithContext(ctx).
		Preload("Vendedor").
		Preload("Responsavel").
		First(&cl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("Cliente não encontrado")
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

// apply copies every present field of req onto cl, validating closed sets
// and user references.
func (h *ClientHandler) apply(ctx context.Context, cl *models.Client, req *ClientRequest) error {
	fields := map[string]string{}

	enum := func(dst *string, v *string, opts []client.Option, key string) {
		if v == nil {
			return
		}
		if *v == "" && key != "tipoSite" && key != "status" {
			*dst = ""
			return
		}
		if !client.Contains(opts, *v) {
			fields[key] = "valor inválido"
			return
		}
		*dst = *v
	}
	enum(&cl.TipoSite, req.TipoSite, client.TiposSite, "tipoSite")
	enum(&cl.Status, req.Status, client.StatusVenda, "status")
	enum(&cl.FormaPagamento, req.FormaPagamento, client.FormasPagamento, "formaPagamento")
	enum(&cl.OrigemLead, req.OrigemLead, client.OrigensLead, "origemLead")

	ref := func(dst **string, v *string, key string) {
		if v == nil {
			return
		}
		id := strings.TrimSpace(*v)
		if id == "" {
			*dst = nil
			return
		}
		ok, err := h.userExists(ctx, id)
		if err != nil || !ok {
			fields[key] = "usuário não encontrado"
			return
		}
		*dst = &id
	}
	ref(&cl.VendedorID, req.Vendedor, "vendedor")
	ref(&cl.ResponsavelID, req.Responsavel, "responsavel")

	if len(fields) > 0 {
		return httperr.Validation("", fields)
	}

	str := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	str(&cl.Nome, req.Nome)
	str(&cl.Telefone, req.Telefone)
	str(&cl.Telefone2, req.Telefone2)
	str(&cl.Celular, req.Celular)
	str(&cl.WhatsApp, req.WhatsApp)
	str(&cl.Cargo, req.Cargo)
	str(&cl.NomeEmpresa, req.NomeEmpresa)
	str(&cl.RazaoSocial, req.RazaoSocial)
	str(&cl.CNPJ, req.CNPJ)
	str(&cl.RamoAtividade, req.RamoAtividade)
	str(&cl.InformacoesAdicionais, req.InformacoesAdicionais)
	str(&cl.URLSite, req.URLSite)
	str(&cl.Dominio, req.Dominio)
	str(&cl.Hospedagem, req.Hospedagem)
	str(&cl.Etapa, req.Etapa)
	str(&cl.Observacoes, req.Observacoes)
	str(&cl.ObservacoesInternas, req.ObservacoesInternas)
	if req.Email != nil {
		cl.Email = validators.NormalizeEmail(*req.Email)
	}

	money := func(dst *decimal.NullDecimal, v *decimal.Decimal) {
		if v != nil {
			*dst = decimal.NewNullDecimal(v.Round(2))
		}
	}
	money(&cl.Preco, req.Preco)
	money(&cl.PrecoPago, req.PrecoPago)
	money(&cl.ValorEntrada, req.ValorEntrada)
	money(&cl.ValorParcelas, req.ValorParcelas)

	if req.QuantidadeParcelas != nil {
		n := *req.QuantidadeParcelas
		cl.QuantidadeParcelas = &n
	}
	if req.Probabilidade != nil {
		p := client.ClampProbabilidade(*req.Probabilidade)
		cl.Probabilidade = &p
	}

	date := func(dst **time.Time, v *dto.Date) {
		if v != nil {
			*dst = v.Ptr()
		}
	}
	date(&cl.DataContrato, req.DataContrato)
	date(&cl.DataProposta, req.DataProposta)
	date(&cl.DataFechamento, req.DataFechamento)
	date(&cl.DataEntregaPrevista, req.DataEntregaPrevista)
	date(&cl.DataPrimeiroContato, req.DataPrimeiroContato)

	if req.Endereco != nil {
		cl.Endereco = *req.Endereco
	}

	return nil
}

func (h *ClientHandler) userExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := h.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
