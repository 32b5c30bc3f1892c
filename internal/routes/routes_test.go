package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rootbits-api/internal/audit"
	"github.com/BruksfildServices01/rootbits-api/internal/auth"
	"github.com/BruksfildServices01/rootbits-api/internal/config"
	"github.com/BruksfildServices01/rootbits-api/internal/db/dbtest"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/access"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
)

const pngDataURL = "data:image/png;base64,iVBORw0KGgo="

func init() {
	gin.SetMode(gin.TestMode)
}

type server struct {
	db     *gorm.DB
	tokens *auth.Tokens
	audit  *audit.Dispatcher
	router *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := dbtest.New(t)

	cfg := &config.Config{
		App:  config.AppConfig{Name: "rootbits-api"},
		JWT:  config.JWTConfig{Secret: "secret", ExpiresIn: time.Hour},
		HTTP: config.HTTPConfig{CORSOrigin: "*", MaxBodyMB: 1},
	}

	dispatcher := audit.NewDispatcher(audit.New(db), logger.Nop())
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:       db,
		Config:   cfg,
		Log:      logger.Nop(),
		Audit:    dispatcher,
		Registry: prometheus.NewRegistry(),
	})

	return &server{
		db:     db,
		tokens: auth.NewTokens(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
		audit:  dispatcher,
		router: r,
	}
}

func (s *server) user(t *testing.T, role access.Role) (*models.User, string) {
	t.Helper()
	u := &models.User{
		Nome:      string(role),
		Email:     string(role) + "@rootbits.com.br",
		SenhaHash: "x",
		Role:      string(role),
		Ativo:     true,
	}
	require.NoError(t, s.db.Create(u).Error)
	token, err := s.tokens.Issue(u.ID)
	require.NoError(t, err)
	return u, token
}

func (s *server) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()
	var out httperr.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthAndIndex(t *testing.T) {
	s := newServer(t)

	for _, path := range []string{"/health", "/api/health", "/api"} {
		rec := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestLogin(t *testing.T) {
	s := newServer(t)

	hash, err := auth.HashPassword("segredo1")
	require.NoError(t, err)
	active := &models.User{Nome: "Ana", Email: "ana@rootbits.com.br", SenhaHash: hash, Role: "designer", Ativo: true}
	inactive := &models.User{Nome: "Bia", Email: "bia@rootbits.com.br", SenhaHash: hash, Role: "suporte", Ativo: false}
	require.NoError(t, s.db.Create(active).Error)
	require.NoError(t, s.db.Create(inactive).Error)

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": " ANA@rootbits.com.br", "senha": "segredo1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	usuario := body["usuario"].(map[string]any)
	assert.Equal(t, "designer", usuario["role"])
	assert.EqualValues(t, 60, usuario["nivel"])
	assert.NotContains(t, usuario, "senha")

	rec = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, active.ID, decode(t, rec)["id"])

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@rootbits.com.br", "senha": "errada"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", errorOf(t, rec).Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ninguem@rootbits.com.br", "senha": "segredo1"})
	assert.Equal(t, "invalid_credentials", errorOf(t, rec).Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "bia@rootbits.com.br", "senha": "segredo1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "inactive_account", errorOf(t, rec).Code)
}

func TestChangePassword(t *testing.T) {
	s := newServer(t)

	hash, err := auth.HashPassword("antiga1")
	require.NoError(t, err)
	u := &models.User{Nome: "Caio", Email: "caio@rootbits.com.br", SenhaHash: hash, Role: "suporte", Ativo: true}
	require.NoError(t, s.db.Create(u).Error)
	token, err := s.tokens.Issue(u.ID)
	require.NoError(t, err)

	rec := s.do(t, http.MethodPut, "/api/auth/alterar-senha", token, gin.H{"senhaAtual": "errada", "novaSenha": "nova123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/auth/alterar-senha", token, gin.H{"senhaAtual": "antiga1", "novaSenha": "nova123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "caio@rootbits.com.br", "senha": "nova123"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPermissionsAreEnforcedByRoutes(t *testing.T) {
	s := newServer(t)
	_, designer := s.user(t, access.RoleDesigner)
	_, vendedor := s.user(t, access.RoleVendedor)

	rec := s.do(t, http.MethodGet, "/api/clientes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/clientes/qualquer", designer, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorOf(t, rec).Code)

	rec = s.do(t, http.MethodPost, "/api/clientes", designer, gin.H{"nome": "X", "email": "x@x.com"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/posts", vendedor, gin.H{})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auditoria", vendedor, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/usuarios/roles", vendedor, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/clientes/tipos-site", designer, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["tipos"], 7)
}

func TestRoutePermissionMatrix(t *testing.T) {
	routes := []struct {
		method string
		path   string
		op     access.Operation
	}{
		{http.MethodGet, "/api/usuarios", access.UsersList},
		{http.MethodGet, "/api/usuarios/roles", access.UsersRoles},
		{http.MethodGet, "/api/usuarios/inexistente", access.UsersGet},
		{http.MethodPost, "/api/usuarios", access.UsersCreate},
		{http.MethodPut, "/api/usuarios/inexistente", access.UsersUpdate},
		{http.MethodDelete, "/api/usuarios/inexistente", access.UsersDelete},

		{http.MethodPost, "/api/posts", access.PostsCreate},
		{http.MethodPut, "/api/posts/inexistente", access.PostsUpdate},
		{http.MethodDelete, "/api/posts/inexistente", access.PostsDelete},

		{http.MethodGet, "/api/clientes", access.ClientsList},
		{http.MethodGet, "/api/clientes/inexistente", access.ClientsGet},
		{http.MethodPost, "/api/clientes", access.ClientsCreate},
		{http.MethodPut, "/api/clientes/inexistente", access.ClientsUpdate},
		{http.MethodDelete, "/api/clientes/inexistente", access.ClientsDelete},

		{http.MethodGet, "/api/chamados", access.TicketsList},
		{http.MethodGet, "/api/chamados/inexistente", access.TicketsGet},
		{http.MethodPost, "/api/chamados", access.TicketsCreate},
		{http.MethodPut, "/api/chamados/inexistente", access.TicketsUpdate},
		{http.MethodPost, "/api/chamados/inexistente/comentarios", access.TicketsComment},
		{http.MethodDelete, "/api/chamados/inexistente", access.TicketsDelete},

		{http.MethodGet, "/api/contatos", access.ContactsList},
		{http.MethodGet, "/api/contatos/inexistente", access.ContactsGet},
		{http.MethodPut, "/api/contatos/inexistente", access.ContactsUpdate},
		{http.MethodPut, "/api/contatos/inexistente/marcar-lido", access.ContactsMarkRead},
		{http.MethodPut, "/api/contatos/marcar-todos-lidos", access.ContactsMarkAllRead},
		{http.MethodGet, "/api/contatos/unread-count", access.ContactsUnreadCount},

		{http.MethodGet, "/api/auditoria", access.AuditList},
	}

	covered := map[access.Operation]bool{}
	for _, rt := range routes {
		covered[rt.op] = true
	}
	for _, op := range access.Operations() {
		assert.True(t, covered[op], "operation %s has no route in the matrix", op)
	}

	s := newServer(t)
	tokens := map[access.Role]string{}
	for _, info := range access.Roles() {
		_, tokens[info.Value] = s.user(t, info.Value)
	}

	for _, rt := range routes {
		for role, token := range tokens {
			var body any
			if rt.method != http.MethodGet && rt.method != http.MethodDelete {
				body = gin.H{}
			}
			rec := s.do(t, rt.method, rt.path, token, body)
			name := string(role) + " " + rt.method + " " + rt.path

			if access.Allowed(rt.op, role) {
				assert.NotEqual(t, http.StatusForbidden, rec.Code, name)
				assert.NotEqual(t, http.StatusUnauthorized, rec.Code, name)
				continue
			}
			assert.Equal(t, http.StatusForbidden, rec.Code, name)
			assert.Equal(t, "forbidden", errorOf(t, rec).Code, name)
		}
	}
}

func TestClientLifecycle(t *testing.T) {
	s := newServer(t)
	_, vendedor := s.user(t, access.RoleVendedor)
	_, admin := s.user(t, access.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/clientes", vendedor, gin.H{"nome": "Acme"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec).Fields, "email")

	rec = s.do(t, http.MethodPost, "/api/clientes", vendedor, gin.H{
		"nome":          "Acme",
		"email":         " CONTATO@acme.com ",
		"preco":         "1500.50",
		"probabilidade": 140,
		"dataProposta":  "2026-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	id := created["id"].(string)
	assert.Equal(t, "prospect", created["status"])
	assert.Equal(t, "institucional", created["tipoSite"])
	assert.Equal(t, "contato@acme.com", created["email"])
	assert.EqualValues(t, 100, created["probabilidade"])

	rec = s.do(t, http.MethodGet, "/api/clientes/"+id, vendedor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme", decode(t, rec)["nome"])

	rec = s.do(t, http.MethodPut, "/api/clientes/"+id, vendedor, gin.H{"status": "inexistente"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/clientes/"+id, vendedor, gin.H{"status": "fechado"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, "fechado", updated["status"])
	assert.Equal(t, "Acme", updated["nome"])

	var count int64
	require.NoError(t, s.db.Model(&models.Notification{}).
		Where("tipo = ? AND is_global = ?", "cliente_atualizado", true).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	rec = s.do(t, http.MethodGet, "/api/clientes?busca=acme&status=fechado", vendedor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)
	assert.EqualValues(t, 1, list["total"])
	assert.EqualValues(t, 20, list["limit"])

	rec = s.do(t, http.MethodDelete, "/api/clientes/"+id, admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/clientes/"+id, vendedor, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientSearchTreatsWildcardsLiterally(t *testing.T) {
	s := newServer(t)
	_, vendedor := s.user(t, access.RoleVendedor)

	for _, nome := range []string{"Axb Ltda", "A_b Ltda", "Cem Porcento"} {
		rec := s.do(t, http.MethodPost, "/api/clientes", vendedor, gin.H{
			"nome":  nome,
			"email": strings.ToLower(strings.ReplaceAll(nome, " ", "")) + "@cliente.com",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	cases := map[string]int{
		"a_b":  1,
		"%":    0,
		"ltda": 2,
		"_":    1,
	}
	for busca, want := range cases {
		rec := s.do(t, http.MethodGet, "/api/clientes?busca="+url.QueryEscape(busca), vendedor, nil)
		require.Equal(t, http.StatusOK, rec.Code, busca)
		assert.EqualValues(t, want, decode(t, rec)["total"], busca)
	}
}

func TestUsers(t *testing.T) {
	s := newServer(t)
	admin, token := s.user(t, access.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/usuarios", token, gin.H{"nome": "Novo", "email": "novo@rootbits.com.br", "senha": "123456"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "suporte", created["role"])
	assert.Equal(t, true, created["ativo"])

	rec = s.do(t, http.MethodPost, "/api/usuarios", token, gin.H{"nome": "Outro", "email": "NOVO@rootbits.com.br", "senha": "123456"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec).Fields, "email")

	rec = s.do(t, http.MethodPost, "/api/usuarios", token, gin.H{"nome": "Sem senha", "email": "s@rootbits.com.br"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec).Fields, "senha")

	rec = s.do(t, http.MethodPut, "/api/usuarios/"+created["id"].(string), token, gin.H{"role": "ceo", "ativo": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, "ceo", updated["role"])
	assert.EqualValues(t, 90, updated["nivel"])
	assert.Equal(t, false, updated["ativo"])

	rec = s.do(t, http.MethodDelete, "/api/usuarios/"+admin.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "self_delete_forbidden", errorOf(t, rec).Code)

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Where("id = ?", admin.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	rec = s.do(t, http.MethodDelete, "/api/usuarios/"+created["id"].(string), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	s.audit.Close()
	var actions []string
	require.NoError(t, s.db.Model(&models.AuditLog{}).Order("created_at ASC").Pluck("action", &actions).Error)
	assert.ElementsMatch(t, []string{"user_created", "user_updated", "user_deleted"}, actions)
}

func TestPostsImagesAndVisibility(t *testing.T) {
	s := newServer(t)
	_, designer := s.user(t, access.RoleDesigner)

	rec := s.do(t, http.MethodPost, "/api/posts", designer, gin.H{"titulo": "Site", "descricao": "Novo site"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec).Message, "Imagem principal")

	extras := make([]string, 12)
	for i := range extras {
		extras[i] = pngDataURL
	}
	rec = s.do(t, http.MethodPost, "/api/posts", designer, gin.H{
		"titulo":            "Site",
		"descricao":         "Novo site",
		"imagemPrincipal":   pngDataURL,
		"imagensAdicionais": extras,
		"tags":              "web, design",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode(t, rec)
	assert.Len(t, post["imagensAdicionais"], 10)
	assert.Equal(t, []any{"web", "design"}, post["tags"])
	assert.Equal(t, pngDataURL, post["imagemPrincipal"])

	var images int64
	require.NoError(t, s.db.Model(&models.PostImage{}).Count(&images).Error)
	assert.EqualValues(t, 10, images)

	rec = s.do(t, http.MethodPost, "/api/posts", designer, gin.H{
		"titulo":          "Rascunho",
		"descricao":       "Oculto",
		"imagemPrincipal": map[string]string{"data": "iVBORw0KGgo="},
		"publicado":       false,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	draftID := decode(t, rec)["id"].(string)

	rec = s.do(t, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["total"])

	rec = s.do(t, http.MethodGet, "/api/posts", designer, nil)
	assert.EqualValues(t, 2, decode(t, rec)["total"])

	rec = s.do(t, http.MethodGet, "/api/posts/"+draftID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/posts/"+post["id"].(string), designer, gin.H{
		"imagemPrincipal":   "não é imagem",
		"imagensAdicionais": []string{pngDataURL},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, pngDataURL, updated["imagemPrincipal"])
	assert.Len(t, updated["imagensAdicionais"], 1)
}

func TestTickets(t *testing.T) {
	s := newServer(t)
	_, suporte := s.user(t, access.RoleSuporte)

	rec := s.do(t, http.MethodPost, "/api/chamados", suporte, gin.H{"titulo": "Bug", "descricao": "Quebrou", "cliente": "inexistente"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", errorOf(t, rec).Code)

	var count int64
	require.NoError(t, s.db.Model(&models.Ticket{}).Count(&count).Error)
	assert.Zero(t, count)

	client := &models.Client{Nome: "Acme", Email: "acme@acme.com", TipoSite: "landing", Status: "ativo"}
	require.NoError(t, s.db.Create(client).Error)

	anexos := make([]gin.H, 6)
	for i := range anexos {
		anexos[i] = gin.H{"data": "iVBORw0KGgo=", "filename": "print.png"}
	}
	rec = s.do(t, http.MethodPost, "/api/chamados", suporte, gin.H{
		"titulo": "Bug", "descricao": "Quebrou", "cliente": client.ID, "anexos": anexos,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ticket := decode(t, rec)
	id := ticket["id"].(string)
	assert.Equal(t, "aberto", ticket["status"])
	assert.Len(t, ticket["anexos"], 5)

	rec = s.do(t, http.MethodPost, "/api/chamados/"+id+"/comentarios", suporte, gin.H{"texto": "Verificando"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, decode(t, rec)["comentarios"], 1)

	rec = s.do(t, http.MethodPut, "/api/chamados/"+id, suporte, gin.H{"status": "resolvido"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, decode(t, rec)["dataResolucao"])

	rec = s.do(t, http.MethodGet, "/api/chamados?status=resolvido", suporte, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["total"])

	rec = s.do(t, http.MethodDelete, "/api/chamados/"+id, suporte, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestContactsAndNotificationFeed(t *testing.T) {
	s := newServer(t)
	_, staff := s.user(t, access.RoleSuporte)

	rec := s.do(t, http.MethodPost, "/api/contatos", "", gin.H{"nome": "Visitante", "email": "V@x.com", "mensagem": "Olá"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.NotEmpty(t, created["id"])
	assert.Contains(t, created["mensagem"], "Mensagem enviada")

	rec = s.do(t, http.MethodPost, "/api/contatos", "", gin.H{"nome": "Visitante"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/contatos/unread-count", staff, nil)
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	rec = s.do(t, http.MethodPut, "/api/contatos/marcar-todos-lidos", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/contatos/unread-count", staff, nil)
	assert.EqualValues(t, 0, decode(t, rec)["count"])

	rec = s.do(t, http.MethodGet, "/api/notificacoes", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode(t, rec)
	assert.EqualValues(t, 1, feed["total"])
	assert.EqualValues(t, 30, feed["limit"])
	item := feed["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "contato_novo", item["tipo"])
	assert.Equal(t, false, item["lida"])

	rec = s.do(t, http.MethodPut, "/api/notificacoes/"+item["id"].(string)+"/marcar-lida", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/notificacoes/unread-count", staff, nil)
	assert.EqualValues(t, 0, decode(t, rec)["count"])

	rec = s.do(t, http.MethodPut, "/api/notificacoes/inexistente/marcar-lida", staff, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	s := newServer(t)

	payload := `{"nome":"x","email":"x@x.com","mensagem":"` + strings.Repeat("a", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contatos", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "payload_too_large", errorOf(t, rec).Code)
}
