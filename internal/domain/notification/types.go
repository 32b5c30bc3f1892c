package notification

type Type string

const (
	TicketCriado      Type = "ticket_criado"
	TicketAtribuido   Type = "ticket_atribuido"
	TicketAtualizado  Type = "ticket_atualizado"
	TicketComentario  Type = "ticket_comentario"
	TicketResolvido   Type = "ticket_resolvido"
	ClienteCriado     Type = "cliente_criado"
	ClienteAtualizado Type = "cliente_atualizado"
	PostCriado        Type = "post_criado"
	PostAtualizado    Type = "post_atualizado"
	ContatoNovo       Type = "contato_novo"
	UsuarioConvite    Type = "usuario_convite"
	Sistema           Type = "sistema"
)

var types = []Type{
	TicketCriado, TicketAtribuido, TicketAtualizado, TicketComentario, TicketResolvido,
	ClienteCriado, ClienteAtualizado,
	PostCriado, PostAtualizado,
	ContatoNovo, UsuarioConvite, Sistema,
}

func (t Type) Valid() bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}
