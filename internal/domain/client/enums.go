package client

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var TiposSite = []Option{
	{"landing", "Landing Page"},
	{"institucional", "Site Institucional"},
	{"ecommerce", "E-commerce"},
	{"blog", "Blog"},
	{"sistema", "Sistema Web"},
	{"app", "Aplicativo"},
	{"outro", "Outro"},
}

var StatusVenda = []Option{
	{"prospect", "Prospect"},
	{"proposta_enviada", "Proposta Enviada"},
	{"negociacao", "Em Negociação"},
	{"fechado", "Fechado"},
	{"perdido", "Perdido"},
	{"ativo", "Ativo"},
	{"encerrado", "Encerrado"},
	{"inativo", "Inativo"},
}

var FormasPagamento = []Option{
	{"a_vista", "À Vista"},
	{"parcelado_2x", "Parcelado 2x"},
	{"parcelado_3x", "Parcelado 3x"},
	{"parcelado_4x", "Parcelado 4x"},
	{"parcelado_5x", "Parcelado 5x"},
	{"parcelado_6x", "Parcelado 6x"},
	{"parcelado_12x", "Parcelado 12x"},
	{"mensalidade", "Mensalidade"},
	{"combinado", "A Combinar"},
	{"outro", "Outro"},
}

var OrigensLead = []Option{
	{"indicacao", "Indicação"},
	{"google", "Google"},
	{"instagram", "Instagram"},
	{"facebook", "Facebook"},
	{"linkedin", "LinkedIn"},
	{"site", "Site"},
	{"whatsapp", "WhatsApp"},
	{"telefone", "Telefone"},
	{"email", "Email"},
	{"evento", "Evento"},
	{"outro", "Outro"},
}

const (
	DefaultTipoSite = "institucional"
	DefaultStatus   = "prospect"
)

func Contains(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// ClampProbabilidade keeps a win probability inside [0, 100].
func ClampProbabilidade(p int) int {
	return max(0, min(100, p))
}
