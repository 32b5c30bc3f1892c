package access

// Role is a staff role. Levels are informational only; authorization is
// decided by the permission table, never by comparing levels.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCEO         Role = "ceo"
	RoleProgramador Role = "programador"
	RoleDesigner    Role = "designer"
	RoleVendedor    Role = "vendedor"
	RoleSuporte     Role = "suporte"
)

const DefaultRole = RoleSuporte

type RoleInfo struct {
	Value Role   `json:"value"`
	Label string `json:"label"`
	Nivel int    `json:"nivel"`
}

var roles = []RoleInfo{
	{RoleAdmin, "Administrador", 100},
	{RoleCEO, "CEO", 90},
	{RoleProgramador, "Programador", 70},
	{RoleDesigner, "Designer", 60},
	{RoleVendedor, "Vendedor", 50},
	{RoleSuporte, "Suporte", 40},
}

// Roles lists every role, highest level first.
func Roles() []RoleInfo {
	out := make([]RoleInfo, len(roles))
	copy(out, roles)
	return out
}

func (r Role) Valid() bool {
	_, ok := r.info()
	return ok
}

func (r Role) Level() int {
	info, _ := r.info()
	return info.Nivel
}

func (r Role) info() (RoleInfo, bool) {
	for _, info := range roles {
		if info.Value == r {
			return info, true
		}
	}
	return RoleInfo{}, false
}
