package access

type Operation string

const (
	UsersList   Operation = "usuarios.list"
	UsersGet    Operation = "usuarios.get"
	UsersRoles  Operation = "usuarios.roles"
	UsersCreate Operation = "usuarios.create"
	UsersUpdate Operation = "usuarios.update"
	UsersDelete Operation = "usuarios.delete"

	PostsCreate Operation = "posts.create"
	PostsUpdate Operation = "posts.update"
	PostsDelete Operation = "posts.delete"

	ClientsList   Operation = "clientes.list"
	ClientsGet    Operation = "clientes.get"
	ClientsCreate Operation = "clientes.create"
	ClientsUpdate Operation = "clientes.update"
	ClientsDelete Operation = "clientes.delete"

	TicketsList    Operation = "chamados.list"
	TicketsGet     Operation = "chamados.get"
	TicketsCreate  Operation = "chamados.create"
	TicketsUpdate  Operation = "chamados.update"
	TicketsComment Operation = "chamados.comment"
	TicketsDelete  Operation = "chamados.delete"

	ContactsList        Operation = "contatos.list"
	ContactsGet         Operation = "contatos.get"
	ContactsUpdate      Operation = "contatos.update"
	ContactsMarkRead    Operation = "contatos.markRead"
	ContactsMarkAllRead Operation = "contatos.markAllRead"
	ContactsUnreadCount Operation = "contatos.unreadCount"

	AuditList Operation = "auditoria.list"
)

var (
	allStaff   = []Role{RoleAdmin, RoleCEO, RoleProgramador, RoleDesigner, RoleVendedor, RoleSuporte}
	management = []Role{RoleAdmin, RoleCEO}
	content    = []Role{RoleAdmin, RoleCEO, RoleProgramador, RoleDesigner}
	sales      = []Role{RoleAdmin, RoleCEO, RoleProgramador, RoleVendedor}
)

var permissions = map[Operation][]Role{
	UsersList:   allStaff,
	UsersGet:    allStaff,
	UsersRoles:  management,
	UsersCreate: management,
	UsersUpdate: management,
	UsersDelete: management,

	PostsCreate: content,
	PostsUpdate: content,
	PostsDelete: management,

	ClientsList:   allStaff,
	ClientsGet:    allStaff,
	ClientsCreate: sales,
	ClientsUpdate: sales,
	ClientsDelete: management,

	TicketsList:    allStaff,
	TicketsGet:     allStaff,
	TicketsCreate:  allStaff,
	TicketsUpdate:  allStaff,
	TicketsComment: allStaff,
	TicketsDelete:  management,

	ContactsList:        allStaff,
	ContactsGet:         allStaff,
	ContactsUpdate:      allStaff,
	ContactsMarkRead:    allStaff,
	ContactsMarkAllRead: allStaff,
	ContactsUnreadCount: allStaff,

	AuditList: management,
}

// Allowed reports whether role may perform op. Unknown operations are denied.
func Allowed(op Operation, role Role) bool {
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}

// RolesFor returns the roles allowed to perform op.
func RolesFor(op Operation) []Role {
	out := make([]Role, len(permissions[op]))
	copy(out, permissions[op])
	return out
}

// Operations lists every operation present in the table.
func Operations() []Operation {
	out := make([]Operation, 0, len(permissions))
	for op := range permissions {
		out = append(out, op)
	}
	return out
}
