package models

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&Client{},
		&Ticket{},
		&TicketComment{},
		&TicketAttachment{},
		&Post{},
		&PostImage{},
		&Contact{},
		&Notification{},
		&NotificationRecipient{},
		&NotificationRead{},
		&AuditLog{},
	}
}
