package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&User{},
		&Salon{},
		&SalonSettings{},
		&Staff{},
		&StaffAvailability{},
		&Service{},
		&Product{},
		&Appointment{},
		&AppointmentService{},
		&Cart{},
		&CartItem{},
		&Payment{},
		&Order{},
		&OrderItem{},
		&Loyalty{},
		&Review{},
		&Notification{},
		&Promotion{},
		&AuditLog{},
	}
}
