package entity

import "time"

// User es un usuario del sistema. Role referencia al rol por nombre.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca en plano después de persistir
	FullName     string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Setting es un par clave/valor de configuración del negocio
// (nombre del local, moneda, cliente general, etc.).
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
