package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("registro no encontrado")
	ErrInvalidCredentials = errors.New("correo o contraseña inválidos")
	ErrSocietyNotApproved = errors.New("la sociedad aún no ha sido aprobada")
	ErrDuplicate          = errors.New("registro duplicado")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrValidation         = errors.New("datos inválidos")
)
