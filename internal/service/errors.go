package service

import "errors"

// Common service errors
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned when a login/password pair matches no account
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCategoriaNotFound is returned when a category is not found
	ErrCategoriaNotFound = errors.New("categoria not found")

	// ErrCategoriaDuplicada is returned when a category name is already taken
	ErrCategoriaDuplicada = errors.New("categoria with this name already exists")

	// ErrEmpresaNotFound is returned when a company is not found
	ErrEmpresaNotFound = errors.New("empresa not found")

	// ErrTrocaNotFound is returned when an exchange is not found
	ErrTrocaNotFound = errors.New("troca not found")

	// ErrComunicacaoNotFound is returned when a communication is not found
	ErrComunicacaoNotFound = errors.New("comunicacao not found")

	// ErrEmpresaReferenciaInvalida is returned when a communication names a company that does not exist
	ErrEmpresaReferenciaInvalida = errors.New("referenced empresa does not exist")

	// ErrTrocaReferenciaInvalida is returned when a communication names an exchange that does not exist
	ErrTrocaReferenciaInvalida = errors.New("referenced troca does not exist")

	// ErrStatusTooLong is returned when an exchange status exceeds the column width
	ErrStatusTooLong = errors.New("status exceeds maximum length")
)

// nullIfEmpty maps an absent or empty optional string to nil
func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
