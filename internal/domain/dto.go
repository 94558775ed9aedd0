package domain

import "time"

// ErrorResponse is the error body returned by every endpoint
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is a confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}

// Category requests

type CreateCategoriaRequest struct {
	Nome      string  `json:"nome" validate:"required"`
	Descricao *string `json:"descricao"`
}

type UpdateCategoriaRequest struct {
	Nome      string  `json:"nome" validate:"required"`
	Descricao *string `json:"descricao"`
}

// Company requests

type CreateEmpresaRequest struct {
	Nome        string  `json:"nome" validate:"required"`
	CNPJ        string  `json:"cnpj" validate:"required"`
	Endereco    *string `json:"endereco"`
	Telefone    string  `json:"telefone" validate:"required"`
	Email       *string `json:"email"`
	Responsavel *string `json:"responsavel"`
	Ramo        *string `json:"ramo"`
	Produtos    *int    `json:"produtos" validate:"omitempty,gte=0"`
}

type UpdateEmpresaRequest struct {
	Nome        string  `json:"nome" validate:"required"`
	CNPJ        string  `json:"cnpj" validate:"required"`
	Endereco    *string `json:"endereco"`
	Telefone    string  `json:"telefone" validate:"required"`
	Email       *string `json:"email"`
	Responsavel *string `json:"responsavel"`
	Ramo        *string `json:"ramo"`
	Produtos    *int    `json:"produtos" validate:"omitempty,gte=0"`
}

// Exchange requests

type CreateTrocaRequest struct {
	EmpresaSolicitante   string       `json:"empresa_solicitante" validate:"required"`
	EmpresaReceptora     string       `json:"empresa_receptora" validate:"required"`
	Data                 NullableTime `json:"data"`
	Status               string       `json:"status" validate:"max=50"`
	Observacoes          *string      `json:"observacoes"`
	CategoriaSolicitante string       `json:"categoria_solicitante" validate:"required"`
	CategoriaReceptora   string       `json:"categoria_receptora" validate:"required"`
}

// UpdateTrocaStatusRequest changes the status of an exchange. Clients may
// send the whole row; only status is read.
type UpdateTrocaStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

// Communication requests

type CreateComunicacaoRequest struct {
	TrocaID          NullableInt64 `json:"troca_id"`
	EmpresaOrigemID  NullableInt64 `json:"empresa_origem_id" validate:"required"`
	EmpresaDestinoID NullableInt64 `json:"empresa_destino_id" validate:"required"`
	Assunto          string        `json:"assunto" validate:"required"`
	DataContato      NullableTime  `json:"data_contato"`
	Duracao          *string       `json:"duracao"`
}

// ComunicacaoDTO is the created communication row plus its derived type
type ComunicacaoDTO struct {
	ID               int64     `json:"contato_id"`
	TrocaID          *int64    `json:"troca_id"`
	EmpresaOrigemID  int64     `json:"empresa_origem_id"`
	EmpresaDestinoID int64     `json:"empresa_destino_id"`
	Assunto          string    `json:"assunto"`
	DataContato      time.Time `json:"data_contato"`
	Duracao          *string   `json:"duracao"`
	Tipo             string    `json:"tipo"`
}

// ComunicacaoDetalheDTO is a communication with company names for display
type ComunicacaoDetalheDTO struct {
	ID             int64     `json:"contato_id"`
	TrocaID        *int64    `json:"troca_id"`
	Assunto        string    `json:"assunto"`
	DataContato    time.Time `json:"data_contato"`
	Duracao        *string   `json:"duracao"`
	EmpresaOrigem  string    `json:"empresa_origem"`
	EmpresaDestino string    `json:"empresa_destino"`
	Tipo           string    `json:"tipo"`
}

// Auth

type LoginRequest struct {
	Login string `json:"login" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

// UserDTO is the public view of an admin account. It never carries the password.
type UserDTO struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Login string `json:"login"`
}

type LoginResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

// DBTestResponse is returned by the database connectivity check
type DBTestResponse struct {
	Message    string    `json:"message"`
	ServerTime time.Time `json:"serverTime"`
}
