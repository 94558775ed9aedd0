package console

import (
	"strings"
	"unicode/utf8"

	"github.com/ecostock/ecostock-api/internal/domain"
)

// formError is a client-side validation failure shown verbatim to the admin
type formError string

func (e formError) Error() string { return string(e) }

// Client-side checks mirror part of the API validation so obvious mistakes
// never leave the page.
const (
	errStatusTooLong         formError = "O status não pode ter mais de 50 caracteres."
	errCategoriasTroca       formError = "As categorias de ambas as empresas são obrigatórias."
	errComunicacaoIncompleta formError = "Empresa origem, empresa destino e assunto são obrigatórios."
	errNomeObrigatorio       formError = "Nome é obrigatório."
	errEmpresaIncompleta     formError = "Nome, CNPJ e telefone são obrigatórios."
	errDataInvalida          formError = "Data inválida."
	errIDInvalido            formError = "Identificador inválido."
	errProdutosInvalido      formError = "Produtos deve ser um número maior ou igual a zero."
)

func validateStatus(status string) error {
	if utf8.RuneCountInString(status) > domain.MaxTrocaStatusLength {
		return errStatusTooLong
	}
	return nil
}

func validateTroca(req *domain.CreateTrocaRequest) error {
	if err := validateStatus(req.Status); err != nil {
		return err
	}
	if strings.TrimSpace(req.CategoriaSolicitante) == "" || strings.TrimSpace(req.CategoriaReceptora) == "" {
		return errCategoriasTroca
	}
	return nil
}

func validateComunicacao(req *domain.CreateComunicacaoRequest) error {
	if !req.EmpresaOrigemID.Valid || !req.EmpresaDestinoID.Valid || strings.TrimSpace(req.Assunto) == "" {
		return errComunicacaoIncompleta
	}
	return nil
}

func validateCategoria(nome string) error {
	if strings.TrimSpace(nome) == "" {
		return errNomeObrigatorio
	}
	return nil
}

func validateEmpresa(nome, cnpj, telefone string) error {
	if strings.TrimSpace(nome) == "" || strings.TrimSpace(cnpj) == "" || strings.TrimSpace(telefone) == "" {
		return errEmpresaIncompleta
	}
	return nil
}
