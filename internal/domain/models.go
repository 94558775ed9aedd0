package domain

import "time"

// Default exchange status assigned when none is provided
const TrocaStatusPendente = "pendente"

// MaxTrocaStatusLength is the width of the trocas.status column
const MaxTrocaStatusLength = 50

// Communication types derived from the presence of a duration
const (
	TipoTelefone = "Telefone"
	TipoMensagem = "Mensagem"
)

// Categoria is a product category. Companies reference it by name
// through Empresa.Ramo rather than by id.
type Categoria struct {
	ID        int64   `gorm:"column:categoria_id;primaryKey;autoIncrement" json:"categoria_id"`
	Nome      string  `gorm:"column:nome;uniqueIndex;not null" json:"nome"`
	Descricao *string `gorm:"column:descricao" json:"descricao"`
}

func (Categoria) TableName() string { return "categorias" }

// CategoriaResumo is a category together with the aggregates of the
// companies whose ramo equals its name.
type CategoriaResumo struct {
	ID        int64   `gorm:"column:categoria_id" json:"categoria_id"`
	Nome      string  `gorm:"column:nome" json:"nome"`
	Descricao *string `gorm:"column:descricao" json:"descricao"`
	Empresas  int64   `gorm:"column:empresas" json:"empresas"`
	Produtos  int64   `gorm:"column:produtos" json:"produtos"`
}

// Empresa is a partner company
type Empresa struct {
	ID           int64     `gorm:"column:empresa_id;primaryKey;autoIncrement" json:"empresa_id"`
	Nome         string    `gorm:"column:nome;not null" json:"nome"`
	CNPJ         string    `gorm:"column:cnpj;not null" json:"cnpj"`
	Endereco     *string   `gorm:"column:endereco" json:"endereco"`
	Telefone     string    `gorm:"column:telefone;not null" json:"telefone"`
	Email        *string   `gorm:"column:email" json:"email"`
	Responsavel  *string   `gorm:"column:responsavel" json:"responsavel"`
	Ramo         *string   `gorm:"column:ramo;index" json:"ramo"`
	Produtos     int       `gorm:"column:produtos;not null;default:0" json:"produtos"`
	DataCadastro time.Time `gorm:"column:data_cadastro;autoCreateTime" json:"data_cadastro"`
}

func (Empresa) TableName() string { return "empresas" }

// Troca is an exchange between two companies, each offering a category
type Troca struct {
	ID                   int64     `gorm:"column:troca_id;primaryKey;autoIncrement" json:"troca_id"`
	EmpresaSolicitante   string    `gorm:"column:empresa_solicitante;not null" json:"empresa_solicitante"`
	EmpresaReceptora     string    `gorm:"column:empresa_receptora;not null" json:"empresa_receptora"`
	Data                 time.Time `gorm:"column:data" json:"data"`
	Status               string    `gorm:"column:status;size:50;default:'pendente'" json:"status"`
	Observacoes          *string   `gorm:"column:observacoes" json:"observacoes"`
	CategoriaSolicitante string    `gorm:"column:categoria_solicitante;not null" json:"categoria_solicitante"`
	CategoriaReceptora   string    `gorm:"column:categoria_receptora;not null" json:"categoria_receptora"`
}

func (Troca) TableName() string { return "trocas" }

// Comunicacao is a logged contact between two companies. A contact with a
// duration is a phone call, one without is a message.
type Comunicacao struct {
	ID               int64     `gorm:"column:contato_id;primaryKey;autoIncrement" json:"contato_id"`
	TrocaID          *int64    `gorm:"column:troca_id" json:"troca_id"`
	EmpresaOrigemID  int64     `gorm:"column:empresa_origem_id;not null" json:"empresa_origem_id"`
	EmpresaDestinoID int64     `gorm:"column:empresa_destino_id;not null" json:"empresa_destino_id"`
	Assunto          string    `gorm:"column:assunto;not null" json:"assunto"`
	DataContato      time.Time `gorm:"column:data_contato" json:"data_contato"`
	Duracao          *string   `gorm:"column:duracao" json:"duracao"`
}

func (Comunicacao) TableName() string { return "contatos" }

// Tipo returns the communication type implied by the duration
func (c *Comunicacao) Tipo() string {
	return TipoFromDuracao(c.Duracao)
}

// ComunicacaoDetalhe is a communication joined with the company names
type ComunicacaoDetalhe struct {
	ID             int64     `gorm:"column:contato_id"`
	TrocaID        *int64    `gorm:"column:troca_id"`
	Assunto        string    `gorm:"column:assunto"`
	DataContato    time.Time `gorm:"column:data_contato"`
	Duracao        *string   `gorm:"column:duracao"`
	EmpresaOrigem  string    `gorm:"column:empresa_origem"`
	EmpresaDestino string    `gorm:"column:empresa_destino"`
}

// TipoFromDuracao maps an optional duration to a communication type
func TipoFromDuracao(duracao *string) string {
	if duracao != nil && *duracao != "" {
		return TipoTelefone
	}
	return TipoMensagem
}

// Usuario is an admin account
type Usuario struct {
	ID    int64  `gorm:"column:usuario_id;primaryKey;autoIncrement"`
	Nome  string `gorm:"column:nome;not null"`
	Login string `gorm:"column:login;uniqueIndex;not null"`
	Senha string `gorm:"column:senha;not null"`
}

func (Usuario) TableName() string { return "usuarios" }
