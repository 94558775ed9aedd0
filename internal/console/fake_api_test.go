package console

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ecostock/ecostock-api/internal/client"
	"github.com/ecostock/ecostock-api/internal/domain"
)

// fakeAPI is an in-memory API. Setting fail makes every call return it.
type fakeAPI struct {
	mu           sync.Mutex
	categorias   []domain.CategoriaResumo
	empresas     []domain.Empresa
	trocas       []domain.Troca
	comunicacoes []domain.ComunicacaoDetalheDTO
	nextID       int64
	fail         error
	failLists    map[string]error
	calls        []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100, failLists: map[string]error{}}
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if err, ok := f.failLists[name]; ok {
		return err
	}
	return f.fail
}

func (f *fakeAPI) id() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}

func notFound(msg string) error {
	return &client.APIError{Status: http.StatusNotFound, Message: msg}
}

func (f *fakeAPI) Login(_ context.Context, login, senha string) (*domain.UserDTO, error) {
	if err := f.record("Login"); err != nil {
		return nil, err
	}
	if login != "admin" || senha != "secret" {
		return nil, &client.APIError{Status: http.StatusUnauthorized, Message: "Login ou senha inválidos"}
	}
	return &domain.UserDTO{ID: 1, Nome: "Maria", Login: "admin"}, nil
}

func (f *fakeAPI) ListCategorias(context.Context) ([]domain.CategoriaResumo, error) {
	if err := f.record("ListCategorias"); err != nil {
		return nil, err
	}
	return append([]domain.CategoriaResumo(nil), f.categorias...), nil
}

func (f *fakeAPI) CreateCategoria(_ context.Context, req domain.CreateCategoriaRequest) (*domain.Categoria, error) {
	if err := f.record("CreateCategoria"); err != nil {
		return nil, err
	}
	return &domain.Categoria{ID: f.id(), Nome: req.Nome, Descricao: req.Descricao}, nil
}

func (f *fakeAPI) UpdateCategoria(_ context.Context, id int64, req domain.UpdateCategoriaRequest) (*domain.Categoria, error) {
	if err := f.record("UpdateCategoria"); err != nil {
		return nil, err
	}
	return &domain.Categoria{ID: id, Nome: req.Nome, Descricao: req.Descricao}, nil
}

func (f *fakeAPI) DeleteCategoria(_ context.Context, id int64) error {
	if err := f.record("DeleteCategoria"); err != nil {
		return err
	}
	for i, c := range f.categorias {
		if c.ID == id {
			f.categorias = append(f.categorias[:i], f.categorias[i+1:]...)
			return nil
		}
	}
	return notFound("Categoria não encontrada")
}

func (f *fakeAPI) ListEmpresas(context.Context) ([]domain.Empresa, error) {
	if err := f.record("ListEmpresas"); err != nil {
		return nil, err
	}
	return append([]domain.Empresa(nil), f.empresas...), nil
}

func (f *fakeAPI) GetEmpresa(_ context.Context, id int64) (*domain.Empresa, error) {
	if err := f.record("GetEmpresa"); err != nil {
		return nil, err
	}
	for _, e := range f.empresas {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, notFound("Empresa não encontrada")
}

func (f *fakeAPI) CreateEmpresa(_ context.Context, req domain.CreateEmpresaRequest) (*domain.Empresa, error) {
	if err := f.record("CreateEmpresa"); err != nil {
		return nil, err
	}
	e := domain.Empresa{ID: f.id(), Nome: req.Nome, CNPJ: req.CNPJ, Telefone: req.Telefone, Ramo: req.Ramo}
	if req.Produtos != nil {
		e.Produtos = *req.Produtos
	}
	return &e, nil
}

func (f *fakeAPI) UpdateEmpresa(_ context.Context, id int64, req domain.UpdateEmpresaRequest) (*domain.Empresa, error) {
	if err := f.record("UpdateEmpresa"); err != nil {
		return nil, err
	}
	return &domain.Empresa{ID: id, Nome: req.Nome, CNPJ: req.CNPJ, Telefone: req.Telefone}, nil
}

func (f *fakeAPI) ListTrocas(context.Context) ([]domain.Troca, error) {
	if err := f.record("ListTrocas"); err != nil {
		return nil, err
	}
	return append([]domain.Troca(nil), f.trocas...), nil
}

func (f *fakeAPI) GetTroca(_ context.Context, id int64) (*domain.Troca, error) {
	if err := f.record("GetTroca"); err != nil {
		return nil, err
	}
	for _, t := range f.trocas {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, notFound("Troca não encontrada")
}

func (f *fakeAPI) CreateTroca(_ context.Context, req domain.CreateTrocaRequest) (*domain.Troca, error) {
	if err := f.record("CreateTroca"); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = domain.TrocaStatusPendente
	}
	return &domain.Troca{
		ID:                   f.id(),
		EmpresaSolicitante:   req.EmpresaSolicitante,
		EmpresaReceptora:     req.EmpresaReceptora,
		Data:                 req.Data.OrNow(time.Now),
		Status:               status,
		CategoriaSolicitante: req.CategoriaSolicitante,
		CategoriaReceptora:   req.CategoriaReceptora,
	}, nil
}

func (f *fakeAPI) UpdateTrocaStatus(_ context.Context, id int64, status string) (*domain.Troca, error) {
	if err := f.record("UpdateTrocaStatus"); err != nil {
		return nil, err
	}
	for _, t := range f.trocas {
		if t.ID == id {
			t.Status = status
			return &t, nil
		}
	}
	return nil, notFound("Troca não encontrada")
}

func (f *fakeAPI) DeleteTroca(_ context.Context, id int64) error {
	return f.record("DeleteTroca")
}

func (f *fakeAPI) ListComunicacoes(context.Context) ([]domain.ComunicacaoDetalheDTO, error) {
	if err := f.record("ListComunicacoes"); err != nil {
		return nil, err
	}
	return append([]domain.ComunicacaoDetalheDTO(nil), f.comunicacoes...), nil
}

func (f *fakeAPI) GetComunicacao(_ context.Context, id int64) (*domain.ComunicacaoDetalheDTO, error) {
	if err := f.record("GetComunicacao"); err != nil {
		return nil, err
	}
	for _, c := range f.comunicacoes {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, notFound("Comunicação não encontrada")
}

func (f *fakeAPI) CreateComunicacao(_ context.Context, req domain.CreateComunicacaoRequest) (*domain.ComunicacaoDTO, error) {
	if err := f.record("CreateComunicacao"); err != nil {
		return nil, err
	}
	return &domain.ComunicacaoDTO{
		ID:               f.id(),
		TrocaID:          req.TrocaID.Ptr(),
		EmpresaOrigemID:  req.EmpresaOrigemID.Int64,
		EmpresaDestinoID: req.EmpresaDestinoID.Int64,
		Assunto:          req.Assunto,
		DataContato:      req.DataContato.OrNow(time.Now),
		Duracao:          req.Duracao,
		Tipo:             domain.TipoFromDuracao(req.Duracao),
	}, nil
}

func (f *fakeAPI) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}
