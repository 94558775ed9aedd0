// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/ecostock/ecostock-api/internal/database"
	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB returns an isolated in-memory database with the schema applied
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateTestCategoria inserts a category
func CreateTestCategoria(t *testing.T, db *gorm.DB, nome string) *domain.Categoria {
	t.Helper()
	categoria := &domain.Categoria{Nome: nome}
	require.NoError(t, db.WithContext(context.Background()).Create(categoria).Error)
	return categoria
}

// CreateTestEmpresa inserts a company with the given line of business and product count
func CreateTestEmpresa(t *testing.T, db *gorm.DB, nome string, ramo *string, produtos int) *domain.Empresa {
	t.Helper()
	empresa := &domain.Empresa{
		Nome:     nome,
		CNPJ:     "12.345.678/0001-90",
		Telefone: "1111-0000",
		Ramo:     ramo,
		Produtos: produtos,
	}
	require.NoError(t, db.Create(empresa).Error)
	return empresa
}

// CreateTestTroca inserts a pending exchange between two companies
func CreateTestTroca(t *testing.T, db *gorm.DB, solicitante, receptora string) *domain.Troca {
	t.Helper()
	troca := &domain.Troca{
		EmpresaSolicitante:   solicitante,
		EmpresaReceptora:     receptora,
		Status:               domain.TrocaStatusPendente,
		CategoriaSolicitante: "Eletrônicos",
		CategoriaReceptora:   "Móveis",
	}
	require.NoError(t, db.Create(troca).Error)
	return troca
}

// CreateTestUsuario inserts an admin account
func CreateTestUsuario(t *testing.T, db *gorm.DB, nome, login, senha string) *domain.Usuario {
	t.Helper()
	usuario := &domain.Usuario{Nome: nome, Login: login, Senha: senha}
	require.NoError(t, db.Create(usuario).Error)
	return usuario
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
