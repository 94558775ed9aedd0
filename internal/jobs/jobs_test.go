package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/jobs"
	"github.com/ecostock/ecostock-api/internal/repository"
	"github.com/ecostock/ecostock-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubFinder struct {
	empresas []domain.Empresa
	err      error
}

func (f stubFinder) ListOrphanedRamo(context.Context) ([]domain.Empresa, error) {
	return f.empresas, f.err
}

func TestScheduler_AddAndRemoveJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "@hourly", func() {}))
	require.NoError(t, s.AddJob("a", "0 30 * * * *", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	assert.Error(t, s.AddJob("a", "@hourly", func() {}), "duplicate name")
	assert.Error(t, s.AddJob("c", "not a cron", func() {}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobNames())
	assert.Error(t, s.RemoveJob("a"))
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	ran := make(chan struct{}, 1)

	require.NoError(t, s.AddJob("tick", "@every 1s", func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))
	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestOrphanReportJob_LogsOrphans(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ramo := "Eletrônicos"
	finder := stubFinder{empresas: []domain.Empresa{
		{ID: 1, Nome: "Acme", Ramo: &ramo},
		{ID: 2, Nome: "Beta", Ramo: &ramo},
	}}

	n := jobs.NewOrphanReportJob(finder, zap.New(core), time.Second).Run()

	assert.Equal(t, 2, n)
	warnings := logs.FilterMessage("companies reference a category that no longer exists").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Eletrônicos", warnings[0].ContextMap()["ramo"])
}

func TestOrphanReportJob_Failure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	n := jobs.NewOrphanReportJob(stubFinder{err: errors.New("db down")}, zap.New(core), time.Second).Run()

	assert.Zero(t, n)
	assert.Equal(t, 1, logs.FilterMessage("orphaned ramo report failed").Len())
}

func TestOrphanReportJob_AgainstRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestCategoria(t, db, "Móveis")
	testutil.CreateTestEmpresa(t, db, "Casa", testutil.Ptr("Móveis"), 1)
	testutil.CreateTestEmpresa(t, db, "Orfã", testutil.Ptr("Apagada"), 1)
	testutil.CreateTestEmpresa(t, db, "Sem ramo", nil, 1)

	n := jobs.NewOrphanReportJob(repository.NewEmpresaRepository(db), zap.NewNop(), time.Second).Run()
	assert.Equal(t, 1, n)
}

func TestRegisterOrphanReportJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	require.NoError(t, jobs.RegisterOrphanReportJob(s, stubFinder{}, zap.NewNop(), "@hourly", time.Second))
	assert.Equal(t, []string{jobs.OrphanReportJobName}, s.JobNames())
}
