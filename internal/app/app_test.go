package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartagro/smartagro/config"
	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/domain"
	"github.com/smartagro/smartagro/internal/views"
)

func testConfig(t *testing.T, dbType string) *config.AppConfig {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.System.Location = "UTC"
	cfg.Database.Type = dbType
	cfg.Database.Name = ":memory:"
	return &cfg
}

func newTestApp(t *testing.T, dbType string) *Application {
	t.Helper()
	a := NewApplication(testConfig(t, dbType))
	a.now = func() time.Time { return time.Date(2025, 1, 21, 8, 0, 0, 0, time.UTC) }
	require.NoError(t, a.Init())
	t.Cleanup(a.Release)
	return a
}

func TestInitMemoryStore(t *testing.T) {
	a := newTestApp(t, "memory")

	assert.Nil(t, a.DB())
	_, ok := a.Reader().(*catalog.Store)
	assert.True(t, ok)
	assert.NotNil(t, a.Routes())
	assert.NotNil(t, a.Renderer())
	assert.Len(t, a.Scheduler().Entries(), 1)
}

func TestInitSqliteSeedsCatalog(t *testing.T) {
	a := newTestApp(t, "sqlite")

	require.NotNil(t, a.DB())
	var count int64
	require.NoError(t, a.DB().Model(&domain.Product{}).Count(&count).Error)
	assert.Equal(t, int64(15), count)

	p, err := a.Reader().Product(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Corn", p.Name)

	page, err := a.Renderer().Render(context.Background(), "/product/14")
	require.NoError(t, err)
	assert.Equal(t, "ProductSingle", page.View)
}

func TestInitDbResetsData(t *testing.T) {
	a := newTestApp(t, "sqlite")
	ctx := context.Background()

	require.NoError(t, a.DB().Where("id = ?", 1).Delete(&domain.Task{}).Error)
	require.NoError(t, a.InitDb(ctx))

	tasks, err := a.Reader().Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}

func TestInitDbWithoutDatabase(t *testing.T) {
	a := newTestApp(t, "memory")
	assert.Error(t, a.InitDb(context.Background()))
}

func TestInitRejectsBadSchedule(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Jobs.AuditSpec = "every tuesday"

	a := NewApplication(cfg)
	err := a.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid audit schedule")
}

func TestRunAudit(t *testing.T) {
	for _, dbType := range []string{"memory", "sqlite"} {
		t.Run(dbType, func(t *testing.T) {
			a := newTestApp(t, dbType)

			report, err := a.RunAudit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 15, report.Products)
			assert.Equal(t, 12, report.Users)
			assert.Equal(t, 6, report.Messages)
			assert.Equal(t, 3, report.Tasks)
			assert.Empty(t, report.Problems)
			// clock is 2025-01-21: tasks 1 and 2 are late, task 3 is done
			assert.Equal(t, []int64{1, 2}, report.OverdueTasks)
		})
	}
}

func TestRunAuditUsesConfiguredLocation(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.System.Location = "Africa/Douala"
	a := NewApplication(cfg)
	// 23:30 UTC on the 20th is already the 21st in Douala (UTC+1)
	a.now = func() time.Time { return time.Date(2025, 1, 20, 23, 30, 0, 0, time.UTC) }
	require.NoError(t, a.Init())
	t.Cleanup(a.Release)

	report, err := a.RunAudit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, report.OverdueTasks)

	var fromViews []int64
	for _, task := range catalog.Fixtures().Tasks {
		if views.IsOverdue(task, a.localNow()) {
			fromViews = append(fromViews, task.ID)
		}
	}
	assert.Equal(t, fromViews, report.OverdueTasks)
}

func TestRunAuditReportsProblems(t *testing.T) {
	a := newTestApp(t, "sqlite")
	require.NoError(t, a.DB().Model(&domain.Product{}).Where("id = ?", 4).Update("price", 0).Error)

	report, err := a.RunAudit(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Problems, 1)
	assert.Contains(t, report.Problems[0], "pro_products[4]")
}

func TestSchedAuditTaskDoesNotPanic(t *testing.T) {
	a := newTestApp(t, "memory")
	assert.NotPanics(t, a.SchedAuditTask)
}

func TestStartBackgroundJobs(t *testing.T) {
	a := newTestApp(t, "memory")
	ctx, cancel := context.WithCancel(context.Background())
	a.StartBackgroundJobs(ctx)
	cancel()
}

func TestInitLogger(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Logger.FileEnable = true
	cfg.Logger.Filename = cfg.GetLogDir() + "/smartagro.log"
	assert.NoError(t, InitLogger(cfg))

	cfg.Logger.FileEnable = false
	cfg.Logger.Mode = "production"
	assert.NoError(t, InitLogger(cfg))
}
