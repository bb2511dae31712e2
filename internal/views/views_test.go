package views

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/domain"
	"github.com/smartagro/smartagro/internal/router"
)

var fixedNow = time.Date(2025, 1, 19, 15, 0, 0, 0, time.UTC)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(router.Default(), catalog.NewFixtureStore(),
		WithClock(func() time.Time { return fixedNow }),
		WithAssetBaseURL("/assets/"))
	require.NoError(t, err)
	return r
}

func TestEveryRouteRenders(t *testing.T) {
	r := newTestRenderer(t)
	for _, e := range r.Table().Routes() {
		u, err := r.Table().URL(e.Name, map[string]string{"id": "5"})
		require.NoError(t, err)
		t.Run(e.Name, func(t *testing.T) {
			page, err := r.Render(context.Background(), u)
			require.NoError(t, err)
			assert.Equal(t, e.Component, page.View)
			assert.Equal(t, e.Layout, page.Layout)
			assert.NotNil(t, page.Data)
		})
	}
}

func TestRenderProductSingle(t *testing.T) {
	r := newTestRenderer(t)

	page, err := r.Render(context.Background(), "/product/5")
	require.NoError(t, err)
	assert.Equal(t, router.MainLayout, page.Layout)
	assert.Equal(t, "ProductSingle", page.View)
	assert.Equal(t, map[string]string{"id": "5"}, page.Params)

	data := page.Data.(productSingleData)
	assert.Equal(t, "Cornflakes", data.Product.Name)
	assert.Equal(t, "3,500 XAF", data.Product.PriceDisplay)
	assert.Equal(t, "/assets/images/sweet-corn.webp", data.Product.Image)
	assert.Equal(t, "/product/5", data.Product.URL)
	assert.Equal(t, "/products", data.Back)
}

func TestRenderProductSingleErrors(t *testing.T) {
	r := newTestRenderer(t)

	page, err := r.Render(context.Background(), "/product/99")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, NotFoundView, page.View)
	assert.Equal(t, router.MainLayout, page.Layout)

	_, err = r.Render(context.Background(), "/product/abc")
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestRenderUnmatched(t *testing.T) {
	r := newTestRenderer(t)

	page, err := r.Render(context.Background(), "/nowhere")
	assert.ErrorIs(t, err, router.ErrNoRoute)
	assert.Equal(t, NotFoundView, page.View)
	assert.Equal(t, "/nowhere", page.Path)
	assert.Empty(t, page.Layout)
}

func TestRenderTasks(t *testing.T) {
	r := newTestRenderer(t)

	page, err := r.Render(context.Background(), "/app/tasks")
	require.NoError(t, err)
	assert.Equal(t, router.AppLayout, page.Layout)
	assert.Equal(t, "Tasks", page.View)
	assert.Equal(t, "Task", page.Route)

	data := page.Data.(tasksData)
	require.Len(t, data.Tasks, 3)
	assert.True(t, data.Tasks[0].Overdue)
	assert.False(t, data.Tasks[1].Overdue)
	assert.False(t, data.Tasks[2].Overdue)
	assert.Equal(t, taskCounts{Total: 3, Completed: 1, Pending: 2, Overdue: 1}, data.Counts)
}

func TestRenderDashboard(t *testing.T) {
	r := newTestRenderer(t)

	page, err := r.Render(context.Background(), "/app/dashboard")
	require.NoError(t, err)

	data := page.Data.(dashboardData)
	assert.Equal(t, 3, data.RawProducts)
	assert.Equal(t, 12, data.ProcessedProducts)
	assert.Equal(t, 12, data.Users)
	assert.Equal(t, 6, data.Messages)
	assert.Equal(t, PriceStats{Mean: 4100, Median: 4000, Min: 2500, Max: 7000}, data.Prices)
	assert.Equal(t, 0.33, data.CompletionRate)
}

func TestRenderChat(t *testing.T) {
	r := newTestRenderer(t)

	page, err := r.Render(context.Background(), "/app/chat")
	require.NoError(t, err)

	data := page.Data.(chatData)
	assert.Len(t, data.General, 3)
	require.Len(t, data.Conversations, 1)
	assert.Equal(t, "Alice Johnson", data.Conversations[0].Peer)
	assert.Len(t, data.Conversations[0].Messages, 3)
	assert.Len(t, data.Users, 12)
}

func TestRenderAllProducts(t *testing.T) {
	r := newTestRenderer(t)

	page, err := r.Render(context.Background(), "/app/products")
	require.NoError(t, err)

	data := page.Data.(allProductsData)
	assert.Equal(t, 15, data.Total)
	assert.Equal(t, "Corn", data.Products[0].Name)
	assert.Equal(t, "Corn-Plantain Chips", data.Products[14].Name)
}

func TestRenderLoginLinks(t *testing.T) {
	r := newTestRenderer(t)

	page, err := r.Render(context.Background(), "/auth/login")
	require.NoError(t, err)
	assert.Equal(t, router.AuthLayout, page.Layout)

	data := page.Data.(formData)
	assert.Equal(t, "/auth/forgot-password", data.Links["forgotPassword"])
	assert.Len(t, data.Fields, 2)
}

func TestCheckReportsMissingViews(t *testing.T) {
	table := router.MustNew(router.Layout{
		Path:      "/",
		Component: "Shell",
		Children: []router.Route{
			{Path: "a", Name: "A", Component: "Index"},
			{Path: "b", Name: "B", Component: "Reports"},
		},
	})

	err := Check(table, Registry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no view for component Reports")

	_, err = NewRenderer(table, catalog.NewFixtureStore())
	assert.Error(t, err)
}

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		want bool
	}{
		{"due yesterday", domain.Task{DueDate: "2025-01-18"}, true},
		{"due today", domain.Task{DueDate: "2025-01-19"}, false},
		{"due tomorrow", domain.Task{DueDate: "2025-01-20"}, false},
		{"completed", domain.Task{DueDate: "2025-01-01", Completed: true}, false},
		{"unparsable", domain.Task{DueDate: "soon"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.task, fixedNow))
		})
	}
}

func TestComputePriceStatsEmpty(t *testing.T) {
	ps, err := ComputePriceStats(nil)
	require.NoError(t, err)
	assert.Equal(t, PriceStats{}, ps)
}

func TestAssetURL(t *testing.T) {
	r := newTestRenderer(t)
	assert.Equal(t, "/assets/images/x.png", r.AssetURL("/images/x.png"))
	assert.Equal(t, "https://cdn.example.com/x.png", r.AssetURL("https://cdn.example.com/x.png"))
	assert.Equal(t, "", r.AssetURL(""))
}
