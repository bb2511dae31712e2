package views

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/domain"
	"github.com/smartagro/smartagro/internal/router"
)

// Registry returns the view of every routed component
func Registry() map[string]ViewFunc {
	return map[string]ViewFunc{
		"Index":          indexView,
		"Products":       productsView,
		"ProductSingle":  productSingleView,
		"Login":          formView(loginForm),
		"ForgotPassword": formView(forgotPasswordForm),
		"OtpCode":        formView(otpCodeForm),
		"ResetPassword":  formView(resetPasswordForm),
		"Dashboard":      dashboardView,
		"Chat":           chatView,
		"Tasks":          tasksView,
		"AllProducts":    allProductsView,
		"Employees":      employeesView,
		"Documents":      documentsView,
		"Users":          usersView,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

type indexData struct {
	Logo     string        `json:"logo"`
	Products []ProductView `json:"products"`
	Catalog  string        `json:"catalogUrl"`
}

func indexView(ctx context.Context, r *Renderer, _ router.Match) (interface{}, error) {
	raw, err := r.reader.Products(ctx)
	if err != nil {
		return nil, err
	}
	return indexData{
		Logo:     r.AssetURL(r.reader.Logo()),
		Products: r.productViews(raw),
		Catalog:  r.link("Products"),
	}, nil
}

type productsData struct {
	Products          []ProductView `json:"products"`
	ProcessedProducts []ProductView `json:"processedProducts"`
}

func productsView(ctx context.Context, r *Renderer, _ router.Match) (interface{}, error) {
	raw, err := r.reader.Products(ctx)
	if err != nil {
		return nil, err
	}
	processed, err := r.reader.ProcessedProducts(ctx)
	if err != nil {
		return nil, err
	}
	return productsData{
		Products:          r.productViews(raw),
		ProcessedProducts: r.productViews(processed),
	}, nil
}

type productSingleData struct {
	Product ProductView `json:"product"`
	Back    string      `json:"backUrl"`
}

func productSingleView(ctx context.Context, r *Renderer, m router.Match) (interface{}, error) {
	id, err := strconv.ParseInt(m.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return nil, errors.Wrapf(ErrInvalidParam, "product id %q", m.Param("id"))
	}
	p, err := r.reader.Product(ctx, id)
	if err != nil {
		return nil, errors.WithMessagef(err, "product %d", id)
	}
	return productSingleData{Product: r.productView(p), Back: r.link("Products")}, nil
}

// FormField describes one input of an authentication form
type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

type formData struct {
	Title  string            `json:"title"`
	Fields []FormField       `json:"fields"`
	Submit string            `json:"submit"`
	Links  map[string]string `json:"links,omitempty"`
}

func loginForm(r *Renderer) formData {
	return formData{
		Title: "Sign in",
		Fields: []FormField{
			{Name: "email", Type: "email", Label: "Email", Required: true},
			{Name: "password", Type: "password", Label: "Password", Required: true},
		},
		Submit: "Login",
		Links:  map[string]string{"forgotPassword": r.link("ForgotPassword")},
	}
}

func forgotPasswordForm(r *Renderer) formData {
	return formData{
		Title:  "Forgot password",
		Fields: []FormField{{Name: "email", Type: "email", Label: "Email", Required: true}},
		Submit: "Send code",
		Links:  map[string]string{"next": r.link("OtpCode"), "login": r.link("Login")},
	}
}

func otpCodeForm(r *Renderer) formData {
	return formData{
		Title:  "Verification code",
		Fields: []FormField{{Name: "code", Type: "text", Label: "OTP code", Required: true}},
		Submit: "Verify",
		Links:  map[string]string{"next": r.link("ResetPassword")},
	}
}

func resetPasswordForm(r *Renderer) formData {
	return formData{
		Title: "Reset password",
		Fields: []FormField{
			{Name: "password", Type: "password", Label: "New password", Required: true},
			{Name: "confirmPassword", Type: "password", Label: "Confirm password", Required: true},
		},
		Submit: "Reset",
		Links:  map[string]string{"login": r.link("Login")},
	}
}

func formView(build func(r *Renderer) formData) ViewFunc {
	return func(_ context.Context, r *Renderer, _ router.Match) (interface{}, error) {
		return build(r), nil
	}
}

// PriceStats summarises catalog prices
type PriceStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type dashboardData struct {
	RawProducts       int        `json:"rawProducts"`
	ProcessedProducts int        `json:"processedProducts"`
	Users             int        `json:"users"`
	Messages          int        `json:"messages"`
	Prices            PriceStats `json:"prices"`
	Tasks             taskCounts `json:"tasks"`
	CompletionRate    float64    `json:"completionRate"`
}

type taskCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// ComputePriceStats returns mean, median, min and max of the product prices.
// An empty slice yields zero stats.
func ComputePriceStats(products []domain.Product) (PriceStats, error) {
	if len(products) == 0 {
		return PriceStats{}, nil
	}
	data := make(stats.Float64Data, 0, len(products))
	for _, p := range products {
		data = append(data, float64(p.Price))
	}
	var (
		ps  PriceStats
		err error
	)
	if ps.Mean, err = data.Mean(); err != nil {
		return ps, err
	}
	if ps.Median, err = data.Median(); err != nil {
		return ps, err
	}
	if ps.Min, err = data.Min(); err != nil {
		return ps, err
	}
	if ps.Max, err = data.Max(); err != nil {
		return ps, err
	}
	ps.Mean, _ = stats.Round(ps.Mean, 2)
	return ps, nil
}

func dashboardView(ctx context.Context, r *Renderer, _ router.Match) (interface{}, error) {
	d, err := catalog.LoadDataset(ctx, r.reader)
	if err != nil {
		return nil, err
	}
	prices, err := ComputePriceStats(append(append([]domain.Product(nil), d.Products...), d.ProcessedProducts...))
	if err != nil {
		return nil, errors.Wrap(err, "price stats")
	}
	counts := countTasks(r.taskViews(d.Tasks))
	var rate float64
	if counts.Total > 0 {
		rate, _ = stats.Round(float64(counts.Completed)/float64(counts.Total), 2)
	}
	return dashboardData{
		RawProducts:       len(d.Products),
		ProcessedProducts: len(d.ProcessedProducts),
		Users:             len(d.Users),
		Messages:          len(d.Messages),
		Prices:            prices,
		Tasks:             counts,
		CompletionRate:    rate,
	}, nil
}

// Conversation is a direct chat between the current user and a peer
type Conversation struct {
	Peer     string           `json:"peer"`
	Messages []domain.Message `json:"messages"`
}

type chatData struct {
	Me            string           `json:"me"`
	General       []domain.Message `json:"general"`
	Conversations []Conversation   `json:"conversations"`
	Users         []domain.User    `json:"users"`
}

// GroupConversations groups direct messages by peer, keeping first-seen order
func GroupConversations(messages []domain.Message) []Conversation {
	var out []Conversation
	index := make(map[string]int)
	for _, m := range messages {
		peer := m.Peer()
		if peer == "" {
			continue
		}
		i, ok := index[peer]
		if !ok {
			i = len(out)
			index[peer] = i
			out = append(out, Conversation{Peer: peer})
		}
		out[i].Messages = append(out[i].Messages, m)
	}
	return out
}

func chatView(ctx context.Context, r *Renderer, _ router.Match) (interface{}, error) {
	general, err := r.reader.Messages(ctx, catalog.MessageFilter{ChatType: domain.ChatGeneral})
	if err != nil {
		return nil, err
	}
	direct, err := r.reader.Messages(ctx, catalog.MessageFilter{ChatType: domain.ChatDirect})
	if err != nil {
		return nil, err
	}
	users, err := r.reader.Users(ctx)
	if err != nil {
		return nil, err
	}
	return chatData{
		Me:            domain.CurrentUser,
		General:       general,
		Conversations: GroupConversations(direct),
		Users:         users,
	}, nil
}

// TaskView is a task with its overdue state
type TaskView struct {
	domain.Task
	Overdue bool `json:"overdue"`
}

type tasksData struct {
	Tasks  []TaskView `json:"tasks"`
	Counts taskCounts `json:"counts"`
}

// IsOverdue reports whether an incomplete task was due before the day of now.
// Tasks with an unparsable due date are never overdue.
func IsOverdue(t domain.Task, now time.Time) bool {
	if t.Completed {
		return false
	}
	due, err := dateparse.ParseIn(strings.TrimSpace(t.DueDate), now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}

func (r *Renderer) taskViews(tasks []domain.Task) []TaskView {
	now := r.now()
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskView{Task: t, Overdue: IsOverdue(t, now)})
	}
	return out
}

func countTasks(tasks []TaskView) taskCounts {
	c := taskCounts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
			continue
		}
		c.Pending++
		if t.Overdue {
			c.Overdue++
		}
	}
	return c
}

func tasksView(ctx context.Context, r *Renderer, _ router.Match) (interface{}, error) {
	tasks, err := r.reader.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	tv := r.taskViews(tasks)
	return tasksData{Tasks: tv, Counts: countTasks(tv)}, nil
}

type allProductsData struct {
	Products []ProductView `json:"products"`
	Total    int           `json:"total"`
}

func allProductsView(ctx context.Context, r *Renderer, _ router.Match) (interface{}, error) {
	all, err := catalog.AllProducts(ctx, r.reader)
	if err != nil {
		return nil, err
	}
	return allProductsData{Products: r.productViews(all), Total: len(all)}, nil
}

type peopleData struct {
	People []domain.User `json:"people"`
	Total  int           `json:"total"`
}

func employeesView(ctx context.Context, r *Renderer, _ router.Match) (interface{}, error) {
	users, err := r.reader.Users(ctx)
	if err != nil {
		return nil, err
	}
	return peopleData{People: users, Total: len(users)}, nil
}

func usersView(ctx context.Context, r *Renderer, m router.Match) (interface{}, error) {
	return employeesView(ctx, r, m)
}

// Document is an entry of the documents page. The sample data set has none.
type Document struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type documentsData struct {
	Documents []Document `json:"documents"`
}

func documentsView(_ context.Context, _ *Renderer, _ router.Match) (interface{}, error) {
	return documentsData{Documents: []Document{}}, nil
}
