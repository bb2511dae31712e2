// Package views builds the view model of every routed page from the data store.
package views

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/domain"
	"github.com/smartagro/smartagro/internal/router"
)

// NotFoundView is rendered for unmatched paths and missing records
const NotFoundView = "NotFound"

// ErrInvalidParam is returned when a route parameter cannot be interpreted
var ErrInvalidParam = errors.New("invalid route parameter")

// Page is a rendered navigation result
type Page struct {
	Layout string            `json:"layout,omitempty"`
	View   string            `json:"view"`
	Route  string            `json:"route,omitempty"`
	Path   string            `json:"path"`
	Params map[string]string `json:"params,omitempty"`
	Data   interface{}       `json:"data,omitempty"`
}

// ViewFunc builds the view model for a matched route
type ViewFunc func(ctx context.Context, r *Renderer, m router.Match) (interface{}, error)

// Option configures a Renderer
type Option func(*Renderer)

// WithClock sets the time source used for date dependent fields
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithAssetBaseURL sets the prefix applied to asset references
func WithAssetBaseURL(base string) Option {
	return func(r *Renderer) { r.assetBase = base }
}

// Renderer resolves paths against a route table and renders the matched view
type Renderer struct {
	table     *router.Table
	reader    catalog.Reader
	views     map[string]ViewFunc
	now       func() time.Time
	assetBase string
	printer   *message.Printer
}

// NewRenderer returns a renderer over table and reader. It fails when a route
// of the table names a component without a registered view.
func NewRenderer(table *router.Table, reader catalog.Reader, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		table:   table,
		reader:  reader,
		views:   Registry(),
		now:     time.Now,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := Check(table, r.views); err != nil {
		return nil, err
	}
	return r, nil
}

// Check verifies that every routed component has a view in registry.
func Check(table *router.Table, registry map[string]ViewFunc) error {
	var err error
	for _, e := range table.Routes() {
		if _, ok := registry[e.Component]; !ok {
			err = multierr.Append(err, errors.Errorf("route %s: no view for component %s", e.Name, e.Component))
		}
	}
	return err
}

// Table returns the route table used for resolution
func (r *Renderer) Table() *router.Table {
	return r.table
}

// Render resolves path and builds its page. On router.ErrNoRoute,
// catalog.ErrNotFound and ErrInvalidParam the returned page is still usable:
// it is the NotFound page, or the matched page without data.
func (r *Renderer) Render(ctx context.Context, path string) (Page, error) {
	m, err := r.table.Resolve(path)
	if err != nil {
		return Page{View: NotFoundView, Path: m.Path}, err
	}
	page := Page{
		Layout: m.Layout,
		View:   m.Component,
		Route:  m.Route,
		Path:   m.Path,
		Params: m.Params,
	}
	data, err := r.views[m.Component](ctx, r, m)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			page.View = NotFoundView
		}
		return page, err
	}
	page.Data = data
	return page, nil
}

// AssetURL resolves an asset reference against the configured base URL
func (r *Renderer) AssetURL(ref string) string {
	if ref == "" || r.assetBase == "" || strings.Contains(ref, "://") {
		return ref
	}
	return strings.TrimSuffix(r.assetBase, "/") + "/" + strings.TrimPrefix(ref, "/")
}

// FormatPrice renders an XAF amount with digit grouping, e.g. "5,000 XAF"
func (r *Renderer) FormatPrice(amount int64) string {
	return r.printer.Sprintf("%d XAF", amount)
}

// ProductView is the presentation of a product
type ProductView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Short        string `json:"short"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"priceDisplay"`
	Category     string `json:"category"`
	URL          string `json:"url"`
}

func (r *Renderer) productView(p domain.Product) ProductView {
	url, _ := r.table.URL("ProductSingle", map[string]string{"id": formatID(p.ID)})
	return ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Short:        p.Short,
		Description:  p.Description,
		Image:        r.AssetURL(p.Image),
		Price:        p.Price,
		PriceDisplay: r.FormatPrice(p.Price),
		Category:     p.Category,
		URL:          url,
	}
}

func (r *Renderer) productViews(products []domain.Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, r.productView(p))
	}
	return out
}

// link returns the path of a named route, or an empty string
func (r *Renderer) link(name string) string {
	u, err := r.table.URL(name, nil)
	if err != nil {
		return ""
	}
	return u
}
