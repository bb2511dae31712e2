package catalog

import (
	"context"
	"sort"

	"github.com/google/btree"
	"github.com/pkg/errors"

	"github.com/smartagro/smartagro/internal/domain"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// MessageFilter narrows a message query. Zero values match everything.
type MessageFilter struct {
	ChatType string
	// Peer restricts direct messages to the conversation between the current
	// user and Peer, in either direction.
	Peer string
}

func (f MessageFilter) match(m domain.Message) bool {
	if f.ChatType != "" && m.ChatType != f.ChatType {
		return false
	}
	if f.Peer != "" && m.Peer() != f.Peer {
		return false
	}
	return true
}

// Reader is the read-only data store contract consumed by views and the API
type Reader interface {
	// Products returns the raw product collection
	Products(ctx context.Context) ([]domain.Product, error)

	// ProcessedProducts returns the processed product collection
	ProcessedProducts(ctx context.Context) ([]domain.Product, error)

	// Product looks an id up across both product collections
	Product(ctx context.Context, id int64) (domain.Product, error)

	Users(ctx context.Context) ([]domain.User, error)

	Messages(ctx context.Context, filter MessageFilter) ([]domain.Message, error)

	Tasks(ctx context.Context) ([]domain.Task, error)

	// Logo returns the branding asset reference
	Logo() string
}

// Store is the in-memory data store. It is immutable after NewStore and safe
// for concurrent use; every read returns a copy.
type Store struct {
	data  Dataset
	index *btree.BTreeG[domain.Product]
}

var _ Reader = (*Store)(nil)

func productLess(a, b domain.Product) bool {
	return a.ID < b.ID
}

// NewStore validates the dataset and builds the store around a private copy.
func NewStore(d Dataset) (*Store, error) {
	if err := Validate(d); err != nil {
		return nil, errors.Wrap(err, "invalid dataset")
	}
	s := &Store{
		data: Dataset{
			Products:          append([]domain.Product(nil), d.Products...),
			ProcessedProducts: append([]domain.Product(nil), d.ProcessedProducts...),
			Users:             append([]domain.User(nil), d.Users...),
			Messages:          append([]domain.Message(nil), d.Messages...),
			Tasks:             append([]domain.Task(nil), d.Tasks...),
			Logo:              d.Logo,
		},
		index: btree.NewG(8, productLess),
	}
	for _, p := range s.data.Products {
		s.index.ReplaceOrInsert(p)
	}
	for _, p := range s.data.ProcessedProducts {
		s.index.ReplaceOrInsert(p)
	}
	return s, nil
}

// NewFixtureStore returns a store over the built-in sample data.
func NewFixtureStore() *Store {
	s, err := NewStore(Fixtures())
	if err != nil {
		panic(err)
	}
	return s
}

// Dataset returns a copy of the whole dataset
func (s *Store) Dataset() Dataset {
	return Dataset{
		Products:          append([]domain.Product(nil), s.data.Products...),
		ProcessedProducts: append([]domain.Product(nil), s.data.ProcessedProducts...),
		Users:             append([]domain.User(nil), s.data.Users...),
		Messages:          append([]domain.Message(nil), s.data.Messages...),
		Tasks:             append([]domain.Task(nil), s.data.Tasks...),
		Logo:              s.data.Logo,
	}
}

func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Product(nil), s.data.Products...), nil
}

func (s *Store) ProcessedProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Product(nil), s.data.ProcessedProducts...), nil
}

func (s *Store) Product(ctx context.Context, id int64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	p, ok := s.index.Get(domain.Product{ID: id})
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

// AllProducts returns both collections merged and ordered by id
func (s *Store) AllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, s.index.Len())
	s.index.Ascend(func(p domain.Product) bool {
		out = append(out, p)
		return true
	})
	return out, nil
}

func (s *Store) Users(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.User(nil), s.data.Users...), nil
}

func (s *Store) Messages(ctx context.Context, filter MessageFilter) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Message, 0, len(s.data.Messages))
	for _, m := range s.data.Messages {
		if filter.match(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) Tasks(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Task(nil), s.data.Tasks...), nil
}

func (s *Store) Logo() string {
	return s.data.Logo
}

// AllProducts merges both collections of r, ordered by id.
func AllProducts(ctx context.Context, r Reader) ([]domain.Product, error) {
	if s, ok := r.(*Store); ok {
		return s.AllProducts(ctx)
	}
	raw, err := r.Products(ctx)
	if err != nil {
		return nil, err
	}
	processed, err := r.ProcessedProducts(ctx)
	if err != nil {
		return nil, err
	}
	all := append(raw, processed...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// LoadDataset reads every collection of r.
func LoadDataset(ctx context.Context, r Reader) (Dataset, error) {
	var (
		d   Dataset
		err error
	)
	if d.Products, err = r.Products(ctx); err != nil {
		return d, errors.Wrap(err, "load products")
	}
	if d.ProcessedProducts, err = r.ProcessedProducts(ctx); err != nil {
		return d, errors.Wrap(err, "load processed products")
	}
	if d.Users, err = r.Users(ctx); err != nil {
		return d, errors.Wrap(err, "load users")
	}
	if d.Messages, err = r.Messages(ctx, MessageFilter{}); err != nil {
		return d, errors.Wrap(err, "load messages")
	}
	if d.Tasks, err = r.Tasks(ctx); err != nil {
		return d, errors.Wrap(err, "load tasks")
	}
	d.Logo = r.Logo()
	return d, nil
}
