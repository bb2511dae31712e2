package catalog

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/smartagro/smartagro/internal/domain"
)

// GormRepository is the GORM implementation of Reader
type GormRepository struct {
	db   *gorm.DB
	logo string
}

var _ Reader = (*GormRepository)(nil)

// NewGormRepository creates a new GORM-based repository
func NewGormRepository(db *gorm.DB, logo string) *GormRepository {
	return &GormRepository{db: db, logo: logo}
}

func (r *GormRepository) productsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

func (r *GormRepository) Products(ctx context.Context) ([]domain.Product, error) {
	return r.productsByCategory(ctx, domain.CategoryRaw)
}

func (r *GormRepository) ProcessedProducts(ctx context.Context) ([]domain.Product, error) {
	return r.productsByCategory(ctx, domain.CategoryProcessed)
}

func (r *GormRepository) Product(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

func (r *GormRepository) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *GormRepository) Messages(ctx context.Context, filter MessageFilter) ([]domain.Message, error) {
	query := r.db.WithContext(ctx)
	if filter.ChatType != "" {
		query = query.Where("chat_type = ?", filter.ChatType)
	}
	if filter.Peer != "" {
		query = query.Where("chat_type = ?", domain.ChatDirect).
			Where("(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)",
				filter.Peer, domain.CurrentUser, domain.CurrentUser, filter.Peer)
	}
	var messages []domain.Message
	err := query.Order("id ASC").Find(&messages).Error
	return messages, err
}

func (r *GormRepository) Tasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *GormRepository) Logo() string {
	return r.logo
}

// Seed inserts every record of d that is not present yet, matched by primary
// key. Existing rows are left untouched. It returns the number of rows created.
func (r *GormRepository) Seed(ctx context.Context, d Dataset) (int, error) {
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range append(append([]domain.Product(nil), d.Products...), d.ProcessedProducts...) {
			n, err := createMissing(tx, &domain.Product{}, p.ID, &p)
			if err != nil {
				return errors.Wrapf(err, "seed product %d", p.ID)
			}
			created += n
		}
		for _, u := range d.Users {
			n, err := createMissing(tx, &domain.User{}, u.ID, &u)
			if err != nil {
				return errors.Wrapf(err, "seed user %d", u.ID)
			}
			created += n
		}
		for _, m := range d.Messages {
			n, err := createMissing(tx, &domain.Message{}, m.ID, &m)
			if err != nil {
				return errors.Wrapf(err, "seed message %d", m.ID)
			}
			created += n
		}
		for _, t := range d.Tasks {
			n, err := createMissing(tx, &domain.Task{}, t.ID, &t)
			if err != nil {
				return errors.Wrapf(err, "seed task %d", t.ID)
			}
			created += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func createMissing(tx *gorm.DB, model interface{}, id int64, row interface{}) (int, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	if err := tx.Create(row).Error; err != nil {
		return 0, err
	}
	return 1, nil
}
