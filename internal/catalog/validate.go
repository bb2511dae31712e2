package catalog

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
	"go.uber.org/multierr"

	"github.com/smartagro/smartagro/internal/domain"
)

// ValidationError describes one problem found in a dataset
type ValidationError struct {
	Collection string
	ID         int64
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", e.Collection, e.ID, e.Reason)
}

// Validate checks the dataset invariants and returns every violation combined
// into a single error (see multierr.Errors), or nil.
//
// Product ids share one id space: an id may not appear in both collections, so
// that a product can be addressed by id alone.
func Validate(d Dataset) error {
	var err error

	seen := make(map[int64]string)
	checkProducts := func(collection, category string, products []domain.Product) {
		local := make(map[int64]struct{}, len(products))
		for _, p := range products {
			if _, dup := local[p.ID]; dup {
				err = multierr.Append(err, &ValidationError{collection, p.ID, "duplicate id"})
				continue
			}
			local[p.ID] = struct{}{}
			if other, dup := seen[p.ID]; dup {
				err = multierr.Append(err, &ValidationError{collection, p.ID, "id already used in " + other})
			}
			seen[p.ID] = collection
			if p.ID <= 0 {
				err = multierr.Append(err, &ValidationError{collection, p.ID, "id must be positive"})
			}
			if strings.TrimSpace(p.Name) == "" {
				err = multierr.Append(err, &ValidationError{collection, p.ID, "name is required"})
			}
			if p.Price <= 0 {
				err = multierr.Append(err, &ValidationError{collection, p.ID, fmt.Sprintf("price must be positive, got %d", p.Price)})
			}
			if p.Category != category {
				err = multierr.Append(err, &ValidationError{collection, p.ID, fmt.Sprintf("category %q, want %q", p.Category, category)})
			}
		}
	}
	checkProducts("products", domain.CategoryRaw, d.Products)
	checkProducts("pro_products", domain.CategoryProcessed, d.ProcessedProducts)

	userIDs := make(map[int64]struct{}, len(d.Users))
	for _, u := range d.Users {
		if _, dup := userIDs[u.ID]; dup {
			err = multierr.Append(err, &ValidationError{"users", u.ID, "duplicate id"})
		}
		userIDs[u.ID] = struct{}{}
		if strings.TrimSpace(u.Name) == "" {
			err = multierr.Append(err, &ValidationError{"users", u.ID, "name is required"})
		}
	}

	msgIDs := make(map[int64]struct{}, len(d.Messages))
	for _, m := range d.Messages {
		if _, dup := msgIDs[m.ID]; dup {
			err = multierr.Append(err, &ValidationError{"messages", m.ID, "duplicate id"})
		}
		msgIDs[m.ID] = struct{}{}
		switch m.ChatType {
		case domain.ChatDirect:
			if strings.TrimSpace(m.Receiver) == "" {
				err = multierr.Append(err, &ValidationError{"messages", m.ID, "direct message without receiver"})
			}
		case domain.ChatGeneral:
			if m.Receiver != "" {
				err = multierr.Append(err, &ValidationError{"messages", m.ID, "general message with receiver"})
			}
		default:
			err = multierr.Append(err, &ValidationError{"messages", m.ID, fmt.Sprintf("unknown chat type %q", m.ChatType)})
		}
		if strings.TrimSpace(m.Sender) == "" {
			err = multierr.Append(err, &ValidationError{"messages", m.ID, "sender is required"})
		}
	}

	taskIDs := make(map[int64]struct{}, len(d.Tasks))
	for _, t := range d.Tasks {
		if _, dup := taskIDs[t.ID]; dup {
			err = multierr.Append(err, &ValidationError{"tasks", t.ID, "duplicate id"})
		}
		taskIDs[t.ID] = struct{}{}
		if _, perr := dateparse.ParseStrict(t.DueDate); perr != nil {
			err = multierr.Append(err, &ValidationError{"tasks", t.ID, fmt.Sprintf("invalid due date %q", t.DueDate)})
		}
	}

	return err
}
