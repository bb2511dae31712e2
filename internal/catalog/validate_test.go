package catalog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/smartagro/smartagro/internal/domain"
)

func TestValidateFixtures(t *testing.T) {
	assert.NoError(t, Validate(Fixtures()))
}

func TestValidateFixtureMessages(t *testing.T) {
	for _, m := range Fixtures().Messages {
		switch m.ChatType {
		case domain.ChatDirect:
			assert.NotEmpty(t, m.Receiver, "message %d", m.ID)
		case domain.ChatGeneral:
			assert.Empty(t, m.Receiver, "message %d", m.ID)
		}
	}
}

func TestValidateViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Dataset)
		want   string
	}{
		{
			name:   "duplicate product id",
			mutate: func(d *Dataset) { d.Products[1].ID = 1 },
			want:   "products[1]: duplicate id",
		},
		{
			name:   "non positive price",
			mutate: func(d *Dataset) { d.ProcessedProducts[2].Price = 0 },
			want:   "pro_products[6]: price must be positive",
		},
		{
			name:   "wrong category",
			mutate: func(d *Dataset) { d.Products[0].Category = domain.CategoryProcessed },
			want:   `products[1]: category "processed"`,
		},
		{
			name:   "direct without receiver",
			mutate: func(d *Dataset) { d.Messages[3].Receiver = "" },
			want:   "messages[4]: direct message without receiver",
		},
		{
			name:   "general with receiver",
			mutate: func(d *Dataset) { d.Messages[0].Receiver = "Bob Smith" },
			want:   "messages[1]: general message with receiver",
		},
		{
			name:   "unknown chat type",
			mutate: func(d *Dataset) { d.Messages[0].ChatType = "group" },
			want:   `unknown chat type "group"`,
		},
		{
			name:   "bad due date",
			mutate: func(d *Dataset) { d.Tasks[0].DueDate = "someday" },
			want:   `tasks[1]: invalid due date "someday"`,
		},
		{
			name:   "duplicate user",
			mutate: func(d *Dataset) { d.Users[5].ID = 1 },
			want:   "users[1]: duplicate id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Fixtures()
			tt.mutate(&d)
			err := Validate(d)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	d := Fixtures()
	d.Products[0].Price = -1
	d.Tasks[2].DueDate = ""

	err := Validate(d)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)

	var verr *ValidationError
	require.True(t, errors.As(errs[0], &verr))
	assert.Equal(t, "products", verr.Collection)
	assert.Equal(t, int64(1), verr.ID)
}
