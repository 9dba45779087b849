package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansokolv/expense-cards/internal/models"
)

func f64(v float64) *float64 { return &v }

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name         string
		filter       models.ExpenseFilter
		expectedSQL  string
		expectedArgs []any
	}{
		{
			name: "только владелец и сортировка по умолчанию",
			filter: models.ExpenseFilter{
				OwnerUID:  "owner-a",
				SortField: "created_at",
			},
			expectedSQL:  "SELECT id, title, category, amount, date, owner_uid, created_at, updated_at FROM expense_cards WHERE owner_uid = $1 ORDER BY created_at ASC",
			expectedArgs: []any{"owner-a"},
		},
		{
			name: "категория и обе границы суммы",
			filter: models.ExpenseFilter{
				OwnerUID:  "owner-a",
				Category:  "Food",
				MinAmount: f64(10),
				MaxAmount: f64(100),
				SortField: "amount",
				SortDesc:  true,
			},
			expectedSQL:  "SELECT id, title, category, amount, date, owner_uid, created_at, updated_at FROM expense_cards WHERE owner_uid = $1 AND category = $2 AND amount >= $3 AND amount <= $4 ORDER BY amount DESC",
			expectedArgs: []any{"owner-a", "Food", 10.0, 100.0},
		},
		{
			name: "только верхняя граница суммы без нижней",
			filter: models.ExpenseFilter{
				OwnerUID:  "owner-a",
				MaxAmount: f64(50),
				SortField: "created_at",
			},
			expectedSQL:  "SELECT id, title, category, amount, date, owner_uid, created_at, updated_at FROM expense_cards WHERE owner_uid = $1 AND amount <= $2 ORDER BY created_at ASC",
			expectedArgs: []any{"owner-a", 50.0},
		},
		{
			name: "нулевая граница суммы — полноценное условие",
			filter: models.ExpenseFilter{
				OwnerUID:  "owner-a",
				MaxAmount: f64(0),
				SortField: "created_at",
			},
			expectedSQL:  "SELECT id, title, category, amount, date, owner_uid, created_at, updated_at FROM expense_cards WHERE owner_uid = $1 AND amount <= $2 ORDER BY created_at ASC",
			expectedArgs: []any{"owner-a", 0.0},
		},
		{
			name: "границы дат независимы",
			filter: models.ExpenseFilter{
				OwnerUID:  "owner-a",
				MinDate:   date("2024-01-01"),
				SortField: "date",
			},
			expectedSQL:  "SELECT id, title, category, amount, date, owner_uid, created_at, updated_at FROM expense_cards WHERE owner_uid = $1 AND date >= $2 ORDER BY date ASC",
			expectedArgs: []any{"owner-a", *date("2024-01-01")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListQuery(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, query)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

// Владелец присутствует в условии даже при полностью пустом фильтре.
func TestBuildListQuery_OwnerAlwaysScoped(t *testing.T) {
	query, args, err := buildListQuery(models.ExpenseFilter{
		OwnerUID:  "owner-a",
		SortField: "created_at",
	})
	require.NoError(t, err)
	assert.Contains(t, query, "owner_uid = $1")
	assert.Equal(t, []any{"owner-a"}, args)
}
