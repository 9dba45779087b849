// Package filter переводит недоверенные параметры запроса в типизированный
// фильтр выборки карточек расходов.
//
// Parse принимает query-параметры как есть и возвращает models.ExpenseFilter,
// в котором владелец проставлен вызывающей стороной, все числовые и датовые
// границы распарсены, а поле сортировки сведено к белому списку колонок.
package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/ansokolv/expense-cards/internal/models"
)

// ErrInvalidRange возвращается, когда граница диапазона присутствует
// в запросе, но не парсится как число или дата.
var ErrInvalidRange = errors.New("invalid range bound")

// DateLayout — формат дат в параметрах minDate/maxDate и в теле запросов.
const DateLayout = "2006-01-02"

// sortColumns — белый список колонок сортировки. Ключ — значение
// параметра sortBasis, значение — имя колонки в базе. Всё, чего здесь
// нет, молча заменяется колонкой по умолчанию.
var sortColumns = map[string]string{
	"title":     "title",
	"category":  "category",
	"amount":    "amount",
	"date":      "date",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// DefaultSortColumn — колонка сортировки по умолчанию.
const DefaultSortColumn = "created_at"

// Parse строит ExpenseFilter из query-параметров запроса.
//
// ownerUID берётся из авторизованной сессии и попадает в фильтр всегда —
// параметры запроса на владельца повлиять не могут. Границы диапазонов
// независимы: присутствие одной не требует другой, нулевая граница
// суммы — валидное значение. Непарсящаяся граница — ErrInvalidRange.
func Parse(ownerUID string, params url.Values) (*models.ExpenseFilter, error) {
	const op = "filter.Parse"

	f := &models.ExpenseFilter{
		OwnerUID:  ownerUID,
		Category:  params.Get("category"),
		SortField: DefaultSortColumn,
		SortDesc:  params.Get("sortOrder") == "desc",
	}

	if basis := params.Get("sortBasis"); basis != "" {
		if column, ok := sortColumns[basis]; ok {
			f.SortField = column
		}
	}

	var err error
	if f.MinAmount, err = parseAmount(params.Get("minAmount")); err != nil {
		return nil, fmt.Errorf("%s: minAmount: %w", op, err)
	}
	if f.MaxAmount, err = parseAmount(params.Get("maxAmount")); err != nil {
		return nil, fmt.Errorf("%s: maxAmount: %w", op, err)
	}
	if f.MinDate, err = parseDate(params.Get("minDate")); err != nil {
		return nil, fmt.Errorf("%s: minDate: %w", op, err)
	}
	if f.MaxDate, err = parseDate(params.Get("maxDate")); err != nil {
		return nil, fmt.Errorf("%s: maxDate: %w", op, err)
	}
	return f, nil
}

func parseAmount(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, raw)
	}
	return &value, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, raw)
	}
	return &value, nil
}
