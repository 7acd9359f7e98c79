package catalog

import (
	"strings"

	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

const productsTable = "products"

var (
	// DefaultPriceFrom и DefaultPriceTo подставляются, если задана только одна граница цены.
	DefaultPriceFrom = decimal.Zero
	DefaultPriceTo   = decimal.NewFromInt(999999)
)

// Predicate — одно измерение поискового фильтра.
type Predicate interface {
	sqlizer() sq.Sqlizer
}

// TitleContains — подстрока в названии.
type TitleContains string

// DescriptionContains — подстрока в описании.
type DescriptionContains string

// PriceBetween — цена строго внутри (From, To).
type PriceBetween struct {
	From decimal.Decimal
	To   decimal.Decimal
}

func (t TitleContains) sqlizer() sq.Sqlizer {
	return sq.ILike{"title": containsPattern(string(t))}
}

func (d DescriptionContains) sqlizer() sq.Sqlizer {
	return sq.ILike{"description": containsPattern(string(d))}
}

func (p PriceBetween) sqlizer() sq.Sqlizer {
	return sq.And{sq.Gt{"price": p.From}, sq.Lt{"price": p.To}}
}

// Combinator задаёт, как объединяются предикаты.
type Combinator int

const (
	// CombineOr расширяет выборку: товар подходит, если выполнен любой предикат.
	CombineOr Combinator = iota
	// CombineAnd сужает выборку: должны выполняться все предикаты.
	CombineAnd
)

// Predicates раскладывает фильтр на предикаты в фиксированном порядке:
// название, описание, диапазон цены. Пустые строки считаются отсутствующими.
func Predicates(filter domain.ProductFilter) []Predicate {
	var preds []Predicate

	if filter.Title != nil && *filter.Title != "" {
		preds = append(preds, TitleContains(*filter.Title))
	}

	if filter.Description != nil && *filter.Description != "" {
		preds = append(preds, DescriptionContains(*filter.Description))
	}

	if filter.HasPriceRange() {
		rng := PriceBetween{From: DefaultPriceFrom, To: DefaultPriceTo}
		if filter.PriceFrom != nil {
			rng.From = *filter.PriceFrom
		}
		if filter.PriceTo != nil {
			rng.To = *filter.PriceTo
		}
		preds = append(preds, rng)
	}

	return preds
}

// Compile строит запрос к таблице products. Без предикатов выбираются все товары;
// порядок выдачи, как и у полного списка, по порядку вставки.
func Compile(preds []Predicate, comb Combinator) (string, []any, error) {
	query := sq.Select("*").From(productsTable).OrderBy("seq").PlaceholderFormat(sq.Dollar)

	if len(preds) > 0 {
		parts := make([]sq.Sqlizer, 0, len(preds))
		for _, p := range preds {
			parts = append(parts, p.sqlizer())
		}

		if comb == CombineAnd {
			query = query.Where(sq.And(parts))
		} else {
			query = query.Where(sq.Or(parts))
		}
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return "", nil, e.Wrap("catalog.Compile", err)
	}

	return sql, args, nil
}

// CompileFilter строит поисковый запрос по фильтру. Несколько заданных полей
// объединяются через OR: так работал поиск витрины, и это поведение сохранено.
func CompileFilter(filter domain.ProductFilter) (string, []any, error) {
	return Compile(Predicates(filter), CombineOr)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
