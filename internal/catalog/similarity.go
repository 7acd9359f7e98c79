package catalog

import (
	"context"
	"fmt"

	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
)

const entitySimilarity = "similarity"

// SimilarityStore — порт хранилища таблицы product_similarity.
type SimilarityStore interface {
	// FindNeighbors возвращает строки товаров, связанных с productID в любом направлении.
	FindNeighbors(ctx context.Context, productID string) ([]Row, error)
	// InsertEdges вставляет рёбра, пропуская уже существующие; возвращает число вставленных.
	InsertEdges(ctx context.Context, edges []domain.SimilarityEdge) (int64, error)
	// DeleteEdge удаляет (a, b) и (b, a); возвращает число удалённых строк.
	DeleteEdge(ctx context.Context, a, b string) (int64, error)
}

// SimilarityGraph трактует таблицу рёбер как неориентированный граф похожих товаров.
type SimilarityGraph struct {
	store SimilarityStore
}

func NewSimilarityGraph(store SimilarityStore) *SimilarityGraph {
	return &SimilarityGraph{store: store}
}

// NeighborsOf возвращает товары, связанные с productID, без повторов, в порядке строк хранилища.
func (g *SimilarityGraph) NeighborsOf(ctx context.Context, productID string) ([]domain.SimilarProduct, error) {
	const op = "SimilarityGraph.NeighborsOf"

	productID, err := NormalizeID(entityProduct, productID)
	if err != nil {
		return nil, err
	}

	rows, err := g.store.FindNeighbors(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, e.Storage(entitySimilarity, err))
	}

	neighbors, err := MapSimilarProducts(rows)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	seen := make(map[string]struct{}, len(neighbors))
	result := make([]domain.SimilarProduct, 0, len(neighbors))
	for _, n := range neighbors {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		result = append(result, n)
	}

	return result, nil
}

// AddEdges сохраняет пары в каноническом порядке (min, max), так что (A, B) и (B, A)
// дают одну строку. Повторы внутри пакета и уже существующие рёбра пропускаются.
func (g *SimilarityGraph) AddEdges(ctx context.Context, pairs []domain.SimilarityEdge) (int64, error) {
	const op = "SimilarityGraph.AddEdges"

	if len(pairs) == 0 {
		return 0, e.Validation(entitySimilarity, "Pairs array is empty or malformed")
	}

	edges := make([]domain.SimilarityEdge, 0, len(pairs))
	seen := make(map[domain.SimilarityEdge]struct{}, len(pairs))
	for i, pair := range pairs {
		normalized, err := normalizeEdge(pair)
		if err != nil {
			return 0, e.Wrap(fmt.Sprintf("pair %d", i), err)
		}

		edge := normalized.Canonical()
		if _, ok := seen[edge]; ok {
			continue
		}
		seen[edge] = struct{}{}
		edges = append(edges, edge)
	}

	inserted, err := g.store.InsertEdges(ctx, edges)
	if err != nil {
		return 0, e.Wrap(op, e.Storage(entitySimilarity, err))
	}

	return inserted, nil
}

// RemoveEdge удаляет связь независимо от направления, в котором она была сохранена.
func (g *SimilarityGraph) RemoveEdge(ctx context.Context, productID, similarProductID string) error {
	const op = "SimilarityGraph.RemoveEdge"

	edge, err := normalizeEdge(domain.SimilarityEdge{ProductID: productID, SimilarProductID: similarProductID})
	if err != nil {
		return err
	}

	deleted, err := g.store.DeleteEdge(ctx, edge.ProductID, edge.SimilarProductID)
	if err != nil {
		return e.Wrap(op, e.Storage(entitySimilarity, err))
	}

	if deleted == 0 {
		return e.NotFound(entitySimilarity, productID,
			fmt.Sprintf("No similar product found for product id %s", productID))
	}

	return nil
}

// normalizeEdge приводит оба id к каноническому виду; сравнение и порядок пары
// считаются только по нормализованным значениям.
func normalizeEdge(edge domain.SimilarityEdge) (domain.SimilarityEdge, error) {
	productID, err := NormalizeID(entityProduct, edge.ProductID)
	if err != nil {
		return domain.SimilarityEdge{}, err
	}

	similarID, err := NormalizeID(entityProduct, edge.SimilarProductID)
	if err != nil {
		return domain.SimilarityEdge{}, err
	}

	if productID == similarID {
		return domain.SimilarityEdge{}, e.Validation(entitySimilarity, "product cannot be similar to itself")
	}

	return domain.SimilarityEdge{ProductID: productID, SimilarProductID: similarID}, nil
}
