package postgres

import (
	"context"
	"fmt"

	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

type catalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) interfaces.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) FindRecipes(ctx context.Context, ids []int64) (map[int64]domain.Recipe, error) {
	query := `
		SELECT id, name, price, category, active
		FROM recipes
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make(map[int64]domain.Recipe, len(ids))
	for rows.Next() {
		var recipe domain.Recipe
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.Price, &recipe.Category, &recipe.Active); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes[recipe.ID] = recipe
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}

	return recipes, nil
}

func (r *catalogRepository) IngredientIDs(ctx context.Context, recipeID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ingredient_id FROM recipe_ingredient WHERE recipe_id = $1`,
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipe ingredients: %w", err)
	}

	return ids, nil
}
