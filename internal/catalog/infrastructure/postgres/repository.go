package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donutopia/storefront/internal/catalog/domain"
	"github.com/donutopia/storefront/pkg/money"
)

// Repository loads the menu from Postgres once at startup. The running
// service never goes back to the database; the loaded store is immutable.
type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS catalog_categories (
			id SERIAL PRIMARY KEY,
			product_type TEXT NOT NULL,
			name TEXT NOT NULL,
			price_cents BIGINT NOT NULL,
			position INT NOT NULL,
			UNIQUE (product_type, name)
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_flavors (
			category_id INT NOT NULL REFERENCES catalog_categories(id) ON DELETE CASCADE,
			flavor TEXT NOT NULL,
			position INT NOT NULL,
			UNIQUE (category_id, flavor)
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Seed writes the store's catalogs into an empty database.
func (r *Repository) Seed(ctx context.Context, store *domain.Store) error {
	for _, t := range []domain.ProductType{domain.TypeTraditional, domain.TypeMini} {
		cat, ok := store.Catalog(t)
		if !ok {
			continue
		}
		for pos, c := range cat.Categories {
			var id int
			err := r.pool.QueryRow(ctx,
				`INSERT INTO catalog_categories (product_type, name, price_cents, position)
				 VALUES ($1,$2,$3,$4)
				 ON CONFLICT (product_type, name) DO UPDATE SET price_cents=$3, position=$4
				 RETURNING id`,
				string(t), c.Name, int64(c.PriceCents), pos).Scan(&id)
			if err != nil {
				return err
			}
			for fpos, f := range c.Flavors {
				_, err = r.pool.Exec(ctx,
					`INSERT INTO catalog_flavors (category_id, flavor, position)
					 VALUES ($1,$2,$3)
					 ON CONFLICT (category_id, flavor) DO UPDATE SET position=$3`,
					id, f, fpos)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Load reads both catalogs. Empty tables fall back to the embedded defaults
// so a fresh database still serves the full menu.
func (r *Repository) Load(ctx context.Context) (*domain.Store, error) {
	defaults := domain.DefaultStore()

	traditional, err := r.loadCatalog(ctx, domain.TypeTraditional)
	if err != nil {
		return nil, err
	}
	mini, err := r.loadCatalog(ctx, domain.TypeMini)
	if err != nil {
		return nil, err
	}

	if len(traditional.Categories) == 0 || len(mini.Categories) == 0 {
		r.log.Info("catalog tables empty, using embedded defaults")
		return defaults, nil
	}

	if def, ok := defaults.Catalog(domain.TypeTraditional); ok {
		traditional.Title = def.Title
	}
	if def, ok := defaults.Catalog(domain.TypeMini); ok {
		mini.Title = def.Title
	}

	r.log.Info("catalog loaded",
		"traditional_categories", len(traditional.Categories),
		"mini_categories", len(mini.Categories))
	return domain.NewStore(traditional, mini), nil
}

func (r *Repository) loadCatalog(ctx context.Context, t domain.ProductType) (domain.Catalog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price_cents FROM catalog_categories
		 WHERE product_type=$1 ORDER BY position`, string(t))
	if err != nil {
		return domain.Catalog{}, err
	}
	defer rows.Close()

	type rawCategory struct {
		id       int
		category domain.Category
	}
	var raw []rawCategory
	for rows.Next() {
		var rc rawCategory
		var price int64
		if err := rows.Scan(&rc.id, &rc.category.Name, &price); err != nil {
			return domain.Catalog{}, err
		}
		rc.category.PriceCents = money.Cents(price)
		raw = append(raw, rc)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, err
	}

	var out domain.Catalog
	for _, rc := range raw {
		frows, err := r.pool.Query(ctx,
			`SELECT flavor FROM catalog_flavors WHERE category_id=$1 ORDER BY position`, rc.id)
		if err != nil {
			return domain.Catalog{}, err
		}
		for frows.Next() {
			var f string
			if err := frows.Scan(&f); err != nil {
				frows.Close()
				return domain.Catalog{}, err
			}
			rc.category.Flavors = append(rc.category.Flavors, f)
		}
		if err := frows.Err(); err != nil {
			frows.Close()
			return domain.Catalog{}, err
		}
		frows.Close()
		out.Categories = append(out.Categories, rc.category)
	}
	return out, nil
}
