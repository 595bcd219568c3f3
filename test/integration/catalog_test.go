package integration

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donutopia/storefront/internal/catalog/domain"
	catalogpg "github.com/donutopia/storefront/internal/catalog/infrastructure/postgres"
	"github.com/donutopia/storefront/pkg/money"
)

func TestCatalogRepository(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run container tests")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	require.NoError(t, err)
	defer env.Teardown(ctx)

	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	defer pool.Close()

	repo := catalogpg.NewRepository(slog.New(slog.DiscardHandler), pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	t.Run("empty_tables_fall_back_to_defaults", func(t *testing.T) {
		store, err := repo.Load(ctx)
		require.NoError(t, err)

		price, ok := store.UnitPrice(domain.TypeTraditional, "Clássicos", "Chocolate")
		require.True(t, ok)
		assert.Equal(t, money.Cents(1000), price)
	})

	t.Run("seed_then_load_round_trips", func(t *testing.T) {
		require.NoError(t, repo.Seed(ctx, domain.DefaultStore()))

		store, err := repo.Load(ctx)
		require.NoError(t, err)

		trad, ok := store.Catalog(domain.TypeTraditional)
		require.True(t, ok)
		require.Len(t, trad.Categories, 3)
		assert.Equal(t, "Clássicos", trad.Categories[0].Name)
		assert.Equal(t,
			[]string{"Brigadeiro Meio Amargo", "Doce de Leite", "Beijinho", "Nesquik"},
			trad.Categories[1].Flavors)

		price, ok := store.UnitPrice(domain.TypeMini, "Gourmet", "Oreo")
		require.True(t, ok)
		assert.Equal(t, money.Cents(450), price)
	})

	t.Run("price_update_survives_reload", func(t *testing.T) {
		_, err := pool.Exec(ctx,
			`UPDATE catalog_categories SET price_cents=1100 WHERE product_type='tradicional' AND name='Clássicos'`)
		require.NoError(t, err)

		store, err := repo.Load(ctx)
		require.NoError(t, err)

		price, ok := store.UnitPrice(domain.TypeTraditional, "Clássicos", "Chocolate")
		require.True(t, ok)
		assert.Equal(t, money.Cents(1100), price)
	})
}
