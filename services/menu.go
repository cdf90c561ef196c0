package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"menux/db"
	"menux/models"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// CatalogProvider supplies a restaurant's read-only menu snapshot.
type CatalogProvider interface {
	Catalog(ctx context.Context, restaurantID string) (*models.Catalog, error)
}

// PGCatalog reads catalogs from PostgreSQL through db.Pool.
type PGCatalog struct{}

func (PGCatalog) Catalog(ctx context.Context, restaurantID string) (*models.Catalog, error) {
	return GetCatalog(ctx, restaurantID)
}

func GetCatalog(ctx context.Context, restaurantID string) (*models.Catalog, error) {
	rc, err := GetRestaurantConfig(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	cats, err := ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	items, err := ListMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	mods, err := ListModifiers(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list modifiers: %w", err)
	}
	return &models.Catalog{Restaurant: *rc, Categories: cats, Items: items, Modifiers: mods}, nil
}

func GetRestaurantConfig(ctx context.Context, restaurantID string) (*models.RestaurantConfig, error) {
	var rc models.RestaurantConfig
	var chatID *int64
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, primary_color, currency, logo, phone, telegram_chat_id
		FROM restaurants WHERE id = $1`,
		restaurantID,
	).Scan(&rc.ID, &rc.Name, &rc.PrimaryColor, &rc.Currency, &rc.Logo, &rc.Phone, &chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if chatID != nil {
		rc.TelegramChatID = *chatID
	}
	return &rc, nil
}

func ListCategories(ctx context.Context, restaurantID string) ([]models.Category, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name FROM categories
		WHERE restaurant_id = $1
		ORDER BY sort_order, id`,
		restaurantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, category_id, name, description, price::text, image, tags
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY sort_order, id`,
		restaurantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var it models.MenuItem
		var price string
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description, &price, &it.Image, &it.Tags); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("item %s price %q: %w", it.ID, price, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListModifiers returns the restaurant's modifiers with their options in order.
// A modifier with no stored options is kept with an empty option list. An
// empty result means the defaults apply.
func ListModifiers(ctx context.Context, restaurantID string) ([]models.Modifier, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT m.id, m.name, m.selection_type, m.required, o.label, o.price_delta::text
		FROM modifiers m
		LEFT JOIN modifier_options o ON o.restaurant_id = m.restaurant_id AND o.modifier_id = m.id
		WHERE m.restaurant_id = $1
		ORDER BY m.sort_order, m.id, o.sort_order, o.label`,
		restaurantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mrows []modifierRow
	for rows.Next() {
		var r modifierRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Required, &r.Label, &r.Delta); err != nil {
			return nil, err
		}
		mrows = append(mrows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupModifierRows(mrows)
}

// modifierRow is one modifier joined with one of its options; Label and Delta
// are nil when the modifier has none.
type modifierRow struct {
	ID, Name, Type string
	Required       bool
	Label, Delta   *string
}

// groupModifierRows folds rows ordered by modifier into modifiers.
func groupModifierRows(rows []modifierRow) ([]models.Modifier, error) {
	var mods []models.Modifier
	for _, r := range rows {
		if n := len(mods); n == 0 || mods[n-1].ID != r.ID {
			mods = append(mods, models.Modifier{
				ID:       r.ID,
				Name:     r.Name,
				Type:     models.SelectionType(r.Type),
				Required: r.Required,
				Options:  []models.ModifierOption{},
			})
		}
		if r.Label == nil {
			continue
		}
		delta := decimal.Zero
		if r.Delta != nil {
			d, err := decimal.NewFromString(*r.Delta)
			if err != nil {
				return nil, fmt.Errorf("modifier %s option %q delta: %w", r.ID, *r.Label, err)
			}
			delta = d
		}
		last := &mods[len(mods)-1]
		last.Options = append(last.Options, models.ModifierOption{Label: *r.Label, PriceDelta: delta})
	}
	return mods, nil
}

const catalogKeyPrefix = "menux:catalog:"

// CachedCatalog is a read-through Redis cache in front of another provider.
// Redis failures are logged and the underlying provider answers.
type CachedCatalog struct {
	Next   CatalogProvider
	Client *redis.Client
	TTL    time.Duration
}

func (c *CachedCatalog) Catalog(ctx context.Context, restaurantID string) (*models.Catalog, error) {
	if c.Client == nil {
		return c.Next.Catalog(ctx, restaurantID)
	}
	key := catalogKeyPrefix + restaurantID
	if b, err := c.Client.Get(ctx, key).Bytes(); err == nil {
		var cat models.Catalog
		if err := json.Unmarshal(b, &cat); err == nil {
			return &cat, nil
		}
		log.Warn().Str("restaurant", restaurantID).Msg("dropping undecodable cached catalog")
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("restaurant", restaurantID).Msg("catalog cache read failed")
	}

	cat, err := c.Next.Catalog(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(cat); err == nil {
		if err := c.Client.Set(ctx, key, b, c.TTL).Err(); err != nil {
			log.Warn().Err(err).Str("restaurant", restaurantID).Msg("catalog cache write failed")
		}
	}
	return cat, nil
}
