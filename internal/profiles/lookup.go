package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ttl-cache/internal/cache"
	"ttl-cache/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no profile has the requested ID.
var ErrNotFound = errors.New("profile not found")

// Lookup serves profiles from the database through the cache. Reads fill the
// cache on a miss; writes go to the database and invalidate the cached copy.
type Lookup struct {
	db     *gorm.DB
	simple *cache.Simple
	pool   *cache.Pool
	ttl    time.Duration
	log    zerolog.Logger
}

// NewLookup returns a Lookup that caches profiles in store for ttl.
func NewLookup(db *gorm.DB, store *cache.Store, ttl time.Duration, log zerolog.Logger) *Lookup {
	return &Lookup{
		db:     db,
		simple: cache.NewSimple(store),
		pool:   cache.NewPool(store),
		ttl:    ttl,
		log:    log.With().Str("component", "profiles").Logger(),
	}
}

// Key returns the cache key a profile is stored under.
func Key(id string) string {
	return "profile." + id
}

// Get returns the profile with the given ID.
func (l *Lookup) Get(ctx context.Context, id string) (models.Profile, error) {
	v, err := l.simple.Remember(ctx, Key(id), l.ttl, func(ctx context.Context) (any, error) {
		var p models.Profile
		err := l.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return nil, err
		}
		l.log.Debug().Str("id", id).Msg("profile loaded from database")
		return p, nil
	})
	if err != nil {
		return models.Profile{}, err
	}
	return v.(models.Profile), nil
}

// GetMany returns the profiles that exist among ids, keyed by ID. Cached
// profiles are served without touching the database.
func (l *Lookup) GetMany(ctx context.Context, ids ...string) (map[string]models.Profile, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}
	items, err := l.pool.GetItems(keys...)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.Profile, len(ids))
	var missing []string
	for _, id := range ids {
		if item := items[Key(id)]; item.IsHit() {
			out[id] = item.Value().(models.Profile)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	var rows []models.Profile
	if err := l.db.WithContext(ctx).Where("id IN ?", missing).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		item := items[Key(p.ID)].Set(p)
		if err := item.ExpiresAfter(l.ttl); err != nil {
			return nil, err
		}
		if _, err := l.pool.SaveDeferred(item); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	l.pool.Commit()
	return out, nil
}

// Warm loads every profile into the cache and returns how many were cached.
func (l *Lookup) Warm(ctx context.Context) (int, error) {
	var rows []models.Profile
	if err := l.db.WithContext(ctx).Order("username").Find(&rows).Error; err != nil {
		return 0, err
	}

	values := make([]cache.KeyValue, len(rows))
	for i, p := range rows {
		values[i] = cache.KeyValue{Key: Key(p.ID), Value: p}
	}
	if _, err := l.simple.SetMultiple(values, l.ttl); err != nil {
		return 0, err
	}
	l.log.Info().Int("count", len(rows)).Dur("ttl", l.ttl).Msg("profile cache warmed")
	return len(rows), nil
}

// Create inserts a new profile and caches it.
func (l *Lookup) Create(ctx context.Context, username, displayName, email string) (models.Profile, error) {
	p := models.Profile{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: displayName,
		Email:       email,
	}
	if err := l.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Profile{}, err
	}
	if _, err := l.simple.Set(Key(p.ID), p, l.ttl); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Rename updates a profile's display name and drops the cached copy.
func (l *Lookup) Rename(ctx context.Context, id, displayName string) error {
	res := l.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Update("display_name", displayName)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	_, err := l.simple.Delete(Key(id))
	return err
}

// Invalidate drops the cached copies of ids.
func (l *Lookup) Invalidate(ids ...string) error {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}
	_, err := l.simple.DeleteMultiple(keys)
	return err
}

// Cached reports whether the profile is currently held by the cache.
func (l *Lookup) Cached(id string) (bool, error) {
	return l.pool.HasItem(Key(id))
}
