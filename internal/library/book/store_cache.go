// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
)

// scanBatch is the SCAN page size used when purging the cache.
const scanBatch = 100

// guardedSet writes a cache entry unless it would move the entry backwards.
//
// KEYS[1] entry key, KEYS[2] generation key.
// ARGV[1] generation the caller observed before reading the store,
// ARGV[2] comment count, ARGV[3] "1" for a tombstone, ARGV[4] payload,
// ARGV[5] TTL in milliseconds.
//
// The write is refused when a purge bumped the generation, when the live
// entry is a tombstone, or when the live entry already holds as many comments.
// Comment logs only grow, so the count orders every version of a book.
var guardedSet = redis.NewScript(`
local generation = redis.call('GET', KEYS[2]) or '0'
if generation ~= ARGV[1] then
  return 0
end

local current = redis.call('GET', KEYS[1])
if current then
  local ok, entry = pcall(cjson.decode, current)
  if ok and type(entry) == 'table' and entry.gen == generation then
    if entry.deleted then
      return 0
    end
    if ARGV[3] ~= '1' and (tonumber(entry.count) or 0) >= tonumber(ARGV[2]) then
      return 0
    end
  end
end

redis.call('SET', KEYS[1], ARGV[4], 'PX', ARGV[5])
return 1
`)

// cacheEntry is the stored form of a book, or of its deletion.
type cacheEntry struct {
	Generation string `json:"gen"`
	Count      int    `json:"count"`
	Deleted    bool   `json:"deleted,omitempty"`
	Book       *Book  `json:"book,omitempty"`
}

// CachedRepository is a read-through Redis cache in front of another [Repository].
//
// Only single-book lookups are cached. Entries are keyed by the canonical id
// the store returns. Appends write their result back and deletes leave a
// tombstone, both through [guardedSet], so a lookup that raced a mutation
// cannot restore an older version. Delete-all bumps a generation counter that
// invalidates every earlier entry.
//
// Redis failures are logged and the call falls through to the store; the
// cache never turns a healthy store into a fault.
type CachedRepository struct {
	next   Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with a Redis cache whose entries expire after ttl.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	return &CachedRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func cacheKey(id string) string {
	return constants.RedisPrefixBook + id
}

// canonicalID folds an id to the spelling the stores return.
// UUIDs and ObjectIDs are both rendered as lowercase hex.
func canonicalID(id string) string {
	return strings.ToLower(id)
}

// ListBooks is not cached.
func (repository *CachedRepository) ListBooks(ctx context.Context) ([]*Summary, error) {
	return repository.next.ListBooks(ctx)
}

// CreateBook is not cached; a new book is loaded on its first lookup.
func (repository *CachedRepository) CreateBook(ctx context.Context, title string) (*Book, error) {
	return repository.next.CreateBook(ctx, title)
}

// GetBook serves from Redis when possible and fills the cache on a miss.
//
// The generation is read before the store so a purge that lands in between
// voids the fill.
func (repository *CachedRepository) GetBook(ctx context.Context, id string) (*Book, error) {
	generation, entry, ok := repository.lookup(ctx, id)
	if entry != nil {
		if entry.Deleted {
			return nil, ErrNotFound
		}
		return entry.Book, nil
	}

	b, err := repository.next.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if ok {
		repository.store(ctx, generation, &cacheEntry{Count: b.CommentCount, Book: b}, b.ID)
	}
	return b, nil
}

// AppendComment writes the appended book back to the cache.
func (repository *CachedRepository) AppendComment(ctx context.Context, id, comment string) (*Book, error) {
	generation, ok := repository.generation(ctx)

	b, err := repository.next.AppendComment(ctx, id, comment)
	if err != nil {
		return nil, err
	}

	if ok {
		repository.store(ctx, generation, &cacheEntry{Count: b.CommentCount, Book: b}, b.ID)
	} else {
		repository.evict(ctx, b.ID)
	}
	return b, nil
}

// DeleteBook leaves a tombstone under the canonical id once the store removed the book.
//
// Ids are never reused, so the tombstone is safe for its whole TTL.
func (repository *CachedRepository) DeleteBook(ctx context.Context, id string) (bool, error) {
	removed, err := repository.next.DeleteBook(ctx, id)
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}

	canonical := canonicalID(id)
	if canonical != id {
		repository.evict(ctx, id)
	}

	if generation, ok := repository.generation(ctx); ok {
		repository.store(ctx, generation, &cacheEntry{Deleted: true}, canonical)
	} else {
		repository.evict(ctx, canonical)
	}
	return true, nil
}

// DeleteAllBooks bumps the generation after the store delete, then drops the stale keys.
func (repository *CachedRepository) DeleteAllBooks(ctx context.Context) (int64, error) {
	removed, err := repository.next.DeleteAllBooks(ctx)
	if err != nil {
		return 0, err
	}

	if err := repository.client.Incr(ctx, constants.RedisKeyBookGeneration).Err(); err != nil {
		repository.logger.WarnContext(ctx, "book_cache_generation_failed", slog.Any("error", err))
	}

	iter := repository.client.Scan(ctx, 0, constants.RedisPrefixBook+"*", scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		repository.logger.WarnContext(ctx, "book_cache_scan_failed", slog.Any("error", err))
	}

	if len(keys) > 0 {
		if err := repository.client.Del(ctx, keys...).Err(); err != nil {
			repository.logger.WarnContext(ctx, "book_cache_purge_failed", slog.Any("error", err))
		}
	}

	return removed, nil
}

// lookup fetches the entry for id together with the current generation.
//
// entry is nil on a miss, on a corrupt entry, or on one from an older
// generation. ok is false when Redis could not be read at all.
func (repository *CachedRepository) lookup(ctx context.Context, id string) (generation string, entry *cacheEntry, ok bool) {
	values, err := repository.client.MGet(ctx, cacheKey(id), constants.RedisKeyBookGeneration).Result()
	if err != nil {
		repository.logger.WarnContext(ctx, "book_cache_get_failed", slog.String("book_id", id), slog.Any("error", err))
		return "", nil, false
	}

	generation = "0"
	if current, isString := values[1].(string); isString {
		generation = current
	}

	raw, isString := values[0].(string)
	if !isString {
		return generation, nil, true
	}

	var cached cacheEntry
	if err := json.Unmarshal([]byte(raw), &cached); err != nil || (!cached.Deleted && cached.Book == nil) {
		repository.logger.WarnContext(ctx, "book_cache_corrupt_entry", slog.String("book_id", id))
		return generation, nil, true
	}
	if cached.Generation != generation {
		return generation, nil, true
	}

	return generation, &cached, true
}

// generation reads the purge counter; a missing key is generation "0".
func (repository *CachedRepository) generation(ctx context.Context) (string, bool) {
	generation, err := repository.client.Get(ctx, constants.RedisKeyBookGeneration).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0", true
	case err != nil:
		repository.logger.WarnContext(ctx, "book_cache_generation_failed", slog.Any("error", err))
		return "", false
	}
	return generation, true
}

// store writes entry under id through [guardedSet].
func (repository *CachedRepository) store(ctx context.Context, generation string, entry *cacheEntry, id string) {
	entry.Generation = generation

	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}

	tombstone := "0"
	if entry.Deleted {
		tombstone = "1"
	}

	keys := []string{cacheKey(id), constants.RedisKeyBookGeneration}
	err = guardedSet.Run(ctx, repository.client, keys, generation, entry.Count, tombstone, payload, repository.ttl.Milliseconds()).Err()
	if err != nil {
		repository.logger.WarnContext(ctx, "book_cache_set_failed", slog.String("book_id", id), slog.Any("error", err))
		repository.evict(ctx, id)
	}
}

func (repository *CachedRepository) evict(ctx context.Context, id string) {
	if err := repository.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		repository.logger.WarnContext(ctx, "book_cache_evict_failed", slog.String("book_id", id), slog.Any("error", err))
	}
}
