package store

// Value queries
const (
	queryUpsertValue = `
		INSERT INTO cache_values (cache_key, cache_value, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (cache_key) DO UPDATE SET
			cache_value = EXCLUDED.cache_value,
			updated_at = now()`
)

const (
	tableValues = "cache_values"
	tableSets   = "cache_sets"
)
