// Package store is the durable backend for lead-bound state: persisted
// selections, cached comparison analyses, the franchise catalog, and lead
// profiles.
//
// Storage is a single SQLite database in WAL mode. All writes are
// last-write-wins upserts keyed by lead id (selections, analyses, profiles)
// or franchise id (catalog); the engine's debounce layer guarantees a
// selection save always carries the full, final id-set, so no merging is
// ever needed here.
//
// Store implements persist-side loading/saving for the engine (via
// persist.StoreAdapter) and the analysis package's CacheSource,
// ProfileSource, and Catalog interfaces.
package store
