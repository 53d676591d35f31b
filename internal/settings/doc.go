// Package settings provides process-wide, concurrency-safe, typed access to
// configuration values loaded from Java properties sources. A bundled
// default resource is loaded lazily, exactly once, on first access to
// Default; alternate sources can be merged into the live store at any time
// via Load or LoadFile (additive merge: last load wins per key, untouched
// keys survive).
package settings
