// Package file provides the TOML configuration store.
//
// Settings live in ~/.hanci/config.toml by default. Nested tables are
// flattened to dot-notation keys on load (anki.collection_path) and
// written back as tables on save.
package file
