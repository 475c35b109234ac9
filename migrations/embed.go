// Package migrations embeds the SQL schema migrations for the queries and
// users tables so the goose programmatic API can apply them in tests and
// deployment tooling.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass this to a goose.Provider instead of relying on a filesystem path at
// runtime.
//
//go:embed *.sql
var FS embed.FS
