// Package cli provides the interactive docuport command-line client.
//
// It wires configuration, the local token store, the REST API services,
// and an interactive REPL over the document portal. Typical flow: restore
// the persisted session on start, then execute user commands.
//
// Key features:
//   - Login / Logout with a persisted bearer token
//   - Browse, search, download, edit and delete documents
//   - Batch upload with per-file progress and partial-failure reporting
//   - Category, user and audit-log administration (capability gated)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
