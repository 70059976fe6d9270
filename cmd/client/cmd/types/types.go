// Package types holds the context keys shared between the command tree and
// its setup code.
package types

type contextKey string

// ClientAppKey carries the initialized *client.App through the command
// context.
const ClientAppKey contextKey = "clientApp"
