package store

// Store represents the per-guild settings database
type Store interface {
	// DefaultRole returns the configured default role ID for a guild, or ""
	// when none is configured.
	DefaultRole(guildID string) string

	SetDefaultRole(guildID, roleID string) error
	ClearDefaultRole(guildID string) error
}
