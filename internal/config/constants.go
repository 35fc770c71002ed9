package config

const (
	// DefaultDataDir is where the JSON data files and their backups live.
	DefaultDataDir = ".data"

	// DefaultProfileImageURL is the avatar used for webhook messages and
	// offline streamer cards.
	DefaultProfileImageURL = "https://images.unsplash.com/photo-1511367461989-f85a21fda167?w=96&q=80"
)
