package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/KirkDiggler/rolld/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/KirkDiggler/rolld/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/KirkDiggler/rolld/internal/version.Date={{.Date}}
)
