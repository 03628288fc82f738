package version

// Version is the CLI version, overridden at build time via
// -ldflags "-X github.com/datahound/hound/internal/version.Version=v0.2.0".
var Version = "dev"
