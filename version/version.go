package version

// Version is set at build time with -ldflags "-X github.com/m3o/safe/version.Version=...".
var Version = "dev"
