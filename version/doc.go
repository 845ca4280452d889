// Package version provides version information and build metadata for hashed-rename.
//
// Values linked in at build time take precedence:
//
//	-ldflags "-X github.com/dendrascience/hashed-rename/version.Version=v1.0.0 -X github.com/dendrascience/hashed-rename/version.Commit=abc123"
//
// Otherwise the module version and VCS settings recorded by the Go toolchain
// are used, falling back to development defaults.
package version
