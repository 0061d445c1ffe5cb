// Package repo discovers the package-build repositories managed by pkgnav.
package repo

// Repository is one managed package-build directory. The set of repositories
// is fixed for the lifetime of the process; discovery runs once at startup.
type Repository struct {
	// Name is the unique identifier, derived from the directory name.
	Name string

	// Path is the absolute filesystem path of the repository.
	Path string

	// HasBuildFile reports whether the build-descriptor file is present.
	// The descriptor is never parsed, only its presence matters.
	HasBuildFile bool
}

// DiscoveryResult holds the outcome of a discovery pass.
type DiscoveryResult struct {
	// Repositories is ordered lexicographically by name.
	Repositories []Repository

	// WithoutDescriptor counts repositories lacking the build-descriptor file.
	WithoutDescriptor int
}
