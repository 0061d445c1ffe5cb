package repo

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"

	"github.com/grovetools/pkgnav/command"
	pkgerrors "github.com/grovetools/pkgnav/errors"
)

// Discover enumerates the immediate subdirectories of root that contain a
// .git marker. Non-directory entries and directories without the marker are
// silently skipped. Returns RootNotFound when root does not exist and
// NoRepositories when nothing usable is found; both are fatal to the caller.
func Discover(root, buildFile string) (*DiscoveryResult, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, pkgerrors.RootNotFound(root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeRootNotFound, "read package root")
	}

	builder := command.NewSafeBuilder()

	var repos []Repository
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		// Repository names flow into git invocations and operation working
		// directories; names that cannot be embedded safely are excluded.
		// This also skips hidden directories like .pkgnav.
		if err := builder.Validate("repoName", entry.Name()); err != nil {
			continue
		}
		path := filepath.Join(root, entry.Name())
		// A .git entry of any kind counts as the marker; worktrees and
		// submodules use a .git file instead of a directory.
		if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
			continue
		}
		_, descErr := os.Stat(filepath.Join(path, buildFile))
		repos = append(repos, Repository{
			Name:         entry.Name(),
			Path:         path,
			HasBuildFile: descErr == nil,
		})
	}

	if len(repos) == 0 {
		return nil, pkgerrors.NoRepositories(root)
	}

	sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })

	return &DiscoveryResult{
		Repositories: repos,
		WithoutDescriptor: lo.CountBy(repos, func(r Repository) bool {
			return !r.HasBuildFile
		}),
	}, nil
}
