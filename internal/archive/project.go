package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stackbound/gitvault/internal/errors"
)

// Project is a single version-controlled directory targeted for backup.
// Resolution fills the path fields; the builder fills the rest as the
// project moves through the pipeline.
type Project struct {
	SourcePath   string // as supplied on the command line
	AbsolutePath string
	BaseName     string // last path component, used in output filenames
	StagingPath  string // temporary working copy, removed after compression
	ArchivePath  string // archive location before the final move
	OutputPath   string // final archive location
}

// ResolveProject normalizes a user-supplied path into a Project.
func ResolveProject(path string) (*Project, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", errors.ErrProjectNotFound, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	return &Project{
		SourcePath:   path,
		AbsolutePath: abs,
		BaseName:     filepath.Base(abs),
	}, nil
}

// ResolveProjects resolves every supplied path, failing on the first path
// that is not a directory. No project is resolved partially.
func ResolveProjects(paths []string) ([]*Project, error) {
	projects := make([]*Project, 0, len(paths))
	for _, path := range paths {
		project, err := ResolveProject(path)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}
