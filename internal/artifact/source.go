package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Source reads raw artifact payloads by name
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Describe() string
}

// Diagnoser is implemented by sources that can explain a failed load to an
// operator (paths, listings). Output is informational only.
type Diagnoser interface {
	Diagnose() []string
}

// FileSource reads artifacts from a local directory
type FileSource struct {
	dir string
}

// NewFileSource creates a source rooted at dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Read returns the content of dir/name
func (s *FileSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(s.dir, name))
}

// Describe names the source for logs
func (s *FileSource) Describe() string {
	return fmt.Sprintf("directory %s", s.dir)
}

// Diagnose reports the working directory and what the artifact directory holds
func (s *FileSource) Diagnose() []string {
	var lines []string

	if wd, err := os.Getwd(); err == nil {
		lines = append(lines, "working directory: "+wd)
	} else {
		lines = append(lines, "working directory: unknown ("+err.Error()+")")
	}

	abs, err := filepath.Abs(s.dir)
	if err != nil {
		abs = s.dir
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return append(lines, fmt.Sprintf("artifact directory %s is not readable: %v", abs, err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	lines = append(lines, fmt.Sprintf("artifact directory %s contains %d entries: %v", abs, len(names), names))
	return lines
}

// ArtifactReader is the storage dependency of RepositorySource
type ArtifactReader interface {
	GetArtifact(ctx context.Context, name string) ([]byte, error)
}

// RepositorySource reads artifacts stored in a database table
type RepositorySource struct {
	repo ArtifactReader
}

// NewRepositorySource creates a source backed by repo
func NewRepositorySource(repo ArtifactReader) *RepositorySource {
	return &RepositorySource{repo: repo}
}

// Read fetches the named artifact payload
func (s *RepositorySource) Read(ctx context.Context, name string) ([]byte, error) {
	return s.repo.GetArtifact(ctx, name)
}

// Describe names the source for logs
func (s *RepositorySource) Describe() string {
	return "table model_artifacts"
}

// ArtifactLister is implemented by repositories that can list stored names
type ArtifactLister interface {
	ListArtifacts(ctx context.Context) ([]string, error)
}

// Diagnose lists the artifact names present in the table
func (s *RepositorySource) Diagnose() []string {
	lister, ok := s.repo.(ArtifactLister)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	names, err := lister.ListArtifacts(ctx)
	if err != nil {
		return []string{fmt.Sprintf("artifact table not readable: %v", err)}
	}
	return []string{fmt.Sprintf("artifact table contains %d entries: %v", len(names), names)}
}

// UnavailableSource stands in for a backend that could not be reached at
// startup. Every read fails with the original error.
type UnavailableSource struct {
	desc string
	err  error
}

// NewUnavailableSource creates a source that always fails with err
func NewUnavailableSource(desc string, err error) *UnavailableSource {
	return &UnavailableSource{desc: desc, err: err}
}

// Read returns the startup error
func (s *UnavailableSource) Read(_ context.Context, name string) ([]byte, error) {
	return nil, fmt.Errorf("read %s: %w", name, s.err)
}

// Describe names the source for logs
func (s *UnavailableSource) Describe() string {
	return s.desc + " (unreachable)"
}
