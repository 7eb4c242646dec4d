// Package scm maintains working copies for the crawler. Each client
// syncs one descriptor to a directory under its root and reports the
// checkout path so the walker can read it.
package scm

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	reposdom "codesift/internal/services/repos/domain"
)

// maxFileBytes caps what the walker will hand to the index; anything
// larger is almost never source code
const maxFileBytes = 1 << 20

// CheckoutResult reports where a sync landed and whether anything moved
type CheckoutResult struct {
	Path    string
	Changed bool
}

// Client syncs one repository kind to local disk
type Client interface {
	Sync(ctx context.Context, d reposdom.RepoDescriptor) (CheckoutResult, error)
}

// SourceFile is one readable file found under a checkout
type SourceFile struct {
	RelPath string
	Content string
	Lines   int
}

// Walk visits every indexable file under root in lexical order. Version
// control metadata, binaries and oversized files are skipped
func Walk(root string, fn func(SourceFile) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", ".svn", ".hg":
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > maxFileBytes {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if looksBinary(raw) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content := string(raw)
		return fn(SourceFile{
			RelPath: filepath.ToSlash(rel),
			Content: content,
			Lines:   countLines(content),
		})
	})
}

// looksBinary checks the first block for a null byte, the same cheap
// heuristic git itself uses
func looksBinary(raw []byte) bool {
	head := raw
	if len(head) > 8000 {
		head = head[:8000]
	}
	return bytes.IndexByte(head, 0) >= 0
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
