// Package linemerge implements the line-based three-way merge spec.md §4.1
// requires for the COMMENT_CONTENT role. The primary backend writes
// base/left/right to temp files and runs them through
// internal/gitmerge.MergeFileDiff3, exactly the `git merge-file --diff3`
// technique the teacher repo used for whole-file merges; a pure-Go fallback
// (diff3.go) keeps the core working when git is unavailable.
package linemerge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spork3dm/pcsmerge/internal/gitmerge"
)

const defaultTimeout = 5 * time.Second

// Merge reconciles base/left/right comment text with a background context
// and a short default timeout on the git subprocess.
func Merge(base, left, right string) (merged string, conflicted bool, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return MergeContext(ctx, base, left, right)
}

// MergeContext is Merge with caller-supplied cancellation.
func MergeContext(ctx context.Context, base, left, right string) (merged string, conflicted bool, err error) {
	out, err := mergeFileDiff3(ctx, left, base, right)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fallbackMerge3(base, left, right)
		}
		return "", false, err
	}
	return string(out), hasConflictMarkers(out), nil
}

// mergeFileDiff3 spills left/base/right to a temp directory and delegates
// the actual three-way merge to gitmerge.MergeFileDiff3.
func mergeFileDiff3(ctx context.Context, left, base, right string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "pcsmerge-linemerge-")
	if err != nil {
		return nil, fmt.Errorf("linemerge: create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	leftPath := filepath.Join(dir, "left")
	basePath := filepath.Join(dir, "base")
	rightPath := filepath.Join(dir, "right")
	for path, text := range map[string]string{leftPath: left, basePath: base, rightPath: right} {
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			return nil, fmt.Errorf("linemerge: write %s: %w", filepath.Base(path), err)
		}
	}

	out, err := gitmerge.MergeFileDiff3(ctx, leftPath, basePath, rightPath)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("linemerge: %w", err)
	}
	return out, nil
}

func hasConflictMarkers(data []byte) bool {
	return bytes.Contains(data, []byte("<<<<<<<"))
}
