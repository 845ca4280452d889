package util

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/dendrascience/hashed-rename/pathcode"
	"golang.org/x/sync/errgroup"
)

// DefaultDictionaryName is the file name a dictionary is expected to have.
const DefaultDictionaryName = "qar_dictionary.txt"

const maxDictionaryLine = 1 << 20

type dictionaryLine struct {
	text  string
	index int
}

// LoadDictionary opens the dictionary at path and builds its lookup table.
// The file is checked before any hashing happens.
func LoadDictionary(ctx context.Context, path string, h pathcode.Hasher, workers int) (*LookupTable, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrDictionaryNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDictionaryNotFound, path, err)
	}
	defer f.Close()
	return BuildLookupTable(ctx, f, h, workers)
}

// BuildLookupTable hashes every line of r with h and returns the resulting
// table. Lines are hashed concurrently by workers goroutines; when several
// lines share a hash the earliest line is kept. A table with no entries is
// reported as ErrEmptyDictionary.
func BuildLookupTable(ctx context.Context, r io.Reader, h pathcode.Hasher, workers int) (*LookupTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	lt := NewLookupTable()
	lines := make(chan dictionaryLine, workers)
	g, ctx := errgroup.WithContext(ctx)

	// Reader
	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxDictionaryLine)
		index := 0
		for scanner.Scan() {
			index++
			text := strings.TrimRight(scanner.Text(), "\r")
			if index == 1 {
				text = strings.TrimPrefix(text, "\ufeff")
			}
			if strings.TrimSpace(text) == "" {
				continue
			}
			select {
			case lines <- dictionaryLine{text: text, index: index}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("error reading dictionary line %d: %w", index+1, err)
		}
		return nil
	})

	// Workers
	for range workers {
		g.Go(func() error {
			for l := range lines {
				lt.Add(LookupEntry{
					Hash: pathcode.Hash(h, l.text),
					Name: l.text,
					Line: l.index,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if lt.Len() == 0 {
		return nil, ErrEmptyDictionary
	}
	return lt, nil
}
