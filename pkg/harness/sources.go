/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sources.go
Description: CorpusSource implementations. DirSource reads Lua sources from a
local directory tree; IndexSource scrapes an HTTP index page for links and
downloads each linked file. Both deduplicate by content hash so repeated
fetches and mirrored files do not inflate the corpus.
*/

package harness

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kleascm/akaylee-oracle/pkg/interfaces"
	"github.com/kleascm/akaylee-oracle/pkg/logging"
)

// maxCorpusInputSize bounds a single fetched input. Anything larger is a
// dump or an archive, not a source file worth recognizing.
const maxCorpusInputSize = 8 << 20

// DirSource yields every file matching Pattern under Root.
type DirSource struct {
	Root    string
	Pattern string // glob matched against the base name, e.g. "*.lua"
	Logger  *logging.Logger

	dedup map[string]struct{}
	mu    sync.Mutex
}

// NewDirSource creates a directory-backed corpus source.
func NewDirSource(root, pattern string, logger *logging.Logger) *DirSource {
	if pattern == "" {
		pattern = "*.lua"
	}
	return &DirSource{
		Root:    root,
		Pattern: pattern,
		Logger:  logger,
		dedup:   make(map[string]struct{}),
	}
}

// Name identifies the source in logs and records.
func (s *DirSource) Name() string { return "dir:" + s.Root }

// Fetch walks the directory tree and returns unique matching files.
func (s *DirSource) Fetch(ctx context.Context) ([]interfaces.CorpusInput, error) {
	var inputs []interfaces.CorpusInput
	skipped := 0

	err := filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() {
			return nil
		}
		matched, err := filepath.Match(s.Pattern, info.Name())
		if err != nil || !matched {
			return err
		}
		if info.Size() > maxCorpusInputSize {
			skipped++
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read corpus file %s: %w", path, err)
		}
		hash := fmt.Sprintf("%x", sha256.Sum256(data))
		if !s.unique(hash) {
			skipped++
			return nil
		}
		inputs = append(inputs, interfaces.CorpusInput{Name: path, Data: data, Hash: hash})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.LogCorpusFetch(s.Name(), len(inputs), skipped, map[string]interface{}{
			"pattern": s.Pattern,
		})
	}
	return inputs, nil
}

func (s *DirSource) unique(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.dedup[hash]; seen {
		return false
	}
	s.dedup[hash] = struct{}{}
	return true
}

// IndexSource scrapes an HTML index page for links and downloads every link
// whose path matches Suffix. Works against directory listings and simple
// corpus mirrors.
type IndexSource struct {
	URL     string
	Suffix  string // e.g. ".lua"
	Timeout time.Duration
	Logger  *logging.Logger

	client *http.Client
	dedup  map[string]struct{}
	mu     sync.Mutex
}

// NewIndexSource creates an HTTP index corpus source.
func NewIndexSource(rawURL, suffix string, timeout time.Duration, logger *logging.Logger) *IndexSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &IndexSource{
		URL:     rawURL,
		Suffix:  suffix,
		Timeout: timeout,
		Logger:  logger,
		client:  &http.Client{Timeout: timeout},
		dedup:   make(map[string]struct{}),
	}
}

// Name identifies the source in logs and records.
func (s *IndexSource) Name() string { return "index:" + s.URL }

// Fetch downloads the index page, extracts matching links, and fetches each
// one. Individual download failures skip the file rather than failing the
// whole fetch.
func (s *IndexSource) Fetch(ctx context.Context) ([]interfaces.CorpusInput, error) {
	links, err := s.scrapeIndex(ctx)
	if err != nil {
		return nil, err
	}

	var inputs []interfaces.CorpusInput
	skipped := 0
	for _, link := range links {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		data, err := s.download(ctx, link)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warning("Corpus download failed", map[string]interface{}{
					"url":   link,
					"error": err.Error(),
				})
			}
			skipped++
			continue
		}
		hash := fmt.Sprintf("%x", sha256.Sum256(data))
		if !s.unique(hash) {
			skipped++
			continue
		}
		inputs = append(inputs, interfaces.CorpusInput{Name: link, Data: data, Hash: hash})
	}

	if s.Logger != nil {
		s.Logger.LogCorpusFetch(s.Name(), len(inputs), skipped, map[string]interface{}{
			"links": len(links),
		})
	}
	return inputs, nil
}

// scrapeIndex returns the absolute URLs of all matching links on the index
// page, in document order.
func (s *IndexSource) scrapeIndex(ctx context.Context) ([]string, error) {
	base, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid index URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if s.Suffix == "" || strings.HasSuffix(abs.Path, s.Suffix) {
			links = append(links, abs.String())
		}
	})
	return links, nil
}

func (s *IndexSource) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxCorpusInputSize))
}

func (s *IndexSource) unique(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.dedup[hash]; seen {
		return false
	}
	s.dedup[hash] = struct{}{}
	return true
}
