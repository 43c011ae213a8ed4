package pages

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

//go:embed content/*.md
var embedded embed.FS

const frontMatterDelim = "---"

type frontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// MarkdownProvider renders markdown files named after the lower-cased route key
// ("livemap.md"). Files in the override directory win over embedded ones.
type MarkdownProvider struct {
	sources []fs.FS
	md      goldmark.Markdown
	policy  *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]Page
}

// NewMarkdownProvider builds a provider over the embedded pages, optionally
// layered under a directory on disk.
func NewMarkdownProvider(overrideDir string) (*MarkdownProvider, error) {
	content, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, fmt.Errorf("pages: embedded content: %w", err)
	}
	sources := []fs.FS{content}
	if dir := strings.TrimSpace(overrideDir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("pages: content dir %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("pages: content dir %s is not a directory", dir)
		}
		sources = append([]fs.FS{os.DirFS(dir)}, sources...)
	}
	return newMarkdownProvider(sources...), nil
}

func newMarkdownProvider(sources ...fs.FS) *MarkdownProvider {
	return &MarkdownProvider{
		sources: sources,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: newContentPolicy(),
		cache:  make(map[string]Page),
	}
}

func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "div", "table")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Page implements Provider.
func (p *MarkdownProvider) Page(ctx context.Context, routeKey string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	name := strings.ToLower(strings.TrimSpace(routeKey))
	if name == "" || strings.ContainsAny(name, "/\\.") {
		return Page{}, fmt.Errorf("%w: %q", ErrNotFound, routeKey)
	}

	p.mu.RLock()
	cached, ok := p.cache[name]
	p.mu.RUnlock()
	if ok {
		return cached, nil
	}

	raw, err := p.read(name + ".md")
	if err != nil {
		return Page{}, err
	}
	page, err := p.render(routeKey, raw)
	if err != nil {
		return Page{}, fmt.Errorf("pages: render %s: %w", name, err)
	}

	p.mu.Lock()
	p.cache[name] = page
	p.mu.Unlock()
	return page, nil
}

func (p *MarkdownProvider) read(file string) ([]byte, error) {
	for _, src := range p.sources {
		raw, err := fs.ReadFile(src, file)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("pages: read %s: %w", file, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, file)
}

func (p *MarkdownProvider) render(routeKey string, raw []byte) (Page, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return Page{}, err
	}

	var buf bytes.Buffer
	if err := p.md.Convert(body, &buf); err != nil {
		return Page{}, err
	}
	html := p.policy.SanitizeBytes(buf.Bytes())

	return Page{
		RouteKey: routeKey,
		Title:    meta.Title,
		Summary:  meta.Summary,
		Body:     templ.Raw(string(html)),
	}, nil
}

func splitFrontMatter(raw []byte) (frontMatter, []byte, error) {
	var meta frontMatter
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(text, frontMatterDelim+"\n") {
		return meta, []byte(text), nil
	}
	rest := text[len(frontMatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end < 0 {
		return meta, nil, errors.New("unterminated front matter")
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return meta, nil, fmt.Errorf("front matter: %w", err)
	}
	body := strings.TrimPrefix(rest[end+1+len(frontMatterDelim):], "\n")
	return meta, []byte(body), nil
}
