package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// Getter issues a GET request for an endpoint path or absolute URL.
// *client.Client satisfies this.
type Getter interface {
	Get(ctx context.Context, target string) (*http.Response, error)
}

// DownloadText fetches a document body and writes it to path.
// With stripHTML set, markup is removed and whitespace normalized before
// writing. Returns the number of bytes written.
func DownloadText(ctx context.Context, g Getter, target, path string, stripHTML bool) (int, error) {
	resp, err := g.Get(ctx, target)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download %s: unexpected status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read body: %w", err)
	}

	if stripHTML {
		text, err := StripHTML(body)
		if err != nil {
			return 0, fmt.Errorf("strip html: %w", err)
		}
		body = []byte(text)
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("bytes", len(body)).
		Bool("strip_html", stripHTML).
		Msg("Downloaded document text")

	return len(body), nil
}

// StripHTML extracts the visible text of an HTML document.
// Script and style contents are dropped; runs of blank lines collapse
// to one.
func StripHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	doc.Find("script, style").Remove()

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	blank := true

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, trimmed)
		blank = false
	}

	// Drop a trailing blank line
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return strings.Join(out, "\n"), nil
}
