package assets

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// Fetcher retrieves the raw bytes of a named resource.
//
// A non-success condition must be reported as an *Error of
// KindResourceUnavailable (or KindTimeout); the Loader classifies anything
// else that goes wrong after Fetch returns.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (io.ReadCloser, error)
}

// ResourcePath joins base and name. name is not escaped or sanitised.
func ResourcePath(base, name string) string {
	return strings.TrimSuffix(base, "/") + "/" + name
}

// NewFetcher picks an HTTPFetcher for http(s) bases and a DirFetcher for
// everything else.
func NewFetcher(base string) Fetcher {
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return &HTTPFetcher{Base: base}
	}
	return &DirFetcher{FS: os.DirFS(base)}
}

// HTTPFetcher issues one GET per Fetch, with no headers and no body.
type HTTPFetcher struct {
	Client *http.Client // http.DefaultClient when nil
	Base   string
}

func (f *HTTPFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ResourcePath(f.Base, name), nil)
	if err != nil {
		return nil, failure(KindResourceUnavailable, name, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, failure(KindResourceUnavailable, name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &Error{
			Kind:       KindResourceUnavailable,
			Name:       name,
			StatusCode: resp.StatusCode,
		}
	}
	return resp.Body, nil
}

// DirFetcher reads resources from a filesystem, either a local directory
// (os.DirFS) or an embedded one.
type DirFetcher struct {
	FS fs.FS
}

func (f *DirFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, failure(KindResourceUnavailable, name, err)
	}
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, failure(KindResourceUnavailable, name, err)
	}
	return file, nil
}
