// Package fixtures provides the one-shot data sources the stores load from
// at startup. A fixture is a JSON array served under a well-known name;
// nothing is ever written back.
package fixtures

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// Names are the fixture files each store loads, in load order.
var Names = []string{"events", "participants", "tags"}

// Source fetches one named fixture. Implementations must be safe for
// concurrent use; each name is fetched at most once per process.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

//go:embed data/*.json
var dataFS embed.FS

// Embedded returns a Source backed by the starter data compiled into the
// binary.
func Embedded() Source {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic("fixtures: sub data FS: " + err.Error())
	}
	return FSSource{fsys: sub}
}

// Starter returns the embedded starter payload for name. Used by the seed
// command to write editable copies to disk.
func Starter(name string) ([]byte, error) {
	return dataFS.ReadFile("data/" + name + ".json")
}

// FSSource reads fixtures from a file system, typically a local directory
// via Dir or the embedded defaults via Embedded.
type FSSource struct {
	fsys fs.FS
}

// Dir returns a Source reading <name>.json files from path.
func Dir(path string) FSSource {
	return FSSource{fsys: os.DirFS(path)}
}

func (s FSSource) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name+".json")
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}
	return data, nil
}

// HTTPSource fetches fixtures from a remote base URL, one GET per fixture.
type HTTPSource struct {
	base   string
	client *http.Client
}

// URL returns a Source fetching <base>/<name>.json.
func URL(base string, timeout time.Duration) HTTPSource {
	return HTTPSource{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (s HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	url := s.base + "/" + name + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fixture %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch fixture %s: unexpected status %d", name, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch fixture %s: %w", name, err)
	}
	return body, nil
}
