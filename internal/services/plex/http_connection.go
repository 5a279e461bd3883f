package plex

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"plexsweep/internal/config"
	"plexsweep/internal/services"
)

const (
	userAgent   = "plexsweep/0.1.0"
	productName = "plexsweep"
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type httpConnection struct {
	baseURL string
	token   string
	client  HTTPDoer
}

// NewConnection builds a Connection from configuration.
func NewConnection(cfg *config.Config) Connection {
	timeout := time.Duration(cfg.Plex.TimeoutSeconds) * time.Second
	return NewHTTPConnection(cfg.Plex.URL, cfg.Plex.Token, &http.Client{Timeout: timeout})
}

// NewHTTPConnection constructs a Connection using the provided HTTP backend.
func NewHTTPConnection(baseURL, token string, client HTTPDoer) Connection {
	return &httpConnection{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		client:  client,
	}
}

func (c *httpConnection) Identity(ctx context.Context) (ServerIdentity, error) {
	var container struct {
		FriendlyName      string `xml:"friendlyName,attr"`
		Version           string `xml:"version,attr"`
		MachineIdentifier string `xml:"machineIdentifier,attr"`
	}
	if err := c.doXML(ctx, http.MethodGet, "/", &container); err != nil {
		return ServerIdentity{}, fmt.Errorf("fetch server identity: %w", err)
	}
	return ServerIdentity{
		Name:              container.FriendlyName,
		Version:           container.Version,
		MachineIdentifier: container.MachineIdentifier,
	}, nil
}

func (c *httpConnection) Libraries(ctx context.Context) ([]Library, error) {
	var container struct {
		Directories []struct {
			Key   string `xml:"key,attr"`
			Title string `xml:"title,attr"`
			Type  string `xml:"type,attr"`
		} `xml:"Directory"`
	}
	if err := c.doXML(ctx, http.MethodGet, "/library/sections", &container); err != nil {
		return nil, fmt.Errorf("fetch library sections: %w", err)
	}

	libraries := make([]Library, 0, len(container.Directories))
	for _, dir := range container.Directories {
		if dir.Key == "" || dir.Title == "" {
			continue
		}
		libraries = append(libraries, Library{Key: dir.Key, Title: dir.Title, Type: dir.Type})
	}
	return libraries, nil
}

func (c *httpConnection) Collections(ctx context.Context, lib Library) ([]Collection, error) {
	var container struct {
		Directories []struct {
			RatingKey  string `xml:"ratingKey,attr"`
			Title      string `xml:"title,attr"`
			ChildCount int    `xml:"childCount,attr"`
		} `xml:"Directory"`
	}
	path := fmt.Sprintf("/library/sections/%s/collections", lib.Key)
	if err := c.doXML(ctx, http.MethodGet, path, &container); err != nil {
		return nil, fmt.Errorf("fetch collections for library %q: %w", lib.Title, err)
	}

	collections := make([]Collection, 0, len(container.Directories))
	for _, dir := range container.Directories {
		if dir.RatingKey == "" {
			continue
		}
		collections = append(collections, Collection{
			RatingKey:  dir.RatingKey,
			Title:      dir.Title,
			ChildCount: dir.ChildCount,
			LibraryKey: lib.Key,
		})
	}
	return collections, nil
}

func (c *httpConnection) Labels(ctx context.Context, col Collection) ([]string, error) {
	var container struct {
		Directories []struct {
			Labels []struct {
				Tag string `xml:"tag,attr"`
			} `xml:"Label"`
		} `xml:"Directory"`
	}
	path := fmt.Sprintf("/library/collections/%s", col.RatingKey)
	if err := c.doXML(ctx, http.MethodGet, path, &container); err != nil {
		return nil, fmt.Errorf("fetch labels for collection %q: %w", col.Title, err)
	}

	var labels []string
	for _, dir := range container.Directories {
		for _, label := range dir.Labels {
			if tag := strings.TrimSpace(label.Tag); tag != "" {
				labels = append(labels, tag)
			}
		}
	}
	return labels, nil
}

func (c *httpConnection) Delete(ctx context.Context, col Collection) error {
	path := fmt.Sprintf("/library/collections/%s", col.RatingKey)
	if err := c.doXML(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("delete collection %q: %w", col.Title, err)
	}
	return nil
}

func (c *httpConnection) doXML(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")
	applyStandardHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrConnection, "plex", method+" "+path, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return services.Wrap(services.ErrConnection, "plex", method+" "+path, "", ErrUnauthorized)
	}
	if resp.StatusCode == http.StatusNotFound {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrNotFound, "plex", method+" "+path,
			fmt.Sprintf("returned 404: %s", strings.TrimSpace(string(body))), nil)
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrTransient, "plex", method+" "+path,
			fmt.Sprintf("returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func applyStandardHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Plex-Product", productName)
	req.Header.Set("X-Plex-Platform", runtime.GOOS)
}
