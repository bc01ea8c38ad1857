package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/userdata"
)

// PublicStore reads the published file without credentials. It backs
// read-only sessions and cannot save.
type PublicStore struct {
	cfg    config.GitHubConfig
	client *client
}

func NewPublicStore(cfg config.GitHubConfig, observer Observer) *PublicStore {
	return &PublicStore{cfg: cfg, client: newClient(cfg, "", observer)}
}

func (s *PublicStore) Load(ctx context.Context) (*Remote, error) {
	branch := s.cfg.Branch
	if branch == "" {
		branch = "main"
	}
	endpoint := fmt.Sprintf("%s/%s/%s/%s/%s",
		strings.TrimRight(s.cfg.RawURL, "/"),
		url.PathEscape(s.cfg.Owner),
		url.PathEscape(s.cfg.Repo),
		url.PathEscape(branch),
		escapePath(s.cfg.Path),
	)
	resp, err := s.client.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("loading public user data: %w", err)
	}
	doc, err := userdata.Parse(resp.body)
	if err != nil {
		return nil, err
	}
	return &Remote{Doc: doc}, nil
}

func (s *PublicStore) Save(context.Context, *userdata.Document, string) (string, error) {
	return "", ErrReadOnly
}
