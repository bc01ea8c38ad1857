package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/userdata"
	"github.com/tidwall/gjson"
)

// GitHubStore keeps the document in a repository file through the
// GitHub Contents API. The blob SHA is the version token.
type GitHubStore struct {
	cfg    config.GitHubConfig
	client *client
	now    func() time.Time
}

// NewGitHubStore creates a store for cfg. Saving requires cfg.Token.
func NewGitHubStore(cfg config.GitHubConfig, observer Observer) *GitHubStore {
	return &GitHubStore{
		cfg:    cfg,
		client: newClient(cfg, cfg.Token, observer),
		now:    time.Now,
	}
}

func (s *GitHubStore) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		strings.TrimRight(s.cfg.API, "/"),
		url.PathEscape(s.cfg.Owner),
		url.PathEscape(s.cfg.Repo),
		escapePath(s.cfg.Path),
	)
}

func (s *GitHubStore) Load(ctx context.Context) (*Remote, error) {
	endpoint := s.contentsURL()
	if s.cfg.Branch != "" {
		endpoint += "?ref=" + url.QueryEscape(s.cfg.Branch)
	}
	resp, err := s.client.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("loading user data: %w", err)
	}

	file := gjson.ParseBytes(resp.body)
	if enc := file.Get("encoding").String(); enc != "base64" {
		return nil, fmt.Errorf("loading user data: unsupported content encoding %q", enc)
	}
	content := strings.NewReplacer("\n", "", "\r", "").Replace(file.Get("content").String())
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("decoding user data: %w", err)
	}
	doc, err := userdata.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Remote{Doc: doc, SHA: file.Get("sha").String()}, nil
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

func (s *GitHubStore) Save(ctx context.Context, doc *userdata.Document, sha string) (string, error) {
	if s.cfg.Token == "" {
		return "", fmt.Errorf("saving user data: %w: no token configured", ErrUnauthorized)
	}
	data, err := userdata.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("encoding user data: %w", err)
	}
	body, err := json.Marshal(putRequest{
		Message: "Update learning progress - " + s.now().UTC().Format(time.RFC3339),
		Content: base64.StdEncoding.EncodeToString(data),
		Branch:  s.cfg.Branch,
		SHA:     sha,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := s.client.do(ctx, http.MethodPut, s.contentsURL(), body)
	if err != nil {
		// 404 on PUT means the repository or branch is missing.
		if errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("saving user data: branch or repository %s/%s not found", s.cfg.Owner, s.cfg.Repo)
		}
		return "", fmt.Errorf("saving user data: %w", err)
	}
	newSHA := gjson.GetBytes(resp.body, "content.sha").String()
	if newSHA == "" {
		return "", fmt.Errorf("saving user data: response carried no content sha")
	}
	return newSHA, nil
}

// Login returns the login of the token's owner.
func (s *GitHubStore) Login(ctx context.Context) (string, error) {
	if s.cfg.Token == "" {
		return "", ErrUnauthorized
	}
	endpoint := strings.TrimRight(s.cfg.API, "/") + "/user"
	resp, err := s.client.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("fetching user: %w", err)
	}
	login := gjson.GetBytes(resp.body, "login").String()
	if login == "" {
		return "", fmt.Errorf("fetching user: response carried no login")
	}
	return login, nil
}

// IsOwner reports whether the token belongs to the repository owner.
// A missing or rejected token is not an error.
func (s *GitHubStore) IsOwner(ctx context.Context) (bool, error) {
	login, err := s.Login(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(login, s.cfg.Owner), nil
}

func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
