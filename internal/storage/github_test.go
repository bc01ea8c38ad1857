package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/testutil"
	"github.com/alexanderramin/syllabus/internal/userdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contentsPath = "/repos/ada/notes/contents/data/user-data.json"

// fakeGitHub serves one file through a minimal Contents API.
type fakeGitHub struct {
	mu      sync.Mutex
	content []byte
	sha     string
	writes  int
	lastPut putRequest
}

func (f *fakeGitHub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"Bad credentials"}`)
			return
		}
		fmt.Fprint(w, `{"login":"Ada"}`)
	})
	mux.HandleFunc(contentsPath, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			if f.content == nil {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message":"Not Found"}`)
				return
			}
			// GitHub wraps base64 content at 60 columns.
			enc := base64.StdEncoding.EncodeToString(f.content)
			wrapped := ""
			for len(enc) > 60 {
				wrapped += enc[:60] + "\n"
				enc = enc[60:]
			}
			wrapped += enc
			json.NewEncoder(w).Encode(map[string]string{
				"sha": f.sha, "encoding": "base64", "content": wrapped,
			})
		case http.MethodPut:
			if r.Header.Get("Authorization") != "Bearer secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			var req putRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.lastPut = req
			if req.SHA != f.sha {
				w.WriteHeader(http.StatusConflict)
				fmt.Fprintf(w, `{"message":"%s does not match"}`, req.SHA)
				return
			}
			data, err := base64.StdEncoding.DecodeString(req.Content)
			require.NoError(t, err)
			f.writes++
			f.content = data
			f.sha = fmt.Sprintf("sha-%d", f.writes)
			fmt.Fprintf(w, `{"content":{"sha":%q}}`, f.sha)
		}
	})
	return mux
}

func githubConfig(api string) config.GitHubConfig {
	cfg := config.Default().GitHub
	cfg.API = api
	cfg.RawURL = api + "/raw"
	cfg.Owner = "ada"
	cfg.Repo = "notes"
	cfg.Token = "secret"
	cfg.RatePerSec = 1000
	return cfg
}

func newTestGitHub(t *testing.T) (*fakeGitHub, *GitHubStore) {
	t.Helper()
	fake := &fakeGitHub{}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	store := NewGitHubStore(githubConfig(srv.URL), NoopObserver{})
	store.now = func() time.Time { return testutil.FixedTime }
	return fake, store
}

func TestGitHubStore_LoadMissingFile(t *testing.T) {
	_, store := newTestGitHub(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGitHubStore_CreateThenUpdate(t *testing.T) {
	fake, store := newTestGitHub(t)
	ctx := context.Background()
	doc := testutil.NewDoc(testutil.WithProgress("calc1", domain.ProgressComplete), testutil.WithLastModified(testutil.FixedTime))

	sha, err := store.Save(ctx, doc, "")
	require.NoError(t, err)
	assert.Equal(t, "sha-1", sha)
	assert.Empty(t, fake.lastPut.SHA)
	assert.Equal(t, "main", fake.lastPut.Branch)
	assert.Equal(t, "Update learning progress - 2024-06-01T12:00:00Z", fake.lastPut.Message)

	remote, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sha-1", remote.SHA)
	assert.Equal(t, domain.ProgressComplete, remote.Doc.Progress.Get("calc1"))

	sha, err = store.Save(ctx, remote.Doc, remote.SHA)
	require.NoError(t, err)
	assert.Equal(t, "sha-2", sha)
}

func TestGitHubStore_StaleWrite(t *testing.T) {
	fake, store := newTestGitHub(t)
	ctx := context.Background()

	_, err := store.Save(ctx, testutil.NewDoc(), "")
	require.NoError(t, err)

	_, err = store.Save(ctx, testutil.NewDoc(), "sha-0")
	assert.ErrorIs(t, err, ErrStaleWrite)
	assert.Equal(t, 1, fake.writes)
}

func TestGitHubStore_SaveWithoutToken(t *testing.T) {
	_, store := newTestGitHub(t)
	store.cfg.Token = ""

	_, err := store.Save(context.Background(), testutil.NewDoc(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGitHubStore_RejectedToken(t *testing.T) {
	fake := &fakeGitHub{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()
	cfg := githubConfig(srv.URL)
	cfg.Token = "wrong"
	store := NewGitHubStore(cfg, NoopObserver{})

	_, err := store.Save(context.Background(), testutil.NewDoc(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	owner, err := store.IsOwner(context.Background())
	require.NoError(t, err)
	assert.False(t, owner)
}

func TestGitHubStore_IsOwnerIgnoresCase(t *testing.T) {
	_, store := newTestGitHub(t)

	login, err := store.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", login)

	owner, err := store.IsOwner(context.Background())
	require.NoError(t, err)
	assert.True(t, owner)
}

func TestGitHubStore_UnparseableRemote(t *testing.T) {
	fake, store := newTestGitHub(t)
	fake.content = []byte(`{"schema":"3.0","progress":{"calc1":1}}`)
	fake.sha = "x"

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, userdata.ErrInvalidDocument)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []RequestEvent
}

func (o *recordingObserver) OnRequest(_ context.Context, e RequestEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func TestGitHubStore_UnreachableRetriesOnce(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := githubConfig(srv.URL)
	srv.Close()

	obs := &recordingObserver{}
	store := NewGitHubStore(cfg, obs)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	require.Len(t, obs.events, 1)
	assert.Equal(t, 2, obs.events[0].Attempts)
	assert.Equal(t, "UNAVAILABLE", obs.events[0].ErrorCode)
	assert.False(t, obs.events[0].Success)
}

func TestGitHubStore_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewGitHubStore(githubConfig(srv.URL), nil).Load(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPublicStore(t *testing.T) {
	doc := testutil.NewDoc(testutil.WithGoalOverlay("calc1", "finish Spivak"))
	data, err := userdata.Encode(doc)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/raw/ada/notes/main/data/user-data.json", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write(data)
	}))
	defer srv.Close()

	store := NewPublicStore(githubConfig(srv.URL), nil)
	remote, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remote.SHA)
	ov, ok := remote.Doc.Overlay("calc1")
	require.True(t, ok)
	assert.Equal(t, "finish Spivak", *ov.Goal)

	_, err = store.Save(context.Background(), doc, "")
	assert.ErrorIs(t, err, ErrReadOnly)
}
