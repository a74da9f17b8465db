package lemmy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
)

type handlerRoundTripper struct {
	h http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := newResponseRecorder()
	rt.h.ServeHTTP(rec, req)
	return rec.response(req), nil
}

type responseRecorder struct {
	header http.Header
	body   strings.Builder
	code   int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header), code: http.StatusOK}
}

func (r *responseRecorder) Header() http.Header         { return r.header }
func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }
func (r *responseRecorder) WriteHeader(statusCode int)  { r.code = statusCode }

func (r *responseRecorder) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: r.code,
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body.String())),
		Request:    req,
	}
}

type failingRoundTripper struct{}

func (failingRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func newTestClient(h http.Handler) *Client {
	return &Client{http: &http.Client{Transport: handlerRoundTripper{h: h}}}
}

var (
	anon   = domain.Session{InstanceURL: "http://example.test"}
	authed = domain.Session{InstanceURL: "http://example.test", JWT: "tok", AccountID: 7, AccountName: "me"}
)

func postViewJSON(id int, name string) map[string]any {
	return map[string]any{
		"post": map[string]any{
			"id": id, "name": name, "url": "https://x/" + name, "body": "b",
			"creator_id": 3, "community_id": 9, "published": "2023-06-01T10:00:00.123456",
		},
		"creator":   map[string]any{"id": 3, "name": "alice"},
		"community": map[string]any{"id": 9, "name": "golang"},
		"counts":    map[string]any{"score": 12, "comments": 4},
		"saved":     true,
		"my_vote":   1,
	}
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("bad json body: %v", err)
	}
	return body
}

func TestPostService_ListPosts_RequestShapeAndMapping(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Fatalf("missing auth header: %q", auth)
		}
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"posts": []any{postViewJSON(1, "hello")}})
	})

	svc := NewPostService(newTestClient(h))
	posts, err := svc.ListPosts(context.Background(), authed, app.PostQuery{
		Page: 2, Limit: 20, Listing: domain.ListingAll, Sort: domain.SortNew,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotPath != "/api/v3/post/list" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("limit") != "20" || gotQuery.Get("sort") != "New" || gotQuery.Get("type_") != "All" {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if gotQuery.Get("auth") != "tok" {
		t.Fatalf("expected auth query param, got %v", gotQuery)
	}
	if len(posts) != 1 {
		t.Fatalf("expected one post, got %d", len(posts))
	}
	p := posts[0]
	if p.ID != 1 || p.CommunityName != "golang" || p.CreatorName != "alice" || p.Score != 12 || p.Comments != 4 || p.MyVote != 1 || !p.Saved {
		t.Fatalf("unexpected mapped post: %+v", p)
	}
	want := time.Date(2023, 6, 1, 10, 0, 0, 123456000, time.UTC)
	if !p.Published.Equal(want) {
		t.Fatalf("published = %v, want %v", p.Published, want)
	}
}

func TestPostService_ListPosts_CommunityOmitsListingType(t *testing.T) {
	var gotQuery url.Values
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"posts": []any{}})
	})

	svc := NewPostService(newTestClient(h))
	if _, err := svc.ListPosts(context.Background(), anon, app.PostQuery{CommunityName: "golang"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotQuery.Get("community_name") != "golang" || gotQuery.Has("type_") {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if gotQuery.Get("page") != "1" {
		t.Fatalf("expected page to default to 1, got %q", gotQuery.Get("page"))
	}
	if gotQuery.Has("auth") {
		t.Fatalf("anonymous request must not carry auth: %v", gotQuery)
	}
}

func TestPostService_ListComments_Query(t *testing.T) {
	var gotQuery url.Values
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/comment/list" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"comments": []any{
			map[string]any{
				"comment": map[string]any{"id": 5, "post_id": 1, "content": "hi", "path": "0.5", "removed": true},
				"creator": map[string]any{"id": 2, "name": "bob"},
				"counts":  map[string]any{"score": -1},
			},
		}})
	})

	svc := NewPostService(newTestClient(h))
	comments, err := svc.ListComments(context.Background(), anon, 1, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotQuery.Get("post_id") != "1" || gotQuery.Get("max_depth") != "8" || gotQuery.Get("sort") != "Hot" || gotQuery.Get("type_") != "All" {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if len(comments) != 1 || comments[0].Path != "0.5" || !comments[0].Removed || comments[0].Score != -1 {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}

func TestPostService_CreatePost_SendsJSON(t *testing.T) {
	var body map[string]any
	var ctype string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v3/post" {
			t.Fatalf("unexpected req: %s %s", r.Method, r.URL.Path)
		}
		ctype = r.Header.Get("Content-Type")
		body = decodeBody(t, r)
		_ = json.NewEncoder(w).Encode(map[string]any{"post_view": postViewJSON(10, "new")})
	})

	svc := NewPostService(newTestClient(h))
	post, err := svc.CreatePost(context.Background(), authed, domain.PostDraft{Name: "  new ", Body: "text", CommunityID: 9})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(ctype, "application/json") {
		t.Fatalf("expected json content-type, got %q", ctype)
	}
	if body["name"] != "new" || body["community_id"] != float64(9) || body["auth"] != "tok" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["url"]; ok {
		t.Fatalf("empty url must be omitted: %v", body)
	}
	if post.ID != 10 {
		t.Fatalf("unexpected post: %+v", post)
	}
}

func TestPostService_WritesRequireLogin(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected, got %s", r.URL.Path)
	})
	svc := NewPostService(newTestClient(h))

	if _, err := svc.VotePost(context.Background(), anon, 1, 1); !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if _, err := svc.CreatePost(context.Background(), authed, domain.PostDraft{Name: "  "}); !errors.Is(err, domain.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if err := svc.ReportPost(context.Background(), authed, 1, ""); !errors.Is(err, domain.ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestPostService_VotePost_ClampsScore(t *testing.T) {
	var body map[string]any
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body = decodeBody(t, r)
		_ = json.NewEncoder(w).Encode(map[string]any{"post_view": postViewJSON(1, "x")})
	})
	svc := NewPostService(newTestClient(h))
	if _, err := svc.VotePost(context.Background(), authed, 1, 5); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if body["score"] != float64(1) {
		t.Fatalf("expected clamped score 1, got %v", body["score"])
	}
}

func TestCommentService_CreateComment_ParentOptional(t *testing.T) {
	var bodies []map[string]any
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bodies = append(bodies, decodeBody(t, r))
		_ = json.NewEncoder(w).Encode(map[string]any{"comment_view": map[string]any{
			"comment": map[string]any{"id": 3, "post_id": 1, "content": "c", "path": "0.3"},
		}})
	})
	svc := NewCommentService(newTestClient(h))

	if _, err := svc.CreateComment(context.Background(), authed, 1, 0, "top"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateComment(context.Background(), authed, 1, 3, "child"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, ok := bodies[0]["parent_id"]; ok {
		t.Fatalf("top-level comment must not send parent_id: %v", bodies[0])
	}
	if bodies[1]["parent_id"] != float64(3) {
		t.Fatalf("expected parent_id 3, got %v", bodies[1])
	}
}

func TestCommunityService_ListCommunities_SwitchesToSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		path  string
	}{
		{name: "list", query: "", path: "/api/v3/community/list"},
		{name: "search", query: "go", path: "/api/v3/search"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			var gotQuery url.Values
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query()
				_ = json.NewEncoder(w).Encode(map[string]any{"communities": []any{
					map[string]any{
						"community":  map[string]any{"id": 9, "name": "golang", "title": "Go"},
						"subscribed": "Subscribed",
						"counts":     map[string]any{"subscribers": 100},
					},
				}})
			})
			svc := NewCommunityService(newTestClient(h))
			got, err := svc.ListCommunities(context.Background(), anon, app.CommunityQuery{Query: tt.query})
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if gotPath != tt.path {
				t.Fatalf("path = %s, want %s", gotPath, tt.path)
			}
			if gotQuery.Get("sort") != "TopMonth" {
				t.Fatalf("unexpected query: %v", gotQuery)
			}
			if tt.query != "" && (gotQuery.Get("q") != tt.query || gotQuery.Get("type_") != "Communities") {
				t.Fatalf("unexpected search query: %v", gotQuery)
			}
			if len(got) != 1 || !got[0].Subscribed || got[0].Subscribers != 100 {
				t.Fatalf("unexpected communities: %+v", got)
			}
		})
	}
}

func TestAccountService_Login_ResolvesIdentity(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/user/login":
			body := decodeBody(t, r)
			if body["username_or_email"] != "me" || body["totp_2fa_token"] != "123456" {
				t.Fatalf("unexpected login body: %v", body)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"jwt": "fresh"})
		case "/api/v3/site":
			if r.URL.Query().Get("auth") != "fresh" {
				t.Fatalf("site must use the new jwt: %v", r.URL.Query())
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"my_user": map[string]any{
				"local_user_view": map[string]any{"person": map[string]any{"id": 7, "name": "me"}},
			}})
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	})
	svc := NewAccountService(newTestClient(h))
	sess, err := svc.Login(context.Background(), "example.test/", " me ", "pw", "123456")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.JWT != "fresh" || sess.AccountID != 7 || sess.AccountName != "me" || sess.InstanceURL != "https://example.test" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestAccountService_Login_RejectedCredentials(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server rejects",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"incorrect_login"}`))
			},
		},
		{
			name: "missing jwt",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAccountService(newTestClient(tt.handler))
			_, err := svc.Login(context.Background(), "http://example.test", "me", "bad", "")
			if !errors.Is(err, domain.ErrWrongCredentials) {
				t.Fatalf("expected ErrWrongCredentials, got %v", err)
			}
		})
	}
}

func TestAccountService_Inbox_Modes(t *testing.T) {
	tests := []struct {
		mode domain.InboxMode
		path string
		key  string
		item map[string]any
	}{
		{
			mode: domain.InboxReplies,
			path: "/api/v3/user/replies",
			key:  "replies",
			item: map[string]any{
				"comment":       map[string]any{"id": 4, "post_id": 1, "content": "re"},
				"creator":       map[string]any{"id": 2, "name": "bob"},
				"comment_reply": map[string]any{"id": 40, "read": false},
			},
		},
		{
			mode: domain.InboxMentions,
			path: "/api/v3/user/mention",
			key:  "mentions",
			item: map[string]any{
				"comment":        map[string]any{"id": 5, "post_id": 1, "content": "@me"},
				"creator":        map[string]any{"id": 2, "name": "bob"},
				"person_mention": map[string]any{"id": 50, "read": true},
			},
		},
		{
			mode: domain.InboxMessages,
			path: "/api/v3/private_message/list",
			key:  "private_messages",
			item: map[string]any{
				"private_message": map[string]any{"id": 60, "content": "psst"},
				"creator":         map[string]any{"id": 2, "name": "bob"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var gotQuery url.Values
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.path {
					t.Fatalf("path = %s, want %s", r.URL.Path, tt.path)
				}
				gotQuery = r.URL.Query()
				_ = json.NewEncoder(w).Encode(map[string]any{tt.key: []any{tt.item}})
			})
			svc := NewAccountService(newTestClient(h))
			items, err := svc.Inbox(context.Background(), authed, tt.mode, 1, 10, true)
			if err != nil {
				t.Fatalf("inbox failed: %v", err)
			}
			if gotQuery.Get("unread_only") != "true" {
				t.Fatalf("unexpected query: %v", gotQuery)
			}
			if len(items) != 1 || items[0].Mode != tt.mode || items[0].CreatorName != "bob" {
				t.Fatalf("unexpected items: %+v", items)
			}
		})
	}
}

func TestAccountService_PersonDetails_SavedOnly(t *testing.T) {
	var gotQuery url.Values
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"person_view": map[string]any{
				"person": map[string]any{"id": 7, "name": "me"},
				"counts": map[string]any{"post_count": 1, "comment_count": 2},
			},
			"posts":    []any{postViewJSON(1, "p")},
			"comments": []any{},
		})
	})
	svc := NewAccountService(newTestClient(h))
	detail, err := svc.PersonDetails(context.Background(), authed, 7, 1, 10, true)
	if err != nil {
		t.Fatalf("details failed: %v", err)
	}
	if gotQuery.Get("person_id") != "7" || gotQuery.Get("saved_only") != "true" {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if detail.Person.Name != "me" || detail.Person.CommentCount != 2 || len(detail.Items()) != 1 {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	if _, err := svc.PersonDetails(context.Background(), anon, 7, 1, 10, true); !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("saved items need a login, got %v", err)
	}
}

func TestInstanceService_ListInstances_FiltersLemmy(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Host != "bootstrap.test" || r.URL.Path != "/api/v3/federated_instances" {
			t.Fatalf("unexpected url: %s", r.URL)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"federated_instances": map[string]any{
			"linked": []any{
				map[string]any{"id": 2, "domain": "z.example", "software": "lemmy"},
				map[string]any{"id": 3, "domain": "kbin.example", "software": "kbin"},
				map[string]any{"id": 4, "domain": "a.example", "software": "Lemmy"},
			},
		}})
	})
	svc := NewInstanceService(newTestClient(h), "https://bootstrap.test")
	got, err := svc.ListInstances(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 || got[0].Domain != "a.example" || got[1].Domain != "z.example" {
		t.Fatalf("unexpected instances: %+v", got)
	}
}

func TestClient_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name   string
		client *Client
		kind   domain.ErrorKind
		status int
		msg    string
	}{
		{
			name:   "transport",
			client: &Client{http: &http.Client{Transport: failingRoundTripper{}}},
			kind:   domain.ErrorKindTransport,
		},
		{
			name: "server json",
			client: newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":"couldnt_find_post"}`))
			})),
			kind:   domain.ErrorKindServer,
			status: http.StatusNotFound,
			msg:    "couldnt_find_post",
		},
		{
			name: "server plain",
			client: newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("  bad gateway \n"))
			})),
			kind:   domain.ErrorKindServer,
			status: http.StatusBadGateway,
			msg:    "bad gateway",
		},
		{
			name: "malformed",
			client: newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			})),
			kind: domain.ErrorKindMalformed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out map[string]any
			err := tt.client.Get(context.Background(), authed, "/post", nil, &out)
			var apiErr *domain.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *domain.APIError, got %T %v", err, err)
			}
			if apiErr.Kind != tt.kind || apiErr.Status != tt.status || apiErr.Message != tt.msg {
				t.Fatalf("unexpected error: %+v", apiErr)
			}
			if strings.Contains(err.Error(), "tok") {
				t.Fatalf("error leaks the token: %v", err)
			}
		})
	}
}

func TestClient_NoInstance(t *testing.T) {
	c := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected")
	}))
	if err := c.Get(context.Background(), domain.Session{}, "/post", nil, nil); !errors.Is(err, domain.ErrNoInstance) {
		t.Fatalf("expected ErrNoInstance, got %v", err)
	}
}

func TestLemmyTime_Layouts(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{raw: `"2023-06-01T10:00:00Z"`, want: time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)},
		{raw: `"2023-06-01T10:00:00"`, want: time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)},
		{raw: `"2023-06-01T12:00:00+02:00"`, want: time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)},
		{raw: `null`, want: time.Time{}},
		{raw: `"garbage"`, want: time.Time{}},
	}
	for _, tt := range tests {
		var got lemmyTime
		if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
			t.Fatalf("%s: unexpected error %v", tt.raw, err)
		}
		if !got.Time().Equal(tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.raw, got.Time(), tt.want)
		}
	}
}
