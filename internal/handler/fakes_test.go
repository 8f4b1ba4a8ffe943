package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/events"
	"github.com/iliyamo/portfolio-api/internal/middleware"
	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
)

var (
	alice = model.User{ID: 1, Username: "alice", Role: model.RoleUser}
	bob   = model.User{ID: 2, Username: "bob", Role: model.RoleUser}
	root  = model.User{ID: 3, Username: "root", Role: model.RoleAdmin}
)

func owner(id uint64) *uint64 { return &id }

// request describes one call against a single registered route.
type request struct {
	method      string
	target      string
	body        string
	contentType string
	user        *model.User
}

// serve mounts h on route and plays req against it.  The user, when set, is
// attached the way the identity middleware would.
func serve(t *testing.T, route string, h echo.HandlerFunc, req request) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Add(req.method, route, h, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if req.user != nil {
				u := *req.user
				middleware.SetUser(c, &u)
			}
			return next(c)
		}
	})

	var body io.Reader
	if req.body != "" {
		body = strings.NewReader(req.body)
	}
	r := httptest.NewRequest(req.method, req.target, body)
	ct := req.contentType
	if ct == "" && req.body != "" {
		ct = echo.MIMEApplicationJSON
	}
	if ct != "" {
		r.Header.Set(echo.HeaderContentType, ct)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, r)
	return rec
}

func as(u model.User) *model.User { return &u }

// ----- projects -----

type memProjects struct {
	rows     map[uint64]model.Project
	next     uint64
	lastList repository.ProjectFilter
}

func newMemProjects(rows ...model.Project) *memProjects {
	m := &memProjects{rows: map[uint64]model.Project{}, next: 100}
	for _, r := range rows {
		m.rows[r.ID] = r
	}
	return m
}

func (m *memProjects) List(_ context.Context, f repository.ProjectFilter) ([]model.Project, error) {
	m.lastList = f
	out := []model.Project{}
	for _, p := range m.rows {
		if f.Status == "" || p.Status == f.Status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProjects) GetByID(_ context.Context, id uint64) (model.Project, error) {
	p, ok := m.rows[id]
	if !ok {
		return model.Project{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *memProjects) GetBySlug(_ context.Context, slug string) (model.Project, error) {
	for _, p := range m.rows {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Project{}, repository.ErrNotFound
}

func (m *memProjects) Create(_ context.Context, p model.Project) (model.Project, error) {
	for _, existing := range m.rows {
		if existing.Slug == p.Slug {
			return model.Project{}, repository.ErrConflict
		}
	}
	m.next++
	p.ID = m.next
	p.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.rows[p.ID] = p
	return p, nil
}

func (m *memProjects) Update(_ context.Context, id uint64, patch model.ProjectPatch) error {
	p := m.rows[id]
	patch.ApplyTo(&p)
	m.rows[id] = p
	return nil
}

func (m *memProjects) Delete(_ context.Context, id uint64) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// ----- testimonials -----

type memTestimonials struct {
	rows map[uint64]model.Testimonial
}

func (m *memTestimonials) List(context.Context, string) ([]model.Testimonial, error) {
	out := []model.Testimonial{}
	for _, id := range []uint64{1, 2, 3, 4, 5} {
		if t, ok := m.rows[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTestimonials) ListByUser(_ context.Context, userID uint64) ([]model.Testimonial, error) {
	out := []model.Testimonial{}
	for _, id := range []uint64{1, 2, 3, 4, 5} {
		if t, ok := m.rows[id]; ok && t.UserID != nil && *t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTestimonials) GetByID(_ context.Context, id uint64) (model.Testimonial, error) {
	t, ok := m.rows[id]
	if !ok {
		return model.Testimonial{}, repository.ErrNotFound
	}
	return t, nil
}

func (m *memTestimonials) Create(_ context.Context, t model.Testimonial) (model.Testimonial, error) {
	t.ID = uint64(len(m.rows) + 1)
	m.rows[t.ID] = t
	return t, nil
}

func (m *memTestimonials) Update(_ context.Context, id uint64, patch model.TestimonialPatch) error {
	t := m.rows[id]
	patch.ApplyTo(&t)
	m.rows[id] = t
	return nil
}

func (m *memTestimonials) Delete(_ context.Context, id uint64) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// ----- articles -----

type memArticles struct {
	rows     map[uint64]model.Article
	lastList repository.ArticleFilter
}

func (m *memArticles) List(_ context.Context, f repository.ArticleFilter) ([]model.Article, error) {
	m.lastList = f
	out := []model.Article{}
	for _, id := range []uint64{1, 2, 3, 4, 5} {
		a, ok := m.rows[id]
		if !ok {
			continue
		}
		if f.Published != nil && a.Published != *f.Published {
			continue
		}
		if f.Archived != nil && a.Archived != *f.Archived {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memArticles) GetByID(_ context.Context, id uint64) (model.Article, error) {
	a, ok := m.rows[id]
	if !ok {
		return model.Article{}, repository.ErrNotFound
	}
	return a, nil
}

func (m *memArticles) Create(_ context.Context, a model.Article) (model.Article, error) {
	a.ID = uint64(len(m.rows) + 1)
	m.rows[a.ID] = a
	return a, nil
}

func (m *memArticles) Update(_ context.Context, id uint64, patch model.ArticlePatch) error {
	a := m.rows[id]
	patch.ApplyTo(&a)
	m.rows[id] = a
	return nil
}

func (m *memArticles) SetArchived(ctx context.Context, id uint64, archived bool) error {
	return m.Update(ctx, id, model.ArticlePatch{Archived: model.Set(archived)})
}

func (m *memArticles) Delete(_ context.Context, id uint64) error {
	delete(m.rows, id)
	return nil
}

// ----- messages -----

type memMessages struct {
	rows map[uint64]model.Message
}

func (m *memMessages) List(context.Context) ([]model.Message, error) {
	out := []model.Message{}
	for _, v := range m.rows {
		out = append(out, v)
	}
	return out, nil
}

func (m *memMessages) GetByID(_ context.Context, id uint64) (model.Message, error) {
	v, ok := m.rows[id]
	if !ok {
		return model.Message{}, repository.ErrNotFound
	}
	return v, nil
}

func (m *memMessages) Create(_ context.Context, v model.Message) (model.Message, error) {
	v.ID = uint64(len(m.rows) + 1)
	v.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.rows[v.ID] = v
	return v, nil
}

func (m *memMessages) Update(_ context.Context, id uint64, patch model.MessagePatch) error {
	v := m.rows[id]
	patch.ApplyTo(&v)
	m.rows[id] = v
	return nil
}

func (m *memMessages) Delete(_ context.Context, id uint64) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type recordingPublisher struct {
	events []events.MessageReceived
	err    error
}

func (p *recordingPublisher) PublishMessageReceived(_ context.Context, ev events.MessageReceived) error {
	p.events = append(p.events, ev)
	return p.err
}

// ----- users -----

type memUsers struct {
	byID      map[uint64]model.User
	passwords map[uint64]string
}

func (m *memUsers) FindByUsername(_ context.Context, name string) (model.User, bool, error) {
	for _, u := range m.byID {
		if u.Username == name {
			return u, true, nil
		}
	}
	return model.User{}, false, nil
}

func (m *memUsers) FindByID(_ context.Context, id uint64) (model.User, bool, error) {
	u, ok := m.byID[id]
	return u, ok, nil
}

func (m *memUsers) Create(_ context.Context, u model.User) (model.User, error) {
	for _, existing := range m.byID {
		if existing.Username == u.Username {
			return model.User{}, repository.ErrConflict
		}
	}
	u.ID = uint64(len(m.byID) + 10)
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uint64, hash string) error {
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	m.byID[id] = u
	if m.passwords == nil {
		m.passwords = map[uint64]string{}
	}
	m.passwords[id] = hash
	return nil
}

// ----- profiles -----

type memProfiles struct {
	rows map[uint64]model.Profile
}

func (m *memProfiles) First(context.Context) (model.Profile, error) {
	return m.GetByID(context.Background(), 1)
}

func (m *memProfiles) GetByID(_ context.Context, id uint64) (model.Profile, error) {
	p, ok := m.rows[id]
	if !ok {
		return model.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *memProfiles) GetByUserID(_ context.Context, userID uint64) (model.Profile, error) {
	for _, p := range m.rows {
		if p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return model.Profile{}, repository.ErrNotFound
}

func (m *memProfiles) GetByUsername(ctx context.Context, username string) (model.Profile, error) {
	for id, u := range map[uint64]model.User{alice.ID: alice, bob.ID: bob, root.ID: root} {
		if u.Username == username {
			return m.GetByUserID(ctx, id)
		}
	}
	return model.Profile{}, repository.ErrNotFound
}

func (m *memProfiles) Create(ctx context.Context, p model.Profile) (model.Profile, error) {
	if _, err := m.GetByUserID(ctx, *p.UserID); err == nil {
		return model.Profile{}, repository.ErrConflict
	}
	p.ID = uint64(len(m.rows) + 1)
	m.rows[p.ID] = p
	return p, nil
}

func (m *memProfiles) Update(_ context.Context, id uint64, patch model.ProfilePatch) error {
	p := m.rows[id]
	patch.ApplyTo(&p)
	m.rows[id] = p
	return nil
}

func (m *memProfiles) Delete(_ context.Context, id uint64) error {
	delete(m.rows, id)
	return nil
}

// ----- misc -----

type fakeUploader struct {
	url string
	err error
	got []byte
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.got = b
	return f.url, f.err
}

type pingFunc func(context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

