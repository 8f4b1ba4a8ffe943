package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
)

// topicSite implements the topic and post parts of SiteStore.  Calls to any
// other method panic through the nil embedded interface.
type topicSite struct {
	SiteStore
	topics map[uint64]model.ContentTopic
	posts  map[uint64]model.ContentPost
}

func (s *topicSite) ListTopics(context.Context) ([]model.ContentTopic, error) {
	out := []model.ContentTopic{}
	for _, t := range s.topics {
		out = append(out, t)
	}
	return out, nil
}

func (s *topicSite) GetTopic(_ context.Context, id uint64) (model.ContentTopic, error) {
	t, ok := s.topics[id]
	if !ok {
		return model.ContentTopic{}, repository.ErrNotFound
	}
	return t, nil
}

func (s *topicSite) CreateTopic(_ context.Context, t model.ContentTopic) (model.ContentTopic, error) {
	t.ID = uint64(len(s.topics) + 1)
	s.topics[t.ID] = t
	return t, nil
}

func (s *topicSite) UpdateTopic(_ context.Context, id uint64, patch model.ContentTopicPatch) error {
	t := s.topics[id]
	patch.ApplyTo(&t)
	s.topics[id] = t
	return nil
}

func (s *topicSite) CreatePost(_ context.Context, p model.ContentPost) (model.ContentPost, error) {
	if _, ok := s.topics[p.TopicID]; !ok {
		return model.ContentPost{}, repository.ErrNotFound
	}
	p.ID = uint64(len(s.posts) + 1)
	s.posts[p.ID] = p
	return p, nil
}

func TestSite_Topics(t *testing.T) {
	site := &topicSite{topics: map[uint64]model.ContentTopic{}, posts: map[uint64]model.ContentPost{}}
	h := NewSiteHandler(site, logging.Discard())

	rec := serve(t, "/content/topics", h.CreateTopic, request{method: http.MethodPost, target: "/content/topics", body: `{"title":"Launch"}`, user: as(root)})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "idea", body["status"])
	assert.Equal(t, []any{}, body["posts"])

	rec = serve(t, "/content/topics/:id", h.UpdateTopic, request{method: http.MethodPatch, target: "/content/topics/1", body: `{"status":"writing"}`, user: as(root)})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "writing", site.topics[1].Status)
	assert.Equal(t, "Launch", site.topics[1].Title)

	rec = serve(t, "/content/topics/:id", h.UpdateTopic, request{method: http.MethodPatch, target: "/content/topics/1", body: `{"status":"shipped"}`, user: as(root)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, "/content/topics/:id", h.UpdateTopic, request{method: http.MethodPatch, target: "/content/topics/7", body: `{"title":"x"}`, user: as(root)})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, "/content/topics", h.ListTopics, request{method: http.MethodGet, target: "/content/topics"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSite_CreatePost(t *testing.T) {
	site := &topicSite{topics: map[uint64]model.ContentTopic{1: {ID: 1, Title: "Launch"}}, posts: map[uint64]model.ContentPost{}}
	h := NewSiteHandler(site, logging.Discard())

	rec := serve(t, "/content/posts", h.CreatePost, request{method: http.MethodPost, target: "/content/posts", body: `{"topicId":1,"platform":"linkedin","content":"We shipped"}`, user: as(root)})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "draft", decode(t, rec)["status"])

	rec = serve(t, "/content/posts", h.CreatePost, request{method: http.MethodPost, target: "/content/posts", body: `{"topicId":9,"platform":"linkedin","content":"x"}`, user: as(root)})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, "/content/posts", h.CreatePost, request{method: http.MethodPost, target: "/content/posts", body: `{"topicId":1,"platform":"myspace","content":"x"}`, user: as(root)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
