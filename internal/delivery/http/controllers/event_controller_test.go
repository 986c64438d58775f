package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventForm builds a multipart body with every required event field.
func eventForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":       "Go Conference 2025",
		"description": "A conference",
		"overview":    "Long overview",
		"venue":       "Main Hall",
		"location":    "Berlin",
		"date":        "March 5, 2025",
		"time":        "3:30 PM",
		"mode":        "hybrid",
		"organizer":   "Gophers",
		"audience":    `["developers"]`,
		"agenda":      `["talks"]`,
		"tags":        `["go"]`,
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("image", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func newEventController(events *fakeEventService, moderation *fakeModerationService, query *fakeQueryService) *EventController {
	if events == nil {
		events = &fakeEventService{}
	}
	if moderation == nil {
		moderation = &fakeModerationService{}
	}
	if query == nil {
		query = &fakeQueryService{}
	}
	return NewEventController(testLogger(), events, moderation, query)
}

func TestEventControllerCreate(t *testing.T) {
	t.Run("admin creates directly", func(t *testing.T) {
		events := &fakeEventService{created: &domain.Event{ID: "ev-1", Title: "Go Conference 2025", Slug: "go-conference-2025"}}
		moderation := &fakeModerationService{}
		c := newEventController(events, moderation, nil)

		body, contentType := eventForm(t)
		req := httptest.NewRequest(http.MethodPost, "/events", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.SetRole(req.Context(), domain.AdminRole))
		rec := httptest.NewRecorder()
		c.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Data CreateEventResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "created", resp.Data.Status)
		require.NotNil(t, resp.Data.Event)
		assert.Nil(t, resp.Data.Pending)
	})

	t.Run("anonymous submission goes to review", func(t *testing.T) {
		moderation := &fakeModerationService{pending: &domain.PendingEvent{
			Event:       domain.Event{ID: "pe-1", Title: "Go Conference 2025", Slug: "go-conference-2025"},
			SubmittedBy: "user",
		}}
		c := newEventController(nil, moderation, nil)

		body, contentType := eventForm(t)
		req := httptest.NewRequest(http.MethodPost, "/events", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		c.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Data CreateEventResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "submitted for review", resp.Data.Status)
		require.NotNil(t, resp.Data.Pending)
		assert.Nil(t, resp.Data.Event)
	})

	t.Run("validation error carries field map", func(t *testing.T) {
		v := domain.NewValidationError("date", "invalid date format")
		c := newEventController(nil, &fakeModerationService{err: v}, nil)

		body, contentType := eventForm(t)
		req := httptest.NewRequest(http.MethodPost, "/events", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		c.Create(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeBadRequest, resp.Error.Code)
		assert.Contains(t, resp.Error.Fields, "date")
	})

	t.Run("duplicate title from admin create", func(t *testing.T) {
		c := newEventController(&fakeEventService{err: domain.ErrDuplicateTitle}, nil, nil)

		body, contentType := eventForm(t)
		req := httptest.NewRequest(http.MethodPost, "/events", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.SetRole(req.Context(), domain.AdminRole))
		rec := httptest.NewRecorder()
		c.Create(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.Equal(t, helpers.ErrCodeDuplicateTitle, resp.Error.Code)
	})

	t.Run("malformed tags field", func(t *testing.T) {
		c := newEventController(nil, nil, nil)

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("title", "T"))
		require.NoError(t, w.WriteField("tags", "go, backend"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/events", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		c.Create(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEventControllerList(t *testing.T) {
	c := newEventController(&fakeEventService{
		listed: []*domain.Event{{ID: "ev-1", Title: "A", Slug: "a"}},
		total:  25,
	}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/events?page=2&page_size=12", nil)
	rec := httptest.NewRecorder()
	c.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data ListEventsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 2, resp.Data.Pagination.Page)
	assert.Equal(t, 25, resp.Data.Pagination.Total)
	assert.Equal(t, 3, resp.Data.Pagination.TotalPages)
}

func TestEventControllerGetBySlug(t *testing.T) {
	t.Run("approved event", func(t *testing.T) {
		c := newEventController(nil, nil, &fakeQueryService{
			lookup: &domain.SlugLookup{Event: &domain.Event{ID: "ev-1", Slug: "a"}, IsPending: false},
		})
		req := httptest.NewRequest(http.MethodGet, "/events/a", nil)
		req.SetPathValue("slug", "a")
		rec := httptest.NewRecorder()
		c.GetBySlug(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("pending event is flagged", func(t *testing.T) {
		c := newEventController(nil, nil, &fakeQueryService{
			lookup: &domain.SlugLookup{Event: &domain.Event{ID: "pe-1", Slug: "w"}, IsPending: true},
		})
		req := httptest.NewRequest(http.MethodGet, "/events/w", nil)
		req.SetPathValue("slug", "w")
		rec := httptest.NewRecorder()
		c.GetBySlug(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data domain.SlugLookup `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Data.IsPending)
	})

	t.Run("unknown slug", func(t *testing.T) {
		c := newEventController(nil, nil, &fakeQueryService{err: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
		req.SetPathValue("slug", "missing")
		rec := httptest.NewRecorder()
		c.GetBySlug(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.Equal(t, helpers.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestEventControllerSimilar(t *testing.T) {
	c := newEventController(nil, nil, &fakeQueryService{
		similar: []*domain.Event{{ID: "ev-2", Slug: "b"}},
	})
	req := httptest.NewRequest(http.MethodGet, "/events/a/similar", nil)
	req.SetPathValue("slug", "a")
	rec := httptest.NewRecorder()
	c.Similar(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []*domain.Event `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
}

func TestEventControllerDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := newEventController(&fakeEventService{}, nil, nil)
		req := httptest.NewRequest(http.MethodDelete, "/events/ev-1", nil)
		req.SetPathValue("id", "ev-1")
		rec := httptest.NewRecorder()
		c.Delete(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		c := newEventController(&fakeEventService{err: domain.ErrNotFound}, nil, nil)
		req := httptest.NewRequest(http.MethodDelete, "/events/ev-missing", nil)
		req.SetPathValue("id", "ev-missing")
		rec := httptest.NewRecorder()
		c.Delete(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventControllerUpdate(t *testing.T) {
	partialForm := func(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for k, v := range fields {
			require.NoError(t, w.WriteField(k, v))
		}
		require.NoError(t, w.Close())
		return &buf, w.FormDataContentType()
	}

	t.Run("rename succeeds", func(t *testing.T) {
		events := &fakeEventService{created: &domain.Event{ID: "ev-1", Title: "GopherCon EU", Slug: "gophercon-eu"}}
		c := newEventController(events, nil, nil)

		body, contentType := partialForm(t, map[string]string{"title": "GopherCon EU"})
		req := httptest.NewRequest(http.MethodPut, "/events/ev-1", body)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("id", "ev-1")
		rec := httptest.NewRecorder()
		c.Update(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data domain.Event `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "gophercon-eu", resp.Data.Slug)
	})

	t.Run("rename collision", func(t *testing.T) {
		c := newEventController(&fakeEventService{err: domain.ErrDuplicateTitle}, nil, nil)

		body, contentType := partialForm(t, map[string]string{"title": "Go Conference 2025"})
		req := httptest.NewRequest(http.MethodPut, "/events/ev-2", body)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("id", "ev-2")
		rec := httptest.NewRecorder()
		c.Update(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeDuplicateTitle, resp.Error.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		c := newEventController(&fakeEventService{err: domain.ErrNotFound}, nil, nil)

		body, contentType := partialForm(t, map[string]string{"venue": "New Hall"})
		req := httptest.NewRequest(http.MethodPut, "/events/missing", body)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("id", "missing")
		rec := httptest.NewRecorder()
		c.Update(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
