package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"devevent/internal/domain"
)

// maxEventFormSize caps the multipart body, image included.
const maxEventFormSize = 5 << 20

// ParseEventForm reads a multipart form into an EventDraft. List fields
// (audience, agenda, tags) must be JSON arrays of strings. The image part is
// optional here; services decide whether it is required.
func ParseEventForm(r *http.Request) (*domain.EventDraft, error) {
	if err := r.ParseMultipartForm(maxEventFormSize); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	draft := &domain.EventDraft{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Organizer:   r.FormValue("organizer"),
	}
	var err error
	if draft.Audience, err = parseStringList(r.FormValue("audience")); err != nil {
		return nil, fmt.Errorf("audience: %w", err)
	}
	if draft.Agenda, err = parseStringList(r.FormValue("agenda")); err != nil {
		return nil, fmt.Errorf("agenda: %w", err)
	}
	if draft.Tags, err = parseStringList(r.FormValue("tags")); err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	if draft.Image, err = readImagePart(r); err != nil {
		return nil, err
	}
	return draft, nil
}

// ParseEventUpdateForm reads a multipart form into an EventUpdate. Fields
// absent from the form stay nil and are left unchanged downstream.
func ParseEventUpdateForm(r *http.Request) (*domain.EventUpdate, error) {
	if err := r.ParseMultipartForm(maxEventFormSize); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	upd := &domain.EventUpdate{}
	upd.Title = formValuePtr(r, "title")
	upd.Description = formValuePtr(r, "description")
	upd.Overview = formValuePtr(r, "overview")
	upd.Venue = formValuePtr(r, "venue")
	upd.Location = formValuePtr(r, "location")
	upd.Date = formValuePtr(r, "date")
	upd.Time = formValuePtr(r, "time")
	upd.Mode = formValuePtr(r, "mode")
	upd.Organizer = formValuePtr(r, "organizer")

	var err error
	if upd.Audience, err = parseOptionalStringList(r, "audience"); err != nil {
		return nil, fmt.Errorf("audience: %w", err)
	}
	if upd.Agenda, err = parseOptionalStringList(r, "agenda"); err != nil {
		return nil, fmt.Errorf("agenda: %w", err)
	}
	if upd.Tags, err = parseOptionalStringList(r, "tags"); err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	if upd.Image, err = readImagePart(r); err != nil {
		return nil, err
	}
	return upd, nil
}

// parseStringList decodes a JSON array of strings. An empty value yields nil.
func parseStringList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("must be a JSON array of strings")
	}
	return out, nil
}

func parseOptionalStringList(r *http.Request, name string) ([]string, error) {
	if !formHasField(r, name) {
		return nil, nil
	}
	list, err := parseStringList(r.FormValue(name))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func formValuePtr(r *http.Request, name string) *string {
	if !formHasField(r, name) {
		return nil
	}
	v := r.FormValue(name)
	return &v
}

func formHasField(r *http.Request, name string) bool {
	if r.MultipartForm == nil {
		return false
	}
	_, ok := r.MultipartForm.Value[name]
	return ok
}

// readImagePart reads the optional "image" file part into an ImageUpload.
// Missing part returns nil without error.
func readImagePart(r *http.Request) (*domain.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid image part: %w", err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxEventFormSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxEventFormSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxEventFormSize)
	}
	return &domain.ImageUpload{
		Filename:    header.Filename,
		ContentType: partContentType(header),
		Data:        data,
	}, nil
}

func partContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
