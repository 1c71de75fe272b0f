// Package fakegoogle provides in-process fakes of the Google Slides and
// YouTube Data APIs. The real generated clients talk to them through
// option.WithEndpoint, so request encoding is exercised end to end.
package fakegoogle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	slidesapi "google.golang.org/api/slides/v1"
	"google.golang.org/api/option"
)

// DefaultSlideID is the object ID of the slide the service puts in every new deck.
const DefaultSlideID = "p"

// Presentation is the server-side state of one fake deck.
type Presentation struct {
	ID     string
	Title  string
	Slides []*Slide
}

// Slide is one page of a fake deck.
type Slide struct {
	ObjectID  string
	Layout    string
	TitleID   string
	TitleText string
	Videos    []*Video
}

// Video is an embedded video element.
type Video struct {
	ObjectID string
	VideoID  string
	Source   string
	Width    float64
	Height   float64
	Unit     string
	AutoPlay bool
}

// SlidesServer fakes the Slides API v1 presentations.create and
// presentations.batchUpdate endpoints. Batches are applied atomically:
// a rejected request leaves the deck untouched.
type SlidesServer struct {
	*httptest.Server

	mu            sync.Mutex
	presentations map[string]*Presentation
	order         []string
	batches       int

	// FailCreate makes presentations.create answer 500.
	FailCreate bool
	// FailBatch makes every batchUpdate answer 500.
	FailBatch bool
}

// NewSlidesServer starts a fake Slides API server that is closed with the test.
func NewSlidesServer(t testing.TB) *SlidesServer {
	s := &SlidesServer{presentations: make(map[string]*Presentation)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Service returns a Slides client bound to this server.
func (s *SlidesServer) Service(t testing.TB) *slidesapi.Service {
	t.Helper()
	svc, err := slidesapi.NewService(context.Background(),
		option.WithEndpoint(s.URL+"/"),
		option.WithHTTPClient(s.Client()),
	)
	if err != nil {
		t.Fatalf("slides.NewService() error = %v", err)
	}
	return svc
}

// Presentation returns a copy of the deck's current state, or nil.
func (s *SlidesServer) Presentation(id string) *Presentation {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.presentations[id]
	if !ok {
		return nil
	}
	return p.clone()
}

// PresentationIDs returns the IDs of all decks in creation order.
func (s *SlidesServer) PresentationIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// BatchCount returns how many batchUpdate calls were received.
func (s *SlidesServer) BatchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches
}

func (s *SlidesServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/presentations")
	switch {
	case path == "":
		s.create(w, r)
	case strings.HasPrefix(path, "/") && strings.HasSuffix(path, ":batchUpdate"):
		s.batchUpdate(w, r, strings.TrimSuffix(strings.TrimPrefix(path, "/"), ":batchUpdate"))
	default:
		writeError(w, http.StatusNotFound, "unknown path "+r.URL.Path)
	}
}

func (s *SlidesServer) create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCreate {
		writeError(w, http.StatusInternalServerError, "Internal error encountered.")
		return
	}

	id := "pres-" + strconv.Itoa(len(s.order)+1)
	s.presentations[id] = &Presentation{
		ID:     id,
		Title:  body.Title,
		Slides: []*Slide{{ObjectID: DefaultSlideID, Layout: "TITLE"}},
	}
	s.order = append(s.order, id)

	writeJSON(w, map[string]any{
		"presentationId": id,
		"title":          body.Title,
		"slides":         []map[string]string{{"objectId": DefaultSlideID}},
	})
}

func (s *SlidesServer) batchUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches++

	if s.FailBatch {
		writeError(w, http.StatusInternalServerError, "Internal error encountered.")
		return
	}

	current, ok := s.presentations[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Requested entity was not found.")
		return
	}

	next := current.clone()
	replies := make([]map[string]any, 0, len(body.Requests))
	for i, req := range body.Requests {
		reply, err := next.apply(req)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid requests[%d].%s", i, err))
			return
		}
		replies = append(replies, reply)
	}
	s.presentations[id] = next

	writeJSON(w, map[string]any{
		"presentationId": id,
		"replies":        replies,
	})
}

func (p *Presentation) apply(req request) (map[string]any, error) {
	switch {
	case req.CreateSlide != nil:
		return p.createSlide(req.CreateSlide)
	case req.InsertText != nil:
		return p.insertText(req.InsertText)
	case req.DeleteObject != nil:
		return p.deleteObject(req.DeleteObject)
	case req.CreateVideo != nil:
		return p.createVideo(req.CreateVideo)
	case req.UpdateVideoProperties != nil:
		return p.updateVideoProperties(req.UpdateVideoProperties)
	default:
		return nil, fmt.Errorf("unsupported request kind")
	}
}

func (p *Presentation) createSlide(req *createSlideRequest) (map[string]any, error) {
	if p.hasObject(req.ObjectID) {
		return nil, duplicateID("createSlide", req.ObjectID)
	}

	slide := &Slide{ObjectID: req.ObjectID}
	if req.SlideLayoutReference != nil {
		slide.Layout = req.SlideLayoutReference.PredefinedLayout
	}
	for _, m := range req.PlaceholderIDMappings {
		if m.LayoutPlaceholder == nil || m.LayoutPlaceholder.Type != "TITLE" {
			return nil, fmt.Errorf("createSlide: unsupported placeholder mapping")
		}
		if slide.Layout != "TITLE_ONLY" && slide.Layout != "TITLE" {
			return nil, fmt.Errorf("createSlide: layout %q has no TITLE placeholder", slide.Layout)
		}
		if p.hasObject(m.ObjectID) || m.ObjectID == req.ObjectID {
			return nil, duplicateID("createSlide", m.ObjectID)
		}
		slide.TitleID = m.ObjectID
	}

	index := len(p.Slides)
	if req.InsertionIndex != nil {
		index = int(*req.InsertionIndex)
		if index < 0 || index > len(p.Slides) {
			return nil, fmt.Errorf("createSlide: insertion index %d out of range", index)
		}
	}
	p.Slides = append(p.Slides, nil)
	copy(p.Slides[index+1:], p.Slides[index:])
	p.Slides[index] = slide

	return map[string]any{"createSlide": map[string]string{"objectId": slide.ObjectID}}, nil
}

func (p *Presentation) insertText(req *insertTextRequest) (map[string]any, error) {
	for _, slide := range p.Slides {
		if slide.TitleID != "" && slide.TitleID == req.ObjectID {
			slide.TitleText += req.Text
			return map[string]any{}, nil
		}
	}
	return nil, fmt.Errorf("insertText: The object (%s) could not be found.", req.ObjectID)
}

func (p *Presentation) deleteObject(req *objectRef) (map[string]any, error) {
	for i, slide := range p.Slides {
		if slide.ObjectID == req.ObjectID {
			p.Slides = append(p.Slides[:i], p.Slides[i+1:]...)
			return map[string]any{}, nil
		}
		for j, video := range slide.Videos {
			if video.ObjectID == req.ObjectID {
				slide.Videos = append(slide.Videos[:j], slide.Videos[j+1:]...)
				return map[string]any{}, nil
			}
		}
	}
	return nil, fmt.Errorf("deleteObject: The object (%s) could not be found.", req.ObjectID)
}

func (p *Presentation) createVideo(req *createVideoRequest) (map[string]any, error) {
	if p.hasObject(req.ObjectID) {
		return nil, duplicateID("createVideo", req.ObjectID)
	}
	if req.Source != "YOUTUBE" && req.Source != "DRIVE" {
		return nil, fmt.Errorf("createVideo: invalid source %q", req.Source)
	}
	if req.ID == "" {
		return nil, fmt.Errorf("createVideo: video id is required")
	}
	if req.ElementProperties == nil {
		return nil, fmt.Errorf("createVideo: elementProperties is required")
	}

	page := p.slide(req.ElementProperties.PageObjectID)
	if page == nil {
		return nil, fmt.Errorf("createVideo: The page (%s) could not be found.", req.ElementProperties.PageObjectID)
	}

	video := &Video{ObjectID: req.ObjectID, VideoID: req.ID, Source: req.Source}
	if size := req.ElementProperties.Size; size != nil {
		if size.Width != nil {
			video.Width, video.Unit = size.Width.Magnitude, size.Width.Unit
		}
		if size.Height != nil {
			video.Height = size.Height.Magnitude
		}
	}
	page.Videos = append(page.Videos, video)

	return map[string]any{"createVideo": map[string]string{"objectId": video.ObjectID}}, nil
}

func (p *Presentation) updateVideoProperties(req *updateVideoPropertiesRequest) (map[string]any, error) {
	video := p.video(req.ObjectID)
	if video == nil {
		return nil, fmt.Errorf("updateVideoProperties: The object (%s) could not be found.", req.ObjectID)
	}
	if req.Fields == "" {
		return nil, fmt.Errorf("updateVideoProperties: fields is required")
	}
	for _, field := range strings.Split(req.Fields, ",") {
		if strings.TrimSpace(field) == "autoPlay" && req.VideoProperties != nil {
			video.AutoPlay = req.VideoProperties.AutoPlay
		}
	}
	return map[string]any{}, nil
}

func (p *Presentation) hasObject(id string) bool {
	for _, slide := range p.Slides {
		if slide.ObjectID == id || (slide.TitleID != "" && slide.TitleID == id) {
			return true
		}
		for _, video := range slide.Videos {
			if video.ObjectID == id {
				return true
			}
		}
	}
	return false
}

func (p *Presentation) slide(id string) *Slide {
	for _, slide := range p.Slides {
		if slide.ObjectID == id {
			return slide
		}
	}
	return nil
}

func (p *Presentation) video(id string) *Video {
	for _, slide := range p.Slides {
		for _, video := range slide.Videos {
			if video.ObjectID == id {
				return video
			}
		}
	}
	return nil
}

func (p *Presentation) clone() *Presentation {
	out := &Presentation{ID: p.ID, Title: p.Title, Slides: make([]*Slide, len(p.Slides))}
	for i, slide := range p.Slides {
		sc := *slide
		sc.Videos = make([]*Video, len(slide.Videos))
		for j, video := range slide.Videos {
			vc := *video
			sc.Videos[j] = &vc
		}
		out.Slides[i] = &sc
	}
	return out
}

func duplicateID(op, id string) error {
	return fmt.Errorf("%s: The object ID (%s) should be unique among all pages and page elements.", op, id)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError answers in the Google API error envelope so googleapi.CheckResponse
// yields a *googleapi.Error with the same code and message.
func writeError(w http.ResponseWriter, code int, message string) {
	status := "INVALID_ARGUMENT"
	switch code {
	case http.StatusNotFound:
		status = "NOT_FOUND"
	case http.StatusInternalServerError:
		status = "INTERNAL"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"status":  status,
		},
	})
}
