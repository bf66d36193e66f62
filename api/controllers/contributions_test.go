package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	contribsvc "github.com/nhakalabs/storefront-gateway/internal/contributions"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	"github.com/nhakalabs/storefront-gateway/pkg/pagination"
	"github.com/nhakalabs/storefront-gateway/pkg/types"
)

type stubContributionService struct {
	created    *commerce.Contribution
	err        error
	lastCreate commerce.CreateContributionInput
	lastUpload contribsvc.UploadInput
	lastHidden bool
}

func (s *stubContributionService) List(ctx context.Context, memorialID string, params pagination.Params) (*types.ListEnvelope[commerce.Contribution], error) {
	return types.EmptyList[commerce.Contribution](params.Page), s.err
}

func (s *stubContributionService) Create(ctx context.Context, input commerce.CreateContributionInput) (*commerce.Contribution, error) {
	s.lastCreate = input
	return s.created, s.err
}

func (s *stubContributionService) Upload(ctx context.Context, input contribsvc.UploadInput) (*commerce.Contribution, error) {
	s.lastUpload = input
	if input.File != nil {
		_, _ = io.Copy(io.Discard, input.File)
	}
	return s.created, s.err
}

func (s *stubContributionService) SetVisibility(ctx context.Context, id string, hidden bool) (*commerce.Contribution, error) {
	s.lastHidden = hidden
	return s.created, s.err
}

func TestContributionCreateSanitizesText(t *testing.T) {
	svc := &stubContributionService{created: &commerce.Contribution{ID: "contrib-1"}}
	handler := ContributionCreate(svc, nil)

	body := `{"memorialId":"mem-1","type":"COMMENT","textContent":"  A fond memory.  ","contributorName":" Ada "}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contributions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCreate.TextContent != "A fond memory." {
		t.Fatalf("expected trimmed text, got %q", svc.lastCreate.TextContent)
	}
	if svc.lastCreate.ContributorName != "Ada" {
		t.Fatalf("expected trimmed contributor, got %q", svc.lastCreate.ContributorName)
	}
}

func TestContributionUploadParsesMultipart(t *testing.T) {
	svc := &stubContributionService{created: &commerce.Contribution{ID: "contrib-2"}}
	handler := ContributionUpload(svc, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("memorialId", "mem-1")
	_ = writer.WriteField("type", "AUDIO")
	_ = writer.WriteField("contributorName", "Ada")
	part, err := writer.CreateFormFile("file", "eulogy.mp3")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("audio-bytes"))
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contributions/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastUpload.MemorialID != "mem-1" || svc.lastUpload.Type != commerce.ContributionAudio {
		t.Fatalf("multipart fields not forwarded: %+v", svc.lastUpload)
	}
	if svc.lastUpload.FileName != "eulogy.mp3" {
		t.Fatalf("expected file name forwarded, got %q", svc.lastUpload.FileName)
	}
}

func TestContributionUploadRequiresFile(t *testing.T) {
	svc := &stubContributionService{}
	handler := ContributionUpload(svc, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("memorialId", "mem-1")
	_ = writer.WriteField("type", "IMAGE")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contributions/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestContributionVisibilityRequiresFlag(t *testing.T) {
	svc := &stubContributionService{created: &commerce.Contribution{ID: "contrib-3", IsHidden: true}}
	handler := ContributionSetVisibility(svc, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/contributions/contrib-3/visibility", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without flag got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/contributions/contrib-3/visibility", strings.NewReader(`{"isHidden":true}`))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "contributionID", "contrib-3")
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !svc.lastHidden {
		t.Fatalf("expected hidden=true forwarded")
	}
}
