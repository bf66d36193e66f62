package contributions

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
	"github.com/nhakalabs/storefront-gateway/pkg/pagination"
	"github.com/nhakalabs/storefront-gateway/pkg/types"
)

type apiStub struct {
	created    *commerce.Contribution
	listErr    error
	creates    int
	uploads    int
	lastHidden bool
}

func (a *apiStub) ListContributions(_ context.Context, memorialID string, params pagination.Params) (*types.ListEnvelope[commerce.Contribution], error) {
	if a.listErr != nil {
		return nil, a.listErr
	}
	return &types.ListEnvelope[commerce.Contribution]{Data: []commerce.Contribution{}}, nil
}

func (a *apiStub) CreateContribution(_ context.Context, input commerce.CreateContributionInput) (*commerce.Contribution, error) {
	a.creates++
	return a.created, nil
}

func (a *apiStub) UploadContribution(_ context.Context, input commerce.UploadContributionInput) (*commerce.Contribution, error) {
	a.uploads++
	return a.created, nil
}

func (a *apiStub) SetContributionHidden(_ context.Context, id string, hidden bool) (*commerce.Contribution, error) {
	a.lastHidden = hidden
	return a.created, nil
}

func newTestService(t *testing.T, stub *apiStub) Service {
	t.Helper()
	if stub.created == nil {
		stub.created = &commerce.Contribution{ID: "c1"}
	}
	svc, err := NewService(stub, logger.New(logger.Options{Output: io.Discard}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateAcceptsTextTypes(t *testing.T) {
	t.Parallel()

	stub := &apiStub{}
	svc := newTestService(t, stub)

	for _, typ := range []commerce.ContributionType{
		commerce.ContributionBiography,
		commerce.ContributionComment,
		commerce.ContributionStory,
		commerce.ContributionPrayer,
	} {
		_, err := svc.Create(context.Background(), commerce.CreateContributionInput{
			MemorialID:  "mem-1",
			Type:        typ,
			TextContent: "a few words",
		})
		if err != nil {
			t.Fatalf("create %s: %v", typ, err)
		}
	}
	if stub.creates != 4 {
		t.Fatalf("creates = %d, want 4", stub.creates)
	}
}

func TestCreateRejectsMediaTypes(t *testing.T) {
	t.Parallel()

	stub := &apiStub{}
	svc := newTestService(t, stub)

	_, err := svc.Create(context.Background(), commerce.CreateContributionInput{
		MemorialID:  "mem-1",
		Type:        commerce.ContributionImage,
		TextContent: "ignored",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stub.creates != 0 {
		t.Fatal("media type must not go through the text path")
	}
}

func TestCreateRequiresText(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &apiStub{})
	_, err := svc.Create(context.Background(), commerce.CreateContributionInput{
		MemorialID: "mem-1",
		Type:       commerce.ContributionStory,
	})
	if err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestUploadRejectsTextTypes(t *testing.T) {
	t.Parallel()

	stub := &apiStub{}
	svc := newTestService(t, stub)

	_, err := svc.Upload(context.Background(), UploadInput{
		MemorialID: "mem-1",
		Type:       commerce.ContributionStory,
		FileName:   "story.txt",
		File:       strings.NewReader("x"),
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stub.uploads != 0 {
		t.Fatal("text type must not go through the upload path")
	}
}

func TestUploadAcceptsMedia(t *testing.T) {
	t.Parallel()

	stub := &apiStub{}
	svc := newTestService(t, stub)

	_, err := svc.Upload(context.Background(), UploadInput{
		MemorialID: "mem-1",
		Type:       commerce.ContributionAudio,
		FileName:   "eulogy.mp3",
		File:       strings.NewReader("audio bytes"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if stub.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", stub.uploads)
	}
}

func TestSetVisibilityForwardsFlag(t *testing.T) {
	t.Parallel()

	stub := &apiStub{}
	svc := newTestService(t, stub)

	if _, err := svc.SetVisibility(context.Background(), "c1", true); err != nil {
		t.Fatalf("set visibility: %v", err)
	}
	if !stub.lastHidden {
		t.Fatal("hidden flag not forwarded")
	}
}

func TestListRequiresMemorialID(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &apiStub{})
	if _, err := svc.List(context.Background(), "", pagination.Params{}); err == nil {
		t.Fatal("expected error for blank memorial id")
	}
}
