package contributions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
	"github.com/nhakalabs/storefront-gateway/pkg/pagination"
	"github.com/nhakalabs/storefront-gateway/pkg/types"
)

type contributionAPI interface {
	ListContributions(ctx context.Context, memorialID string, params pagination.Params) (*types.ListEnvelope[commerce.Contribution], error)
	CreateContribution(ctx context.Context, input commerce.CreateContributionInput) (*commerce.Contribution, error)
	UploadContribution(ctx context.Context, input commerce.UploadContributionInput) (*commerce.Contribution, error)
	SetContributionHidden(ctx context.Context, id string, hidden bool) (*commerce.Contribution, error)
}

// textTypes are the contribution kinds carried in the JSON body; media kinds
// go through Upload instead.
var textTypes = map[commerce.ContributionType]bool{
	commerce.ContributionBiography: true,
	commerce.ContributionComment:   true,
	commerce.ContributionStory:     true,
	commerce.ContributionPrayer:    true,
}

// UploadInput is a media contribution plus its file stream.
type UploadInput struct {
	MemorialID      string
	Type            commerce.ContributionType
	ContributorName string
	FileName        string
	File            io.Reader
	OnProgress      commerce.ProgressFunc
}

// Service handles memorial contributions and their moderation.
type Service interface {
	List(ctx context.Context, memorialID string, params pagination.Params) (*types.ListEnvelope[commerce.Contribution], error)
	Create(ctx context.Context, input commerce.CreateContributionInput) (*commerce.Contribution, error)
	Upload(ctx context.Context, input UploadInput) (*commerce.Contribution, error)
	SetVisibility(ctx context.Context, id string, hidden bool) (*commerce.Contribution, error)
}

type service struct {
	commerce contributionAPI
	logg     *logger.Logger
}

// NewService builds the contribution service.
func NewService(client contributionAPI, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{commerce: client, logg: logg}, nil
}

func (s *service) List(ctx context.Context, memorialID string, params pagination.Params) (*types.ListEnvelope[commerce.Contribution], error) {
	if strings.TrimSpace(memorialID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "memorial id is required")
	}
	params.Page = pagination.NormalizePage(params.Page)
	params.Limit = pagination.NormalizeLimit(params.Limit)

	envelope, err := s.commerce.ListContributions(ctx, memorialID, params)
	if err != nil {
		if errors.Is(err, commerce.ErrMalformedResponse) {
			s.logg.Warn(ctx, "contribution list response had an unexpected shape, serving empty page")
			return types.EmptyList[commerce.Contribution](params.Page), nil
		}
		return nil, err
	}
	if envelope.Data == nil {
		envelope.Data = []commerce.Contribution{}
	}
	return envelope, nil
}

// Create posts a text contribution. Media types must use Upload so the file
// travels with the record.
func (s *service) Create(ctx context.Context, input commerce.CreateContributionInput) (*commerce.Contribution, error) {
	if strings.TrimSpace(input.MemorialID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "memorial id is required")
	}
	if !textTypes[input.Type] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contribution type requires a media upload")
	}
	if strings.TrimSpace(input.TextContent) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "text content is required")
	}
	return s.commerce.CreateContribution(ctx, input)
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*commerce.Contribution, error) {
	if strings.TrimSpace(input.MemorialID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "memorial id is required")
	}
	if textTypes[input.Type] || !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upload requires a media contribution type")
	}
	if input.File == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}
	created, err := s.commerce.UploadContribution(ctx, commerce.UploadContributionInput{
		MemorialID:      input.MemorialID,
		Type:            input.Type,
		ContributorName: input.ContributorName,
		FileName:        input.FileName,
		File:            input.File,
		OnProgress:      input.OnProgress,
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "contribution_id", created.ID), "media contribution uploaded")
	return created, nil
}

// SetVisibility toggles moderation on one contribution.
func (s *service) SetVisibility(ctx context.Context, id string, hidden bool) (*commerce.Contribution, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contribution id is required")
	}
	return s.commerce.SetContributionHidden(ctx, id, hidden)
}
