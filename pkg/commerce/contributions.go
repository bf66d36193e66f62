package commerce

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/pagination"
	"github.com/nhakalabs/storefront-gateway/pkg/types"
)

// ListContributions pages through a memorial's contributions.
func (c *Client) ListContributions(ctx context.Context, memorialID string, params pagination.Params) (*types.ListEnvelope[Contribution], error) {
	query := params.Query()
	query.Set("filter", "memorialId||eq||"+memorialID)

	var envelope types.ListEnvelope[Contribution]
	if err := c.doJSON(ctx, http.MethodGet, "/contribution", requestOptions{query: query}, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// CreateContribution posts a text contribution.
func (c *Client) CreateContribution(ctx context.Context, input CreateContributionInput) (*Contribution, error) {
	var created Contribution
	if err := c.doJSON(ctx, http.MethodPost, "/contribution", requestOptions{}, input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetContributionHidden toggles whether a contribution shows on the memorial.
func (c *Client) SetContributionHidden(ctx context.Context, id string, hidden bool) (*Contribution, error) {
	var updated Contribution
	body := struct {
		IsHidden bool `json:"isHidden"`
	}{IsHidden: hidden}
	if err := c.doJSON(ctx, http.MethodPatch, "/contribution/"+url.PathEscape(id), requestOptions{}, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ProgressFunc reports upload progress as bytes sent out of total.
type ProgressFunc func(sent, total int64)

// UploadContributionInput carries a media contribution and its file payload.
type UploadContributionInput struct {
	MemorialID      string
	Type            ContributionType
	ContributorName string
	FileName        string
	File            io.Reader
	OnProgress      ProgressFunc
}

// UploadContribution sends a media contribution as multipart form data.
func (c *Client) UploadContribution(ctx context.Context, input UploadContributionInput) (*Contribution, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown contribution type")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("memorialId", input.MemorialID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write form field")
	}
	if err := form.WriteField("type", string(input.Type)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write form field")
	}
	if input.ContributorName != "" {
		if err := form.WriteField("contributorName", input.ContributorName); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write form field")
		}
	}
	part, err := form.CreateFormFile("file", input.FileName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create form file")
	}
	if _, err := io.Copy(part, input.File); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read upload")
	}
	if err := form.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finish form")
	}

	var body io.Reader = &buf
	total := int64(buf.Len())
	if input.OnProgress != nil {
		body = &progressReader{reader: body, total: total, report: input.OnProgress}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/contribution/upload", requestOptions{}, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.ContentLength = total

	var created Contribution
	if err := c.send(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

type progressReader struct {
	reader io.Reader
	total  int64
	sent   int64
	report ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		p.sent += int64(n)
		p.report(p.sent, p.total)
	}
	return n, err
}
