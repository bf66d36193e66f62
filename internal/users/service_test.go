package users

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
	"github.com/nhakalabs/storefront-gateway/pkg/pagination"
	"github.com/nhakalabs/storefront-gateway/pkg/types"
)

type apiStub struct {
	listErr error
	deletes int
}

func (a *apiStub) ListUsers(_ context.Context, params pagination.Params) (*types.ListEnvelope[commerce.User], error) {
	if a.listErr != nil {
		return nil, a.listErr
	}
	return &types.ListEnvelope[commerce.User]{Data: []commerce.User{{ID: "u1"}}}, nil
}

func (a *apiStub) GetUser(_ context.Context, id string) (*commerce.User, error) {
	return &commerce.User{ID: id}, nil
}

func (a *apiStub) CreateUser(_ context.Context, input commerce.UserInput) (*commerce.User, error) {
	return &commerce.User{ID: "u1", Email: input.Email}, nil
}

func (a *apiStub) UpdateUser(_ context.Context, id string, input commerce.UserInput) (*commerce.User, error) {
	return &commerce.User{ID: id}, nil
}

func (a *apiStub) DeleteUser(_ context.Context, id string) error {
	a.deletes++
	return nil
}

func newTestService(t *testing.T, stub *apiStub) Service {
	t.Helper()
	svc, err := NewService(stub, logger.New(logger.Options{Output: io.Discard}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateRequiresEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &apiStub{})
	_, err := svc.Create(context.Background(), commerce.UserInput{FullName: "No Email"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListDegradesOnMalformedResponse(t *testing.T) {
	t.Parallel()

	stub := &apiStub{listErr: pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("%w: bad", commerce.ErrMalformedResponse), "decode commerce response")}
	svc := newTestService(t, stub)

	envelope, err := svc.List(context.Background(), pagination.Params{Page: 2})
	if err != nil {
		t.Fatalf("malformed response should degrade: %v", err)
	}
	if len(envelope.Data) != 0 || envelope.Page != 2 {
		t.Fatalf("unexpected degraded envelope %+v", envelope)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	t.Parallel()

	stub := &apiStub{}
	svc := newTestService(t, stub)

	if err := svc.Delete(context.Background(), ""); err == nil {
		t.Fatal("expected error for blank id")
	}
	if stub.deletes != 0 {
		t.Fatal("blank id must not reach upstream")
	}
	if err := svc.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if stub.deletes != 1 {
		t.Fatalf("deletes = %d, want 1", stub.deletes)
	}
}
