package directory

import (
	"context"
	"errors"

	"github.com/de-tools/paas-statements/pkg/models/domain"
)

var ErrNotFound = errors.New("not found")

// Directory resolves organizations and their spaces.
type Directory interface {
	GetOrganization(ctx context.Context, guid string) (domain.Organization, error)
	ListSpaces(ctx context.Context, orgGUID string) ([]domain.Space, error)
}
