// Package service contains api key management and request validation
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"codesift/internal/modkit/repokit"
	"codesift/internal/platform/logger"
	"codesift/internal/services/apikeys/domain"
	"codesift/internal/services/apikeys/repo"
)

// Service defines the service contract for apikeys
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new apikeys service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("apikeys.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("apikeys.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// CreateKey issues a new key pair. The private key is shown once and then
// only ever used server side for signature checks
func (s *Svc) CreateKey(ctx context.Context) (domain.APIKey, error) {
	k := domain.APIKey{
		PublicKey:  "APIK-" + strings.ToUpper(uuid.NewString()),
		PrivateKey: uuid.NewString() + uuid.NewString(),
	}
	if err := s.Repo.Insert(ctx, k); err != nil {
		return domain.APIKey{}, err
	}
	return k, nil
}

// DeleteKey revokes a key pair by public key
func (s *Svc) DeleteKey(ctx context.Context, pub string) error {
	return s.Repo.Delete(ctx, pub)
}

// AllKeys lists issued key pairs
func (s *Svc) AllKeys(ctx context.Context) ([]domain.APIKey, error) {
	return s.Repo.All(ctx)
}

// ValidateRequest implements domain.ValidatorPort. An unknown public key,
// a store failure, and a bad signature are indistinguishable to the
// caller; only the store failure gets logged
func (s *Svc) ValidateRequest(ctx context.Context, pub, sig, canonical string) bool {
	secret, ok, err := s.Repo.SecretFor(ctx, pub)
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("apikeys: secret lookup failed")
		return false
	}
	if !ok {
		return false
	}
	return verify(secret, canonical, sig)
}
