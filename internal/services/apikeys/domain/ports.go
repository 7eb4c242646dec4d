package domain

import "context"

// ValidatorPort checks a caller-supplied signature before a mutating API
// call is allowed through
type ValidatorPort interface {
	// ValidateRequest recomputes the signature over canonical with the
	// secret bound to pub. Unknown keys and mismatches both report false
	ValidateRequest(ctx context.Context, pub, sig, canonical string) bool
}

// ManagerPort is the admin key management surface
type ManagerPort interface {
	CreateKey(ctx context.Context) (APIKey, error)
	DeleteKey(ctx context.Context, pub string) error
	AllKeys(ctx context.Context) ([]APIKey, error)
}

// ServicePort is the full apikeys contract
type ServicePort interface {
	ValidatorPort
	ManagerPort
}
