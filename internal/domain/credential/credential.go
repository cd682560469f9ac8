// Package credential defines the stored provider credential and its store port.
package credential

import (
	"context"
	"time"
)

// Credential is one named set of provider connection values.
// Values hold the secret material and are never returned by the API.
type Credential struct {
	Name      string            `json:"credential_name"`
	Values    map[string]string `json:"credential_values,omitempty"`
	Info      map[string]string `json:"credential_info"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store is the credential data store: create/read/delete by name.
type Store interface {
	Create(ctx context.Context, cred Credential) error
	GetAll(ctx context.Context) ([]Credential, error)
	Get(ctx context.Context, name string) (Credential, error)
	Delete(ctx context.Context, name string) error
}
