// Package domain holds API key types and the signing contracts
package domain

// APIKey is one issued key pair. The private key never leaves the admin
// surface that created it
type APIKey struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	CreatedAt  string `json:"createdAt"`
}
