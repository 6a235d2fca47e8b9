package port

import "context"

// ArtifactStore persists finished artifacts under deterministic keys and
// returns a public URL for each stored object.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (publicURL string, err error)
}

// ClaimStore is the dedup ledger: an atomic test-and-insert over job
// identifiers. TryClaim returns true exactly once per jobID for the
// lifetime of the store; claims are never released.
type ClaimStore interface {
	TryClaim(jobID string) (bool, error)
}
