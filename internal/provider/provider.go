// Package provider defines the uniform capability set the reconciliation
// orchestrator sees. Each external source implements the subset it supports;
// the adapters convert provider payloads into models.ExternalRecord at their
// boundary and never leak provider-specific shapes downstream.
//
// Error contract, uniform across adapters:
//   - "not found" is (nil, nil), never an error
//   - adapter malfunction (network, bad payload) is a *FetchError, so the
//     orchestrator can tell "no data" from "source broken" without relying on
//     log side effects
package provider

import (
	"context"
	"fmt"

	"mangacat/pkg/models"
)

// Searcher looks a title up by free text.
type Searcher interface {
	Name() string
	SearchByTitle(ctx context.Context, query string, limit int) ([]models.ExternalRecord, error)
}

// IDFetcher fetches one record by the provider's own identifier.
type IDFetcher interface {
	Name() string
	FetchByID(ctx context.Context, id string) (*models.ExternalRecord, error)
}

// ISBNFetcher fetches one record by ISBN.
type ISBNFetcher interface {
	Name() string
	FetchByISBN(ctx context.Context, isbn string) (*models.ExternalRecord, error)
}

// FetchError marks an adapter malfunction, with enough context to log and to
// exclude the source from the merge.
type FetchError struct {
	Source string
	Stage  string // "fetch" or "parse"
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source=%s stage=%s: %v", e.Source, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Errf wraps err as a FetchError for the given source and stage.
func Errf(source, stage string, err error) *FetchError {
	return &FetchError{Source: source, Stage: stage, Err: err}
}
