package controllers

import (
	"context"

	"github.com/jobtasks/dashboard/internal/ports"
)

// Documents gates link removal behind a confirmation.
type Documents struct {
	docs ports.DocumentStore
}

func NewDocuments(docs ports.DocumentStore) *Documents {
	return &Documents{docs: docs}
}

// Remove deletes the link once c confirms.
func (d *Documents) Remove(ctx context.Context, id string, c Confirmer) error {
	if err := confirm(ctx, c, "Are you sure you want to remove this document link?"); err != nil {
		return err
	}
	return d.docs.RemoveDocument(ctx, id)
}
