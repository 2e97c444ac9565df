package client

import (
	"context"
	"fmt"
	"io"
)

// IntakeImage is one garment photo to upload: its content type, file
// extension (without the dot), and a reader over the raw bytes.
type IntakeImage struct {
	ContentType   string
	FileExtension string
	Body          io.Reader
}

// IntakeParams drives the full item intake flow. Details carries the
// user-entered fields; its image URL fields are filled in by the flow and
// any value set there is overwritten. With Suggest set, metadata fields the
// user left empty are pre-filled from the AI analysis.
type IntakeParams struct {
	Front   IntakeImage
	Back    IntakeImage
	Details CreateItemParams
	Suggest bool
}

// IntakeItem runs the intake flow end to end: upload both images via
// presigned PUT, optionally analyze them to pre-fill metadata, then create
// the item. Analysis failure aborts the flow; callers wanting the item
// anyway re-run with Suggest unset (the uploads are cheap to repeat and
// grants are single-use windows, not reservations).
func (c *Client) IntakeItem(ctx context.Context, p IntakeParams) (*Item, error) {
	frontURL, err := c.uploadIntakeImage(ctx, p.Front)
	if err != nil {
		return nil, fmt.Errorf("upload front image: %w", err)
	}
	backURL, err := c.uploadIntakeImage(ctx, p.Back)
	if err != nil {
		return nil, fmt.Errorf("upload back image: %w", err)
	}

	details := p.Details
	details.ImageURLFront = frontURL
	details.ImageURLBack = backURL

	if p.Suggest {
		s, err := c.AnalyzeItem(ctx, frontURL, backURL)
		if err != nil {
			return nil, fmt.Errorf("analyze images: %w", err)
		}
		applySuggestion(&details, s)
	}

	return c.CreateItem(ctx, details)
}

// uploadIntakeImage requests an upload grant and PUTs the bytes to it,
// returning the permanent public URL to store.
func (c *Client) uploadIntakeImage(ctx context.Context, img IntakeImage) (string, error) {
	grant, err := c.RequestUploadGrant(ctx, img.ContentType, img.FileExtension)
	if err != nil {
		return "", err
	}
	if err := c.UploadImage(ctx, grant.UploadURL, img.ContentType, img.Body); err != nil {
		return "", err
	}
	return grant.PublicURL, nil
}

// applySuggestion fills only the metadata fields the user left empty; typed
// values always win over the model's proposal.
func applySuggestion(details *CreateItemParams, s *Suggestion) {
	if details.Brand == "" {
		details.Brand = s.Brand
	}
	if details.Type == "" {
		details.Type = s.Type
	}
	if details.Color == "" {
		details.Color = s.Color
	}
	if details.Description == "" {
		details.Description = s.Description
	}
}
