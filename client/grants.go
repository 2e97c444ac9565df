package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// GrantAPI is the subset of Client used for image grant resolution.
type GrantAPI interface {
	RequestDownloadGrant(ctx context.Context, storedURL string) (string, error)
}

// ResolveImageGrants fetches a signed display URL for each item's front
// image, one request per item in parallel. Failures are independent: a
// failed grant leaves that item out of the result and the rest unaffected.
func ResolveImageGrants(ctx context.Context, api GrantAPI, items []Item) map[uuid.UUID]string {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		grants = make(map[uuid.UUID]string, len(items))
	)

	for _, item := range items {
		wg.Add(1)
		go func(id uuid.UUID, storedURL string) {
			defer wg.Done()
			signed, err := api.RequestDownloadGrant(ctx, storedURL)
			if err != nil {
				return
			}
			mu.Lock()
			grants[id] = signed
			mu.Unlock()
		}(item.ID, item.ImageURLFront)
	}

	wg.Wait()
	return grants
}
