package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"sarb.backend/internal/console/listparse"
	"sarb.backend/pkg/apiclient"
)

// Identifiable is an entity with a server assigned id.
type Identifiable interface {
	GetID() int64
}

// Resource is the typed repository a slice works against.
type Resource[T Identifiable] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload apiclient.Payload) (T, error)
	Update(ctx context.Context, id int64, payload apiclient.Payload) (T, error)
	Delete(ctx context.Context, id int64) error
}

const maxListPages = 100

// RESTResource maps the four operations onto one REST collection. Paginated
// list responses are followed until the last page, a repeated page, or a
// next link that leaves the collection.
type RESTResource[T Identifiable] struct {
	client *apiclient.Client
	path   string
	mode   listparse.Mode
}

func NewRESTResource[T Identifiable](client *apiclient.Client, path string, mode listparse.Mode) *RESTResource[T] {
	return &RESTResource[T]{client: client, path: path, mode: mode}
}

// List returns every item once, in server order. Ids already seen on an
// earlier page are skipped.
func (r *RESTResource[T]) List(ctx context.Context) ([]T, error) {
	all := []T{}
	seen := map[int64]bool{}
	visited := map[string]bool{"": true}
	var query url.Values
	for page := 0; page < maxListPages; page++ {
		var raw json.RawMessage
		if err := r.client.Get(ctx, r.path, query, &raw); err != nil {
			return nil, err
		}
		res, err := listparse.Parse[T](ctx, raw, r.mode)
		if err != nil {
			return nil, err
		}
		added := 0
		for _, item := range res.Items {
			if seen[item.GetID()] {
				continue
			}
			seen[item.GetID()] = true
			all = append(all, item)
			added++
		}
		if added == 0 || res.Next == "" {
			break
		}
		next, err := url.Parse(res.Next)
		if err != nil || !strings.HasSuffix(strings.TrimRight(next.Path, "/"), r.path) {
			break
		}
		query = next.Query()
		if visited[query.Encode()] {
			break
		}
		visited[query.Encode()] = true
	}
	return all, nil
}

func (r *RESTResource[T]) Create(ctx context.Context, payload apiclient.Payload) (T, error) {
	var out T
	err := r.client.Post(ctx, r.path, payload, &out)
	return out, err
}

func (r *RESTResource[T]) Update(ctx context.Context, id int64, payload apiclient.Payload) (T, error) {
	var out T
	err := r.client.Patch(ctx, r.item(id), payload, &out)
	return out, err
}

func (r *RESTResource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, r.item(id))
}

func (r *RESTResource[T]) item(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}
