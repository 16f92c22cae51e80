package bangumi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/goccy/go-json"
)

const (
	// PageSize is the number of records requested per collection page
	PageSize = 100
	// MaxPages bounds how much of a collection is fetched.  Larger collections are truncated.
	MaxPages = 3
)

type CollectionRepository struct {
	client *Client
}

func NewCollectionRepository(client *Client) domain.CollectionRepository {
	return &CollectionRepository{
		client: client,
	}
}

// GetWatchedAnime fetches up to MaxPages pages of the user's watched anime.  The next page is only requested when the
// previous one came back full.  A page that fails to load counts as empty: it ends paging but keeps what was already
// fetched, so this method never returns an error.
func (r *CollectionRepository) GetWatchedAnime(ctx context.Context, userID string) ([]domain.CollectionRecord, error) {
	var records []domain.CollectionRecord

	for page := 0; page < MaxPages; page++ {
		items := r.fetchPage(ctx, userID, page*PageSize)
		records = append(records, items...)

		if len(items) < PageSize {
			break
		}
	}

	log.Info("Fetched watched anime", "user_id", userID, "count", len(records))
	return records, nil
}

// fetchPage loads one page of the collection, degrading any failure to an empty page
func (r *CollectionRepository) fetchPage(ctx context.Context, userID string, offset int) []domain.CollectionRecord {
	query := url.Values{
		"subject_type": {strconv.Itoa(int(domain.SubjectTypeAnime))},
		"type":         {strconv.Itoa(int(domain.CollectionWatched))},
		"limit":        {strconv.Itoa(PageSize)},
		"offset":       {strconv.Itoa(offset)},
	}

	body, err := r.client.get(ctx, "/v0/users/"+url.PathEscape(userID)+"/collections", query)
	if err != nil {
		log.Warn("Collection page failed, treating as empty", "user_id", userID, "offset", offset, "error", err)
		return nil
	}

	var page apiCollectionPage
	if err := json.Unmarshal(body, &page); err != nil {
		log.Warn("Collection page could not be decoded, treating as empty", "user_id", userID, "offset", offset, "error", err)
		return nil
	}

	records := make([]domain.CollectionRecord, 0, len(page.Data))
	for _, item := range page.Data {
		records = append(records, item.toDomain())
	}

	log.Debug("Fetched collection page", "user_id", userID, "offset", offset, "count", len(records), "total", page.Total)
	return records
}
