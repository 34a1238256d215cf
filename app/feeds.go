package app

import (
	"context"
	"encoding/json"
	"log"
	"slices"

	"github.com/miosa/osa-feed/client"
	"github.com/miosa/osa-feed/config"
	"github.com/miosa/osa-feed/snapshot"
	"github.com/miosa/osa-feed/ui/cards"
	"github.com/miosa/osa-feed/ui/list"
)

// feed is one tab: a list bound to a backend collection.
type feed struct {
	name   string // config feed name, also the snapshot key
	title  string
	list   list.Model
	decode func(feed string, raw json.RawMessage) ([]list.Item, error)
}

// feedNames lists the tabs in display order.
var feedNames = []string{config.FeedCreators, config.FeedCalls, config.FeedTransactions}

func newFeeds(ctx context.Context, c *client.Client, lc config.ListConfig, logger *log.Logger, w, h int) []feed {
	base := func(extra ...list.Option) list.Model {
		opts := []list.Option{
			list.WithSize(w, h),
			list.WithOptions(lc.Options()),
			list.WithContext(ctx),
			list.WithLogger(logger),
			list.WithScrollbar(true),
		}
		return list.New(append(opts, extra...)...)
	}

	return []feed{
		{
			name:  config.FeedCreators,
			title: "Creators",
			list: base(
				list.WithFetcher(fetcher(c.ListCreators, cards.Creators)),
				list.WithRenderer(cards.RenderCreator),
				list.WithItemExtent(cards.CreatorExtent),
			),
			decode: decoder(cards.Creators),
		},
		{
			name:  config.FeedCalls,
			title: "Calls",
			list: base(
				list.WithFetcher(fetcher(c.ListCalls, cards.Calls)),
				list.WithRenderer(cards.RenderCall),
			),
			decode: decoder(cards.Calls),
		},
		{
			name:  config.FeedTransactions,
			title: "Wallet",
			list: base(
				list.WithFetcher(fetcher(c.ListTransactions, cards.Transactions)),
				list.WithRenderer(cards.RenderTransaction),
			),
			decode: decoder(cards.Transactions),
		},
	}
}

// fetcher adapts a paged client call to the list's page source.
func fetcher[T any](
	fetch func(context.Context, int) (*client.Page[T], error),
	convert func([]T) []list.Item,
) list.PageFetcher {
	return func(ctx context.Context, page int) (list.Page, error) {
		p, err := fetch(ctx, page)
		if err != nil {
			return list.Page{}, err
		}
		return list.Page{Items: convert(p.Items), HasMore: p.HasMore}, nil
	}
}

// decoder turns a cached snapshot back into list items.
func decoder[T any](convert func([]T) []list.Item) func(string, json.RawMessage) ([]list.Item, error) {
	return func(feed string, raw json.RawMessage) ([]list.Item, error) {
		out, err := snapshot.DecodeItems[T](feed, raw)
		if err != nil {
			return nil, err
		}
		return convert(out), nil
	}
}

// pruneSnapshots drops cached pages of feeds that are no longer shown.
func pruneSnapshots(s *snapshot.Store, keep []string) ([]string, error) {
	stored, err := s.Feeds()
	if err != nil {
		return nil, err
	}
	var pruned []string
	for _, name := range stored {
		if slices.Contains(keep, name) {
			continue
		}
		if err := s.Delete(name); err != nil {
			return pruned, err
		}
		pruned = append(pruned, name)
	}
	return pruned, nil
}

func feedIndex(feeds []feed, name string) int {
	for i, f := range feeds {
		if f.name == name {
			return i
		}
	}
	return -1
}
