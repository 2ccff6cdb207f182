// Package feed resolves merged-feed requests and builds the aggregation pipelines that join posts
// with their author and a page of comments.
package feed

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Mode is the response shape selected for a merged-feed request
type Mode int

const (
	ModeDefault Mode = iota
	ModePaged
	ModeFiltered
	ModeLatest
	ModeAll
)

func (m Mode) String() string {
	switch m {
	case ModePaged:
		return "paged"
	case ModeFiltered:
		return "filtered"
	case ModeLatest:
		return "latest"
	case ModeAll:
		return "all"
	default:
		return "default"
	}
}

// MatchMode decides how the filter text is combined across tags and category
type MatchMode string

const (
	MatchAny MatchMode = "any"
	MatchAll MatchMode = "all"
)

// ErrInvalidQuery wraps every rejected query parameter
var ErrInvalidQuery = errors.New("invalid feed query")

// Settings are the deployment-wide feed knobs
type Settings struct {
	PageSize     int
	CommentLimit int
	Match        MatchMode
}

// NewSettings normalizes raw configuration values
func NewSettings(pageSize, commentLimit int, match string) (Settings, error) {
	s := Settings{PageSize: pageSize, CommentLimit: commentLimit, Match: MatchMode(strings.ToLower(match))}
	if s.PageSize <= 0 {
		s.PageSize = 5
	}
	if s.CommentLimit <= 0 {
		s.CommentLimit = 3
	}
	switch s.Match {
	case MatchAny, MatchAll:
	case "":
		s.Match = MatchAny
	default:
		return Settings{}, fmt.Errorf("unknown feed filter match %q, want %q or %q", match, MatchAny, MatchAll)
	}
	return s, nil
}

// Query is a resolved merged-feed request
type Query struct {
	Mode         Mode
	Page         int
	Text         string
	CommentLimit int
}

// Resolve picks exactly one mode from the query string. Priority:
// page, filter/category, latest, allData/loadComment, then the capped default.
func (s Settings) Resolve(values url.Values) (Query, error) {
	q := Query{Mode: ModeDefault, CommentLimit: s.CommentLimit}

	if values.Has("loadComment") {
		more, err := strconv.Atoi(values.Get("loadComment"))
		if err == nil && more > 0 {
			q.CommentLimit += more
		}
	}

	switch {
	case values.Has("page"):
		page, err := strconv.Atoi(values.Get("page"))
		if err != nil || page < 1 {
			return Query{}, fmt.Errorf("%w: page must be a positive integer", ErrInvalidQuery)
		}
		if s.PageSize > 0 && page-1 > math.MaxInt/s.PageSize {
			return Query{}, fmt.Errorf("%w: page is out of range", ErrInvalidQuery)
		}
		q.Mode = ModePaged
		q.Page = page
	case values.Has("filter") || values.Has("category"):
		q.Mode = ModeFiltered
		q.Text = strings.TrimSpace(values.Get("filter"))
		if q.Text == "" {
			q.Text = strings.TrimSpace(values.Get("category"))
		}
	case values.Has("latest"):
		q.Mode = ModeLatest
	case values.Has("allData") || values.Has("loadComment"):
		q.Mode = ModeAll
	}
	return q, nil
}

// VoteSort orders posts by a derived totalVotes field
type VoteSort string

const (
	SortDisliked   VoteSort = "Disliked"
	SortPopularity VoteSort = "Popularity"
)

// ParseVoteSort accepts only the two supported sort names
func ParseVoteSort(value string) (VoteSort, error) {
	switch VoteSort(value) {
	case SortDisliked, SortPopularity:
		return VoteSort(value), nil
	}
	return "", fmt.Errorf("%w: filter must be %q or %q", ErrInvalidQuery, SortDisliked, SortPopularity)
}
