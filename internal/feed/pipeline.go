package feed

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB stage and keyword names
const (
	StageMatch     = "$match"
	StageLookup    = "$lookup"
	StageUnwind    = "$unwind"
	StageAddFields = "$addFields"
	StageSort      = "$sort"
	StageSkip      = "$skip"
	StageLimit     = "$limit"

	KeyFrom         = "from"
	KeyLocalField   = "localField"
	KeyForeignField = "foreignField"
	KeyAs           = "as"
	KeyPipeline     = "pipeline"
	KeyLet          = "let"
)

// Collections names the joined collections
type Collections struct {
	Users    string
	Comments string
}

// Join attaches exactly one author per post (posts without one are dropped) and at most
// commentLimit comments as commentData.
func Join(cols Collections, commentLimit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: StageLookup, Value: bson.M{
			KeyFrom:         cols.Users,
			KeyLocalField:   "authorId",
			KeyForeignField: "id",
			KeyAs:           "author",
		}}},
		{{Key: StageUnwind, Value: "$author"}},
		{{Key: StageLookup, Value: bson.M{
			KeyFrom: cols.Comments,
			KeyLet:  bson.M{"pid": "$id"},
			KeyPipeline: mongo.Pipeline{
				{{Key: StageMatch, Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$postId", "$$pid"}}}}},
				{{Key: StageLimit, Value: int64(commentLimit)}},
			},
			KeyAs: "commentData",
		}}},
	}
}

// Pipeline builds the aggregation for a resolved merged-feed query
func (s Settings) Pipeline(cols Collections, q Query) mongo.Pipeline {
	pipe := Join(cols, q.CommentLimit)

	switch q.Mode {
	case ModePaged:
		pipe = append(pipe,
			bson.D{{Key: StageSkip, Value: int64((q.Page - 1) * s.PageSize)}},
			bson.D{{Key: StageLimit, Value: int64(s.PageSize)}},
		)
	case ModeFiltered:
		pipe = append(pipe, bson.D{{Key: StageMatch, Value: s.textMatch(q.Text)}})
	case ModeDefault:
		pipe = append(pipe, bson.D{{Key: StageLimit, Value: int64(s.PageSize)}})
	}
	return pipe
}

func (s Settings) textMatch(text string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	conds := bson.A{
		bson.M{"tags": pattern},
		bson.M{"category": pattern},
	}
	if s.Match == MatchAll {
		return bson.M{"$and": conds}
	}
	return bson.M{"$or": conds}
}

// PopularityPipeline sorts every post by its derived totalVotes and joins author and comments
func PopularityPipeline(cols Collections, sort VoteSort, commentLimit int) mongo.Pipeline {
	total := bson.A{"$upVotes", "$downVotes"}
	if sort == SortDisliked {
		total = bson.A{"$downVotes", "$upVotes"}
	}
	pipe := mongo.Pipeline{
		{{Key: StageAddFields, Value: bson.M{"totalVotes": bson.M{"$subtract": total}}}},
		{{Key: StageSort, Value: bson.D{{Key: "totalVotes", Value: -1}, {Key: "id", Value: 1}}}},
	}
	return append(pipe, Join(cols, commentLimit)...)
}

// AuthorPipeline selects one author's posts and joins them like the merged feed
func AuthorPipeline(cols Collections, authorID int64, commentLimit int) mongo.Pipeline {
	pipe := mongo.Pipeline{
		{{Key: StageMatch, Value: bson.M{"authorId": authorID}}},
	}
	return append(pipe, Join(cols, commentLimit)...)
}
