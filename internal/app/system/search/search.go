// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter builds a case-insensitive substring match of q across fields.
// The query is regex-escaped, so user input never becomes a pattern.
// It returns nil when q is blank or no fields are given.
func Filter(q string, fields ...string) bson.M {
	q = strings.TrimSpace(q)
	if q == "" || len(fields) == 0 {
		return nil
	}
	rx := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: rx})
	}
	return bson.M{"$or": or}
}

// And combines the non-empty parts into one filter. Zero parts yields an
// empty match-all filter; one part is returned unchanged.
func And(parts ...bson.M) bson.M {
	var keep []bson.M
	for _, p := range parts {
		if len(p) > 0 {
			keep = append(keep, p)
		}
	}
	switch len(keep) {
	case 0:
		return bson.M{}
	case 1:
		return keep[0]
	}
	all := make(bson.A, 0, len(keep))
	for _, p := range keep {
		all = append(all, p)
	}
	return bson.M{"$and": all}
}
