package mongo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// objectID parses a hex id. A malformed id cannot name a stored document, so
// it is reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id %q: %w", id, apperrors.ErrNotFound)
	}
	return oid, nil
}

// translate maps driver errors onto the application sentinels.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", what, apperrors.ErrDependency, err)
}

// pageOptions converts a 1-based page and a limit into skip/limit options.
func pageOptions(page, limit int) *options.FindOptions {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page < 1 {
		page = 1
	}
	return options.Find().SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
}

// containsPattern is a case-insensitive substring regex with metacharacters escaped.
func containsPattern(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(value)), Options: "i"}
}

// exactPattern matches the whole value case-insensitively.
func exactPattern(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(value)) + "$", Options: "i"}
}

// anyLanguage builds an $or over the fr/en/ar variants of field.
func anyLanguage(field string, match any) bson.A {
	return bson.A{
		bson.M{field + ".fr": match},
		bson.M{field + ".en": match},
		bson.M{field + ".ar": match},
	}
}

// andClauses folds clauses into a single filter the way the admin store search does.
func andClauses(base bson.M, clauses []bson.M) bson.M {
	switch len(clauses) {
	case 0:
		return base
	case 1:
		for k, v := range clauses[0] {
			base[k] = v
		}
		return base
	}
	base["$and"] = clauses
	return base
}
