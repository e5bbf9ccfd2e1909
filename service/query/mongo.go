package query

/*
	Package `query` provides an interface for querying mongo db.
	It is a thin wrap over https://github.com/mongodb/mongo-go-driver,
	see https://godoc.org/go.mongodb.org/mongo-driver/mongo for details.
*/

import (
	"fmt"

	"github.com/usdoracle/goapi/base/ctx"
	"github.com/usdoracle/goapi/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")
)

// Mongo abstracts the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne gets data from the table
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count returns counting for matched entry in the table
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (int, error)

	// Upsert replaces the matched entry or inserts it when missing
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search lists matched entries with offset/limit/sort
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove deletes the first matched entry
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error
}
