package engine

import (
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mohsen1/tsz/internal/diag"
	"github.com/mohsen1/tsz/internal/source"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// outputSchemaVersion identifies the wire format of Output, incremented
// whenever a field is added, removed, or reinterpreted — mirroring the
// teacher's disk-cache payload's own schema-version field.
const outputSchemaVersion uint16 = 1

// Output is a check invocation's externally-visible result (spec.md §6.2):
// the expression-to-type map and the ordered diagnostic list. It is the
// artifact downstream tooling consumes, serialized with msgpack rather than
// handed back as live pointers into the Context's interner.
type Output struct {
	Schema      uint16
	TypeMap     map[syntax.ExprID]types.TypeID
	Diagnostics []*diag.Diagnostic
}

// Marshal binary-encodes o for handoff to downstream tooling, mirroring the
// teacher's DiskCache.Put serialization convention.
func (o *Output) Marshal() ([]byte, error) {
	return msgpack.Marshal(o)
}

// UnmarshalOutput decodes an Output previously produced by Marshal.
func UnmarshalOutput(data []byte) (*Output, error) {
	var out Output
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("engine: failed to decode output: %w", err)
	}
	return &out, nil
}

// Check type-checks every file fileIDs names against c's shared components,
// threading a single cooperative-cancellation context through every file's
// traversal, and returns the combined, source-ordered Output. A setup
// failure (nil Context, mismatched file/fileID pairing) returns an error;
// everything downstream of that is reported as a diagnostic, never a Go
// error, per spec.md §7's propagation policy.
func Check(ctx context.Context, c *Context, fileIDs []source.FileID, syntaxIDs []syntax.FileID) (*Output, error) {
	if c == nil {
		return nil, fmt.Errorf("engine: nil Context")
	}
	if len(fileIDs) != len(syntaxIDs) {
		return nil, fmt.Errorf("engine: %d source files but %d syntax files", len(fileIDs), len(syntaxIDs))
	}

	ck := c.newChecker(ctx)
	typeMap := make(map[syntax.ExprID]types.TypeID)
	for i, fileID := range fileIDs {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return c.finish(typeMap), nil
			default:
			}
		}
		result := ck.CheckFile(ctx, fileID, syntaxIDs[i])
		for id, t := range result.TypeMap {
			typeMap[id] = t
		}
	}
	return c.finish(typeMap), nil
}

func (c *Context) finish(typeMap map[syntax.ExprID]types.TypeID) *Output {
	c.Bag.Sort()
	c.Bag.Dedup()
	return &Output{
		Schema:      outputSchemaVersion,
		TypeMap:     typeMap,
		Diagnostics: c.Bag.Items(),
	}
}
