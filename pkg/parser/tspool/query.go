package tspool

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/typocheck/pkg/domain"
)

// Capture is one node captured by a query, in match order.
type Capture struct {
	// Name is the capture name without the leading '@'.
	Name string
	// Node is the captured node.
	Node *sitter.Node
}

type queryCacheKey struct {
	lang     domain.Language
	queryStr string
}

type cachedQuery struct {
	once  sync.Once
	query *sitter.Query
	err   error
}

var queryCache sync.Map

// getCachedQuery returns a compiled query. The returned query must NOT be closed.
func getCachedQuery(lang domain.Language, queryStr string) (*sitter.Query, error) {
	key := queryCacheKey{
		lang:     lang,
		queryStr: queryStr,
	}

	cached := &cachedQuery{}
	actual, loaded := queryCache.LoadOrStore(key, cached)
	if loaded {
		var ok bool
		cached, ok = actual.(*cachedQuery)
		if !ok {
			return nil, fmt.Errorf("invalid cache entry type")
		}
	}

	cached.once.Do(func() {
		grammar := GetLanguage(lang)
		if grammar == nil {
			cached.err = fmt.Errorf("%w: %s", ErrNoGrammar, lang)
			return
		}
		cached.query, cached.err = sitter.NewQuery([]byte(queryStr), grammar)
	})

	return cached.query, cached.err
}

// CompileQuery compiles the query once per language and caches it.
func CompileQuery(lang domain.Language, queryStr string) error {
	_, err := getCachedQuery(lang, queryStr)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	return nil
}

// QueryCaptures runs a cached query against root and returns every capture
// of every match, in the order the cursor yields them.
func QueryCaptures(root *sitter.Node, source []byte, lang domain.Language, queryStr string) ([]Capture, error) {
	query, err := getCachedQuery(lang, queryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	cursor.Exec(query, root)

	var captures []Capture
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}

		match = cursor.FilterPredicates(match, source)
		for _, capture := range match.Captures {
			captures = append(captures, Capture{
				Name: query.CaptureNameForId(capture.Index),
				Node: capture.Node,
			})
		}
	}

	return captures, nil
}
