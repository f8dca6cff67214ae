package search

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/charmbracelet/log"

	"github.com/khanglvm/portfolio-mcp/internal/logging"
	"github.com/khanglvm/portfolio-mcp/internal/query"
)

// Indexer manages the suggestion index over both collections.
// The index is built on first use.
type Indexer struct {
	bleveIndex bleve.Index
	source     query.Source
	logger     *log.Logger
	mu         sync.RWMutex

	buildOnce sync.Once
	buildErr  error
}

// NewIndexer creates an indexer over source with an in-memory Bleve index.
func NewIndexer(source query.Source, logger *log.Logger) (*Indexer, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &Indexer{
		bleveIndex: index,
		source:     source,
		logger:     logger,
	}, nil
}

// buildIndexMapping creates the Bleve index mapping.
func buildIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// kind: exact filter
	kindFieldMapping := bleve.NewKeywordFieldMapping()
	kindFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("kind", kindFieldMapping)

	// key: exact id or URL, stored for retrieval
	keyFieldMapping := bleve.NewKeywordFieldMapping()
	keyFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("key", keyFieldMapping)

	// label: searchable name or title, stored for retrieval
	labelFieldMapping := bleve.NewTextFieldMapping()
	labelFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("label", labelFieldMapping)

	// body: searchable only
	bodyFieldMapping := bleve.NewTextFieldMapping()
	bodyFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("body", bodyFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

// ensureBuilt indexes both collections once. A failed build is not retried.
func (i *Indexer) ensureBuilt() error {
	i.buildOnce.Do(func() {
		i.buildErr = i.build()
		if i.buildErr != nil {
			i.logger.Warn("Suggestion index unavailable", "err", i.buildErr)
		}
	})
	return i.buildErr
}

func (i *Indexer) build() error {
	projects, err := i.source.Projects()
	if err != nil {
		return err
	}
	blogs, err := i.source.Blogs()
	if err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.bleveIndex.NewBatch()

	for _, p := range projects.Projects {
		doc := map[string]interface{}{
			"kind":  KindProject,
			"key":   p.ID,
			"label": p.Name,
			"body":  p.ID + " " + p.Description,
		}
		if err := batch.Index(KindProject+"/"+p.ID, doc); err != nil {
			i.logger.Warn("Failed to index project", "id", p.ID, "err", err)
		}
	}

	for _, b := range blogs.Blogs {
		doc := map[string]interface{}{
			"kind":  KindBlog,
			"key":   b.URL,
			"label": b.Title,
			"body":  b.URL + " " + b.Description,
		}
		if err := batch.Index(KindBlog+"/"+b.URL, doc); err != nil {
			i.logger.Warn("Failed to index blog", "url", b.URL, "err", err)
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index collections: %w", err)
	}

	i.logger.Debug("Suggestion index built",
		"projects", len(projects.Projects),
		"blogs", len(blogs.Blogs),
	)
	return nil
}

// Count returns the total number of indexed documents, building the index
// if needed.
func (i *Indexer) Count() (uint64, error) {
	if err := i.ensureBuilt(); err != nil {
		return 0, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	docCount, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}

	return docCount, nil
}

// Close closes the index and releases resources.
func (i *Indexer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.bleveIndex != nil {
		return i.bleveIndex.Close()
	}

	return nil
}
