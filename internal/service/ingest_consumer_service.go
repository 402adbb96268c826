// FILE: internal/service/ingest_consumer_service.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/events"
	"rag-admin-be/pkg/ingest"
	"rag-admin-be/pkg/provider"
	"rag-admin-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// defaultMaxSitemapPages caps how many pages one sitemap datasource expands into.
const defaultMaxSitemapPages = 50

type IIngestConsumerService interface {
	Consume(ctx context.Context) error
}

type ingestConsumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	uowFactory      unitofwork.RepositoryFactory
	fetcher         *ingest.Fetcher
	eventPublisher  events.Publisher
	embedders       *embedderCache
	maxSitemapPages int
}

func NewIngestConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	fetcher *ingest.Fetcher,
	eventPublisher events.Publisher,
	maxSitemapPages int,
) IIngestConsumerService {
	if maxSitemapPages <= 0 {
		maxSitemapPages = defaultMaxSitemapPages
	}
	return &ingestConsumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		uowFactory:      uowFactory,
		fetcher:         fetcher,
		eventPublisher:  eventPublisher,
		embedders:       newEmbedderCache(),
		maxSitemapPages: maxSitemapPages,
	}
}

func (cs *ingestConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// fetchedDoc is one unit of content pulled from a datasource before it is
// chunked and persisted as a Document plus its Chunks.
type fetchedDoc struct {
	name      string
	mimeType  string
	sourceURI string
	content   string
	sizeBytes int64
}

func (cs *ingestConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestDatasourceMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing ingestion for DatasourceId: %s", payload.DatasourceId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	ds, err := uow.DatasourceRepository().FindOne(ctx, specification.ByID{ID: payload.DatasourceId})
	if err != nil {
		log.Printf("[ERROR] Failed to get datasource %s: %v", payload.DatasourceId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if ds == nil {
		log.Printf("[WARN] Datasource not found: %s", payload.DatasourceId)
		msg.Ack() // Deleted before the worker got to it.
		return
	}

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: ds.KnowledgeBaseId})
	if err != nil {
		log.Printf("[ERROR] Failed to get knowledge base %s: %v", ds.KnowledgeBaseId, err)
		msg.Nack()
		return
	}
	if kb == nil {
		cs.markFailed(ctx, uow, ds, "knowledge base no longer exists")
		msg.Ack()
		return
	}

	if err := uow.DatasourceRepository().UpdateStatus(ctx, ds.Id, entity.IngestStatusRunning, nil); err != nil {
		log.Printf("[ERROR] Failed to mark datasource %s running: %v", ds.Id, err)
		msg.Nack()
		return
	}

	docs, err := cs.fetchContent(ctx, ds)
	if err != nil {
		// Fetch failures are not retried here: the row flips to failed and
		// the admin re-triggers via reindex once the source is reachable.
		cs.markFailed(ctx, uow, ds, err.Error())
		msg.Ack()
		return
	}
	if len(docs) == 0 {
		cs.markFailed(ctx, uow, ds, "no content extracted from source")
		msg.Ack()
		return
	}

	// The embedding client is best effort. When the provider is down,
	// chunks land without vectors and documents still index; a later
	// reindex fills the vectors in.
	embedClient := cs.embedClientFor(ctx, uow, kb)

	cfg := kb.ChunkingConfig
	if cfg.ChunkSize <= 0 {
		cfg = entity.DefaultChunkingConfig()
	}

	now := time.Now()
	totalChunks := 0
	embedFailed := false

	type docWithChunks struct {
		doc    *entity.Document
		chunks []*entity.Chunk
	}
	prepared := make([]docWithChunks, 0, len(docs))

	for _, fd := range docs {
		doc := &entity.Document{
			Id:              uuid.New(),
			KnowledgeBaseId: kb.Id,
			DatasourceId:    ds.Id,
			Name:            fd.name,
			MimeType:        fd.mimeType,
			SourceURI:       fd.sourceURI,
			Content:         fd.content,
			SizeBytes:       fd.sizeBytes,
			IndexStatus:     entity.IngestStatusCompleted,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		pieces := utils.SplitText(fd.content, cfg.ChunkSize, cfg.ChunkOverlap)
		chunks := make([]*entity.Chunk, 0, len(pieces))
		for i, text := range pieces {
			chunk := &entity.Chunk{
				Id:              uuid.New(),
				DocumentId:      doc.Id,
				KnowledgeBaseId: kb.Id,
				Ordinal:         i,
				Text:            text,
				CreatedAt:       now,
			}
			if embedClient != nil && !embedFailed {
				vec, err := embedClient.Embed(ctx, text)
				switch {
				case err != nil:
					log.Printf("[WARN] Embedding failed for datasource %s, remaining chunks stay unembedded: %v", ds.Id, err)
					embedFailed = true
				case len(vec) != entity.EmbeddingDimension:
					// The chunk column is vector(1536); a mismatched model
					// would fail every insert, so skip embedding instead.
					log.Printf("[WARN] Embedding model returned %d dimensions (want %d), chunks stay unembedded", len(vec), entity.EmbeddingDimension)
					embedFailed = true
				default:
					chunk.Embedding = provider.NormalizeVector(vec)
				}
			}
			chunks = append(chunks, chunk)
		}

		totalChunks += len(chunks)
		prepared = append(prepared, docWithChunks{doc: doc, chunks: chunks})
	}

	// Heavy work is done; now swap the old rows for the new ones atomically.
	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	oldDocs, err := uow.DocumentRepository().FindAll(ctx, specification.ByDatasourceID{DatasourceID: ds.Id})
	if err != nil {
		log.Printf("[ERROR] Failed to list existing documents: %v", err)
		msg.Nack()
		return
	}
	for _, old := range oldDocs {
		if err := uow.ChunkRepository().DeleteByDocument(ctx, old.Id); err != nil {
			log.Printf("[ERROR] Failed to delete old chunks: %v", err)
			msg.Nack()
			return
		}
	}
	if err := uow.DocumentRepository().DeleteByDatasource(ctx, ds.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old documents: %v", err)
		msg.Nack()
		return
	}

	for _, p := range prepared {
		if err := uow.DocumentRepository().Create(ctx, p.doc); err != nil {
			log.Printf("[ERROR] Failed to create document: %v", err)
			msg.Nack()
			return
		}
		if len(p.chunks) > 0 {
			if err := uow.ChunkRepository().CreateBatch(ctx, p.chunks); err != nil {
				log.Printf("[ERROR] Failed to create chunks: %v", err)
				msg.Nack()
				return
			}
		}
	}

	if err := uow.DatasourceRepository().UpdateStatus(ctx, ds.Id, entity.IngestStatusCompleted, nil); err != nil {
		log.Printf("[ERROR] Failed to mark datasource completed: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	cs.eventPublisher.PublishDatasourceIngested(ctx, ds.Id, kb.Id, ds.Name, len(prepared), totalChunks)
	log.Printf("[SUCCESS] Datasource ingested: %d documents, %d chunks for DatasourceId: %s", len(prepared), totalChunks, ds.Id)
	msg.Ack()
}

func (cs *ingestConsumerService) fetchContent(ctx context.Context, ds *entity.Datasource) ([]fetchedDoc, error) {
	switch ds.Type {
	case entity.DatasourceTypeFile:
		return cs.fetchFile(ds)
	case entity.DatasourceTypeURL:
		page, err := cs.fetcher.FetchPage(ctx, ds.Config.URL)
		if err != nil {
			return nil, err
		}
		name := page.Title
		if name == "" {
			name = ds.Config.URL
		}
		return []fetchedDoc{{
			name:      name,
			mimeType:  "text/html",
			sourceURI: ds.Config.URL,
			content:   page.Text,
			sizeBytes: int64(len(page.Text)),
		}}, nil
	case entity.DatasourceTypeSitemap:
		return cs.fetchSitemap(ctx, ds)
	default:
		return nil, fmt.Errorf("unsupported datasource type: %s", ds.Type)
	}
}

func (cs *ingestConsumerService) fetchFile(ds *entity.Datasource) ([]fetchedDoc, error) {
	data, err := os.ReadFile(ds.Config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", ds.Config.FilePath, err)
	}

	name := ds.Config.FileName
	if name == "" {
		name = filepath.Base(ds.Config.FilePath)
	}

	ext := strings.ToLower(filepath.Ext(name))
	content := string(data)
	mimeType := "text/plain"
	switch ext {
	case ".html", ".htm":
		mimeType = "text/html"
		page, err := ingest.ExtractReadableText(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse html %s: %w", name, err)
		}
		content = page.Text
	case ".md", ".markdown":
		mimeType = "text/markdown"
	}

	return []fetchedDoc{{
		name:      name,
		mimeType:  mimeType,
		sourceURI: "file://" + ds.Config.FilePath,
		content:   content,
		sizeBytes: int64(len(data)),
	}}, nil
}

func (cs *ingestConsumerService) fetchSitemap(ctx context.Context, ds *entity.Datasource) ([]fetchedDoc, error) {
	urls, err := cs.fetcher.FetchSitemap(ctx, ds.Config.SitemapURL)
	if err != nil {
		return nil, err
	}
	if len(urls) > cs.maxSitemapPages {
		log.Printf("[WARN] Sitemap %s lists %d pages, ingesting the first %d", ds.Config.SitemapURL, len(urls), cs.maxSitemapPages)
		urls = urls[:cs.maxSitemapPages]
	}

	var docs []fetchedDoc
	for _, url := range urls {
		page, err := cs.fetcher.FetchPage(ctx, url)
		if err != nil {
			// One dead page should not fail the whole sitemap.
			log.Printf("[WARN] Skipping sitemap page %s: %v", url, err)
			continue
		}
		name := page.Title
		if name == "" {
			name = url
		}
		docs = append(docs, fetchedDoc{
			name:      name,
			mimeType:  "text/html",
			sourceURI: url,
			content:   page.Text,
			sizeBytes: int64(len(page.Text)),
		})
	}
	if len(docs) == 0 && len(urls) > 0 {
		return nil, fmt.Errorf("all %d sitemap pages failed to fetch", len(urls))
	}
	return docs, nil
}

func (cs *ingestConsumerService) embedClientFor(ctx context.Context, uow unitofwork.UnitOfWork, kb *entity.KnowledgeBase) provider.EmbeddingClient {
	model, err := uow.AIModelRepository().FindOne(ctx, specification.ByID{ID: kb.EmbeddingModelId})
	if err != nil || model == nil {
		log.Printf("[WARN] Embedding model %s unavailable for kb %s, chunks stay unembedded", kb.EmbeddingModelId, kb.Id)
		return nil
	}
	client, err := cs.embedders.For(model)
	if err != nil {
		log.Printf("[WARN] Failed to build embedding client for model %s: %v", model.Id, err)
		return nil
	}
	return client
}

func (cs *ingestConsumerService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, ds *entity.Datasource, reason string) {
	log.Printf("[ERROR] Ingestion failed for datasource %s: %s", ds.Id, reason)
	if err := uow.DatasourceRepository().UpdateStatus(ctx, ds.Id, entity.IngestStatusFailed, &reason); err != nil {
		log.Printf("[ERROR] Failed to mark datasource %s failed: %v", ds.Id, err)
	}
	cs.eventPublisher.PublishDatasourceFailed(ctx, ds.Id, ds.KnowledgeBaseId, ds.Name, reason)
}
