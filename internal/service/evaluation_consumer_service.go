// FILE: internal/service/evaluation_consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/memory"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/evalscore"
	"rag-admin-be/pkg/events"
	"rag-admin-be/pkg/provider"
	"rag-admin-be/pkg/settingval"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	evalItemTimeout       = 60 * time.Second
	evalMaxConcurrency    = 8
	evalEchoMaxChars      = 2000
	evalDefaultTopK       = 5
	evalDefaultMinWordLen = 3
)

type IEvaluationConsumerService interface {
	Consume(ctx context.Context) error
}

type evaluationConsumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	progress       *memory.ProgressStore
	eventPublisher events.Publisher
	embedders      *embedderCache
}

func NewEvaluationConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	progress *memory.ProgressStore,
	eventPublisher events.Publisher,
) IEvaluationConsumerService {
	return &evaluationConsumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		progress:       progress,
		eventPublisher: eventPublisher,
		embedders:      newEmbedderCache(),
	}
}

func (cs *evaluationConsumerService) Consume(ctx context.Context) error {
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

// itemOutcome is what one dataset item produced: the answer, its scores,
// or the error that kept it from being answered at all.
type itemOutcome struct {
	answer   string
	recall   float64
	semantic float64
	err      error
}

func (cs *evaluationConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RunEvaluationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal evaluation message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing evaluation for TaskId: %s", payload.TaskId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	task, err := uow.EvaluationRepository().FindOneTask(ctx, specification.ByID{ID: payload.TaskId})
	if err != nil {
		log.Printf("[ERROR] Failed to get task %s: %v", payload.TaskId, err)
		msg.Nack()
		return
	}
	if task == nil {
		log.Printf("[WARN] Evaluation task not found: %s", payload.TaskId)
		msg.Ack()
		return
	}
	if task.Status != entity.EvaluationTaskStatusPending {
		// Cancelled before pickup, or a redelivery of a finished run.
		log.Printf("[WARN] Task %s is %s, skipping", task.Id, task.Status)
		msg.Ack()
		return
	}

	items, err := uow.EvaluationRepository().FindItems(ctx,
		specification.ByDatasetID{DatasetID: task.DatasetId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to load dataset items for task %s: %v", task.Id, err)
		msg.Nack()
		return
	}
	if len(items) == 0 {
		cs.markFailed(ctx, uow, task, "dataset has no items")
		msg.Ack()
		return
	}

	engine, err := uow.ChatEngineRepository().FindOne(ctx, specification.ByID{ID: task.ChatEngineId})
	if err != nil {
		log.Printf("[ERROR] Failed to get chat engine %s: %v", task.ChatEngineId, err)
		msg.Nack()
		return
	}
	if engine == nil {
		cs.markFailed(ctx, uow, task, "chat engine no longer exists")
		msg.Ack()
		return
	}

	llmClient := cs.llmClientFor(ctx, uow, engine)
	kbId, embedClient := cs.retrievalFor(ctx, uow, engine)
	minWordLen := cs.intSetting(ctx, uow, "evaluation_keyword_min_length", evalDefaultMinWordLen)
	concurrency := cs.intSetting(ctx, uow, "evaluation_concurrency", 1)
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > evalMaxConcurrency {
		concurrency = evalMaxConcurrency
	}

	now := time.Now()
	task.Status = entity.EvaluationTaskStatusRunning
	task.Total = len(items)
	task.StartedAt = &now
	task.UpdatedAt = now
	if err := uow.EvaluationRepository().UpdateTask(ctx, task); err != nil {
		log.Printf("[ERROR] Failed to mark task %s running: %v", task.Id, err)
		msg.Nack()
		return
	}
	cs.eventPublisher.PublishEvaluationStarted(ctx, task.Id, task.Name, task.Total)
	cs.setProgress(task, 0, 0)

	var (
		succeeded, failed int
		sumRecall         float64
		sumSemantic       float64
	)

	for start := 0; start < len(items); start += concurrency {
		if cs.progress.IsCancelRequested(task.Id) {
			cs.markCancelled(ctx, uow, task, succeeded, failed)
			msg.Ack()
			return
		}

		end := min(start+concurrency, len(items))
		batch := items[start:end]
		outcomes := make([]itemOutcome, len(batch))

		// Answering and scoring run outside any transaction; results are
		// persisted from this goroutine once the whole batch is back.
		var wg sync.WaitGroup
		for i, item := range batch {
			wg.Add(1)
			go func(i int, item *entity.EvaluationItem) {
				defer wg.Done()
				outcomes[i] = cs.evaluateItem(ctx, uow, engine, llmClient, embedClient, kbId, item, minWordLen)
			}(i, item)
		}
		wg.Wait()

		for i, out := range outcomes {
			result := &entity.EvaluationResult{
				Id:        uuid.New(),
				TaskId:    task.Id,
				ItemId:    batch[i].Id,
				Answer:    out.answer,
				CreatedAt: time.Now(),
			}
			if out.err != nil {
				reason := out.err.Error()
				result.Error = &reason
				failed++
			} else {
				result.KeywordRecall = out.recall
				result.SemanticSimilarity = out.semantic
				sumRecall += out.recall
				sumSemantic += out.semantic
				succeeded++
			}
			if err := uow.EvaluationRepository().CreateResult(ctx, result); err != nil {
				log.Printf("[ERROR] Failed to store result for item %s: %v", batch[i].Id, err)
			}
		}

		cs.setProgress(task, succeeded, failed)
	}

	summary := &entity.EvaluationSummary{}
	if succeeded > 0 {
		summary.AvgKeywordRecall = sumRecall / float64(succeeded)
		summary.AvgSemanticSimilarity = sumSemantic / float64(succeeded)
	}

	finished := time.Now()
	task.Succeeded = succeeded
	task.Failed = failed
	task.Summary = summary
	task.FinishedAt = &finished
	task.UpdatedAt = finished
	if succeeded == 0 {
		task.Status = entity.EvaluationTaskStatusFailed
	} else {
		task.Status = entity.EvaluationTaskStatusCompleted
	}

	if err := uow.EvaluationRepository().UpdateTask(ctx, task); err != nil {
		log.Printf("[ERROR] Failed to finalize task %s: %v", task.Id, err)
		msg.Nack()
		return
	}
	cs.progress.Delete(task.Id)

	if task.Status == entity.EvaluationTaskStatusFailed {
		cs.eventPublisher.PublishEvaluationFailed(ctx, task.Id, task.Name, "every item failed")
		log.Printf("[ERROR] Evaluation finished with no successful items for TaskId: %s", task.Id)
	} else {
		cs.eventPublisher.PublishEvaluationCompleted(ctx, task.Id, task.Name, succeeded, failed, summary.AvgSemanticSimilarity)
		log.Printf("[SUCCESS] Evaluation completed: %d succeeded, %d failed for TaskId: %s", succeeded, failed, task.Id)
	}
	msg.Ack()
}

func (cs *evaluationConsumerService) evaluateItem(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	engine *entity.ChatEngine,
	llmClient provider.LLMClient,
	embedClient provider.EmbeddingClient,
	kbId uuid.UUID,
	item *entity.EvaluationItem,
	minWordLen int,
) itemOutcome {
	ictx, cancel := context.WithTimeout(ctx, evalItemTimeout)
	defer cancel()

	contexts := cs.retrieveContext(ictx, uow, embedClient, kbId, engine.Options.Retrieval.TopK, item.Query)

	answer := ""
	if llmClient != nil {
		generated, err := llmClient.Generate(ictx, buildEvalPrompt(engine.Options.SystemPrompt, contexts, item.Query))
		if err != nil {
			log.Printf("[WARN] Provider answer failed for item %s, using retrieval echo: %v", item.Id, err)
		} else {
			answer = strings.TrimSpace(generated)
		}
	}
	if answer == "" {
		answer = echoAnswer(contexts)
	}
	if answer == "" {
		return itemOutcome{err: fmt.Errorf("no reachable provider and no retrieval context")}
	}

	return itemOutcome{
		answer:   answer,
		recall:   evalscore.KeywordRecall(answer, item.Reference, minWordLen),
		semantic: cs.semanticScore(ictx, embedClient, answer, item.Reference),
	}
}

func (cs *evaluationConsumerService) retrieveContext(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	embedClient provider.EmbeddingClient,
	kbId uuid.UUID,
	topK int,
	query string,
) []string {
	if embedClient == nil || kbId == uuid.Nil {
		return nil
	}
	if topK <= 0 {
		topK = evalDefaultTopK
	}

	vec, err := embedClient.Embed(ctx, query)
	if err != nil {
		log.Printf("[WARN] Query embedding failed, answering without context: %v", err)
		return nil
	}
	chunks, err := uow.ChunkRepository().SearchSimilar(ctx, kbId, provider.NormalizeVector(vec), topK)
	if err != nil {
		log.Printf("[WARN] Similarity search failed, answering without context: %v", err)
		return nil
	}

	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	return texts
}

// semanticScore prefers embedding cosine; when the embedding provider is
// unreachable it degrades to lexical Jaccard overlap so every result still
// carries a comparable number.
func (cs *evaluationConsumerService) semanticScore(ctx context.Context, embedClient provider.EmbeddingClient, answer, reference string) float64 {
	if embedClient != nil {
		a, errA := embedClient.Embed(ctx, answer)
		b, errB := embedClient.Embed(ctx, reference)
		if errA == nil && errB == nil {
			return evalscore.CosineSimilarity(a, b)
		}
	}
	return evalscore.JaccardSimilarity(answer, reference)
}

func (cs *evaluationConsumerService) llmClientFor(ctx context.Context, uow unitofwork.UnitOfWork, engine *entity.ChatEngine) provider.LLMClient {
	modelId := engine.Options.LLMId
	if modelId == nil {
		if m, err := uow.AIModelRepository().FindOne(ctx,
			specification.ByModelKind{Kind: string(entity.ModelKindLLM)},
			specification.DefaultOnly{},
		); err == nil && m != nil {
			modelId = &m.Id
		}
	}
	if modelId == nil {
		log.Printf("[WARN] Engine %s has no LLM configured, falling back to retrieval echo", engine.Id)
		return nil
	}

	model, err := uow.AIModelRepository().FindOne(ctx, specification.ByID{ID: *modelId})
	if err != nil || model == nil {
		log.Printf("[WARN] LLM %s unavailable, falling back to retrieval echo", *modelId)
		return nil
	}
	client, err := provider.NewLLMClient(model)
	if err != nil {
		log.Printf("[WARN] Failed to build LLM client for model %s: %v", model.Id, err)
		return nil
	}
	return client
}

func (cs *evaluationConsumerService) retrievalFor(ctx context.Context, uow unitofwork.UnitOfWork, engine *entity.ChatEngine) (uuid.UUID, provider.EmbeddingClient) {
	if len(engine.Options.KnowledgeBaseIds) == 0 {
		return uuid.Nil, nil
	}
	kbId := engine.Options.KnowledgeBaseIds[0]

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: kbId})
	if err != nil || kb == nil {
		log.Printf("[WARN] Knowledge base %s unavailable for retrieval", kbId)
		return uuid.Nil, nil
	}
	model, err := uow.AIModelRepository().FindOne(ctx, specification.ByID{ID: kb.EmbeddingModelId})
	if err != nil || model == nil {
		log.Printf("[WARN] Embedding model %s unavailable for retrieval", kb.EmbeddingModelId)
		return kbId, nil
	}
	client, err := cs.embedders.For(model)
	if err != nil {
		log.Printf("[WARN] Failed to build embedding client for model %s: %v", model.Id, err)
		return kbId, nil
	}
	return kbId, client
}

func (cs *evaluationConsumerService) intSetting(ctx context.Context, uow unitofwork.UnitOfWork, name string, fallback int) int {
	def, ok := settingval.Lookup(name)
	if !ok {
		return fallback
	}
	value := def.DefaultValue
	if stored, err := uow.SiteSettingRepository().FindOne(ctx, specification.ByName{Name: name}); err == nil && stored != nil {
		value = stored.Value
	}
	coerced, err := settingval.Coerce(entity.SettingTypeInt, value)
	if err != nil {
		return fallback
	}
	return coerced.(int)
}

func (cs *evaluationConsumerService) setProgress(task *entity.EvaluationTask, succeeded, failed int) {
	cs.progress.Set(&entity.TaskProgress{
		TaskId:    task.Id,
		Status:    entity.EvaluationTaskStatusRunning,
		Total:     task.Total,
		Done:      succeeded,
		Failed:    failed,
		UpdatedAt: time.Now(),
	})
}

func (cs *evaluationConsumerService) markCancelled(ctx context.Context, uow unitofwork.UnitOfWork, task *entity.EvaluationTask, succeeded, failed int) {
	now := time.Now()
	task.Status = entity.EvaluationTaskStatusCancelled
	task.Succeeded = succeeded
	task.Failed = failed
	task.FinishedAt = &now
	task.UpdatedAt = now
	if err := uow.EvaluationRepository().UpdateTask(ctx, task); err != nil {
		log.Printf("[ERROR] Failed to mark task %s cancelled: %v", task.Id, err)
	}
	cs.progress.Delete(task.Id)
	cs.eventPublisher.PublishEvaluationCancelled(ctx, task.Id, task.Name)
	log.Printf("[WARN] Evaluation cancelled after %d items for TaskId: %s", succeeded+failed, task.Id)
}

func (cs *evaluationConsumerService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, task *entity.EvaluationTask, reason string) {
	now := time.Now()
	task.Status = entity.EvaluationTaskStatusFailed
	task.FinishedAt = &now
	task.UpdatedAt = now
	if err := uow.EvaluationRepository().UpdateTask(ctx, task); err != nil {
		log.Printf("[ERROR] Failed to mark task %s failed: %v", task.Id, err)
	}
	cs.progress.Delete(task.Id)
	cs.eventPublisher.PublishEvaluationFailed(ctx, task.Id, task.Name, reason)
	log.Printf("[ERROR] Evaluation failed for TaskId %s: %s", task.Id, reason)
}

func buildEvalPrompt(systemPrompt string, contexts []string, query string) string {
	var b strings.Builder
	if systemPrompt != "" {
		b.WriteString(systemPrompt)
		b.WriteString("\n\n")
	}
	if len(contexts) > 0 {
		b.WriteString("Context:\n")
		for _, c := range contexts {
			b.WriteString(c)
			b.WriteString("\n---\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Question: ")
	b.WriteString(query)
	b.WriteString("\nAnswer:")
	return b.String()
}

// echoAnswer is the deterministic fallback when no LLM is reachable: the
// retrieved passages themselves, capped, in retrieval order.
func echoAnswer(contexts []string) string {
	if len(contexts) == 0 {
		return ""
	}
	joined := strings.Join(contexts, "\n\n")
	if len(joined) > evalEchoMaxChars {
		joined = joined[:evalEchoMaxChars]
	}
	return strings.TrimSpace(joined)
}
