package mapper

import (
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
)

// MaskedSecret is what reads return in place of stored credentials and
// passwords. Updates treat this exact value (or empty) as "unchanged".
const MaskedSecret = "********"

func maskSecret(secret *string) *string {
	if secret == nil || *secret == "" {
		return nil
	}
	masked := MaskedSecret
	return &masked
}

// IsMasked reports whether an inbound secret should keep the stored value.
func IsMasked(secret *string) bool {
	return secret == nil || *secret == "" || *secret == MaskedSecret
}

// --- Users ---

func UserToResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		Id:          u.Id,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func UsersToResponse(users []*entity.User) []*dto.UserResponse {
	var res []*dto.UserResponse
	for _, u := range users {
		res = append(res, UserToResponse(u))
	}
	return res
}

// --- Knowledge Bases ---

func KnowledgeBaseToResponse(kb *entity.KnowledgeBase, documentCount, datasourceCount int64) *dto.KnowledgeBaseResponse {
	if kb == nil {
		return nil
	}
	methods := make([]string, 0, len(kb.IndexMethods))
	for _, m := range kb.IndexMethods {
		methods = append(methods, string(m))
	}
	return &dto.KnowledgeBaseResponse{
		Id:               kb.Id,
		Name:             kb.Name,
		Description:      kb.Description,
		IndexMethods:     methods,
		LLMId:            kb.LLMId,
		EmbeddingModelId: kb.EmbeddingModelId,
		ChunkingConfig: dto.ChunkingConfigDTO{
			ChunkSize:    kb.ChunkingConfig.ChunkSize,
			ChunkOverlap: kb.ChunkingConfig.ChunkOverlap,
			Separator:    kb.ChunkingConfig.Separator,
		},
		DocumentCount:   documentCount,
		DatasourceCount: datasourceCount,
		CreatedAt:       kb.CreatedAt,
		UpdatedAt:       kb.UpdatedAt,
	}
}

// --- Datasources ---

func DatasourceToResponse(ds *entity.Datasource, documentCount int64) *dto.DatasourceResponse {
	if ds == nil {
		return nil
	}
	url := ds.Config.URL
	if ds.Type == entity.DatasourceTypeSitemap {
		url = ds.Config.SitemapURL
	}
	return &dto.DatasourceResponse{
		Id:              ds.Id,
		KnowledgeBaseId: ds.KnowledgeBaseId,
		Name:            ds.Name,
		SourceType:      string(ds.Type),
		URL:             url,
		FileName:        ds.Config.FileName,
		Status:          string(ds.Status),
		LastError:       ds.LastError,
		DocumentCount:   documentCount,
		CreatedAt:       ds.CreatedAt,
		UpdatedAt:       ds.UpdatedAt,
	}
}

// --- Documents & Chunks ---

func DocumentToResponse(d *entity.Document, chunkCount int64) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	return &dto.DocumentResponse{
		Id:              d.Id,
		KnowledgeBaseId: d.KnowledgeBaseId,
		DatasourceId:    d.DatasourceId,
		Name:            d.Name,
		MimeType:        d.MimeType,
		SourceURI:       d.SourceURI,
		SizeBytes:       d.SizeBytes,
		IndexStatus:     string(d.IndexStatus),
		IndexError:      d.IndexError,
		ChunkCount:      chunkCount,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func ChunkToResponse(c *entity.Chunk) *dto.ChunkResponse {
	if c == nil {
		return nil
	}
	return &dto.ChunkResponse{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		Ordinal:    c.Ordinal,
		Text:       c.Text,
		HasVector:  len(c.Embedding) > 0,
		CreatedAt:  c.CreatedAt,
	}
}

func ChunksToResponse(chunks []*entity.Chunk) []*dto.ChunkResponse {
	var res []*dto.ChunkResponse
	for _, c := range chunks {
		res = append(res, ChunkToResponse(c))
	}
	return res
}

func ChunkPreviewToResponse(p *entity.ChunkPreview) *dto.ChunkPreviewResponse {
	if p == nil {
		return nil
	}
	return &dto.ChunkPreviewResponse{
		Id:                p.ChunkId,
		Text:              p.Text,
		DocumentId:        p.DocumentId,
		DocumentName:      p.DocumentName,
		KnowledgeBaseId:   p.KnowledgeBaseId,
		KnowledgeBaseName: p.KnowledgeBaseName,
		SourceURI:         p.SourceURI,
	}
}

// --- Graph ---

func GraphNodeToResponse(n *entity.GraphNode) *dto.GraphNodeResponse {
	if n == nil {
		return nil
	}
	return &dto.GraphNodeResponse{
		Id:              n.Id,
		KnowledgeBaseId: n.KnowledgeBaseId,
		Name:            n.Name,
		Description:     n.Description,
		Meta:            n.Meta,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

func GraphRelationshipToResponse(r *entity.GraphRelationship) *dto.GraphRelationshipResponse {
	if r == nil {
		return nil
	}
	return &dto.GraphRelationshipResponse{
		Id:              r.Id,
		KnowledgeBaseId: r.KnowledgeBaseId,
		SourceNodeId:    r.SourceNodeId,
		TargetNodeId:    r.TargetNodeId,
		Description:     r.Description,
		Weight:          r.Weight,
		ChunkId:         r.ChunkId,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func SubgraphToResponse(g *entity.Subgraph) *dto.SubgraphResponse {
	res := &dto.SubgraphResponse{
		Nodes:         []dto.GraphNodeResponse{},
		Relationships: []dto.GraphRelationshipResponse{},
	}
	if g == nil {
		return res
	}
	for _, n := range g.Nodes {
		res.Nodes = append(res.Nodes, *GraphNodeToResponse(n))
	}
	for _, r := range g.Relationships {
		res.Relationships = append(res.Relationships, *GraphRelationshipToResponse(r))
	}
	return res
}

// --- Models ---

func ModelToResponse(m *entity.AIModel) *dto.ModelResponse {
	if m == nil {
		return nil
	}
	return &dto.ModelResponse{
		Id:          m.Id,
		Kind:        string(m.Kind),
		Name:        m.Name,
		Provider:    string(m.Provider),
		Model:       m.Model,
		BaseURL:     m.BaseURL,
		Params:      m.Params,
		Credentials: maskSecret(m.Credentials),
		IsDefault:   m.IsDefault,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ModelsToResponse(models []*entity.AIModel) []*dto.ModelResponse {
	var res []*dto.ModelResponse
	for _, m := range models {
		res = append(res, ModelToResponse(m))
	}
	return res
}

// --- Chat Engines ---

func EngineOptionsToDTO(o entity.EngineOptions) dto.EngineOptionsDTO {
	return dto.EngineOptionsDTO{
		LLMId:                 o.LLMId,
		FastLLMId:             o.FastLLMId,
		KnowledgeBaseIds:      o.KnowledgeBaseIds,
		DatabaseConnectionIds: o.DatabaseConnectionIds,
		Retrieval: dto.RetrievalOptionsDTO{
			TopK:                 o.Retrieval.TopK,
			SimilarityThreshold:  o.Retrieval.SimilarityThreshold,
			EnableKnowledgeGraph: o.Retrieval.EnableKnowledgeGraph,
			RerankerId:           o.Retrieval.RerankerId,
		},
		SystemPrompt:   o.SystemPrompt,
		CondensePrompt: o.CondensePrompt,
		HideSources:    o.HideSources,
	}
}

func EngineOptionsFromDTO(o dto.EngineOptionsDTO) entity.EngineOptions {
	return entity.EngineOptions{
		LLMId:                 o.LLMId,
		FastLLMId:             o.FastLLMId,
		KnowledgeBaseIds:      o.KnowledgeBaseIds,
		DatabaseConnectionIds: o.DatabaseConnectionIds,
		Retrieval: entity.RetrievalOptions{
			TopK:                 o.Retrieval.TopK,
			SimilarityThreshold:  o.Retrieval.SimilarityThreshold,
			EnableKnowledgeGraph: o.Retrieval.EnableKnowledgeGraph,
			RerankerId:           o.Retrieval.RerankerId,
		},
		SystemPrompt:   o.SystemPrompt,
		CondensePrompt: o.CondensePrompt,
		HideSources:    o.HideSources,
	}
}

func ChatEngineToResponse(e *entity.ChatEngine) *dto.ChatEngineResponse {
	if e == nil {
		return nil
	}
	return &dto.ChatEngineResponse{
		Id:        e.Id,
		Name:      e.Name,
		Options:   EngineOptionsToDTO(e.Options),
		IsDefault: e.IsDefault,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ChatEnginesToResponse(engines []*entity.ChatEngine) []*dto.ChatEngineResponse {
	var res []*dto.ChatEngineResponse
	for _, e := range engines {
		res = append(res, ChatEngineToResponse(e))
	}
	return res
}

// --- Chats ---

func ChatToListItem(c *entity.Chat, messageCount int64) *dto.ChatListItemResponse {
	if c == nil {
		return nil
	}
	return &dto.ChatListItemResponse{
		Id:           c.Id,
		Title:        c.Title,
		ChatEngineId: c.ChatEngineId,
		UserId:       c.UserId,
		Origin:       c.Origin,
		Visibility:   string(c.Visibility),
		MessageCount: messageCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ChatMessageToResponse leaves Citations for the service to fill: citation
// resolution needs the chunk repository and the preview cache.
func ChatMessageToResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	if m == nil {
		return nil
	}
	return &dto.ChatMessageResponse{
		Id:         m.Id,
		Ordinal:    m.Ordinal,
		Role:       string(m.Role),
		Content:    m.Content,
		TraceURL:   m.TraceURL,
		FinishedAt: m.FinishedAt,
		CreatedAt:  m.CreatedAt,
	}
}

func SQLQueryRecordToResponse(r *entity.SQLQueryRecord) *dto.SQLQueryRecordResponse {
	if r == nil {
		return nil
	}
	return &dto.SQLQueryRecordResponse{
		Id:                   r.Id,
		ChatMessageId:        r.ChatMessageId,
		DatabaseConnectionId: r.DatabaseConnectionId,
		Question:             r.Question,
		Query:                r.Query,
		ResultRows:           r.ResultRows,
		Error:                r.Error,
		DurationMs:           r.DurationMs,
		CreatedAt:            r.CreatedAt,
	}
}

func SQLQueryRecordsToResponse(records []*entity.SQLQueryRecord) []*dto.SQLQueryRecordResponse {
	var res []*dto.SQLQueryRecordResponse
	for _, r := range records {
		res = append(res, SQLQueryRecordToResponse(r))
	}
	return res
}

// --- Database Connections ---

func DatabaseConnectionToResponse(c *entity.DatabaseConnection) *dto.DatabaseConnectionResponse {
	if c == nil {
		return nil
	}
	return &dto.DatabaseConnectionResponse{
		Id:           c.Id,
		Name:         c.Name,
		Engine:       string(c.Engine),
		Host:         c.Host,
		Port:         c.Port,
		Database:     c.Database,
		Username:     c.Username,
		Password:     maskSecret(c.Password),
		ReadOnly:     c.ReadOnly,
		Description:  c.Description,
		LastTestedAt: c.LastTestedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func DatabaseConnectionsToResponse(conns []*entity.DatabaseConnection) []*dto.DatabaseConnectionResponse {
	var res []*dto.DatabaseConnectionResponse
	for _, c := range conns {
		res = append(res, DatabaseConnectionToResponse(c))
	}
	return res
}

// --- Feedback ---

// FeedbackToResponse takes the question/answer pair alongside the entity;
// they come from the referenced chat messages, which the service joins.
func FeedbackToResponse(f *entity.Feedback, question, answer string) *dto.FeedbackResponse {
	if f == nil {
		return nil
	}
	return &dto.FeedbackResponse{
		Id:            f.Id,
		ChatId:        f.ChatId,
		ChatMessageId: f.ChatMessageId,
		Type:          string(f.Type),
		Comment:       f.Comment,
		Origin:        f.Origin,
		Question:      question,
		Answer:        answer,
		CreatedAt:     f.CreatedAt,
	}
}

// --- Evaluation ---

func DatasetToResponse(d *entity.EvaluationDataset, itemCount int64) *dto.EvaluationDatasetResponse {
	if d == nil {
		return nil
	}
	return &dto.EvaluationDatasetResponse{
		Id:          d.Id,
		Name:        d.Name,
		Description: d.Description,
		ItemCount:   itemCount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func ItemToResponse(it *entity.EvaluationItem) *dto.EvaluationItemResponse {
	if it == nil {
		return nil
	}
	return &dto.EvaluationItemResponse{
		Id:        it.Id,
		DatasetId: it.DatasetId,
		Query:     it.Query,
		Reference: it.Reference,
		Extra:     it.Extra,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func ItemsToResponse(items []*entity.EvaluationItem) []*dto.EvaluationItemResponse {
	var res []*dto.EvaluationItemResponse
	for _, it := range items {
		res = append(res, ItemToResponse(it))
	}
	return res
}

func TaskToResponse(t *entity.EvaluationTask) *dto.EvaluationTaskResponse {
	if t == nil {
		return nil
	}
	res := &dto.EvaluationTaskResponse{
		Id:           t.Id,
		Name:         t.Name,
		DatasetId:    t.DatasetId,
		ChatEngineId: t.ChatEngineId,
		Status:       string(t.Status),
		Total:        t.Total,
		Succeeded:    t.Succeeded,
		Failed:       t.Failed,
		StartedAt:    t.StartedAt,
		FinishedAt:   t.FinishedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.Summary != nil {
		res.Summary = &dto.EvaluationSummaryResponse{
			AvgKeywordRecall:      t.Summary.AvgKeywordRecall,
			AvgSemanticSimilarity: t.Summary.AvgSemanticSimilarity,
		}
	}
	return res
}

func TasksToResponse(tasks []*entity.EvaluationTask) []*dto.EvaluationTaskResponse {
	var res []*dto.EvaluationTaskResponse
	for _, t := range tasks {
		res = append(res, TaskToResponse(t))
	}
	return res
}

func ProgressToResponse(p *entity.TaskProgress) *dto.TaskProgressResponse {
	if p == nil {
		return nil
	}
	return &dto.TaskProgressResponse{
		TaskId:    p.TaskId,
		Status:    string(p.Status),
		Total:     p.Total,
		Done:      p.Done,
		Failed:    p.Failed,
		UpdatedAt: p.UpdatedAt,
	}
}

// ResultToResponse takes query/reference from the joined item; results keep
// only the item id.
func ResultToResponse(r *entity.EvaluationResult, query, reference string) *dto.EvaluationResultResponse {
	if r == nil {
		return nil
	}
	return &dto.EvaluationResultResponse{
		Id:                 r.Id,
		TaskId:             r.TaskId,
		ItemId:             r.ItemId,
		Query:              query,
		Reference:          reference,
		Answer:             r.Answer,
		KeywordRecall:      r.KeywordRecall,
		SemanticSimilarity: r.SemanticSimilarity,
		Error:              r.Error,
		CreatedAt:          r.CreatedAt,
	}
}

// --- Site Settings ---

func SettingToResponse(s *entity.SiteSetting) *dto.SiteSettingResponse {
	if s == nil {
		return nil
	}
	return &dto.SiteSettingResponse{
		Id:           s.Id,
		Name:         s.Name,
		Group:        s.Group,
		DataType:     string(s.DataType),
		Value:        s.Value,
		DefaultValue: s.DefaultValue,
		Description:  s.Description,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func SettingsToResponse(settings []*entity.SiteSetting) []*dto.SiteSettingResponse {
	var res []*dto.SiteSettingResponse
	for _, s := range settings {
		res = append(res, SettingToResponse(s))
	}
	return res
}
