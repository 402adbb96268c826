// FILE: internal/dto/system_dto.go
package dto

import "time"

// --- Dashboard ---

type SystemStatsResponse struct {
	TotalUsers          int64             `json:"total_users"`
	TotalKnowledgeBases int64             `json:"total_knowledge_bases"`
	TotalDatasources    int64             `json:"total_datasources"`
	TotalDocuments      int64             `json:"total_documents"`
	TotalChunks         int64             `json:"total_chunks"`
	TotalChatEngines    int64             `json:"total_chat_engines"`
	TotalChats          int64             `json:"total_chats"`
	TotalMessages       int64             `json:"total_messages"`
	TotalFeedbacks      int64             `json:"total_feedbacks"`
	TotalModels         int64             `json:"total_models"`
	RunningEvaluations  int64             `json:"running_evaluations"`
	PendingIngests      int64             `json:"pending_ingests"`
	RecentLogs          []LogListResponse `json:"recent_logs"`
}

// --- System Logs ---

// LogListResponse uses string for Id because log IDs are MD5 hashes, not UUIDs.
type LogListResponse struct {
	Id        string    `json:"id"`
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}
