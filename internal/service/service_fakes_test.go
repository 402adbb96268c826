// FILE: internal/service/service_fakes_test.go
// In-memory unit-of-work fakes for service tests. The repo fakes interpret
// only the filter specifications services actually pass (ByID, ByModelKind);
// ordering and pagination are exercised against the real database in
// test/integration.
package service

import (
	"context"
	"time"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/contract"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeUow struct {
	models      *fakeAIModelRepo
	engines     *fakeChatEngineRepo
	kbs         *fakeKnowledgeBaseRepo
	connections *fakeDatabaseConnectionRepo

	begins    int
	commits   int
	rollbacks int
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		models:      &fakeAIModelRepo{},
		engines:     &fakeChatEngineRepo{},
		kbs:         &fakeKnowledgeBaseRepo{},
		connections: &fakeDatabaseConnectionRepo{},
	}
}

func (u *fakeUow) factory() unitofwork.RepositoryFactory { return &fakeFactory{uow: u} }

func (u *fakeUow) Begin(context.Context) error { u.begins++; return nil }
func (u *fakeUow) Commit() error               { u.commits++; return nil }
func (u *fakeUow) Rollback() error             { u.rollbacks++; return nil }

func (u *fakeUow) UserRepository() contract.UserRepository               { return nil }
func (u *fakeUow) KnowledgeBaseRepository() contract.KnowledgeBaseRepository {
	return u.kbs
}
func (u *fakeUow) DatasourceRepository() contract.DatasourceRepository { return nil }
func (u *fakeUow) DocumentRepository() contract.DocumentRepository     { return nil }
func (u *fakeUow) ChunkRepository() contract.ChunkRepository           { return nil }
func (u *fakeUow) GraphRepository() contract.GraphRepository           { return nil }
func (u *fakeUow) AIModelRepository() contract.AIModelRepository       { return u.models }
func (u *fakeUow) ChatEngineRepository() contract.ChatEngineRepository { return u.engines }
func (u *fakeUow) ChatRepository() contract.ChatRepository             { return nil }
func (u *fakeUow) DatabaseConnectionRepository() contract.DatabaseConnectionRepository {
	return u.connections
}
func (u *fakeUow) FeedbackRepository() contract.FeedbackRepository     { return nil }
func (u *fakeUow) EvaluationRepository() contract.EvaluationRepository { return nil }
func (u *fakeUow) SiteSettingRepository() contract.SiteSettingRepository {
	return nil
}

// matchesModel applies the filter specs the model service uses.
func matchesModel(m *entity.AIModel, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if m.Id != sp.ID {
				return false
			}
		case specification.ByModelKind:
			if string(m.Kind) != sp.Kind {
				return false
			}
		}
	}
	return true
}

type fakeAIModelRepo struct {
	rows []*entity.AIModel
}

func (r *fakeAIModelRepo) Create(_ context.Context, m *entity.AIModel) error {
	cp := *m
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeAIModelRepo) Update(_ context.Context, m *entity.AIModel) error {
	for i, row := range r.rows {
		if row.Id == m.Id {
			cp := *m
			r.rows[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeAIModelRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range r.rows {
		if row.Id == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeAIModelRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.AIModel, error) {
	for _, row := range r.rows {
		if matchesModel(row, specs) {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAIModelRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.AIModel, error) {
	var out []*entity.AIModel
	for _, row := range r.rows {
		if matchesModel(row, specs) {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAIModelRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

func (r *fakeAIModelRepo) ClearDefault(_ context.Context, kind entity.ModelKind) error {
	for _, row := range r.rows {
		if row.Kind == kind {
			row.IsDefault = false
		}
	}
	return nil
}

// get returns the stored row (not a copy) for assertions.
func (r *fakeAIModelRepo) get(id uuid.UUID) *entity.AIModel {
	for _, row := range r.rows {
		if row.Id == id {
			return row
		}
	}
	return nil
}

type fakeChatEngineRepo struct {
	rows []*entity.ChatEngine
}

func (r *fakeChatEngineRepo) Create(_ context.Context, e *entity.ChatEngine) error {
	cp := *e
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeChatEngineRepo) Update(_ context.Context, e *entity.ChatEngine) error {
	for i, row := range r.rows {
		if row.Id == e.Id {
			cp := *e
			r.rows[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeChatEngineRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range r.rows {
		if row.Id == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeChatEngineRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatEngine, error) {
	for _, row := range r.rows {
		if matchesEngine(row, specs) {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeChatEngineRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatEngine, error) {
	var out []*entity.ChatEngine
	for _, row := range r.rows {
		if matchesEngine(row, specs) {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeChatEngineRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

func (r *fakeChatEngineRepo) ClearDefault(context.Context) error {
	for _, row := range r.rows {
		row.IsDefault = false
	}
	return nil
}

func (r *fakeChatEngineRepo) get(id uuid.UUID) *entity.ChatEngine {
	for _, row := range r.rows {
		if row.Id == id {
			return row
		}
	}
	return nil
}

func matchesEngine(e *entity.ChatEngine, specs []specification.Specification) bool {
	for _, s := range specs {
		if sp, ok := s.(specification.ByID); ok && e.Id != sp.ID {
			return false
		}
	}
	return true
}

type fakeKnowledgeBaseRepo struct {
	rows      []*entity.KnowledgeBase
	modelRefs int64
}

func (r *fakeKnowledgeBaseRepo) Create(_ context.Context, kb *entity.KnowledgeBase) error {
	cp := *kb
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeKnowledgeBaseRepo) Update(context.Context, *entity.KnowledgeBase) error { return nil }

func (r *fakeKnowledgeBaseRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeKnowledgeBaseRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.KnowledgeBase, error) {
	for _, row := range r.rows {
		match := true
		for _, s := range specs {
			if sp, ok := s.(specification.ByID); ok && row.Id != sp.ID {
				match = false
			}
		}
		if match {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeKnowledgeBaseRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.KnowledgeBase, error) {
	return r.rows, nil
}

func (r *fakeKnowledgeBaseRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeKnowledgeBaseRepo) CountReferencingModel(context.Context, uuid.UUID) (int64, error) {
	return r.modelRefs, nil
}

type fakeDatabaseConnectionRepo struct {
	rows []*entity.DatabaseConnection
}

func (r *fakeDatabaseConnectionRepo) Create(_ context.Context, c *entity.DatabaseConnection) error {
	cp := *c
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeDatabaseConnectionRepo) Update(context.Context, *entity.DatabaseConnection) error {
	return nil
}

func (r *fakeDatabaseConnectionRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeDatabaseConnectionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.DatabaseConnection, error) {
	for _, row := range r.rows {
		match := true
		for _, s := range specs {
			if sp, ok := s.(specification.ByID); ok && row.Id != sp.ID {
				match = false
			}
		}
		if match {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDatabaseConnectionRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.DatabaseConnection, error) {
	return r.rows, nil
}

func (r *fakeDatabaseConnectionRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeDatabaseConnectionRepo) UpdateLastTested(context.Context, uuid.UUID, time.Time) error {
	return nil
}

func (r *fakeDatabaseConnectionRepo) CreateQueryRecord(context.Context, *entity.SQLQueryRecord) error {
	return nil
}

func (r *fakeDatabaseConnectionRepo) FindQueryRecords(context.Context, ...specification.Specification) ([]*entity.SQLQueryRecord, error) {
	return nil, nil
}

func (r *fakeDatabaseConnectionRepo) CountQueryRecords(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
