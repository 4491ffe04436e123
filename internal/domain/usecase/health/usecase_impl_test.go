package health

import (
	"context"
	"testing"

	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

type stubComponent struct {
	status model.HealthStatus
}

func (s stubComponent) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: s.status, Details: map[string]string{}}
}

type stubQueue struct {
	status model.HealthStatus
}

func (s stubQueue) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: s.status, Details: map[string]string{}}
}

func (stubQueue) RegisterWorker(string, queue.WorkerHealth) {}
func (stubQueue) UnregisterWorker(string)                   {}

// ctxRecorder remembers the context it was checked with
type ctxRecorder struct {
	got context.Context
}

func (r *ctxRecorder) Health(ctx context.Context) model.ComponentHealthStatus {
	r.got = ctx
	return model.ComponentHealthStatus{Status: model.StatusUp}
}

type ctxKey struct{}

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name  string
		db    model.HealthStatus
		queue model.HealthStatus
		cache model.HealthStatus
		want  model.HealthStatus
	}{
		{name: "all up", db: model.StatusUp, queue: model.StatusUp, cache: model.StatusUp, want: model.StatusUp},
		{name: "disabled components are ignored", db: model.StatusUp, queue: model.StatusUnknown, cache: model.StatusUnknown, want: model.StatusUp},
		{name: "database down", db: model.StatusDown, queue: model.StatusUp, cache: model.StatusUp, want: model.StatusDown},
		{name: "queue down", db: model.StatusUp, queue: model.StatusDown, cache: model.StatusUnknown, want: model.StatusDown},
		{name: "cache down", db: model.StatusUp, queue: model.StatusUnknown, cache: model.StatusDown, want: model.StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := NewHealthUseCase(stubComponent{tt.db}, stubQueue{tt.queue}, stubComponent{tt.cache})

			response := useCase.CheckHealth(context.Background())
			assert.Equal(t, tt.want, response.Status)
			assert.Equal(t, tt.db, response.Database.Status)
			assert.Equal(t, tt.queue, response.Queue.Status)
			assert.Equal(t, tt.cache, response.Cache.Status)
		})
	}
}

func TestCheckHealth_PassesContextToComponents(t *testing.T) {
	dbCheck := &ctxRecorder{}
	cacheCheck := &ctxRecorder{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "request")

	NewHealthUseCase(dbCheck, stubQueue{model.StatusUnknown}, cacheCheck).CheckHealth(ctx)

	assert.Equal(t, "request", dbCheck.got.Value(ctxKey{}))
	assert.Equal(t, "request", cacheCheck.got.Value(ctxKey{}))
}
