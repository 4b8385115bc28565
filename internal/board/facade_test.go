package board

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiirun/launchboard/internal/db"
	"github.com/baiirun/launchboard/internal/model"
	"github.com/baiirun/launchboard/internal/remote"
	"github.com/baiirun/launchboard/internal/remote/remotetest"
	"github.com/baiirun/launchboard/internal/store"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Init())
	t.Cleanup(func() { _ = database.Close() })
	return store.New(database, "", quietLogger())
}

func setupFacade(t *testing.T, baseURL string) (*Facade, *store.Store) {
	t.Helper()
	local := setupStore(t)
	rc := remote.NewClient(baseURL, "", 0)
	return NewFacade(rc, local, quietLogger(), 0), local
}

// countingAbsent answers 404 to everything and counts requests.
func countingAbsent(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func unreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func newTask(title string, status model.Status) model.Task {
	return model.Task{Title: title, Status: status}
}

func TestFacade_StartsRemote(t *testing.T) {
	f, _ := setupFacade(t, "http://unused.test")
	assert.Equal(t, ModeRemote, f.Mode())
	assert.False(t, f.UsingLocal())
	assert.Equal(t, "remote", f.Mode().String())
}

func TestFacade_ListRemote(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.Seed(newTask("a", model.StatusBacklog), newTask("b", model.StatusWeek1))
	f, _ := setupFacade(t, srv.URL)

	tasks, err := f.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, ModeRemote, f.Mode())
	assert.Equal(t, []string{"GET /tables/tasks?limit=1000"}, srv.Requests())
}

func TestFacade_ListAbsentSwitchesToLocal(t *testing.T) {
	srv, _ := countingAbsent(t)
	f, _ := setupFacade(t, srv.URL)

	tasks, err := f.List(context.Background())
	require.NoError(t, err)

	assert.True(t, f.UsingLocal())
	assert.Len(t, tasks, 32, "local store is seeded on failover")
}

func TestFacade_ListUnreachableSwitchesToLocal(t *testing.T) {
	f, _ := setupFacade(t, unreachableURL(t))

	tasks, err := f.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ModeLocal, f.Mode())
	assert.Len(t, tasks, 32)
}

func TestFacade_ListHTMLPageSwitchesToLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<!doctype html><html><body>launch site</body></html>"))
	}))
	t.Cleanup(srv.Close)
	f, _ := setupFacade(t, srv.URL)

	tasks, err := f.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ModeLocal, f.Mode(), "a static host is not a task API")
	assert.Len(t, tasks, 32)
}

func TestFacade_ListCancelledStaysRemote(t *testing.T) {
	f, _ := setupFacade(t, unreachableURL(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks, _ := f.List(ctx)

	assert.Empty(t, tasks)
	assert.Equal(t, ModeRemote, f.Mode(), "cancellation must not fail over")
}

func TestFacade_ListServerErrorStaysRemote(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.Seed(newTask("a", model.StatusBacklog))
	srv.FailWith(http.StatusInternalServerError)
	f, local := setupFacade(t, srv.URL)
	ctx := context.Background()

	tasks, err := f.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, ModeRemote, f.Mode(), "a generic server error must not trigger failover")

	stored, err := local.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "local store must not be seeded")

	srv.FailWith(0)
	tasks, err = f.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "the next list goes to the remote again")
}

func TestFacade_AfterFailoverEverythingRoutesLocal(t *testing.T) {
	srv, hits := countingAbsent(t)
	f, local := setupFacade(t, srv.URL)
	ctx := context.Background()

	_, err := f.List(ctx)
	require.NoError(t, err)
	require.True(t, f.UsingLocal())
	hitsAfterSwitch := atomic.LoadInt64(hits)

	created, err := f.Create(ctx, newTask("Local only", model.StatusWeek2))
	require.NoError(t, err)

	title := "Renamed"
	_, err = f.Patch(ctx, created.ID, model.TaskPatch{Title: &title})
	require.NoError(t, err)

	replacement := newTask("Replaced", model.StatusWeek3)
	_, err = f.Update(ctx, created.ID, replacement)
	require.NoError(t, err)

	tasks, err := f.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 33)

	require.NoError(t, f.Delete(ctx, created.ID))
	tasks, err = f.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 32)

	assert.Equal(t, hitsAfterSwitch, atomic.LoadInt64(hits), "no request may reach the remote after failover")
	assert.True(t, f.UsingLocal())

	stored, err := local.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 32)
}

func TestFacade_FailoverIsPermanent(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.FailWith(http.StatusNotFound)
	f, _ := setupFacade(t, srv.URL)
	ctx := context.Background()

	_, err := f.List(ctx)
	require.NoError(t, err)
	require.True(t, f.UsingLocal())

	// The remote recovers, but this session stays local.
	srv.FailWith(0)
	srv.Seed(newTask("remote", model.StatusBacklog))
	before := len(srv.Requests())

	tasks, err := f.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 32)
	assert.True(t, f.UsingLocal())
	assert.Len(t, srv.Requests(), before)
}

func TestFacade_MutationFailureDoesNotFailOver(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.FailWith(http.StatusServiceUnavailable)
	f, local := setupFacade(t, srv.URL)
	ctx := context.Background()

	_, err := f.Create(ctx, newTask("x", model.StatusBacklog))

	var failed *remote.RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusServiceUnavailable, failed.Status)
	assert.Equal(t, ModeRemote, f.Mode())

	stored, err := local.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "mutations are not retried against the local store")
}

func TestFacade_MutationUnreachableDoesNotFailOver(t *testing.T) {
	f, _ := setupFacade(t, unreachableURL(t))

	err := f.Delete(context.Background(), "t1")
	assert.ErrorIs(t, err, remote.ErrUnreachable)
	assert.Equal(t, ModeRemote, f.Mode())
}

func TestFacade_CreateRemote(t *testing.T) {
	srv := remotetest.NewServer(t)
	f, _ := setupFacade(t, srv.URL)
	ctx := context.Background()

	created, err := f.Create(ctx, model.Task{Title: "Done already", Status: model.StatusCompleted})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Completed, "completed column implies completed")
	assert.Equal(t, 5, created.Week)
	assert.Equal(t, model.PriorityMedium, created.Priority)

	tasks, err := f.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
}

func TestFacade_CreateValidation(t *testing.T) {
	srv := remotetest.NewServer(t)
	f, _ := setupFacade(t, srv.URL)
	ctx := context.Background()

	tests := []struct {
		name string
		task model.Task
		msg  string
	}{
		{"missing title", model.Task{Status: model.StatusBacklog}, "title is required"},
		{"unknown status", model.Task{Title: "x", Status: "week9"}, "status must be one of"},
		{"unknown priority", model.Task{Title: "x", Priority: "urgent"}, "priority must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Create(ctx, tt.task)
			require.ErrorIs(t, err, ErrInvalidTask)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
	assert.Empty(t, srv.Requests(), "invalid input never reaches a backend")
}

func TestFacade_CreateIDsUniqueAndListedOnce(t *testing.T) {
	f, _ := setupFacade(t, unreachableURL(t))
	ctx := context.Background()
	_, err := f.List(ctx)
	require.NoError(t, err)

	ids := map[string]bool{}
	for i := 0; i < 20; i++ {
		created, err := f.Create(ctx, model.Task{Title: "same", Status: model.StatusWeek1, Tags: []string{"t"}})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.False(t, ids[created.ID], "duplicate id %s", created.ID)
		ids[created.ID] = true

		tasks, err := f.List(ctx)
		require.NoError(t, err)
		matches := 0
		for _, task := range tasks {
			if task.ID == created.ID {
				matches++
				assert.Equal(t, "same", task.Title)
				assert.Equal(t, []string{"t"}, task.Tags)
				assert.NotZero(t, task.CreatedAt)
				assert.NotZero(t, task.UpdatedAt)
			}
		}
		assert.Equal(t, 1, matches)
	}
}

func TestFacade_UpdateRemoteUsesPut(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.Seed(model.Task{ID: "t1", Title: "Old", Status: model.StatusBacklog})
	f, _ := setupFacade(t, srv.URL)

	updated, err := f.Update(context.Background(), "t1", newTask("New", model.StatusWeek4))
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, 4, updated.Week)
	assert.Equal(t, []string{"PUT /tables/tasks/t1"}, srv.Requests())
}

func TestFacade_PatchRemote(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.Seed(model.Task{ID: "t1", Title: "Keep", Status: model.StatusBacklog, Week: 0})
	f, _ := setupFacade(t, srv.URL)

	status := model.StatusWeek3
	updated, err := f.Patch(context.Background(), "t1", model.TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Keep", updated.Title)
	assert.Equal(t, model.StatusWeek3, updated.Status)
	assert.Equal(t, 3, updated.Week, "week follows status")
}

func TestFacade_PatchValidation(t *testing.T) {
	f, _ := setupFacade(t, "http://unused.test")
	ctx := context.Background()

	_, err := f.Patch(ctx, "t1", model.TaskPatch{})
	assert.ErrorIs(t, err, ErrInvalidTask)

	bad := model.Status("later")
	_, err = f.Patch(ctx, "t1", model.TaskPatch{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidTask)

	blank := " "
	_, err = f.Patch(ctx, "t1", model.TaskPatch{Title: &blank})
	assert.ErrorIs(t, err, ErrInvalidTask)

	negative := -1
	_, err = f.Patch(ctx, "t1", model.TaskPatch{Order: &negative})
	assert.ErrorIs(t, err, ErrInvalidTask)

	order := 1
	_, err = f.Patch(ctx, "", model.TaskPatch{Order: &order})
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestFacade_DeleteLocalNotFound(t *testing.T) {
	f, local := setupFacade(t, unreachableURL(t))
	ctx := context.Background()
	_, err := f.List(ctx)
	require.NoError(t, err)

	before, err := local.List(ctx)
	require.NoError(t, err)

	err = f.Delete(ctx, "task_missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	after, err := local.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFacade_ClearRemote(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.Seed(newTask("a", model.StatusBacklog), newTask("b", model.StatusWeek1))
	f, _ := setupFacade(t, srv.URL)

	n, err := f.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, srv.Tasks())
}

func TestFacade_ClearLocal(t *testing.T) {
	f, _ := setupFacade(t, unreachableURL(t))
	ctx := context.Background()
	_, err := f.List(ctx)
	require.NoError(t, err)

	n, err := f.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 32, n)

	tasks, err := f.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestFacade_SeedRemote(t *testing.T) {
	srv := remotetest.NewServer(t)
	f, _ := setupFacade(t, srv.URL)

	n, err := f.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 32, n)
	assert.Len(t, srv.Tasks(), 32)
}

func TestFacade_SeedCollectsFailures(t *testing.T) {
	srv := remotetest.NewServer(t)
	srv.FailWith(http.StatusInternalServerError)
	f, _ := setupFacade(t, srv.URL)

	n, err := f.Seed(context.Background())
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Len(t, srv.Requests(), 32, "every sample task is attempted")
}

func TestFacade_Probe(t *testing.T) {
	srv := remotetest.NewServer(t)
	f, _ := setupFacade(t, srv.URL)

	result, err := f.Probe(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, ModeRemote, f.Mode(), "probing never changes mode")
}
