package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/testutil"
)

func TestRegistryKeepsUsersApart(t *testing.T) {
	tasks := testutil.NewTaskRepository()
	docs := testutil.NewDocumentRepository()
	tasks.Seed("alice", entities.Task{ID: "a1", Title: "Alice's"})
	tasks.Seed("bob", entities.Task{ID: "b1", Title: "Bob's"})

	reg := NewRegistry(tasks, docs, logger.NewNop(), nil)
	ctx := context.Background()

	alice, err := reg.For(ctx, "alice")
	if err != nil {
		t.Fatalf("For(alice) error: %v", err)
	}
	bob, err := reg.For(ctx, "bob")
	if err != nil {
		t.Fatalf("For(bob) error: %v", err)
	}

	if got := alice.Tasks.Tasks(); len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("alice sees %+v", got)
	}
	if got := bob.Tasks.Tasks(); len(got) != 1 || got[0].ID != "b1" {
		t.Errorf("bob sees %+v", got)
	}

	again, _ := reg.For(ctx, "alice")
	if again != alice {
		t.Error("registry should return the cached state")
	}

	reg.Forget("alice")
	if fresh, _ := reg.For(ctx, "alice"); fresh == alice {
		t.Error("Forget should drop the cached state")
	}
}

func TestLoadKeepsStoresIndependent(t *testing.T) {
	tasks := testutil.NewTaskRepository()
	docs := testutil.NewDocumentRepository()
	ctx := context.Background()
	if _, err := docs.Insert(ctx, "alice", entities.DocumentDraft{Title: "Handbook", URL: "https://example.com/handbook.pdf"}); err != nil {
		t.Fatal(err)
	}
	tasks.ListErr = errors.New("tasks table offline")

	st := New("alice", tasks, docs, logger.NewNop(), nil)
	err := st.Load(ctx)
	if !errors.Is(err, tasks.ListErr) {
		t.Fatalf("Load() error = %v, want the task failure", err)
	}
	if got := st.Documents.Documents(); len(got) != 1 || got[0].Title != "Handbook" {
		t.Errorf("documents = %+v, want the stored link despite the task failure", got)
	}
}

func TestRegistryCachesPartialLoad(t *testing.T) {
	tasks := testutil.NewTaskRepository()
	docs := testutil.NewDocumentRepository()
	ctx := context.Background()
	if _, err := docs.Insert(ctx, "alice", entities.DocumentDraft{Title: "Handbook", URL: "https://example.com/handbook.pdf"}); err != nil {
		t.Fatal(err)
	}
	tasks.Seed("alice", entities.Task{ID: "a1", Title: "Alice's"})
	tasks.ListErr = errors.New("offline")
	reg := NewRegistry(tasks, docs, logger.NewNop(), nil)

	st, err := reg.For(ctx, "alice")
	if err != nil {
		t.Fatalf("For() error: %v", err)
	}
	if len(st.Documents.Documents()) != 1 {
		t.Errorf("documents = %+v, want them served while tasks fail", st.Documents.Documents())
	}
	if len(st.Tasks.Tasks()) != 0 {
		t.Errorf("tasks = %+v, want empty after a failed load", st.Tasks.Tasks())
	}

	tasks.ListErr = nil
	again, err := reg.For(ctx, "alice")
	if err != nil || again != st {
		t.Fatalf("For() = %p, %v; want the cached state", again, err)
	}
	if err := again.Load(ctx); err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := again.Tasks.Tasks(); len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("tasks after reload = %+v", got)
	}
}

// gatedTasks holds List for one owner until release is closed.
type gatedTasks struct {
	*testutil.TaskRepository
	owner   string
	entered chan struct{}
	release chan struct{}
}

func (g *gatedTasks) List(ctx context.Context, ownerID string) ([]entities.Task, error) {
	if ownerID == g.owner {
		close(g.entered)
		<-g.release
	}
	return g.TaskRepository.List(ctx, ownerID)
}

func TestRegistrySlowUserDoesNotBlockOthers(t *testing.T) {
	inner := testutil.NewTaskRepository()
	inner.Seed("bob", entities.Task{ID: "b1", Title: "Bob's"})
	gated := &gatedTasks{
		TaskRepository: inner,
		owner:          "alice",
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	reg := NewRegistry(gated, testutil.NewDocumentRepository(), logger.NewNop(), nil)

	aliceDone := make(chan *AppState, 1)
	go func() {
		st, _ := reg.For(context.Background(), "alice")
		aliceDone <- st
	}()
	<-gated.entered

	bobDone := make(chan error, 1)
	go func() {
		_, err := reg.For(context.Background(), "bob")
		bobDone <- err
	}()
	select {
	case err := <-bobDone:
		if err != nil {
			t.Fatalf("For(bob) error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("bob waited on alice's load")
	}

	// A second caller for alice waits for the first load, or its own context.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := reg.For(ctx, "alice"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("waiting For(alice) error = %v, want deadline exceeded", err)
	}

	close(gated.release)
	if st := <-aliceDone; st == nil {
		t.Fatal("For(alice) returned no state")
	}
	if _, err := reg.For(context.Background(), "alice"); err != nil {
		t.Errorf("For(alice) after load: %v", err)
	}
}

func TestEditorFromState(t *testing.T) {
	tasks := testutil.NewTaskRepository()
	tasks.Seed("alice", entities.Task{ID: "a1", Title: "Existing"})
	st := New("alice", tasks, testutil.NewDocumentRepository(), logger.NewNop(), nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	now := func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }

	editor, err := st.Editor("a1", now)
	if err != nil || editor.IsNew() || editor.Draft.Title != "Existing" {
		t.Fatalf("Editor(a1) = %+v, %v", editor, err)
	}
	if editor, _ := st.Editor("", now); !editor.IsNew() {
		t.Error("empty id should open a new task")
	}
	if _, err := st.Editor("missing", now); !errors.Is(err, entities.ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
}
