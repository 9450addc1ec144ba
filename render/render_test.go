package render

import (
	"strings"
	"testing"

	"taskboard/domain"
)

func TestNewResolvesAllViews(t *testing.T) {
	if _, err := New(); err != nil {
		t.Fatalf("engine construction failed: %v", err)
	}
}

func TestRenderUnknownViewFails(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if _, err := e.Render("no_such_view", nil); err == nil {
		t.Fatal("expected error for unknown view")
	}
}

func TestTaskItemCarriesTriggersAndConfirm(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	html, err := e.Render(ViewTaskItem, domain.Task{ID: 7, Title: "Buy milk"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		`id="task-7"`,
		"Buy milk",
		`hx-get="/tasks/7/edit"`,
		`hx-post="/tasks/7/delete"`,
		`hx-confirm="Delete &#34;Buy milk&#34;?"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("task item missing %q:\n%s", want, html)
		}
	}
}

func TestTaskItemEscapesTitle(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	html, err := e.Render(ViewTaskItem, domain.Task{ID: 1, Title: "<script>bad</script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>bad</script>") {
		t.Fatalf("title not escaped:\n%s", html)
	}
}

func TestStatusViewIsOutOfBand(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	html, err := e.Render(ViewStatus, struct{ Message string }{Message: "Added \"x\"."})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, `hx-swap-oob="true"`) {
		t.Fatalf("status element not out-of-band:\n%s", html)
	}
	if !strings.Contains(html, `id="status"`) {
		t.Fatalf("status element missing id:\n%s", html)
	}
}

func TestTasksPageListsTasksInOrder(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	data := struct {
		Tasks []domain.Task
		Query string
		Error string
	}{
		Tasks: []domain.Task{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}},
	}
	html, err := e.Render(ViewTasks, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	first := strings.Index(html, "first")
	second := strings.Index(html, "second")
	if first < 0 || second < 0 {
		t.Fatalf("page missing tasks:\n%s", html)
	}
	if first > second {
		t.Fatal("tasks rendered out of insertion order")
	}
}

func TestTasksPageShowsRequiredErrorFlag(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	data := struct {
		Tasks []domain.Task
		Query string
		Error string
	}{Error: "required"}
	html, err := e.Render(ViewTasks, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Title is required.") {
		t.Fatalf("error flag not surfaced:\n%s", html)
	}
}
