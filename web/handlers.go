package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard/domain"
	"taskboard/render"
)

const (
	tasksPath         = "/tasks"
	sessionCookie     = "session"
	errorFlagRequired = "required"
	notFoundMessage   = "task not found"
)

// Register wires all routes on the provided Echo instance.
func Register(e *echo.Echo, store TaskStore, renderer Renderer, emitter Emitter, logger *log.Logger) {
	h := &handlers{
		store:    store,
		render:   renderer,
		dispatch: dispatcher{render: renderer},
		emitter:  emitter,
		logger:   logger,
	}

	e.Use(ClassifyMode())

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, tasksPath)
	})
	e.GET("/tasks", h.listTasks)
	e.POST("/tasks", h.createTask)
	e.POST("/tasks/:id/delete", h.deleteTask)
	e.GET("/tasks/:id/edit", h.editTaskForm)
	e.PATCH("/tasks/:id", h.updateTask)
	e.GET("/tasks/:id/view", h.viewTask)
	e.GET("/healthz", h.healthz)
}

type handlers struct {
	store    TaskStore
	render   Renderer
	dispatch dispatcher
	emitter  Emitter
	logger   *log.Logger
}

// listView feeds the full list page.
type listView struct {
	Tasks []domain.Task
	Query string
	Error string
}

// validateTitle normalizes a submitted title. It trims surrounding
// whitespace and rejects the input only when nothing remains; length
// and charset are deliberately unconstrained.
func validateTitle(raw string) (string, bool) {
	title := strings.TrimSpace(raw)
	return title, title != ""
}

// sessionID reads the session cookie, falling back to "anon". Issuing
// the cookie is the hosting layer's concern.
func sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return anonSession
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// filterTasks keeps tasks whose title contains query case-insensitively,
// preserving order. Filtering is layered above the store on purpose.
func filterTasks(tasks []domain.Task, query string) []domain.Task {
	q := strings.ToLower(query)
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) {
			out = append(out, t)
		}
	}
	return out
}

func (h *handlers) healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// listTasks renders the full list page. Only the filtered read is
// measured: an unfiltered list emits no telemetry, a non-empty query
// emits one filter event. That asymmetry is deliberate.
func (h *handlers) listTasks(c echo.Context) error {
	mode := requestMode(c)
	query := strings.TrimSpace(c.QueryParam("query"))

	var tel *actionTelemetry
	if query != "" {
		tel, _ = newActionTelemetry(c.Request().Context(), h.logger, h.emitter, sessionID(c), ActionFilter)
	}

	tasks := h.store.List()
	if query != "" {
		tasks = filterTasks(tasks, query)
	}

	body, err := h.render.Render(render.ViewTasks, listView{
		Tasks: tasks,
		Query: query,
		Error: c.QueryParam("error"),
	})
	if err != nil {
		tel.Done(http.StatusInternalServerError, OutcomeError, mode)
		return err
	}
	tel.Done(http.StatusOK, OutcomeSuccess, mode)
	return c.HTML(http.StatusOK, body)
}

func (h *handlers) createTask(c echo.Context) error {
	mode := requestMode(c)
	tel, _ := newActionTelemetry(c.Request().Context(), h.logger, h.emitter, sessionID(c), ActionAdd)

	title, ok := validateTitle(c.FormValue("title"))
	if !ok {
		resp, err := h.dispatch.failure(mode, "Title is required.", errorFlagRequired)
		if err != nil {
			tel.Done(http.StatusInternalServerError, OutcomeError, mode)
			return err
		}
		tel.Done(resp.status, OutcomeError, mode)
		return resp.send(c)
	}

	task := h.store.Create(title)
	fragment, err := h.render.Render(render.ViewTaskItem, task)
	if err != nil {
		tel.Done(http.StatusInternalServerError, OutcomeError, mode)
		return err
	}

	resp, err := h.dispatch.success(mode, http.StatusCreated, fragment, fmt.Sprintf("Added %q.", task.Title), tasksPath)
	if err != nil {
		tel.Done(http.StatusInternalServerError, OutcomeError, mode)
		return err
	}
	tel.Done(resp.status, OutcomeSuccess, mode)
	return resp.send(c)
}

// deleteTask removes a task. A missing id is not an error: the client
// wanted it gone and it is, so the request succeeds with a distinct
// message.
func (h *handlers) deleteTask(c echo.Context) error {
	mode := requestMode(c)
	tel, _ := newActionTelemetry(c.Request().Context(), h.logger, h.emitter, sessionID(c), ActionDelete)

	message := "Task was already removed."
	if id, err := parseID(c); err == nil {
		title := ""
		if task, ok := h.store.Find(id); ok {
			title = task.Title
		}
		if h.store.Delete(id) && title != "" {
			message = fmt.Sprintf("Deleted %q.", title)
		}
	}

	resp, err := h.dispatch.success(mode, http.StatusOK, "", message, tasksPath)
	if err != nil {
		tel.Done(http.StatusInternalServerError, OutcomeError, mode)
		return err
	}
	tel.Done(resp.status, OutcomeSuccess, mode)
	return resp.send(c)
}

// editTaskForm returns the inline edit form. Unknown ids short-circuit
// to a plain 404, outside the fragment/redirect decision table and
// without telemetry.
func (h *handlers) editTaskForm(c echo.Context) error {
	task, ok := h.findTask(c)
	if !ok {
		return c.String(http.StatusNotFound, notFoundMessage)
	}
	body, err := h.render.Render(render.ViewTaskEdit, task)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, body)
}

// viewTask re-renders one task item, used by the edit form's cancel
// affordance.
func (h *handlers) viewTask(c echo.Context) error {
	task, ok := h.findTask(c)
	if !ok {
		return c.String(http.StatusNotFound, notFoundMessage)
	}
	body, err := h.render.Render(render.ViewTaskItem, task)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, body)
}

// updateTask replaces a task's title. The edit form skips title
// validation: a blank title is accepted and stored as submitted, which
// mirrors the create/edit discrepancy of the original board behavior.
func (h *handlers) updateTask(c echo.Context) error {
	if _, ok := h.findTask(c); !ok {
		return c.String(http.StatusNotFound, notFoundMessage)
	}

	mode := requestMode(c)
	tel, _ := newActionTelemetry(c.Request().Context(), h.logger, h.emitter, sessionID(c), ActionEdit)

	id, _ := parseID(c)
	task, ok := h.store.Update(id, c.FormValue("title"))
	if !ok {
		// Deleted between the lookup and the write; treat like the
		// not-found path but keep the already-opened event.
		tel.Done(http.StatusNotFound, OutcomeError, mode)
		return c.String(http.StatusNotFound, notFoundMessage)
	}

	fragment, err := h.render.Render(render.ViewTaskItem, task)
	if err != nil {
		tel.Done(http.StatusInternalServerError, OutcomeError, mode)
		return err
	}

	resp, err := h.dispatch.success(mode, http.StatusOK, fragment, fmt.Sprintf("Updated %q.", task.Title), "")
	if err != nil {
		tel.Done(http.StatusInternalServerError, OutcomeError, mode)
		return err
	}
	tel.Done(resp.status, OutcomeSuccess, mode)
	return resp.send(c)
}

func (h *handlers) findTask(c echo.Context) (domain.Task, bool) {
	id, err := parseID(c)
	if err != nil {
		return domain.Task{}, false
	}
	return h.store.Find(id)
}
