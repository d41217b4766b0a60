package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobtasks/dashboard/internal/adapters/export"
	"github.com/jobtasks/dashboard/internal/application/controllers"
	"github.com/jobtasks/dashboard/internal/application/state"
	"github.com/jobtasks/dashboard/internal/application/views"
	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/ports"
)

// CalendarTokenHeader carries the user's Google access token.
const CalendarTokenHeader = "X-Calendar-Token"

// StateProvider resolves the application state of a signed-in user.
type StateProvider interface {
	For(ctx context.Context, userID string) (*state.AppState, error)
}

type base struct {
	states StateProvider
	logger *logger.Logger
	now    func() time.Time
}

func (b *base) state(c echo.Context) (*state.AppState, error) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return nil, entities.ErrUnauthenticated
	}
	return b.states.For(c.Request().Context(), userID)
}

// TaskHandler handles task-related requests
type TaskHandler struct {
	base
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(states StateProvider, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{base{states: states, logger: logger.WithComponent("tasks"), now: time.Now}}
}

// ListTasks godoc
// @Summary List tasks
// @Description Tasks of the current user, newest first, optionally filtered by a search term
// @Tags tasks
// @Produce json
// @Param q query string false "search term"
// @Success 200 {array} entities.Task
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views.Filter(st.Tasks.Tasks(), c.QueryParam("q")))
}

// GetTask returns one task from the current collection.
func (h *TaskHandler) GetTask(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	task, ok := st.Tasks.Get(c.Param("id"))
	if !ok {
		return entities.ErrTaskNotFound
	}
	return c.JSON(http.StatusOK, task)
}

// NewDraft returns the blank editor form with its defaults.
func (h *TaskHandler) NewDraft(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	editor, err := st.Editor("", h.now)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, editor.Draft)
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body controllers.Draft true "editor form"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	editor, err := st.Editor("", h.now)
	if err != nil {
		return err
	}
	if err := bindDraft(c, &editor.Draft); err != nil {
		return err
	}

	task, err := editor.Submit(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// SaveTask godoc
// @Summary Save an edited task
// @Description Only the fields that differ from the stored task are sent to the store
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "task id"
// @Param task body controllers.Draft true "editor form"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) SaveTask(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	editor, err := st.Editor(c.Param("id"), h.now)
	if err != nil {
		return err
	}
	if err := bindDraft(c, &editor.Draft); err != nil {
		return err
	}

	task, err := editor.Submit(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// PatchTask godoc
// @Summary Apply a sparse update
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "task id"
// @Param patch body PatchTaskRequest true "fields to change"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id} [patch]
func (h *TaskHandler) PatchTask(c echo.Context) error {
	var req PatchTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	patch, err := req.Patch()
	if err != nil {
		return err
	}

	st, err := h.state(c)
	if err != nil {
		return err
	}
	task, err := st.Tasks.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Param id path string true "task id"
// @Param confirm query bool true "must be true"
// @Success 204
// @Failure 428 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	if err := st.Board.DeleteTask(c.Request().Context(), c.Param("id"), confirmed(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh reloads both collections from the store. On failure the previous
// contents are kept and the error is reported.
func (h *TaskHandler) Refresh(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	if err := st.Load(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "reloaded"})
}

// BoardHandler serves the kanban view.
type BoardHandler struct {
	base
}

func NewBoardHandler(states StateProvider, logger *logger.Logger) *BoardHandler {
	return &BoardHandler{base{states: states, logger: logger.WithComponent("board"), now: time.Now}}
}

// GetBoard godoc
// @Summary Tasks grouped into status lanes
// @Tags board
// @Produce json
// @Param q query string false "search term"
// @Success 200 {object} views.Board
// @Security BearerAuth
// @Router /board [get]
func (h *BoardHandler) GetBoard(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views.GroupByStatus(views.Filter(st.Tasks.Tasks(), c.QueryParam("q"))))
}

// MoveCard godoc
// @Summary Apply the end of a drag gesture
// @Tags board
// @Accept json
// @Produce json
// @Param move body controllers.DragEndEvent true "drag end"
// @Success 200 {object} MoveResponse
// @Security BearerAuth
// @Router /board/moves [post]
func (h *BoardHandler) MoveCard(c echo.Context) error {
	var ev controllers.DragEndEvent
	if err := c.Bind(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&ev); err != nil {
		return err
	}

	st, err := h.state(c)
	if err != nil {
		return err
	}
	moved, err := st.Board.HandleDragEnd(c.Request().Context(), ev)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MoveResponse{Moved: moved, Board: views.GroupByStatus(st.Tasks.Tasks())})
}

// GetAnalytics godoc
// @Summary Counts and shares over the whole collection
// @Tags board
// @Produce json
// @Success 200 {object} views.Analytics
// @Security BearerAuth
// @Router /analytics [get]
func (h *BoardHandler) GetAnalytics(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views.Summarize(st.Tasks.Tasks(), h.now()))
}

// DocumentHandler handles document link requests
type DocumentHandler struct {
	base
}

func NewDocumentHandler(states StateProvider, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{base{states: states, logger: logger.WithComponent("documents"), now: time.Now}}
}

// ListDocuments godoc
// @Summary List document links
// @Tags documents
// @Produce json
// @Success 200 {array} entities.DocumentLink
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st.Documents.Documents())
}

// AddDocument godoc
// @Summary Link a document
// @Description The title and type are derived from the URL when no title is given
// @Tags documents
// @Accept json
// @Produce json
// @Param document body AddDocumentRequest true "link"
// @Success 201 {object} entities.DocumentLink
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) AddDocument(c echo.Context) error {
	var req AddDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	st, err := h.state(c)
	if err != nil {
		return err
	}
	doc, err := st.Documents.AddDocument(c.Request().Context(), req.URL, req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// RemoveDocument godoc
// @Summary Remove a document link
// @Tags documents
// @Param id path string true "document id"
// @Param confirm query bool true "must be true"
// @Success 204
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) RemoveDocument(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	if err := st.Links.Remove(c.Request().Context(), c.Param("id"), confirmed(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportHandler streams the collection as a download.
type ExportHandler struct {
	base
	writeCSV func(w io.Writer, tasks []entities.Task) error
	writePDF func(w io.Writer, tasks []entities.Task, now time.Time) error
}

func NewExportHandler(states StateProvider, logger *logger.Logger) *ExportHandler {
	return &ExportHandler{
		base:     base{states: states, logger: logger.WithComponent("export"), now: time.Now},
		writeCSV: export.WriteCSV,
		writePDF: export.WritePDF,
	}
}

// ExportCSV godoc
// @Summary Download tasks as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /export/tasks.csv [get]
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.writeCSV(&buf, st.Tasks.Tasks()); err != nil {
		h.logger.Errorw("CSV export failed", "error", err, "user_id", st.UserID)
		return err
	}
	return h.attachment(c, "text/csv;charset=utf-8", export.CSVFilename(h.now()), buf.Bytes())
}

// ExportPDF godoc
// @Summary Download a PDF task report
// @Tags export
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /export/tasks.pdf [get]
func (h *ExportHandler) ExportPDF(c echo.Context) error {
	st, err := h.state(c)
	if err != nil {
		return err
	}
	now := h.now()
	var buf bytes.Buffer
	if err := h.writePDF(&buf, st.Tasks.Tasks(), now); err != nil {
		h.logger.Errorw("PDF export failed", "error", err, "user_id", st.UserID)
		return err
	}
	return h.attachment(c, "application/pdf", export.PDFFilename(now), buf.Bytes())
}

// attachment sends a fully rendered file, so a failed render never leaves a
// committed 200 behind.
func (h *ExportHandler) attachment(c echo.Context, contentType, filename string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, body)
}

// CalendarHandler proxies the read-only calendar feed.
type CalendarHandler struct {
	source ports.CalendarSource
	logger *logger.Logger
}

func NewCalendarHandler(source ports.CalendarSource, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{source: source, logger: logger.WithComponent("calendar")}
}

// UpcomingEvents godoc
// @Summary Upcoming calendar events
// @Tags calendar
// @Produce json
// @Param X-Calendar-Token header string true "Google OAuth access token"
// @Success 200 {array} entities.CalendarEvent
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /calendar/events [get]
func (h *CalendarHandler) UpcomingEvents(c echo.Context) error {
	events, err := h.source.Upcoming(c.Request().Context(), c.Request().Header.Get(CalendarTokenHeader))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Utility functions

func bindDraft(c echo.Context, draft *controllers.Draft) error {
	if err := c.Bind(draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return c.Validate(draft)
}

func confirmed(c echo.Context) controllers.Answer {
	return controllers.Answer(strings.EqualFold(c.QueryParam("confirm"), "true"))
}

func getUserIDFromContext(c echo.Context) string {
	if userID, ok := c.Get(UserContextKey).(string); ok {
		return userID
	}
	return ""
}
