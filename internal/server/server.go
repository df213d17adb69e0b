// Package server is the record store's REST surface: CRUD over /todos,
// consumed by the Sync Gateway. Error bodies carry a `detail` string the
// client surfaces verbatim.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"taskdeck/internal/model"
	"taskdeck/internal/store"
)

type Server struct {
	db *store.DB
	e  *echo.Echo
}

func New(db *store.DB) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger)

	s := &Server{db: db, e: e}
	e.GET("/todos", s.listTodos)
	e.POST("/todos", s.createTodo)
	e.PUT("/todos/:id", s.updateTodo)
	e.DELETE("/todos/:id", s.deleteTodo)
	return s
}

// Handler exposes the routing tree for tests and embedding.
func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) Start(addr string) error {
	log.WithField("addr", addr).Info("record store listening")
	return s.e.Start(addr)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		log.WithFields(log.Fields{
			"method":  c.Request().Method,
			"path":    c.Request().URL.Path,
			"status":  c.Response().Status,
			"elapsed": time.Since(start).String(),
		}).Debug("request")
		return err
	}
}

// detail is the error body shape the client understands.
func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"detail": msg})
}

func (s *Server) listTodos(c echo.Context) error {
	sortField := c.QueryParam("sort")
	if sortField == "" {
		sortField = string(model.SortDueDate)
	}
	order := c.QueryParam("order")
	if order == "" {
		order = string(model.OrderAsc)
	}

	if !store.ValidListSort(sortField) {
		return detail(c, http.StatusBadRequest, "Invalid sort field")
	}
	if order != string(model.OrderAsc) && order != string(model.OrderDesc) {
		return detail(c, http.StatusBadRequest, "Invalid order")
	}

	tasks, err := s.db.ListTodos(c.Request().Context(), sortField, order, c.QueryParam("assignee"))
	if err != nil {
		log.WithError(err).Error("list todos")
		return detail(c, http.StatusInternalServerError, "Internal error")
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

type todoPayload struct {
	DueDate   string `json:"due_date"`
	Title     string `json:"title"`
	Assignee  string `json:"assignee"`
	Completed bool   `json:"completed"`
	Favorite  bool   `json:"favorite"`
}

func (p todoPayload) validate() string {
	if p.DueDate == "" || p.Title == "" || p.Assignee == "" {
		return "due_date, title and assignee are required"
	}
	if _, err := time.Parse(model.DateLayout, p.DueDate); err != nil {
		return "Invalid due_date"
	}
	return ""
}

func (p todoPayload) task() model.Task {
	return model.Task{
		DueDate:   p.DueDate,
		Title:     p.Title,
		Assignee:  p.Assignee,
		Completed: p.Completed,
		Favorite:  p.Favorite,
	}
}

func (s *Server) createTodo(c echo.Context) error {
	var p todoPayload
	if err := c.Bind(&p); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := p.validate(); msg != "" {
		return detail(c, http.StatusUnprocessableEntity, msg)
	}
	created, err := s.db.CreateTodo(c.Request().Context(), p.task())
	if err != nil {
		log.WithError(err).Error("create todo")
		return detail(c, http.StatusInternalServerError, "Internal error")
	}
	return c.JSON(http.StatusOK, created)
}

func (s *Server) updateTodo(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return detail(c, http.StatusBadRequest, "Invalid id")
	}
	var p todoPayload
	if err := c.Bind(&p); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := p.validate(); msg != "" {
		return detail(c, http.StatusUnprocessableEntity, msg)
	}
	updated, err := s.db.UpdateTodo(c.Request().Context(), id, p.task())
	if errors.Is(err, store.ErrNotFound) {
		return detail(c, http.StatusNotFound, "Todo not found")
	}
	if err != nil {
		log.WithError(err).Error("update todo")
		return detail(c, http.StatusInternalServerError, "Internal error")
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteTodo(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return detail(c, http.StatusBadRequest, "Invalid id")
	}
	err = s.db.DeleteTodo(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return detail(c, http.StatusNotFound, "Todo not found")
	}
	if err != nil {
		log.WithError(err).Error("delete todo")
		return detail(c, http.StatusInternalServerError, "Internal error")
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
