package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/domain"
	"github.com/smartagro/smartagro/internal/webserver"
)

type messageQuery struct {
	ChatType string `query:"chatType" validate:"omitempty,oneof=general direct"`
	Peer     string `query:"peer" validate:"omitempty,max=200"`
}

type taskQuery struct {
	Completed string `query:"completed" validate:"omitempty,oneof=true false"`
}

// registerDashboardRoutes registers the internal dashboard collections
func registerDashboardRoutes(s *webserver.Server) {
	s.ApiGET("/users", listUsers)
	s.ApiGET("/messages", listMessages)
	s.ApiGET("/tasks", listTasks)
}

func listUsers(c echo.Context) error {
	users, err := GetReader(c).Users(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}
	if users == nil {
		users = []domain.User{}
	}
	page, pageSize := parsePagination(c)
	start, end := pageSlice(len(users), page, pageSize)
	return paged(c, users[start:end], len(users), page, pageSize)
}

func listMessages(c echo.Context) error {
	var q messageQuery
	if err := bindQuery(c, &q); err != nil {
		return respond(c, err)
	}
	messages, err := GetReader(c).Messages(c.Request().Context(), catalog.MessageFilter{
		ChatType: q.ChatType,
		Peer:     q.Peer,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query messages", err.Error())
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return ok(c, messages)
}

func listTasks(c echo.Context) error {
	var q taskQuery
	if err := bindQuery(c, &q); err != nil {
		return respond(c, err)
	}
	tasks, err := GetReader(c).Tasks(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tasks", err.Error())
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Completed != "" && (q.Completed == "true") != t.Completed {
			continue
		}
		out = append(out, t)
	}
	return ok(c, out)
}
