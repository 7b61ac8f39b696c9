package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/teamspace/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Project  *apiHandler.ProjectHandler
	Task     *apiHandler.TaskHandler
	Subtask  *apiHandler.SubtaskHandler
	Message  *apiHandler.MessageHandler
	Activity *apiHandler.ActivityHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/projects", authMiddleware(handlers.Project.List))
	r.POST("/api/v1/projects", authMiddleware(handlers.Project.Create))
	r.GET("/api/v1/projects/{id}", authMiddleware(handlers.Project.Get))
	r.DELETE("/api/v1/projects/{id}", authMiddleware(handlers.Project.Delete))
	r.GET("/api/v1/projects/{id}/attachments", authMiddleware(handlers.Project.Attachments))

	r.POST("/api/v1/projects/{id}/tasks", authMiddleware(handlers.Task.Create))
	r.PUT("/api/v1/projects/{id}/tasks/{taskID}", authMiddleware(handlers.Task.Update))
	r.DELETE("/api/v1/projects/{id}/tasks/{taskID}", authMiddleware(handlers.Task.Delete))
	r.POST("/api/v1/projects/{id}/tasks/{taskID}/toggle", authMiddleware(handlers.Task.Toggle))
	r.POST("/api/v1/projects/{id}/tasks/{taskID}/accept", authMiddleware(handlers.Task.Accept))
	r.POST("/api/v1/projects/{id}/tasks/{taskID}/decline", authMiddleware(handlers.Task.Decline))
	r.POST("/api/v1/projects/{id}/tasks/{taskID}/question", authMiddleware(handlers.Task.Question))
	r.POST("/api/v1/projects/{id}/tasks/{taskID}/read", authMiddleware(handlers.Task.MarkRead))

	r.POST("/api/v1/projects/{id}/tasks/{taskID}/subtasks", authMiddleware(handlers.Subtask.Add))
	r.PUT("/api/v1/projects/{id}/tasks/{taskID}/subtasks/{subtaskID}", authMiddleware(handlers.Subtask.Update))
	r.DELETE("/api/v1/projects/{id}/tasks/{taskID}/subtasks/{subtaskID}", authMiddleware(handlers.Subtask.Delete))
	r.POST("/api/v1/projects/{id}/tasks/{taskID}/subtasks/{subtaskID}/toggle", authMiddleware(handlers.Subtask.Toggle))
	r.POST("/api/v1/projects/{id}/tasks/{taskID}/subtasks/{subtaskID}/assignee", authMiddleware(handlers.Subtask.ToggleAssignee))

	r.GET("/api/v1/projects/{id}/messages", authMiddleware(handlers.Message.List))
	r.POST("/api/v1/projects/{id}/messages", authMiddleware(handlers.Message.Send))
	r.POST("/api/v1/projects/{id}/attachments", authMiddleware(handlers.Message.AddAttachments))

	r.GET("/api/v1/activities", authMiddleware(handlers.Activity.Feed))
	r.GET("/api/v1/inbox", authMiddleware(handlers.Task.Inbox))

	return r
}
