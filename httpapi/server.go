// Package httpapi maps the HTTP surface onto the hierarchy engine.
//
// Handlers parse and validate input, delegate to the engine, and translate
// faults into status codes. No resource policy lives here.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/hierarchy"
	"github.com/jacentio/lattice/mail"
)

// Server holds the collaborators the handlers need.
type Server struct {
	engine *hierarchy.Engine
	tokens *auth.Tokens
	mailer mail.Sender
	logger *slog.Logger
}

// New creates a Server.
func New(engine *hierarchy.Engine, tokens *auth.Tokens, mailer mail.Sender, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine: engine,
		tokens: tokens,
		mailer: mailer,
		logger: logger,
	}
}

// Router builds the route table.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.GET("/verify", s.requireAuth(), s.handleVerify)
	}

	api := r.Group("/api", s.requireAuth())
	{
		folder := api.Group("/folder")
		{
			folder.GET("", s.handleListFolders)
			folder.POST("", s.handleCreateFolder)
			folder.GET("/:id", s.handleGetFolder)
			folder.PATCH("/:id", s.handleUpdateFolder)
			folder.DELETE("/:id", s.handleDeleteFolder)
		}

		lists := api.Group("/todos")
		{
			lists.GET("", s.handleListLists)
			lists.POST("", s.handleCreateList)
			lists.GET("/:id", s.handleGetList)
			lists.PATCH("/:id", s.handleUpdateList)
			lists.DELETE("/:id", s.handleDeleteList)
			lists.GET("/:id/download", s.handleDownloadList)

			todos := lists.Group("/:id/todo")
			{
				todos.GET("", s.handleListTodos)
				todos.POST("", s.handleCreateTodo)
				todos.GET("/:todoId", s.handleGetTodo)
				todos.PATCH("/:todoId", s.handleUpdateTodo)
				todos.DELETE("/:todoId", s.handleDeleteTodo)
			}
		}

		api.POST("/services/sendMail", s.handleSendMail)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}
