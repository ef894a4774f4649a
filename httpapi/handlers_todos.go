package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/lattice/hierarchy"
	"github.com/jacentio/lattice/model"
)

func (s *Server) handleListTodos(c *gin.Context) {
	todos, err := s.engine.TodosInList(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(c *gin.Context) {
	var in createTodoInput
	if err := decodeInput(c, &in); err != nil {
		s.respond(c, err)
		return
	}

	t, err := s.engine.CreateTodo(c.Request.Context(), principal(c), c.Param("id"), &model.Todo{
		Description: in.Description,
		Checked:     in.Checked,
	})
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) handleGetTodo(c *gin.Context) {
	t, err := s.engine.GetTodo(c.Request.Context(), principal(c), c.Param("id"), c.Param("todoId"))
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleUpdateTodo(c *gin.Context) {
	var in updateTodoInput
	if err := decodeInput(c, &in); err != nil {
		s.respond(c, err)
		return
	}

	t, err := s.engine.UpdateTodo(c.Request.Context(), principal(c), c.Param("id"), c.Param("todoId"), hierarchy.TodoPatch{
		Description: in.Description,
		Checked:     in.Checked,
	})
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleDeleteTodo(c *gin.Context) {
	err := s.engine.DeleteTodo(c.Request.Context(), principal(c), c.Param("id"), c.Param("todoId"))
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo Deleted Successfully"})
}
