package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/lattice/hierarchy"
	"github.com/jacentio/lattice/model"
)

func (s *Server) handleListLists(c *gin.Context) {
	page, err := s.engine.ListLists(c.Request.Context(), principal(c), pageOptions(c))
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleCreateList(c *gin.Context) {
	var in createListInput
	if err := decodeInput(c, &in); err != nil {
		s.respond(c, err)
		return
	}

	l, err := s.engine.CreateList(c.Request.Context(), principal(c), &model.List{
		Name:      in.Name,
		Image:     in.Image,
		Container: in.Container,
	})
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (s *Server) handleGetList(c *gin.Context) {
	l, err := s.engine.GetList(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (s *Server) handleUpdateList(c *gin.Context) {
	var in updateListInput
	if err := decodeInput(c, &in); err != nil {
		s.respond(c, err)
		return
	}

	patch := hierarchy.ListPatch{
		Name:  in.Name,
		Image: in.Image,
	}
	if in.Container.Set {
		patch.Container = &in.Container.Value
	}

	l, err := s.engine.UpdateList(c.Request.Context(), principal(c), c.Param("id"), patch)
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (s *Server) handleDeleteList(c *gin.Context) {
	err := s.engine.DeleteList(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo List Removed Successfully"})
}

func (s *Server) handleDownloadList(c *gin.Context) {
	body, err := s.engine.ExportList(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		s.respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", hierarchy.ExportFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
