package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/lattice/hierarchy"
	"github.com/jacentio/lattice/model"
)

// pageOptions reads the pagination and sort query parameters. Bad numbers
// fall back to defaults; out-of-range limits are clamped by the engine.
func pageOptions(c *gin.Context) hierarchy.ListOptions {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	all, _ := strconv.ParseBool(c.Query("all"))
	folderLess, _ := strconv.ParseBool(c.Query("folderLess"))

	return hierarchy.ListOptions{
		Page:       page,
		Limit:      limit,
		SortProp:   c.Query("sortProp"),
		SortOrder:  c.Query("sortOrder"),
		All:        all,
		FolderLess: folderLess,
	}
}

func (s *Server) handleListFolders(c *gin.Context) {
	page, err := s.engine.ListFolders(c.Request.Context(), principal(c), pageOptions(c))
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleCreateFolder(c *gin.Context) {
	var in createFolderInput
	if err := decodeInput(c, &in); err != nil {
		s.respond(c, err)
		return
	}

	f, err := s.engine.CreateFolder(c.Request.Context(), principal(c), &model.Folder{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	})
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (s *Server) handleGetFolder(c *gin.Context) {
	f, err := s.engine.GetFolder(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) handleUpdateFolder(c *gin.Context) {
	var in updateFolderInput
	if err := decodeInput(c, &in); err != nil {
		s.respond(c, err)
		return
	}

	f, err := s.engine.UpdateFolder(c.Request.Context(), principal(c), c.Param("id"), hierarchy.FolderPatch{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	})
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) handleDeleteFolder(c *gin.Context) {
	keep, _ := strconv.ParseBool(c.Query("keep"))

	err := s.engine.DeleteFolder(c.Request.Context(), principal(c), c.Param("id"), keep)
	if err != nil {
		s.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Folder Removed Successfully"})
}
