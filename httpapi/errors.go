package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/lattice/fault"
)

// respond translates the fault taxonomy into the HTTP contract. This is the
// only place status codes are chosen; the core never sees HTTP.
func (s *Server) respond(c *gin.Context, err error) {
	f := fault.As(err)
	if f == nil {
		f = fault.Transient(err)
	}

	switch f.Kind {
	case fault.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"message": f.Message})
	case fault.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"message": f.Message})
	case fault.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": f.Message})
	case fault.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"message": f.Message})
	case fault.KindValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": f.Fields})
	default:
		s.logger.Error("request failed", "path", c.FullPath(), "error", f.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
