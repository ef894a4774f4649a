package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/lattice/fault"
)

func (s *Server) handleSendMail(c *gin.Context) {
	var in sendMailInput
	if err := decodeInput(c, &in); err != nil {
		s.respond(c, err)
		return
	}

	p := principal(c)
	subject := fmt.Sprintf("Todo Desktop Bug Report, User: %s", p.Username)

	if err := s.mailer.Send(c.Request.Context(), subject, in.Message); err != nil {
		s.respond(c, fault.Transient(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
}
