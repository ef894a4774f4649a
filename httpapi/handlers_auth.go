package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/lattice/model"
)

// signedUser is the payload returned by register and login.
type signedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
	TokenExp int64  `json:"tokenExp"`
}

func (s *Server) signed(c *gin.Context, u *model.User) (signedUser, bool) {
	token, exp, err := s.tokens.Sign(u)
	if err != nil {
		s.respond(c, err)
		return signedUser{}, false
	}
	return signedUser{
		ID:       u.ID,
		Username: u.Username,
		Token:    token,
		TokenExp: exp.UnixMilli(),
	}, true
}

func (s *Server) handleRegister(c *gin.Context) {
	var in registerInput
	if err := decodeInput(c, &in); err != nil {
		s.respond(c, err)
		return
	}

	u, err := s.engine.Register(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		s.respond(c, err)
		return
	}

	out, ok := s.signed(c, u)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleLogin(c *gin.Context) {
	var in loginInput
	if err := decodeInput(c, &in); err != nil {
		s.respond(c, err)
		return
	}

	u, err := s.engine.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		s.respond(c, err)
		return
	}

	out, ok := s.signed(c, u)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleVerify(c *gin.Context) {
	c.JSON(http.StatusOK, principal(c))
}
