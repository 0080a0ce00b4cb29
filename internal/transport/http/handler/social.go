// Package handler adapts HTTP requests onto the user and status operations.
package handler

import (
	"github.com/gin-gonic/gin"

	"go-socialnet/internal/domain"
	"go-socialnet/internal/loader"
	"go-socialnet/internal/service"
	resp "go-socialnet/internal/transport/http/response"
)

type Social struct {
	svc    *service.Social
	loader *loader.Loader
}

func NewSocial(svc *service.Social, ld *loader.Loader) *Social {
	return &Social{svc: svc, loader: ld}
}

type UserIn struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	UserName     string `json:"user_name"`
	UserLastName string `json:"user_last_name"`
}

type StatusIn struct {
	StatusID   string `json:"status_id"`
	UserID     string `json:"user_id"`
	StatusText string `json:"status_text"`
}

// Ack is the data of a successful write.
type Ack struct {
	ID string `json:"id"`
}

func (h *Social) AddUser(c *gin.Context, in *UserIn) (Ack, error) {
	if !h.svc.AddUser(c.Request.Context(), in.UserID, in.Email, in.UserName, in.UserLastName) {
		return Ack{}, resp.BadRequest("user not added")
	}
	return Ack{ID: in.UserID}, nil
}

// UpdateUser takes the id from the path; a user_id in the body is ignored.
func (h *Social) UpdateUser(c *gin.Context, in *UserIn) (Ack, error) {
	id := c.Param("id")
	if !h.svc.UpdateUser(c.Request.Context(), id, in.Email, in.UserName, in.UserLastName) {
		return Ack{}, resp.BadRequest("user not updated")
	}
	return Ack{ID: id}, nil
}

func (h *Social) DeleteUser(c *gin.Context, _ *struct{}) (Ack, error) {
	id := c.Param("id")
	if !h.svc.DeleteUser(c.Request.Context(), id) {
		return Ack{}, resp.NotFound("user not deleted")
	}
	return Ack{ID: id}, nil
}

func (h *Social) SearchUser(c *gin.Context, _ *struct{}) (*domain.User, error) {
	u := h.svc.SearchUser(c.Request.Context(), c.Param("id"))
	if u == nil {
		return nil, resp.NotFound("user not found")
	}
	return u, nil
}

func (h *Social) AddStatus(c *gin.Context, in *StatusIn) (Ack, error) {
	if !h.svc.AddStatus(c.Request.Context(), in.StatusID, in.UserID, in.StatusText) {
		return Ack{}, resp.BadRequest("status not added")
	}
	return Ack{ID: in.StatusID}, nil
}

func (h *Social) UpdateStatus(c *gin.Context, in *StatusIn) (Ack, error) {
	id := c.Param("id")
	if !h.svc.UpdateStatus(c.Request.Context(), id, in.UserID, in.StatusText) {
		return Ack{}, resp.BadRequest("status not updated")
	}
	return Ack{ID: id}, nil
}

func (h *Social) DeleteStatus(c *gin.Context, _ *struct{}) (Ack, error) {
	id := c.Param("id")
	if !h.svc.DeleteStatus(c.Request.Context(), id) {
		return Ack{}, resp.NotFound("status not deleted")
	}
	return Ack{ID: id}, nil
}

func (h *Social) SearchStatus(c *gin.Context, _ *struct{}) (*domain.Status, error) {
	st := h.svc.SearchStatus(c.Request.Context(), c.Param("id"))
	if st == nil {
		return nil, resp.NotFound("status not found")
	}
	return st, nil
}
