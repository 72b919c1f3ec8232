package stub

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListNotifications(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, s.store.NotificationsFor(user.ID))
}

func (s *Server) handleMarkRead(c *gin.Context) {
	user := currentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || !s.store.MarkRead(id, user.ID) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "marked as read"})
}

func (s *Server) handleMarkAllRead(c *gin.Context) {
	user := currentUser(c)
	s.store.MarkAllRead(user.ID)
	c.JSON(http.StatusOK, gin.H{"status": "all marked as read"})
}
