package stub

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FryoPie/Student-portal/internal/models"
	"github.com/FryoPie/Student-portal/internal/validator"
)

func (s *Server) handleListAchievements(c *gin.Context) {
	var studentID int64
	if raw := c.Query("student_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"student_id": []string{"Enter a number."}})
			return
		}
		studentID = id
	}
	status := models.AchievementStatus(c.Query("status"))
	c.JSON(http.StatusOK, s.store.ListAchievements(studentID, status))
}

func (s *Server) handleMyAchievements(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, s.store.ListAchievements(user.ID, ""))
}

func (s *Server) handlePendingAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListAchievements(0, models.StatusPending))
}

func (s *Server) handleCreateAchievement(c *gin.Context) {
	user := currentUser(c)

	var req validator.AchievementRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body"})
		return
	}
	if verrs := s.validate.Validate(req); verrs != nil {
		c.JSON(http.StatusBadRequest, verrs.Fields())
		return
	}

	proofURL := ""
	if fh, err := c.FormFile("proof_document"); err == nil {
		var uerr error
		proofURL, uerr = s.saveUpload(fh, "achievement_proofs")
		if uerr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Upload failed"})
			return
		}
	}

	created := s.store.CreateAchievement(models.Achievement{
		Student:         user.ID,
		StudentName:     user.StudentID,
		StudentID:       user.ID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        models.AchievementCategory(req.Category),
		Status:          models.StatusPending,
		ProofDocument:   proofURL,
		AchievementDate: req.AchievementDate,
	})
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleEditAchievement(c *gin.Context) {
	user := currentUser(c)
	achievement, ok := s.achievementFromPath(c)
	if !ok {
		return
	}
	if achievement.Student != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"detail": "You do not have permission to perform this action.",
		})
		return
	}
	if achievement.Status != models.StatusPending {
		c.JSON(http.StatusForbidden, gin.H{
			"detail": "Only pending achievements can be edited.",
		})
		return
	}

	var req validator.AchievementRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body"})
		return
	}
	if verrs := s.validate.Validate(req); verrs != nil {
		c.JSON(http.StatusBadRequest, verrs.Fields())
		return
	}

	proofURL := ""
	if fh, err := c.FormFile("proof_document"); err == nil {
		var uerr error
		proofURL, uerr = s.saveUpload(fh, "achievement_proofs")
		if uerr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Upload failed"})
			return
		}
	}

	updated, _ := s.store.UpdateAchievement(achievement.ID, func(a *models.Achievement) {
		a.Title = req.Title
		a.Description = req.Description
		a.Category = models.AchievementCategory(req.Category)
		a.AchievementDate = req.AchievementDate
		if proofURL != "" {
			a.ProofDocument = proofURL
		}
	})
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteAchievement(c *gin.Context) {
	user := currentUser(c)
	achievement, ok := s.achievementFromPath(c)
	if !ok {
		return
	}
	if achievement.Student != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"detail": "You do not have permission to perform this action.",
		})
		return
	}
	if achievement.Status != models.StatusPending {
		c.JSON(http.StatusForbidden, gin.H{
			"detail": "Only pending achievements can be deleted.",
		})
		return
	}

	s.store.DeleteAchievement(achievement.ID)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleVerifyAchievement(c *gin.Context) {
	coordinator := currentUser(c)
	achievement, ok := s.achievementFromPath(c)
	if !ok {
		return
	}

	var req validator.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body"})
		return
	}
	if verrs := s.validate.Validate(req); verrs != nil {
		c.JSON(http.StatusBadRequest, verrs.Fields())
		return
	}

	newStatus := models.AchievementStatus(req.Status)
	statusChanged := achievement.Status != newStatus

	updated, _ := s.store.UpdateAchievement(achievement.ID, func(a *models.Achievement) {
		a.Status = newStatus
		a.VerifiedBy = &coordinator.ID
		a.VerifiedByName = coordinator.StudentID
		a.VerificationNotes = req.VerificationNotes
	})

	// The production service creates the student's notification through a
	// post-save signal; the stub mirrors that with a status-change event.
	if statusChanged {
		if err := s.notifier.Publish(StatusChangedEvent{
			AchievementID: updated.ID,
			StudentID:     updated.Student,
			Title:         updated.Title,
			Status:        updated.Status,
			Notes:         updated.VerificationNotes,
		}); err != nil {
			s.logger.Error("failed to publish status event", "error", err)
		}
	}

	c.JSON(http.StatusOK, updated)
}

func (s *Server) achievementFromPath(c *gin.Context) (models.Achievement, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return models.Achievement{}, false
	}
	achievement, ok := s.store.AchievementByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return models.Achievement{}, false
	}
	return achievement, true
}
