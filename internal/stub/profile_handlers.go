package stub

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FryoPie/Student-portal/internal/models"
	"github.com/FryoPie/Student-portal/internal/validator"
)

func (s *Server) handleMyProfile(c *gin.Context) {
	user := currentUser(c)
	profile, ok := s.store.ProfileByUser(user.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handlePublicProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	profile, ok := s.store.ProfileByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	user := currentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	existing, ok := s.store.ProfileByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if existing.User.ID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"detail": "You do not have permission to perform this action.",
		})
		return
	}

	var req validator.ProfileUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body"})
		return
	}
	if verrs := s.validate.Validate(req); verrs != nil {
		c.JSON(http.StatusBadRequest, verrs.Fields())
		return
	}

	pictureURL := ""
	if fh, err := c.FormFile("profile_picture"); err == nil {
		pictureURL, err = s.saveUpload(fh, "profile_pictures")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Upload failed"})
			return
		}
	}

	// PATCH semantics: only fields present in the form are applied.
	posted := func(key string) bool {
		_, ok := c.GetPostForm(key)
		return ok
	}
	updated, _ := s.store.UpdateProfile(id, func(p *models.StudentProfile) {
		if posted("bio") {
			p.Bio = req.Bio
		}
		if posted("department") {
			p.Department = req.Department
		}
		if posted("year") {
			p.Year = req.Year
		}
		if posted("cgpa") {
			p.CGPA = req.CGPA
		}
		if posted("phone") {
			p.Phone = req.Phone
		}
		if posted("linkedin_url") {
			p.LinkedinURL = req.LinkedinURL
		}
		if posted("github_url") {
			p.GithubURL = req.GithubURL
		}
		if pictureURL != "" {
			p.ProfilePicture = pictureURL
		}
	})
	c.JSON(http.StatusOK, updated)
}

// saveUpload keeps the file bytes in memory and returns the media URL they
// are served under.
func (s *Server) saveUpload(fh *multipart.FileHeader, prefix string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%s", prefix, uuid.New().String()[:8], filepath.Base(fh.Filename))
	s.store.PutFile(name, data)
	return "/media/" + name, nil
}
