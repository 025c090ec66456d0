package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"memorial-backend/internal/domains/profile/model"
	"memorial-backend/internal/domains/profile/service"
	"memorial-backend/internal/shared/middleware"
	"memorial-backend/internal/shared/response"
)

// PhotoStorage uploads photo binaries to object storage and returns the
// stored filename/URL.
type PhotoStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type ProfileHandler struct {
	profileService service.ProfileService
	photos         PhotoStorage // optional, nil disables uploads
}

func NewProfileHandler(profileService service.ProfileService, photos PhotoStorage) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		photos:         photos,
	}
}

// =====================================================
// PROFILE LIFECYCLE
// =====================================================

// Create creates a new memorial profile
// POST /api/v1/profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	var req model.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), middleware.CallerEmail(c), req)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, profile)
}

// List returns public summaries of all profiles
// GET /api/v1/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	summaries, err := h.profileService.List(c.Request.Context())
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summaries)
}

// Get returns one profile by slug
// GET /api/v1/profiles/:slug
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// Update edits profile content fields
// PUT /api/v1/profiles/:slug
func (h *ProfileHandler) Update(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c), req)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// Delete removes a profile and everything nested in it
// DELETE /api/v1/profiles/:slug
func (h *ProfileHandler) Delete(c *gin.Context) {
	err := h.profileService.Delete(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}

// LightCandle bumps the candle counter
// POST /api/v1/profiles/:slug/candle
func (h *ProfileHandler) LightCandle(c *gin.Context) {
	candles, err := h.profileService.LightCandle(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"candles": candles})
}

// SetAftercarePlan stores the aftercare plan
// PUT /api/v1/profiles/:slug/aftercare
func (h *ProfileHandler) SetAftercarePlan(c *gin.Context) {
	var req model.AftercarePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.SetAftercarePlan(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c), req)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile.AftercarePlan)
}

// UploadPhoto stores a life photo binary and records its metadata
// POST /api/v1/profiles/:slug/photos
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		response.ErrorResponse(c, http.StatusServiceUnavailable, "STORAGE_DISABLED", "photo storage is not configured")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "photo file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "could not read photo")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalServerError(c, "could not read photo")
		return
	}

	slug := c.Param("slug")
	key := fmt.Sprintf("profiles/%s/%s%s", slug, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	url, err := h.photos.Upload(c.Request.Context(), key, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		response.InternalServerError(c, "photo upload failed")
		return
	}

	photo := model.LifePhoto{
		Filename:    url,
		Description: c.PostForm("description"),
	}
	profile, err := h.profileService.AddLifePhoto(c.Request.Context(), slug, middleware.CallerEmail(c), photo)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, profile.LifePhotos)
}

// =====================================================
// CONTRIBUTORS
// =====================================================

// ListContributors returns the contributor list
// GET /api/v1/profiles/:slug/contributors
func (h *ProfileHandler) ListContributors(c *gin.Context) {
	contributors, err := h.profileService.ListContributors(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contributors": contributors})
}

// InviteContributor invites an email as editor or viewer
// POST /api/v1/profiles/:slug/contributors
func (h *ProfileHandler) InviteContributor(c *gin.Context) {
	var req model.InviteContributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contributor, err := h.profileService.InviteContributor(
		c.Request.Context(), c.Param("slug"),
		middleware.CallerEmail(c), middleware.CallerName(c), req)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"contributor": contributor,
		"message":     "Invitation sent successfully",
	})
}

// RemoveContributor removes a contributor entry
// DELETE /api/v1/profiles/:slug/contributors?email=...
func (h *ProfileHandler) RemoveContributor(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, "email is required")
		return
	}

	err := h.profileService.RemoveContributor(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c), email)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Contributor removed successfully"})
}

// AcceptInvitation accepts the caller's pending invitation
// POST /api/v1/invitations/accept
func (h *ProfileHandler) AcceptInvitation(c *gin.Context) {
	var req model.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contributor, err := h.profileService.AcceptInvitation(c.Request.Context(), req.ProfileSlug, middleware.CallerEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"contributor": contributor,
		"message":     "Invitation accepted successfully",
	})
}

// =====================================================
// COMMENTS
// =====================================================

// SubmitComment leaves a message; anonymous visitors welcome
// POST /api/v1/profiles/:slug/comments
func (h *ProfileHandler) SubmitComment(c *gin.Context) {
	var req model.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.profileService.SubmitComment(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, comment)
}

// ApproveComment makes a comment visible
// POST /api/v1/profiles/:slug/comments/:id/approve
func (h *ProfileHandler) ApproveComment(c *gin.Context) {
	comment, err := h.profileService.ApproveComment(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c), c.Param("id"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comment)
}

// DeleteComment removes a comment
// DELETE /api/v1/profiles/:slug/comments/:id
func (h *ProfileHandler) DeleteComment(c *gin.Context) {
	err := h.profileService.DeleteComment(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c), c.Param("id"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// =====================================================
// STORIES & STORYBOOK
// =====================================================

// ListStories returns all stories on a profile
// GET /api/v1/profiles/:slug/stories
func (h *ProfileHandler) ListStories(c *gin.Context) {
	stories, err := h.profileService.ListStories(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stories": stories})
}

// SubmitStory adds a story
// POST /api/v1/profiles/:slug/stories
func (h *ProfileHandler) SubmitStory(c *gin.Context) {
	var req model.SubmitStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	story, err := h.profileService.SubmitStory(
		c.Request.Context(), c.Param("slug"),
		middleware.CallerEmail(c), middleware.CallerName(c), req)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"story": story})
}

// SetStoryApproval approves or un-approves a story
// PUT /api/v1/profiles/:slug/stories
func (h *ProfileHandler) SetStoryApproval(c *gin.Context) {
	var req model.SetStoryApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	story, err := h.profileService.SetStoryApproval(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c), req)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"story": story})
}

// DeleteStory removes a story
// DELETE /api/v1/profiles/:slug/stories
func (h *ProfileHandler) DeleteStory(c *gin.Context) {
	var req model.DeleteStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.profileService.DeleteStory(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c), req.StoryID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Story deleted successfully"})
}

// GenerateStorybook builds the storybook from approved stories
// POST /api/v1/profiles/:slug/generate-storybook
func (h *ProfileHandler) GenerateStorybook(c *gin.Context) {
	book, err := h.profileService.GenerateStorybook(c.Request.Context(), c.Param("slug"), middleware.CallerEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"storybook": book})
}

// =====================================================
// ERROR MAPPING
// =====================================================

// respondProfileError maps domain errors to HTTP statuses 1:1 so the UI
// can tell "log in" from "not allowed" from "already exists".
func respondProfileError(c *gin.Context, err error) {
	if profileErr, ok := err.(*model.ProfileError); ok {
		c.JSON(profileErrorStatus(profileErr.Code), gin.H{
			"success": false,
			"error": gin.H{
				"code":    profileErr.Code,
				"message": profileErr.Message,
			},
		})
		return
	}
	response.InternalServerError(c, "Internal server error")
}

func profileErrorStatus(code string) int {
	switch code {
	case model.ErrCodeProfileNotFound,
		model.ErrCodeInvitationNotFound,
		model.ErrCodeCommentNotFound,
		model.ErrCodeStoryNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeSlugTaken,
		model.ErrCodeDuplicateContributor,
		model.ErrCodeSelfInvite,
		model.ErrCodeVersionConflict:
		return http.StatusConflict
	case model.ErrCodeValidation:
		return http.StatusBadRequest
	case model.ErrCodeInsufficientStories:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
