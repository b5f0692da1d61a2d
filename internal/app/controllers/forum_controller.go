package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/app/services"
	"github.com/aylin/campuswell/internal/middleware"
	"github.com/aylin/campuswell/internal/pkg/helpers"
)

// ForumController handles peer-support forum endpoints
type ForumController struct {
	forumService *services.ForumService
	logger       zerolog.Logger
}

// NewForumController creates a new ForumController
func NewForumController(forumService *services.ForumService, logger zerolog.Logger) *ForumController {
	return &ForumController{
		forumService: forumService,
		logger:       logger,
	}
}

// CreatePost publishes a forum post
// @Summary Create post
// @Description Publishes a forum post, optionally anonymous. The post text is screened for crisis risk after creation.
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /posts [post]
func (c *ForumController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	post, err := c.forumService.CreatePost(ctx.Request.Context(), ctx.GetInt64("userID"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewPostResponse(post)))
}

// ListPosts returns a page of posts
// @Summary List posts
// @Description Returns a page of forum posts newest first. Anonymous posts carry no author name.
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse "Posts with pagination"
// @Router /posts [get]
func (c *ForumController) ListPosts(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	posts, total, err := c.forumService.ListPosts(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	views := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		views = append(views, dto.NewPostResponse(post))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"posts":      views,
		"pagination": helpers.NewPaginationInfo(total, page, limit),
	}))
}

// GetPost returns a post with its replies
// @Summary Get post
// @Description Returns a single post with all of its replies.
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post with replies"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *ForumController) GetPost(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post id")))
		return
	}

	post, replies, err := c.forumService.GetPost(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	view := dto.NewPostResponse(post)
	view.Replies = make([]dto.ReplyResponse, 0, len(replies))
	for _, reply := range replies {
		view.Replies = append(view.Replies, dto.NewReplyResponse(reply))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view))
}

// CreateReply adds a reply to a post
// @Summary Reply to post
// @Description Adds a reply to an existing post, optionally anonymous.
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.CreateReplyRequest true "Reply content"
// @Success 201 {object} dto.APIResponse{data=dto.ReplyResponse} "Reply created"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/replies [post]
func (c *ForumController) CreateReply(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post id")))
		return
	}

	var req dto.CreateReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	reply, err := c.forumService.CreateReply(ctx.Request.Context(), ctx.GetInt64("userID"), postID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewReplyResponse(reply)))
}

// DeletePost removes a post
// @Summary Delete post
// @Description Deletes a post and its replies. Only the author or an admin may delete.
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Post deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func (c *ForumController) DeletePost(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post id")))
		return
	}

	role := models.RoleType(ctx.GetString("roleType"))
	if err := c.forumService.DeletePost(ctx.Request.Context(), postID, ctx.GetInt64("userID"), role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Post deleted"}))
}
