package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bassista/go_restate/internal/cache"
	"github.com/bassista/go_restate/internal/logger"
	"github.com/bassista/go_restate/internal/repository"
)

// apiError is the error body shape clients parse: message plus a stable code.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// postPayload is the writable subset of a post accepted from clients.
// The id never comes from the body: creates get a server-assigned id and
// updates take theirs from the path. Leaving it out of the binding shape
// also keeps clients that key entities by string id (and send "id" as a
// JSON string) binding cleanly.
type postPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Date    string `json:"date"`
}

func (p postPayload) toPost() repository.Post {
	return repository.Post{
		Title:   p.Title,
		Content: p.Content,
		Status:  p.Status,
		Date:    p.Date,
	}
}

// PostController handles the posts collection endpoints.
type PostController struct {
	store     cache.PostStore
	validator *validator.Validate
}

// NewPostController creates a controller backed by the given cache store.
func NewPostController(store cache.PostStore) *PostController {
	return &PostController{store: store, validator: validator.New()}
}

// List handles GET /posts. Supported query parameters: status, search,
// orderby (date|title), order (asc|desc).
func (pc *PostController) List(c *gin.Context) {
	q := cache.PostQuery{
		Status:  c.Query("status"),
		Search:  c.Query("search"),
		OrderBy: c.Query("orderby"),
		Order:   c.DefaultQuery("order", "asc"),
	}

	posts, err := pc.store.ListPosts(q)
	if err != nil {
		logger.WithComponent("post-controller").Errorf("list posts: %v", err)
		c.JSON(http.StatusInternalServerError, apiError{Message: "failed to list posts", Code: "rest_internal_error"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetByID handles GET /posts/:id.
func (pc *PostController) GetByID(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	post, err := pc.store.GetPost(id)
	if err != nil {
		if errors.Is(err, cache.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, apiError{Message: "post not found", Code: "rest_post_invalid_id"})
			return
		}
		logger.WithComponent("post-controller").Errorf("get post %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, apiError{Message: "failed to read post", Code: "rest_internal_error"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create handles POST /posts. The server assigns the id.
func (pc *PostController) Create(c *gin.Context) {
	var payload postPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: "invalid payload", Code: "rest_invalid_param"})
		return
	}
	post := payload.toPost()
	post.ApplyDefaults()
	if err := pc.validator.StructPartial(&post, "Title", "Status", "Date"); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Code: "rest_invalid_param"})
		return
	}

	created, err := pc.store.CreatePost(post)
	if err != nil {
		logger.WithComponent("post-controller").Errorf("create post: %v", err)
		c.JSON(http.StatusInternalServerError, apiError{Message: "failed to create post", Code: "rest_internal_error"})
		return
	}

	logger.WithComponent("post-controller").Debugf("created post %d", created.ID)
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /posts/:id. The path id wins over any id in the body.
func (pc *PostController) Update(c *gin.Context) {
	id, ok := pc.parseID(c)
	if !ok {
		return
	}

	var payload postPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: "invalid payload", Code: "rest_invalid_param"})
		return
	}
	post := payload.toPost()
	post.ID = id
	post.ApplyDefaults()
	if err := pc.validator.StructPartial(&post, "Title", "Status", "Date"); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Code: "rest_invalid_param"})
		return
	}

	updated, err := pc.store.UpdatePost(post)
	if err != nil {
		if errors.Is(err, cache.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, apiError{Message: "post not found", Code: "rest_post_invalid_id"})
			return
		}
		logger.WithComponent("post-controller").Errorf("update post %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, apiError{Message: "failed to update post", Code: "rest_internal_error"})
		return
	}

	logger.WithComponent("post-controller").Debugf("updated post %d (revision %d)", updated.ID, updated.Revision)
	c.JSON(http.StatusOK, updated)
}

func (pc *PostController) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: "invalid post id", Code: "rest_post_invalid_id"})
		return 0, false
	}
	return id, true
}
