package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bbs-server/internal/command"
	"bbs-server/internal/model"
	"bbs-server/internal/privilege"
	"bbs-server/internal/repository"
	"bbs-server/internal/service"
)

// Handler обслуживает HTTP-поверхность доски: list/create постов,
// командный эндпоинт и две операции консоли оператора над банами
type Handler struct {
	posts     *service.PostService
	interp    *command.Interpreter
	store     *repository.Store
	jwtSecret string
}

// New создает HTTP-обработчик
func New(posts *service.PostService, interp *command.Interpreter, store *repository.Store, jwtSecret string) *Handler {
	return &Handler{
		posts:     posts,
		interp:    interp,
		store:     store,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/posts", h.listPosts)

	authed := router.Group("")
	authed.Use(h.CallerMiddleware())
	authed.POST("/posts", h.createPost)
	authed.POST("/commands", h.executeCommand)

	admin := authed.Group("/admin")
	admin.Use(h.requireLevel(privilege.AdminOp))
	admin.POST("/bans/:ip/approve", h.approveBan)
	admin.POST("/bans/:ip/reject", h.rejectBan)
}

// requireLevel пропускает только вызывающих с достаточным уровнем
func (h *Handler) requireLevel(required privilege.Level) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := caller(c)
		if !ok || !privilege.Satisfies(user.Level, required) {
			abortWithError(c, http.StatusForbidden, "Insufficient privilege level")
			return
		}
		c.Next()
	}
}

func (h *Handler) listPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.posts.List(c.Request.Context(), limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *Handler) createPost(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return
	}

	post, err := h.posts.Create(c.Request.Context(), user, req, clientIP(c))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrIPBanned):
			postsRejectedTotal.WithLabelValues("banned_ip").Inc()
		case errors.Is(err, model.ErrDuplicatePost):
			postsRejectedTotal.WithLabelValues("duplicate").Inc()
		default:
			postsRejectedTotal.WithLabelValues("invalid").Inc()
		}
		handleServiceError(c, err)
		return
	}

	postsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, post)
}

// commandRequest — тело запроса командного эндпоинта
type commandRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) executeCommand(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return
	}

	result := h.interp.Execute(c.Request.Context(), user, req.Text)

	name := "invalid"
	if parsed, err := command.Parse(req.Text); err == nil {
		name = parsed.Name
	}
	for _, out := range result.Outcomes {
		commandsTotal.WithLabelValues(name, string(out.Severity)).Inc()
	}

	// ForceReauth транслируется поверхности как сигнал сбросить сессию;
	// само аннулирование сессии — забота сервиса аутентификации
	c.JSON(http.StatusOK, result)
}

func (h *Handler) approveBan(c *gin.Context) {
	h.setBanApproval(c, true)
}

func (h *Handler) rejectBan(c *gin.Context) {
	h.setBanApproval(c, false)
}

func (h *Handler) setBanApproval(c *gin.Context, approved bool) {
	ip := c.Param("ip")
	if err := h.store.SetBanApproval(c.Request.Context(), ip, approved); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ip_address": ip, "is_approved_by_admin": approved})
}
