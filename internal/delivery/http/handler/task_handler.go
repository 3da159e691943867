package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ansy5566/ctosaas/internal/usecase/task"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

type TaskHandler struct {
	service *task.Service
}

func NewTaskHandler(service *task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.POST("/:id/cancel", h.CancelTask)
	}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tasks)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req task.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	req.URL = utils.SanitizeString(req.URL)

	t, err := h.service.CreateTask(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Task created successfully", t)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	t, err := h.service.GetTask(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", t)
}

func (h *TaskHandler) CancelTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	t, err := h.service.CancelTask(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Task cancelled", t)
}
