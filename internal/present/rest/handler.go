package rest

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/present/rest/presenter"
	"github.com/citygrid/appeals-service/internal/service"
	"github.com/citygrid/appeals-service/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	appeal    *usecase.AppealUsecase
	reference *usecase.ReferenceUsecase
	auth      *usecase.AuthUsecase
	camera    *usecase.CameraUsecase
	building  *usecase.BuildingConfigUsecase
	image     *usecase.ImageUsecase
	export    *usecase.ExportUsecase
	exporter  *service.ExportService
	tokens    *service.TokenService
	hub       *service.Hub
}

func NewHandler(
	appeal *usecase.AppealUsecase,
	reference *usecase.ReferenceUsecase,
	auth *usecase.AuthUsecase,
	camera *usecase.CameraUsecase,
	building *usecase.BuildingConfigUsecase,
	image *usecase.ImageUsecase,
	export *usecase.ExportUsecase,
	exporter *service.ExportService,
	tokens *service.TokenService,
	hub *service.Hub,
) *Handler {
	return &Handler{
		appeal:    appeal,
		reference: reference,
		auth:      auth,
		camera:    camera,
		building:  building,
		image:     image,
		export:    export,
		exporter:  exporter,
		tokens:    tokens,
		hub:       hub,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/appeals", h.handleListAppeals)
	e.POST("/appeals", h.handleCreateAppeal)
	e.GET("/appeals/:id", h.handleGetAppeal)
	e.PATCH("/appeals/:id", h.handleUpdateAppeal)
	e.DELETE("/appeals/:id", h.handleDeleteAppeal)
	e.GET("/appeals/:id/history", h.handleAppealHistory)

	e.GET("/ws/appeals", h.handleNotifications)

	e.GET("/reference/appeal_types", h.handleListTypes)
	e.GET("/reference/severity_levels", h.handleListSeverities)
	e.GET("/reference/appeal_statuses", h.handleListStatuses)

	e.GET("/cameras", h.handleListCameras)
	e.POST("/cameras", h.handleCreateCamera)
	e.GET("/cameras/:id", h.handleGetCamera)
	e.DELETE("/cameras/:id", h.handleDeleteCamera)

	e.GET("/building-configs", h.handleListBuildingConfigs)
	e.POST("/building-configs", h.handleCreateBuildingConfig)
	e.GET("/building-configs/:id", h.handleGetBuildingConfig)
	e.PUT("/building-configs/:id", h.handleUpdateBuildingConfig)
	e.DELETE("/building-configs/:id", h.handleDeleteBuildingConfig)

	e.POST("/images/upload", h.handleUploadImage)
	e.GET("/images", h.handleListImages)

	e.POST("/auth/login", h.handleLogin)
	e.POST("/auth/logout", h.handleLogout)
	e.GET("/auth/users", h.handleListUsers)
	e.POST("/auth/users", h.handleCreateUser)
	e.GET("/auth/users/:id", h.handleGetUser)
	e.PUT("/auth/users/:id", h.handleUpdateUser)
	e.DELETE("/auth/users/:id", h.handleDeleteUser)
	e.GET("/auth/roles", h.handleListRoles)
	e.POST("/auth/roles", h.handleCreateRole)
	e.PUT("/auth/roles/:id", h.handleUpdateRole)
	e.DELETE("/auth/roles/:id", h.handleDeleteRole)
	e.GET("/auth/permissions", h.handleListPermissions)
	e.POST("/auth/permissions", h.handleCreatePermission)
	e.DELETE("/auth/permissions/:id", h.handleDeletePermission)

	e.GET("/export/appeal_history", h.handleExportHistory)
	e.GET("/export/appeals", h.handleExportAppeals)
}

// --- appeals ---

func (h *Handler) handleListAppeals(c echo.Context) error {
	ctx := c.Request().Context()

	skip, limit := pagination(c)
	includeDeleted := c.QueryParam("include_deleted") == "true"

	appeals, err := h.appeal.List(ctx, skip, limit, includeDeleted)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, appeals)
}

func (h *Handler) handleGetAppeal(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid appeal id")
	}

	appeal, err := h.appeal.Get(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, appeal)
}

func (h *Handler) handleCreateAppeal(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.CreateAppealInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	appeal, err := h.appeal.Create(ctx, input, requesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, appeal)
}

func (h *Handler) handleUpdateAppeal(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid appeal id")
	}

	var patch usecase.UpdateAppealPatch
	if err := c.Bind(&patch); err != nil {
		return presenter.BadRequest(c, err)
	}

	appeal, err := h.appeal.Update(ctx, id, patch, requesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, appeal)
}

func (h *Handler) handleDeleteAppeal(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid appeal id")
	}

	appeal, err := h.appeal.SoftDelete(ctx, id, requesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, appeal)
}

func (h *Handler) handleAppealHistory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid appeal id")
	}

	history, err := h.appeal.GetHistory(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, history)
}

// --- notification channel ---

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsChannel adapts a gorilla connection to the hub's Channel interface.
// Concurrent broadcasts share the connection, so writes are serialized.
type wsChannel struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (ch *wsChannel) Send(data []byte) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Handler) handleNotifications(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}

	ch := &wsChannel{conn: ws}
	h.hub.Register(ch)
	defer func() {
		h.hub.Unregister(ch)
		ws.Close()
	}()

	ctx := c.Request().Context()

	for {
		// Inbound frames only keep the connection alive; their content is
		// ignored.
		if _, _, err := ws.ReadMessage(); err != nil {
			wsErr, ok := err.(*websocket.CloseError)
			if ok {
				if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
					slog.DebugContext(
						ctx, "WebSocket closed",
						slog.String("error", wsErr.Error()),
						slog.String("module", "socket"),
					)
				}
			} else {
				slog.DebugContext(
					ctx, "WebSocket read failed",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
			}
			return nil
		}
	}
}

// --- reference ---

func (h *Handler) handleListTypes(c echo.Context) error {
	types, err := h.reference.ListTypes(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, types)
}

func (h *Handler) handleListSeverities(c echo.Context) error {
	levels, err := h.reference.ListSeverities(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, levels)
}

func (h *Handler) handleListStatuses(c echo.Context) error {
	statuses, err := h.reference.ListStatuses(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, statuses)
}

// --- cameras ---

func (h *Handler) handleListCameras(c echo.Context) error {
	skip, limit := pagination(c)
	cameras, err := h.camera.List(c.Request().Context(), skip, limit)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, cameras)
}

func (h *Handler) handleGetCamera(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid camera id")
	}

	camera, err := h.camera.Get(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, camera)
}

func (h *Handler) handleCreateCamera(c echo.Context) error {
	var input usecase.CameraInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	camera, err := h.camera.Create(c.Request().Context(), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, camera)
}

func (h *Handler) handleDeleteCamera(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid camera id")
	}

	if err := h.camera.Delete(c.Request().Context(), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- building configs ---

func (h *Handler) handleListBuildingConfigs(c echo.Context) error {
	skip, limit := pagination(c)
	configs, err := h.building.List(c.Request().Context(), skip, limit)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, configs)
}

func (h *Handler) handleGetBuildingConfig(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid config id")
	}

	cfg, err := h.building.Get(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, cfg)
}

func (h *Handler) handleCreateBuildingConfig(c echo.Context) error {
	var input usecase.BuildingConfigInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	cfg, err := h.building.Create(c.Request().Context(), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, cfg)
}

func (h *Handler) handleUpdateBuildingConfig(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid config id")
	}

	var patch usecase.BuildingConfigPatch
	if err := c.Bind(&patch); err != nil {
		return presenter.BadRequest(c, err)
	}

	cfg, err := h.building.Update(c.Request().Context(), id, patch)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, cfg)
}

func (h *Handler) handleDeleteBuildingConfig(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid config id")
	}

	if err := h.building.Delete(c.Request().Context(), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- images ---

func (h *Handler) handleUploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return presenter.BadRequestMessage(c, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return presenter.InternalError(c, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	image, err := h.image.Upload(c.Request().Context(), fileHeader.Filename, content)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, image)
}

func (h *Handler) handleListImages(c echo.Context) error {
	images, err := h.image.List(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, images)
}

// --- auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	token, result, err := h.tokens.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, loginResponse{
		Token:    token,
		UserID:   result.UserID.String(),
		Username: result.Username,
	})
}

func (h *Handler) handleLogout(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return presenter.BadRequestMessage(c, "missing bearer token")
	}
	if err := h.tokens.Logout(c.Request().Context(), token); err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleListUsers(c echo.Context) error {
	users, err := h.auth.ListUsers(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, users)
}

func (h *Handler) handleGetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid user id")
	}

	user, err := h.auth.GetUser(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleCreateUser(c echo.Context) error {
	var input usecase.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	user, err := h.auth.CreateUser(c.Request().Context(), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, user)
}

func (h *Handler) handleUpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid user id")
	}

	var input usecase.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	user, err := h.auth.UpdateUser(c.Request().Context(), id, input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleDeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid user id")
	}

	if err := h.auth.DeleteUser(c.Request().Context(), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleListRoles(c echo.Context) error {
	roles, err := h.auth.ListRoles(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, roles)
}

func (h *Handler) handleCreateRole(c echo.Context) error {
	var input usecase.RoleInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	role, err := h.auth.CreateRole(c.Request().Context(), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, role)
}

func (h *Handler) handleUpdateRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid role id")
	}

	var input usecase.RoleInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	role, err := h.auth.UpdateRole(c.Request().Context(), id, input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, role)
}

func (h *Handler) handleDeleteRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid role id")
	}

	if err := h.auth.DeleteRole(c.Request().Context(), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleListPermissions(c echo.Context) error {
	perms, err := h.auth.ListPermissions(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, perms)
}

func (h *Handler) handleCreatePermission(c echo.Context) error {
	var input usecase.PermissionInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	perm, err := h.auth.CreatePermission(c.Request().Context(), input)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, perm)
}

func (h *Handler) handleDeletePermission(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid permission id")
	}

	if err := h.auth.DeletePermission(c.Request().Context(), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- exports ---

func (h *Handler) handleExportHistory(c echo.Context) error {
	rows, err := h.export.HistoryRows(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}

	buf, err := h.exporter.HistoryWorkbook(rows)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="appeal_history.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) handleExportAppeals(c echo.Context) error {
	appeals, err := h.export.AppealRows(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}

	buf, err := h.exporter.AppealsWorkbook(appeals)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="appeals.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// --- helpers ---

func pagination(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}

func requesterID(c echo.Context) *uuid.UUID {
	value := c.Request().Context().Value(domain.RequesterIDCtxKey)
	if id, ok := value.(uuid.UUID); ok {
		return &id
	}
	return nil
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("authorization")
	split := strings.Split(header, " ")
	if len(split) != 2 || split[0] != "Bearer" {
		return ""
	}
	return split[1]
}
