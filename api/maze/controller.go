package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/lightning-maze/api/identity"
	"github.com/beka-birhanu/lightning-maze/encoder/pb"
	"github.com/beka-birhanu/lightning-maze/maze"
	"github.com/beka-birhanu/lightning-maze/service"
	"github.com/beka-birhanu/lightning-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController serves maze sessions.
type MazeController struct {
	sessionManager i.SessionManager
	encoder        i.Encoder
}

// NewMazeController initializes a MazeController.
func NewMazeController(sm i.SessionManager, enc i.Encoder) (*MazeController, error) {
	if sm == nil || enc == nil {
		return nil, service.ErrMissingDependency
	}
	return &MazeController{
		sessionManager: sm,
		encoder:        enc,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("/:ID/walls", mc.walls)
		mazes.GET("/:ID/path", mc.path)
		mazes.GET("/:ID/summary", mc.summary)
	}
}

// RegisterProtected registers routes that need the session's driver token.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/:ID/step", mc.step)
		mazes.POST("/:ID/replay", mc.replay)
		mazes.DELETE("/:ID", mc.close)
	}
}

func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := mc.sessionManager.NewSession(ctx, request.params())
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newCreateMazeResponse(info))
}

func (mc *MazeController) walls(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	w, err := mc.sessionManager.Walls(id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	if wantsProtobuf(ctx) {
		b, err := mc.encoder.MarshalWalls(w)
		mc.writeProtobuf(ctx, b, err)
		return
	}
	ctx.JSON(http.StatusOK, &WallsResponse{
		Width:      w.Width,
		Height:     w.Height,
		Vertical:   w.Vertical,
		Horizontal: w.Horizontal,
	})
}

func (mc *MazeController) path(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	p, err := mc.sessionManager.Path(id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	if wantsProtobuf(ctx) {
		b, err := mc.encoder.MarshalPath(p)
		mc.writeProtobuf(ctx, b, err)
		return
	}
	ctx.JSON(http.StatusOK, &PathResponse{
		Cells:    p.Cells,
		Length:   len(p.Cells),
		Target:   p.Target,
		Distance: p.Distance,
	})
}

func (mc *MazeController) summary(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	run, err := mc.sessionManager.Summary(ctx, id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, run)
}

func (mc *MazeController) step(ctx *gin.Context) {
	id, ok := mc.drivenSession(ctx)
	if !ok {
		return
	}

	frame, err := mc.sessionManager.Step(ctx, id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	if wantsProtobuf(ctx) {
		b, err := mc.encoder.MarshalFrame(frame)
		mc.writeProtobuf(ctx, b, err)
		return
	}
	cells := frame.Cells
	if cells == nil {
		cells = []maze.Cell{}
	}
	ctx.JSON(http.StatusOK, &StepResponse{
		Layer:     frame.Layer,
		Count:     len(frame.Cells),
		Cells:     cells,
		Exhausted: frame.Exhausted,
	})
}

func (mc *MazeController) replay(ctx *gin.Context) {
	id, ok := mc.drivenSession(ctx)
	if !ok {
		return
	}

	if err := mc.sessionManager.Replay(id); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (mc *MazeController) close(ctx *gin.Context) {
	id, ok := mc.drivenSession(ctx)
	if !ok {
		return
	}

	if err := mc.sessionManager.Close(id); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// drivenSession parses the session id and checks the caller's driver claims.
func (mc *MazeController) drivenSession(ctx *gin.Context) (uuid.UUID, bool) {
	id, ok := sessionID(ctx)
	if !ok {
		return uuid.Nil, false
	}
	if err := mc.sessionManager.Authorize(id, identity.Claims(ctx)); err != nil {
		abortWithError(ctx, err)
		return uuid.Nil, false
	}
	return id, true
}

func (mc *MazeController) writeProtobuf(ctx *gin.Context, b []byte, err error) {
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "encoding response"})
		return
	}
	ctx.Data(http.StatusOK, pb.ContentType, b)
}

func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

func wantsProtobuf(ctx *gin.Context) bool {
	return ctx.NegotiateFormat(gin.MIMEJSON, pb.ContentType) == pb.ContentType
}

// abortWithError maps service and engine errors to status codes.
func abortWithError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, maze.ErrConfiguration), errors.Is(err, service.ErrDimensionTooLarge):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotDriver):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, i.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSessionBusy), errors.Is(err, maze.ErrNotExhausted):
		status = http.StatusConflict
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	ctx.JSON(status, gin.H{"error": msg})
}
