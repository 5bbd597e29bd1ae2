// Package api exposes a running game session over local HTTP so widgets
// and scripts can read the pet and send it commands.
package api

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"deskpet/internal/action"
	"deskpet/internal/game"
)

type Handler struct {
	Game *game.Session
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.GET("/pet", h.pet)
	api.GET("/jobs", h.jobs)
	api.GET("/studies", h.studies)
	api.GET("/shop", h.shop)
	api.GET("/adventures", h.adventures)

	api.POST("/work", h.work)
	api.POST("/work/finish", h.finishWork)
	api.POST("/study", h.study)
	api.POST("/items/use", h.useItem)
	api.POST("/shop/buy", h.buy)
	api.POST("/adventure", h.adventure)
	api.POST("/touch", h.touch)
	api.POST("/mode", h.mode)
	api.POST("/save", h.save)
}

type workRequest struct {
	JobID string `json:"job_id"`
}

type studyRequest struct {
	StudyID string `json:"study_id"`
}

type itemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity,omitempty"`
}

type adventureRequest struct {
	LocationID string `json:"location_id"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type actionResponse struct {
	OK      bool          `json:"ok"`
	Notices []game.Notice `json:"notices,omitempty"`
}

func (h Handler) pet(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Game.Snapshot())
}

func (h Handler) jobs(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"jobs": h.Game.Jobs()})
}

func (h Handler) studies(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"studies": h.Game.Studies()})
}

func (h Handler) shop(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"items": h.Game.Shop()})
}

func (h Handler) adventures(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"locations": h.Game.Locations()})
}

func (h Handler) work(c context.Context, ctx *app.RequestContext) {
	var body workRequest
	if !decodeBody(ctx, &body) {
		return
	}
	if body.JobID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_job_id", "job_id is required")
		return
	}
	writeResult(ctx, h.Game.StartWork(body.JobID), nil)
}

func (h Handler) finishWork(c context.Context, ctx *app.RequestContext) {
	out, notices, ok := h.Game.FinishWork()
	if !ok {
		writeErrorBody(ctx, consts.StatusConflict, "not_working", "the pet is not working")
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true, "outcome": out, "notices": notices})
}

func (h Handler) study(c context.Context, ctx *app.RequestContext) {
	var body studyRequest
	if !decodeBody(ctx, &body) {
		return
	}
	if body.StudyID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_study_id", "study_id is required")
		return
	}
	res, notices := h.Game.StartStudy(body.StudyID)
	writeResult(ctx, res, notices)
}

func (h Handler) useItem(c context.Context, ctx *app.RequestContext) {
	var body itemRequest
	if !decodeBody(ctx, &body) {
		return
	}
	if body.ItemID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_item_id", "item_id is required")
		return
	}
	res, notices := h.Game.UseItem(body.ItemID)
	writeResult(ctx, res, notices)
}

func (h Handler) buy(c context.Context, ctx *app.RequestContext) {
	var body itemRequest
	if !decodeBody(ctx, &body) {
		return
	}
	if body.ItemID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_item_id", "item_id is required")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	if !h.Game.BuyItem(body.ItemID, body.Quantity) {
		writeErrorBody(ctx, consts.StatusConflict, "purchase_failed", "unknown item, bad quantity or not enough coins")
		return
	}
	ctx.JSON(consts.StatusOK, actionResponse{OK: true})
}

func (h Handler) adventure(c context.Context, ctx *app.RequestContext) {
	var body adventureRequest
	if !decodeBody(ctx, &body) {
		return
	}
	o, notices := h.Game.Adventure(body.LocationID)
	if !o.Success {
		writeErrorBody(ctx, consts.StatusConflict, o.Message, "adventure refused")
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true, "outcome": o, "notices": notices})
}

func (h Handler) touch(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true, "exp": h.Game.Touch()})
}

func (h Handler) mode(c context.Context, ctx *app.RequestContext) {
	var body modeRequest
	if !decodeBody(ctx, &body) {
		return
	}
	h.Game.SetMode(body.Mode)
	ctx.JSON(consts.StatusOK, h.Game.Mode())
}

func (h Handler) save(c context.Context, ctx *app.RequestContext) {
	if err := h.Game.Save(); err != nil {
		writeErrorBody(ctx, consts.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	ctx.JSON(consts.StatusOK, actionResponse{OK: true})
}

func decodeBody(ctx *app.RequestContext, out any) bool {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, out); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return false
	}
	return true
}

func writeResult(ctx *app.RequestContext, res action.Result, notices []game.Notice) {
	if !res.OK() {
		writeErrorBody(ctx, consts.StatusConflict, res.Reason, "action refused")
		return
	}
	ctx.JSON(consts.StatusOK, actionResponse{OK: true, Notices: notices})
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
