package api

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskpet/internal/content"
	"deskpet/internal/game"
	"deskpet/internal/pet"
)

func newHandler(t *testing.T) Handler {
	t.Helper()
	repo, err := content.Load("")
	require.NoError(t, err)
	clock := game.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local))
	s := game.New(repo, nil, game.WithClock(clock), game.WithRand(func() float64 { return 0 }))
	_, err = s.Load("Mochi")
	require.NoError(t, err)
	return Handler{Game: s}
}

func call(h func(context.Context, *app.RequestContext), body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	if body != "" {
		ctx.Request.SetBody([]byte(body))
	}
	h(context.Background(), ctx)
	return ctx
}

func decode(t *testing.T, ctx *app.RequestContext) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &out))
	return out
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	body := decode(t, ctx)
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "no error body in %v", body)
	return e["code"].(string)
}

func TestPetSnapshot(t *testing.T) {
	h := newHandler(t)
	ctx := call(h.pet, "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())

	body := decode(t, ctx)
	p := body["pet"].(map[string]any)
	assert.Equal(t, "Mochi", p["name"])
	assert.Equal(t, string(pet.StageEgg), p["stage"])
}

func TestWorkLifecycle(t *testing.T) {
	h := newHandler(t)

	ctx := call(h.work, `{"job_id":"waiter"}`)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())

	ctx = call(h.work, `{"job_id":"waiter"}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "messages.pet_busy_now", errorCode(t, ctx))

	ctx = call(h.finishWork, "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	outcome := decode(t, ctx)["outcome"].(map[string]any)
	assert.Equal(t, "waiter", outcome["job_id"])

	ctx = call(h.finishWork, "")
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "not_working", errorCode(t, ctx))
}

func TestWorkRejectsBadRequests(t *testing.T) {
	h := newHandler(t)

	ctx := call(h.work, `{"job_id":`)
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "invalid_json", errorCode(t, ctx))

	ctx = call(h.work, "")
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "missing_job_id", errorCode(t, ctx))

	ctx = call(h.work, `{"job_id":"astronaut"}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "messages.work_not_found", errorCode(t, ctx))
}

func TestBuyAndUseItem(t *testing.T) {
	h := newHandler(t)

	ctx := call(h.useItem, `{"item_id":"bread"}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())

	ctx = call(h.buy, `{"item_id":"bread"}`)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, 1, h.Game.Snapshot().Player.Inventory["bread"])

	ctx = call(h.buy, `{"item_id":"alien_chip","quantity":1}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "purchase_failed", errorCode(t, ctx))

	coins := h.Game.Snapshot().Player.Coins
	ctx = call(h.buy, `{"item_id":"bread","quantity":3689348814741910324}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, coins, h.Game.Snapshot().Player.Coins)
	assert.Equal(t, 1, h.Game.Snapshot().Player.Inventory["bread"])

	ctx = call(h.useItem, `{"item_id":"bread"}`)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, pet.ActionEating, h.Game.Snapshot().Pet.CurrentAction)
}

func TestAdventureEndpoint(t *testing.T) {
	h := newHandler(t)

	ctx := call(h.adventure, `{"location_id":"ruins"}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "adventure_results.level_low", errorCode(t, ctx))

	ctx = call(h.adventure, `{"location_id":"park"}`)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	body := decode(t, ctx)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "adventure_results.park_stroll", body["outcome"].(map[string]any)["message"])
}

func TestListings(t *testing.T) {
	h := newHandler(t)

	jobs := decode(t, call(h.jobs, ""))["jobs"].([]any)
	require.Len(t, jobs, 1)
	assert.Equal(t, "waiter", jobs[0].(map[string]any)["id"])

	locations := decode(t, call(h.adventures, ""))["locations"].([]any)
	require.Len(t, locations, 1)
	assert.Equal(t, "park", locations[0].(map[string]any)["id"])

	items := decode(t, call(h.shop, ""))["items"].([]any)
	assert.NotEmpty(t, items)
}

func TestModeAndTouch(t *testing.T) {
	h := newHandler(t)

	ctx := call(h.mode, `{"mode":"mischief"}`)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "mischief", decode(t, ctx)["name"])

	ctx = call(h.touch, "")
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, float64(pet.TouchExp), decode(t, ctx)["exp"])
}

func TestApplyCORSHeaders(t *testing.T) {
	ctx := &app.RequestContext{}
	applyCORSHeaders(ctx)

	assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, corsAllowMethods, string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")))
}
