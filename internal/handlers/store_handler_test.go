package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/services"
)

func TestPurchaseReportsLiveTotal(t *testing.T) {
	userRepo := newFakeUserRepo()
	itemRepo := newFakeItemRepo()
	entryService := services.NewEntryService(userRepo, &fakeEntryRepo{}, newFakeCodeRepo(), newFakeSettingsRepo())
	h := NewStoreHandler(services.NewStoreService(itemRepo, entryService), services.NewUserService(userRepo))

	user := seedUser(t, userRepo, 1)
	item := &models.StoreItem{Name: "classic tee", PriceCents: 2500, Active: true}
	if err := itemRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	// A code redemption lands after the actor snapshot was resolved.
	stale := *user
	if err := userRepo.IncrementEntries(context.Background(), user.ID, 5, 0); err != nil {
		t.Fatalf("concurrent credit: %v", err)
	}

	c, w := jsonRequest(t, &stale, http.MethodPost, "/api/v1/store/items/"+item.ID.Hex()+"/purchase", `{"units":2}`)
	c.Params = gin.Params{{Key: "id", Value: item.ID.Hex()}}
	h.Purchase(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		EntriesAwarded int `json:"entriesAwarded"`
		TotalEntries   int `json:"totalEntries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.EntriesAwarded != 20 {
		t.Errorf("entriesAwarded = %d, want 20 for 2 units at 10 per shirt", resp.EntriesAwarded)
	}
	// 1 baseline + 5 concurrent + 20 purchased; the stale snapshot would
	// have reported 21.
	if resp.TotalEntries != 26 {
		t.Errorf("totalEntries = %d, want 26", resp.TotalEntries)
	}
}

func TestPurchaseInactiveItem(t *testing.T) {
	userRepo := newFakeUserRepo()
	itemRepo := newFakeItemRepo()
	entryService := services.NewEntryService(userRepo, &fakeEntryRepo{}, newFakeCodeRepo(), newFakeSettingsRepo())
	h := NewStoreHandler(services.NewStoreService(itemRepo, entryService), services.NewUserService(userRepo))

	user := seedUser(t, userRepo, 1)
	item := &models.StoreItem{Name: "retired tee", PriceCents: 2500, Active: false}
	if err := itemRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	c, w := jsonRequest(t, user, http.MethodPost, "/api/v1/store/items/"+item.ID.Hex()+"/purchase", `{"units":1}`)
	c.Params = gin.Params{{Key: "id", Value: item.ID.Hex()}}
	h.Purchase(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404, body %s", w.Code, w.Body.String())
	}
}
