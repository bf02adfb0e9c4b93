package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "auction-marketplace/internal/auctionService"
	"auction-marketplace/internal/auth"
	model "auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testStore interface {
	repository.AuctionDB
	repository.Seeder
}

// storeFactories lists every store the API is exercised against
var storeFactories = map[string]func(t *testing.T) testStore{
	"memory": func(t *testing.T) testStore {
		return repository.NewMemoryRepo()
	},
	"sqlite": func(t *testing.T) testStore {
		ctx := context.Background()
		repo, err := repository.OpenSQLRepo(ctx, repository.DriverSQLite, ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = repo.Close() })
		require.NoError(t, repo.Migrate(ctx))
		return repo
	},
}

// forEachStore runs fn once per store, each against freshly seeded sample data
func forEachStore(t *testing.T, fn func(t *testing.T, router *gin.Engine, store testStore)) {
	for name, factory := range storeFactories {
		factory := factory
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			router := SetupTestRouter(t, store)
			fn(t, router, store)
		})
	}
}

// SetupTestRouter seeds the store and wires the full router on top of it
func SetupTestRouter(t *testing.T, store testStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, repository.SeedSampleData(context.Background(), store, time.Now()))
	service := auction.NewAuctionService(store)
	return server.SetupRouter(service, "")
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any, caller *model.Caller) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set(auth.HeaderUserID, caller.ID)
		req.Header.Set(auth.HeaderUserRole, string(caller.Role))
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// itemResults flattens the results array into id -> error ("" on success), keeping order in ids
func itemResults(t *testing.T, resp map[string]any) (ids []string, errs map[string]string) {
	t.Helper()
	errs = make(map[string]string)
	for _, raw := range resp["results"].([]any) {
		item := raw.(map[string]any)
		id := item["id"].(string)
		ids = append(ids, id)
		if item["success"] == true {
			errs[id] = ""
			continue
		}
		errs[id] = item["error"].(string)
	}
	return ids, errs
}

func auctionIDs(t *testing.T, resp map[string]any) []string {
	t.Helper()
	var ids []string
	for _, raw := range resp["auctions"].([]any) {
		ids = append(ids, raw.(map[string]any)["id"].(string))
	}
	return ids
}
