package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/wellbore-architecture/internal/data/repos"
	"github.com/yungbote/wellbore-architecture/internal/data/repos/testutil"
	types "github.com/yungbote/wellbore-architecture/internal/domain/wellbore"
	httpH "github.com/yungbote/wellbore-architecture/internal/http/handlers"
	"github.com/yungbote/wellbore-architecture/internal/observability"
	"github.com/yungbote/wellbore-architecture/internal/services"
)

const base = DefaultBasePath + "/WellBoreArchitecture"

var testAID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testutil.Logger(t)
	svc := services.NewWellBoreArchitectureService(testutil.Connector(t), log, repos.NewWellBoreArchitectureRepo(log), nil, nil)
	return NewRouter(RouterConfig{
		Log:     log,
		Metrics: observability.NewMetrics(),
		WellBoreArchitectureHandler: httpH.NewWellBoreArchitectureHandler(httpH.WellBoreArchitectureHandlerDeps{
			Log:     log,
			Service: svc,
		}),
		HealthHandler: httpH.NewHealthHandler(nil),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope %q: %v", rec.Body.String(), err)
	}
	return env.Error.Code
}

func TestWellBoreArchitectureEndpoints(t *testing.T) {
	r := newTestRouter(t)
	idPath := base + "/" + testAID.String()

	if rec := do(t, r, http.MethodPost, base, testutil.Architecture(testAID, "Test A")); rec.Code != http.StatusOK {
		t.Fatalf("create: got=%d body=%s", rec.Code, rec.Body.String())
	}

	rec := do(t, r, http.MethodGet, idPath, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Name":"Test A"`) {
		t.Fatalf("get body missing PascalCase name: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"Type":"BOP"`) {
		t.Fatalf("enum not serialized by name: %s", rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, base+"/LightData", nil)
	var light []types.WellBoreArchitectureLight
	if err := json.Unmarshal(rec.Body.Bytes(), &light); err != nil {
		t.Fatalf("decode light: %v", err)
	}
	if len(light) != 1 || light[0].MetaInfo.ID != testAID || light[0].Name == nil || *light[0].Name != "Test A" {
		t.Fatalf("light: got=%+v", light)
	}

	rec = do(t, r, http.MethodGet, base, nil)
	var ids []uuid.UUID
	if err := json.Unmarshal(rec.Body.Bytes(), &ids); err != nil || len(ids) != 1 || ids[0] != testAID {
		t.Fatalf("ids: got=%s err=%v", rec.Body.String(), err)
	}

	for _, p := range []string{base + "/MetaInfo", base + "/HeavyData", idPath + "/Realization"} {
		if rec := do(t, r, http.MethodGet, p, nil); rec.Code != http.StatusOK {
			t.Fatalf("GET %s: got=%d", p, rec.Code)
		}
	}

	if rec := do(t, r, http.MethodPost, base, testutil.Architecture(testAID, "again")); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create: got=%d", rec.Code)
	}

	if rec := do(t, r, http.MethodPut, idPath, testutil.Architecture(testAID, "Test B")); rec.Code != http.StatusOK {
		t.Fatalf("update: got=%d body=%s", rec.Code, rec.Body.String())
	}

	if rec := do(t, r, http.MethodDelete, idPath, nil); rec.Code != http.StatusOK {
		t.Fatalf("delete: got=%d", rec.Code)
	}
	if rec := do(t, r, http.MethodGet, idPath, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got=%d", rec.Code)
	}
	if rec := do(t, r, http.MethodDelete, idPath, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: got=%d", rec.Code)
	}
}

func TestWellBoreArchitectureClientErrors(t *testing.T) {
	r := newTestRouter(t)
	idPath := base + "/" + testAID.String()

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"get bad id", http.MethodGet, base + "/not-a-guid", nil, http.StatusBadRequest, "invalid_id"},
		{"get nil id", http.MethodGet, base + "/" + uuid.Nil.String(), nil, http.StatusBadRequest, "invalid_id"},
		{"create null", http.MethodPost, base, "null", http.StatusBadRequest, "invalid_id"},
		{"create empty id", http.MethodPost, base, testutil.Architecture(uuid.Nil, "x"), http.StatusBadRequest, "invalid_id"},
		{"create garbage", http.MethodPost, base, "{", http.StatusBadRequest, "invalid_payload"},
		{"create empty body", http.MethodPost, base, nil, http.StatusBadRequest, "invalid_payload"},
		{"update mismatch", http.MethodPut, idPath, testutil.Architecture(uuid.New(), "x"), http.StatusBadRequest, "id_mismatch"},
		{"update null", http.MethodPut, idPath, "null", http.StatusBadRequest, "invalid_payload"},
		{"update missing", http.MethodPut, idPath, testutil.Architecture(testAID, "x"), http.StatusNotFound, "not_found"},
		{"get missing", http.MethodGet, idPath, nil, http.StatusNotFound, "not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, r, tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if got := errorCode(t, rec); got != tc.code {
				t.Fatalf("code: got=%q want=%q", got, tc.code)
			}
		})
	}
}

func TestNullBodyIsClientError(t *testing.T) {
	r := newTestRouter(t)
	idPath := base + "/" + testAID.String()
	if rec := do(t, r, http.MethodPost, base, testutil.Architecture(testAID, "Test A")); rec.Code != http.StatusOK {
		t.Fatalf("seed: got=%d body=%s", rec.Code, rec.Body.String())
	}
	for _, tc := range []struct{ method, path, code string }{
		{http.MethodPost, base, "invalid_id"},
		{http.MethodPut, idPath, "invalid_payload"},
	} {
		rec := do(t, r, tc.method, tc.path, "null")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s null: got=%d body=%q", tc.method, rec.Code, rec.Body.String())
		}
		if got := errorCode(t, rec); got != tc.code {
			t.Fatalf("%s null code: got=%q want=%q", tc.method, got, tc.code)
		}
	}
	rec := do(t, r, http.MethodGet, idPath, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Name":"Test A"`) {
		t.Fatalf("record changed after null update: got=%d %s", rec.Code, rec.Body.String())
	}
}

func TestEmptyStoreListsReturnArrays(t *testing.T) {
	r := newTestRouter(t)
	for _, p := range []string{base, base + "/MetaInfo", base + "/LightData", base + "/HeavyData"} {
		rec := do(t, r, http.MethodGet, p, nil)
		if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Fatalf("GET %s: got=%d body=%q", p, rec.Code, rec.Body.String())
		}
	}
}

type brokenService struct {
	services.WellBoreArchitectureService
}

func (brokenService) ListIDs(context.Context) ([]uuid.UUID, error) {
	return nil, services.ErrStore
}

func TestStoreErrorMapsTo500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := testutil.Logger(t)
	r := NewRouter(RouterConfig{
		Log: log,
		WellBoreArchitectureHandler: httpH.NewWellBoreArchitectureHandler(httpH.WellBoreArchitectureHandlerDeps{
			Log:     log,
			Service: brokenService{},
		}),
	})
	rec := do(t, r, http.MethodGet, base, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got=%d", rec.Code)
	}
	if got := errorCode(t, rec); got != "store_error" {
		t.Fatalf("code: got=%q", got)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)
	if rec := do(t, r, http.MethodGet, "/healthcheck", nil); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("health: got=%d %q", rec.Code, rec.Body.String())
	}
	if rec := do(t, r, http.MethodGet, "/metrics", nil); rec.Code != http.StatusOK {
		t.Fatalf("metrics: got=%d", rec.Code)
	}

	gin.SetMode(gin.TestMode)
	down := NewRouter(RouterConfig{HealthHandler: httpH.NewHealthHandler(func(context.Context) error {
		return errors.New("db down")
	})})
	if rec := do(t, down, http.MethodGet, "/healthcheck", nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unhealthy: got=%d", rec.Code)
	}
}

func TestCustomBasePath(t *testing.T) {
	if got := normalizeBasePath("api/v2/"); got != "/api/v2" {
		t.Fatalf("normalize: got=%q", got)
	}
	if got := normalizeBasePath(""); got != DefaultBasePath {
		t.Fatalf("default: got=%q", got)
	}
}
