package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starford/lingshu/internal/testutil"
)

// testEnv builds a router over the seeded catalog. An empty token means
// disabled auth mode.
func testEnv(t *testing.T, authToken string) (http.Handler, *testutil.StaticAsker) {
	t.Helper()
	svc, _ := testutil.SeededService(t)
	asker := &testutil.StaticAsker{Answer: "既病防变。"}
	router := NewRouter(svc, asker, authToken != "", authToken, nil)
	return router, asker
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListCategory(t *testing.T) {
	router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/herbs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	items := resp["items"].([]any)
	if len(items) != 3 {
		t.Errorf("herbs = %d, want 3", len(items))
	}
	first := items[0].(map[string]any)
	effects := first["effects"].([]any)
	if effects[0].(map[string]any)["related_formula_name"] != "麻黄汤" {
		t.Errorf("effect reference not resolved: %v", effects[0])
	}
}

func TestListCategoryFiltered(t *testing.T) {
	router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/formulas?q=%E8%A1%A5%E7%9B%8A%E5%89%82", nil) // q=补益剂
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	items := resp["items"].([]any)
	if len(items) != 1 {
		t.Errorf("filtered formulas = %d, want 1", len(items))
	}
}

func TestListUnknownCategory(t *testing.T) {
	router, _ := testEnv(t, "")
	w := doJSON(t, router, http.MethodGet, "/potions", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown category = %d, want 404", w.Code)
	}
}

func TestAdminListPagination(t *testing.T) {
	router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/admin/formulas?limit=2&offset=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin list = %d", w.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["total"].(float64) != 3 {
		t.Errorf("total = %v, want 3", resp["total"])
	}
	items := resp["items"].([]any)
	if len(items) != 1 {
		t.Errorf("page = %d items, want 1", len(items))
	}
}

func TestFormAndUpdateFlow(t *testing.T) {
	router, _ := testEnv(t, "")

	// Fetch the editable form.
	w := doJSON(t, router, http.MethodGet, "/admin/herbs/h1/form", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get form = %d, body = %s", w.Code, w.Body.String())
	}
	var form SaveRequest
	_ = json.Unmarshal(w.Body.Bytes(), &form)
	if form.Herb == nil || form.Herb.Flavor != "辛,微苦" {
		t.Fatalf("form = %+v", form)
	}

	// Edit and save back.
	form.Herb.Nature = "微温"
	w = doJSON(t, router, http.MethodPut, "/admin/herbs/h1", form)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d, body = %s", w.Code, w.Body.String())
	}
	var saved SaveResponse
	_ = json.Unmarshal(w.Body.Bytes(), &saved)
	if saved.ID != "h1" || saved.Created {
		t.Errorf("saved = %+v", saved)
	}

	// Verify through the browse view.
	w = doJSON(t, router, http.MethodGet, "/herbs?q=Ma+Huang", nil)
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	item := resp["items"].([]any)[0].(map[string]any)
	if item["nature"] != "微温" {
		t.Errorf("nature after update = %v", item["nature"])
	}
}

func TestCreateRecord(t *testing.T) {
	router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/admin/skills", map[string]any{
		"skill": map[string]any{
			"title":    "舌诊",
			"category": "诊法",
			"steps":    "观舌质\n观舌苔",
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d, body = %s", w.Code, w.Body.String())
	}
	var saved SaveResponse
	_ = json.Unmarshal(w.Body.Bytes(), &saved)
	if !saved.Created || saved.ID == "" {
		t.Errorf("saved = %+v", saved)
	}

	// The URL decides the collection even when the body omits category.
	w = doJSON(t, router, http.MethodGet, "/admin/skills", nil)
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["total"].(float64) != 3 {
		t.Errorf("skills total = %v, want 3", resp["total"])
	}
}

func TestCreateMismatchedPayload(t *testing.T) {
	router, _ := testEnv(t, "")
	w := doJSON(t, router, http.MethodPost, "/admin/herbs", map[string]any{
		"skill": map[string]any{"title": "x"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("mismatched payload = %d, want 400", w.Code)
	}
}

func TestCreateInvalidJSON(t *testing.T) {
	router, _ := testEnv(t, "")
	req := httptest.NewRequest(http.MethodPost, "/admin/herbs", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad json = %d, want 400", w.Code)
	}
}

func TestDeleteRecord(t *testing.T) {
	router, _ := testEnv(t, "")

	w := doJSON(t, router, http.MethodDelete, "/admin/formulas/f1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/admin/formulas/f1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", w.Code)
	}
}

func TestGetFormNotFound(t *testing.T) {
	router, _ := testEnv(t, "")
	w := doJSON(t, router, http.MethodGet, "/admin/herbs/h404/form", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing form = %d, want 404", w.Code)
	}
}

func TestQuizEndpoint(t *testing.T) {
	router, _ := testEnv(t, "")

	// No body: default size.
	w := doJSON(t, router, http.MethodPost, "/quiz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("quiz = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if n := len(resp["items"].([]any)); n != 10 {
		t.Errorf("default quiz = %d items, want 10", n)
	}

	// Oversized request clamps to the pool.
	w = doJSON(t, router, http.MethodPost, "/quiz", map[string]int{"size": 50})
	resp = map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if n := len(resp["items"].([]any)); n != 12 {
		t.Errorf("oversized quiz = %d items, want 12", n)
	}
}

func TestAskEndpoint(t *testing.T) {
	router, asker := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/ask", map[string]string{
		"query":   "什么是治未病？",
		"context": "预防医学",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("ask = %d, body = %s", w.Code, w.Body.String())
	}
	var resp AskResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Answer != "既病防变。" {
		t.Errorf("answer = %q", resp.Answer)
	}
	if asker.LastQuery != "什么是治未病？" || asker.LastCtx != "预防医学" {
		t.Errorf("asker saw %q / %q", asker.LastQuery, asker.LastCtx)
	}
}

func TestAskMissingQuery(t *testing.T) {
	router, _ := testEnv(t, "")
	w := doJSON(t, router, http.MethodPost, "/ask", map[string]string{"context": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("ask without query = %d, want 400", w.Code)
	}
}

func TestAuthMiddlewareModes(t *testing.T) {
	router, _ := testEnv(t, "secret123")

	// No token → 401.
	w := doJSON(t, router, http.MethodGet, "/herbs", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthed = %d, want 401", w.Code)
	}

	// Wrong token → 401.
	req := httptest.NewRequest(http.MethodGet, "/herbs", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", rec.Code)
	}

	// Valid token → 200.
	req = httptest.NewRequest(http.MethodGet, "/herbs", nil)
	req.Header.Set("Authorization", "Bearer secret123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token = %d, want 200", rec.Code)
	}
}

func TestSSEEventsAuthProtected(t *testing.T) {
	svc, _ := testutil.SeededService(t)

	// Minimal SSE handler stub: writes headers and blocks until context done.
	sseHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		<-r.Context().Done()
	})
	router := NewRouter(svc, &testutil.StaticAsker{}, true, "tok", sseHandler)

	// No token → 401.
	w := doJSON(t, router, http.MethodGet, "/events", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("SSE no auth = %d, want 401", w.Code)
	}

	// Valid token → streams until the context ends.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("SSE with token = %d, want 200", rec.Code)
	}
}
