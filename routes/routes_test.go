package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"restaurant/configs"
	"restaurant/entity"
	"restaurant/pkg/testdb"
	"restaurant/services"
	"restaurant/utils"
	"restaurant/ws"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type harness struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func setup(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	cfg := &configs.Config{JWTSecret: testSecret, JWTTTL: time.Hour}
	r := gin.New()
	require.NoError(t, RegisterRoutes(r, db, cfg, ws.NewFloorHub()))
	return &harness{t: t, db: db, router: r}
}

func (h *harness) user(username, role string) (*entity.User, *http.Cookie) {
	h.t.Helper()
	u, err := services.NewUserService(h.db).Create(services.UserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
		Role:     role,
	})
	require.NoError(h.t, err)
	token, err := utils.GenerateToken(u, testSecret, time.Hour)
	require.NoError(h.t, err)
	return u, &http.Cookie{Name: utils.SessionCookie, Value: token}
}

func (h *harness) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return h.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (h *harness) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req, cookies...)
}

func (h *harness) postJSON(path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return h.do(req)
}

func (h *harness) table(number, capacity int) *entity.Table {
	h.t.Helper()
	tbl := &entity.Table{TableNumber: number, Capacity: capacity, Status: entity.TableAvailable}
	require.NoError(h.t, h.db.Create(tbl).Error)
	return tbl
}

func (h *harness) menuItem(name, price string, available bool) *entity.MenuItem {
	h.t.Helper()
	m := &entity.MenuItem{Name: name, Price: decimal.RequireFromString(price), Category: entity.CategoryMain, Available: available}
	require.NoError(h.t, h.db.Create(m).Error)
	return m
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	h := setup(t)
	w := h.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())
}

func TestAPI_CreateOrder(t *testing.T) {
	h := setup(t)
	h.user("admin", entity.RoleAdmin)
	tbl := h.table(1, 4)
	burger := h.menuItem("Burger", "12.50", true)
	soda := h.menuItem("Soda", "3.25", true)

	w := h.postJSON("/api/orders", map[string]any{
		"table_id": tbl.ID,
		"items": []map[string]any{
			{"menu_item_id": burger.ID, "quantity": 2},
			{"menu_item_id": soda.ID, "notes": "no ice"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		OrderID     uint    `json:"order_id"`
		TotalAmount float64 `json:"total_amount"`
		Status      string  `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotZero(t, body.OrderID)
	assert.InDelta(t, 28.25, body.TotalAmount, 0.001)
	assert.Equal(t, entity.OrderPending, body.Status)

	// the table is taken now
	w = h.postJSON("/api/orders", map[string]any{
		"table_id": tbl.ID,
		"items":    []map[string]any{{"menu_item_id": soda.ID}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestAPI_CreateOrderRejects(t *testing.T) {
	h := setup(t)
	h.user("admin", entity.RoleAdmin)
	tbl := h.table(1, 4)
	burger := h.menuItem("Burger", "12.50", true)

	tests := []struct {
		name string
		body any
		want string
	}{
		{"malformed", `{"table_id":`, "invalid JSON payload"},
		{"no table", map[string]any{"items": []map[string]any{{"menu_item_id": burger.ID}}}, "table_id is required"},
		{"no items", map[string]any{"table_id": tbl.ID}, "items are required"},
		{"empty items", map[string]any{"table_id": tbl.ID, "items": []any{}}, "items are required"},
		{"zero quantity", map[string]any{"table_id": tbl.ID, "items": []map[string]any{{"menu_item_id": burger.ID, "quantity": 0}}}, "quantity"},
		{"unknown table", map[string]any{"table_id": 999, "items": []map[string]any{{"menu_item_id": burger.ID}}}, "table_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.postJSON("/api/orders", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}

	var count int64
	require.NoError(t, h.db.Model(&entity.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAPI_Lists(t *testing.T) {
	h := setup(t)
	h.table(1, 4)
	h.menuItem("Burger", "12.50", true)
	h.menuItem("Secret", "1", false)
	require.NoError(t, h.db.Create(&entity.Customer{Name: "Ann"}).Error)

	var menu []map[string]any
	w := h.get("/api/menu")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	require.Len(t, menu, 1)
	assert.Equal(t, "Burger", menu[0]["name"])
	assert.Equal(t, 12.5, menu[0]["price"])

	var tables []map[string]any
	w = h.get("/api/tables")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, "available", tables[0]["status"])

	var customers []map[string]any
	w = h.get("/api/customers")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.Nil(t, customers[0]["email"])
}

func TestAPI_Preflight(t *testing.T) {
	h := setup(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://pos.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := h.do(req)
	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPages_RequireLogin(t *testing.T) {
	h := setup(t)

	w := h.get("/customers")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fcustomers", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	w = h.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFlow(t *testing.T) {
	h := setup(t)
	h.user("alice", entity.RoleStaff)

	w := h.get("/login?next=/orders")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="/orders"`)

	w = h.postForm("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Login unsuccessful")
	assert.Nil(t, cookieNamed(w, utils.SessionCookie))

	w = h.postForm("/login", url.Values{"username": {"alice"}, "password": {"secret1"}, "next": {"/orders"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/orders", w.Header().Get("Location"))
	session := cookieNamed(w, utils.SessionCookie)
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	w = h.get("/orders", session)
	assert.Equal(t, http.StatusOK, w.Code)

	// a signed-in user skips the login page
	w = h.get("/login", session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLogin_IgnoresForeignNext(t *testing.T) {
	h := setup(t)
	h.user("alice", entity.RoleStaff)

	tests := []struct {
		next, want string
	}{
		{"//evil.example", "/dashboard"},
		{`/\evil.example`, "/dashboard"},
		{`\\evil.example`, "/dashboard"},
		{"https://evil.example/x", "/dashboard"},
		{"orders", "/dashboard"},
		{"/reservations?day=today", "/reservations?day=today"},
	}
	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			w := h.postForm("/login", url.Values{"username": {"alice"}, "password": {"secret1"}, "next": {tt.next}})
			require.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestRegister_SignedInUserGoesToDashboard(t *testing.T) {
	h := setup(t)
	_, session := h.user("alice", entity.RoleStaff)

	w := h.get("/register", session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = h.postForm("/register", url.Values{
		"username":         {"bob"},
		"email":            {"bob@example.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	}, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var count int64
	require.NoError(t, h.db.Model(&entity.User{}).Where("username = ?", "bob").Count(&count).Error)
	assert.Zero(t, count)
}

func TestTableEdit_KeepsBusyTableOccupied(t *testing.T) {
	h := setup(t)
	_, manager := h.user("mia", entity.RoleManager)
	tbl := h.table(7, 4)

	w := h.postForm("/orders/add", url.Values{"table_id": {itoa(tbl.ID)}}, manager)
	require.Equal(t, http.StatusFound, w.Code)

	w = h.postForm("/tables/edit/"+itoa(tbl.ID), url.Values{
		"table_number": {"7"},
		"capacity":     {"4"},
		"status":       {entity.TableAvailable},
	}, manager)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "must stay occupied")

	var reloaded entity.Table
	require.NoError(t, h.db.First(&reloaded, tbl.ID).Error)
	assert.Equal(t, entity.TableOccupied, reloaded.Status)
}

func TestRegister(t *testing.T) {
	h := setup(t)

	w := h.postForm("/register", url.Values{
		"username":         {"bob"},
		"email":            {"bob@example.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret2"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = h.postForm("/register", url.Values{
		"username":         {"bob"},
		"email":            {"bob@example.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	var u entity.User
	require.NoError(t, h.db.Where("username = ?", "bob").First(&u).Error)
	assert.Equal(t, entity.RoleStaff, u.Role)
}

func TestDashboardRenders(t *testing.T) {
	h := setup(t)
	_, session := h.user("alice", entity.RoleStaff)
	h.table(1, 4)

	w := h.get("/dashboard", session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestCustomerForm(t *testing.T) {
	h := setup(t)
	_, session := h.user("alice", entity.RoleStaff)

	w := h.postForm("/customers/add", url.Values{"name": {""}}, session)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = h.postForm("/customers/add", url.Values{"name": {"Ann"}, "email": {"ann@example.com"}}, session)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/customers", w.Header().Get("Location"))
	require.NotNil(t, cookieNamed(w, "flash"))

	w = h.postForm("/customers/add", url.Values{"name": {"Ann 2"}, "email": {"ann@example.com"}}, session)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = h.get("/customers", session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ann@example.com")
}

func TestRoleGates(t *testing.T) {
	h := setup(t)
	_, staff := h.user("alice", entity.RoleStaff)
	_, chef := h.user("carl", entity.RoleChef)
	_, manager := h.user("mia", entity.RoleManager)

	w := h.get("/menu/add", staff)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = h.get("/menu/add", manager)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.get("/inventory", staff)
	assert.Equal(t, http.StatusFound, w.Code)
	w = h.get("/inventory", chef)
	assert.Equal(t, http.StatusOK, w.Code)

	// staff may still browse the menu
	w = h.get("/menu", staff)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderPages(t *testing.T) {
	h := setup(t)
	_, session := h.user("alice", entity.RoleStaff)
	tbl := h.table(1, 4)
	burger := h.menuItem("Burger", "12.50", true)

	w := h.postForm("/orders/add", url.Values{"table_id": {itoa(tbl.ID)}}, session)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	var order entity.Order
	require.NoError(t, h.db.First(&order).Error)
	assert.Equal(t, "/orders/"+itoa(order.ID)+"/items", w.Header().Get("Location"))

	var reloaded entity.Table
	require.NoError(t, h.db.First(&reloaded, tbl.ID).Error)
	assert.Equal(t, entity.TableOccupied, reloaded.Status)

	// second order on the same table
	w = h.postForm("/orders/add", url.Values{"table_id": {itoa(tbl.ID)}}, session)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "That table already has an active order.")

	items := "/orders/" + itoa(order.ID) + "/items"
	w = h.postForm(items, url.Values{"menu_item_id": {itoa(burger.ID)}, "quantity": {"2"}}, session)
	require.Equal(t, http.StatusFound, w.Code)

	w = h.get(items, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Burger")
	assert.Contains(t, w.Body.String(), "25.00")

	w = h.postForm("/orders/"+itoa(order.ID)+"/complete", nil, session)
	require.Equal(t, http.StatusFound, w.Code)
	require.NoError(t, h.db.First(&reloaded, tbl.ID).Error)
	assert.Equal(t, entity.TableAvailable, reloaded.Status)

	// closed orders refuse changes and say why
	w = h.postForm("/orders/"+itoa(order.ID)+"/prepare", nil, session)
	require.Equal(t, http.StatusFound, w.Code)
	assert.NotNil(t, cookieNamed(w, "flash"))

	w = h.get("/orders/999/items", session)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
