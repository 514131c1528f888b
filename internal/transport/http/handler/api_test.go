package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"charity-fund-api/internal/core/auth"
	"charity-fund-api/internal/core/database"
	"charity-fund-api/internal/domain"
	"charity-fund-api/internal/transport/http/router"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type env struct {
	r     *gin.Engine
	db    *gorm.DB
	jwter *auth.JWTer
}

// newEnv 每个测试一套独立的内存库 + 完整引擎
func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Campaign{}, &domain.Donation{}))

	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return &env{r: router.NewAPIEngine(zap.NewNop(), db, jwter, nil), db: db, jwter: jwter}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success    bool            `json:"success"`
	Count      *int            `json:"count"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	NewBalance *float64        `json:"newBalance"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func dataInto(t *testing.T, w *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	e := decode(t, w)
	require.NoError(t, json.Unmarshal(e.Data, out))
	return e
}

func (e *env) register(t *testing.T, name, email, role string) (token, id string) {
	t.Helper()
	w := e.do(t, "POST", "/api/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "secret123", "role": role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	dataInto(t, w, &out)
	require.NotEmpty(t, out.Token)
	return out.Token, out.User.ID
}

func (e *env) topUp(t *testing.T, token string, amount float64) {
	t.Helper()
	w := e.do(t, "PUT", "/api/users/balance", token, map[string]any{"amount": amount})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (e *env) createCampaign(t *testing.T, token, title string, goal float64) string {
	t.Helper()
	w := e.do(t, "POST", "/api/campaigns", token, map[string]any{
		"title":       title,
		"description": "a worthy cause",
		"category":    "Medical",
		"goalAmount":  goal,
		"endDate":     time.Now().AddDate(0, 1, 0),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c domain.CampaignView
	dataInto(t, w, &c)
	require.NotEmpty(t, c.ID)
	return c.ID
}

func (e *env) donate(t *testing.T, token, campaignID string, amount float64, anonymous bool, message string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, "POST", "/api/donations", token, map[string]any{
		"campaignId":  campaignID,
		"amount":      amount,
		"message":     message,
		"isAnonymous": anonymous,
	})
}

func (e *env) getCampaign(t *testing.T, id string) domain.CampaignView {
	t.Helper()
	w := e.do(t, "GET", "/api/campaigns/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var c domain.CampaignView
	dataInto(t, w, &c)
	return c
}

func TestAuthRegisterLoginMe(t *testing.T) {
	e := newEnv(t)

	token, id := e.register(t, "Alice", "alice@example.com", "fundraiser")

	// me
	w := e.do(t, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me domain.User
	dataInto(t, w, &me)
	require.Equal(t, id, me.ID)
	require.Equal(t, "fundraiser", me.Role)

	// 登录成功
	w = e.do(t, "POST", "/api/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decode(t, w).Success)

	// 密码错误
	w = e.do(t, "POST", "/api/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid credentials", decode(t, w).Error)

	// 邮箱重复
	w = e.do(t, "POST", "/api/auth/register", "", map[string]any{
		"name": "Other", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 不能注册成 admin
	w = e.do(t, "POST", "/api/auth/register", "", map[string]any{
		"name": "Eve", "email": "eve@example.com", "password": "secret123", "role": "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 无 token 访问私有路由
	w = e.do(t, "GET", "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, decode(t, w).Success)
}

func TestCampaignCreateDefaults(t *testing.T) {
	e := newEnv(t)
	token, id := e.register(t, "Fay", "fay@example.com", "fundraiser")

	w := e.do(t, "POST", "/api/campaigns", token, map[string]any{
		"title":       "Clean water",
		"description": "wells for the village",
		"category":    "Environment",
		"goalAmount":  500,
		"endDate":     time.Now().AddDate(0, 2, 0),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var c domain.CampaignView
	dataInto(t, w, &c)
	require.Equal(t, domain.CampaignActive, c.Status)
	require.True(t, c.CurrentAmount.IsZero())
	require.Equal(t, 0, c.ProgressPercentage)
	require.Equal(t, id, c.CreatedBy)
	require.Equal(t, domain.DefaultCampaignImage, c.Image)
	require.Positive(t, c.DaysRemaining)
}

func TestCampaignValidationErrors(t *testing.T) {
	e := newEnv(t)
	token, _ := e.register(t, "Fay", "fay@example.com", "fundraiser")

	base := func() map[string]any {
		return map[string]any{
			"title":       "T",
			"description": "d",
			"category":    "Medical",
			"goalAmount":  10,
			"endDate":     time.Now().AddDate(0, 1, 0),
		}
	}

	bad := base()
	bad["category"] = "Crypto"
	w := e.do(t, "POST", "/api/campaigns", token, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)

	bad = base()
	bad["goalAmount"] = 0
	w = e.do(t, "POST", "/api/campaigns", token, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)

	bad = base()
	delete(bad, "title")
	w = e.do(t, "POST", "/api/campaigns", token, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)

	bad = base()
	delete(bad, "endDate")
	w = e.do(t, "POST", "/api/campaigns", token, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCampaignListAndGet(t *testing.T) {
	e := newEnv(t)
	token, _ := e.register(t, "Fay", "fay@example.com", "fundraiser")
	id := e.createCampaign(t, token, "Books for kids", 100)

	// 公开列表带 creator 摘要和 count
	w := e.do(t, "GET", "/api/campaigns", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.CampaignView
	res := dataInto(t, w, &list)
	require.NotNil(t, res.Count)
	require.Equal(t, 1, *res.Count)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Creator)
	require.Equal(t, "Fay", list[0].Creator.Name)
	require.Equal(t, "fay@example.com", list[0].Creator.Email)

	// 单个
	c := e.getCampaign(t, id)
	require.Equal(t, "Books for kids", c.Title)

	// 不存在
	w = e.do(t, "GET", "/api/campaigns/no-such-id", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Campaign not found", decode(t, w).Error)
}

func TestCampaignOwnership(t *testing.T) {
	e := newEnv(t)
	ownerTok, _ := e.register(t, "Owner", "owner@example.com", "fundraiser")
	otherTok, _ := e.register(t, "Other", "other@example.com", "fundraiser")
	id := e.createCampaign(t, ownerTok, "Original title", 100)

	// 非 owner 改不动；历史契约这里是 401
	w := e.do(t, "PUT", "/api/campaigns/"+id, otherTok, map[string]any{"title": "Hijacked"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Original title", e.getCampaign(t, id).Title)

	// 非 owner 删不掉
	w = e.do(t, "DELETE", "/api/campaigns/"+id, otherTok, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// owner 可以改
	w = e.do(t, "PUT", "/api/campaigns/"+id, ownerTok, map[string]any{"title": "New title"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "New title", e.getCampaign(t, id).Title)

	// 部分更新也要过校验
	w = e.do(t, "PUT", "/api/campaigns/"+id, ownerTok, map[string]any{"category": "Nonsense"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// admin 可以越权改：直接造一个 admin 发 token
	admin := domain.User{ID: "admin-1", Name: "Root", Email: "root@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	require.NoError(t, e.db.Create(&admin).Error)
	adminTok, err := e.jwter.Issue(admin.ID, admin.Role)
	require.NoError(t, err)
	w = e.do(t, "PUT", "/api/campaigns/"+id, adminTok, map[string]any{"title": "Admin edit"})
	require.Equal(t, http.StatusOK, w.Code)

	// owner 删除，data 是空对象
	w = e.do(t, "DELETE", "/api/campaigns/"+id, ownerTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{}`, string(decode(t, w).Data))

	w = e.do(t, "GET", "/api/campaigns/"+id, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyCampaigns(t *testing.T) {
	e := newEnv(t)
	aTok, _ := e.register(t, "A", "a@example.com", "fundraiser")
	bTok, _ := e.register(t, "B", "b@example.com", "fundraiser")
	e.createCampaign(t, aTok, "A one", 10)
	e.createCampaign(t, aTok, "A two", 20)
	e.createCampaign(t, bTok, "B one", 30)

	w := e.do(t, "GET", "/api/campaigns/my-campaigns", aTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []domain.CampaignView
	res := dataInto(t, w, &mine)
	require.Equal(t, 2, *res.Count)
	for _, c := range mine {
		require.Contains(t, []string{"A one", "A two"}, c.Title)
	}
}

// 对应典型场景：目标 100 已筹 80，余额 50 捐 30 → 达标、余额 20
func TestDonationCompletesCampaign(t *testing.T) {
	e := newEnv(t)
	fundTok, _ := e.register(t, "Fay", "fay@example.com", "fundraiser")
	id := e.createCampaign(t, fundTok, "Goal hundred", 100)

	firstTok, _ := e.register(t, "First", "first@example.com", "donor")
	e.topUp(t, firstTok, 200)
	w := e.donate(t, firstTok, id, 80, false, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 还没到目标，不能提前翻 completed
	c := e.getCampaign(t, id)
	require.Equal(t, domain.CampaignActive, c.Status)
	require.Equal(t, "80", c.CurrentAmount.String())
	require.Equal(t, 80, c.ProgressPercentage)

	donorTok, _ := e.register(t, "Dana", "dana@example.com", "donor")
	e.topUp(t, donorTok, 50)

	w = e.donate(t, donorTok, id, 30, false, "get well soon")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode(t, w)
	require.True(t, res.Success)
	require.NotNil(t, res.NewBalance)
	require.Equal(t, float64(20), *res.NewBalance)

	var dv domain.DonationView
	dataInto(t, w, &dv)
	require.Equal(t, domain.DonationCompleted, dv.Status)
	require.NotNil(t, dv.Campaign)
	require.Equal(t, "Goal hundred", dv.Campaign.Title)
	require.NotNil(t, dv.Donor)
	require.Equal(t, "dana@example.com", dv.Donor.Email)

	c = e.getCampaign(t, id)
	require.Equal(t, "110", c.CurrentAmount.String())
	require.Equal(t, domain.CampaignCompleted, c.Status)
	require.Equal(t, 100, c.ProgressPercentage)

	// 钱包确实扣了
	w = e.do(t, "GET", "/api/users/balance", donorTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bal struct {
		Balance float64 `json:"balance"`
	}
	dataInto(t, w, &bal)
	require.Equal(t, float64(20), bal.Balance)

	// 达标的活动从公开列表消失
	w = e.do(t, "GET", "/api/campaigns", "", nil)
	require.Equal(t, 0, *decode(t, w).Count)
}

func TestDonationInsufficientBalance(t *testing.T) {
	e := newEnv(t)
	fundTok, _ := e.register(t, "Fay", "fay@example.com", "fundraiser")
	id := e.createCampaign(t, fundTok, "Small goal", 100)

	donorTok, _ := e.register(t, "Poor", "poor@example.com", "donor")
	e.topUp(t, donorTok, 10)

	w := e.donate(t, donorTok, id, 15, false, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Insufficient balance", decode(t, w).Error)

	// 什么都没发生：捐赠没落库、进度没动、钱没扣
	w = e.do(t, "GET", "/api/donations/my-donations", donorTok, nil)
	require.Equal(t, 0, *decode(t, w).Count)
	require.True(t, e.getCampaign(t, id).CurrentAmount.IsZero())
	var bal struct {
		Balance float64 `json:"balance"`
	}
	w = e.do(t, "GET", "/api/users/balance", donorTok, nil)
	dataInto(t, w, &bal)
	require.Equal(t, float64(10), bal.Balance)
}

func TestDonationBadInput(t *testing.T) {
	e := newEnv(t)
	fundTok, _ := e.register(t, "Fay", "fay@example.com", "fundraiser")
	id := e.createCampaign(t, fundTok, "Goal", 100)
	donorTok, _ := e.register(t, "Dana", "dana@example.com", "donor")
	e.topUp(t, donorTok, 100)

	// 活动不存在
	w := e.donate(t, donorTok, "no-such-campaign", 10, false, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Campaign not found", decode(t, w).Error)

	// 非正金额
	w = e.donate(t, donorTok, id, 0, false, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = e.donate(t, donorTok, id, -5, false, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 未登录
	w = e.donate(t, "", id, 10, false, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCampaignDonationWall(t *testing.T) {
	e := newEnv(t)
	fundTok, _ := e.register(t, "Fay", "fay@example.com", "fundraiser")
	id := e.createCampaign(t, fundTok, "Wall", 10000)

	openTok, _ := e.register(t, "Open", "open@example.com", "donor")
	anonTok, _ := e.register(t, "Shy", "shy@example.com", "donor")
	e.topUp(t, openTok, 1000)
	e.topUp(t, anonTok, 1000)

	w := e.donate(t, openTok, id, 25, false, "good luck")
	require.Equal(t, http.StatusCreated, w.Code)
	w = e.donate(t, anonTok, id, 40, true, "secret support")
	require.Equal(t, http.StatusCreated, w.Code)

	// 匿名捐赠整条不出现；捐赠人只露名字
	w = e.do(t, "GET", "/api/donations/campaign/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wall []domain.DonationView
	res := dataInto(t, w, &wall)
	require.Equal(t, 1, *res.Count)
	require.Len(t, wall, 1)
	require.Equal(t, "good luck", wall[0].Message)
	require.NotNil(t, wall[0].Donor)
	require.Equal(t, "Open", wall[0].Donor.Name)
	require.Empty(t, wall[0].Donor.Email)
	require.NotContains(t, w.Body.String(), "shy@example.com")

	// 最多只给 10 条
	for i := 0; i < 12; i++ {
		w = e.donate(t, openTok, id, 1, false, "")
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w = e.do(t, "GET", "/api/donations/campaign/"+id, "", nil)
	require.Equal(t, 10, *decode(t, w).Count)
}

func TestMyDonationsAndStats(t *testing.T) {
	e := newEnv(t)
	fundTok, _ := e.register(t, "Fay", "fay@example.com", "fundraiser")
	first := e.createCampaign(t, fundTok, "First cause", 1000)
	second := e.createCampaign(t, fundTok, "Second cause", 1000)

	donorTok, _ := e.register(t, "Dana", "dana@example.com", "donor")
	e.topUp(t, donorTok, 500)

	require.Equal(t, http.StatusCreated, e.donate(t, donorTok, first, 30, false, "").Code)
	require.Equal(t, http.StatusCreated, e.donate(t, donorTok, first, 10, false, "").Code)
	require.Equal(t, http.StatusCreated, e.donate(t, donorTok, second, 20, true, "").Code)

	// 我的捐赠带活动标题/分类
	w := e.do(t, "GET", "/api/donations/my-donations", donorTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []domain.DonationView
	res := dataInto(t, w, &mine)
	require.Equal(t, 3, *res.Count)
	require.NotNil(t, mine[0].Campaign)
	require.Equal(t, "Medical", mine[0].Campaign.Category)

	// 汇总：总额 60，支持过 2 个活动
	w = e.do(t, "GET", "/api/donations/stats", donorTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		TotalDonated       float64 `json:"totalDonated"`
		CampaignsSupported int64   `json:"campaignsSupported"`
	}
	dataInto(t, w, &stats)
	require.Equal(t, float64(60), stats.TotalDonated)
	require.Equal(t, int64(2), stats.CampaignsSupported)

	// 没捐过的人拿到全 0
	freshTok, _ := e.register(t, "Fresh", "fresh@example.com", "donor")
	w = e.do(t, "GET", "/api/donations/stats", freshTok, nil)
	dataInto(t, w, &stats)
	require.Zero(t, stats.TotalDonated)
	require.Zero(t, stats.CampaignsSupported)
}

func TestBalanceEndpoints(t *testing.T) {
	e := newEnv(t)
	token, id := e.register(t, "Dana", "dana@example.com", "donor")

	// 初始余额 0
	w := e.do(t, "GET", "/api/users/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bal struct {
		Balance float64 `json:"balance"`
	}
	dataInto(t, w, &bal)
	require.Zero(t, bal.Balance)

	// 负数充值被拒，余额不动
	w = e.do(t, "PUT", "/api/users/balance", token, map[string]any{"amount": -5})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Please provide a valid amount", decode(t, w).Error)

	w = e.do(t, "PUT", "/api/users/balance", token, map[string]any{"amount": 100})
	require.Equal(t, http.StatusOK, w.Code)
	dataInto(t, w, &bal)
	require.Equal(t, float64(100), bal.Balance)

	// 公开资料不带密码散列
	w = e.do(t, "GET", "/api/users/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "password")
	require.NotContains(t, w.Body.String(), "Hash")

	w = e.do(t, "GET", "/api/users/no-such-user", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User not found", decode(t, w).Error)
}
