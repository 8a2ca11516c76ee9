package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/ubu-lite/internal/config"
	"github.com/hongminglow/ubu-lite/internal/gateway"
	"github.com/hongminglow/ubu-lite/internal/logging"
	"github.com/hongminglow/ubu-lite/internal/market"
	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/outcome"
	"github.com/hongminglow/ubu-lite/internal/server"
	"github.com/hongminglow/ubu-lite/internal/session"
	"github.com/hongminglow/ubu-lite/internal/storage/file"
	"github.com/hongminglow/ubu-lite/internal/storage/memory"
)

func newMockAPI(t *testing.T) *API {
	t.Helper()
	cfg := config.MockConfig{
		JWTSecret:   "api-secret",
		JWTIssuer:   "ubu-test",
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"*"},
	}
	ts := httptest.NewServer(server.New(cfg, market.New(), logging.Discard()).Handler())
	t.Cleanup(ts.Close)
	return New(gateway.New(ts.URL+"/api"), nil)
}

// signUp registers and logs in, returning an API bound to the new account.
func signUp(t *testing.T, a *API, username string, role models.Role) *API {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, a.Register(ctx, dto.RegisterRequest{Username: username, Password: "Pass!123", Role: role}).Err())
	login, err := a.Login(ctx, dto.LoginRequest{Username: username, Password: "Pass!123"}).Get()
	require.NoError(t, err)
	return a.WithToken(login.Access)
}

func TestCatalogNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, op := range Catalog() {
		assert.False(t, seen[op.Name], "duplicate %s", op.Name)
		seen[op.Name] = true
		assert.True(t, strings.HasPrefix(op.Path, "/") && strings.HasSuffix(op.Path, "/"), op.Path)
		if op.Body != NoBody {
			assert.NotEqual(t, http.MethodGet, op.Method, op.Name)
		}
	}

	op, ok := Lookup("approve_booking")
	require.True(t, ok)
	assert.True(t, op.NeedsID())
	assert.Equal(t, "/bookings/42/approve/", op.Resolve(42))

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestBuildRequests(t *testing.T) {
	a := New(nil, nil)

	req, err := a.build(OpSearchCreatives, Args{Query: map[string][]string{"location": {"Kuala Lumpur"}}})
	require.NoError(t, err)
	assert.Equal(t, "/creatives/search/?location=Kuala+Lumpur", req.Path)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Nil(t, req.Body)

	req, err = a.build(OpApproveBooking, Args{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, "/bookings/7/approve/", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	req, err = a.build(OpCreatePortfolioItem, Args{Form: gateway.NewForm().Field("title", "x")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data; boundary="))
}

func TestStaticToken(t *testing.T) {
	tok, ok, err := StaticToken("abc").Token(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok, _ = StaticToken("").Token(context.Background())
	assert.False(t, ok)
}

func TestLoginRequiresAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"refresh":"r"}`))
	}))
	t.Cleanup(srv.Close)

	res := New(gateway.New(srv.URL), nil).Login(context.Background(), dto.LoginRequest{Username: "a", Password: "b"})
	require.False(t, res.OK())
	assert.ErrorIs(t, res.Err(), dto.ErrMissingAccessToken)
	assert.Equal(t, outcome.KindDecode, res.Notice().Kind)
}

func TestSessionStoreSuppliesToken(t *testing.T) {
	a := newMockAPI(t)
	ctx := context.Background()
	require.NoError(t, a.Register(ctx, dto.RegisterRequest{Username: "ada", Password: "pw", Role: models.RoleClient}).Err())
	login, err := a.Login(ctx, dto.LoginRequest{Username: "ada", Password: "pw"}).Get()
	require.NoError(t, err)

	store := session.New(memory.New())
	authed := New(a.doer, store)

	res := authed.GetWallet(ctx)
	require.False(t, res.OK())
	n := res.Notice()
	assert.Equal(t, http.StatusUnauthorized, n.Status)
	assert.Contains(t, n.Message, "Authentication credentials were not provided.")

	require.NoError(t, store.Begin(ctx, login, "ada"))
	wallet, err := authed.GetWallet(ctx).Get()
	require.NoError(t, err)
	assert.Equal(t, "0.00", wallet.AvailableBalance)

	require.NoError(t, store.Logout(ctx))
	assert.False(t, authed.GetWallet(ctx).OK())
}

func TestCorruptSessionFileIsASessionFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	kv, err := file.New(path)
	require.NoError(t, err)

	a := New(newMockAPI(t).doer, session.New(kv))
	n := a.ListBookings(context.Background()).Notice()
	assert.Equal(t, outcome.KindSession, n.Kind)
	assert.False(t, n.Retryable)
	assert.NotContains(t, n.Message, outcome.TransportPrefix)
	assert.Contains(t, n.Message, "list_bookings: read token")
}

func TestRefreshToken(t *testing.T) {
	a := newMockAPI(t)
	ctx := context.Background()
	require.NoError(t, a.Register(ctx, dto.RegisterRequest{Username: "ada", Password: "pw", Role: models.RoleClient}).Err())
	login, err := a.Login(ctx, dto.LoginRequest{Username: "ada", Password: "pw"}).Get()
	require.NoError(t, err)

	refreshed, err := a.RefreshToken(ctx, login.Refresh).Get()
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Access)

	res := a.RefreshToken(ctx, login.Access)
	require.False(t, res.OK())
	assert.Equal(t, http.StatusUnauthorized, res.Notice().Status)
}

func TestBookingConversation(t *testing.T) {
	a := newMockAPI(t)
	ctx := context.Background()
	creative := signUp(t, a, "lens", models.RoleCreative)
	client := signUp(t, a, "bride", models.RoleClient)

	svc, err := creative.CreateService(ctx, dto.ServiceInput{Title: "Portraits", Price: "120"}).Get()
	require.NoError(t, err)
	assert.Equal(t, "120.00", svc.Price)

	date := time.Date(2026, 11, 20, 9, 0, 0, 0, time.UTC)
	booking, err := client.CreateBooking(ctx, dto.BookingInput{Service: svc.ID, Date: date, Notes: "outdoor"}).Get()
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)

	res := client.ApproveBooking(ctx, booking.ID)
	require.False(t, res.OK())
	assert.Equal(t, http.StatusForbidden, res.Notice().Status)

	approved, err := creative.ApproveBooking(ctx, booking.ID).Get()
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, approved.Status)

	scheduled, err := creative.ScheduleBooking(ctx, booking.ID, dto.ScheduleInput{MeetURL: "https://meet.example/abc", DurationMinutes: 45}).Get()
	require.NoError(t, err)
	assert.Equal(t, "https://meet.example/abc", scheduled.MeetURL)

	_, err = client.SendMessage(ctx, booking.ID, "see you there").Get()
	require.NoError(t, err)
	_, err = creative.SendMessage(ctx, booking.ID, "bring the rings").Get()
	require.NoError(t, err)

	msgs, err := creative.ListMessages(ctx, booking.ID).Get()
	require.NoError(t, err)
	require.Len(t, msgs.Items, 2)
	assert.Equal(t, "see you there", msgs.Items[0].Content)

	list, err := creative.ListBookings(ctx).Get()
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Items, 1)
	assert.Equal(t, booking.ID, list.Items[0].ID)

	outsider := signUp(t, a, "nosy", models.RoleClient)
	res = outsider.GetBooking(ctx, booking.ID)
	require.False(t, res.OK())
	assert.Equal(t, http.StatusNotFound, res.Notice().Status)
}

func TestPortfolioUpload(t *testing.T) {
	a := newMockAPI(t)
	ctx := context.Background()
	creative := signUp(t, a, "lens", models.RoleCreative)

	form := gateway.NewForm().
		Field("title", "Golden hour").
		Field("media_type", "image").
		File("file", "golden.jpg", strings.NewReader("\xff\xd8\xff"))
	item, err := creative.CreatePortfolioItem(ctx, form).Get()
	require.NoError(t, err)
	assert.Equal(t, "Golden hour", item.Title)
	require.NotNil(t, item.File)
	assert.Contains(t, *item.File, "golden.jpg")

	items, err := creative.ListPortfolio(ctx).Get()
	require.NoError(t, err)
	require.Len(t, items.Items, 1)

	require.NoError(t, creative.DeletePortfolioItem(ctx, item.ID).Err())
	items, err = creative.ListPortfolio(ctx).Get()
	require.NoError(t, err)
	assert.Empty(t, items.Items)

	profile, err := creative.UpdateMyProfileMultipart(ctx, gateway.NewForm().
		Field("city", "Penang").
		File("avatar", "me.png", strings.NewReader("png"))).Get()
	require.NoError(t, err)
	assert.Equal(t, "Penang", profile.City)
	require.NotNil(t, profile.Avatar)

	found, err := a.SearchCreatives(ctx, "penang").Get()
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "lens", found.Items[0].User.Username)
}

func TestEscrowReleaseAndWithdraw(t *testing.T) {
	a := newMockAPI(t)
	ctx := context.Background()
	// the demo helper sells the demo creative's service; owning that
	// account lets the test fulfill the creative side
	creative := signUp(t, a, "demo_creative", models.RoleCreative)
	client := signUp(t, a, "buyer", models.RoleClient)

	funded, err := client.CreateDemoFundedOrder(ctx).Get()
	require.NoError(t, err)
	assert.Equal(t, "100.00", funded.Amount)

	escrows, err := creative.ListEscrows(ctx).Get()
	require.NoError(t, err)
	require.Len(t, escrows.Items, 1)
	assert.Equal(t, "67.00", escrows.Items[0].CreatorAmount)
	assert.Equal(t, "33.00", escrows.Items[0].FeeAmount)

	res, err := client.ClientFulfill(ctx, funded.EscrowID).Get()
	require.NoError(t, err)
	assert.False(t, res.Released)

	forbidden := client.CreativeFulfill(ctx, funded.EscrowID)
	require.False(t, forbidden.OK())
	assert.Equal(t, http.StatusForbidden, forbidden.Notice().Status)

	res, err = creative.CreativeFulfill(ctx, funded.EscrowID).Get()
	require.NoError(t, err)
	assert.True(t, res.Released)
	assert.Equal(t, models.EscrowReleased, res.Status)

	wallet, err := creative.GetWallet(ctx).Get()
	require.NoError(t, err)
	assert.Equal(t, "67.00", wallet.AvailableBalance)

	over := creative.DemoWithdraw(ctx, 500)
	require.False(t, over.OK())
	assert.Contains(t, over.Notice().Message, "Insufficient balance")

	out, err := creative.DemoWithdraw(ctx, 20.5).Get()
	require.NoError(t, err)
	assert.Equal(t, "20.50", out.Requested)
	assert.Equal(t, "46.50", out.AvailableBalance)
	assert.Equal(t, "20.50", out.PendingBalance)

	all, err := creative.DemoWithdraw(ctx, 0).Get()
	require.NoError(t, err)
	assert.Equal(t, "46.50", all.Requested)

	history, err := creative.ListWithdrawals(ctx).Get()
	require.NoError(t, err)
	require.Len(t, history.Items, 2)
	assert.Equal(t, "46.50", history.Items[0].Amount)
}

func TestOrdersAndReviews(t *testing.T) {
	a := newMockAPI(t)
	ctx := context.Background()
	creative := signUp(t, a, "lens", models.RoleCreative)
	client := signUp(t, a, "bride", models.RoleClient)

	svc, err := creative.CreateService(ctx, dto.ServiceInput{Title: "Album", Price: "300.5"}).Get()
	require.NoError(t, err)

	order, err := client.CreateOrder(ctx, dto.OrderInput{Service: svc.ID, Instructions: "matte"}).Get()
	require.NoError(t, err)
	assert.Equal(t, "300.50", order.TotalPrice)

	seen, err := creative.GetOrder(ctx, order.ID).Get()
	require.NoError(t, err)
	assert.Equal(t, "matte", seen.Instructions)

	intent := creative.CreatePaymentIntent(ctx, order.ID)
	require.False(t, intent.OK())
	assert.Equal(t, http.StatusForbidden, intent.Notice().Status)

	bad := client.CreateReview(ctx, dto.ReviewInput{Order: order.ID, Rating: 6})
	require.False(t, bad.OK())
	assert.JSONEq(t, `{"rating":["Ensure this value is between 1 and 5."]}`, bad.Err().Error())

	review, err := client.CreateReview(ctx, dto.ReviewInput{Order: order.ID, Rating: 5, Comment: "lovely"}).Get()
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	reviews, err := client.ListReviews(ctx).Get()
	require.NoError(t, err)
	assert.Len(t, reviews.Items, 1)
}

func TestCallWithCustomShape(t *testing.T) {
	a := newMockAPI(t)

	type category struct {
		Slug string `json:"slug"`
	}
	cats, err := Call[[]category](context.Background(), a, OpListCategories, Args{}).Get()
	require.NoError(t, err)
	require.NotEmpty(t, cats)
	assert.Equal(t, "photography", cats[0].Slug)

	raw, err := Call[json.RawMessage](context.Background(), a, OpPublishableKey, Args{}).Get()
	require.NoError(t, err)
	assert.JSONEq(t, `{"publishableKey":"pk_test_ubu_lite"}`, string(raw))

	wrong := Call[int](context.Background(), a, OpListCategories, Args{})
	require.False(t, wrong.OK())
	assert.Equal(t, outcome.KindDecode, wrong.Notice().Kind)
}
