package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
)

func TestMoney(t *testing.T) {
	for in, want := range map[string]int64{"100": 10000, "100.5": 10050, "0.07": 7, "12.34": 1234} {
		got, err := parseMoney(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseMoney("1.234")
	assert.Error(t, err)
	for _, bad := range []string{"abc", "1.-5", "1.+5", "+1", "--1", "1.5x", "1 .50"} {
		_, err = parseMoney(bad)
		assert.Error(t, err, bad)
	}
	got, err := parseMoney("-2.5")
	require.NoError(t, err)
	assert.Equal(t, int64(-250), got)
	assert.Equal(t, "67.00", formatMoney(6700))
	assert.Equal(t, "-0.05", formatMoney(-5))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	m := New()
	u, err := m.Register("ada", "ada@example.com", "pw", models.RoleCreative)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCreative, u.Role)

	_, err = m.Register("ada", "", "pw", models.RoleClient)
	assert.True(t, IsKind(err, KindInvalid))
	_, err = m.Register("bob", "", "pw", models.RoleAdmin)
	assert.EqualError(t, err, "role must be creative or client")

	got, err := m.Authenticate("ada", "pw")
	require.NoError(t, err)
	assert.Equal(t, u, got)
	_, err = m.Authenticate("ada", "nope")
	assert.True(t, IsKind(err, KindUnauthorized))

	profile, err := m.MyProfile(u)
	require.NoError(t, err)
	assert.Equal(t, u.ID, profile.User.ID)
}

func TestBookingLifecycle(t *testing.T) {
	m := New()
	creative, _ := m.Register("cre", "", "pw", models.RoleCreative)
	client, _ := m.Register("cli", "", "pw", models.RoleClient)
	stranger, _ := m.Register("str", "", "pw", models.RoleClient)

	svc, err := m.CreateService(creative.ID, dto.ServiceInput{Title: "Portraits", Price: "80"})
	require.NoError(t, err)
	assert.Equal(t, "80.00", svc.Price)

	_, err = m.CreateService(client.ID, dto.ServiceInput{Title: "x", Price: "1"})
	assert.True(t, IsKind(err, KindForbidden))

	b, err := m.CreateBooking(client.ID, dto.BookingInput{Service: svc.ID, Date: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)

	_, err = m.Decide(client.ID, b.ID, models.BookingApproved)
	assert.EqualError(t, err, "Only the creative can approve.")

	b, err = m.Decide(creative.ID, b.ID, models.BookingApproved)
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, b.Status)

	_, err = m.Booking(stranger.ID, b.ID)
	assert.True(t, IsKind(err, KindNotFound))
	assert.Len(t, m.Bookings(creative.ID), 1)
	assert.Empty(t, m.Bookings(stranger.ID))

	_, err = m.SendMessage(client.ID, b.ID, "hello")
	require.NoError(t, err)
	_, err = m.SendMessage(stranger.ID, b.ID, "hi")
	assert.True(t, IsKind(err, KindForbidden))
	assert.Len(t, m.Messages(creative.ID, b.ID), 1)
}

func TestEscrowReleaseCreditsCreative(t *testing.T) {
	m := New()
	buyer, _ := m.Register("buyer", "", "pw", models.RoleClient)

	funded, err := m.CreateDemoFundedOrder(buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", funded.Amount)

	_, err = m.Authenticate(demoCreative, "")
	assert.Error(t, err, "demo creative has no password")
	m.mu.Lock()
	creative := m.ensureAccount(demoCreative, models.RoleCreative)
	m.mu.Unlock()

	res, err := m.Fulfill(buyer, funded.EscrowID, ClientSide)
	require.NoError(t, err)
	assert.False(t, res.Released)

	_, err = m.Fulfill(buyer, funded.EscrowID, CreativeSide)
	assert.True(t, IsKind(err, KindForbidden))

	res, err = m.Fulfill(creative, funded.EscrowID, CreativeSide)
	require.NoError(t, err)
	assert.True(t, res.Released)
	assert.Equal(t, models.EscrowReleased, res.Status)
	assert.Equal(t, "33.00", res.FeeAmount)

	w := m.Wallet(creative.ID)
	assert.Equal(t, "67.00", w.AvailableBalance)

	_, err = m.DemoWithdraw(creative.ID, "100")
	assert.EqualError(t, err, "amount: Insufficient balance")

	out, err := m.DemoWithdraw(creative.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "67.00", out.Requested)
	assert.Equal(t, "0.00", out.AvailableBalance)
	assert.Equal(t, "67.00", out.PendingBalance)
	assert.Len(t, m.Withdrawals(creative.ID), 1)

	_, err = m.DemoWithdraw(creative.ID, "")
	assert.EqualError(t, err, "amount: Must be > 0")
}

func TestPaymentIntentBuyerOnly(t *testing.T) {
	m := New()
	creative, _ := m.Register("cre", "", "pw", models.RoleCreative)
	buyer, _ := m.Register("buyer", "", "pw", models.RoleClient)
	svc, _ := m.CreateService(creative.ID, dto.ServiceInput{Title: "Mix", Price: "50"})

	o, err := m.CreateOrder(buyer.ID, dto.OrderInput{Service: svc.ID, Instructions: "x"})
	require.NoError(t, err)
	assert.Equal(t, "50.00", o.TotalPrice)

	pi, err := m.CreatePaymentIntent(buyer.ID, o.ID)
	require.NoError(t, err)
	assert.Contains(t, pi.ClientSecret, "_secret_")

	_, err = m.CreatePaymentIntent(creative.ID, o.ID)
	assert.True(t, IsKind(err, KindForbidden))
}
