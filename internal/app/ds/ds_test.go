package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsKnown(t *testing.T) {
	assert.True(t, OrderStatusWaitingPayment.IsKnown())
	assert.True(t, OrderStatusExpired.IsKnown())
	assert.False(t, OrderStatus("refunded").IsKnown())
	assert.Equal(t, "refunded", OrderStatus("refunded").String())
}

func TestOrder_IsRedeemed(t *testing.T) {
	yes := true

	o := Order{ID: "o1", LicenseRedeemed: &yes}
	assert.False(t, o.HasLicense())
	assert.False(t, o.IsRedeemed(), "redeemed flag is meaningless without a license")

	o.LicenseID = "LIC-1"
	assert.True(t, o.IsRedeemed())

	o.LicenseRedeemed = nil
	assert.False(t, o.IsRedeemed())
}

func TestPaymentStatus_IsDecision(t *testing.T) {
	assert.True(t, PaymentStatusApproved.IsDecision())
	assert.True(t, PaymentStatusRejected.IsDecision())
	assert.False(t, PaymentStatusPending.IsDecision())
	assert.False(t, PaymentStatus("").IsDecision())
}

func TestPayment_ProofIsPDF(t *testing.T) {
	assert.True(t, (&Payment{TransferProof: "https://cdn/x/proof.PDF"}).ProofIsPDF())
	assert.False(t, (&Payment{TransferProof: "https://cdn/x/proof.png"}).ProofIsPDF())
}

func TestProduct_Names(t *testing.T) {
	p := Product{
		Platforms:  []Platform{{ID: "1", Name: "ios"}, {ID: "2", Name: "web"}},
		Categories: []Category{{ID: "c", Name: "Games"}},
	}
	assert.Equal(t, []string{"ios", "web"}, p.PlatformNames())
	assert.Equal(t, []string{"Games"}, p.CategoryNames())
}
