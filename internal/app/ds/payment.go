package ds

import (
	"path"
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// IsDecision reports whether s is a status an admin may set.
func (s PaymentStatus) IsDecision() bool {
	return s == PaymentStatusApproved || s == PaymentStatusRejected
}

// Payment is a manual-transfer payment awaiting or past admin review.
// Order may be absent even though OrderID is always set.
type Payment struct {
	ID            string        `json:"id" validate:"required"`
	OrderID       string        `json:"order_id" validate:"required"`
	Order         *Order        `json:"order,omitempty"`
	TransferProof string        `json:"transfer_proof"`
	Status        PaymentStatus `json:"status" validate:"oneof=pending approved rejected"`
	ApprovedBy    string        `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time    `json:"approved_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ProofIsPDF reports whether the transfer proof points at a PDF rather than
// an image.
func (p *Payment) ProofIsPDF() bool {
	return strings.EqualFold(path.Ext(p.TransferProof), ".pdf")
}
