package service

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/bluemoon/resident-portal/internal/core/domain"
)

// SplitFeesByPayment separates a household's fees into unpaid and paid,
// preserving order. A fee is paid once a payment date is recorded.
func SplitFeesByPayment(fees []domain.FeeRoomInfo) (unpaid, paid []domain.FeeRoomInfo) {
	for _, f := range fees {
		if f.Paid() {
			paid = append(paid, f)
		} else {
			unpaid = append(unpaid, f)
		}
	}
	return unpaid, paid
}

// FloorOf is the floor a room belongs to: room 1203 is on floor 12.
func FloorOf(room int) int { return room / 100 }

// Floors lists the distinct floors of rooms in ascending order.
func Floors(rooms []int) []int {
	seen := make(map[int]struct{}, len(rooms))
	var floors []int
	for _, r := range rooms {
		f := FloorOf(r)
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		floors = append(floors, f)
	}
	slices.Sort(floors)
	return floors
}

// ExpandFloors merges the explicitly selected rooms with every known room on
// the selected floors. The result is sorted and free of duplicates; rooms not
// in known are kept only when selected explicitly.
func ExpandFloors(floors, selected, known []int) []int {
	want := make(map[int]struct{}, len(floors))
	for _, f := range floors {
		want[f] = struct{}{}
	}

	out := slices.Clone(selected)
	for _, r := range known {
		if _, ok := want[FloorOf(r)]; ok {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// PaymentQRPayload encodes a fee assignment as the payload of its payment QR code.
func PaymentQRPayload(fee domain.FeeRoomInfo) (string, error) {
	b, err := json.Marshal(fee)
	if err != nil {
		return "", fmt.Errorf("encode payment qr: %w", err)
	}
	return string(b), nil
}

// DecodePaymentQR extracts the fee assignment from a scanned QR payload.
func DecodePaymentQR(payload string) (domain.FeeRoomInfo, error) {
	var fee domain.FeeRoomInfo
	if err := json.Unmarshal([]byte(payload), &fee); err != nil {
		return domain.FeeRoomInfo{}, fmt.Errorf("%w: payment qr: %v", domain.ErrInvalidPayload, err)
	}
	if fee.AssignmentID <= 0 {
		return domain.FeeRoomInfo{}, fmt.Errorf("%w: payment qr without assignment", domain.ErrInvalidPayload)
	}
	return fee, nil
}

// BankTransfer is the account that receives fee payments.
type BankTransfer struct {
	Account string
	Bank    string
}

// TransferQRURL is the image URL of a bank transfer QR code for fee. The
// transfer description carries the assignment id so the backend webhook can
// match the payment.
func (b BankTransfer) TransferQRURL(fee domain.FeeRoomInfo) string {
	if b.Account == "" || b.Bank == "" {
		return ""
	}
	q := url.Values{}
	q.Set("acc", b.Account)
	q.Set("bank", b.Bank)
	q.Set("amount", strconv.FormatInt(fee.FeeAmount, 10))
	q.Set("des", fmt.Sprintf("FLATAPP%d", fee.AssignmentID))
	return "https://qr.sepay.vn/img?" + q.Encode()
}
