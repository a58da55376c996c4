package utils

import (
	"fmt"
	"net/url"
	"os"
)

// BuildUPIDeepLink builds the upi://pay link encoded into the payment QR.
// Common UPI apps require exactly this parameter set in exactly this order:
//
//	upi://pay?pa=<vpa>&pn=<name>&am=<amount>&cu=INR&tn=<note>&tr=<txn id>
//
// The link is assembled by hand because url.Values sorts keys alphabetically
// and would reorder the parameters.
func BuildUPIDeepLink(vpa, merchantName string, amount float64, note, transactionID string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR&tn=%s&tr=%s",
		vpa,
		url.QueryEscape(merchantName),
		amount,
		url.QueryEscape(note),
		transactionID,
	)
}

// MerchantUPIDeepLink builds a deep link for the configured merchant VPA
func MerchantUPIDeepLink(amount float64, note, transactionID string) string {
	return BuildUPIDeepLink(
		os.Getenv("UPI_MERCHANT_VPA"),
		os.Getenv("UPI_MERCHANT_NAME"),
		amount,
		note,
		transactionID,
	)
}
