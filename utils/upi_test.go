package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUPIDeepLink(t *testing.T) {
	link := BuildUPIDeepLink("merchant@upi", "SiteCraft", 9000, "Installment 2 for order #42", "abc-123")

	assert.Equal(t,
		"upi://pay?pa=merchant@upi&pn=SiteCraft&am=9000.00&cu=INR&tn=Installment+2+for+order+%2342&tr=abc-123",
		link)
}

func TestBuildUPIDeepLinkParameterOrder(t *testing.T) {
	link := BuildUPIDeepLink("m@upi", "Shop", 100, "note", "tid")

	// UPI apps reject links whose query parameters arrive out of order
	query := strings.TrimPrefix(link, "upi://pay?")
	keys := []string{}
	for _, pair := range strings.Split(query, "&") {
		keys = append(keys, strings.SplitN(pair, "=", 2)[0])
	}
	assert.Equal(t, []string{"pa", "pn", "am", "cu", "tn", "tr"}, keys)
}

func TestBuildUPIDeepLinkAmountFormat(t *testing.T) {
	link := BuildUPIDeepLink("m@upi", "Shop", 333.333, "n", "t")
	assert.Contains(t, link, "&am=333.33&")

	link = BuildUPIDeepLink("m@upi", "Shop", 100, "n", "t")
	assert.Contains(t, link, "&am=100.00&")
}
