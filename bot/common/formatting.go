package common

import (
	"fmt"
	"strings"
)

// FormatCoins formats a coin amount with thousand separators
func FormatCoins(coins int64) string {
	str := fmt.Sprintf("%d", coins)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatGrantResult formats the result of an admin grant
func FormatGrantResult(amount int64, recipientID string, newBalance int64) string {
	return fmt.Sprintf("Granted **%s tokens** to <@%s>. They now have **%s tokens**.",
		FormatCoins(amount), recipientID, FormatCoins(newBalance))
}

// FormatPaymentResult formats the result of a member-to-member payment
func FormatPaymentResult(amount int64, recipientID string) string {
	return fmt.Sprintf("Paid **%s tokens** to <@%s>.",
		FormatCoins(amount), recipientID)
}

// FormatBalanceResult formats a member's own balance
func FormatBalanceResult(coins int64) string {
	return fmt.Sprintf("You have **%s tokens**.", FormatCoins(coins))
}
