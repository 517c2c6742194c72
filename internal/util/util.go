package util

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func Must(err error) {
	if err != nil {
		panic(fmt.Errorf("internal error: %w", err))
	}
}

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR formats an amount of rupiah the way the site displays it: "Rp 5.625.000".
func FormatIDR(amount int64) string {
	if amount < 0 {
		return "-Rp " + idrPrinter.Sprintf("%d", -amount)
	}
	return "Rp " + idrPrinter.Sprintf("%d", amount)
}
