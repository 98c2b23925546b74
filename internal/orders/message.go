package orders

import (
	"fmt"
	"strings"
)

// messageTimeLayout mirrors the en-GB rendering the store staff are used to
// reading, e.g. "29/08/2026, 14:03:05".
const messageTimeLayout = "02/01/2006, 15:04:05"

// renderMessage builds the bilingual staff notification. The shape is a
// product requirement; changing it breaks the shop's order-intake habits.
func renderMessage(order *Order, form OrderForm) string {
	var items strings.Builder
	for _, item := range order.Items {
		lineTotal := item.Product.PriceBDT * item.Quantity
		items.WriteString(fmt.Sprintf("\n  - %dx %s (%s) - ৳%d", item.Quantity, item.Product.TitleBN, item.Size, lineTotal))
	}

	area := form.Area
	if area == "" {
		area = "N/A"
	}
	notes := form.Notes
	if notes == "" {
		notes = "No notes"
	}

	return fmt.Sprintf(`🆕 জার্সি অর্ডার | JerseyStore
-------------------------------
📦 Order ID: #%s
👤 Customer: %s
📞 Phone: %s
📍 Address: %s
🛒 Items:%s
💰 Total: ৳%d
📆 Time: %s
🚚 Area: %s
📝 Notes: %s`,
		order.ID,
		form.Name,
		form.Phone,
		form.Address,
		items.String(),
		order.Total,
		order.PlacedAt.Format(messageTimeLayout),
		area,
		notes,
	)
}
