package notify

import (
	"fmt"
	"net/url"
	"strings"

	"go-cookie-shop/internal/models"
	"go-cookie-shop/internal/utils"
)

// Markup decorates message fragments. The HTML flavor produces limited
// Telegram HTML, the plain flavor leaves values untouched, so both
// renderings of one message carry identical content.
type Markup interface {
	Bold(s string) string
	Code(s string) string
}

type htmlMarkup struct{}

func (htmlMarkup) Bold(s string) string { return "<b>" + s + "</b>" }
func (htmlMarkup) Code(s string) string { return "<code>" + s + "</code>" }

type plainMarkup struct{}

func (plainMarkup) Bold(s string) string { return s }
func (plainMarkup) Code(s string) string { return s }

// HTML and Plain are the two renderings every message supports
var (
	HTML  Markup = htmlMarkup{}
	Plain Markup = plainMarkup{}
)

// OrderMessage is the input for both new-order renderings. SpinsUsed and
// SpinsRemaining are shown only when HasSpinInfo is set; Gifts lists the
// prize labels won during the spin session.
type OrderMessage struct {
	Order          models.Order
	Gifts          []string
	HasSpinInfo    bool
	SpinsUsed      int
	SpinsRemaining int
}

// BuildOrderMessage renders one new-order notification in the given
// markup flavor.
func BuildOrderMessage(in OrderMessage, m Markup) string {
	o := in.Order
	normalized := utils.NormalizeWhatsAppNumber(o.Customer.WhatsApp)

	var b strings.Builder
	b.WriteString(m.Bold("Pesanan Kue Baru - "+o.OrderID) + "\n\n")

	b.WriteString(m.Bold("Informasi Pesanan") + "\n")
	b.WriteString("ID Pesanan: " + m.Code(o.OrderID) + "\n")
	b.WriteString("Tanggal Pesanan: " + o.OrderDate + "\n")
	b.WriteString("Tipe Pesanan: " + o.OrderType.Label() + "\n\n")

	b.WriteString(m.Bold("Informasi Pelanggan") + "\n")
	b.WriteString("Nama: " + o.Customer.Name + "\n")
	b.WriteString("WhatsApp: " + m.Code(normalized) + "\n")
	b.WriteString("Alamat: " + o.Customer.Address + "\n")
	if strings.TrimSpace(o.Customer.Sales) != "" {
		b.WriteString("Sales: " + o.Customer.Sales + "\n")
	}
	if in.HasSpinInfo {
		fmt.Fprintf(&b, "Spin Terpakai: %d\n", in.SpinsUsed)
		fmt.Fprintf(&b, "Sisa Spin: %d\n", in.SpinsRemaining)
	}
	if strings.TrimSpace(o.Customer.Note) != "" {
		b.WriteString("Catatan: " + o.Customer.Note + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.Bold("Detail Kue") + "\n")
	for i, item := range o.Items {
		fmt.Fprintf(&b, "%d. %s %s   Jumlah: %d\n", i+1, item.Name, item.Size, item.Quantity)
	}
	b.WriteString("\n")

	if len(in.Gifts) > 0 {
		b.WriteString("\n" + m.Bold("Hadiah yang Dimenangkan") + "\n")
		for i, gift := range in.Gifts {
			// Wheel labels carry "<br/>" artwork line breaks
			fmt.Fprintf(&b, "%d. %s\n", i+1, strings.ReplaceAll(gift, "<br/>", "\n"))
		}
	}

	return b.String()
}

// BuildOrderMessages renders the Telegram HTML message and the plain
// text used for the wa.me deep link. The HTML message carries a
// click-to-chat link whose body is the plain rendering.
func BuildOrderMessages(in OrderMessage) (html, plain string) {
	plain = BuildOrderMessage(in, Plain)
	html = BuildOrderMessage(in, HTML) + waLink(in.Order.Customer.WhatsApp, plain)
	return html, plain
}

// BuildUpdateMessage renders one order-update notification: the change
// list from DiffOrders followed by the current order details.
func BuildUpdateMessage(orderID string, oldOrder, newOrder *models.Order, m Markup) string {
	normalized := utils.NormalizeWhatsAppNumber(newOrder.Customer.WhatsApp)

	var b strings.Builder
	b.WriteString(m.Bold("Pesanan Diperbarui - "+orderID) + "\n\n")

	changes := DiffOrders(oldOrder, newOrder, m)
	if len(changes) == 1 && changes[0] == NoChangesLine {
		b.WriteString(NoChangesLine + "\n\n")
	} else {
		b.WriteString(m.Bold("Perubahan:") + "\n")
		for i, change := range changes {
			fmt.Fprintf(&b, "%d. %s\n", i+1, change)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.Bold("Detail Pesanan Saat Ini") + "\n")
	b.WriteString("Tipe Pesanan: " + newOrder.OrderType.Label() + "\n")
	b.WriteString("Pelanggan: " + newOrder.Customer.Name + "\n")
	b.WriteString("WhatsApp: " + m.Code(normalized) + "\n")
	b.WriteString("Alamat: " + newOrder.Customer.Address + "\n")
	if strings.TrimSpace(newOrder.Customer.Sales) != "" {
		b.WriteString("Sales: " + newOrder.Customer.Sales + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.Bold("Item:") + "\n")
	for i, item := range newOrder.Items {
		fmt.Fprintf(&b, "%d. %s %s x %d = Rp %s\n",
			i+1, item.Name, item.Size, item.Quantity, utils.FormatRupiah(item.Subtotal))
	}
	b.WriteString("\n")

	return b.String()
}

// BuildUpdateMessages renders the Telegram HTML update message and the
// plain wa.me text, mirroring BuildOrderMessages.
func BuildUpdateMessages(orderID string, oldOrder, newOrder *models.Order) (html, plain string) {
	plain = BuildUpdateMessage(orderID, oldOrder, newOrder, Plain)
	html = BuildUpdateMessage(orderID, oldOrder, newOrder, HTML) + waLink(newOrder.Customer.WhatsApp, plain)
	return html, plain
}

func waLink(whatsapp, body string) string {
	normalized := utils.NormalizeWhatsAppNumber(whatsapp)
	link := fmt.Sprintf("https://wa.me/%s?text=%s", normalized, url.QueryEscape(body))
	return fmt.Sprintf("\n\n<a href=%q>Kirim ke WhatsApp</a>", link)
}
