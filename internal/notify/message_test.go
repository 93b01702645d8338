package notify

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var htmlTagPattern = regexp.MustCompile(`</?(b|code|a)[^>]*>`)

func stripMarkup(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

func TestBuildOrderMessageContent(t *testing.T) {
	o := sampleOrder()
	msg := BuildOrderMessage(OrderMessage{Order: *o}, Plain)

	assert.Contains(t, msg, "Pesanan Kue Baru - ORD-1700000000000-abc1234")
	assert.Contains(t, msg, "Tanggal Pesanan: 01/12/2025")
	assert.Contains(t, msg, "Tipe Pesanan: Single (Satuan)")
	assert.Contains(t, msg, "Nama: Budi Santoso")
	assert.Contains(t, msg, "WhatsApp: +6281234567890")
	assert.Contains(t, msg, "Sales: Rina")
	assert.Contains(t, msg, "1. Nastar Klasik 400ml   Jumlah: 2")
	assert.NotContains(t, msg, "Spin Terpakai")
	assert.NotContains(t, msg, "Catatan:")
}

func TestBuildOrderMessageSpinInfoAndGifts(t *testing.T) {
	o := sampleOrder()
	msg := BuildOrderMessage(OrderMessage{
		Order:          *o,
		Gifts:          []string{"Diskon 5%<br/>Normal", "Gratis 1<br/>Cookies"},
		HasSpinInfo:    true,
		SpinsUsed:      2,
		SpinsRemaining: 0,
	}, Plain)

	assert.Contains(t, msg, "Spin Terpakai: 2")
	assert.Contains(t, msg, "Sisa Spin: 0")
	assert.Contains(t, msg, "Hadiah yang Dimenangkan")
	// Wheel artwork line breaks become real newlines
	assert.Contains(t, msg, "1. Diskon 5%\nNormal")
	assert.NotContains(t, msg, "<br/>")
}

func TestOrderMessageRenderingsCarrySameContent(t *testing.T) {
	o := sampleOrder()
	in := OrderMessage{Order: *o, HasSpinInfo: true, SpinsUsed: 1, SpinsRemaining: 1}

	html := BuildOrderMessage(in, HTML)
	plain := BuildOrderMessage(in, Plain)
	assert.Equal(t, plain, stripMarkup(html))
}

func TestBuildOrderMessagesAppendsWaLink(t *testing.T) {
	o := sampleOrder()
	html, plain := BuildOrderMessages(OrderMessage{Order: *o})

	assert.Contains(t, html, `<a href="https://wa.me/+6281234567890?text=`)
	assert.Contains(t, html, ">Kirim ke WhatsApp</a>")
	assert.NotContains(t, plain, "wa.me")
}

func TestBuildUpdateMessageNoChanges(t *testing.T) {
	o := sampleOrder()
	msg := BuildUpdateMessage(o.OrderID, o, o, Plain)

	assert.Contains(t, msg, "Pesanan Diperbarui - "+o.OrderID)
	assert.Contains(t, msg, NoChangesLine)
	assert.NotContains(t, msg, "Perubahan:")
	assert.Contains(t, msg, "Detail Pesanan Saat Ini")
	assert.Contains(t, msg, "1. Nastar Klasik 400ml x 2 = Rp 120.000")
}

func TestBuildUpdateMessageListsChanges(t *testing.T) {
	oldOrder := sampleOrder()
	newOrder := sampleOrder()
	newOrder.Items[0].Quantity = 3
	newOrder.Items[0].Subtotal = 180000
	newOrder.Total = 180000

	msg := BuildUpdateMessage(oldOrder.OrderID, oldOrder, newOrder, Plain)
	assert.Contains(t, msg, "Perubahan:")
	assert.Contains(t, msg, "1. Diperbarui: Nastar Klasik 400ml x2 → x3")
	assert.Contains(t, msg, "1. Nastar Klasik 400ml x 3 = Rp 180.000")
	assert.NotContains(t, msg, NoChangesLine)
}

func TestUpdateMessageRenderingsCarrySameContent(t *testing.T) {
	oldOrder := sampleOrder()
	newOrder := sampleOrder()
	newOrder.Customer.Name = "Budi S."

	html := BuildUpdateMessage(oldOrder.OrderID, oldOrder, newOrder, HTML)
	plain := BuildUpdateMessage(oldOrder.OrderID, oldOrder, newOrder, Plain)
	assert.Equal(t, plain, stripMarkup(html))
}
