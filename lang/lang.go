// Package lang holds the customer menu's UI strings and per-entity text overrides.
package lang

import (
	"fmt"
	"strings"
)

const (
	Ar = "ar"
	En = "en"

	// Primary is used when a request carries no or an unknown language.
	Primary   = Ar
	Secondary = En

	// OverrideLang is the only language for which entity overrides are consulted.
	OverrideLang = Ar
)

var messages = map[string]map[string]string{
	Ar: {
		"search":        "بحث في القائمة...",
		"open":          "مفتوح الآن",
		"closed":        "مغلق",
		"mins":          "دقيقة",
		"choose_size":   "اختر الحجم",
		"add_ons":       "إضافات",
		"required":      "مطلوب",
		"add_to_order":  "إضافة للطلب",
		"view_order":    "عرض الطلب",
		"your_order":    "ملخص الطلب",
		"checkout":      "إتمام الطلب",
		"total":         "المجموع",
		"subtotal":      "المجموع الفرعي",
		"delivery":      "توصيل",
		"pickup":        "استلام",
		"dine_in":       "محلي",
		"name":          "الاسم",
		"phone":         "رقم الهاتف",
		"address":       "العنوان",
		"table":         "رقم الطاولة",
		"send_whatsapp": "إرسال الطلب عبر واتساب",
		"order_type":    "طريقة الاستلام",
		"customer_info": "بيانات العميل",
		"empty_cart":    "السلة فارغة",
		"free":          "مجاني",
		"items":         "عناصر",
		"bestseller":    "الأكثر مبيعاً",
		"size_regular":  "عادي",
		"size_large":    "كبير",
		"addon_cheese":  "جبنة",
		"addon_sauce":   "صوص",
		"relay_chat_id": "معرف هذه المحادثة: %d\nأضفه إلى إعدادات المطعم لاستلام الطلبات هنا.",
	},
	En: {
		"search":        "Search menu...",
		"open":          "Open Now",
		"closed":        "Closed",
		"mins":          "mins",
		"choose_size":   "Choose Size",
		"add_ons":       "Add-ons",
		"required":      "Required",
		"add_to_order":  "Add to Order",
		"view_order":    "View Order",
		"your_order":    "Your Order",
		"checkout":      "Checkout",
		"total":         "Total",
		"subtotal":      "Subtotal",
		"delivery":      "Delivery",
		"pickup":        "Pickup",
		"dine_in":       "Dine-in",
		"name":          "Name",
		"phone":         "Phone Number",
		"address":       "Address",
		"table":         "Table Number",
		"send_whatsapp": "Send Order via WhatsApp",
		"order_type":    "Order Type",
		"customer_info": "Customer Info",
		"empty_cart":    "Cart is empty",
		"free":          "Free",
		"items":         "items",
		"bestseller":    "Bestseller",
		"size_regular":  "Regular",
		"size_large":    "Large",
		"addon_cheese":  "Cheese",
		"addon_sauce":   "Sauce",
		"relay_chat_id": "This chat id is %d.\nAdd it to the restaurant settings to receive orders here.",
	},
}

// currencySymbols maps ISO codes to the symbol shown in a given language.
var currencySymbols = map[string]map[string]string{
	Ar: {"SAR": "ر.س", "AED": "د.إ", "KWD": "د.ك"},
}

// Normalize returns a supported language code, defaulting to Primary.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := messages[code]; ok {
		return code
	}
	return Primary
}

// T looks up key for the language. Missing keys fall back to the other
// language and finally to the key itself.
func T(code, key string, args ...interface{}) string {
	code = Normalize(code)
	s, ok := messages[code][key]
	if !ok {
		fallback := Secondary
		if code == Secondary {
			fallback = Primary
		}
		if s, ok = messages[fallback][key]; !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

// Currency returns the display form of an ISO currency code.
func Currency(code, currency string) string {
	if sym, ok := currencySymbols[Normalize(code)][strings.ToUpper(currency)]; ok {
		return sym
	}
	return currency
}

// Dir is the text direction for the language.
func Dir(code string) string {
	if Normalize(code) == Ar {
		return "rtl"
	}
	return "ltr"
}
