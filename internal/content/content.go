// Package content holds the static sections of the landing page.
package content

import (
	"net/url"
	"strings"

	"github.com/chasta/skyguard/internal/config"
	"github.com/thoas/go-funk"
)

const (
	IconHome      = "Home"
	IconBuilding  = "Building2"
	IconFactory   = "Factory"
	IconWrench    = "Wrench"
	IconFileText  = "FileText"
	IconAward     = "Award"
	IconZap       = "Zap"
	DefaultIcon   = IconZap
	whatsAppBase  = "https://wa.me/"
	consultMsg    = "Halo Chasta SkyGuard, saya ingin konsultasi tentang pemasangan penangkal petir"
	estimationMsg = "Halo, saya tertarik dengan estimasi biaya penangkal petir. Mohon informasi lebih lanjut."
)

// Icons is the set of icon names the front-end can render.
var Icons = []string{IconHome, IconBuilding, IconFactory, IconWrench, IconFileText, IconAward, IconZap}

// NormalizeIcon returns icon when it can be rendered, DefaultIcon otherwise.
func NormalizeIcon(icon string) string {
	if funk.ContainsString(Icons, icon) {
		return icon
	}
	return DefaultIcon
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Hero struct {
	Title        string    `json:"title"`
	Headline     []string  `json:"headline"`
	Tagline      string    `json:"tagline"`
	Badge        string    `json:"badge"`
	Stats        []Stat    `json:"stats"`
	Features     []Feature `json:"features"`
	CallToAction string    `json:"callToAction"`
}

type About struct {
	Title        string   `json:"title"`
	Paragraphs   []string `json:"paragraphs"`
	Achievements []Stat   `json:"achievements"`
	Features     []string `json:"features"`
}

type Contact struct {
	CompanyName     string `json:"companyName"`
	Phone           string `json:"phone"`
	WhatsAppURL     string `json:"whatsappUrl"`
	EstimateChatURL string `json:"estimateChatUrl"`
}

type NavItem struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

func NewHero(companyName string) Hero {
	return Hero{
		Title:    companyName,
		Headline: []string{"Jasa Pemasangan", "Penangkal Petir", "Profesional & Bergaransi"},
		Tagline: "Lindungi rumah, gedung, dan aset Anda dari bahaya sambaran petir dengan sistem berstandar SNI & IEC. " +
			"Pengalaman 10+ tahun melayani seluruh Indonesia.",
		Badge: "Bergaransi & Bersertifikat SNI",
		Stats: []Stat{
			{Value: "10+", Label: "Tahun Pengalaman"},
			{Value: "500+", Label: "Proyek Selesai"},
			{Value: "100%", Label: "Bergaransi"},
			{Value: "24/7", Label: "Support"},
		},
		Features: []Feature{
			{Title: "Standar SNI & IEC", Description: "Instalasi sesuai standar nasional dan internasional dengan sertifikat resmi"},
			{Title: "Teknisi Bersertifikat", Description: "Tim teknisi profesional dengan sertifikasi dan pengalaman puluhan tahun"},
			{Title: "Material Original", Description: "Menggunakan material berkualitas tinggi dari supplier terpercaya"},
		},
		CallToAction: "Konsultasi Gratis Sekarang",
	}
}

func NewAbout(companyName string) About {
	return About{
		Title: "Profesional Penangkal Petir Terpercaya di Indonesia",
		Paragraphs: []string{
			companyName + " adalah perusahaan spesialis jasa pemasangan penangkal petir yang telah melayani berbagai klien " +
				"di seluruh Indonesia selama lebih dari 10 tahun. Kami berkomitmen memberikan perlindungan maksimal untuk aset " +
				"berharga Anda dengan teknologi terdepan dan standar internasional.",
			"Tim teknisi kami terdiri dari profesional bersertifikat yang memiliki pengalaman luas dalam instalasi sistem " +
				"penangkal petir untuk berbagai jenis bangunan, mulai dari rumah tinggal hingga gedung bertingkat dan fasilitas industri.",
		},
		Achievements: []Stat{
			{Value: "500+", Label: "Proyek Selesai"},
			{Value: "10+", Label: "Tahun Pengalaman"},
			{Value: "100%", Label: "Bergaransi"},
			{Value: "98%", Label: "Kepuasan Klien"},
		},
		Features: []string{
			"Teknisi bersertifikat dan berpengalaman 10+ tahun",
			"Material berkualitas tinggi dari supplier terpercaya",
			"Instalasi sesuai standar SNI 03-7015-2004 dan IEC 62305",
			"Garansi resmi untuk semua instalasi",
			"Layanan maintenance dan inspeksi berkala",
			"Konsultasi teknis gratis dan survey lokasi",
			"Harga kompetitif dengan kualitas terjamin",
			"Support 24/7 untuk emergency service",
		},
	}
}

func NewContact(cfg config.Contact) Contact {
	return Contact{
		CompanyName:     cfg.CompanyName,
		Phone:           cfg.Phone,
		WhatsAppURL:     WhatsAppLink(cfg.WhatsApp, consultMsg),
		EstimateChatURL: WhatsAppLink(cfg.WhatsApp, estimationMsg),
	}
}

// Navigation returns the header entries in display order.
func Navigation() []NavItem {
	return []NavItem{
		{Name: "Beranda", Href: "/"},
		{Name: "Tentang Kami", Href: "#about"},
		{Name: "Layanan", Href: "#services"},
		{Name: "Portofolio", Href: "#portfolio"},
		{Name: "Kalkulator", Href: "/calculator"},
		{Name: "Artikel", Href: "#articles"},
		{Name: "Kontak", Href: "#contact"},
	}
}

// WhatsAppLink builds a click-to-chat link. Non digits are stripped from number.
func WhatsAppLink(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	link := whatsAppBase + digits
	if message == "" {
		return link
	}
	return link + "?text=" + url.QueryEscape(message)
}
