package store

import (
	"time"

	"github.com/chasta/skyguard/internal/store/model"
)

// DefaultServices returns the services offered on the landing page, in display order.
func DefaultServices() model.ServiceList {
	items := []struct{ title, description, icon string }{
		{"Penangkal Petir Rumah", "Instalasi penangkal petir konvensional untuk rumah tinggal dan villa.", "Home"},
		{"Penangkal Petir Gedung", "Sistem proteksi petir untuk gedung perkantoran, hotel dan apartemen.", "Building2"},
		{"Penangkal Petir Industri", "Proteksi petir untuk pabrik, gudang dan kawasan industri.", "Factory"},
		{"Maintenance & Perbaikan", "Pemeriksaan berkala, pengukuran tahanan grounding dan perbaikan instalasi.", "Wrench"},
		{"Konsultasi & Desain", "Survei lokasi dan perancangan sistem proteksi sesuai SNI.", "FileText"},
		{"Sertifikasi", "Pendampingan uji dan sertifikasi instalasi penangkal petir.", "Award"},
	}

	// created_at drives display order, keep it strictly increasing.
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	services := make(model.ServiceList, 0, len(items))
	for i, it := range items {
		services = append(services, model.Service{
			Title:       it.title,
			Description: it.description,
			Icon:        it.icon,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}
	return services
}

func DefaultProjects() model.ProjectList {
	return model.ProjectList{
		{
			Title:          "Instalasi Elektrostatis Pabrik Tekstil",
			Description:    "Pemasangan 4 titik penangkal petir elektrostatis dengan radius proteksi 100 m.",
			Location:       "Bandung, Jawa Barat",
			CompletionDate: time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:          "Proteksi Petir Gedung Perkantoran 12 Lantai",
			Description:    "Sistem konvensional dengan down conductor ganda dan grounding di bawah 5 ohm.",
			Location:       "Jakarta Selatan, DKI Jakarta",
			CompletionDate: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:          "Penangkal Petir Perumahan",
			Description:    "Instalasi 20 unit rumah tinggal dalam satu kawasan perumahan.",
			Location:       "Bekasi, Jawa Barat",
			CompletionDate: time.Date(2023, time.November, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}

func DefaultTestimonials() model.TestimonialList {
	company := func(s string) *string { return &s }
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return model.TestimonialList{
		{
			ClientName: "Budi Santoso",
			Company:    company("PT Tekstil Nusantara"),
			Message:    "Pengerjaan cepat dan rapi, tim sangat profesional.",
			Rating:     5,
			CreatedAt:  base,
		},
		{
			ClientName: "Siti Rahmawati",
			Message:    "Rumah kami sekarang aman dari petir, harga sesuai estimasi kalkulator.",
			Rating:     5,
			CreatedAt:  base.Add(24 * time.Hour),
		},
		{
			ClientName: "Andi Wijaya",
			Company:    company("Gedung Graha Mandiri"),
			Message:    "Pelayanan purna jual dan maintenance sangat membantu.",
			Rating:     4,
			CreatedAt:  base.Add(48 * time.Hour),
		},
	}
}
