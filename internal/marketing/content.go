// Package marketing holds the static content of the public landing page.
package marketing

import (
	"encoding/json"
	"time"

	"potensidesa/internal/counter"
)

// StatsDuration is how long each stats counter animates.
const StatsDuration = 2000 * time.Millisecond

type Hero struct {
	Title    string
	Subtitle string
	CTALabel string
	CTAHref  string
}

type Feature struct {
	Icon        string
	Title       string
	Description string
}

// Stat is one animated figure. Frames is the JSON array of displayed values.
type Stat struct {
	Label  string
	Target int
	Suffix string
	Frames string
}

type CTA struct {
	Title       string
	Description string
	ButtonLabel string
	ButtonHref  string
}

// Page is everything the landing page template renders.
type Page struct {
	Hero     Hero
	Features []Feature
	Stats    []Stat
	CTA      CTA
}

// Landing builds the landing page content with precomputed counter frames.
func Landing() Page {
	return Page{
		Hero: Hero{
			Title:    "Potensi Desa untuk Investasi Daerah",
			Subtitle: "Temukan potensi unggulan setiap desa: pertanian, wisata, UMKM, dan energi terbarukan, dalam satu peta informasi.",
			CTALabel: "Jelajahi Potensi",
			CTAHref:  "#features",
		},
		Features: []Feature{
			{Icon: "map", Title: "Peta Potensi", Description: "Lokasi potensi desa yang telah diverifikasi pemerintah kabupaten."},
			{Icon: "briefcase", Title: "Peluang Investasi", Description: "Daftar peluang investasi lengkap dengan nilai dan kontak pengelola."},
			{Icon: "check", Title: "Data Terverifikasi", Description: "Setiap usulan ditinjau admin sebelum dipublikasikan."},
			{Icon: "users", Title: "Kolaborasi Desa", Description: "Operator desa mengusulkan potensi langsung dari dasbor."},
		},
		Stats: buildStats([]Stat{
			{Label: "Desa", Target: 166},
			{Label: "Kecamatan", Target: 14},
			{Label: "Potensi Terdata", Target: 1250, Suffix: "+"},
			{Label: "Peluang Investasi", Target: 85, Suffix: "+"},
		}),
		CTA: CTA{
			Title:       "Siap berinvestasi di desa?",
			Description: "Hubungi dinas terkait atau masuk ke dasbor untuk mengelola data potensi.",
			ButtonLabel: "Masuk Dasbor",
			ButtonHref:  "/login",
		},
	}
}

func buildStats(stats []Stat) []Stat {
	for i := range stats {
		frames := counter.New(stats[i].Target, StatsDuration, counter.DefaultFrameInterval).Frames()
		b, err := json.Marshal(frames)
		if err != nil {
			b = []byte("[]")
		}
		stats[i].Frames = string(b)
	}
	return stats
}
