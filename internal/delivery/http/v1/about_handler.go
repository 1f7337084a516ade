package v1

import (
	"net/http"

	"mancarijo/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

type aboutSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

var aboutContent = struct {
	Title    string         `json:"title"`
	Tagline  string         `json:"tagline"`
	Sections []aboutSection `json:"sections"`
}{
	Title:   "Tentang Kami",
	Tagline: "MancariJo: Solusi Tepat untuk Kebutuhan Pekerjaan di Minahasa Utara",
	Sections: []aboutSection{
		{
			Title: "Misi Kami",
			Body:  "Mempermudah akses informasi lowongan pekerjaan bagi masyarakat Minahasa Utara dan mengutamakan kemampuan serta keahlian daripada latar belakang pendidikan.",
		},
		{
			Title: "Lowongan Lengkap dan Terkini",
			Body:  "Lowongan dari pemberi kerja di Minahasa Utara, diperbarui setiap kali pemberi kerja menerbitkan pekerjaan baru.",
		},
		{
			Title: "Pencarian Mudah",
			Body:  "Cari pekerjaan berdasarkan nama dan dapatkan rekomendasi sesuai preferensi pekerjaan Anda.",
		},
	},
}

func aboutUs(c *gin.Context) {
	response.Success(c, http.StatusOK, "About us", aboutContent)
}
